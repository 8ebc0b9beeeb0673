// Package goaltrack links a brokerage account's stock holdings to
// user-defined savings goals and derives, at any point in time, how far
// each goal is funded.
//
// The core functionalities include:
//   - Goal Management: Creating and deleting savings goals, each with a
//     name, a target amount, and an optional deadline.
//   - Assignment Map: Mapping each holding symbol to at most one goal.
//     Deleting a goal cascades over the map so no assignment is ever left
//     dangling.
//   - Progress Calculation: A pure function that derives each goal's
//     current funded value and percent-complete from the holdings and the
//     assignment map.
//   - Write-Through Persistence: Every mutation of the goal book is
//     committed to the configured store before it is visible in memory; a
//     failed write leaves the in-memory state untouched.
//   - Backup: Encoding and decoding the whole book to a single
//     human-readable JSON document.
//
// This package serves as the foundational logic for the `gt` command-line
// tool and the dashboard server, ensuring that all operations are
// consistent and based on a single source of truth. Holdings are borrowed
// from the broker collaborator (package kite) and never owned here;
// AI-generated assignment suggestions live in package advisor.
package goaltrack

package goaltrack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// this file contains functions to handle the backup format.
// It should remain human readable, a single file, and stable across versions.

// BackupVersion is the current version of the backup document.
const BackupVersion = 1

// backupDoc is the single JSON document holding all persistent state.
type backupDoc struct {
	Goals       []Goal            `json:"goals"`
	Assignments map[string]string `json:"assignments"`
	Personality string            `json:"personality,omitempty"`
	Timestamp   string            `json:"timestamp,omitempty"`
	Version     int               `json:"version"`
}

// Export writes the book to 'w' as a single indented JSON document
// {goals, assignments, personality?, version}.
func Export(w io.Writer, b *Book) error {
	doc := backupDoc{
		Goals:       b.Goals(),
		Assignments: b.Assignments(),
		Personality: b.Personality(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Version:     BackupVersion,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("cannot write backup document: %w", err)
	}
	return nil
}

// Import reads a backup document from 'r' and returns the book it
// describes. The document is untrusted: 'goals' must be a JSON array and
// 'assignments' a JSON object, every goal must carry an id, a name and a
// positive target, otherwise ErrValidation is returned and no state is
// touched. Assignments pointing to a goal absent from the document are
// pruned, the book invariant forbids dangling references.
func Import(r io.Reader) (*Book, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read backup document: %w", err)
	}

	// Shape check first, field by field, before decoding anything.
	var shape struct {
		Goals       json.RawMessage `json:"goals"`
		Assignments json.RawMessage `json:"assignments"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, fmt.Errorf("%w: not a valid backup document: %v", ErrValidation, err)
	}
	if !startsWith(shape.Goals, '[') {
		return nil, fmt.Errorf("%w: 'goals' must be an array", ErrValidation)
	}
	if !startsWith(shape.Assignments, '{') {
		return nil, fmt.Errorf("%w: 'assignments' must be an object", ErrValidation)
	}

	var doc backupDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: cannot decode backup document: %v", ErrValidation, err)
	}

	b := NewBook()
	for _, g := range doc.Goals {
		if err := b.AddGoal(g); err != nil {
			return nil, err
		}
	}
	for symbol, goalID := range doc.Assignments {
		if _, ok := b.Goal(goalID); !ok {
			continue // dangling reference in the document, drop it
		}
		if err := b.Assign(symbol, goalID); err != nil {
			return nil, err
		}
	}
	b.SetPersonality(doc.Personality)
	return b, nil
}

func startsWith(raw json.RawMessage, c byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == c
}

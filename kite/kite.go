// Package kite is the broker collaborator. It manages the Kite Connect
// session lifecycle and fetches the account's holdings.
//
// The session token is stored in a file in the temp dir, like a browser
// session it is expected to expire; run 'gt login' again when it does.
package kite

import (
	"flag"
	"os"
)

const (
	apiKeyEnv    = "KITE_API_KEY"
	apiSecretEnv = "KITE_API_SECRET"
)

var (
	apiKeyFlag    = flag.String("kite-api-key", "", "Kite Connect API key. If missing it is read from the environment variable \""+apiKeyEnv+"\".")
	apiSecretFlag = flag.String("kite-api-secret", "", "Kite Connect API secret. If missing it is read from the environment variable \""+apiSecretEnv+"\".")
)

// apiBase is a variable so tests can point the client at a local server.
var apiBase = "https://api.kite.trade"

func apiKey() string {
	if *apiKeyFlag == "" {
		*apiKeyFlag = os.Getenv(apiKeyEnv)
	}
	return *apiKeyFlag
}

func apiSecret() string {
	if *apiSecretFlag == "" {
		*apiSecretFlag = os.Getenv(apiSecretEnv)
	}
	return *apiSecretFlag
}

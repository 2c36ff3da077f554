// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-card-keeper application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as session token lifetime.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the embedded record store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds configuration for external collaborator integrations:
	// the LLM prompt relay and the search engine.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenDuration specifies how long an issued session token remains
	// valid (e.g. "24h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Storage groups the configuration of the persistence layer.
type Storage struct {
	// DB holds the embedded database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds the embedded database settings.
type DB struct {
	// DSN is the path to the SQLite database file.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the total handling time of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the endpoints of the external collaborators.
type Adapter struct {
	// LLMAddress is the base URL of the language-model service.
	// Env: ADAPTER_LLM_ADDRESS
	LLMAddress string `env:"LLM_ADDRESS"`

	// SearchAddress is the base URL of the deck search engine.
	// Env: ADAPTER_SEARCH_ADDRESS
	SearchAddress string `env:"SEARCH_ADDRESS"`

	// RequestTimeout bounds every outbound collaborator call.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SessionCleanupInterval is how often the expired-session cleaner runs.
	// Lazy expiry at token validation remains the correctness mechanism;
	// the cleaner only reclaims space.
	// Env: WORKERS_SESSION_CLEANUP_INTERVAL
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL"`
}

// defaults returns the lowest-priority configuration layer. Any field left
// zero after env, flags and JSON are merged falls back to these values.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenDuration: 24 * time.Hour,
		},
		Storage: Storage{
			DB: DB{DSN: "card-keeper.db"},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			RequestTimeout: 60 * time.Second,
		},
		Workers: Workers{
			SessionCleanupInterval: time.Hour,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

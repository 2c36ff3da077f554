package config

import (
	"flag"
	"os"
	"time"
)

// ParseFlags parses all configuration flags from os.Args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database file path
//	-c/-config json file path with configs
//	-token-duration session token lifetime (e.g., "24h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-llm-address language-model service base URL
//	-search-address search engine base URL
//	-adapter-timeout outbound collaborator timeout
//	-cleanup-interval expired-session cleaner interval
func ParseFlags() *StructuredConfig {
	return parseFlags(os.Args[1:])
}

func parseFlags(args []string) *StructuredConfig {
	fs := flag.NewFlagSet("go-card-keeper", flag.ContinueOnError)

	var serverAddress string
	var databaseDSN string
	var jsonConfigPath string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var llmAddress string
	var searchAddress string
	var adapterTimeout time.Duration
	var cleanupInterval time.Duration

	fs.StringVar(&serverAddress, "a", "", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database file path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Session token lifetime")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "HTTP request timeout")
	fs.StringVar(&llmAddress, "llm-address", "", "LLM service base URL")
	fs.StringVar(&searchAddress, "search-address", "", "Search engine base URL")
	fs.DurationVar(&adapterTimeout, "adapter-timeout", 0, "Outbound collaborator timeout")
	fs.DurationVar(&cleanupInterval, "cleanup-interval", 0, "Expired-session cleaner interval")

	// Unknown flags are not fatal here; validation of the merged config is.
	_ = fs.Parse(args)

	return &StructuredConfig{
		App: App{
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			LLMAddress:     llmAddress,
			SearchAddress:  searchAddress,
			RequestTimeout: adapterTimeout,
		},
		Workers: Workers{
			SessionCleanupInterval: cleanupInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

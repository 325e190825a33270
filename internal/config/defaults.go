package config

import "time"

// Default values applied after every other source.
const (
	DefaultHTTPAddress    = "localhost:8080"
	DefaultTokenAlgorithm = "HS256"
	DefaultTokenDuration  = 24 * time.Hour
	DefaultVersion        = "2.1.0"
	DefaultDSN            = "file:app.db?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"
	DefaultMaxOpenConns   = 10
	DefaultMaxIdleConns   = 4
	DefaultCacheTTL       = 30 * time.Second
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenAlgorithm: DefaultTokenAlgorithm,
			TokenDuration:  DefaultTokenDuration,
			Version:        DefaultVersion,
		},
		Storage: Storage{
			DB: DB{
				DSN:          DefaultDSN,
				MaxOpenConns: DefaultMaxOpenConns,
				MaxIdleConns: DefaultMaxIdleConns,
			},
			Cache: Cache{
				TTL: DefaultCacheTTL,
			},
		},
		Server: Server{
			HTTPAddress: DefaultHTTPAddress,
		},
	}
}

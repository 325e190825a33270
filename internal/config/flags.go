package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress is a listen address flag value.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the server flags from args (without the program name).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc health server address in format [host]:[port]
//	-d database DSN
//	-skip-migrations do not apply migrations at startup
//	-redis redis address of the dashboard cache
//	-redis-password redis password
//	-redis-db redis database number
//	-cache-ttl dashboard cache TTL (e.g., "30s")
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-algorithm token signing algorithm (HS256, HS384, HS512)
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "24h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-log-level log level (debug, info, warn, error)
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN string
	var skipMigrations bool
	var redisAddress, redisPassword string
	var redisDB int
	var cacheTTL time.Duration
	var jsonConfigPath string
	var tokenSignKey, tokenAlgorithm, tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var logLevel string

	fs := flag.NewFlagSet("go-lead-keeper", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply migrations at startup")
	fs.StringVar(&redisAddress, "redis", "", "Redis address of the dashboard cache")
	fs.StringVar(&redisPassword, "redis-password", "", "Redis password")
	fs.IntVar(&redisDB, "redis-db", 0, "Redis database number")
	fs.DurationVar(&cacheTTL, "cache-ttl", 0, "Dashboard cache TTL (e.g., 30s)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenAlgorithm, "token-algorithm", "", "Token signing algorithm")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 24h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:   tokenSignKey,
			TokenAlgorithm: tokenAlgorithm,
			TokenIssuer:    tokenIssuer,
			TokenDuration:  tokenDuration,
			LogLevel:       logLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN:            databaseDSN,
				SkipMigrations: skipMigrations,
			},
			Cache: Cache{
				Address:  redisAddress,
				Password: redisPassword,
				DB:       redisDB,
				TTL:      cacheTTL,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns host:port, or "" when neither part is set. IPv6 hosts are
// bracketed.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses host:port. The host may be empty (all interfaces), an IP
// address or a DNS name such as a compose service name.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(strings.TrimSpace(s))
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", portStr, err)
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "" && net.ParseIP(host) == nil && !validHostname(host) {
		return fmt.Errorf("invalid host %q", host)
	}

	a.Host = host
	a.Port = port
	return nil
}

// validHostname accepts dot-separated labels of letters, digits and inner
// hyphens.
func validHostname(host string) bool {
	if len(host) > 253 {
		return false
	}

	for _, label := range strings.Split(strings.TrimSuffix(host, "."), ".") {
		if label == "" || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, r := range label {
			if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-') {
				return false
			}
		}
	}
	return true
}

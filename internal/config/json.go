package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout of the JSON
// config file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey   string   `json:"token_sign_key"`
		TokenAlgorithm string   `json:"token_algorithm"`
		TokenIssuer    string   `json:"token_issuer"`
		TokenDuration  Duration `json:"token_duration"`
		Version        string   `json:"version"`
		LogLevel       string   `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN            string `json:"dsn"`
			MaxOpenConns   int    `json:"max_open_conns"`
			MaxIdleConns   int    `json:"max_idle_conns"`
			SkipMigrations bool   `json:"skip_migrations"`
		} `json:"db,omitempty"`

		Cache struct {
			Address  string   `json:"address"`
			Password string   `json:"password"`
			DB       int      `json:"db"`
			TTL      Duration `json:"ttl"`
		} `json:"cache,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:   jsonCfg.App.TokenSignKey,
			TokenAlgorithm: jsonCfg.App.TokenAlgorithm,
			TokenIssuer:    jsonCfg.App.TokenIssuer,
			TokenDuration:  time.Duration(jsonCfg.App.TokenDuration),
			Version:        jsonCfg.App.Version,
			LogLevel:       jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN:            jsonCfg.Storage.DB.DSN,
				MaxOpenConns:   jsonCfg.Storage.DB.MaxOpenConns,
				MaxIdleConns:   jsonCfg.Storage.DB.MaxIdleConns,
				SkipMigrations: jsonCfg.Storage.DB.SkipMigrations,
			},
			Cache: Cache{
				Address:  jsonCfg.Storage.Cache.Address,
				Password: jsonCfg.Storage.Cache.Password,
				DB:       jsonCfg.Storage.Cache.DB,
				TTL:      time.Duration(jsonCfg.Storage.Cache.TTL),
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a time.Duration that unmarshals from JSON strings like "1h"
// or "30s" as well as from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

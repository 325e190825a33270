// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

var supportedTokenAlgorithms = map[string]struct{}{
	"HS256": {},
	"HS384": {},
	"HS512": {},
}

// validate checks the merged configuration before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if _, ok := supportedTokenAlgorithms[cfg.App.TokenAlgorithm]; !ok {
		return fmt.Errorf("%w: unsupported token algorithm %q", ErrInvalidAppConfigs, cfg.App.TokenAlgorithm)
	}
	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Cache.Address != "" && cfg.Storage.Cache.TTL <= 0 {
		return fmt.Errorf("%w: cache TTL must be positive", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return fmt.Errorf("%w: at least one listen address is required", ErrInvalidServerConfigs)
	}

	return nil
}

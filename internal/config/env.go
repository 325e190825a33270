// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from the process environment using the `env` and
// `envPrefix` tags of [StructuredConfig].
func parseEnv(cfg any) error {
	return parseEnvFrom(cfg, nil)
}

// parseEnvFrom populates cfg from environment, or from the process
// environment when environment is nil.
func parseEnvFrom(cfg any, environment map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

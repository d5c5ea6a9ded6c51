package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/warrenhq/warren/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"WARREN_RUNTIME_PATH" envDefault:".warren"`

	// Provider selection for the tier cascade and the emergency path.
	LLMProvider       string `env:"WARREN_LLM_PROVIDER" envDefault:"openai"`
	EmergencyProvider string `env:"WARREN_EMERGENCY_PROVIDER" envDefault:"openai"`

	// Context management
	HistoryTurns int `env:"WARREN_HISTORY_TURNS" envDefault:"10"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse app config")
	}
	// Relative runtime paths anchor at the home directory, like GetRuntimePath.
	if !filepath.IsAbs(c.RuntimePath) {
		home, _ := os.UserHomeDir()
		c.RuntimePath = filepath.Join(home, c.RuntimePath)
	}
	return c
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "warren.db")
}

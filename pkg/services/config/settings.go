package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const EnvPrefix = "AIF"

const (
	ProbeModeCLI        = "cli"
	ProbeModeCredential = "credential"
	ProbeModeNone       = "none"

	SecretsBackendKeyVault = "keyvault"
	SecretsBackendVault    = "vault"
)

type Settings struct {
	Log     LogSettings     `mapstructure:"log"`
	Probe   ProbeSettings   `mapstructure:"probe"`
	Server  ServerSettings  `mapstructure:"server"`
	Azure   AzureSettings   `mapstructure:"azure"`
	Secrets SecretsSettings `mapstructure:"secrets"`
	History HistorySettings `mapstructure:"history"`
}

type LogSettings struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
	// File enables a rotating log file next to the console output.
	File string `mapstructure:"file"`
}

type ProbeSettings struct {
	Mode    string        `mapstructure:"mode" validate:"oneof=cli credential none"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Command string        `mapstructure:"command" validate:"required"`
}

type ServerSettings struct {
	Addr            string        `mapstructure:"addr" validate:"required,hostname_port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

type AzureSettings struct {
	Profile        string `mapstructure:"profile"`
	ConfigPath     string `mapstructure:"config_path"`
	SubscriptionID string `mapstructure:"subscription_id" validate:"omitempty,uuid"`
	TenantID       string `mapstructure:"tenant_id"`
}

type SecretsSettings struct {
	Backend     string `mapstructure:"backend" validate:"oneof=keyvault vault"`
	VaultMount  string `mapstructure:"vault_mount" validate:"required_if=Backend vault"`
	VaultPath   string `mapstructure:"vault_path" validate:"required_if=Backend vault"`
	Concurrency int    `mapstructure:"concurrency" validate:"min=1,max=32"`
}

// HistorySettings locates the deployment run database. An empty path turns
// recording off.
type HistorySettings struct {
	Path string `mapstructure:"path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")

	v.SetDefault("probe.mode", ProbeModeCLI)
	v.SetDefault("probe.timeout", 10*time.Second)
	v.SetDefault("probe.command", "az")

	v.SetDefault("server.addr", "localhost:8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("azure.profile", "defaults")
	v.SetDefault("azure.config_path", "")
	v.SetDefault("azure.subscription_id", "")
	v.SetDefault("azure.tenant_id", "")

	v.SetDefault("secrets.backend", SecretsBackendKeyVault)
	v.SetDefault("secrets.vault_mount", "secret")
	v.SetDefault("secrets.vault_path", "ai-foundry")
	v.SetDefault("secrets.concurrency", 4)

	v.SetDefault("history.path", filepath.Join(".aif", "history.db"))
}

// LoadSettings resolves settings with the precedence env > file > defaults.
// An empty path skips the file.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Settings holds the user-tunable runtime configuration.
type Settings struct {
	DataFile        string         `mapstructure:"data_file" validate:"required"`
	Language        string         `mapstructure:"language" validate:"required,oneof=en fr"`
	HorizonDays     int            `mapstructure:"horizon_days" validate:"gte=0,lte=366"`
	ReminderTrigger string         `mapstructure:"reminder_trigger"`
	Server          ServerSettings `mapstructure:"server"`
	Import          ImportSettings `mapstructure:"import"`
}

// ServerSettings configures the iCalendar feed server.
type ServerSettings struct {
	Port            string        `mapstructure:"port" validate:"required,numeric"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval" validate:"gte=0"`
}

// ImportSettings holds credentials for remote vCard imports.
type ImportSettings struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// Load reads settings from configPath (or the default search paths),
// environment variables prefixed with EnvPrefix, and built-in defaults.
// A missing config file is not an error.
func Load(configPath string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileType)
		v.AddConfigPath(".")
		if dir, err := AppConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%s: %w", ErrConfigRead, err)
		}
		slog.Debug(MsgConfigDefault, LogKeyComponent, CompConfig)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConfigDecode, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the settings against their struct constraints.
func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("%s: %w", ErrConfigInvalid, err)
	}
	if port, _ := strconv.Atoi(s.Server.Port); port < MinPort || port > MaxPort {
		return fmt.Errorf("%s: %s", ErrConfigInvalid, ErrPortRange)
	}
	return nil
}

// AppConfigDir returns the per-user directory holding config and data files.
func AppConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrConfigDir, err)
	}
	return filepath.Join(home, "."+CmdName), nil
}

func setDefaults(v *viper.Viper) {
	dataFile := DataFileName
	if dir, err := AppConfigDir(); err == nil {
		dataFile = filepath.Join(dir, DataFileName)
	}

	v.SetDefault(KeyDataFile, dataFile)
	v.SetDefault(KeyLanguage, DefaultLanguage)
	v.SetDefault(KeyHorizonDays, DefaultHorizonDays)
	v.SetDefault(KeyReminderTrigger, DefaultReminderTrigger)
	v.SetDefault(KeyServerPort, DefaultPort)
	v.SetDefault(KeyRefreshInterval, DefaultRefreshInterval)
	v.SetDefault(KeyImportUser, "")
	v.SetDefault(KeyImportPass, "")
}

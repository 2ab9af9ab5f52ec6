package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Calendar   CalendarConfig   `mapstructure:"calendar"`
	HolidayAPI HolidayAPIConfig `mapstructure:"holiday_api"`
	Log        LogConfig        `mapstructure:"log"`
}

// CalendarConfig represents the date range and annotation options
type CalendarConfig struct {
	Start           string `mapstructure:"start"`
	End             string `mapstructure:"end"`
	Format          string `mapstructure:"format"` // Go time layout for start/end
	IncludeHolidays bool   `mapstructure:"include_holidays"`
	Country         string `mapstructure:"country"` // ISO 3166-2 code
}

// HolidayAPIConfig represents holidayapi.com access configuration
type HolidayAPIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"` // Override for tests/mirrors
}

// LogConfig represents logging configuration
type LogConfig struct {
	LogFile  string `mapstructure:"log_file"`
	LogLevel string `mapstructure:"log_level"`
}

// Load loads configuration from file and environment. The config file is
// optional when no explicit path is given; flags and environment variables
// can supply everything.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.calendar-gen")
	}

	v.SetDefault("calendar.format", "2006-01-02")
	v.SetDefault("calendar.country", "US")

	// Read environment variables
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The credential falls back to the process environment. The lookup
	// happens once here at the boundary; the core packages only see the
	// resolved value.
	if config.HolidayAPI.APIKey == "" {
		config.HolidayAPI.APIKey = os.Getenv("API_KEY")
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Calendar.Start == "" {
		return fmt.Errorf("calendar.start is required")
	}
	if c.Calendar.End == "" {
		return fmt.Errorf("calendar.end is required")
	}
	if c.Calendar.Format == "" {
		return fmt.Errorf("calendar.format is required")
	}

	if c.Calendar.IncludeHolidays {
		if c.HolidayAPI.APIKey == "" {
			return fmt.Errorf("holiday_api.api_key is required when calendar.include_holidays is set " +
				"(or export API_KEY)")
		}
		if c.Calendar.Country == "" {
			return fmt.Errorf("calendar.country is required when calendar.include_holidays is set")
		}
	}

	return nil
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.HolidayAPI.APIKey = os.ExpandEnv(c.HolidayAPI.APIKey)
	c.Calendar.Country = os.ExpandEnv(c.Calendar.Country)
}

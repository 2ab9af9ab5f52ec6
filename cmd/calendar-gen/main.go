package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/calendar-gen/internal/calendar"
	"github.com/username/calendar-gen/internal/config"
	"github.com/username/calendar-gen/internal/holidayapi"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "calendar-gen",
		Short: "Calendar table generator",
		Long:  "Generate a per-day calendar table between two dates with weekday, weekend, business-day and public-holiday annotations",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.LogFile != "" {
				logger, err = initFileLogger(cfg.Log.LogFile, cfg.Log.LogLevel)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(generateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	var (
		start           string
		end             string
		format          string
		country         string
		apiKey          string
		output          string
		sep             string
		includeHolidays bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the calendar table and print or save it as delimited text",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg.ExpandEnvVars()

			// Flags override config file values
			if cmd.Flags().Changed("start") {
				cfg.Calendar.Start = start
			}
			if cmd.Flags().Changed("end") {
				cfg.Calendar.End = end
			}
			if cmd.Flags().Changed("format") {
				cfg.Calendar.Format = format
			}
			if cmd.Flags().Changed("country") {
				cfg.Calendar.Country = country
			}
			if cmd.Flags().Changed("holidays") {
				cfg.Calendar.IncludeHolidays = includeHolidays
			}
			if cmd.Flags().Changed("api-key") {
				cfg.HolidayAPI.APIKey = apiKey
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			sepRune, err := parseSeparator(sep)
			if err != nil {
				return err
			}

			var client *holidayapi.Client
			if cfg.Calendar.IncludeHolidays {
				client, err = holidayapi.NewClient(cfg.HolidayAPI.APIKey, logger)
				if err != nil {
					return err
				}
				if cfg.HolidayAPI.BaseURL != "" {
					client.SetBaseURL(cfg.HolidayAPI.BaseURL)
				}
			}

			builder, err := calendar.New(calendar.Options{
				Start:           cfg.Calendar.Start,
				End:             cfg.Calendar.End,
				Layout:          cfg.Calendar.Format,
				IncludeHolidays: cfg.Calendar.IncludeHolidays,
				Country:         cfg.Calendar.Country,
				Client:          client,
				Logger:          logger,
			})
			if err != nil {
				return err
			}

			logger.Info("Generating calendar",
				zap.String("start", cfg.Calendar.Start),
				zap.String("end", cfg.Calendar.End),
				zap.Bool("holidays", cfg.Calendar.IncludeHolidays),
				zap.String("output", output))

			if output == "" || output == "-" {
				return builder.GenerateCSV(os.Stdout, sepRune, false)
			}

			if err := builder.GenerateFile(output, sepRune, false); err != nil {
				return err
			}

			fmt.Printf("💾 Calendar saved to %s (%d days)\n", output, builder.NumDays())
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date, inclusive")
	cmd.Flags().StringVar(&end, "end", "", "End date, exclusive")
	cmd.Flags().StringVar(&format, "format", calendar.DefaultLayout, "Date layout for --start/--end (Go reference time)")
	cmd.Flags().StringVar(&country, "country", calendar.DefaultCountry, "ISO 3166-2 country code for holidays")
	cmd.Flags().BoolVar(&includeHolidays, "holidays", false, "Annotate public holidays (requires a holidayapi.com key)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "holidayapi.com API key (defaults to API_KEY env)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path ('-' or empty for stdout)")
	cmd.Flags().StringVar(&sep, "sep", ",", "Field separator for the delimited output")

	return cmd
}

func parseSeparator(sep string) (rune, error) {
	runes := []rune(sep)
	if len(runes) != 1 {
		return 0, fmt.Errorf("separator must be a single character, got %q", sep)
	}
	return runes[0], nil
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}

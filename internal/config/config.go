// Package config loads runtime settings from .env, the environment and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Log      LogConfig
	Input    InputConfig
	Export   ExportConfig
	Database DatabaseConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// InputConfig locates the teaching load, the room inventory and the
// room-floor preferences.
type InputConfig struct {
	SessionsFile    string
	RoomsFile       string
	PreferencesFile string
	Delimiter       string
}

type ExportConfig struct {
	Dir string
	PDF bool
}

type DatabaseConfig struct {
	Path string
}

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"env":         "ENV",
	"port":        "PORT",
	"log-level":   "LOG_LEVEL",
	"log-format":  "LOG_FORMAT",
	"sessions":    "SESSIONS_FILE",
	"rooms":       "ROOMS_FILE",
	"preferences": "PREFERENCES_FILE",
	"delimiter":   "CSV_DELIMITER",
	"out":         "EXPORT_DIR",
	"pdf":         "EXPORT_PDF",
	"db":          "DB_PATH",
}

// Flags declares the flags understood by Load. Unset flags fall through to
// the environment and the defaults.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("env", "", "runtime environment (development|production)")
	fs.Int("port", 0, "HTTP listen port")
	fs.String("log-level", "", "log level")
	fs.String("log-format", "", "log encoding (console|json)")
	fs.StringP("sessions", "s", "", "teaching load CSV")
	fs.StringP("rooms", "r", "", "room inventory CSV")
	fs.StringP("preferences", "p", "", "room-floor preference YAML")
	fs.String("delimiter", "", "input CSV delimiter")
	fs.StringP("out", "o", "", "export directory")
	fs.Bool("pdf", true, "render the PDF report")
	fs.String("db", "", "schedule store path")
	return fs
}

// Load reads .env (if present), the environment and the parsed flags. flags
// may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{}
	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Input = InputConfig{
		SessionsFile:    v.GetString("SESSIONS_FILE"),
		RoomsFile:       v.GetString("ROOMS_FILE"),
		PreferencesFile: v.GetString("PREFERENCES_FILE"),
		Delimiter:       v.GetString("CSV_DELIMITER"),
	}

	cfg.Export = ExportConfig{
		Dir: v.GetString("EXPORT_DIR"),
		PDF: v.GetBool("EXPORT_PDF"),
	}

	cfg.Database = DatabaseConfig{
		Path: v.GetString("DB_PATH"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 3001)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SESSIONS_FILE", "./res/sessions.csv")
	v.SetDefault("ROOMS_FILE", "./res/rooms.csv")
	v.SetDefault("PREFERENCES_FILE", "./res/preferences.yaml")
	v.SetDefault("CSV_DELIMITER", ";")

	v.SetDefault("EXPORT_DIR", "./out")
	v.SetDefault("EXPORT_PDF", true)

	v.SetDefault("DB_PATH", "./db/schedules.db")
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		errs = append(errs, fmt.Errorf("unknown ENV %q", c.Env))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.Port))
	}
	if c.Input.SessionsFile == "" {
		errs = append(errs, errors.New("SESSIONS_FILE is required"))
	}
	if c.Input.RoomsFile == "" {
		errs = append(errs, errors.New("ROOMS_FILE is required"))
	}
	if utf8.RuneCountInString(c.Input.Delimiter) != 1 {
		errs = append(errs, fmt.Errorf("CSV_DELIMITER must be a single character, got %q", c.Input.Delimiter))
	}
	if c.Export.Dir == "" {
		errs = append(errs, errors.New("EXPORT_DIR is required"))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("DB_PATH is required"))
	}
	return errors.Join(errs...)
}

// Delim returns the input delimiter as a rune.
func (c *Config) Delim() rune {
	r, _ := utf8.DecodeRuneInString(c.Input.Delimiter)
	return r
}

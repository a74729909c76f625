package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	RosterSourceHTTP   = "http"
	RosterSourceSheets = "sheets"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	LogLevel     string

	RosterSource string
	RosterURL    string
	SubmitURL    string

	SheetsCredentials string
	SheetsID          string
	SheetsRange       string

	SessionSalt string
	AdminKey    string
}

// LoadDotEnv loads a .env file from the working directory if one exists.
// Variables already set in the environment win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ParseFlags validates flags and fills the remaining fields from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("sponsor-eval", flag.ContinueOnError)

	// Network and storage
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// Upstream endpoints
	fs.StringVar(&cfg.RosterSource, "roster-source", "", "Roster source (http or sheets)")
	fs.StringVar(&cfg.RosterURL, "roster-url", "", "Roster data endpoint")
	fs.StringVar(&cfg.SubmitURL, "submit-url", "", "Submission collection endpoint")

	fs.StringVar(&cfg.SheetsCredentials, "sheets-credentials", "", "Google service account credentials file")
	fs.StringVar(&cfg.SheetsID, "sheets-id", "", "Spreadsheet ID")
	fs.StringVar(&cfg.SheetsRange, "sheets-range", "", "Spreadsheet range, first row is the header")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSalt, "session-salt", "", "Session cache key salt (prefer env)")
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin key for roster reloads (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318
		}
	}

	cfg.DatabaseURL = fallback(cfg.DatabaseURL, "DATABASE_URL", "")
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	cfg.DatabaseType = strings.ToLower(fallback(cfg.DatabaseType, "DATABASE_TYPE", "sqlite"))
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	cfg.LogLevel = fallback(cfg.LogLevel, "LOG_LEVEL", "info")
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}

	cfg.RosterSource = strings.ToLower(fallback(cfg.RosterSource, "ROSTER_SOURCE", RosterSourceHTTP))
	cfg.RosterURL = fallback(cfg.RosterURL, "ROSTER_URL", "")
	cfg.SheetsCredentials = fallback(cfg.SheetsCredentials, "SHEETS_CREDENTIALS_FILE", "credentials.json")
	cfg.SheetsID = fallback(cfg.SheetsID, "SHEETS_SPREADSHEET_ID", "")
	cfg.SheetsRange = fallback(cfg.SheetsRange, "SHEETS_RANGE", "Sheet1!A1:Z")

	switch cfg.RosterSource {
	case RosterSourceHTTP:
		if cfg.RosterURL == "" {
			return Config{}, errors.New("roster URL required (use -roster-url or ROSTER_URL env)")
		}
	case RosterSourceSheets:
		if cfg.SheetsID == "" {
			return Config{}, errors.New("spreadsheet ID required (use -sheets-id or SHEETS_SPREADSHEET_ID env)")
		}
	default:
		return Config{}, fmt.Errorf("unsupported roster source %q", cfg.RosterSource)
	}

	cfg.SubmitURL = fallback(cfg.SubmitURL, "SUBMIT_URL", "")
	if cfg.SubmitURL == "" {
		return Config{}, errors.New("submit URL required (use -submit-url or SUBMIT_URL env)")
	}

	// Secrets - salt MUST be provided, admin key is optional
	cfg.SessionSalt = fallback(cfg.SessionSalt, "SESSION_SALT", "")
	if cfg.SessionSalt == "" {
		return Config{}, errors.New("SESSION_SALT required")
	}
	cfg.AdminKey = fallback(cfg.AdminKey, "ADMIN_KEY", "")

	return cfg, nil
}

// ParseLogLevel maps a level name to its slog level
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func fallback(v, env, def string) string {
	if v != "" {
		return v
	}
	if e := os.Getenv(env); e != "" {
		return e
	}
	return def
}

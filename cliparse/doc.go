// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadDotEnv reads .env if present, then ParseFlags returns a Config:

	cliparse.LoadDotEnv()
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags and Environment Variables

	-p                   PORT                     listen port (default 3318)
	-d                   DATABASE_URL             cache database DSN (required)
	-t                   DATABASE_TYPE            sqlite or postgres (default sqlite)
	-log-level           LOG_LEVEL                debug, info, warn, error (default info)
	-roster-source       ROSTER_SOURCE            http or sheets (default http)
	-roster-url          ROSTER_URL               roster endpoint (required for http)
	-sheets-credentials  SHEETS_CREDENTIALS_FILE  default credentials.json
	-sheets-id           SHEETS_SPREADSHEET_ID    required for sheets
	-sheets-range        SHEETS_RANGE             default Sheet1!A1:Z
	-submit-url          SUBMIT_URL               collection endpoint (required)
	-session-salt        SESSION_SALT             cache key salt (required)
	-admin-key           ADMIN_KEY                enables POST /roster/reload

CLI flags take precedence over environment variables, which take precedence
over defaults. Values in .env never override variables already set.

# Validation

ParseFlags returns an error for missing required values, an unknown database
type, roster source, or log level, and a non-numeric PORT.
*/
package cliparse

// Package config handles configuration loading for coven-notes.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from COVEN_NOTES_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/coven/notes.yaml
//  3. ~/.config/coven/notes.yaml
//
// When the file does not exist, Default is used and the database lives in
// the coven data directory. Files ending in .toml are decoded as TOML.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	database:
//	  path: "${HOME}/notes/notes.db"
//
// Syntax: ${VAR_NAME}. Unset variables expand to an empty string.
//
// # Configuration Sections
//
// Database:
//
//	database:
//	  path: "${HOME}/.local/share/coven/notes.db"
//	  driver: "sqlite"   # sqlite (modernc, default) or sqlite3 (cgo)
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// The same settings in TOML:
//
//	[database]
//	path = "/var/lib/coven/notes.db"
//
//	[logging]
//	level = "debug"
package config

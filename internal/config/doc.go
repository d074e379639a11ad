// Package config handles configuration loading for people-server.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from PEOPLE_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/people/server.yaml
//  3. ~/.config/people/server.yaml
//
// Files ending in .toml are read as TOML; anything else is YAML. A .env file
// next to the config file is loaded first, without overriding variables that
// are already set.
//
// # Environment Variables
//
// Values can reference environment variables:
//
//	database:
//	  path: "${PEOPLE_DATA_DIR}/people.db"
//
// After parsing, PEOPLE_<SECTION>_<KEY> variables override file values, e.g.
// PEOPLE_SERVER_HTTP_ADDR, PEOPLE_DATABASE_DRIVER, PEOPLE_LOGGING_LEVEL.
//
// # Configuration Sections
//
//	server:
//	  http_addr: "localhost:8080"
//	  read_header_timeout: "10s"
//	  shutdown_timeout: "10s"
//
//	database:
//	  driver: "sqlite"    # sqlite, sqlite3, badger, memory
//	  path: "~/.local/share/people/people.db"
//
//	logging:
//	  level: "info"       # debug, info, warn, error
//	  format: "text"      # text, json
//
// Durations use time.ParseDuration syntax.
package config

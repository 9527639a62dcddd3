// Package config loads runtime configuration for the Book Review CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv), BOOKREVIEW_* prefixed.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend (e.g. http://localhost:8000)
//	-d string   sqlite DSN of the local session store
//	-t int      request timeout in seconds (0 disables the timeout)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "30s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "http://localhost:8000",
//	  "database_dsn": "reviews.db",
//	  "request_timeout": "30s"
//	}
//
// Environment variables
//
//	BOOKREVIEW_SERVER_ADDR       base URL of the backend
//	BOOKREVIEW_DATABASE_DSN      sqlite DSN of the local session store
//	BOOKREVIEW_REQUEST_TIMEOUT   Go duration string, e.g. "30s"
package config

// Package config loads holonet's configuration.
//
// # Resolution
//
// Load builds the configuration in three layers:
//
//  1. Defaults compiled into the binary
//  2. The TOML file at the given path, or ~/.config/holonet/config.toml
//  3. HOLONET_* environment variables (read with cleanenv)
//
// A missing file is fine; a file that exists but cannot be parsed is an error.
// Blank values fall back to defaults, and paths starting with ~ are expanded.
//
// # File Format
//
//	api_url = "https://swapi.dev/api"
//	request_timeout = "10s"
//	rate_limit = 20          # requests per second, negative disables
//	concurrency = 6          # in-flight fetches per detail section
//	log_file = "~/.local/state/holonet/holonet.log"
//	log_level = "info"
//
//	[storage]
//	backend = "file"         # file, redis or memory
//	dir = "~/.local/share/holonet"
//	redis_addr = "localhost:6379"
//	redis_password = ""
//	redis_db = 0
//	redis_prefix = "holonet:"
//
// # Environment
//
//   - HOLONET_API_URL, HOLONET_REQUEST_TIMEOUT, HOLONET_RATE_LIMIT
//   - HOLONET_CONCURRENCY, HOLONET_LOG_FILE, HOLONET_LOG_LEVEL
//   - HOLONET_STORAGE_BACKEND, HOLONET_STATE_DIR
//   - HOLONET_REDIS_ADDR, HOLONET_REDIS_PASSWORD, HOLONET_REDIS_DB, HOLONET_REDIS_PREFIX
package config

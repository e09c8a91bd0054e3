// Package config loads the process configuration from the environment.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// optional `.env` files are loaded first, then the environment is parsed into
// Runtime using struct tags. Values already present in the environment win
// over values from files.
//
// # Variables
//
//	MODKIT_BUILD       current host build, e.g. R6 or latest (required)
//	MODKIT_BACKEND     reflection | interop (default reflection)
//	MODKIT_DEV_MODE    show hidden features and the Dev group
//	MODKIT_SERVICE     service name attached to log records
//	MODKIT_ENV         development | production
//	MODKIT_LOG_LEVEL   debug | info | warn | error
//	MODKIT_HTTP_ADDR   listen address of the settings API
//	MODKIT_STORE_*     persisted config store, see store.Config
//
// # Usage
//
//	cfg, err := config.Load(".env")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// MustLoad panics instead of returning an error. Parse is the generic
// building block and works with any env-tagged struct.
package config

// Package config provides configuration management for the registrar.
//
// Configuration is resolved in three layers, each overriding the last:
//
//   - Built-in defaults
//   - The YAML file $REGISTRAR_CONFIG_PATH/registrar.yml (optional)
//   - REGISTRAR_* environment variables
//
// The layer each attribute came from is tracked and reported by
// `registrar configuration show`.
//
// # Key Configuration Options
//
//   - REGISTRAR_DB_HOST, REGISTRAR_DB_PORT: Database address
//   - REGISTRAR_DB_USER, REGISTRAR_DB_PASSWORD: Database credentials
//   - REGISTRAR_DB_CATALOG: Database holding the university schema
//   - REGISTRAR_TERM_SEMESTER, REGISTRAR_TERM_YEAR: Registration term
//   - REGISTRAR_PRINCIPALS: name:secret:role,... login accounts
//   - REGISTRAR_LOG_LEVEL: Logging verbosity
package config

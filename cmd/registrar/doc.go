// Command registrar is a role-restricted command-line front-end to a
// university database.
//
// Staff browse and maintain courses and sections; students register for
// and drop sections of the current term and read their transcript. Every
// action is checked against the logged-in principal's permission table.
//
// # Quick Start
//
//	# Check configuration and where each value comes from
//	registrar configuration show
//
//	# Wait for the database to accept connections
//	registrar wait --retries 30
//
//	# Log in and use the menus
//	registrar shell
//
// # Environment Variables
//
//   - REGISTRAR_CONFIG_PATH: Directory holding registrar.yml
//   - REGISTRAR_DB_HOST, REGISTRAR_DB_PORT, REGISTRAR_DB_USER, REGISTRAR_DB_PASSWORD
//   - REGISTRAR_DB_CATALOG: Database with the university schema (default: university)
//   - REGISTRAR_PRINCIPALS: name:secret:role,... accounts that may log in
//   - REGISTRAR_AUDIT_ENABLED: Set to false to silence audit lines
//   - REGISTRAR_AUDIT_DATABASE_URL: Also persist audit events to this database
package main

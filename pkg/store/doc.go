// Package store manages the connection to the relational store.
//
// The store is a network-addressable PostgreSQL server reached by host, port,
// user and password. The connection is a lib/pq *sql.DB wrapped in GORM; the
// query executor uses the raw handle and the catalog bootstrap queries use
// GORM.
//
// # Connection
//
//	conn, err := store.Connect(ctx, store.Config{
//	    Host: "localhost", Port: 5432, User: "registrar", Password: "secret",
//	})
//	if err != nil {
//	    log.Fatal(err) // *store.ConnectionError
//	}
//	if err := conn.SelectCatalog(ctx, "university"); err != nil {
//	    log.Fatal(err) // *store.CatalogError
//	}
//
// # Environment Variables
//
//   - REGISTRAR_LOG_LEVEL: Set to "debug" for GORM query logging
package store

package store

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by operations on a closed connection.
var ErrClosed = errors.New("store: connection is closed")

// ConnectionError reports a bad address, port or credentials at connect time.
type ConnectionError struct {
	Host string
	Port int
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("invalid database address/port or credentials (%s:%d): %v", e.Host, e.Port, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// CatalogError reports that a named catalog (database) does not exist or
// could not be selected.
type CatalogError struct {
	Name string
	Err  error
}

func (e *CatalogError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("could not select the %s database", e.Name)
	}
	return fmt.Sprintf("could not select the %s database: %v", e.Name, e.Err)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

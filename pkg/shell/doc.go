// Package shell is the interactive front-end of the registrar: a login loop
// followed by numbered table and command menus built from the logged-in
// principal's permissions.
package shell

// Package session tracks who is logged in to the registrar shell.
//
// A Registry holds the principals known to the program. A Session
// authenticates one of them and answers authorization questions for it
// using the permission table of its role. Both decisions are audited.
package session

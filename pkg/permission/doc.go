// Package permission holds the static role to capability policy.
//
// Roles and operations are closed enumerations. Each role maps to a fixed,
// immutable table of database tables and the set of operations permitted on
// each of them:
//
//	caps := permission.CapabilitiesFor(permission.RoleStaff)
//	caps.OperationsFor(permission.TableCourse).Has(permission.OperationUpdate) // true
//	caps.OperationsFor(permission.TableTakes).Empty()                         // true
//
// A table that is absent from a role's capabilities is inaccessible and its
// operation set prints as "None".
package permission

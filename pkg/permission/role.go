package permission

//go:generate go run github.com/dmarkham/enumer -type Role -trimprefix Role -yaml -output role.gen.go

// Role is the position a principal holds.
type Role int

const (
	RoleStaff Role = iota
	RoleStudent
	RoleNone
)

package session

import (
	"github.com/doodlesbykumbi/registrar/pkg/permission"
)

// Principal is a user known to the registrar.
type Principal struct {
	Name   string
	Secret string
	Role   permission.Role
}

// Equal compares identity only. Role is not part of identity.
func (p Principal) Equal(other Principal) bool {
	return p.Name == other.Name && p.Secret == other.Secret
}

// StudentID derives the numeric key used in the student and takes tables.
// It is the 32-bit string hash of the name (31*h + c over UTF-16 code units)
// shifted right by 8, so existing rows keyed this way still match.
func (p Principal) StudentID() int32 {
	var h int32
	for _, c := range utf16Units(p.Name) {
		h = 31*h + int32(c)
	}
	return h >> 8
}

func utf16Units(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		if r >= 0x10000 {
			r -= 0x10000
			units = append(units, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
			continue
		}
		units = append(units, uint16(r))
	}
	return units
}

package permission

import "strings"

//go:generate go run github.com/dmarkham/enumer -type Operation -trimprefix Operation -yaml -output operation.gen.go

// Operation is a permission-checked action kind. The declaration order is the
// order operations are offered in menus.
type Operation int

const (
	OperationRetrieve Operation = iota
	OperationCreate
	OperationUpdate
	OperationDelete
	OperationDrop
	OperationRegister
	// OperationNone is the sentinel reported for inaccessible tables.
	OperationNone
)

// OperationSet is an immutable set of operations.
type OperationSet uint16

// NewOperationSet returns the set holding ops. OperationNone is ignored.
func NewOperationSet(ops ...Operation) OperationSet {
	var s OperationSet
	for _, op := range ops {
		if op == OperationNone || !op.IsAOperation() {
			continue
		}
		s |= 1 << uint(op)
	}
	return s
}

// Has reports whether op is in the set.
func (s OperationSet) Has(op Operation) bool {
	if op == OperationNone || !op.IsAOperation() {
		return false
	}
	return s&(1<<uint(op)) != 0
}

// Empty reports whether the set holds no operations.
func (s OperationSet) Empty() bool {
	return s == 0
}

// Len returns the number of operations in the set.
func (s OperationSet) Len() int {
	return len(s.Operations())
}

// Operations returns the members in declaration order.
func (s OperationSet) Operations() []Operation {
	var ops []Operation
	for _, op := range OperationValues() {
		if s.Has(op) {
			ops = append(ops, op)
		}
	}
	return ops
}

func (s OperationSet) String() string {
	if s.Empty() {
		return OperationNone.String()
	}
	ops := s.Operations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.String()
	}
	return strings.Join(names, ", ")
}

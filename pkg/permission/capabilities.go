package permission

// Capabilities is the immutable table -> operations map of one role.
type Capabilities struct {
	role   Role
	tables []Table
	ops    map[Table]OperationSet
}

type grant struct {
	table Table
	ops   OperationSet
}

var policy = map[Role][]grant{
	RoleStaff: {
		{TableCourse, NewOperationSet(OperationRetrieve, OperationCreate, OperationUpdate, OperationDelete)},
		{TableSection, NewOperationSet(OperationRetrieve, OperationCreate, OperationUpdate, OperationDelete)},
		{TableDepartment, NewOperationSet(OperationRetrieve)},
	},
	RoleStudent: {
		{TableTakes, NewOperationSet(OperationRegister, OperationRetrieve, OperationDrop)},
		{TableTranscript, NewOperationSet(OperationRetrieve)},
	},
}

// CapabilitiesFor builds the capability table of role. Unknown roles and
// RoleNone get an empty table.
func CapabilitiesFor(role Role) Capabilities {
	grants := policy[role]
	c := Capabilities{
		role:   role,
		tables: make([]Table, 0, len(grants)),
		ops:    make(map[Table]OperationSet, len(grants)),
	}
	for _, g := range grants {
		if g.ops.Empty() {
			continue
		}
		c.tables = append(c.tables, g.table)
		c.ops[g.table] = g.ops
	}
	return c
}

// Role returns the role the table was built for.
func (c Capabilities) Role() Role {
	return c.role
}

// OperationsFor returns the operations allowed on table, or the empty set.
func (c Capabilities) OperationsFor(table Table) OperationSet {
	return c.ops[table]
}

// Tables returns the accessible tables. The order is fixed per role so menu
// indices stay consistent.
func (c Capabilities) Tables() []Table {
	tables := make([]Table, len(c.tables))
	copy(tables, c.tables)
	return tables
}

// Allows reports whether op is permitted on table.
func (c Capabilities) Allows(table Table, op Operation) bool {
	return c.OperationsFor(table).Has(op)
}

// OperationsFor is shorthand for CapabilitiesFor(role).OperationsFor(table).
func OperationsFor(role Role, table Table) OperationSet {
	return CapabilitiesFor(role).OperationsFor(table)
}

// TablesFor is shorthand for CapabilitiesFor(role).Tables().
func TablesFor(role Role) []Table {
	return CapabilitiesFor(role).Tables()
}

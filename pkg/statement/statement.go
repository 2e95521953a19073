package statement

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"

	"github.com/doodlesbykumbi/registrar/pkg/sanitize"
)

// ErrValidation is returned for malformed or missing caller input.
var ErrValidation = errors.New("statement: invalid input")

// NullToken is the literal value Insert renders as SQL NULL. The match is
// case-insensitive.
const NullToken = "null"

// Statement is a built SQL command and its bound arguments.
type Statement struct {
	SQL  string
	Args []any
}

func (s Statement) String() string {
	return s.SQL
}

// And appends a trusted, argument-free condition to the WHERE clause built by
// Update or Delete.
func (s Statement) And(cond string) Statement {
	s.SQL += " AND " + cond
	return s
}

// Pairs maps a column name to a value. It is the shape of both selectors and
// payloads.
type Pairs map[string]string

// Clause is an internal, trusted fragment appended to a SELECT. Its
// placeholders are numbered from $1 and bind Args.
type Clause struct {
	SQL  string
	Args []any
}

// Where is a convenience constructor for Clause.
func Where(sql string, args ...any) Clause {
	return Clause{SQL: sql, Args: args}
}

// Ident cleans and quotes an identifier.
func Ident(name string) string {
	return pq.QuoteIdentifier(sanitize.Clean(name))
}

type pair struct {
	column string
	value  string
}

// normalize cleans column names, drops pairs whose column is empty after
// cleaning and sorts by column.
func (p Pairs) normalize() []pair {
	out := make([]pair, 0, len(p))
	for col, val := range p {
		col = sanitize.Clean(col)
		if col == "" {
			continue
		}
		out = append(out, pair{column: col, value: val})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].column < out[j].column })
	return out
}

type builder struct {
	args []any
}

func (b *builder) bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *builder) assignments(pairs []pair, sep string) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("%s = %s", pq.QuoteIdentifier(p.column), b.bind(p.value))
	}
	return strings.Join(parts, sep)
}

func checkTable(table string) error {
	if sanitize.Clean(table) == "" {
		return fmt.Errorf("%w: table name is required", ErrValidation)
	}
	return nil
}

// Insert builds INSERT INTO table VALUES (...). Every value must be non-empty
// after cleaning. A value that cleans to NullToken is rendered as an unquoted
// NULL; every other value is bound as given.
func Insert(table string, values ...string) (Statement, error) {
	if err := checkTable(table); err != nil {
		return Statement{}, err
	}
	if len(values) == 0 {
		return Statement{}, fmt.Errorf("%w: no values", ErrValidation)
	}

	b := &builder{}
	list := make([]string, len(values))
	for i, v := range values {
		cleaned := sanitize.Clean(v)
		if cleaned == "" {
			return Statement{}, fmt.Errorf("%w: value %d is empty", ErrValidation, i+1)
		}
		if strings.EqualFold(cleaned, NullToken) {
			list[i] = "NULL"
			continue
		}
		list[i] = b.bind(v)
	}

	sql := fmt.Sprintf("INSERT INTO %s VALUES (%s)", Ident(table), strings.Join(list, ", "))
	return Statement{SQL: sql, Args: b.args}, nil
}

// Update builds UPDATE table SET <payload> WHERE <selector>. Both maps must
// hold at least one usable column.
func Update(table string, selector, payload Pairs) (Statement, error) {
	if err := checkTable(table); err != nil {
		return Statement{}, err
	}
	set := payload.normalize()
	if len(set) == 0 {
		return Statement{}, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	where := selector.normalize()
	if len(where) == 0 {
		return Statement{}, fmt.Errorf("%w: a selector is required", ErrValidation)
	}

	b := &builder{}
	setSQL := b.assignments(set, ", ")
	whereSQL := b.assignments(where, " AND ")
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s", Ident(table), setSQL, whereSQL)
	return Statement{SQL: sql, Args: b.args}, nil
}

// Delete builds DELETE FROM table WHERE <selector>.
func Delete(table string, selector Pairs) (Statement, error) {
	if err := checkTable(table); err != nil {
		return Statement{}, err
	}
	where := selector.normalize()
	if len(where) == 0 {
		return Statement{}, fmt.Errorf("%w: a selector is required", ErrValidation)
	}

	b := &builder{}
	sql := fmt.Sprintf("DELETE FROM %s WHERE %s", Ident(table), b.assignments(where, " AND "))
	return Statement{SQL: sql, Args: b.args}, nil
}

// Select builds SELECT <columns> FROM table <clause>. With no columns every
// column is selected. The clause is appended verbatim and must never be built
// from external input.
func Select(table string, clause Clause, columns ...string) Statement {
	return selectFrom(Ident(table), clause, columns)
}

// SelectJoin is Select over left NATURAL JOIN right.
func SelectJoin(left, right string, clause Clause, columns ...string) Statement {
	return selectFrom(Ident(left)+" NATURAL JOIN "+Ident(right), clause, columns)
}

func selectFrom(from string, clause Clause, columns []string) Statement {
	cols := "*"
	if len(columns) > 0 {
		quoted := make([]string, len(columns))
		for i, c := range columns {
			quoted[i] = Ident(c)
		}
		cols = strings.Join(quoted, ", ")
	}

	sql := fmt.Sprintf("SELECT %s FROM %s", cols, from)
	if clause.SQL != "" {
		sql += " " + clause.SQL
	}
	return Statement{SQL: sql, Args: clause.Args}
}

// Package executor runs built statements against the store.
//
// An Executor is the explicit execution context of a session: it owns at most
// one live cursor, closing the previous one whenever a new query is issued,
// and records the last execution error for out-of-band inspection.
//
//	exec := executor.New(conn)
//	cur, err := exec.Execute(ctx, statement.Select("department", statement.Clause{}))
//	if err != nil {
//	    return err
//	}
//	rows, err := cur.Tuples("dept_name", "building")
package executor

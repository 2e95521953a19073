package university

import (
	"context"
	"fmt"

	"github.com/doodlesbykumbi/registrar/pkg/executor"
	"github.com/doodlesbykumbi/registrar/pkg/permission"
	"github.com/doodlesbykumbi/registrar/pkg/statement"
	"github.com/doodlesbykumbi/registrar/pkg/transcript"
)

// CurrentSections lists the sections offered in the registration year.
// Students see them through their right to register; staff through their
// right to read sections.
func (c *Catalog) CurrentSections(ctx context.Context) (Result, error) {
	table, op := permission.TableSection, permission.OperationRetrieve
	if c.session.Role() == permission.RoleStudent {
		table, op = permission.TableTakes, permission.OperationRegister
	}
	if err := c.authorize(table, op); err != nil {
		return Result{}, err
	}
	stmt := statement.Select(permission.TableSection.String(),
		statement.Where(`WHERE "year" = $1`, c.term.Year),
		sectionColumns...)
	return c.query(ctx, stmt, sectionColumns)
}

// EnrolledSections lists the current student's ungraded enrollments.
func (c *Catalog) EnrolledSections(ctx context.Context) (Result, error) {
	if err := c.authorize(permission.TableTakes, permission.OperationRetrieve); err != nil {
		return Result{}, err
	}
	_, id, err := c.student()
	if err != nil {
		return Result{}, err
	}
	stmt := statement.Select(permission.TableTakes.String(),
		statement.Where(`WHERE "id" = $1 AND "grade" IS NULL`, id),
		enrolledColumns...)
	return c.query(ctx, stmt, enrolledColumns)
}

// Register enrolls the current student in a section for the configured term.
// The grade starts out NULL.
func (c *Catalog) Register(ctx context.Context, courseID, sectionID string) error {
	if err := c.authorize(permission.TableTakes, permission.OperationRegister); err != nil {
		return err
	}
	_, id, err := c.student()
	if err != nil {
		return err
	}
	stmt, err := statement.Insert(permission.TableTakes.String(),
		id, courseID, sectionID, c.term.Semester, c.term.Year, statement.NullToken)
	return c.run(ctx, permission.TableTakes, permission.OperationRegister, stmt, err, false)
}

// Drop removes the current student's ungraded enrollment in courseID.
// It returns ErrNoMatch when there is none.
func (c *Catalog) Drop(ctx context.Context, courseID string) error {
	if err := c.authorize(permission.TableTakes, permission.OperationDrop); err != nil {
		return err
	}
	_, id, err := c.student()
	if err != nil {
		return err
	}
	if courseID == "" {
		return c.run(ctx, permission.TableTakes, permission.OperationDrop, statement.Statement{}, missingKey("course_id"), false)
	}
	stmt, err := statement.Delete(permission.TableTakes.String(), statement.Pairs{"course_id": courseID, "id": id})
	if err == nil {
		stmt = stmt.And(`"grade" IS NULL`)
	}
	return c.run(ctx, permission.TableTakes, permission.OperationDrop, stmt, err, true)
}

// Transcript computes the current student's transcript from their graded
// enrollments, newest first.
func (c *Catalog) Transcript(ctx context.Context) (transcript.Transcript, error) {
	if err := c.authorize(permission.TableTranscript, permission.OperationRetrieve); err != nil {
		return transcript.Transcript{}, err
	}
	p, id, err := c.student()
	if err != nil {
		return transcript.Transcript{}, err
	}

	stmt := statement.SelectJoin(permission.TableTakes.String(), permission.TableCourse.String(),
		statement.Where(`WHERE "id" = $1 AND "grade" IS NOT NULL `+transcript.OrderClause, id),
		transcript.Columns...)
	cursor, err := c.exec.Execute(ctx, stmt)
	if err != nil {
		return transcript.Transcript{}, err
	}
	tuples, err := cursor.Tuples(transcript.Columns...)
	if err != nil {
		return transcript.Transcript{}, err
	}

	rows := make([]transcript.Row, 0, len(tuples))
	for _, tuple := range tuples {
		row, err := transcript.ParseRow(tuple, executor.TupleSeparator)
		if err != nil {
			return transcript.Transcript{}, fmt.Errorf("transcript for %s: %w", p.Name, err)
		}
		rows = append(rows, row)
	}
	return transcript.Compute(p.Name, rows), nil
}

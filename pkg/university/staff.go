package university

import (
	"context"

	"github.com/doodlesbykumbi/registrar/pkg/permission"
	"github.com/doodlesbykumbi/registrar/pkg/statement"
)

// Departments lists every department.
func (c *Catalog) Departments(ctx context.Context) (Result, error) {
	if err := c.authorize(permission.TableDepartment, permission.OperationRetrieve); err != nil {
		return Result{}, err
	}
	stmt := statement.Select(permission.TableDepartment.String(), statement.Clause{}, departmentColumns...)
	return c.query(ctx, stmt, departmentColumns)
}

// Courses lists every course.
func (c *Catalog) Courses(ctx context.Context) (Result, error) {
	if err := c.authorize(permission.TableCourse, permission.OperationRetrieve); err != nil {
		return Result{}, err
	}
	stmt := statement.Select(permission.TableCourse.String(), statement.Clause{}, courseColumns...)
	return c.query(ctx, stmt, courseColumns)
}

// Sections lists every section.
func (c *Catalog) Sections(ctx context.Context) (Result, error) {
	if err := c.authorize(permission.TableSection, permission.OperationRetrieve); err != nil {
		return Result{}, err
	}
	stmt := statement.Select(permission.TableSection.String(), statement.Clause{}, sectionColumns...)
	return c.query(ctx, stmt, sectionColumns)
}

// CreateCourse inserts a course.
func (c *Catalog) CreateCourse(ctx context.Context, course Course) error {
	if err := c.authorize(permission.TableCourse, permission.OperationCreate); err != nil {
		return err
	}
	stmt, err := statement.Insert(permission.TableCourse.String(), course.values()...)
	return c.run(ctx, permission.TableCourse, permission.OperationCreate, stmt, err, false)
}

// CreateSection inserts a section.
func (c *Catalog) CreateSection(ctx context.Context, section Section) error {
	if err := c.authorize(permission.TableSection, permission.OperationCreate); err != nil {
		return err
	}
	stmt, err := statement.Insert(permission.TableSection.String(), section.values()...)
	return c.run(ctx, permission.TableSection, permission.OperationCreate, stmt, err, false)
}

// UpdateCourse sets the non-empty payload columns of the course keyed by
// courseID.
func (c *Catalog) UpdateCourse(ctx context.Context, courseID string, payload statement.Pairs) error {
	if err := c.authorize(permission.TableCourse, permission.OperationUpdate); err != nil {
		return err
	}
	selector := statement.Pairs{"course_id": courseID}
	stmt, err := statement.Update(permission.TableCourse.String(), nonEmpty(selector), nonEmpty(payload))
	return c.run(ctx, permission.TableCourse, permission.OperationUpdate, stmt, err, true)
}

// UpdateSection sets the non-empty payload columns of the section keyed by
// courseID and sectionID.
func (c *Catalog) UpdateSection(ctx context.Context, courseID, sectionID string, payload statement.Pairs) error {
	if err := c.authorize(permission.TableSection, permission.OperationUpdate); err != nil {
		return err
	}
	selector := statement.Pairs{"course_id": courseID, "sec_id": sectionID}
	stmt, err := statement.Update(permission.TableSection.String(), nonEmpty(selector), nonEmpty(payload))
	return c.run(ctx, permission.TableSection, permission.OperationUpdate, stmt, err, true)
}

// DeleteCourse removes the course keyed by courseID.
func (c *Catalog) DeleteCourse(ctx context.Context, courseID string) error {
	if err := c.authorize(permission.TableCourse, permission.OperationDelete); err != nil {
		return err
	}
	stmt, err := statement.Delete(permission.TableCourse.String(), nonEmpty(statement.Pairs{"course_id": courseID}))
	return c.run(ctx, permission.TableCourse, permission.OperationDelete, stmt, err, true)
}

// DeleteSection removes one offering of a section. Building, room and time
// slot are ignored.
func (c *Catalog) DeleteSection(ctx context.Context, section Section) error {
	if err := c.authorize(permission.TableSection, permission.OperationDelete); err != nil {
		return err
	}
	keys := []struct{ column, value string }{
		{"course_id", section.CourseID},
		{"sec_id", section.SectionID},
		{"semester", section.Semester},
		{"year", section.Year},
	}
	selector := make(statement.Pairs, len(keys))
	for _, k := range keys {
		if k.value == "" {
			// a partial key would delete every offering
			return c.run(ctx, permission.TableSection, permission.OperationDelete, statement.Statement{}, missingKey(k.column), false)
		}
		selector[k.column] = k.value
	}
	stmt, err := statement.Delete(permission.TableSection.String(), selector)
	return c.run(ctx, permission.TableSection, permission.OperationDelete, stmt, err, true)
}

// nonEmpty drops pairs whose value is empty.
func nonEmpty(p statement.Pairs) statement.Pairs {
	out := make(statement.Pairs, len(p))
	for col, val := range p {
		if val != "" {
			out[col] = val
		}
	}
	return out
}

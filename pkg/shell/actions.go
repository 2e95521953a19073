package shell

import (
	"context"
	"errors"

	"github.com/doodlesbykumbi/registrar/pkg/permission"
	"github.com/doodlesbykumbi/registrar/pkg/statement"
	"github.com/doodlesbykumbi/registrar/pkg/university"
)

// report prints success or failure. Store errors stay out of the output;
// they are in the audit log and the catalog's LastError.
func (s *Shell) report(err error, success, failure string) {
	switch {
	case err == nil:
		s.println(success)
	case errors.Is(err, university.ErrForbidden):
		s.println("You are not permitted to do that.")
	default:
		s.println(failure)
	}
}

func (s *Shell) retrieve(ctx context.Context, table permission.Table) error {
	var (
		result university.Result
		err    error
	)
	switch table {
	case permission.TableDepartment:
		result, err = s.catalog.Departments(ctx)
	case permission.TableCourse:
		result, err = s.catalog.Courses(ctx)
	case permission.TableSection:
		result, err = s.catalog.Sections(ctx)
	case permission.TableTakes:
		result, err = s.catalog.EnrolledSections(ctx)
	case permission.TableTranscript:
		t, err := s.catalog.Transcript(ctx)
		if err != nil {
			s.report(err, "", "Transcript could not be retrieved. Please try again.")
			return nil
		}
		renderLines(s.out, t.Lines)
		return nil
	default:
		return nil
	}
	if err != nil {
		s.report(err, "", "Rows could not be retrieved. Please try again.")
		return nil
	}
	renderResult(s.out, result)
	return nil
}

// prompts reads one answer per prompt, in order.
func (s *Shell) prompts(prompts ...string) ([]string, error) {
	answers := make([]string, len(prompts))
	for i, p := range prompts {
		a, err := s.read(p)
		if err != nil {
			return nil, err
		}
		answers[i] = a
	}
	return answers, nil
}

func (s *Shell) create(ctx context.Context, table permission.Table) error {
	switch table {
	case permission.TableCourse:
		a, err := s.prompts("Enter course_id: ", "Enter title: ", "Enter department_name: ", "Enter credit hours: ")
		if err != nil {
			return err
		}
		err = s.catalog.CreateCourse(ctx, university.Course{ID: a[0], Title: a[1], Department: a[2], Credits: a[3]})
		s.report(err, "Course successfully added!", "Course could not be added. Please try again.")

	case permission.TableSection:
		a, err := s.prompts("Enter course_id: ", "Enter sec_id: ", "Enter semester: ", "Enter year: ",
			"Enter building: ", "Enter room_number: ", "Enter time_slot_id: ")
		if err != nil {
			return err
		}
		err = s.catalog.CreateSection(ctx, university.Section{
			CourseID: a[0], SectionID: a[1], Semester: a[2], Year: a[3],
			Building: a[4], RoomNumber: a[5], TimeSlotID: a[6],
		})
		s.report(err, "Section successfully added!", "Section could not be added. Please try again.")
	}
	return nil
}

func (s *Shell) update(ctx context.Context, table permission.Table) error {
	s.println("Attributes denoted with '*' are REQUIRED.")

	switch table {
	case permission.TableCourse:
		a, err := s.prompts("Enter the course_id of the course to update*: ",
			"Enter new title: ", "Enter new department_name: ", "Enter new credit hours: ")
		if err != nil {
			return err
		}
		err = s.catalog.UpdateCourse(ctx, a[0], statement.Pairs{"title": a[1], "dept_name": a[2], "credits": a[3]})
		s.report(err, "Course successfully updated!", "Course could not be updated. Please try again.")

	case permission.TableSection:
		a, err := s.prompts("Enter the course_id of the section to update*: ",
			"Enter the sec_id of the section to update*: ",
			"Enter new building: ", "Enter new room_number: ", "Enter new time_slot_id: ")
		if err != nil {
			return err
		}
		err = s.catalog.UpdateSection(ctx, a[0], a[1], statement.Pairs{"building": a[2], "room_number": a[3], "time_slot_id": a[4]})
		s.report(err, "Section successfully updated!", "Section could not be updated. Please try again.")
	}
	return nil
}

func (s *Shell) delete(ctx context.Context, table permission.Table) error {
	switch table {
	case permission.TableCourse:
		s.println("You will be unable to delete courses that are pre-reqs for other classes.")
		id, err := s.read("Enter the course_id to be deleted: ")
		if err != nil {
			return err
		}
		ok, err := s.confirm("You would like to remove \"" + id + "\", is this correct?")
		if err != nil || !ok {
			return err
		}
		err = s.catalog.DeleteCourse(ctx, id)
		s.report(err, "Course successfully deleted!", "Course could not be deleted. Please try again.")

	case permission.TableSection:
		s.println("You will be unable to delete sections that are already assigned for a class.")
		a, err := s.prompts("Enter the course_id to be deleted: ", "Enter the sec_id to be deleted: ",
			"Enter the semester to be deleted: ", "Enter the year to be deleted: ")
		if err != nil {
			return err
		}
		ok, err := s.confirm("You would like to remove \"" + a[0] + "\" - Section " + a[1] + ", is this correct?")
		if err != nil || !ok {
			return err
		}
		err = s.catalog.DeleteSection(ctx, university.Section{CourseID: a[0], SectionID: a[1], Semester: a[2], Year: a[3]})
		s.report(err, "Section successfully deleted!", "Section could not be deleted. Please try again.")
	}
	return nil
}

func (s *Shell) register(ctx context.Context) error {
	if result, err := s.catalog.CurrentSections(ctx); err == nil {
		renderResult(s.out, result)
	}

	a, err := s.prompts("Enter course_id to register for: ", "Enter sec_id to register for: ")
	if err != nil {
		return err
	}
	err = s.catalog.Register(ctx, a[0], a[1])
	s.report(err, "Successfully registered for "+a[0],
		"There is no matching section available this semester or you are already enrolled.")
	return nil
}

func (s *Shell) drop(ctx context.Context) error {
	id, err := s.read("Enter course_id to drop: ")
	if err != nil {
		return err
	}
	ok, err := s.confirm("You would like to drop \"" + id + "\", is this correct?")
	if err != nil || !ok {
		return err
	}
	err = s.catalog.Drop(ctx, id)
	s.report(err, "Section enrollment successfully dropped",
		"You do not appear to be enrolled in this class. Please try again.")
	return nil
}

package university

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/doodlesbykumbi/registrar/pkg/audit"
	"github.com/doodlesbykumbi/registrar/pkg/executor"
	"github.com/doodlesbykumbi/registrar/pkg/permission"
	"github.com/doodlesbykumbi/registrar/pkg/session"
	"github.com/doodlesbykumbi/registrar/pkg/statement"
	"github.com/doodlesbykumbi/registrar/pkg/store"
)

type recorder struct {
	events []audit.Event
}

func (r *recorder) Log(e audit.Event) {
	r.events = append(r.events, e)
}

func (r *recorder) statements() []audit.StatementEvent {
	var out []audit.StatementEvent
	for _, e := range r.events {
		if se, ok := e.(audit.StatementEvent); ok {
			out = append(out, se)
		}
	}
	return out
}

type Suite struct {
	suite.Suite
	mock     sqlmock.Sqlmock
	conn     *store.Conn
	registry *session.Registry
	session  *session.Session
	catalog  *Catalog
	audit    *recorder
	ctx      context.Context
}

func (s *Suite) SetupTest() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)
	s.mock = mock

	s.conn, err = store.FromDB(db, store.Config{Host: "localhost", Port: 5432, User: "registrar", Database: "university"})
	s.Require().NoError(err)

	s.audit = &recorder{}
	s.registry = session.NewRegistry()
	s.session = session.New(s.registry, session.WithAuditSink(s.audit))
	s.catalog = New(s.conn, s.registry, s.session,
		WithAuditSink(s.audit),
		WithTerm(Term{Semester: "Spring", Year: "2016"}))
	s.ctx = context.Background()

	_, err = s.registry.Register("brown", "brown123", permission.RoleStaff)
	s.Require().NoError(err)
	_, err = s.registry.Register("grey", "grey123", permission.RoleStudent)
	s.Require().NoError(err)
}

func (s *Suite) TearDownTest() {
	s.Assert().NoError(s.mock.ExpectationsWereMet())
	_ = s.conn.Close()
}

func TestCatalog(t *testing.T) {
	suite.Run(t, new(Suite))
}

func (s *Suite) login(name, secret string) {
	_, err := s.session.Authenticate(name, secret)
	s.Require().NoError(err)
}

func (s *Suite) TestAddPrincipal_StudentCreatesRecord() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(1) FROM "student" WHERE id = $1`)).
		WithArgs(-7365989).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "student"`)).
		WithArgs(-7365989, "alexandra the great student", "Biology", 0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	s.mock.ExpectCommit()

	p, err := s.catalog.AddPrincipal(s.ctx, "alexandra the great student", "pw", permission.RoleStudent)
	s.Require().NoError(err)
	s.Equal(int32(-7365989), p.StudentID())
	s.Equal(3, s.registry.Len())
}

func (s *Suite) TestAddPrincipal_ExistingStudent() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(1) FROM "student" WHERE id = $1`)).
		WithArgs(12426).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	s.mock.ExpectCommit()

	_, err := s.catalog.AddPrincipal(s.ctx, "grey", "grey123", permission.RoleStudent)
	s.NoError(err)
}

func (s *Suite) TestAddPrincipal_CreateFailureRollsBack() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(1) FROM "student" WHERE id = $1`)).
		WithArgs(12426).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "student"`)).
		WillReturnError(&pq.Error{Code: "23503", Message: "department missing"})
	s.mock.ExpectRollback()

	_, err := s.catalog.AddPrincipal(s.ctx, "grey", "grey123", permission.RoleStudent)
	var pqErr *pq.Error
	s.Require().ErrorAs(err, &pqErr)
	s.Equal(pq.ErrorCode("23503"), pqErr.Code)
}

func (s *Suite) TestAddPrincipal_StaffSkipsStore() {
	_, err := s.catalog.AddPrincipal(s.ctx, "white", "white123", permission.RoleStaff)
	s.NoError(err)
}

func (s *Suite) TestAddPrincipal_Invalid() {
	_, err := s.catalog.AddPrincipal(s.ctx, "", "x", permission.RoleStaff)
	s.ErrorIs(err, session.ErrEmptyName)
}

func (s *Suite) TestDepartments() {
	s.login("brown", "brown123")
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT "dept_name", "building" FROM "department"`)).
		WillReturnRows(sqlmock.NewRows([]string{"dept_name", "building"}).
			AddRow("Biology", "Watson").
			AddRow("Comp. Sci.", "Taylor"))

	result, err := s.catalog.Departments(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"dept_name", "building"}, result.Columns)
	s.Equal([][]string{{"Biology", "Watson"}, {"Comp. Sci.", "Taylor"}}, result.Rows)
}

func (s *Suite) TestCoursesReadsNullAsToken() {
	s.login("brown", "brown123")
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT "course_id", "title", "dept_name", "credits" FROM "course"`)).
		WillReturnRows(sqlmock.NewRows([]string{"course_id", "title", "dept_name", "credits"}).
			AddRow("BIO-101", "Intro. to Biology", nil, "4"))

	result, err := s.catalog.Courses(s.ctx)
	s.Require().NoError(err)
	s.Equal([][]string{{"BIO-101", "Intro. to Biology", "null", "4"}}, result.Rows)
}

func (s *Suite) TestStudentForbiddenFromStaffTables() {
	s.login("grey", "grey123")

	_, err := s.catalog.Courses(s.ctx)
	s.ErrorIs(err, ErrForbidden)

	err = s.catalog.CreateCourse(s.ctx, Course{ID: "X", Title: "X", Department: "X", Credits: "1"})
	s.ErrorIs(err, ErrForbidden)
	s.Empty(s.audit.statements())
}

func (s *Suite) TestNobodyLoggedIn() {
	_, err := s.catalog.Departments(s.ctx)
	s.ErrorIs(err, ErrForbidden)
}

func (s *Suite) TestCreateCourse() {
	s.login("brown", "brown123")
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "course" VALUES ($1, $2, $3, $4)`)).
		WithArgs("CS-347", "Database System Concepts", "Comp. Sci.", "3").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.catalog.CreateCourse(s.ctx, Course{ID: "CS-347", Title: "Database System Concepts", Department: "Comp. Sci.", Credits: "3"})
	s.Require().NoError(err)
	s.Equal([]audit.StatementEvent{{Principal: "brown", Table: "course", Operation: "Create", Success: true}}, s.audit.statements())
}

func (s *Suite) TestCreateSectionValidation() {
	s.login("brown", "brown123")

	err := s.catalog.CreateSection(s.ctx, Section{CourseID: "CS-347", SectionID: "1"})
	s.ErrorIs(err, statement.ErrValidation)

	events := s.audit.statements()
	s.Require().Len(events, 1)
	s.False(events[0].Success)
}

func (s *Suite) TestCreateSectionRejected() {
	s.login("brown", "brown123")
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "section" VALUES ($1, $2, $3, $4, $5, $6, $7)`)).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := s.catalog.CreateSection(s.ctx, Section{
		CourseID: "CS-347", SectionID: "1", Semester: "Fall", Year: "2016",
		Building: "Taylor", RoomNumber: "3128", TimeSlotID: "A",
	})

	var execErr *executor.ExecutionError
	s.Require().ErrorAs(err, &execErr)
	s.Equal(executor.KindRejected, execErr.Kind)

	var pqErr *pq.Error
	s.Require().ErrorAs(err, &pqErr)
	s.Equal(pq.ErrorCode("23505"), pqErr.Code)
	s.Equal(err, s.catalog.LastError())
}

func (s *Suite) TestUpdateCourseSkipsEmptyFields() {
	s.login("brown", "brown123")
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "course" SET "credits" = $1, "title" = $2 WHERE "course_id" = $3`)).
		WithArgs("4", "Database Systems", "CS-347").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.catalog.UpdateCourse(s.ctx, "CS-347", statement.Pairs{"title": "Database Systems", "dept_name": "", "credits": "4"})
	s.NoError(err)
}

func (s *Suite) TestUpdateSectionNoMatch() {
	s.login("brown", "brown123")
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "section" SET "building" = $1 WHERE "course_id" = $2 AND "sec_id" = $3`)).
		WithArgs("Watson", "CS-347", "9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.catalog.UpdateSection(s.ctx, "CS-347", "9", statement.Pairs{"building": "Watson"})
	s.ErrorIs(err, ErrNoMatch)
}

func (s *Suite) TestUpdateCourseNothingToChange() {
	s.login("brown", "brown123")
	err := s.catalog.UpdateCourse(s.ctx, "CS-347", statement.Pairs{"title": ""})
	s.ErrorIs(err, statement.ErrValidation)
}

func (s *Suite) TestDeleteCourse() {
	s.login("brown", "brown123")
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "course" WHERE "course_id" = $1`)).
		WithArgs("CS-347").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.catalog.DeleteCourse(s.ctx, "CS-347"))
}

func (s *Suite) TestDeleteSectionRequiresFullKey() {
	s.login("brown", "brown123")
	err := s.catalog.DeleteSection(s.ctx, Section{CourseID: "CS-347", SectionID: "1", Semester: "Fall"})
	s.ErrorIs(err, statement.ErrValidation)
	s.Contains(err.Error(), "year")
}

func (s *Suite) TestDeleteSection() {
	s.login("brown", "brown123")
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "section" WHERE "course_id" = $1 AND "sec_id" = $2 AND "semester" = $3 AND "year" = $4`)).
		WithArgs("CS-347", "1", "Fall", "2016").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.catalog.DeleteSection(s.ctx, Section{CourseID: "CS-347", SectionID: "1", Semester: "Fall", Year: "2016"}))
}

func (s *Suite) TestCurrentSections() {
	s.login("grey", "grey123")
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT "course_id", "sec_id", "semester", "year", "building", "room_number", "time_slot_id" FROM "section" WHERE "year" = $1`)).
		WithArgs("2016").
		WillReturnRows(sqlmock.NewRows(sectionColumns).
			AddRow("BIO-101", "1", "Spring", "2016", "Painter", "514", "B"))

	result, err := s.catalog.CurrentSections(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, result.Len())
}

func (s *Suite) TestEnrolledSections() {
	s.login("grey", "grey123")
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT "course_id", "sec_id", "semester", "year" FROM "takes" WHERE "id" = $1 AND "grade" IS NULL`)).
		WithArgs("12426").
		WillReturnRows(sqlmock.NewRows(enrolledColumns).
			AddRow("BIO-101", "1", "Spring", "2016"))

	result, err := s.catalog.EnrolledSections(s.ctx)
	s.Require().NoError(err)
	s.Equal([][]string{{"BIO-101", "1", "Spring", "2016"}}, result.Rows)
}

func (s *Suite) TestRegister() {
	s.login("grey", "grey123")
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "takes" VALUES ($1, $2, $3, $4, $5, NULL)`)).
		WithArgs("12426", "BIO-101", "1", "Spring", "2016").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.Require().NoError(s.catalog.Register(s.ctx, "BIO-101", "1"))
	s.Equal([]audit.StatementEvent{{Principal: "grey", Table: "takes", Operation: "Register", Success: true}}, s.audit.statements())
}

func (s *Suite) TestRegisterAsStaffForbidden() {
	s.login("brown", "brown123")
	s.ErrorIs(s.catalog.Register(s.ctx, "BIO-101", "1"), ErrForbidden)
}

func (s *Suite) TestDrop() {
	s.login("grey", "grey123")
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "takes" WHERE "course_id" = $1 AND "id" = $2 AND "grade" IS NULL`)).
		WithArgs("BIO-101", "12426").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.catalog.Drop(s.ctx, "BIO-101"))
}

func (s *Suite) TestDropNoMatch() {
	s.login("grey", "grey123")
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "takes"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.catalog.Drop(s.ctx, "CS-999")
	s.ErrorIs(err, ErrNoMatch)

	events := s.audit.statements()
	s.Require().Len(events, 1)
	s.False(events[0].Success)
	s.Empty(events[0].ErrorMessage)
}

func (s *Suite) TestTranscript() {
	s.login("grey", "grey123")
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT "title", "course_id", "semester", "year", "grade", "credits" FROM "takes" NATURAL JOIN "course" WHERE "id" = $1 AND "grade" IS NOT NULL ORDER BY "year" DESC`)).
		WithArgs("12426").
		WillReturnRows(sqlmock.NewRows([]string{"title", "course_id", "semester", "year", "grade", "credits"}).
			AddRow("Genetics: An Introduction", "BIO-301", "Fall", "2015", "A", "4").
			AddRow("Intro. to Biology", "BIO-101", "Spring", "2015", "C", "2"))

	tr, err := s.catalog.Transcript(s.ctx)
	s.Require().NoError(err)
	s.Equal(6, tr.CreditHours)
	s.InDelta(20.0/6.0, tr.GPA, 1e-9)
	s.Equal([]string{
		"***Transcript for: grey***",
		"GPA: 3.33",
		"Took Genetics: An Introduction (BIO-301) in Fall of 2015 and received grade of 'A' | 4 credits",
		"Took Intro. to Biology (BIO-101) in Spring of 2015 and received grade of 'C' | 2 credits",
	}, tr.Lines)
}

func (s *Suite) TestTranscriptConnectionClosed() {
	s.login("grey", "grey123")
	s.mock.ExpectClose()
	s.Require().NoError(s.conn.Close())

	_, err := s.catalog.Transcript(s.ctx)
	s.ErrorIs(err, executor.ErrConnectionClosed)
}

func TestForbiddenMessage(t *testing.T) {
	err := forbidden(permission.TableCourse, permission.OperationDelete)
	require.True(t, errors.Is(err, ErrForbidden))
	assert.Equal(t, "Delete on course: operation not permitted", err.Error())
}

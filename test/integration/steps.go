package integration

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/doodlesbykumbi/registrar/pkg/audit"
	"github.com/doodlesbykumbi/registrar/pkg/permission"
	"github.com/doodlesbykumbi/registrar/pkg/session"
	"github.com/doodlesbykumbi/registrar/pkg/statement"
	"github.com/doodlesbykumbi/registrar/pkg/store"
	"github.com/doodlesbykumbi/registrar/pkg/transcript"
	"github.com/doodlesbykumbi/registrar/pkg/university"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc       *TestContext
	ctx      context.Context
	conn     *store.Conn
	registry *session.Registry
	session  *session.Session
	catalog  *university.Catalog
	events   []audit.Event

	lastErr    error
	result     university.Result
	transcript transcript.Transcript
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc, ctx: context.Background()}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, s.tc.Reset(ctx)
	})
	sc.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		if s.catalog != nil {
			s.catalog.Close()
		}
		if s.conn != nil {
			_ = s.conn.Close()
		}
		return ctx, nil
	})

	// Background steps
	sc.Step(`^the registrar is connected to the "([^"]*)" catalog$`, s.theRegistrarIsConnected)
	sc.Step(`^principal "([^"]*)" with secret "([^"]*)" is a (Staff|Student)$`, s.principalIsRegistered)

	// Authentication steps
	sc.Step(`^I log in as "([^"]*)" with secret "([^"]*)"$`, s.iLogIn)
	sc.Step(`^the login should succeed$`, s.theLoginShouldSucceed)
	sc.Step(`^the login should fail$`, s.theLoginShouldFail)
	sc.Step(`^a student record should exist for "([^"]*)"$`, s.aStudentRecordShouldExist)

	// Staff steps
	sc.Step(`^I list the (departments|courses|sections)$`, s.iList)
	sc.Step(`^I add course "([^"]*)" titled "([^"]*)" in "([^"]*)" worth "([^"]*)" credits$`, s.iAddCourse)
	sc.Step(`^I rename course "([^"]*)" to "([^"]*)"$`, s.iRenameCourse)
	sc.Step(`^I delete course "([^"]*)"$`, s.iDeleteCourse)
	sc.Step(`^course "([^"]*)" should be titled "([^"]*)"$`, s.courseShouldBeTitled)
	sc.Step(`^course "([^"]*)" should not exist$`, s.courseShouldNotExist)

	// Student steps
	sc.Step(`^I register for section "([^"]*)" of "([^"]*)"$`, s.iRegisterFor)
	sc.Step(`^I drop "([^"]*)"$`, s.iDrop)
	sc.Step(`^I list my enrolled sections$`, s.iListEnrolled)
	sc.Step(`^I request my transcript$`, s.iRequestTranscript)
	sc.Step(`^the transcript should read:$`, s.theTranscriptShouldRead)

	// Outcome steps
	sc.Step(`^the operation should succeed$`, s.theOperationShouldSucceed)
	sc.Step(`^the operation should be forbidden$`, s.theOperationShouldBeForbidden)
	sc.Step(`^the operation should find nothing to change$`, s.theOperationShouldFindNothing)
	sc.Step(`^the operation should be rejected by the database$`, s.theOperationShouldBeRejected)
	sc.Step(`^the result should have (\d+) rows?$`, s.theResultShouldHaveRows)
	sc.Step(`^the result should contain "([^"]*)"$`, s.theResultShouldContain)
	sc.Step(`^a "([^"]*)" audit event should have been recorded$`, s.anAuditEventShouldHaveBeenRecorded)
	sc.Step(`^the recorded audit events are saved to the audit store$`, s.theAuditEventsAreSaved)
	sc.Step(`^the audit store should hold (\d+) "([^"]*)" messages?$`, s.theAuditStoreShouldHold)
}

// Background steps

func (s *StepsContext) theRegistrarIsConnected(catalog string) error {
	conn, err := store.Connect(s.ctx, s.tc.Store)
	if err != nil {
		return err
	}
	if err := conn.SelectCatalog(s.ctx, catalog); err != nil {
		_ = conn.Close()
		return err
	}

	sink := audit.SinkFunc(func(e audit.Event) { s.events = append(s.events, e) })
	s.conn = conn
	s.registry = session.NewRegistry()
	s.session = session.New(s.registry, session.WithAuditSink(sink))
	s.catalog = university.New(conn, s.registry, s.session,
		university.WithAuditSink(sink),
		university.WithTerm(university.DefaultTerm))
	return nil
}

func (s *StepsContext) principalIsRegistered(name, secret, role string) error {
	r, err := permission.RoleString(role)
	if err != nil {
		return err
	}
	_, err = s.catalog.AddPrincipal(s.ctx, name, secret, r)
	return err
}

// Authentication steps

func (s *StepsContext) iLogIn(name, secret string) error {
	_, s.lastErr = s.session.Authenticate(name, secret)
	return nil
}

func (s *StepsContext) theLoginShouldSucceed() error {
	if s.lastErr != nil {
		return fmt.Errorf("expected login to succeed, got %v", s.lastErr)
	}
	return nil
}

func (s *StepsContext) theLoginShouldFail() error {
	if !errors.Is(s.lastErr, session.ErrInvalidCredentials) {
		return fmt.Errorf("expected invalid credentials, got %v", s.lastErr)
	}
	return nil
}

func (s *StepsContext) aStudentRecordShouldExist(name string) error {
	id := session.Principal{Name: name}.StudentID()
	var student university.Student
	if err := s.tc.DB.Where("id = ?", id).First(&student).Error; err != nil {
		return fmt.Errorf("student %d: %w", id, err)
	}
	if student.Name != name || student.DeptName != university.DefaultDepartment {
		return fmt.Errorf("unexpected student row %+v", student)
	}
	return nil
}

// Staff steps

func (s *StepsContext) iList(what string) error {
	switch what {
	case "departments":
		s.result, s.lastErr = s.catalog.Departments(s.ctx)
	case "courses":
		s.result, s.lastErr = s.catalog.Courses(s.ctx)
	case "sections":
		s.result, s.lastErr = s.catalog.Sections(s.ctx)
	}
	return nil
}

func (s *StepsContext) iAddCourse(id, title, dept, credits string) error {
	s.lastErr = s.catalog.CreateCourse(s.ctx, university.Course{ID: id, Title: title, Department: dept, Credits: credits})
	return nil
}

func (s *StepsContext) iRenameCourse(id, title string) error {
	s.lastErr = s.catalog.UpdateCourse(s.ctx, id, statement.Pairs{"title": title})
	return nil
}

func (s *StepsContext) iDeleteCourse(id string) error {
	s.lastErr = s.catalog.DeleteCourse(s.ctx, id)
	return nil
}

func (s *StepsContext) courseShouldBeTitled(id, title string) error {
	var got string
	if err := s.tc.RawDB.QueryRowContext(s.ctx, `SELECT title FROM course WHERE course_id = $1`, id).Scan(&got); err != nil {
		return err
	}
	if got != title {
		return fmt.Errorf("expected title %q, got %q", title, got)
	}
	return nil
}

func (s *StepsContext) courseShouldNotExist(id string) error {
	var count int64
	if err := s.tc.DB.Table("course").Where("course_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count != 0 {
		return fmt.Errorf("course %s still exists", id)
	}
	return nil
}

// Student steps

func (s *StepsContext) iRegisterFor(section, course string) error {
	s.lastErr = s.catalog.Register(s.ctx, course, section)
	return nil
}

func (s *StepsContext) iDrop(course string) error {
	s.lastErr = s.catalog.Drop(s.ctx, course)
	return nil
}

func (s *StepsContext) iListEnrolled() error {
	s.result, s.lastErr = s.catalog.EnrolledSections(s.ctx)
	return nil
}

func (s *StepsContext) iRequestTranscript() error {
	s.transcript, s.lastErr = s.catalog.Transcript(s.ctx)
	return nil
}

func (s *StepsContext) theTranscriptShouldRead(doc *godog.DocString) error {
	if s.lastErr != nil {
		return s.lastErr
	}
	want := strings.TrimSpace(doc.Content)
	got := strings.Join(s.transcript.Lines, "\n")
	if got != want {
		return fmt.Errorf("transcript mismatch\nwant:\n%s\ngot:\n%s", want, got)
	}
	return nil
}

// Outcome steps

func (s *StepsContext) theOperationShouldSucceed() error {
	if s.lastErr != nil {
		return fmt.Errorf("expected success, got %v", s.lastErr)
	}
	return nil
}

func (s *StepsContext) theOperationShouldBeForbidden() error {
	if !errors.Is(s.lastErr, university.ErrForbidden) {
		return fmt.Errorf("expected forbidden, got %v", s.lastErr)
	}
	return nil
}

func (s *StepsContext) theOperationShouldFindNothing() error {
	if !errors.Is(s.lastErr, university.ErrNoMatch) {
		return fmt.Errorf("expected no match, got %v", s.lastErr)
	}
	return nil
}

func (s *StepsContext) theOperationShouldBeRejected() error {
	if s.lastErr == nil || errors.Is(s.lastErr, university.ErrForbidden) {
		return fmt.Errorf("expected a database rejection, got %v", s.lastErr)
	}
	return nil
}

func (s *StepsContext) theResultShouldHaveRows(n string) error {
	if s.lastErr != nil {
		return s.lastErr
	}
	want, _ := strconv.Atoi(n)
	if s.result.Len() != want {
		return fmt.Errorf("expected %d rows, got %d: %v", want, s.result.Len(), s.result.Rows)
	}
	return nil
}

func (s *StepsContext) theResultShouldContain(value string) error {
	for _, row := range s.result.Rows {
		for _, v := range row {
			if v == value {
				return nil
			}
		}
	}
	return fmt.Errorf("%q not found in %v", value, s.result.Rows)
}

func (s *StepsContext) anAuditEventShouldHaveBeenRecorded(msgid string) error {
	for _, e := range s.events {
		if e.MessageID() == msgid {
			return nil
		}
	}
	return fmt.Errorf("no %q audit event among %d events", msgid, len(s.events))
}

func (s *StepsContext) theAuditEventsAreSaved() error {
	st := audit.NewStoreWithDB(s.tc.RawDB)
	if err := st.Migrate(s.ctx); err != nil {
		return err
	}
	if _, err := s.tc.RawDB.ExecContext(s.ctx, `TRUNCATE messages`); err != nil {
		return err
	}
	for _, e := range s.events {
		if err := st.SaveContext(s.ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (s *StepsContext) theAuditStoreShouldHold(n, msgid string) error {
	want, _ := strconv.Atoi(n)
	var got int
	if err := s.tc.RawDB.QueryRowContext(s.ctx, `SELECT count(*) FROM messages WHERE msgid = $1`, msgid).Scan(&got); err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected %d %q messages, got %d", want, msgid, got)
	}
	return nil
}

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/doodlesbykumbi/registrar/pkg/permission"
	"github.com/doodlesbykumbi/registrar/pkg/session"
	"github.com/doodlesbykumbi/registrar/pkg/statement"
	"github.com/doodlesbykumbi/registrar/pkg/transcript"
	"github.com/doodlesbykumbi/registrar/pkg/university"
)

// Catalog is the set of registrar operations the shell drives.
// *university.Catalog satisfies it.
type Catalog interface {
	Departments(ctx context.Context) (university.Result, error)
	Courses(ctx context.Context) (university.Result, error)
	Sections(ctx context.Context) (university.Result, error)
	CurrentSections(ctx context.Context) (university.Result, error)
	EnrolledSections(ctx context.Context) (university.Result, error)

	CreateCourse(ctx context.Context, course university.Course) error
	CreateSection(ctx context.Context, section university.Section) error
	UpdateCourse(ctx context.Context, courseID string, payload statement.Pairs) error
	UpdateSection(ctx context.Context, courseID, sectionID string, payload statement.Pairs) error
	DeleteCourse(ctx context.Context, courseID string) error
	DeleteSection(ctx context.Context, section university.Section) error

	Register(ctx context.Context, courseID, sectionID string) error
	Drop(ctx context.Context, courseID string) error
	Transcript(ctx context.Context) (transcript.Transcript, error)
}

// Session is the login state the shell builds its menus from.
// *session.Session satisfies it.
type Session interface {
	Authenticate(name, secret string) (session.Principal, error)
	Tables() []permission.Table
	OperationsFor(table permission.Table) []permission.Operation
}

// Shell runs the interactive session.
type Shell struct {
	catalog Catalog
	session Session
	in      Prompter
	out     io.Writer
	banner  string
}

// New creates a shell reading from in and writing to out.
func New(catalog Catalog, sess Session, in Prompter, out io.Writer) *Shell {
	return &Shell{
		catalog: catalog,
		session: sess,
		in:      in,
		out:     out,
		banner:  "University Registrar",
	}
}

func (s *Shell) println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

// Run logs a principal in and serves menus until they return from the main
// menu or input ends.
func (s *Shell) Run(ctx context.Context) error {
	s.printf("Welcome to the %s!\nPlease log in.\n", s.banner)

	err := s.run(ctx)
	if errors.Is(err, errQuit) {
		s.println()
		err = nil
	}
	if err == nil {
		s.printf("Thank you for using the %s!\n", s.banner)
	}
	return err
}

func (s *Shell) run(ctx context.Context) error {
	p, err := s.login()
	if err != nil {
		return err
	}
	s.printf("Hello %s, you have successfully logged in!\n", p.Name)
	return s.mainMenu(ctx)
}

func (s *Shell) login() (session.Principal, error) {
	for {
		name, err := s.read("Enter username: ")
		if err != nil {
			return session.Principal{}, err
		}
		secret, err := s.readSecret("Enter password: ")
		if err != nil {
			return session.Principal{}, err
		}

		p, err := s.session.Authenticate(name, secret)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, session.ErrInvalidCredentials) {
			return session.Principal{}, err
		}
		s.println("Invalid credentials supplied. Please try again.")
	}
}

func (s *Shell) mainMenu(ctx context.Context) error {
	tables := s.session.Tables()
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.String()
	}

	for {
		box(s.out, "Available Tables", names)
		choice, err := s.readChoice("Choose an option: ", "Please choose a valid option: ", len(tables))
		if err != nil {
			return err
		}
		if choice == 0 {
			return nil
		}
		if err := s.commandMenu(ctx, tables[choice-1]); err != nil {
			return err
		}
	}
}

func (s *Shell) commandMenu(ctx context.Context, table permission.Table) error {
	ops := s.session.OperationsFor(table)
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.String()
	}

	for {
		box(s.out, fmt.Sprintf("Available Commands for %q", table.String()), names)
		choice, err := s.readChoice("Choose a command: ", "Please choose a valid command: ", len(ops))
		if err != nil {
			return err
		}
		if choice == 0 {
			return nil
		}
		if err := s.action(ctx, table, ops[choice-1]); err != nil {
			return err
		}
	}
}

func (s *Shell) action(ctx context.Context, table permission.Table, op permission.Operation) error {
	switch op {
	case permission.OperationRetrieve:
		return s.retrieve(ctx, table)
	case permission.OperationCreate:
		return s.create(ctx, table)
	case permission.OperationUpdate:
		return s.update(ctx, table)
	case permission.OperationDelete:
		return s.delete(ctx, table)
	case permission.OperationRegister:
		return s.register(ctx)
	case permission.OperationDrop:
		return s.drop(ctx)
	}
	return nil
}

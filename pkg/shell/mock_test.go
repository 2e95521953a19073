package shell

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/registrar/pkg/statement"
	"github.com/doodlesbykumbi/registrar/pkg/transcript"
	"github.com/doodlesbykumbi/registrar/pkg/university"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Departments(ctx context.Context) (university.Result, error) {
	args := m.Called(ctx)
	return args.Get(0).(university.Result), args.Error(1)
}

func (m *mockCatalog) Courses(ctx context.Context) (university.Result, error) {
	args := m.Called(ctx)
	return args.Get(0).(university.Result), args.Error(1)
}

func (m *mockCatalog) Sections(ctx context.Context) (university.Result, error) {
	args := m.Called(ctx)
	return args.Get(0).(university.Result), args.Error(1)
}

func (m *mockCatalog) CurrentSections(ctx context.Context) (university.Result, error) {
	args := m.Called(ctx)
	return args.Get(0).(university.Result), args.Error(1)
}

func (m *mockCatalog) EnrolledSections(ctx context.Context) (university.Result, error) {
	args := m.Called(ctx)
	return args.Get(0).(university.Result), args.Error(1)
}

func (m *mockCatalog) CreateCourse(ctx context.Context, course university.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *mockCatalog) CreateSection(ctx context.Context, section university.Section) error {
	return m.Called(ctx, section).Error(0)
}

func (m *mockCatalog) UpdateCourse(ctx context.Context, courseID string, payload statement.Pairs) error {
	return m.Called(ctx, courseID, payload).Error(0)
}

func (m *mockCatalog) UpdateSection(ctx context.Context, courseID, sectionID string, payload statement.Pairs) error {
	return m.Called(ctx, courseID, sectionID, payload).Error(0)
}

func (m *mockCatalog) DeleteCourse(ctx context.Context, courseID string) error {
	return m.Called(ctx, courseID).Error(0)
}

func (m *mockCatalog) DeleteSection(ctx context.Context, section university.Section) error {
	return m.Called(ctx, section).Error(0)
}

func (m *mockCatalog) Register(ctx context.Context, courseID, sectionID string) error {
	return m.Called(ctx, courseID, sectionID).Error(0)
}

func (m *mockCatalog) Drop(ctx context.Context, courseID string) error {
	return m.Called(ctx, courseID).Error(0)
}

func (m *mockCatalog) Transcript(ctx context.Context) (transcript.Transcript, error) {
	args := m.Called(ctx)
	return args.Get(0).(transcript.Transcript), args.Error(1)
}

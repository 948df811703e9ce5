package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marknote-dev/marknote/internal/core/domain"
	"github.com/marknote-dev/marknote/internal/core/ports/driving"
)

// MockDocumentService implements driving.DocumentService for testing.
type MockDocumentService struct {
	doc *domain.Document

	OpenFunc   func(path string, discard bool) error
	NewFunc    func(discard bool) error
	SaveFunc   func() error
	SaveAsFunc func(path string) (string, error)
}

func (m *MockDocumentService) Current() *domain.Document {
	if m.doc == nil {
		m.doc = domain.NewDocument()
	}
	return m.doc
}

func (m *MockDocumentService) Open(path string, discard bool) error {
	if m.OpenFunc != nil {
		return m.OpenFunc(path, discard)
	}
	doc := m.Current()
	if doc.Dirty() && !discard {
		return domain.ErrUnsavedChanges
	}
	doc.Path = path
	doc.Content = "# " + domain.NoteTitle(path)
	doc.MarkSaved()
	return nil
}

func (m *MockDocumentService) New(discard bool) error {
	if m.NewFunc != nil {
		return m.NewFunc(discard)
	}
	if m.Current().Dirty() && !discard {
		return domain.ErrUnsavedChanges
	}
	m.doc = domain.NewDocument()
	return nil
}

func (m *MockDocumentService) SetContent(text string) {
	m.Current().Content = text
}

func (m *MockDocumentService) Save() error {
	if m.SaveFunc != nil {
		return m.SaveFunc()
	}
	if !m.Current().HasPath() {
		return domain.ErrNoDocumentPath
	}
	m.Current().MarkSaved()
	return nil
}

func (m *MockDocumentService) SaveAs(path string) (string, error) {
	if m.SaveAsFunc != nil {
		return m.SaveAsFunc(path)
	}
	m.Current().Path = path
	m.Current().MarkSaved()
	return path, nil
}

func (m *MockDocumentService) Close(discard bool) error {
	if m.Current().Dirty() && !discard {
		return domain.ErrUnsavedChanges
	}
	m.doc = domain.NewDocument()
	return nil
}

func (m *MockDocumentService) AutoSaveTick() (bool, error) {
	if !m.Current().AutoSaveEligible() {
		return false, nil
	}
	m.Current().MarkSaved()
	return true, nil
}

func (m *MockDocumentService) TableOfContents(maxDepth int) string {
	return "- [Heading](#heading)"
}

func (m *MockDocumentService) ExportHTML(path string) error {
	return nil
}

// MockAssistantService implements driving.AssistantService for testing.
type MockAssistantService struct {
	Disabled bool
	nextID   uint64

	PrepareFunc func(action domain.ActionType, input driving.AssistInput) (domain.AssistRequest, error)
	ExecuteFunc func(ctx context.Context, req domain.AssistRequest) domain.AssistResult
}

func (m *MockAssistantService) Enabled() bool {
	return !m.Disabled
}

func (m *MockAssistantService) Prepare(action domain.ActionType, input driving.AssistInput) (domain.AssistRequest, error) {
	if m.PrepareFunc != nil {
		return m.PrepareFunc(action, input)
	}

	spec, ok := action.Spec()
	if !ok {
		return domain.AssistRequest{}, domain.ErrInvalidInput
	}
	req := domain.AssistRequest{
		Action:     action,
		Prompt:     input.Prompt,
		NoteTitles: input.NoteTitles,
		Summary:    input.Summary,
	}
	switch spec.Scope {
	case domain.ScopeSelection:
		req.Input = input.Selection
		req.FromSelection = true
	case domain.ScopeDocument:
		req.Input = input.Document
	case domain.ScopeSelectionOrDocument:
		if input.Selection != "" {
			req.Input = input.Selection
			req.FromSelection = true
		} else {
			req.Input = input.Document
		}
	case domain.ScopeNone:
	}
	if err := req.Validate(); err != nil {
		return domain.AssistRequest{}, err
	}
	m.nextID++
	req.ID = m.nextID
	return req, nil
}

func (m *MockAssistantService) Execute(ctx context.Context, req domain.AssistRequest) domain.AssistResult {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, req)
	}
	return domain.AssistResult{
		RequestID:     req.ID,
		Action:        req.Action,
		FromSelection: req.FromSelection,
		Text:          "generated text",
	}
}

func (m *MockAssistantService) LatestID() uint64 {
	return m.nextID
}

// MockLibraryService implements driving.LibraryService for testing.
type MockLibraryService struct {
	Entries []domain.NoteInfo
	Opened  []string

	NotesFunc      func(filter string) ([]domain.NoteInfo, error)
	CreateNoteFunc func(dir, name string) (string, error)
	DeleteFunc     func(path string) error
	RecentFunc     func(limit int) ([]string, error)

	changes chan struct{}
}

func (m *MockLibraryService) Notes(filter string) ([]domain.NoteInfo, error) {
	if m.NotesFunc != nil {
		return m.NotesFunc(filter)
	}
	return m.Entries, nil
}

func (m *MockLibraryService) Titles() ([]string, error) {
	titles := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		if !e.IsDir {
			titles = append(titles, e.Title)
		}
	}
	return titles, nil
}

func (m *MockLibraryService) CreateNote(dir, name string) (string, error) {
	if m.CreateNoteFunc != nil {
		return m.CreateNoteFunc(dir, name)
	}
	return "/notes/" + name + ".md", nil
}

func (m *MockLibraryService) CreateFolder(dir, name string) error {
	return nil
}

func (m *MockLibraryService) Delete(path string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(path)
	}
	return nil
}

func (m *MockLibraryService) RecordOpened(path string) error {
	m.Opened = append(m.Opened, path)
	return nil
}

func (m *MockLibraryService) Recent(limit int) ([]string, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(limit)
	}
	return nil, nil
}

func (m *MockLibraryService) Changes() <-chan struct{} {
	if m.changes == nil {
		m.changes = make(chan struct{}, 1)
	}
	return m.changes
}

func (m *MockLibraryService) Root() string {
	return "/notes"
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	Settings domain.AppSettings
	SaveErr  error
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	settings := m.Settings
	return &settings, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Settings = *settings
	return nil
}

// MockClipboard implements driven.Clipboard for testing.
type MockClipboard struct {
	Written []string
	Err     error
}

func (m *MockClipboard) WriteAll(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Written = append(m.Written, text)
	return nil
}

func TestPorts_Validate(t *testing.T) {
	t.Run("all ports set", func(t *testing.T) {
		ports := NewPorts(
			&MockDocumentService{},
			&MockAssistantService{},
			&MockLibraryService{},
			&MockSettingsService{},
		)
		assert.NoError(t, ports.Validate())
	})

	t.Run("missing document service", func(t *testing.T) {
		ports := &Ports{
			Assistant: &MockAssistantService{},
			Library:   &MockLibraryService{},
			Settings:  &MockSettingsService{},
		}
		assert.ErrorIs(t, ports.Validate(), ErrMissingDocumentService)
	})

	t.Run("missing assistant service", func(t *testing.T) {
		ports := &Ports{
			Document: &MockDocumentService{},
			Library:  &MockLibraryService{},
			Settings: &MockSettingsService{},
		}
		assert.ErrorIs(t, ports.Validate(), ErrMissingAssistantService)
	})

	t.Run("missing library service", func(t *testing.T) {
		ports := &Ports{
			Document:  &MockDocumentService{},
			Assistant: &MockAssistantService{},
			Settings:  &MockSettingsService{},
		}
		assert.ErrorIs(t, ports.Validate(), ErrMissingLibraryService)
	})

	t.Run("missing settings service", func(t *testing.T) {
		ports := &Ports{
			Document:  &MockDocumentService{},
			Assistant: &MockAssistantService{},
			Library:   &MockLibraryService{},
		}
		assert.ErrorIs(t, ports.Validate(), ErrMissingSettingsService)
	})
}

func TestNewPorts(t *testing.T) {
	doc := &MockDocumentService{}
	ports := NewPorts(doc, &MockAssistantService{}, &MockLibraryService{}, &MockSettingsService{})

	require.NotNil(t, ports)
	assert.Equal(t, driving.DocumentService(doc), ports.Document)
	assert.Nil(t, ports.Clipboard) // optional
}

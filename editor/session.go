package editor

import (
	"errors"
	"strings"
	"sync"

	"github.com/traininghub/quiz_platform/models"
)

// CatalogStorage is the backing store the session loads from and the
// save coordinator flushes to. There is no version token: two sessions
// saving concurrently resolve last-writer-wins at the storage layer.
type CatalogStorage interface {
	LoadCatalog() (*models.Catalog, error)
	SaveCatalog(*models.Catalog) error
}

var (
	ErrUnsavedChanges = errors.New("unsaved changes")
	ErrNotFound       = errors.New("not found")
	ErrSaveInFlight   = errors.New("save already in progress")
)

// Session is one editing context: the catalog loaded at session start,
// the sub-category currently under edit, and the tracker and history
// log bound to it. Each session has its own isolated in-memory copy;
// edits are invisible to other sessions until a save completes.
//
// The mutex serializes HTTP-driven access; within a session all
// mutations are ordered exactly as issued.
type Session struct {
	mu       sync.Mutex
	store    *ContentStore
	tracker  *DirtyTracker
	history  *HistoryLog
	storage  CatalogStorage
	selected string
}

// NewSession loads the catalog once and builds the editing context.
// A missing or corrupt document yields an empty, editable tree.
func NewSession(storage CatalogStorage, logStorage LogStorage, user string, onDirty func()) (*Session, error) {
	catalog, err := storage.LoadCatalog()
	if err != nil {
		return nil, err
	}
	tracker := NewDirtyTracker(onDirty)
	history := NewHistoryLog(logStorage, user)
	return &Session{
		store:   NewContentStore(catalog, tracker, history),
		tracker: tracker,
		history: history,
		storage: storage,
	}, nil
}

func (s *Session) Store() *ContentStore   { return s.store }
func (s *Session) History() *HistoryLog   { return s.history }
func (s *Session) Tracker() *DirtyTracker { return s.tracker }

// Catalog returns a snapshot of the session's tree, detached from the
// live copy so callers can serialize it without holding the lock.
func (s *Session) Catalog() *models.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Catalog().Clone()
}

// Status returns the tracker state and dirty flag under the lock.
func (s *Session) Status() (SaveState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.State(), s.tracker.IsDirty()
}

// Lock exposes the session mutex so handlers can group a mutation and
// its response rendering into one critical section.
func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Selected returns the id of the sub-category under edit, if any.
func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Select switches the editing context to another sub-category. While
// unsaved edits exist the switch is refused with ErrUnsavedChanges
// unless discard is set, in which case the in-memory catalog is
// reloaded from storage and the edits are gone. Cancelling (not
// retrying with discard) leaves the current context untouched.
func (s *Session) Select(subID string, discard bool) (*models.SubCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tracker.IsDirty() {
		if !discard {
			return nil, ErrUnsavedChanges
		}
		catalog, err := s.storage.LoadCatalog()
		if err != nil {
			return nil, err
		}
		s.store = NewContentStore(catalog, s.tracker, s.history)
		s.tracker.Discard()
	}

	sc := s.store.FindSubCategoryByID(subID)
	if sc == nil {
		s.selected = ""
		return nil, ErrNotFound
	}
	s.selected = subID
	return sc, nil
}

// SubCategoryForm is the submitted state of the sub-category editor:
// its settings fields plus every question card in display order.
type SubCategoryForm struct {
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Color          string         `json:"color"`
	Password       string         `json:"password"`
	RandomOrder    bool           `json:"randomOrder"`
	IsGuestAllowed bool           `json:"isGuestAllowed"`
	Questions      []QuestionForm `json:"questions"`
}

// QuestionForm mirrors one question card. For fill-in-the-blank the
// answers arrive as one comma-separated literal string; for choice
// types as rows with a correctness flag each. Image fields are nil
// when no image is set, never the empty string.
type QuestionForm struct {
	Question         string       `json:"question"`
	QuestionImage    *string      `json:"questionImage"`
	QuestionType     string       `json:"questionType"`
	FillInAnswers    string       `json:"fillInAnswers"`
	Answers          []AnswerForm `json:"answers"`
	Explanation      string       `json:"explanation"`
	ExplanationImage *string      `json:"explanationImage"`
}

type AnswerForm struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Collect reads the form back into the selected sub-category,
// rebuilding the question list in display order. It does not mark
// dirty: the edits it carries were already tracked as they happened.
func (s *Session) Collect(form *SubCategoryForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collectLocked(form)
}

func (s *Session) collectLocked(form *SubCategoryForm) error {
	sc := s.store.FindSubCategoryByID(s.selected)
	if sc == nil {
		return ErrNotFound
	}

	sc.Name = strings.TrimSpace(form.Name)
	sc.Description = strings.TrimSpace(form.Description)
	sc.Color = form.Color
	if pw := strings.TrimSpace(form.Password); pw != "" {
		sc.Password = &pw
	} else {
		sc.Password = nil
	}
	sc.RandomOrder = form.RandomOrder
	sc.IsGuestAllowed = form.IsGuestAllowed

	questions := make([]*models.Question, 0, len(form.Questions))
	for _, qf := range form.Questions {
		questions = append(questions, qf.toQuestion())
	}
	sc.Questions = questions
	return nil
}

func (qf QuestionForm) toQuestion() *models.Question {
	q := &models.Question{
		Question:         qf.Question,
		QuestionImage:    normalizeImage(qf.QuestionImage),
		QuestionType:     qf.QuestionType,
		Explanation:      qf.Explanation,
		ExplanationImage: normalizeImage(qf.ExplanationImage),
		Answers:          []models.Answer{},
	}
	if qf.QuestionType == models.TypeFillInBlank {
		for _, part := range strings.Split(qf.FillInAnswers, ",") {
			text := strings.TrimSpace(part)
			if text == "" {
				continue
			}
			q.Answers = append(q.Answers, models.Answer{Text: text, Correct: true})
		}
	} else {
		q.IsMultipleChoice = qf.QuestionType == models.TypeMultiple
		for _, af := range qf.Answers {
			q.Answers = append(q.Answers, models.Answer{Text: af.Text, Correct: af.Correct})
		}
	}
	return q
}

// normalizeImage collapses the empty string to an explicit no-image
// value so "removed" never round-trips as "".
func normalizeImage(ref *string) *string {
	if ref == nil || *ref == "" {
		return nil
	}
	return ref
}

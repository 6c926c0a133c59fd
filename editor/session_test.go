package editor

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/traininghub/quiz_platform/models"
)

// memoryCatalog is an in-memory CatalogStorage that round-trips the
// document through JSON, like the file store does.
type memoryCatalog struct {
	data    []byte
	saveErr error
	saves   int
}

func (m *memoryCatalog) LoadCatalog() (*models.Catalog, error) {
	if len(m.data) == 0 {
		return models.EmptyCatalog(), nil
	}
	var c models.Catalog
	if err := json.Unmarshal(m.data, &c); err != nil {
		return models.EmptyCatalog(), nil
	}
	c.Normalize()
	return &c, nil
}

func (m *memoryCatalog) SaveCatalog(c *models.Catalog) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	m.data = data
	m.saves++
	return nil
}

func newTestSession(t *testing.T, backing *memoryCatalog) *Session {
	t.Helper()
	s, err := NewSession(backing, &memorySlot{}, "tester", nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestEndToEndSaveAndReload(t *testing.T) {
	backing := &memoryCatalog{}
	s := newTestSession(t, backing)

	mc := s.Store().AddMainCategory("Safety")
	sc := s.Store().AddSubCategory(mc.ID, "Fire Drill")
	s.Store().AddQuestion(sc.ID, &models.Question{
		Question:     "Where is the assembly point?",
		QuestionType: models.TypeSingle,
		Answers: []models.Answer{
			{Text: "Parking lot", Correct: true},
			{Text: "Rooftop"},
		},
	})

	if err := s.Save(SaveRequest{}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if s.Tracker().State() != StateSaved {
		t.Fatalf("state after save = %s, want saved", s.Tracker().State())
	}

	// A fresh session sees exactly the saved tree.
	s2 := newTestSession(t, backing)
	catalog := s2.Catalog()
	if len(catalog.MainCategories) != 1 || catalog.MainCategories[0].Name != "Safety" {
		t.Fatalf("reloaded catalog unexpected: %+v", catalog)
	}
	subs := catalog.MainCategories[0].SubCategories
	if len(subs) != 1 || subs[0].Name != "Fire Drill" {
		t.Fatalf("reloaded sub-categories unexpected: %+v", subs)
	}
	qs := subs[0].Questions
	if len(qs) != 1 || len(qs[0].Answers) != 2 {
		t.Fatalf("reloaded questions unexpected: %+v", qs)
	}
	if !qs[0].Answers[0].Correct || qs[0].Answers[0].Text != "Parking lot" {
		t.Error("correct flag did not survive the round trip on the same answer text")
	}
	if qs[0].Answers[1].Correct {
		t.Error("incorrect answer gained a correct flag")
	}
}

func TestRoundTripIsIdempotent(t *testing.T) {
	backing := &memoryCatalog{}
	s := newTestSession(t, backing)
	mc := s.Store().AddMainCategory("Safety")
	sc := s.Store().AddSubCategory(mc.ID, "Fire Drill")
	s.Store().AddQuestion(sc.ID, questionNamed("A"))
	if err := s.Save(SaveRequest{}); err != nil {
		t.Fatal(err)
	}
	first := string(backing.data)

	// load -> save with no edits reproduces the identical document
	s2 := newTestSession(t, backing)
	if err := s2.Save(SaveRequest{}); err != nil {
		t.Fatal(err)
	}
	if string(backing.data) != first {
		t.Error("load-save-load is not idempotent")
	}
}

func TestSelectWhileDirty(t *testing.T) {
	backing := &memoryCatalog{}
	seed := newTestSession(t, backing)
	mc := seed.Store().AddMainCategory("Safety")
	a := seed.Store().AddSubCategory(mc.ID, "Fire Drill")
	b := seed.Store().AddSubCategory(mc.ID, "First Aid")
	if err := seed.Save(SaveRequest{}); err != nil {
		t.Fatal(err)
	}

	s := newTestSession(t, backing)
	if _, err := s.Select(a.ID, false); err != nil {
		t.Fatalf("clean select failed: %v", err)
	}

	s.Store().AddQuestion(a.ID, questionNamed("draft"))
	if !s.Tracker().IsDirty() {
		t.Fatal("mutation should dirty the session")
	}

	// Switching away while dirty is refused first.
	if _, err := s.Select(b.ID, false); !errors.Is(err, ErrUnsavedChanges) {
		t.Fatalf("err = %v, want ErrUnsavedChanges", err)
	}
	// Cancelling leaves the context untouched.
	if s.Selected() != a.ID {
		t.Error("refused switch must not change the selection")
	}
	if sc := s.Store().FindSubCategoryByID(a.ID); len(sc.Questions) != 1 {
		t.Error("refused switch must not discard edits")
	}

	// Confirming discards the edits and reloads the target.
	sel, err := s.Select(b.ID, true)
	if err != nil {
		t.Fatalf("discard select failed: %v", err)
	}
	if sel.ID != b.ID || s.Selected() != b.ID {
		t.Error("selection did not move to the target")
	}
	if s.Tracker().IsDirty() {
		t.Error("discard must leave a clean session")
	}
	if sc := s.Store().FindSubCategoryByID(a.ID); len(sc.Questions) != 0 {
		t.Error("discard must drop the unsaved question")
	}
}

func TestSelectUnknownID(t *testing.T) {
	s := newTestSession(t, &memoryCatalog{})
	if _, err := s.Select("nonexistent", false); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCollectFillInTheBlank(t *testing.T) {
	backing := &memoryCatalog{}
	s := newTestSession(t, backing)
	mc := s.Store().AddMainCategory("Geography")
	sc := s.Store().AddSubCategory(mc.ID, "Japan")
	s.Store().AddQuestion(sc.ID, questionNamed("placeholder"))
	if _, err := s.Select(sc.ID, true); err != nil {
		t.Fatal(err)
	}

	form := &SubCategoryForm{
		Name:  "Japan",
		Color: models.DefaultColor,
		Questions: []QuestionForm{{
			Question:      "Name two large cities.",
			QuestionType:  models.TypeFillInBlank,
			FillInAnswers: "Tokyo, Osaka",
		}},
	}
	if err := s.Collect(form); err != nil {
		t.Fatal(err)
	}

	got := s.Store().FindSubCategoryByID(sc.ID).Questions[0].Answers
	want := []models.Answer{{Text: "Tokyo", Correct: true}, {Text: "Osaka", Correct: true}}
	if len(got) != len(want) {
		t.Fatalf("answers = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("answer %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCollectFillInSkipsEmptyLiterals(t *testing.T) {
	backing := &memoryCatalog{}
	s := newTestSession(t, backing)
	mc := s.Store().AddMainCategory("Geography")
	sc := s.Store().AddSubCategory(mc.ID, "Japan")
	if _, err := s.Select(sc.ID, true); err != nil {
		t.Fatal(err)
	}

	form := &SubCategoryForm{
		Name: "Japan",
		Questions: []QuestionForm{{
			Question:      "q",
			QuestionType:  models.TypeFillInBlank,
			FillInAnswers: " Kyoto ,, ,Nara",
		}},
	}
	if err := s.Collect(form); err != nil {
		t.Fatal(err)
	}

	got := s.Store().FindSubCategoryByID(sc.ID).Questions[0].Answers
	if len(got) != 2 || got[0].Text != "Kyoto" || got[1].Text != "Nara" {
		t.Errorf("answers = %+v, want trimmed [Kyoto Nara]", got)
	}
}

func TestCollectChoiceAndImages(t *testing.T) {
	backing := &memoryCatalog{}
	s := newTestSession(t, backing)
	mc := s.Store().AddMainCategory("Safety")
	sc := s.Store().AddSubCategory(mc.ID, "Fire Drill")
	if _, err := s.Select(sc.ID, true); err != nil {
		t.Fatal(err)
	}

	img := "/uploads/image-1.png"
	empty := ""
	form := &SubCategoryForm{
		Name:     "  Fire Drill  ",
		Password: "  gate  ",
		Questions: []QuestionForm{{
			Question:         "Pick all exits.",
			QuestionType:     models.TypeMultiple,
			QuestionImage:    &img,
			ExplanationImage: &empty,
			Answers: []AnswerForm{
				{Text: "North door", Correct: true},
				{Text: "Window", Correct: false},
				{Text: "South door", Correct: true},
			},
		}},
	}
	if err := s.Collect(form); err != nil {
		t.Fatal(err)
	}

	got := s.Store().FindSubCategoryByID(sc.ID)
	if got.Name != "Fire Drill" {
		t.Errorf("name not trimmed: %q", got.Name)
	}
	if got.Password == nil || *got.Password != "gate" {
		t.Errorf("password not trimmed/set: %v", got.Password)
	}
	q := got.Questions[0]
	if !q.IsMultipleChoice {
		t.Error("multiple type must set the legacy flag")
	}
	if q.QuestionImage == nil || *q.QuestionImage != img {
		t.Error("question image reference lost")
	}
	if q.ExplanationImage != nil {
		t.Error("empty image string must serialize as explicit no-image")
	}
	if len(q.Answers) != 3 || !q.Answers[0].Correct || q.Answers[1].Correct || !q.Answers[2].Correct {
		t.Errorf("choice answers mangled: %+v", q.Answers)
	}
}

func TestSaveFailureKeepsStateForRetry(t *testing.T) {
	backing := &memoryCatalog{saveErr: errors.New("disk full")}
	s := newTestSession(t, backing)
	s.Store().AddMainCategory("Safety")

	if err := s.Save(SaveRequest{}); err == nil {
		t.Fatal("expected save to fail")
	}
	if s.Tracker().State() != StateError || !s.Tracker().IsDirty() {
		t.Fatal("failed save must leave error state with dirty set")
	}
	if len(s.Catalog().MainCategories) != 1 {
		t.Fatal("in-memory edits must survive a failed save")
	}

	backing.saveErr = nil
	if err := s.Save(SaveRequest{}); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if s.Tracker().State() != StateSaved {
		t.Error("retry success must end saved")
	}
}

// gatedCatalog blocks inside SaveCatalog until released, simulating a
// slow write while the session keeps taking edits.
type gatedCatalog struct {
	memoryCatalog
	started chan struct{}
	release chan struct{}
}

func (g *gatedCatalog) SaveCatalog(c *models.Catalog) error {
	close(g.started)
	<-g.release
	return g.memoryCatalog.SaveCatalog(c)
}

func TestSaveSnapshotsBeforeWrite(t *testing.T) {
	backing := &gatedCatalog{started: make(chan struct{}), release: make(chan struct{})}
	s, err := NewSession(backing, &memorySlot{}, "tester", nil)
	if err != nil {
		t.Fatal(err)
	}
	mc := s.Store().AddMainCategory("Safety")
	sc := s.Store().AddSubCategory(mc.ID, "Fire Drill")
	s.Store().AddQuestion(sc.ID, questionNamed("before"))

	done := make(chan error, 1)
	go func() { done <- s.Save(SaveRequest{}) }()

	<-backing.started
	// The write is in flight; the live tree keeps taking edits.
	s.Lock()
	s.Store().AddQuestion(sc.ID, questionNamed("during"))
	s.Unlock()
	close(backing.release)

	if err := <-done; err != nil {
		t.Fatal(err)
	}

	saved, _ := backing.LoadCatalog()
	got := saved.MainCategories[0].SubCategories[0].Questions
	if len(got) != 1 || got[0].Question != "before" {
		t.Fatalf("saved document has %d questions, want only the pre-write state", len(got))
	}
	if live := s.Store().FindSubCategoryByID(sc.ID); len(live.Questions) != 2 {
		t.Error("live tree must keep the edit made during the write")
	}
}

func TestSessionCatalogIsDetached(t *testing.T) {
	s := newTestSession(t, &memoryCatalog{})
	s.Store().AddMainCategory("Safety")

	snap := s.Catalog()
	snap.MainCategories[0].Name = "changed"

	if s.Store().Catalog().MainCategories[0].Name != "Safety" {
		t.Error("mutating a returned catalog must not touch the session tree")
	}
}

func TestSaveReconcilesCategoryOrder(t *testing.T) {
	backing := &memoryCatalog{}
	s := newTestSession(t, backing)
	a := s.Store().AddMainCategory("A")
	b := s.Store().AddMainCategory("B")
	sc1 := s.Store().AddSubCategory(b.ID, "one")
	sc2 := s.Store().AddSubCategory(b.ID, "two")

	req := SaveRequest{
		MainOrder: []string{b.ID, a.ID},
		SubOrder:  map[string][]string{b.ID: {sc2.ID, sc1.ID}},
	}
	if err := s.Save(req); err != nil {
		t.Fatal(err)
	}

	catalog, _ := backing.LoadCatalog()
	if catalog.MainCategories[0].Name != "B" || catalog.MainCategories[1].Name != "A" {
		t.Error("main category order not reconciled from the UI")
	}
	subs := catalog.MainCategories[0].SubCategories
	if subs[0].Name != "two" || subs[1].Name != "one" {
		t.Error("sub-category order not reconciled from the UI")
	}
}

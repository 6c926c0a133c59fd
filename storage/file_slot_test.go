package storage

import (
	"path/filepath"
	"testing"

	"github.com/traininghub/quiz_platform/models"
)

func TestFileSlotMissingReadsNil(t *testing.T) {
	slot := NewFileSlot(filepath.Join(t.TempDir(), "slot.json"))
	data, err := slot.Read()
	if err != nil {
		t.Fatal(err)
	}
	if data != nil {
		t.Errorf("empty slot must read nil, got %q", data)
	}
}

func TestFileSlotWriteReadReplace(t *testing.T) {
	slot := NewFileSlot(filepath.Join(t.TempDir(), "slot.json"))
	if err := slot.Write([]byte(`{"a":1}`)); err != nil {
		t.Fatal(err)
	}
	data, err := slot.Read()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("read back %q", data)
	}

	if err := slot.Write([]byte(`{"a":2}`)); err != nil {
		t.Fatal(err)
	}
	data, _ = slot.Read()
	if string(data) != `{"a":2}` {
		t.Error("write must replace, not append")
	}
}

func TestLearningStoreGetAndUpdate(t *testing.T) {
	s := NewLearningStore(filepath.Join(t.TempDir(), "learning-history.json"))

	h := s.Get("user_1")
	if h == nil || h.QuizHistory == nil || h.TotalQuizzes != 0 {
		t.Fatalf("unknown user must get a zeroed shape, got %+v", h)
	}

	err := s.Update(func(m map[string]*models.LearningHistory) error {
		hist := models.NewLearningHistory()
		hist.Append(models.QuizRecord{ID: "history_1", Score: 80, CorrectAnswers: 8, TotalQuestions: 10})
		m["user_1"] = hist
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	got := s.Get("user_1")
	if got.TotalQuizzes != 1 || got.BestScore != 80 || got.AverageScore != 80 {
		t.Errorf("persisted history wrong: %+v", got)
	}
	if len(s.All()) != 1 {
		t.Error("All must list the stored user")
	}
}

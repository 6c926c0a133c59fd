package editor

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestHistoryCapEvictsOldest(t *testing.T) {
	l := NewHistoryLog(&memorySlot{}, "tester")

	for i := 0; i < 101; i++ {
		l.Record(ChangeAddQuestion, Target{Type: "question", Name: fmt.Sprintf("q%d", i)}, nil)
	}

	if l.Len() != 100 {
		t.Fatalf("entries = %d, want 100", l.Len())
	}
	entries := l.List(0)
	if newest := entries[0].Target.Name; newest != "q100" {
		t.Errorf("newest entry = %s, want q100", newest)
	}
	if oldest := entries[len(entries)-1].Target.Name; oldest != "q1" {
		t.Errorf("oldest retained entry = %s, want q1 (q0 evicted)", oldest)
	}
}

func TestHistoryListNewestFirst(t *testing.T) {
	l := NewHistoryLog(&memorySlot{}, "tester")
	for _, name := range []string{"first", "second", "third"} {
		l.Record(ChangeAddMainCategory, Target{Name: name}, nil)
	}

	got := l.List(2)
	if len(got) != 2 {
		t.Fatalf("list length = %d, want 2", len(got))
	}
	if got[0].Target.Name != "third" || got[1].Target.Name != "second" {
		t.Errorf("entries out of order: %s, %s", got[0].Target.Name, got[1].Target.Name)
	}
}

func TestHistoryClearAndExport(t *testing.T) {
	slot := &memorySlot{}
	l := NewHistoryLog(slot, "tester")
	l.Record(ChangeAddMainCategory, Target{Name: "Safety"}, nil)
	l.Record(ChangeRemoveMainCategory, Target{Name: "Safety"}, nil)

	exported, err := l.Export()
	if err != nil {
		t.Fatal(err)
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(exported), &entries); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("exported %d entries, want 2", len(entries))
	}

	l.Clear()
	if l.Len() != 0 {
		t.Error("clear should empty the log")
	}

	// Persistence survives a reload through the same slot.
	reloaded := NewHistoryLog(slot, "tester")
	if reloaded.Len() != 0 {
		t.Errorf("reloaded log has %d entries after clear, want 0", reloaded.Len())
	}
}

func TestHistorySurvivesReload(t *testing.T) {
	slot := &memorySlot{}
	l := NewHistoryLog(slot, "tester")
	l.Record(ChangeAddSubCategory, Target{ID: "sub_1", Name: "Fire Drill"}, nil)

	reloaded := NewHistoryLog(slot, "tester")
	if reloaded.Len() != 1 {
		t.Fatalf("reloaded entries = %d, want 1", reloaded.Len())
	}
	if e := reloaded.List(1)[0]; e.Target.Name != "Fire Drill" || e.User != "tester" {
		t.Errorf("reloaded entry mismatch: %+v", e)
	}
}

func TestHistoryCorruptSlotStartsEmpty(t *testing.T) {
	slot := &memorySlot{data: []byte("{not json")}
	l := NewHistoryLog(slot, "tester")
	if l.Len() != 0 {
		t.Errorf("corrupt slot should yield empty log, got %d", l.Len())
	}
}

func TestFormat(t *testing.T) {
	l := NewHistoryLog(&memorySlot{}, "tester")

	tests := []struct {
		entry Entry
		want  string
	}{
		{Entry{Type: ChangeAddMainCategory, Target: Target{Name: "Safety"}}, `added main category "Safety"`},
		{Entry{Type: ChangeRemoveSubCategory, Target: Target{Name: "Fire Drill"}}, `removed sub-category "Fire Drill"`},
		{Entry{Type: ChangeRemoveQuestion, Data: map[string]any{"questionIndex": 3}}, "removed question at index 3"},
		{Entry{Type: ChangeReorderQuestion, Data: map[string]any{"oldIndex": 0, "newIndex": 2}}, "reordered question (0→2)"},
		{Entry{Type: ChangeUpdateSubCategory, Target: Target{ID: "sub_9"}}, `updated sub-category "sub_9"`},
		{Entry{Type: "SOMETHING_ELSE"}, "unknown change: SOMETHING_ELSE"},
	}
	for _, tt := range tests {
		if got := l.Format(tt.entry); !strings.Contains(got, tt.want) {
			t.Errorf("Format(%s) = %q, want it to contain %q", tt.entry.Type, got, tt.want)
		}
	}
}

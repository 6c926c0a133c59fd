package editor

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/traininghub/quiz_platform/utils"
)

// Change types recorded by the content store.
const (
	ChangeAddMainCategory    = "ADD_MAIN_CATEGORY"
	ChangeRemoveMainCategory = "REMOVE_MAIN_CATEGORY"
	ChangeAddSubCategory     = "ADD_SUB_CATEGORY"
	ChangeRemoveSubCategory  = "REMOVE_SUB_CATEGORY"
	ChangeAddQuestion        = "ADD_QUESTION"
	ChangeRemoveQuestion     = "REMOVE_QUESTION"
	ChangeReorderQuestion    = "REORDER_QUESTION"
	ChangeUpdateSubCategory  = "UPDATE_SUB_CATEGORY"
)

// maxHistorySize bounds the log; the oldest entry is evicted first.
const maxHistorySize = 100

// Target identifies the entity an entry refers to.
type Target struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Entry is one recorded edit. Timestamp is Unix milliseconds.
type Entry struct {
	ID        string         `json:"id"`
	Timestamp int64          `json:"timestamp"`
	Type      string         `json:"type"`
	Target    Target         `json:"target"`
	Data      map[string]any `json:"data"`
	User      string         `json:"user"`
}

// LogStorage is the durable slot the log survives restarts through.
// It is deliberately separate from catalog persistence: the log is
// never part of the saved document.
type LogStorage interface {
	Read() ([]byte, error)
	Write([]byte) error
}

// HistoryLog is an append-only, capacity-bounded audit trail of
// semantic edits. It is a reference for the editor, not an undo stack.
type HistoryLog struct {
	storage LogStorage
	user    string
	entries []Entry
}

// NewHistoryLog restores the log from storage. An empty or unreadable
// slot starts a fresh log instead of failing.
func NewHistoryLog(storage LogStorage, user string) *HistoryLog {
	l := &HistoryLog{storage: storage, user: user, entries: []Entry{}}
	data, err := storage.Read()
	if err != nil {
		log.Printf("Change history unreadable, starting empty: %v", err)
		return l
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &l.entries); err != nil {
			log.Printf("Change history corrupt, starting empty: %v", err)
			l.entries = []Entry{}
		}
	}
	return l
}

// Record appends an entry and persists the log, evicting the oldest
// entry first when the cap is reached.
func (l *HistoryLog) Record(changeType string, target Target, data map[string]any) Entry {
	e := Entry{
		ID:        utils.NewID("change"),
		Timestamp: time.Now().UnixMilli(),
		Type:      changeType,
		Target:    target,
		Data:      data,
		User:      l.user,
	}
	l.entries = append(l.entries, e)
	if len(l.entries) > maxHistorySize {
		l.entries = l.entries[len(l.entries)-maxHistorySize:]
	}
	l.persist()
	return e
}

// List returns up to limit entries, newest first.
func (l *HistoryLog) List(limit int) []Entry {
	n := len(l.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Entry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

func (l *HistoryLog) Len() int { return len(l.entries) }

// Clear empties the log and persists the empty state.
func (l *HistoryLog) Clear() {
	l.entries = []Entry{}
	l.persist()
}

// Export serializes the full retained log, not a limited view.
func (l *HistoryLog) Export() (string, error) {
	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Format renders one entry as a human-readable line.
func (l *HistoryLog) Format(e Entry) string {
	ts := time.UnixMilli(e.Timestamp).Format("2006-01-02 15:04:05")
	name := e.Target.Name
	if name == "" {
		name = e.Target.ID
	}
	var msg string
	switch e.Type {
	case ChangeAddMainCategory:
		msg = fmt.Sprintf("added main category %q", name)
	case ChangeRemoveMainCategory:
		msg = fmt.Sprintf("removed main category %q", name)
	case ChangeAddSubCategory:
		msg = fmt.Sprintf("added sub-category %q", name)
	case ChangeRemoveSubCategory:
		msg = fmt.Sprintf("removed sub-category %q", name)
	case ChangeAddQuestion:
		msg = fmt.Sprintf("added question in %q", name)
	case ChangeRemoveQuestion:
		msg = fmt.Sprintf("removed question at index %v", e.Data["questionIndex"])
	case ChangeReorderQuestion:
		msg = fmt.Sprintf("reordered question (%v→%v)", e.Data["oldIndex"], e.Data["newIndex"])
	case ChangeUpdateSubCategory:
		msg = fmt.Sprintf("updated sub-category %q", name)
	default:
		msg = fmt.Sprintf("unknown change: %s", e.Type)
	}
	return fmt.Sprintf("[%s] %s", ts, msg)
}

func (l *HistoryLog) persist() {
	data, err := json.Marshal(l.entries)
	if err != nil {
		log.Printf("Failed to serialize change history: %v", err)
		return
	}
	if err := l.storage.Write(data); err != nil {
		log.Printf("Failed to persist change history: %v", err)
	}
}

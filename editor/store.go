package editor

import (
	"github.com/traininghub/quiz_platform/models"
	"github.com/traininghub/quiz_platform/utils"
)

// ContentStore owns the in-memory catalog tree and exposes its
// structural mutation primitives. Every successful mutation marks the
// tracker dirty and appends exactly one history entry; unresolved
// targets are no-ops that return nil or false.
type ContentStore struct {
	catalog *models.Catalog
	tracker *DirtyTracker
	history *HistoryLog
}

func NewContentStore(catalog *models.Catalog, tracker *DirtyTracker, history *HistoryLog) *ContentStore {
	catalog.Normalize()
	return &ContentStore{catalog: catalog, tracker: tracker, history: history}
}

// Catalog returns the live tree. Callers must not mutate it directly.
func (s *ContentStore) Catalog() *models.Catalog { return s.catalog }

func (s *ContentStore) AddMainCategory(name string) *models.MainCategory {
	mc := &models.MainCategory{
		ID:            utils.NewID("main"),
		Name:          name,
		SubCategories: []*models.SubCategory{},
	}
	s.catalog.MainCategories = append(s.catalog.MainCategories, mc)
	s.tracker.MarkDirty()
	s.history.Record(ChangeAddMainCategory,
		Target{Type: "mainCategory", ID: mc.ID, Name: mc.Name},
		map[string]any{"mainCategory": mc})
	return mc
}

func (s *ContentStore) RemoveMainCategory(id string) bool {
	for i, mc := range s.catalog.MainCategories {
		if mc.ID == id {
			s.catalog.MainCategories = append(s.catalog.MainCategories[:i], s.catalog.MainCategories[i+1:]...)
			s.tracker.MarkDirty()
			s.history.Record(ChangeRemoveMainCategory,
				Target{Type: "mainCategory", ID: id, Name: mc.Name},
				map[string]any{"mainCategoryId": id})
			return true
		}
	}
	return false
}

func (s *ContentStore) AddSubCategory(mainID, name string) *models.SubCategory {
	for _, mc := range s.catalog.MainCategories {
		if mc.ID == mainID {
			sc := &models.SubCategory{
				ID:        utils.NewID("sub"),
				Name:      name,
				Color:     models.DefaultColor,
				Questions: []*models.Question{},
			}
			mc.SubCategories = append(mc.SubCategories, sc)
			s.tracker.MarkDirty()
			s.history.Record(ChangeAddSubCategory,
				Target{Type: "subCategory", ID: sc.ID, Name: sc.Name},
				map[string]any{"mainCategoryId": mainID, "subCategory": sc})
			return sc
		}
	}
	return nil
}

func (s *ContentStore) RemoveSubCategory(subID string) bool {
	for _, mc := range s.catalog.MainCategories {
		for i, sc := range mc.SubCategories {
			if sc.ID == subID {
				mc.SubCategories = append(mc.SubCategories[:i], mc.SubCategories[i+1:]...)
				s.tracker.MarkDirty()
				s.history.Record(ChangeRemoveSubCategory,
					Target{Type: "subCategory", ID: subID, Name: sc.Name},
					map[string]any{"subCategoryId": subID})
				return true
			}
		}
	}
	return false
}

func (s *ContentStore) AddQuestion(subID string, q *models.Question) *models.Question {
	sc := s.FindSubCategoryByID(subID)
	if sc == nil {
		return nil
	}
	sc.Questions = append(sc.Questions, q)
	s.tracker.MarkDirty()
	s.history.Record(ChangeAddQuestion,
		Target{Type: "question", ID: subID, Name: sc.Name},
		map[string]any{"subCategoryId": subID, "question": q})
	return q
}

func (s *ContentStore) RemoveQuestionAt(subID string, index int) bool {
	sc := s.FindSubCategoryByID(subID)
	if sc == nil || index < 0 || index >= len(sc.Questions) {
		return false
	}
	sc.Questions = append(sc.Questions[:index], sc.Questions[index+1:]...)
	s.tracker.MarkDirty()
	s.history.Record(ChangeRemoveQuestion,
		Target{Type: "question", ID: subID, Name: sc.Name},
		map[string]any{"subCategoryId": subID, "questionIndex": index})
	return true
}

// ReorderQuestion moves the element at oldIndex to newIndex, shifting
// the elements in between. Moving index 0 to 2 in [A B C D] yields
// [B C A D].
func (s *ContentStore) ReorderQuestion(subID string, oldIndex, newIndex int) bool {
	sc := s.FindSubCategoryByID(subID)
	if sc == nil {
		return false
	}
	n := len(sc.Questions)
	if oldIndex < 0 || oldIndex >= n || newIndex < 0 || newIndex >= n {
		return false
	}
	moved := sc.Questions[oldIndex]
	rest := append(sc.Questions[:oldIndex:oldIndex], sc.Questions[oldIndex+1:]...)
	reordered := make([]*models.Question, 0, n)
	reordered = append(reordered, rest[:newIndex]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, rest[newIndex:]...)
	sc.Questions = reordered
	s.tracker.MarkDirty()
	s.history.Record(ChangeReorderQuestion,
		Target{Type: "question", ID: subID, Name: sc.Name},
		map[string]any{"subCategoryId": subID, "oldIndex": oldIndex, "newIndex": newIndex})
	return true
}

// SubCategoryUpdate carries a partial update; nil fields are left
// untouched. An empty Password clears the access gate.
type SubCategoryUpdate struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	Color          *string `json:"color"`
	Password       *string `json:"password"`
	RandomOrder    *bool   `json:"randomOrder"`
	IsGuestAllowed *bool   `json:"isGuestAllowed"`
}

func (s *ContentStore) UpdateSubCategory(subID string, upd SubCategoryUpdate) bool {
	sc := s.FindSubCategoryByID(subID)
	if sc == nil {
		return false
	}
	if upd.Name != nil {
		sc.Name = *upd.Name
	}
	if upd.Description != nil {
		sc.Description = *upd.Description
	}
	if upd.Color != nil {
		sc.Color = *upd.Color
	}
	if upd.Password != nil {
		if *upd.Password == "" {
			sc.Password = nil
		} else {
			sc.Password = upd.Password
		}
	}
	if upd.RandomOrder != nil {
		sc.RandomOrder = *upd.RandomOrder
	}
	if upd.IsGuestAllowed != nil {
		sc.IsGuestAllowed = *upd.IsGuestAllowed
	}
	s.tracker.MarkDirty()
	s.history.Record(ChangeUpdateSubCategory,
		Target{Type: "subCategory", ID: subID, Name: sc.Name},
		map[string]any{"subCategoryId": subID, "updates": upd})
	return true
}

// FindSubCategoryByID searches all main categories in order. Empty and
// unknown ids return nil.
func (s *ContentStore) FindSubCategoryByID(id string) *models.SubCategory {
	return s.catalog.FindSubCategory(id)
}

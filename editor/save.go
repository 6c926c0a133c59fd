package editor

import "github.com/traininghub/quiz_platform/models"

// SaveRequest carries everything the UI contributes to one save: the
// current state of the edited sub-category's form and the category
// ordering as rendered, so drag-reordering of the categories
// themselves is reflected in the saved document.
type SaveRequest struct {
	Form      *SubCategoryForm    `json:"form"`
	MainOrder []string            `json:"mainOrder"`
	SubOrder  map[string][]string `json:"subOrder"`
}

// Save runs one end-to-end save attempt: collect the form into the
// catalog, reconcile ordering, write the whole document. While an
// attempt is in flight a second one is refused with ErrSaveInFlight.
// On failure the in-memory state is kept and the tracker reports an
// error state so the user can retry without re-entering anything.
//
// The document is snapshotted before the lock is released; edits made
// while the write is in flight mutate the live tree only and go out
// with the next save.
func (s *Session) Save(req SaveRequest) error {
	s.mu.Lock()
	if !s.tracker.BeginSave() {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	if req.Form != nil && s.selected != "" {
		if err := s.collectLocked(req.Form); err != nil {
			s.tracker.FinishSave(err)
			s.mu.Unlock()
			return err
		}
	}
	s.reconcileOrderLocked(req.MainOrder, req.SubOrder)
	snapshot := s.store.Catalog().Clone()
	s.mu.Unlock()

	err := s.storage.SaveCatalog(snapshot)

	s.mu.Lock()
	s.tracker.FinishSave(err)
	s.mu.Unlock()
	return err
}

// reconcileOrderLocked rebuilds the category sequences to match the
// rendered order. Empty orderings leave the catalog untouched; ids the
// catalog does not know are skipped.
func (s *Session) reconcileOrderLocked(mainOrder []string, subOrder map[string][]string) {
	catalog := s.store.Catalog()

	if len(mainOrder) > 0 {
		byID := make(map[string]*models.MainCategory, len(catalog.MainCategories))
		for _, mc := range catalog.MainCategories {
			byID[mc.ID] = mc
		}
		ordered := make([]*models.MainCategory, 0, len(mainOrder))
		for _, id := range mainOrder {
			if mc, ok := byID[id]; ok {
				ordered = append(ordered, mc)
			}
		}
		catalog.MainCategories = ordered
	}

	for _, mc := range catalog.MainCategories {
		ids, ok := subOrder[mc.ID]
		if !ok || len(ids) == 0 {
			continue
		}
		byID := make(map[string]*models.SubCategory, len(mc.SubCategories))
		for _, sc := range mc.SubCategories {
			byID[sc.ID] = sc
		}
		ordered := make([]*models.SubCategory, 0, len(ids))
		for _, id := range ids {
			if sc, ok := byID[id]; ok {
				ordered = append(ordered, sc)
			}
		}
		mc.SubCategories = ordered
	}
}

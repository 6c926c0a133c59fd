package models

// Catalog is the whole quiz document. It is the only unit of
// persistence: loads and saves always move the full tree.
type Catalog struct {
	MainCategories []*MainCategory `json:"mainCategories"`
	Announcements  []*Announcement `json:"announcements,omitempty"`
	StoreMaster    []Store         `json:"storeMaster,omitempty"`
}

type MainCategory struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	SubCategories []*SubCategory `json:"subCategories"`
}

type SubCategory struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Color          string      `json:"color"`
	Password       *string     `json:"password"`
	RandomOrder    bool        `json:"randomOrder"`
	IsGuestAllowed bool        `json:"isGuestAllowed"`
	Questions      []*Question `json:"questions"`
}

// DefaultColor is the accent used when a sub-category has none set.
const DefaultColor = "#cccccc"

// EmptyCatalog returns the shape served when no document exists yet.
func EmptyCatalog() *Catalog {
	return &Catalog{MainCategories: []*MainCategory{}}
}

// Normalize repairs legacy and partially-filled documents in one pass
// at load time: nil slices become empty, colors get their default and
// per-question legacy fields are migrated. Read sites can then rely on
// a fully-populated tree.
func (c *Catalog) Normalize() {
	if c.MainCategories == nil {
		c.MainCategories = []*MainCategory{}
	}
	for _, mc := range c.MainCategories {
		if mc.SubCategories == nil {
			mc.SubCategories = []*SubCategory{}
		}
		for _, sc := range mc.SubCategories {
			if sc.Color == "" {
				sc.Color = DefaultColor
			}
			if sc.Questions == nil {
				sc.Questions = []*Question{}
			}
			for _, q := range sc.Questions {
				q.normalize()
			}
		}
	}
}

// Clone returns a deep copy detached from the receiver's tree, so one
// copy can be serialized while the other keeps taking edits.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{MainCategories: make([]*MainCategory, 0, len(c.MainCategories))}
	for _, mc := range c.MainCategories {
		cm := &MainCategory{
			ID:            mc.ID,
			Name:          mc.Name,
			SubCategories: make([]*SubCategory, 0, len(mc.SubCategories)),
		}
		for _, sc := range mc.SubCategories {
			cm.SubCategories = append(cm.SubCategories, sc.clone())
		}
		out.MainCategories = append(out.MainCategories, cm)
	}
	if c.Announcements != nil {
		out.Announcements = make([]*Announcement, 0, len(c.Announcements))
		for _, a := range c.Announcements {
			aa := *a
			out.Announcements = append(out.Announcements, &aa)
		}
	}
	if c.StoreMaster != nil {
		out.StoreMaster = make([]Store, len(c.StoreMaster))
		copy(out.StoreMaster, c.StoreMaster)
	}
	return out
}

func (sc *SubCategory) clone() *SubCategory {
	out := *sc
	if sc.Password != nil {
		pw := *sc.Password
		out.Password = &pw
	}
	out.Questions = make([]*Question, 0, len(sc.Questions))
	for _, q := range sc.Questions {
		out.Questions = append(out.Questions, q.clone())
	}
	return &out
}

func (q *Question) clone() *Question {
	out := *q
	if q.QuestionImage != nil {
		v := *q.QuestionImage
		out.QuestionImage = &v
	}
	if q.ExplanationImage != nil {
		v := *q.ExplanationImage
		out.ExplanationImage = &v
	}
	out.Answers = make([]Answer, len(q.Answers))
	copy(out.Answers, q.Answers)
	return &out
}

// FindSubCategory walks every main category and returns the first
// sub-category with the given id, or nil when id is empty or absent.
func (c *Catalog) FindSubCategory(id string) *SubCategory {
	if id == "" {
		return nil
	}
	for _, mc := range c.MainCategories {
		for _, sc := range mc.SubCategories {
			if sc.ID == id {
				return sc
			}
		}
	}
	return nil
}

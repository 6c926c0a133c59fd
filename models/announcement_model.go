package models

type Announcement struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Severity  string `json:"severity"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Enabled   bool   `json:"enabled"`
}

// ActiveOn reports whether the announcement should be shown on the
// given day. Dates are YYYY-MM-DD strings; empty bounds are open.
func (a Announcement) ActiveOn(today string) bool {
	if !a.Enabled {
		return false
	}
	if a.StartDate != "" && today < a.StartDate {
		return false
	}
	if a.EndDate != "" && today > a.EndDate {
		return false
	}
	return true
}

package models

import "time"

type User struct {
	ID           string     `json:"id"`
	EmployeeCode string     `json:"employeeCode"`
	StoreCode    string     `json:"storeCode"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"passwordHash,omitempty"`
	Memo         string     `json:"memo,omitempty"`
	IsAdmin      bool       `json:"isAdmin,omitempty"`
	IsBanned     bool       `json:"isBanned"`
	BanReason    string     `json:"banReason,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
}

// Sanitized strips the password hash for API responses.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

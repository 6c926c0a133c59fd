package models

// Store is one entry of the store master held inside the catalog
// document. Codes are digit strings matching User.StoreCode.
type Store struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

package domain

// Breach is a breach record as reported by the breached-account lookup.
// It is carried as display detail only.
type Breach struct {
	Name         string   `json:"Name"`
	Title        string   `json:"Title,omitempty"`
	Domain       string   `json:"Domain,omitempty"`
	BreachDate   string   `json:"BreachDate,omitempty"`
	AddedDate    string   `json:"AddedDate,omitempty"`
	PwnCount     int64    `json:"PwnCount,omitempty"`
	Description  string   `json:"Description,omitempty"`
	DataClasses  []string `json:"DataClasses,omitempty"`
	IsVerified   bool     `json:"IsVerified"`
	IsSensitive  bool     `json:"IsSensitive"`
	IsFabricated bool     `json:"IsFabricated,omitempty"`
}

// CatalogueEntry is a well known breach shown on the informational pages.
type CatalogueEntry struct {
	Name        string `json:"name" yaml:"name"`
	Date        string `json:"date" yaml:"date"`
	Accounts    int64  `json:"accounts" yaml:"accounts"`
	Description string `json:"description" yaml:"description"`
	Verified    bool   `json:"verified" yaml:"verified"`
}

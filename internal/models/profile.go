// internal/models/profile.go
package models

// Nationality is one entry of a profile's ordered citizenship list.
type Nationality struct {
	Country string `json:"country"`
	Code    string `json:"code,omitempty"`
}

// UserProfile is the single identity + context record of an installation.
// Every screen reads it; the goal workflow and the profile editor write it.
type UserProfile struct {
	UserID            string        `json:"user_id,omitempty"`
	DisplayName       string        `json:"displayName"`
	Email             string        `json:"email"`
	FirstName         string        `json:"firstName,omitempty"`
	LastName          string        `json:"lastName,omitempty"`
	DateOfBirth       string        `json:"dateOfBirth,omitempty"`
	Nationalities     []Nationality `json:"nationalities"`
	CurrentResidence  string        `json:"currentResidence"`
	Occupation        string        `json:"occupation,omitempty"`
	MaritalStatus     string        `json:"maritalStatus,omitempty"`
	Language          string        `json:"language"`
	PhoneNumber       string        `json:"phoneNumber,omitempty"`
	Address           string        `json:"address,omitempty"`
	IsSecurityEnabled bool          `json:"isSecurityEnabled"`
	PinCode           string        `json:"pinCode,omitempty"`
	IsOnboarded       bool          `json:"isOnboarded"`
}

// DefaultProfile returns the record used before onboarding has run.
func DefaultProfile() UserProfile {
	return UserProfile{
		Nationalities: []Nationality{},
		MaritalStatus: "Single",
		Language:      "en",
	}
}

// NationalityNames returns the ordered country names, empty slice when none
// are known yet.
func (p UserProfile) NationalityNames() []string {
	names := make([]string, 0, len(p.Nationalities))
	for _, n := range p.Nationalities {
		names = append(names, n.Country)
	}
	return names
}

// WithCitizenship replaces the nationality list with the single chosen
// country. The workflow uses this when the intelligence service asked for
// citizenship after the fact.
func (p UserProfile) WithCitizenship(country, code string) UserProfile {
	p.Nationalities = []Nationality{{Country: country, Code: code}}
	return p
}

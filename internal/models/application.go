// internal/models/application.go
package models

import "math"

// ApplicationType enumerates the tracked immigration objectives.
type ApplicationType string

const (
	TypeVisa            ApplicationType = "Visa"
	TypeResidency       ApplicationType = "Residency"
	TypeWorkPermit      ApplicationType = "Work Permit"
	TypeTaxID           ApplicationType = "Tax ID"
	TypeHealthInsurance ApplicationType = "Health Insurance"
	TypeCitizenship     ApplicationType = "Citizenship"
	TypeAsylum          ApplicationType = "Asylum Application"
)

// ApplicationStatus enumerates the lifecycle states of an application.
type ApplicationStatus string

const (
	StatusNotStarted    ApplicationStatus = "Not Started"
	StatusInProgress    ApplicationStatus = "In Progress"
	StatusPendingReview ApplicationStatus = "Pending Review"
	StatusApproved      ApplicationStatus = "Approved"
	StatusRejected      ApplicationStatus = "Rejected"
	StatusVisaFree      ApplicationStatus = "Visa Free"
)

// ApplicationStep is one entry of an application's ordered pathway.
type ApplicationStep struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}

// ApplicationForm is a downloadable or portal-hosted form supplied by the
// intelligence service.
type ApplicationForm struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Type        string `json:"type"` // "PDF" or "Portal"
	Description string `json:"description,omitempty"`
	SubmittedAt string `json:"submittedAt,omitempty"`
}

// SubmissionPoint is a place where the application can be filed.
type SubmissionPoint struct {
	Name     string `json:"name"`
	Type     string `json:"type"` // "Online Portal", "Embassy/Consulate", "Local Office", "Mail"
	Location string `json:"location,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Application is a tracked goal ("pathway") for one destination country.
type Application struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Country          string            `json:"country"`
	Type             ApplicationType   `json:"type"`
	Status           ApplicationStatus `json:"status"`
	Progress         int               `json:"progress"`
	LastUpdated      string            `json:"lastUpdated"`
	DueDate          string            `json:"dueDate,omitempty"`
	RequiredDocs     []string          `json:"requiredDocs"`
	CompletedDocs    []string          `json:"completedDocs,omitempty"`
	Steps            []ApplicationStep `json:"steps,omitempty"`
	Forms            []ApplicationForm `json:"forms,omitempty"`
	SubmissionPoints []SubmissionPoint `json:"submissionPoints,omitempty"`
	Advisory         string            `json:"advisory,omitempty"`
	IsVisaFree       bool              `json:"isVisaFree,omitempty"`
	VisaFreeDuration string            `json:"visaFreeDuration,omitempty"`
	TravelContext    map[string]string `json:"travelContext,omitempty"`
}

// DerivedProgress computes progress from completed-vs-required doc and step
// counts. When the application carries no checklist items the stored value
// stands (a server-set figure, e.g. 100 for visa-free).
func (a Application) DerivedProgress() int {
	total := len(a.RequiredDocs) + len(a.Steps)
	if total == 0 {
		return a.Progress
	}
	completed := len(a.CompletedDocs)
	for _, s := range a.Steps {
		if s.IsCompleted {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// HasCompletedDoc reports whether name is already marked complete.
func (a Application) HasCompletedDoc(name string) bool {
	for _, d := range a.CompletedDocs {
		if d == name {
			return true
		}
	}
	return false
}

// RequiresDoc reports whether name is part of the required list.
func (a Application) RequiresDoc(name string) bool {
	for _, d := range a.RequiredDocs {
		if d == name {
			return true
		}
	}
	return false
}

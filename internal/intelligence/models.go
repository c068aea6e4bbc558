// internal/intelligence/models.go
package intelligence

import "tara/internal/models"

// RequestKind selects the intelligence-service operation.
type RequestKind string

const (
	KindRequirements RequestKind = "requirements"
	KindResources    RequestKind = "resources"
	KindAdvisory     RequestKind = "advisory"
	KindGuidance     RequestKind = "guidance"
	KindVisaFree     RequestKind = "visa_free"
)

// AwaitingCitizenship is the feedback field the service uses when it cannot
// produce a plan without knowing the applicant's citizenship.
const AwaitingCitizenship = "citizenship"

// request is the single wire contract of the planning endpoint.
type request struct {
	RequestType RequestKind        `json:"request_type"`
	Country     string             `json:"country"`
	Type        string             `json:"type"`
	Profile     models.UserProfile `json:"profile"`
	Context     map[string]string  `json:"context,omitempty"`
}

// response is the loose wire shape; it is decoded exactly once, at the
// client boundary, into a Result.
type response struct {
	Status           string                   `json:"status"`
	Documents        []string                 `json:"documents"`
	Steps            []models.ApplicationStep `json:"steps"`
	Forms            []models.ApplicationForm `json:"forms"`
	SubmissionPoints []models.SubmissionPoint `json:"submissionPoints"`
	AwaitingFeedback map[string]string        `json:"awaiting_feedback"`
}

// Fulfilled is a complete plan payload.
type Fulfilled struct {
	Documents        []string                 `json:"documents"`
	Steps            []models.ApplicationStep `json:"steps"`
	Forms            []models.ApplicationForm `json:"forms"`
	SubmissionPoints []models.SubmissionPoint `json:"submissionPoints"`
}

// Incomplete signals that the service needs one more piece of user data
// before it can produce a plan. It is a normal branch, not an error.
type Incomplete struct {
	AwaitingField string `json:"awaitingField"`
	Prompt        string `json:"prompt"`
}

// Result is the tagged union every planning request resolves to. Exactly one
// of the following holds:
//   - Incomplete != nil: the caller must suspend and collect the field.
//   - Errored: transport failed and Fulfilled carries fixed fallback data.
//   - otherwise: Fulfilled carries the service's plan.
type Result struct {
	Fulfilled  Fulfilled
	Incomplete *Incomplete
	Errored    bool
}

// NeedsCitizenship reports whether the service suspended on a citizenship
// prompt.
func (r Result) NeedsCitizenship() bool {
	return r.Incomplete != nil && r.Incomplete.AwaitingField == AwaitingCitizenship
}

// VisaFreeStatus is the visa-free eligibility lookup result.
type VisaFreeStatus struct {
	IsVisaFree bool   `json:"isVisaFree"`
	Duration   string `json:"duration"`
}

// FallbackAdvisory is returned when the advisory lookup cannot reach the
// service.
const FallbackAdvisory = "Exercise normal safety precautions."

// fallbackPlan is the fixed degraded payload callers receive when the
// service is unreachable. They proceed with it; no error propagates.
func fallbackPlan() Fulfilled {
	return Fulfilled{
		Documents: []string{"Passport (Fallback)", "Application Form"},
		Steps: []models.ApplicationStep{
			{ID: "1", Text: "Check connection to backend", IsCompleted: false},
		},
		Forms:            []models.ApplicationForm{},
		SubmissionPoints: []models.SubmissionPoint{},
	}
}

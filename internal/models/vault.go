// internal/models/vault.go
package models

// UserDocument is one entry of the document vault.
type UserDocument struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	UploadDate string `json:"uploadDate"`
	ExpiryDate string `json:"expiryDate,omitempty"`
	FileSize   string `json:"fileSize,omitempty"`
}

// Appointment is a scheduled visit tied to an application.
type Appointment struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Location      string `json:"location"`
	DateTime      string `json:"dateTime"`
	ApplicationID string `json:"applicationId,omitempty"`
	Status        string `json:"status"` // "Confirmed", "Pending", "Completed"
}

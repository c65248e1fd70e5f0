package crm

// ContactPayload is the patient record shape the CRM expects on upsert.
// ExternalID carries our patient UUID so re-exports update instead of
// duplicating contacts.
type ContactPayload struct {
	ExternalID string `json:"external_id"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	Document   string `json:"document,omitempty"`
}

// EventPayload is the appointment record shape the CRM expects on upsert.
type EventPayload struct {
	ExternalID        string `json:"external_id"`
	ContactExternalID string `json:"contact_external_id"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	Specialty         string `json:"specialty,omitempty"`
	Status            string `json:"status"`
}

// ErrorResponse is the CRM's error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

package payload

// IssuePayload wraps the participant ids posted to the issue endpoint.
type IssuePayload struct {
	ParticipantIds []int64 `json:"participantIds" validate:"required,min=1,max=10000,dive,gt=0"`
}

// ParticipantRow is one line of the admin selection table.
type ParticipantRow struct {
	Id             int64  `json:"id"`
	Name           string `json:"name"`
	School         string `json:"school,omitempty"`
	Region         string `json:"region,omitempty"`
	Email          string `json:"email"`
	Attended       bool   `json:"attended"`
	HasCertificate bool   `json:"hasCertificate"`
}

package model

import "strings"

// Participant is a registration form document from the Mongo "registrations"
// collection.
type Participant struct {
	ID         int64  `bson:"_id" json:"id"`
	LastName   string `bson:"last_name" json:"last_name"`
	FirstName  string `bson:"first_name" json:"first_name"`
	MiddleName string `bson:"middle_name,omitempty" json:"middle_name,omitempty"`
	Email      string `bson:"email" json:"email"`
	School     string `bson:"school,omitempty" json:"school,omitempty"`
	Region     string `bson:"region,omitempty" json:"region,omitempty"`
	Attended   bool   `bson:"attended" json:"attended"`
}

// DisplayName returns "Last First", the ordering used by every portal table.
func (p *Participant) DisplayName() string {
	parts := make([]string, 0, 2)
	for _, part := range []string{p.LastName, p.FirstName} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

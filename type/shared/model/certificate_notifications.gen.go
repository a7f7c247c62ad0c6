package model

import "time"

const TableNameCertificateNotification = "certificate_notifications"

const (
	NotificationStatusSent   = "sent"
	NotificationStatusFailed = "failed"
)

// CertificateNotification tracks the "certificate ready" mail per participant.
type CertificateNotification struct {
	ID            uint       `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	ParticipantID int64      `gorm:"column:participant_id;not null;uniqueIndex" json:"participant_id"`
	Status        string     `gorm:"column:status;not null" json:"status"`
	Email         string     `gorm:"column:email" json:"email"`
	Attempts      int        `gorm:"column:attempts;not null;default:0" json:"attempts"`
	LastError     string     `gorm:"column:last_error" json:"last_error"`
	SentAt        *time.Time `gorm:"column:sent_at" json:"sent_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName CertificateNotification's table name
func (*CertificateNotification) TableName() string {
	return TableNameCertificateNotification
}

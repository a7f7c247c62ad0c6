package model

import "time"

const TableNameIssuedCertificate = "issued_certificates"

// IssuedCertificate is the single live certificate of a participant.
// DownloadToken is the opaque public handle of the certificate and survives
// reissues, so printed QR codes stay valid.
type IssuedCertificate struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	ParticipantID int64     `gorm:"column:participant_id;not null;uniqueIndex" json:"participant_id"`
	ArtifactPath  string    `gorm:"column:artifact_path;not null" json:"artifact_path"`
	DownloadToken string    `gorm:"column:download_token;not null;uniqueIndex" json:"download_token"`
	TemplateID    uint      `gorm:"column:template_id;not null" json:"template_id"`
	Signed        bool      `gorm:"column:signed;not null" json:"signed"`
	IssuedAt      time.Time `gorm:"column:issued_at;not null" json:"issued_at"`
	CreatedAt     time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName IssuedCertificate's table name
func (*IssuedCertificate) TableName() string {
	return TableNameIssuedCertificate
}

package model

import "time"

const TableNameCertificateTemplate = "certificate_templates"

const (
	DefaultFontSize  = 110
	DefaultFontColor = "#023664"
)

// CertificateTemplate is one uploaded template. Only the row with IsActive
// set is current; superseded rows are kept for issued certificates.
type CertificateTemplate struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	TemplatePath string    `gorm:"column:template_path;not null" json:"template_path"`
	PageWidth    float64   `gorm:"column:page_width;not null" json:"page_width"`
	PageHeight   float64   `gorm:"column:page_height;not null" json:"page_height"`
	TextX        float64   `gorm:"column:text_x;not null" json:"text_x"`
	TextY        float64   `gorm:"column:text_y;not null" json:"text_y"`
	FontSize     int       `gorm:"column:font_size;not null" json:"font_size"`
	FontColor    string    `gorm:"column:font_color;not null" json:"font_color"`
	FontPath     *string   `gorm:"column:font_path" json:"font_path"`
	IsActive     bool      `gorm:"column:is_active;not null;index" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName CertificateTemplate's table name
func (*CertificateTemplate) TableName() string {
	return TableNameCertificateTemplate
}

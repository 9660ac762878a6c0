package models

import "time"

// Story is long-form written content submitted by a writer. The body lives
// in Body; PDFURL is set instead when the writer uploaded a PDF.
type Story struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	WrittenBy uint          `gorm:"index;not null" json:"author_id"`
	Name      string        `gorm:"size:255;not null" json:"name"`
	Language  string        `gorm:"size:50" json:"language"`
	Font      string        `gorm:"size:50" json:"font"`
	PDFURL    string        `gorm:"size:255" json:"pdf_url"`
	Body      string        `gorm:"type:text" json:"story"`
	Status    ContentStatus `gorm:"type:varchar(20);not null" json:"status"`
	Price     float64       `gorm:"type:numeric(10,2);default:0" json:"price"`
	Tags      string        `gorm:"type:text" json:"tags"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_on"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_on"`

	Author User `gorm:"foreignKey:WrittenBy;constraint:OnDelete:CASCADE" json:"-"`
}

func (s *Story) GetStatus() ContentStatus       { return s.Status }
func (s *Story) SetStatus(status ContentStatus) { s.Status = status }
func (s *Story) AuthorID() uint                 { return s.WrittenBy }

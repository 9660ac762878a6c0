package models

import "time"

// Poem mirrors Story column for column. The admin tooling treats the two
// independently, so they stay separate tables sharing the Moderatable
// machinery.
type Poem struct {
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

func (p *Poem) GetStatus() ContentStatus       { return p.Status }
func (p *Poem) SetStatus(status ContentStatus) { p.Status = status }
func (p *Poem) AuthorID() uint                 { return p.WrittenBy }

package models

import "time"

// AudioLinkType says whether an audio story narrates an existing story or
// poem, or stands alone.
type AudioLinkType string

const (
	AudioLinkNone  AudioLinkType = "none"
	AudioLinkStory AudioLinkType = "story"
	AudioLinkPoem  AudioLinkType = "poem"
)

// AudioStory is narrated content produced by the back office, optionally
// linked to a published story or poem.
type AudioStory struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	CreatedBy     uint          `gorm:"index;not null" json:"created_by"`
	Name          string        `gorm:"size:255;not null" json:"name"`
	Language      string        `gorm:"size:50" json:"language"`
	LinkType      AudioLinkType `gorm:"type:varchar(10);not null;default:'none'" json:"link_type"`
	LinkedStoryID *uint         `json:"linked_story_id,omitempty"`
	LinkedPoemID  *uint         `json:"linked_poem_id,omitempty"`
	AudioURL      string        `gorm:"size:255" json:"audio_url"`
	DurationSec   int           `json:"duration_sec"`
	Tags          string        `gorm:"type:text" json:"tags"`
	Status        ContentStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_on"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_on"`

	Creator Admin `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (a *AudioStory) GetStatus() ContentStatus       { return a.Status }
func (a *AudioStory) SetStatus(status ContentStatus) { a.Status = status }

// AuthorID returns the creating admin's id. Audio stories are owned by
// admin principals, so the draft edit/delete ownership check compares
// against the admin id.
func (a *AudioStory) AuthorID() uint { return a.CreatedBy }

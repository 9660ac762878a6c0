package models

import "fmt"

// ContentStatus is the moderation state of a story, poem or audio story.
// Content cycles draft -> pending -> published and can be sent back:
// published -> pending. There is no rejected state for content; a rejected
// piece simply returns to pending for rework.
type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusPending   ContentStatus = "pending"
	StatusPublished ContentStatus = "published"
)

func (s ContentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPublished:
		return true
	}
	return false
}

// Moderatable is implemented by every content entity subject to the
// moderation workflow. AuthorID is the owning principal: the writer for
// stories and poems, the creating admin for audio stories.
type Moderatable interface {
	GetStatus() ContentStatus
	SetStatus(ContentStatus)
	AuthorID() uint
}

// InvalidTransitionError reports an action attempted from the wrong
// status. Handlers map it to HTTP 400.
type InvalidTransitionError struct {
	Action   string
	Required ContentStatus
	Actual   ContentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s: status is %q, must be %q", e.Action, e.Actual, e.Required)
}

func require(m Moderatable, action string, from ContentStatus) error {
	if m.GetStatus() != from {
		return &InvalidTransitionError{Action: action, Required: from, Actual: m.GetStatus()}
	}
	return nil
}

// Submit moves a draft into the moderation queue.
func Submit(m Moderatable) error {
	if err := require(m, "submit", StatusDraft); err != nil {
		return err
	}
	m.SetStatus(StatusPending)
	return nil
}

// Approve publishes content that is currently awaiting moderation.
func Approve(m Moderatable) error {
	if err := require(m, "approve", StatusPending); err != nil {
		return err
	}
	m.SetStatus(StatusPublished)
	return nil
}

// Reject sends published content back to the moderation queue.
func Reject(m Moderatable) error {
	if err := require(m, "reject", StatusPublished); err != nil {
		return err
	}
	m.SetStatus(StatusPending)
	return nil
}

// EnsureDraft guards edit and delete, which are only legal while drafting.
func EnsureDraft(m Moderatable, action string) error {
	return require(m, action, StatusDraft)
}

// EnsurePublished guards the admin-only published-content delete route.
func EnsurePublished(m Moderatable, action string) error {
	return require(m, action, StatusPublished)
}

// MayModify reports whether the caller may edit or delete the content:
// the owning author, or any admin principal.
func MayModify(m Moderatable, callerID uint, callerIsAdmin bool) bool {
	return callerIsAdmin || m.AuthorID() == callerID
}

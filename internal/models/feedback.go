package models

import "time"

type FeedbackType string

const (
	FeedbackGeneral   FeedbackType = "general"
	FeedbackChapter   FeedbackType = "chapter"
	FeedbackMilestone FeedbackType = "milestone"
	FeedbackProgress  FeedbackType = "progress"
	FeedbackConcern   FeedbackType = "concern"
	FeedbackPraise    FeedbackType = "praise"
)

func ParseFeedbackType(s string) (FeedbackType, bool) {
	switch FeedbackType(s) {
	case FeedbackGeneral, FeedbackChapter, FeedbackMilestone,
		FeedbackProgress, FeedbackConcern, FeedbackPraise:
		return FeedbackType(s), true
	}
	return "", false
}

// FeedbackEntry is a supervisor-authored message on a project. Immutable
// after creation except for the read flag, which only the owning student
// may flip.
type FeedbackEntry struct {
	ID           int64        `db:"id" json:"id"`
	ProjectID    int64        `db:"project_id" json:"projectId"`
	SupervisorID int64        `db:"supervisor_id" json:"supervisorId"`
	Type         FeedbackType `db:"type" json:"type"`
	Subject      string       `db:"subject" json:"subject"`
	Message      string       `db:"message" json:"message"`
	Rating       *int         `db:"rating" json:"rating,omitempty"`
	Read         bool         `db:"read" json:"read"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`

	SupervisorName string `db:"-" json:"supervisorName,omitempty"`
}

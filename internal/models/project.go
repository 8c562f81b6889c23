package models

import "time"

// Status is the project lifecycle stage. The set is closed; anything else
// coming off the wire must be rejected at parse time.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusInProgress  Status = "in_progress"
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
)

// AllStatuses lists every lifecycle stage in creation order. Aggregations
// iterate this so histograms are zero-filled, never sparse.
var AllStatuses = []Status{
	StatusDraft,
	StatusInProgress,
	StatusSubmitted,
	StatusUnderReview,
	StatusApproved,
	StatusRejected,
}

func ParseStatus(s string) (Status, bool) {
	for _, st := range AllStatuses {
		if Status(s) == st {
			return st, true
		}
	}
	return "", false
}

type Project struct {
	ID                     int64      `db:"id" json:"id"`
	Title                  string     `db:"title" json:"title"`
	Description            string     `db:"description" json:"description"`
	StudentID              int64      `db:"student_id" json:"studentId"`
	SupervisorID           int64      `db:"supervisor_id" json:"supervisorId"`
	Department             string     `db:"department" json:"department"`
	Status                 Status     `db:"status" json:"status"`
	Progress               int        `db:"progress" json:"progress"`
	StartDate              time.Time  `db:"start_date" json:"startDate"`
	SubmissionDate         *time.Time `db:"submission_date" json:"submissionDate,omitempty"`
	ExpectedCompletionDate *time.Time `db:"expected_completion_date" json:"expectedCompletionDate,omitempty"`
	Objectives             []string   `db:"objectives" json:"objectives"`
	Technologies           []string   `db:"technologies" json:"technologies"`
	Documents              []Document `db:"-" json:"documents"`
	CreatedAt              time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt              time.Time  `db:"updated_at" json:"updatedAt"`

	// Display copies resolved from the users store at read time; never
	// persisted, so they cannot drift from the user record.
	StudentName    string `db:"-" json:"studentName,omitempty"`
	SupervisorName string `db:"-" json:"supervisorName,omitempty"`
}

// Document is stored metadata about an uploaded project file. The blob
// itself lives elsewhere; only the reference is tracked here.
type Document struct {
	ID         int64     `db:"id" json:"id"`
	ProjectID  int64     `db:"project_id" json:"projectId"`
	Name       string    `db:"name" json:"name"`
	Type       string    `db:"type" json:"type"`
	Size       string    `db:"size" json:"size"`
	URL        string    `db:"url" json:"url"`
	UploadDate time.Time `db:"upload_date" json:"uploadDate"`
}

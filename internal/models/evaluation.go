package models

import "time"

type EvaluationStatus string

const (
	EvaluationPending   EvaluationStatus = "pending"
	EvaluationCompleted EvaluationStatus = "completed"
)

// Criterion is one named, bounded-score component of an evaluation.
type Criterion struct {
	Name     string `db:"name" json:"name"`
	MaxScore int    `db:"max_score" json:"maxScore"`
	Score    int    `db:"score" json:"score"`
	Comment  string `db:"comment" json:"comment,omitempty"`
}

// Evaluation is the scored assessment of a submitted project. At most one
// exists per project; once completed it is immutable.
type Evaluation struct {
	ID             int64            `db:"id" json:"id"`
	ProjectID      int64            `db:"project_id" json:"projectId"`
	EvaluatorID    int64            `db:"evaluator_id" json:"evaluatorId"`
	EvaluatorRole  Role             `db:"evaluator_role" json:"evaluatorRole"`
	Criteria       []Criterion      `db:"-" json:"criteria"`
	TotalScore     int              `db:"total_score" json:"totalScore"`
	MaxTotalScore  int              `db:"max_total_score" json:"maxTotalScore"`
	Grade          string           `db:"grade" json:"grade"`
	GeneralComment string           `db:"general_comment" json:"generalComment,omitempty"`
	Status         EvaluationStatus `db:"status" json:"status"`
	EvaluatedAt    *time.Time       `db:"evaluated_at" json:"evaluatedAt,omitempty"`

	EvaluatorName string `db:"-" json:"evaluatorName,omitempty"`
}

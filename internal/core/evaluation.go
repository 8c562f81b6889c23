package core

import (
	"fmt"
	"time"

	"github.com/fyptrack/fyptrack/internal/models"
)

// GradeBand maps a minimum percentage to a letter grade. Bands are
// configuration, not constants: the engine walks an ordered list top-down
// and takes the first band whose minimum the percentage reaches.
type GradeBand struct {
	MinPercent float64
	Label      string
}

// DefaultGradeBands matches the observed sample data (88/100 scored "A").
// Deployments override via GRADE_BANDS.
var DefaultGradeBands = []GradeBand{
	{80, "A"},
	{70, "B"},
	{60, "C"},
	{50, "D"},
	{0, "F"},
}

// EvaluationEngine scores projects against weighted criteria and assigns a
// banded letter grade.
type EvaluationEngine struct {
	bands []GradeBand
}

func NewEvaluationEngine(bands []GradeBand) *EvaluationEngine {
	if len(bands) == 0 {
		bands = DefaultGradeBands
	}
	return &EvaluationEngine{bands: bands}
}

// Grade resolves the letter for a total over a maximum. A zero maximum
// yields percentage 0, never NaN.
func (e *EvaluationEngine) Grade(totalScore, maxTotalScore int) string {
	var pct float64
	if maxTotalScore > 0 {
		pct = float64(totalScore) / float64(maxTotalScore) * 100
	}
	for _, b := range e.bands {
		if pct >= b.MinPercent {
			return b.Label
		}
	}
	// Fall through only when the configured bands leave a gap at the
	// bottom; treat it as the lowest band.
	return e.bands[len(e.bands)-1].Label
}

// validateCriteria rejects (never clamps) out-of-range input. Clamping is a
// UI slider convenience, not a guarantee this engine offers.
func validateCriteria(criteria []models.Criterion) error {
	if len(criteria) == 0 {
		return fmt.Errorf("no criteria given: %w", ErrInvalidScore)
	}
	for _, c := range criteria {
		if c.MaxScore <= 0 {
			return fmt.Errorf("criterion %q: max score %d must be positive: %w", c.Name, c.MaxScore, ErrInvalidScore)
		}
		if c.Score < 0 || c.Score > c.MaxScore {
			return fmt.Errorf("criterion %q: score %d outside 0..%d: %w", c.Name, c.Score, c.MaxScore, ErrInvalidScore)
		}
	}
	return nil
}

// Evaluate builds the completed evaluation for a project. existing is the
// current evaluation snapshot (nil when none): any existing record, pending
// or completed, is a conflict — the second evaluation must fail, not
// overwrite. The persistence layer backs this check with a uniqueness
// constraint; this is only the fast path.
func (e *EvaluationEngine) Evaluate(
	p *models.Project,
	existing *models.Evaluation,
	evaluator models.User,
	criteria []models.Criterion,
	generalComment string,
	now time.Time,
) (*models.Evaluation, error) {
	if p == nil {
		return nil, ErrNotFound
	}
	if existing != nil {
		return nil, fmt.Errorf("project %d: %w", p.ID, ErrConflict)
	}
	if err := Authorize(evaluator, OpCreateEvaluation, p); err != nil {
		return nil, err
	}
	if p.Status != models.StatusSubmitted && p.Status != models.StatusUnderReview {
		return nil, fmt.Errorf("project %d is %s: %w", p.ID, p.Status, ErrInvalidState)
	}
	if err := validateCriteria(criteria); err != nil {
		return nil, err
	}

	total, maxTotal := 0, 0
	for _, c := range criteria {
		total += c.Score
		maxTotal += c.MaxScore
	}

	t := now
	ev := &models.Evaluation{
		ProjectID:      p.ID,
		EvaluatorID:    evaluator.ID,
		EvaluatorRole:  evaluator.Role,
		Criteria:       criteria,
		TotalScore:     total,
		MaxTotalScore:  maxTotal,
		Grade:          e.Grade(total, maxTotal),
		GeneralComment: generalComment,
		Status:         models.EvaluationCompleted,
		EvaluatedAt:    &t,
	}
	return ev, nil
}

// CheckMutable guards updates: a completed evaluation never changes.
func CheckMutable(ev *models.Evaluation) error {
	if ev == nil {
		return ErrNotFound
	}
	if ev.Status == models.EvaluationCompleted {
		return fmt.Errorf("evaluation %d: %w", ev.ID, ErrImmutable)
	}
	return nil
}

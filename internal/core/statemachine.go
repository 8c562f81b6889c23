package core

import (
	"fmt"
	"time"

	"github.com/fyptrack/fyptrack/internal/models"
)

// edges is the legal transition table. under_review and rejected loop back
// to in_progress when the evaluator requests a resubmission.
var edges = map[models.Status][]models.Status{
	models.StatusDraft:       {models.StatusInProgress},
	models.StatusInProgress:  {models.StatusSubmitted},
	models.StatusSubmitted:   {models.StatusUnderReview, models.StatusApproved},
	models.StatusUnderReview: {models.StatusApproved, models.StatusRejected, models.StatusInProgress},
	models.StatusRejected:    {models.StatusInProgress},
	models.StatusApproved:    {},
}

// edgeOperation maps a legal edge to the capability that authorizes it.
// Student-side edges (starting work, submitting) belong to the owner;
// everything from submitted onward belongs to the evaluator workflow,
// including resubmission requests.
func edgeOperation(from, to models.Status) Operation {
	switch {
	case from == models.StatusDraft && to == models.StatusInProgress:
		return OpAdvanceProject
	case from == models.StatusInProgress && to == models.StatusSubmitted:
		return OpAdvanceProject
	default:
		return OpReviewProject
	}
}

// CanTransition reports whether target is reachable from the current
// status, ignoring the actor.
func CanTransition(from, to models.Status) bool {
	for _, t := range edges[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Transition validates and applies a status change on the project record.
// Legality is checked before permission: an unreachable target fails with
// ErrInvalidTransition even for an admin. Moving to submitted stamps the
// submission date if it was never set. The caller persists the mutated
// record; on error the record is untouched.
func Transition(p *models.Project, target models.Status, actor models.User, now time.Time) error {
	if p == nil {
		return ErrNotFound
	}
	if !CanTransition(p.Status, target) {
		return fmt.Errorf("%s -> %s: %w", p.Status, target, ErrInvalidTransition)
	}
	if err := Authorize(actor, edgeOperation(p.Status, target), p); err != nil {
		return err
	}

	if target == models.StatusSubmitted && p.SubmissionDate == nil {
		t := now
		p.SubmissionDate = &t
	}
	p.Status = target
	p.UpdatedAt = now
	return nil
}

package core

import (
	"fmt"

	"github.com/fyptrack/fyptrack/internal/models"
)

// Operation names a capability from the access table. Transitions map to
// OpAdvanceProject (student-side edges) or OpReviewProject (evaluator-side
// edges); see statemachine.go.
type Operation string

const (
	OpViewProject      Operation = "view_project"
	OpEditProject      Operation = "edit_project"
	OpAdvanceProject   Operation = "advance_project"
	OpReviewProject    Operation = "review_project"
	OpCreateFeedback   Operation = "create_feedback"
	OpMarkFeedbackRead Operation = "mark_feedback_read"
	OpCreateEvaluation Operation = "create_evaluation"
	OpDeleteProject    Operation = "delete_project"
	OpDeleteUser       Operation = "delete_user"
	OpDeleteEvaluation Operation = "delete_evaluation"
)

// Can evaluates the capability table for one actor, operation and project.
// Identity matters, not just role: a student may only touch their own
// project and a supervisor only projects assigned to them. Admin scope is
// unrestricted except where the table says otherwise (reading feedback as
// read belongs to the student recipient alone).
func Can(actor models.User, op Operation, p *models.Project) bool {
	owner := p != nil && actor.IsStudent() && p.StudentID == actor.ID
	assigned := p != nil && actor.IsSupervisor() && p.SupervisorID == actor.ID

	switch op {
	case OpViewProject:
		return owner || assigned || actor.IsAdmin()
	case OpEditProject:
		return owner || actor.IsAdmin()
	case OpAdvanceProject:
		return owner || actor.IsAdmin()
	case OpReviewProject:
		return assigned || actor.IsAdmin()
	case OpCreateFeedback:
		return assigned || actor.IsAdmin()
	case OpMarkFeedbackRead:
		return owner
	case OpCreateEvaluation:
		return assigned || actor.IsAdmin()
	case OpDeleteProject, OpDeleteUser, OpDeleteEvaluation:
		return actor.IsAdmin()
	}
	return false
}

// Authorize is Can with the forbidden error attached, for call sites that
// gate a mutation.
func Authorize(actor models.User, op Operation, p *models.Project) error {
	if !Can(actor, op, p) {
		return fmt.Errorf("%s by %s %d: %w", op, actor.Role, actor.ID, ErrForbidden)
	}
	return nil
}

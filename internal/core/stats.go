package core

import (
	"time"

	"github.com/fyptrack/fyptrack/internal/models"
)

// Role-scoped summary statistics, recomputed on demand from the current
// record set. Pure derivation; callers pass the already-filtered slices.

type StudentStats struct {
	ProjectProgress   int  `json:"projectProgress"`
	FeedbackReceived  int  `json:"feedbackReceived"`
	UnreadFeedback    int  `json:"unreadFeedback"`
	PendingTasks      int  `json:"pendingTasks"`
	DaysUntilDeadline *int `json:"daysUntilDeadline,omitempty"`
}

type SupervisorStats struct {
	TotalProjects        int `json:"totalProjects"`
	PendingReviews       int `json:"pendingReviews"`
	CompletedEvaluations int `json:"completedEvaluations"`
	StudentsSupervised   int `json:"studentsSupervised"`
}

type AdminStats struct {
	TotalProjects        int                   `json:"totalProjects"`
	TotalStudents        int                   `json:"totalStudents"`
	TotalSupervisors     int                   `json:"totalSupervisors"`
	ProjectsByStatus     map[models.Status]int `json:"projectsByStatus"`
	ProjectsByDepartment map[string]int        `json:"projectsByDepartment"`
	AverageProgress      float64               `json:"averageProgress"`
	RecentSubmissions    int                   `json:"recentSubmissions"`
}

// ComputeStudentStats summarizes one student's project view. The deadline
// delta is signed whole days and deliberately not clamped at zero, so an
// overdue project is observable as a negative number.
func ComputeStudentStats(p *models.Project, feedback []models.FeedbackEntry, now time.Time) StudentStats {
	var s StudentStats
	if p == nil {
		return s
	}
	s.ProjectProgress = p.Progress
	for _, f := range feedback {
		if f.ProjectID != p.ID {
			continue
		}
		s.FeedbackReceived++
		if !f.Read {
			s.UnreadFeedback++
		}
	}
	// No per-objective completion tracking exists; while the project is
	// still being worked, every objective counts as an open item.
	if p.Status == models.StatusDraft || p.Status == models.StatusInProgress {
		s.PendingTasks = len(p.Objectives)
	}
	if p.ExpectedCompletionDate != nil {
		days := int(p.ExpectedCompletionDate.Sub(now).Hours() / 24)
		s.DaysUntilDeadline = &days
	}
	return s
}

// ComputeSupervisorStats summarizes the workload of one supervisor over the
// full project and evaluation sets.
func ComputeSupervisorStats(supervisorID int64, projects []models.Project, evaluations []models.Evaluation, now time.Time) SupervisorStats {
	var s SupervisorStats
	evaluated := make(map[int64]bool, len(evaluations))
	for _, ev := range evaluations {
		if ev.Status == models.EvaluationCompleted {
			evaluated[ev.ProjectID] = true
			if ev.EvaluatorID == supervisorID {
				s.CompletedEvaluations++
			}
		}
	}
	students := make(map[int64]struct{})
	for _, p := range projects {
		if p.SupervisorID != supervisorID {
			continue
		}
		s.TotalProjects++
		students[p.StudentID] = struct{}{}
		awaiting := p.Status == models.StatusSubmitted || p.Status == models.StatusUnderReview
		if awaiting && !evaluated[p.ID] {
			s.PendingReviews++
		}
	}
	s.StudentsSupervised = len(students)
	return s
}

// ComputeAdminStats builds the admin dashboard snapshot. Every status
// bucket is present even at zero, the average guards the empty set, and a
// submission is "recent" within the last 7 days of now.
func ComputeAdminStats(projects []models.Project, users []models.User, now time.Time) AdminStats {
	s := AdminStats{
		ProjectsByStatus:     make(map[models.Status]int, len(models.AllStatuses)),
		ProjectsByDepartment: make(map[string]int),
	}
	for _, st := range models.AllStatuses {
		s.ProjectsByStatus[st] = 0
	}
	for _, u := range users {
		switch u.Role {
		case models.RoleStudent:
			s.TotalStudents++
		case models.RoleSupervisor:
			s.TotalSupervisors++
		}
	}

	cutoff := now.AddDate(0, 0, -7)
	sum := 0
	for _, p := range projects {
		s.TotalProjects++
		s.ProjectsByStatus[p.Status]++
		if p.Department != "" {
			s.ProjectsByDepartment[p.Department]++
		}
		sum += p.Progress
		if p.SubmissionDate != nil && !p.SubmissionDate.Before(cutoff) && !p.SubmissionDate.After(now) {
			s.RecentSubmissions++
		}
	}
	if s.TotalProjects > 0 {
		s.AverageProgress = float64(sum) / float64(s.TotalProjects)
	}
	return s
}

// Percent is the shared zero-safe percentage helper for dashboard views.
func Percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

package core

import (
	"testing"
	"time"

	"github.com/fyptrack/fyptrack/internal/models"
)

func TestComputeAdminStatsEmptySet(t *testing.T) {
	s := ComputeAdminStats(nil, nil, testNow)
	if s.AverageProgress != 0 {
		t.Fatalf("average progress over empty set = %v, want 0", s.AverageProgress)
	}
	if len(s.ProjectsByStatus) != len(models.AllStatuses) {
		t.Fatalf("status histogram has %d buckets, want %d", len(s.ProjectsByStatus), len(models.AllStatuses))
	}
	for st, n := range s.ProjectsByStatus {
		if n != 0 {
			t.Fatalf("bucket %s = %d, want 0", st, n)
		}
	}
}

func TestComputeAdminStatsDashboardScenario(t *testing.T) {
	counts := map[models.Status]int{
		models.StatusDraft:       5,
		models.StatusInProgress:  25,
		models.StatusSubmitted:   10,
		models.StatusUnderReview: 3,
		models.StatusApproved:    2,
		models.StatusRejected:    0,
	}
	var projects []models.Project
	id := int64(1)
	for st, n := range counts {
		for i := 0; i < n; i++ {
			projects = append(projects, models.Project{ID: id, Status: st, Department: "Computer Science", Progress: 50})
			id++
		}
	}
	s := ComputeAdminStats(projects, nil, testNow)
	if s.TotalProjects != 45 {
		t.Fatalf("total = %d, want 45", s.TotalProjects)
	}
	sum := 0
	for st, want := range counts {
		if s.ProjectsByStatus[st] != want {
			t.Fatalf("bucket %s = %d, want %d", st, s.ProjectsByStatus[st], want)
		}
		sum += s.ProjectsByStatus[st]
	}
	if sum != 45 {
		t.Fatalf("buckets sum to %d, want 45", sum)
	}
	if got := Percent(counts[models.StatusInProgress], s.TotalProjects); got < 55.5 || got > 55.6 {
		t.Fatalf("in_progress percent = %v, want 25/45*100", got)
	}
	if Percent(3, 0) != 0 {
		t.Fatal("percent with zero denominator must be 0")
	}
}

func TestComputeAdminStatsRecentSubmissions(t *testing.T) {
	recent := testNow.AddDate(0, 0, -2)
	old := testNow.AddDate(0, 0, -10)
	projects := []models.Project{
		{ID: 1, Status: models.StatusSubmitted, SubmissionDate: &recent, Progress: 100},
		{ID: 2, Status: models.StatusSubmitted, SubmissionDate: &old, Progress: 100},
		{ID: 3, Status: models.StatusInProgress, Progress: 40},
	}
	s := ComputeAdminStats(projects, nil, testNow)
	if s.RecentSubmissions != 1 {
		t.Fatalf("recent submissions = %d, want 1", s.RecentSubmissions)
	}
	if s.AverageProgress != 80 {
		t.Fatalf("average progress = %v, want 80", s.AverageProgress)
	}
}

func TestComputeStudentStatsDeadline(t *testing.T) {
	due := testNow.AddDate(0, 0, 110)
	p := sampleProject(models.StatusInProgress)
	p.Progress = 65
	p.ExpectedCompletionDate = &due
	p.Objectives = []string{"a", "b", "c"}

	feedback := []models.FeedbackEntry{
		{ID: 1, ProjectID: p.ID, Read: true},
		{ID: 2, ProjectID: p.ID, Read: false},
		{ID: 3, ProjectID: 999, Read: false}, // other project, ignored
	}

	s := ComputeStudentStats(p, feedback, testNow)
	if s.ProjectProgress != 65 {
		t.Fatalf("progress = %d", s.ProjectProgress)
	}
	if s.FeedbackReceived != 2 || s.UnreadFeedback != 1 {
		t.Fatalf("feedback counts = %d/%d, want 2/1", s.FeedbackReceived, s.UnreadFeedback)
	}
	if s.PendingTasks != 3 {
		t.Fatalf("pending tasks = %d, want 3", s.PendingTasks)
	}
	if s.DaysUntilDeadline == nil || *s.DaysUntilDeadline != 110 {
		t.Fatalf("days until deadline = %v, want 110", s.DaysUntilDeadline)
	}
}

func TestComputeStudentStatsOverdueIsNegative(t *testing.T) {
	overdue := testNow.AddDate(0, 0, -5)
	p := sampleProject(models.StatusInProgress)
	p.ExpectedCompletionDate = &overdue
	s := ComputeStudentStats(p, nil, testNow)
	if s.DaysUntilDeadline == nil || *s.DaysUntilDeadline >= 0 {
		t.Fatalf("overdue must be negative, got %v", s.DaysUntilDeadline)
	}
}

func TestComputeSupervisorStats(t *testing.T) {
	sub := testNow.AddDate(0, 0, -1)
	projects := []models.Project{
		{ID: 1, SupervisorID: 20, StudentID: 10, Status: models.StatusSubmitted, SubmissionDate: &sub},
		{ID: 2, SupervisorID: 20, StudentID: 11, Status: models.StatusUnderReview},
		{ID: 3, SupervisorID: 20, StudentID: 12, Status: models.StatusInProgress},
		{ID: 4, SupervisorID: 99, StudentID: 13, Status: models.StatusSubmitted},
		{ID: 5, SupervisorID: 20, StudentID: 10, Status: models.StatusApproved},
	}
	done := time.Date(2025, 1, 9, 16, 0, 0, 0, time.UTC)
	evaluations := []models.Evaluation{
		{ID: 1, ProjectID: 2, EvaluatorID: 20, Status: models.EvaluationCompleted, EvaluatedAt: &done},
		{ID: 2, ProjectID: 5, EvaluatorID: 20, Status: models.EvaluationCompleted, EvaluatedAt: &done},
		{ID: 3, ProjectID: 4, EvaluatorID: 99, Status: models.EvaluationCompleted, EvaluatedAt: &done},
	}

	s := ComputeSupervisorStats(20, projects, evaluations, testNow)
	if s.TotalProjects != 4 {
		t.Fatalf("total projects = %d, want 4", s.TotalProjects)
	}
	// Project 1 awaits review; project 2 is under_review but already evaluated.
	if s.PendingReviews != 1 {
		t.Fatalf("pending reviews = %d, want 1", s.PendingReviews)
	}
	if s.CompletedEvaluations != 2 {
		t.Fatalf("completed evaluations = %d, want 2", s.CompletedEvaluations)
	}
	// Students 10, 11, 12 — distinct.
	if s.StudentsSupervised != 3 {
		t.Fatalf("students supervised = %d, want 3", s.StudentsSupervised)
	}
}

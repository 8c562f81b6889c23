package store

import (
	"context"
	"fmt"
	"time"

	"github.com/fyptrack/fyptrack/internal/models"
)

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }

// SeedDemo loads the demo fixture set: two students, two supervisors, one
// admin, two projects (one mid-flight, one submitted with feedback and a
// completed evaluation). Tokens are deterministic "demo-<role>-<id>"
// strings so local clients can authenticate without an identity service.
func SeedDemo(ctx context.Context, s Store) error {
	users := []models.User{
		{Name: "John Doe", Email: "student@example.com", Role: models.RoleStudent, Department: "Computer Science",
			MatricNumber: strptr("CSC/2020/001"), Level: strptr("400"), Phone: "+234 801 234 5678", IsActive: true},
		{Name: "Dr. Jane Smith", Email: "supervisor@example.com", Role: models.RoleSupervisor, Department: "Computer Science",
			Title: strptr("Senior Lecturer"), Specialization: strptr("Artificial Intelligence"), IsActive: true},
		{Name: "Admin User", Email: "admin@example.com", Role: models.RoleAdmin, Department: "Administration", IsActive: true},
		{Name: "Alice Johnson", Email: "alice@example.com", Role: models.RoleStudent, Department: "Computer Science",
			MatricNumber: strptr("CSC/2020/015"), Level: strptr("400"), IsActive: true},
		{Name: "Prof. Michael Brown", Email: "mbrown@example.com", Role: models.RoleSupervisor, Department: "Computer Science",
			Title: strptr("Professor"), Specialization: strptr("Software Engineering"), IsActive: true},
	}
	ids := make([]int64, len(users))
	for i := range users {
		id, err := s.CreateUser(ctx, &users[i])
		if err != nil {
			return fmt.Errorf("seed user %s: %w", users[i].Email, err)
		}
		ids[i] = id
		token := fmt.Sprintf("demo-%s-%d", users[i].Role, id)
		if err := s.IssueToken(ctx, id, token); err != nil {
			return fmt.Errorf("seed token for %d: %w", id, err)
		}
	}
	john, jane, alice, brown := ids[0], ids[1], ids[3], ids[4]

	start := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	due := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	submitted := time.Date(2025, 1, 8, 16, 45, 0, 0, time.UTC)

	p1 := models.Project{
		Title:       "E-Learning Platform for Nigerian Universities",
		Description: "A comprehensive web-based learning management system tailored for Nigerian educational institutions.",
		StudentID:   john, SupervisorID: jane,
		Department: "Computer Science", Status: models.StatusInProgress, Progress: 65,
		StartDate: start, ExpectedCompletionDate: &due,
		Objectives: []string{
			"Develop user-friendly interface for students and lecturers",
			"Implement secure authentication system",
			"Create course management module",
			"Build assignment submission and grading system",
		},
		Technologies: []string{"React", "Node.js", "MongoDB", "Express"},
		CreatedAt:    start, UpdatedAt: start,
	}
	p2 := models.Project{
		Title:       "Mobile Health Monitoring System",
		Description: "Android application for remote patient monitoring and health data tracking.",
		StudentID:   alice, SupervisorID: brown,
		Department: "Computer Science", Status: models.StatusSubmitted, Progress: 100,
		StartDate: start, SubmissionDate: &submitted, ExpectedCompletionDate: &due,
		Objectives: []string{
			"Design intuitive mobile interface",
			"Implement real-time health data tracking",
			"Develop emergency alert system",
		},
		Technologies: []string{"React Native", "Firebase", "TensorFlow Lite"},
		CreatedAt:    start, UpdatedAt: submitted,
	}
	p1ID, err := s.CreateProject(ctx, &p1)
	if err != nil {
		return err
	}
	p2ID, err := s.CreateProject(ctx, &p2)
	if err != nil {
		return err
	}

	feedback := []models.FeedbackEntry{
		{ProjectID: p1ID, SupervisorID: jane, Type: models.FeedbackGeneral,
			Subject: "Project Proposal Review",
			Message: "Your proposal is well-structured. Please expand the methodology section and include a detailed timeline.",
			Rating:  intptr(4), Read: true, CreatedAt: start.AddDate(0, 0, 19)},
		{ProjectID: p1ID, SupervisorID: jane, Type: models.FeedbackChapter,
			Subject: "Chapter 1 Feedback",
			Message: "Good introduction. Add more recent references and strengthen the justification for your approach.",
			Rating:  intptr(3), Read: true, CreatedAt: start.AddDate(0, 1, 24)},
		{ProjectID: p2ID, SupervisorID: brown, Type: models.FeedbackGeneral,
			Subject: "Final Submission Review",
			Message: "Excellent work. The project meets all requirements and is ready for evaluation.",
			Rating:  intptr(5), Read: false, CreatedAt: submitted.AddDate(0, 0, 1)},
	}
	for i := range feedback {
		if _, err := s.AddFeedback(ctx, &feedback[i]); err != nil {
			return err
		}
	}

	evaluatedAt := time.Date(2025, 1, 9, 16, 0, 0, 0, time.UTC)
	ev := models.Evaluation{
		ProjectID: p2ID, EvaluatorID: brown, EvaluatorRole: models.RoleSupervisor,
		Criteria: []models.Criterion{
			{Name: "Problem Definition", MaxScore: 10, Score: 9, Comment: "Clear and well-articulated problem statement"},
			{Name: "Literature Review", MaxScore: 10, Score: 8, Comment: "Comprehensive review with relevant sources"},
			{Name: "Methodology", MaxScore: 15, Score: 13, Comment: "Sound methodology with minor improvements needed"},
			{Name: "Implementation", MaxScore: 25, Score: 22, Comment: "Well-implemented with good code quality"},
			{Name: "Testing & Validation", MaxScore: 15, Score: 13, Comment: "Adequate testing coverage"},
			{Name: "Documentation", MaxScore: 15, Score: 14, Comment: "Excellent documentation"},
			{Name: "Presentation", MaxScore: 10, Score: 9, Comment: "Clear and professional presentation"},
		},
		TotalScore: 88, MaxTotalScore: 100, Grade: "A",
		GeneralComment: "Outstanding project that demonstrates strong technical skills.",
		Status:         models.EvaluationCompleted, EvaluatedAt: &evaluatedAt,
	}
	if _, err := s.CreateEvaluation(ctx, &ev); err != nil {
		return err
	}
	return nil
}

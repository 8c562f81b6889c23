package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fyptrack/fyptrack/internal/metrics"
	"github.com/fyptrack/fyptrack/internal/models"
	"github.com/fyptrack/fyptrack/internal/observability"
	"github.com/fyptrack/fyptrack/internal/store"
)

// Deadlines watches expected completion dates and nudges students whose
// in-flight projects are inside the reminder horizon or already overdue.
type Deadlines struct {
	Store        store.Store
	Log          *zap.Logger
	ReminderDays int
	Now          func() time.Time
}

// Run scans once. Each student gets at most one reminder per day; the
// dedupe key is an existing reminder notification created today.
func (d *Deadlines) Run(ctx context.Context) error {
	now := d.Now()
	horizon := now.AddDate(0, 0, d.ReminderDays)

	projects, err := listAll(ctx, d.Store)
	if err != nil {
		return err
	}
	for _, p := range projects {
		if p.Status != models.StatusDraft && p.Status != models.StatusInProgress {
			continue
		}
		if p.ExpectedCompletionDate == nil || p.ExpectedCompletionDate.After(horizon) {
			continue
		}
		already, err := d.remindedToday(ctx, p, now)
		if err != nil {
			observability.CaptureErr(err)
			continue
		}
		if already {
			continue
		}

		days := int(p.ExpectedCompletionDate.Sub(now).Hours() / 24)
		msg := fmt.Sprintf("%s is due in %d days", p.Title, days)
		if days < 0 {
			msg = fmt.Sprintf("%s is %d days overdue", p.Title, -days)
		}
		n := &models.Notification{
			UserID:    p.StudentID,
			Type:      models.NotifyReminder,
			Title:     "Deadline Reminder",
			Message:   msg,
			ActionURL: fmt.Sprintf("/student/projects/%d", p.ID),
			CreatedAt: now,
		}
		if _, err := d.Store.AddNotification(ctx, n); err != nil {
			observability.CaptureErr(err)
			continue
		}
		d.Log.Info("deadline reminder sent",
			zap.Int64("project_id", p.ID), zap.Int64("student_id", p.StudentID), zap.Int("days", days))
	}
	return nil
}

func (d *Deadlines) remindedToday(ctx context.Context, p models.Project, now time.Time) (bool, error) {
	ns, err := d.Store.ListNotifications(ctx, p.StudentID)
	if err != nil {
		return false, err
	}
	y, m, day := now.Date()
	for _, n := range ns {
		if n.Type != models.NotifyReminder {
			continue
		}
		ny, nm, nd := n.CreatedAt.Date()
		if ny == y && nm == m && nd == day {
			return true, nil
		}
	}
	return false, nil
}

// RefreshStatusGauges recomputes the projects-by-status gauge from the
// unpaged totals.
func RefreshStatusGauges(st store.Store) Job {
	return func(ctx context.Context) error {
		for _, status := range models.AllStatuses {
			s := status
			_, total, err := st.ListProjects(ctx, store.ProjectFilter{Status: &s, Limit: 1})
			if err != nil {
				return err
			}
			metrics.ProjectsByStatus.WithLabelValues(string(status)).Set(float64(total))
		}
		return nil
	}
}

func listAll(ctx context.Context, st store.Store) ([]models.Project, error) {
	f := store.ProjectFilter{Page: 1, Limit: 500}
	var all []models.Project
	for {
		page, total, err := st.ListProjects(ctx, f)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(all) >= total || len(page) == 0 {
			return all, nil
		}
		f.Page++
	}
}

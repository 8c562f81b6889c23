package jobs

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/fyptrack/fyptrack/internal/models"
	"github.com/fyptrack/fyptrack/internal/store"
)

func TestDeadlineRemindersOncePerDay(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	if err := store.SeedDemo(ctx, st); err != nil {
		t.Fatal(err)
	}

	// Fixture project 6 is in progress and due 2025-04-30; two weeks out
	// puts it inside the horizon.
	now := time.Date(2025, 4, 20, 9, 0, 0, 0, time.UTC)
	d := &Deadlines{Store: st, Log: zap.NewNop(), ReminderDays: 14, Now: func() time.Time { return now }}

	if err := d.Run(ctx); err != nil {
		t.Fatal(err)
	}
	ns, err := st.ListNotifications(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	reminders := 0
	for _, n := range ns {
		if n.Type == models.NotifyReminder {
			reminders++
		}
	}
	if reminders != 1 {
		t.Fatalf("reminders after first run = %d", reminders)
	}

	// Same day again: no duplicate.
	if err := d.Run(ctx); err != nil {
		t.Fatal(err)
	}
	ns, _ = st.ListNotifications(ctx, 1)
	reminders = 0
	for _, n := range ns {
		if n.Type == models.NotifyReminder {
			reminders++
		}
	}
	if reminders != 1 {
		t.Fatalf("reminders after second run = %d", reminders)
	}

	// Next day: a fresh reminder goes out.
	now = now.AddDate(0, 0, 1)
	if err := d.Run(ctx); err != nil {
		t.Fatal(err)
	}
	ns, _ = st.ListNotifications(ctx, 1)
	reminders = 0
	for _, n := range ns {
		if n.Type == models.NotifyReminder {
			reminders++
		}
	}
	if reminders != 2 {
		t.Fatalf("reminders after next day = %d", reminders)
	}
}

func TestDeadlineRemindersSkipsFarDeadlines(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	if err := store.SeedDemo(ctx, st); err != nil {
		t.Fatal(err)
	}

	// Months before the deadline nothing fires; project 7 is submitted so
	// it never gets a reminder either.
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	d := &Deadlines{Store: st, Log: zap.NewNop(), ReminderDays: 14, Now: func() time.Time { return now }}
	if err := d.Run(ctx); err != nil {
		t.Fatal(err)
	}
	for _, uid := range []int64{1, 4} {
		ns, err := st.ListNotifications(ctx, uid)
		if err != nil {
			t.Fatal(err)
		}
		for _, n := range ns {
			if n.Type == models.NotifyReminder {
				t.Fatalf("unexpected reminder for user %d", uid)
			}
		}
	}
}

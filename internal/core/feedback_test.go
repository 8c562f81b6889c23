package core

import (
	"errors"
	"testing"

	"github.com/fyptrack/fyptrack/internal/models"
)

func TestNewFeedbackEntryAuthorship(t *testing.T) {
	p := sampleProject(models.StatusInProgress)

	entry, err := NewFeedbackEntry(p, supervisor(), models.FeedbackChapter, "Chapter 1", "Expand the literature review.", nil, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Read {
		t.Fatal("new entry must start unread")
	}
	if !entry.CreatedAt.Equal(testNow) {
		t.Fatalf("createdAt = %v, want %v", entry.CreatedAt, testNow)
	}

	if _, err := NewFeedbackEntry(p, student(), models.FeedbackGeneral, "s", "m", nil, testNow); !errors.Is(err, ErrForbidden) {
		t.Fatalf("student author: want ErrForbidden, got %v", err)
	}
	other := models.User{ID: 77, Role: models.RoleSupervisor}
	if _, err := NewFeedbackEntry(p, other, models.FeedbackGeneral, "s", "m", nil, testNow); !errors.Is(err, ErrForbidden) {
		t.Fatalf("unassigned supervisor: want ErrForbidden, got %v", err)
	}
	if _, err := NewFeedbackEntry(p, admin(), models.FeedbackGeneral, "s", "m", nil, testNow); err != nil {
		t.Fatalf("admin author: %v", err)
	}
}

func TestNewFeedbackEntryValidation(t *testing.T) {
	p := sampleProject(models.StatusInProgress)

	if _, err := NewFeedbackEntry(p, supervisor(), "rant", "s", "m", nil, testNow); err == nil {
		t.Fatal("unknown type accepted")
	}
	if _, err := NewFeedbackEntry(p, supervisor(), models.FeedbackGeneral, "  ", "m", nil, testNow); err == nil {
		t.Fatal("blank subject accepted")
	}
	bad := 6
	if _, err := NewFeedbackEntry(p, supervisor(), models.FeedbackGeneral, "s", "m", &bad, testNow); err == nil {
		t.Fatal("rating 6 accepted")
	}
	ok := 5
	if _, err := NewFeedbackEntry(p, supervisor(), models.FeedbackPraise, "s", "m", &ok, testNow); err != nil {
		t.Fatalf("rating 5 rejected: %v", err)
	}
}

func TestMarkFeedbackReadIdempotent(t *testing.T) {
	p := sampleProject(models.StatusInProgress)
	entry := &models.FeedbackEntry{ID: 1, ProjectID: p.ID, SupervisorID: 20, CreatedAt: testNow}

	if err := MarkFeedbackRead(entry, p, student()); err != nil {
		t.Fatal(err)
	}
	if !entry.Read {
		t.Fatal("entry not marked read")
	}
	// Second call: same final state, no error.
	if err := MarkFeedbackRead(entry, p, student()); err != nil {
		t.Fatalf("second markRead errored: %v", err)
	}
	if !entry.Read {
		t.Fatal("entry flipped back")
	}

	if err := MarkFeedbackRead(entry, p, supervisor()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("supervisor markRead: want ErrForbidden, got %v", err)
	}
	if err := MarkFeedbackRead(entry, p, admin()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("admin markRead: want ErrForbidden, got %v", err)
	}
}

func TestSortFeedbackDescending(t *testing.T) {
	entries := []models.FeedbackEntry{
		{ID: 1, CreatedAt: testNow.AddDate(0, 0, -3)},
		{ID: 2, CreatedAt: testNow},
		{ID: 3, CreatedAt: testNow.AddDate(0, 0, -1)},
	}
	SortFeedback(entries)
	want := []int64{2, 3, 1}
	for i, id := range want {
		if entries[i].ID != id {
			t.Fatalf("position %d: got id %d, want %d", i, entries[i].ID, id)
		}
	}
}

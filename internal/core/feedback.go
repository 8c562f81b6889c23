package core

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fyptrack/fyptrack/internal/models"
)

// NewFeedbackEntry validates and builds an unread ledger entry. Only the
// assigned supervisor or an admin may author feedback. Entries are
// append-only; nothing edits them later except the read flag.
func NewFeedbackEntry(
	p *models.Project,
	author models.User,
	ftype models.FeedbackType,
	subject, message string,
	rating *int,
	now time.Time,
) (*models.FeedbackEntry, error) {
	if p == nil {
		return nil, ErrNotFound
	}
	if err := Authorize(author, OpCreateFeedback, p); err != nil {
		return nil, err
	}
	if _, ok := models.ParseFeedbackType(string(ftype)); !ok {
		return nil, fmt.Errorf("unknown feedback type %q", ftype)
	}
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("feedback subject and message are required")
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, fmt.Errorf("rating %d outside 1..5", *rating)
	}
	return &models.FeedbackEntry{
		ProjectID:    p.ID,
		SupervisorID: author.ID,
		Type:         ftype,
		Subject:      subject,
		Message:      message,
		Rating:       rating,
		Read:         false,
		CreatedAt:    now,
	}, nil
}

// MarkFeedbackRead flips the read flag for the owning student. Idempotent:
// re-reading an already-read entry is a no-op, not an error.
func MarkFeedbackRead(entry *models.FeedbackEntry, p *models.Project, actor models.User) error {
	if entry == nil || p == nil {
		return ErrNotFound
	}
	if err := Authorize(actor, OpMarkFeedbackRead, p); err != nil {
		return err
	}
	entry.Read = true
	return nil
}

// SortFeedback orders entries most recent first. Listing order is a
// contract, not an accident of storage.
func SortFeedback(entries []models.FeedbackEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}

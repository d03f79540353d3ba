package domain

import "fmt"

// Status is the booking lifecycle vocabulary. The wizard only ever
// produces StatusPending; the rest are driven by staff and customers
// after the fact.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses in display order, for admin dropdowns.
var Statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// ParseStatus rejects anything outside the closed vocabulary.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

// CanModify reports whether the customer may still change or cancel a
// booking in this status.
func (s Status) CanModify() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusConfirmed:
		return "Confirmed"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Package booking holds the four-step booking wizard: a strictly linear
// state machine that accumulates a draft across steps and gates each
// forward transition on that step's validation.
package booking

import (
	"sync"
	"time"
)

type Step int

const (
	StepService Step = iota + 1
	StepSchedule
	StepDetails
	StepConfirm
)

func (s Step) String() string {
	switch s {
	case StepService:
		return "service"
	case StepSchedule:
		return "schedule"
	case StepDetails:
		return "details"
	case StepConfirm:
		return "confirm"
	}
	return "unknown"
}

// DateLayout is the wire format for scheduled dates.
const DateLayout = "2006-01-02"

// TimeSlots are the nine bookable arrival windows.
var TimeSlots = []string{
	"8:00 AM",
	"9:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"1:00 PM",
	"2:00 PM",
	"3:00 PM",
	"4:00 PM",
}

func ValidSlot(s string) bool {
	for _, t := range TimeSlots {
		if t == s {
			return true
		}
	}
	return false
}

// Details are the step-three fields. AddressLine2 and SpecialNotes are
// optional; everything else is required before the wizard advances.
type Details struct {
	Name         string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	ZipCode      string
	PropertySize string
	SpecialNotes string
}

// Draft is the in-memory booking being assembled. It is never persisted;
// submission composes a create request from it and the store record takes
// over from there.
type Draft struct {
	ServiceSlug string
	Date        string // YYYY-MM-DD
	TimeSlot    string
	Details     Details
}

// Wizard walks a single draft through the steps. One instance per
// browser session. The same session can issue overlapping requests (a
// double-click, a second tab), so callers must hold the embedded lock
// across any read-modify-write of Step or Draft.
type Wizard struct {
	sync.Mutex

	Step  Step
	Draft Draft

	now func() time.Time
}

func NewWizard() *Wizard {
	return &Wizard{Step: StepService, now: time.Now}
}

// CanProceed is the current step's validation predicate.
func (w *Wizard) CanProceed() bool {
	switch w.Step {
	case StepService:
		return w.Draft.ServiceSlug != ""
	case StepSchedule:
		return w.scheduleValid()
	case StepDetails:
		return w.detailsValid()
	case StepConfirm:
		return true
	}
	return false
}

func (w *Wizard) scheduleValid() bool {
	if w.Draft.TimeSlot == "" || !ValidSlot(w.Draft.TimeSlot) {
		return false
	}
	d, err := time.Parse(DateLayout, w.Draft.Date)
	if err != nil {
		return false
	}
	// Same-day and past dates are rejected at this gate: the earliest
	// bookable day is tomorrow.
	now := w.now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return !d.Before(tomorrow)
}

func (w *Wizard) detailsValid() bool {
	det := w.Draft.Details
	return det.Name != "" &&
		det.Email != "" &&
		det.Phone != "" &&
		det.AddressLine1 != "" &&
		det.City != "" &&
		det.ZipCode != "" &&
		det.PropertySize != ""
}

// Next advances one step if the current step validates. Advancing past
// StepConfirm is the submission side effect and is not the wizard's job.
func (w *Wizard) Next() bool {
	if w.Step >= StepConfirm || !w.CanProceed() {
		return false
	}
	w.Step++
	return true
}

// Back retreats one step unconditionally. The draft keeps every field it
// has accumulated.
func (w *Wizard) Back() {
	if w.Step > StepService {
		w.Step--
	}
}

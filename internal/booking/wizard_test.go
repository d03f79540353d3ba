package booking

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixed clock: 2026-03-10 is "today" for every test below.
func testWizard() *Wizard {
	w := NewWizard()
	w.now = func() time.Time {
		return time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	}
	return w
}

func fillDetails(w *Wizard) {
	w.Draft.Details = Details{
		Name:         "Dana Reeves",
		Email:        "dana@example.com",
		Phone:        "555-0142",
		AddressLine1: "12 Elm St",
		City:         "Baltimore",
		ZipCode:      "21201",
		PropertySize: "2bed",
	}
}

func TestNextRequiresServiceSelection(t *testing.T) {
	w := testWizard()
	assert.False(t, w.Next(), "empty service must not advance")

	w.Draft.ServiceSlug = "deep-cleaning"
	assert.True(t, w.Next())
	assert.Equal(t, StepSchedule, w.Step)
}

func TestScheduleGate(t *testing.T) {
	w := testWizard()
	w.Draft.ServiceSlug = "deep-cleaning"
	require.True(t, w.Next())

	// neither field set
	assert.False(t, w.Next())

	// date alone is not enough
	w.Draft.Date = "2026-03-12"
	assert.False(t, w.Next())

	// slot must be one of the nine fixed strings
	w.Draft.TimeSlot = "7:30 AM"
	assert.False(t, w.Next())

	// same-day and past dates rejected
	w.Draft.TimeSlot = "10:00 AM"
	w.Draft.Date = "2026-03-10"
	assert.False(t, w.Next(), "same-day booking must be rejected")
	w.Draft.Date = "2026-03-01"
	assert.False(t, w.Next(), "past booking must be rejected")

	// tomorrow is the earliest bookable day
	w.Draft.Date = "2026-03-11"
	assert.True(t, w.Next())
	assert.Equal(t, StepDetails, w.Step)
}

func TestDetailsGate(t *testing.T) {
	w := testWizard()
	w.Step = StepDetails
	w.Draft.Details = Details{Name: "Dana Reeves", Email: "dana@example.com"}
	assert.False(t, w.Next(), "phone, address, city, zip and size still missing")

	fillDetails(w)
	assert.True(t, w.Next())
	assert.Equal(t, StepConfirm, w.Step)

	// optional fields are never required
	assert.Empty(t, w.Draft.Details.AddressLine2)
	assert.Empty(t, w.Draft.Details.SpecialNotes)
}

func TestNextNeverSkipsConfirm(t *testing.T) {
	w := testWizard()
	w.Step = StepConfirm
	assert.True(t, w.CanProceed(), "confirmation is always passable")
	assert.False(t, w.Next(), "submission is a side effect, not a step transition")
	assert.Equal(t, StepConfirm, w.Step)
}

func TestBackRetainsDraft(t *testing.T) {
	w := testWizard()
	w.Draft.ServiceSlug = "residential-cleaning"
	require.True(t, w.Next())
	w.Draft.Date = "2026-03-14"
	w.Draft.TimeSlot = "9:00 AM"
	require.True(t, w.Next())
	fillDetails(w)
	w.Draft.Details.SpecialNotes = "Keys under the mat"
	require.True(t, w.Next())

	before := w.Draft

	w.Back()
	w.Back()
	w.Back()
	assert.Equal(t, StepService, w.Step)
	w.Back() // no-op at the first step
	assert.Equal(t, StepService, w.Step)

	require.True(t, w.Next())
	require.True(t, w.Next())
	require.True(t, w.Next())
	assert.Equal(t, StepConfirm, w.Step)
	assert.Equal(t, before, w.Draft, "full back-and-forth must not lose fields")
}

func TestStoreKeepsOneWizardPerSession(t *testing.T) {
	s := NewStore()
	a := s.Get("sid-a")
	a.Draft.ServiceSlug = "office-cleaning"

	assert.Same(t, a, s.Get("sid-a"))
	assert.NotSame(t, a, s.Get("sid-b"))

	s.Drop("sid-a")
	fresh := s.Get("sid-a")
	assert.Equal(t, StepService, fresh.Step)
	assert.Empty(t, fresh.Draft.ServiceSlug)
}

// Overlapping requests on one session (double-click, second tab) hit the
// same wizard; run with -race.
func TestWizardConcurrentSameSession(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				w := s.Get("sid-shared")
				w.Lock()
				w.Draft.ServiceSlug = "office-cleaning"
				w.Next()
				w.Back()
				w.Unlock()
			}
		}()
	}
	wg.Wait()

	w := s.Get("sid-shared")
	w.Lock()
	defer w.Unlock()
	assert.Equal(t, StepService, w.Step, "each locked next/back pair must net out")
	assert.Equal(t, "office-cleaning", w.Draft.ServiceSlug)
}

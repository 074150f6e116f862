package cron

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mediconnect/clinic-scheduler/models"
)

// memStore mirrors the GormStore predicates over an in-memory slice.
type memStore struct {
	mu           sync.Mutex
	appointments []models.Appointment
}

func (s *memStore) PendingReminders(start, end time.Time) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.appointments {
		if a.Status != models.StatusConfirmed || a.ReminderSent {
			continue
		}
		if a.ScheduledAt.After(start) && !a.ScheduledAt.After(end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memStore) DueReminders(by time.Time) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.appointments {
		if a.Status == models.StatusConfirmed && !a.ReminderSent && !a.ScheduledAt.After(by) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memStore) ClaimReminderSent(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			if s.appointments[i].ReminderSent {
				return false, nil
			}
			s.appointments[i].ReminderSent = true
			return true, nil
		}
	}
	return false, errors.New("appointment not found")
}

func (s *memStore) get(id string) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appointments {
		if a.ID == id {
			return a
		}
	}
	return models.Appointment{}
}

// memDispatcher records sends and fails for chosen recipients.
type memDispatcher struct {
	mu    sync.Mutex
	sends map[string]int
	fail  map[string]bool
}

func newMemDispatcher() *memDispatcher {
	return &memDispatcher{sends: map[string]int{}, fail: map[string]bool{}}
}

func (d *memDispatcher) Send(to, subject, body string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail[to] {
		return errors.New("smtp unreachable")
	}
	d.sends[to]++
	return nil
}

func (d *memDispatcher) sent(to string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sends[to]
}

func appointmentAt(id string, scheduled time.Time) models.Appointment {
	return models.Appointment{
		ID:          id,
		PatientName: "Pat " + id,
		Email:       id + "@example.com",
		Date:        scheduled.Format("2006-01-02"),
		TimeSlot:    fmt.Sprintf("%02d:00 - %02d:00", scheduled.Hour(), scheduled.Hour()+1),
		ScheduledAt: scheduled,
		Status:      models.StatusConfirmed,
	}
}

func newTestSweeper(store Store, d *memDispatcher, catchUp bool, at time.Time) *Sweeper {
	s := NewSweeper(store, d, 3*time.Hour, 5*time.Minute, catchUp, nil)
	s.now = func() time.Time { return at }
	return s
}

func TestRunOnce_SendsAndClaims(t *testing.T) {
	scheduled := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	store := &memStore{appointments: []models.Appointment{appointmentAt("a1", scheduled)}}
	dispatcher := newMemDispatcher()
	sweeper := newTestSweeper(store, dispatcher, false, time.Date(2025, 3, 10, 6, 58, 0, 0, time.UTC))

	res := sweeper.RunOnce()
	if res.Matched != 1 || res.Sent != 1 || res.Failed != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if dispatcher.sent("a1@example.com") != 1 {
		t.Fatalf("expected exactly one send, got %d", dispatcher.sent("a1@example.com"))
	}
	if !store.get("a1").ReminderSent {
		t.Fatalf("reminder_sent not set after successful dispatch")
	}
}

func TestRunOnce_SecondRunIsIdempotent(t *testing.T) {
	scheduled := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	store := &memStore{appointments: []models.Appointment{appointmentAt("a1", scheduled)}}
	dispatcher := newMemDispatcher()
	sweeper := newTestSweeper(store, dispatcher, false, time.Date(2025, 3, 10, 6, 58, 0, 0, time.UTC))

	sweeper.RunOnce()
	res := sweeper.RunOnce()
	if res.Matched != 0 {
		t.Fatalf("re-run over the same window matched %d, want 0", res.Matched)
	}
	if dispatcher.sent("a1@example.com") != 1 {
		t.Fatalf("expected exactly one send across both runs, got %d", dispatcher.sent("a1@example.com"))
	}
}

func TestRunOnce_WindowBoundaries(t *testing.T) {
	scheduled := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	store := &memStore{appointments: []models.Appointment{appointmentAt("a1", scheduled)}}
	dispatcher := newMemDispatcher()

	// 07:00 sweep targets (10:00, 10:05]; the 10:00 appointment is out.
	late := newTestSweeper(store, dispatcher, false, time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC))
	if res := late.RunOnce(); res.Matched != 0 {
		t.Fatalf("07:00 sweep should not match, got %+v", res)
	}

	// 06:58 sweep targets (09:58, 10:03] and owns it.
	onTime := newTestSweeper(store, dispatcher, false, time.Date(2025, 3, 10, 6, 58, 0, 0, time.UTC))
	if res := onTime.RunOnce(); res.Sent != 1 {
		t.Fatalf("06:58 sweep should dispatch once, got %+v", res)
	}
}

func TestRunOnce_PartialFailureIsolation(t *testing.T) {
	base := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	store := &memStore{appointments: []models.Appointment{
		appointmentAt("a1", base),
		appointmentAt("a2", base.Add(time.Minute)),
		appointmentAt("a3", base.Add(2*time.Minute)),
	}}
	dispatcher := newMemDispatcher()
	dispatcher.fail["a2@example.com"] = true
	sweeper := newTestSweeper(store, dispatcher, false, time.Date(2025, 3, 10, 6, 58, 0, 0, time.UTC))

	res := sweeper.RunOnce()
	if res.Matched != 3 || res.Sent != 2 || res.Failed != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if !store.get("a1").ReminderSent || !store.get("a3").ReminderSent {
		t.Fatalf("successful dispatches must be claimed")
	}
	if store.get("a2").ReminderSent {
		t.Fatalf("failed dispatch must leave reminder_sent false")
	}
}

func TestRunOnce_EmptyWindowIsSilent(t *testing.T) {
	store := &memStore{}
	dispatcher := newMemDispatcher()
	sweeper := newTestSweeper(store, dispatcher, false, time.Now())

	res := sweeper.RunOnce()
	if res.Matched != 0 || res.Sent != 0 || res.Failed != 0 {
		t.Fatalf("empty window should be a no-op, got %+v", res)
	}
}

func TestRunOnce_LostClaimIsSkipped(t *testing.T) {
	scheduled := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	store := &claimLostStore{memStore{appointments: []models.Appointment{appointmentAt("a1", scheduled)}}}
	dispatcher := newMemDispatcher()
	sweeper := newTestSweeper(store, dispatcher, false, time.Date(2025, 3, 10, 6, 58, 0, 0, time.UTC))

	res := sweeper.RunOnce()
	if res.Skipped != 1 || res.Sent != 0 {
		t.Fatalf("lost claim should count as skipped, got %+v", res)
	}
}

// claimLostStore simulates a racing sweep that claims the row first.
type claimLostStore struct {
	memStore
}

func (s *claimLostStore) ClaimReminderSent(id string) (bool, error) {
	s.memStore.ClaimReminderSent(id)
	return false, nil
}

func TestRunOnce_CatchUpModePicksUpMissedAppointments(t *testing.T) {
	// Scheduled 09:00, sweep at 06:58 with lead 3h: outside the fixed
	// window (target (09:58, 10:03]) but already inside the lead horizon.
	scheduled := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	at := time.Date(2025, 3, 10, 6, 58, 0, 0, time.UTC)

	store := &memStore{appointments: []models.Appointment{appointmentAt("a1", scheduled)}}
	dispatcher := newMemDispatcher()

	fixed := newTestSweeper(store, dispatcher, false, at)
	if res := fixed.RunOnce(); res.Matched != 0 {
		t.Fatalf("fixed-window sweep should miss it, got %+v", res)
	}

	catchUp := newTestSweeper(store, dispatcher, true, at)
	if res := catchUp.RunOnce(); res.Sent != 1 {
		t.Fatalf("catch-up sweep should dispatch, got %+v", res)
	}
}

// deniedLock always reports the lease as held elsewhere.
type deniedLock struct{}

func (deniedLock) TryLock(ttl time.Duration) (bool, error) { return false, nil }
func (deniedLock) Unlock() error                           { return nil }

func TestRunOnce_SkipsTickWhenLeaseHeld(t *testing.T) {
	scheduled := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	store := &memStore{appointments: []models.Appointment{appointmentAt("a1", scheduled)}}
	dispatcher := newMemDispatcher()

	sweeper := NewSweeper(store, dispatcher, 3*time.Hour, 5*time.Minute, false, deniedLock{})
	sweeper.now = func() time.Time { return time.Date(2025, 3, 10, 6, 58, 0, 0, time.UTC) }

	res := sweeper.RunOnce()
	if res.Matched != 0 || dispatcher.sent("a1@example.com") != 0 {
		t.Fatalf("sweep must skip when the lease is held, got %+v", res)
	}
}

package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mediconnect/clinic-scheduler/models"
	"github.com/mediconnect/clinic-scheduler/notifier"
	"github.com/mediconnect/clinic-scheduler/scheduler"
)

// Store is the persistence the sweeper needs: find unsent reminders and
// claim them. ClaimReminderSent must be conditional (flip only if still
// false) so a racing second sweep is harmless.
type Store interface {
	PendingReminders(start, end time.Time) ([]models.Appointment, error)
	DueReminders(by time.Time) ([]models.Appointment, error)
	ClaimReminderSent(id string) (bool, error)
}

// Locker serializes sweeps across server instances. A nil Locker means
// single-instance deployment; in-process overlap is already prevented by
// cron.SkipIfStillRunning.
type Locker interface {
	TryLock(ttl time.Duration) (bool, error)
	Unlock() error
}

// SweepResult summarizes one tick.
type SweepResult struct {
	Matched int
	Sent    int
	Failed  int
	Skipped int
}

// Sweeper finds appointments entering the reminder lead window and sends
// each exactly one reminder attempt per tick.
type Sweeper struct {
	store      Store
	dispatcher notifier.Dispatcher
	lead       time.Duration
	tick       time.Duration
	catchUp    bool
	lock       Locker

	now func() time.Time
}

func NewSweeper(store Store, dispatcher notifier.Dispatcher, lead, tick time.Duration, catchUp bool, lock Locker) *Sweeper {
	return &Sweeper{
		store:      store,
		dispatcher: dispatcher,
		lead:       lead,
		tick:       tick,
		catchUp:    catchUp,
		lock:       lock,
		now:        time.Now,
	}
}

// Start schedules the sweep at the configured tick interval and returns the
// running scheduler. SkipIfStillRunning drops a tick that fires while the
// previous one is still in flight.
func (s *Sweeper) Start() *cron.Cron {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc("@every "+s.tick.String(), func() { s.RunOnce() })
	if err != nil {
		log.Fatalf("Failed to add reminder sweep job: %v", err)
	}
	c.Start()
	log.Println("Reminder sweep scheduled every", s.tick)
	return c
}

// RunOnce executes a single sweep tick. Exposed for the manual trigger
// endpoint and for tests. A failure on one appointment never aborts the
// rest of the tick.
func (s *Sweeper) RunOnce() SweepResult {
	var res SweepResult

	if s.lock != nil {
		ok, err := s.lock.TryLock(s.tick)
		if err != nil {
			log.Printf("Sweep lock error, skipping tick: %v", err)
			return res
		}
		if !ok {
			return res
		}
		defer s.lock.Unlock()
	}

	now := s.now()
	var appointments []models.Appointment
	var err error
	if s.catchUp {
		appointments, err = s.store.DueReminders(now.Add(s.lead))
	} else {
		start, end := scheduler.SweepWindow(now, s.lead, s.tick)
		appointments, err = s.store.PendingReminders(start, end)
	}
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return res
	}
	res.Matched = len(appointments)

	for _, appt := range appointments {
		body := notifier.ReminderBody(appt.PatientName, appt.Date, appt.TimeSlot)
		if err := s.dispatcher.Send(appt.Email, notifier.SubjectReminder, body); err != nil {
			log.Printf("Failed to send reminder for appointment %s: %v", appt.ID, err)
			res.Failed++
			continue
		}

		claimed, err := s.store.ClaimReminderSent(appt.ID)
		if err != nil {
			log.Printf("Failed to mark reminder sent for appointment %s: %v", appt.ID, err)
			res.Failed++
			continue
		}
		if !claimed {
			// Another sweep got here first; the extra send already
			// happened, but the record stays consistent.
			res.Skipped++
			continue
		}
		res.Sent++
		log.Printf("Sent reminder for appointment %s to %s", appt.ID, appt.Email)
	}

	return res
}

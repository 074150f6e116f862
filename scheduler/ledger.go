package scheduler

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mediconnect/clinic-scheduler/models"
)

// Ledger answers capacity questions for (date, slot) pairs and provides the
// race-safe reservation primitive. Serialization happens in Postgres, not in
// process memory, so multiple server instances stay correct.
type Ledger struct {
	db       *gorm.DB
	window   Window
	capacity int
}

func NewLedger(db *gorm.DB, window Window, capacity int) *Ledger {
	return &Ledger{db: db, window: window, capacity: capacity}
}

func (l *Ledger) Window() Window { return l.window }

func (l *Ledger) Capacity() int { return l.capacity }

type SlotAvailability struct {
	Slot   string `json:"slot"`
	Booked int64  `json:"booked"`
	IsFull bool   `json:"is_full"`
}

// Availability returns the booked count for every slot of the operating
// window on the given date. A full slot is reported, not an error.
func (l *Ledger) Availability(date string) ([]SlotAvailability, error) {
	type row struct {
		TimeSlot string
		N        int64
	}
	var rows []row
	err := l.db.Model(&models.Appointment{}).
		Select("time_slot, count(*) as n").
		Where("date = ?", date).
		Group("time_slot").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count appointments for %s: %w", date, err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.TimeSlot] = r.N
	}

	out := make([]SlotAvailability, 0, l.window.CloseHour-l.window.OpenHour)
	for _, slot := range l.window.Slots() {
		n := counts[slot]
		out = append(out, SlotAvailability{
			Slot:   slot,
			Booked: n,
			IsFull: n >= int64(l.capacity),
		})
	}
	return out, nil
}

// Count returns the number of booked appointments for one (date, slot) key.
// All non-deleted rows count against capacity regardless of status.
func (l *Ledger) Count(date, slot string) (int64, error) {
	var n int64
	err := l.db.Model(&models.Appointment{}).
		Where("date = ? AND time_slot = ?", date, slot).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count appointments for %s %s: %w", date, slot, err)
	}
	return n, nil
}

// Reserve atomically re-checks capacity and inserts the appointment. An
// advisory lock on the (date, slot) key serializes concurrent bookings so
// two callers cannot both observe count = C-1 and both insert.
func (l *Ledger) Reserve(appt *models.Appointment) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		key := appt.Date + "|" + appt.TimeSlot
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
			return fmt.Errorf("lock slot %s: %w", key, err)
		}

		var count int64
		err := tx.Model(&models.Appointment{}).
			Where("date = ? AND time_slot = ?", appt.Date, appt.TimeSlot).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("recheck slot %s: %w", key, err)
		}
		if count >= int64(l.capacity) {
			return models.ErrSlotFull
		}

		return tx.Create(appt).Error
	})
}

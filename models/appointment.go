package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment is a booked clinic visit. Rows are never deleted; terminal
// statuses keep the history for reporting.
type Appointment struct {
	ID          string            `json:"id" gorm:"primaryKey"`
	PatientID   string            `json:"patient_id"`
	PatientName string            `json:"patient_name"`
	Email       string            `json:"email"`
	Date        string            `json:"date"`      // "2006-01-02"
	TimeSlot    string            `json:"time_slot"` // e.g. "10:00 - 11:00"
	ScheduledAt time.Time         `json:"scheduled_at" gorm:"index"`
	Status      AppointmentStatus `json:"status"`
	Symptoms    string            `json:"symptoms"`
	Diagnosis   string            `json:"diagnosis"`
	// ReminderSent flips false -> true exactly once, never back.
	ReminderSent bool      `json:"reminder_sent" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = StatusConfirmed
	}
	return nil
}

// IsTerminal reports whether no further status transitions are allowed.
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the known lifecycle statuses.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// ValidateTransition checks the lifecycle table: confirmed may move to
// completed, cancelled or no_show; terminal states have no exits.
func ValidateTransition(current, next AppointmentStatus) error {
	if !ValidStatus(next) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, next)
	}
	if current.IsTerminal() {
		return fmt.Errorf("%w: no transitions allowed from %s", ErrInvalidTransition, current)
	}
	if current != StatusConfirmed || next == StatusConfirmed {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, current, next)
	}
	return nil
}

// UpdateStatus applies a lifecycle transition and persists it. Identity
// fields and ReminderSent are left untouched. On an invalid transition the
// appointment is unchanged and nothing is written.
func (a *Appointment) UpdateStatus(tx *gorm.DB, next AppointmentStatus) error {
	if err := ValidateTransition(a.Status, next); err != nil {
		return err
	}
	if err := tx.Model(a).Update("status", next).Error; err != nil {
		return err
	}
	a.Status = next
	return nil
}

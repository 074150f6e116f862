package cron

import (
	"time"

	"gorm.io/gorm"

	"github.com/mediconnect/clinic-scheduler/models"
)

// GormStore backs the sweeper with the shared Postgres connection.
type GormStore struct {
	DB *gorm.DB
}

// PendingReminders matches appointments inside (start, end]. The exclusive
// start keeps consecutive windows from both owning an instant that lands
// exactly on the boundary.
func (s GormStore) PendingReminders(start, end time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.DB.
		Where("status = ? AND reminder_sent = ? AND scheduled_at > ? AND scheduled_at <= ?",
			models.StatusConfirmed, false, start, end).
		Find(&appointments).Error
	return appointments, err
}

func (s GormStore) DueReminders(by time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.DB.
		Where("status = ? AND reminder_sent = ? AND scheduled_at <= ?",
			models.StatusConfirmed, false, by).
		Find(&appointments).Error
	return appointments, err
}

// ClaimReminderSent flips reminder_sent only if it is still false and
// reports whether this caller won the claim.
func (s GormStore) ClaimReminderSent(id string) (bool, error) {
	result := s.DB.Model(&models.Appointment{}).
		Where("id = ? AND reminder_sent = ?", id, false).
		Update("reminder_sent", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

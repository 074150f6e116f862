package scheduler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mediconnect/clinic-scheduler/models"
)

const dateLayout = "2006-01-02"

// Window is the clinic's daily operating window. Slots are one hour wide
// and start on the hour, the last one ending at CloseHour.
type Window struct {
	OpenHour  int
	CloseHour int
}

// Slots returns the interval labels for the operating window, in order,
// e.g. "09:00 - 10:00" through "15:00 - 16:00" for a 9-16 window.
func (w Window) Slots() []string {
	slots := make([]string, 0, w.CloseHour-w.OpenHour)
	for h := w.OpenHour; h < w.CloseHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00 - %02d:00", h, h+1))
	}
	return slots
}

// Contains reports whether slot is one of the window's interval labels.
func (w Window) Contains(slot string) bool {
	for _, s := range w.Slots() {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotStart resolves a date and slot label to the instant the appointment
// begins, in loc.
func (w Window) SlotStart(date, slot string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", models.ErrValidation, date)
	}
	if !w.Contains(slot) {
		return time.Time{}, fmt.Errorf("%w: unknown time slot %q", models.ErrValidation, slot)
	}
	hour, err := strconv.Atoi(slot[:2])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unknown time slot %q", models.ErrValidation, slot)
	}
	return day.Add(time.Duration(hour) * time.Hour), nil
}

// ValidateBookingDate checks that date parses, is not in the past, and is
// no more than horizonDays ahead of now.
func ValidateBookingDate(date string, now time.Time, horizonDays int) error {
	day, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return fmt.Errorf("%w: invalid date %q", models.ErrValidation, date)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return fmt.Errorf("%w: date %s is in the past", models.ErrValidation, date)
	}
	if day.After(today.AddDate(0, 0, horizonDays)) {
		return fmt.Errorf("%w: date %s is more than %d days ahead", models.ErrValidation, date, horizonDays)
	}
	return nil
}

// SweepWindow computes the reminder window for a sweep running at now:
// appointments starting inside (now+lead, now+lead+tick] are due. The width
// equals the tick so consecutive sweeps tile the timeline, each instant
// owned by exactly one window.
func SweepWindow(now time.Time, lead, tick time.Duration) (start, end time.Time) {
	start = now.Add(lead)
	return start, start.Add(tick)
}

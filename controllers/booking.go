package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mediconnect/clinic-scheduler/db"
	"github.com/mediconnect/clinic-scheduler/models"
	"github.com/mediconnect/clinic-scheduler/notifier"
	"github.com/mediconnect/clinic-scheduler/scheduler"
	"github.com/mediconnect/clinic-scheduler/utils"
)

var (
	ledger      *scheduler.Ledger
	dispatcher  notifier.Dispatcher
	horizonDays int
)

// Setup wires the shared ledger and dispatcher into the handlers. Called
// once from main after config and DB are up.
func Setup(l *scheduler.Ledger, d notifier.Dispatcher, bookingHorizonDays int) {
	ledger = l
	dispatcher = d
	horizonDays = bookingHorizonDays
}

type slotView struct {
	Slot    string `json:"slot"`
	Display string `json:"display"`
	IsFull  bool   `json:"is_full"`
}

// ListAvailability godoc
// @Summary List slot availability for a date
// @Router /booking/slots [get]
func ListAvailability(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewError("Date is required", nil))
	}
	if err := scheduler.ValidateBookingDate(date, time.Now(), horizonDays); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewError("Invalid date", err))
	}

	availability, err := ledger.Availability(date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.NewError("Failed to check availability", err))
	}

	views := make([]slotView, 0, len(availability))
	for _, a := range availability {
		display := a.Slot
		if a.IsFull {
			display += " (Full)"
		}
		views = append(views, slotView{Slot: a.Slot, Display: display, IsFull: a.IsFull})
	}
	return c.JSON(views)
}

type bookingRequest struct {
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	Email       string `json:"email"`
	Date        string `json:"date"`
	TimeSlot    string `json:"time_slot"`
	Symptoms    string `json:"symptoms"`
	Diagnosis   string `json:"diagnosis"`
}

// BookAppointment godoc
// @Summary Book an appointment in a slot
// @Router /booking [post]
func BookAppointment(c *fiber.Ctx) error {
	var req bookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewError("Failed to parse request body", err))
	}
	if req.PatientID == "" || req.PatientName == "" || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewError(
			"Missing required fields: patient_id, patient_name and email are required", nil))
	}
	if err := scheduler.ValidateBookingDate(req.Date, time.Now(), horizonDays); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewError("Invalid date", err))
	}
	scheduledAt, err := ledger.Window().SlotStart(req.Date, req.TimeSlot, time.Local)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewError("Invalid time slot", err))
	}

	appointment := models.Appointment{
		PatientID:   req.PatientID,
		PatientName: req.PatientName,
		Email:       req.Email,
		Date:        req.Date,
		TimeSlot:    req.TimeSlot,
		ScheduledAt: scheduledAt,
		Status:      models.StatusConfirmed,
		Symptoms:    req.Symptoms,
		Diagnosis:   req.Diagnosis,
	}

	if err := ledger.Reserve(&appointment); err != nil {
		if errors.Is(err, models.ErrSlotFull) {
			// Expected outcome, not a server fault.
			return c.Status(fiber.StatusConflict).JSON(utils.NewError("Time slot is fully booked", nil))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.NewError("Failed to book appointment", err))
	}

	// Best-effort confirmation email; a delivery failure never fails the
	// booking that already committed.
	if models.EmailRemindersEnabled(db.DB, req.PatientID) {
		body := notifier.ConfirmationBody(req.PatientName, req.Date, req.TimeSlot)
		if err := dispatcher.Send(req.Email, notifier.SubjectConfirmation, body); err != nil {
			log.Printf("Failed to send confirmation email for appointment %s: %v", appointment.ID, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

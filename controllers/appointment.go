package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mediconnect/clinic-scheduler/db"
	"github.com/mediconnect/clinic-scheduler/models"
	"github.com/mediconnect/clinic-scheduler/utils"
)

// GetAllAppointments godoc
// @Summary Get all appointments
// @Router /appointments/list [get]
func GetAllAppointments(c *fiber.Ctx) error {
	var appointments []models.Appointment
	if err := db.DB.Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.NewError("Failed to fetch appointments", err))
	}
	return c.JSON(fiber.Map{"success": true, "appointments": appointments})
}

// GetAppointment godoc
// @Summary Get an appointment by ID
// @Router /appointments/{id} [get]
func GetAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.First(&appointment, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.NewError("Appointment not found", err))
	}
	return c.JSON(appointment)
}

type statusRequest struct {
	ID     string                   `json:"id"`
	Status models.AppointmentStatus `json:"status"`
}

// UpdateAppointmentStatus godoc
// @Summary Move an appointment through its lifecycle
// @Router /appointments/status [post]
//
// Not-found and invalid-transition are reported distinctly so the caller
// can tell a missing appointment apart from a disallowed move.
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewError("Failed to parse request body", err))
	}
	if req.ID == "" || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewError("ID and status are required", nil))
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, "id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(utils.NewError("Appointment not found", nil))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.NewError("Failed to fetch appointment", err))
	}

	if err := appointment.UpdateStatus(db.DB, req.Status); err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			return c.Status(fiber.StatusConflict).JSON(utils.NewError("Invalid status transition", err))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.NewError("Failed to update status", err))
	}

	return c.JSON(appointment)
}

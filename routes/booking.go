package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mediconnect/clinic-scheduler/controllers"
	"github.com/mediconnect/clinic-scheduler/middleware"
)

// SetupBookingRoutes configures the slot availability and booking routes
func SetupBookingRoutes(app *fiber.App) {
	booking := app.Group("/booking")
	booking.Get("/slots", controllers.ListAvailability)
	booking.Post("/", middleware.Protected(), controllers.BookAppointment)
}

// SetupAppointmentRoutes configures appointment listing and lifecycle routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments")
	appointment.Get("/list", controllers.GetAllAppointments)
	appointment.Get("/:id", controllers.GetAppointment)
	appointment.Post("/status", middleware.Protected(), controllers.UpdateAppointmentStatus)
}

// SetupAdminRoutes configures operational endpoints
func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.Protected())
	admin.Post("/sweep", controllers.RunSweep)
}

package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/mediconnect/clinic-scheduler/config"
	"github.com/mediconnect/clinic-scheduler/controllers"
	"github.com/mediconnect/clinic-scheduler/cron"
	"github.com/mediconnect/clinic-scheduler/db"
	"github.com/mediconnect/clinic-scheduler/notifier"
	"github.com/mediconnect/clinic-scheduler/redis"
	"github.com/mediconnect/clinic-scheduler/routes"
	"github.com/mediconnect/clinic-scheduler/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db.Init(cfg.DatabaseURL)

	window := scheduler.Window{OpenHour: cfg.OpenHour, CloseHour: cfg.CloseHour}
	ledger := scheduler.NewLedger(db.DB, window, cfg.SlotCapacity)
	mailer := notifier.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass, cfg.DispatchTimeout)

	// The Redis lease is only needed when several instances run the sweep.
	var lock cron.Locker
	if cfg.RedisAddr != "" {
		redis.InitRedis(cfg.RedisAddr)
		lock = redis.NewSweepLock(redis.Client)
	}

	sweeper := cron.NewSweeper(
		cron.GormStore{DB: db.DB},
		mailer,
		cfg.ReminderLead,
		cfg.SweepTick,
		cfg.CatchUpMissedTicks,
		lock,
	)
	scheduled := sweeper.Start()
	defer scheduled.Stop()

	controllers.Setup(ledger, mailer, cfg.BookingHorizonDays)
	controllers.SetupSweeper(sweeper)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Clinic scheduler up")
	})
	routes.SetupBookingRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupAdminRoutes(app)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

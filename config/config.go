package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8000"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisAddr   string `env:"REDIS_ADDR"`
	JWTSecret   string `env:"JWT_SECRET"`

	SMTPHost  string `env:"SMTP_HOST"`
	SMTPPort  int    `env:"SMTP_PORT" envDefault:"587"`
	EmailUser string `env:"EMAIL_USER"`
	EmailPass string `env:"EMAIL_PASS"`

	// Clinic operating window, hourly slots [OpenHour, CloseHour).
	OpenHour  int `env:"CLINIC_OPEN_HOUR" envDefault:"9"`
	CloseHour int `env:"CLINIC_CLOSE_HOUR" envDefault:"16"`

	// Max confirmed appointments per (date, slot).
	SlotCapacity int `env:"SLOT_CAPACITY" envDefault:"4"`

	// How far ahead a booking may be made.
	BookingHorizonDays int `env:"BOOKING_HORIZON_DAYS" envDefault:"30"`

	// Reminder sweep settings.
	ReminderLead    time.Duration `env:"REMINDER_LEAD" envDefault:"3h"`
	SweepTick       time.Duration `env:"SWEEP_TICK" envDefault:"5m"`
	DispatchTimeout time.Duration `env:"DISPATCH_TIMEOUT" envDefault:"30s"`

	// When true the sweep picks up any unsent reminder whose scheduled
	// time is already inside the lead horizon, instead of only the
	// current tick's window. Covers appointments missed during downtime.
	CatchUpMissedTicks bool `env:"SWEEP_CATCH_UP" envDefault:"false"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

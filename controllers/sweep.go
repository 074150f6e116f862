package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mediconnect/clinic-scheduler/cron"
)

var sweeper *cron.Sweeper

// SetupSweeper wires the shared reminder sweeper for the manual trigger.
func SetupSweeper(s *cron.Sweeper) {
	sweeper = s
}

// RunSweep godoc
// @Summary Trigger one reminder sweep immediately
// @Router /admin/sweep [post]
func RunSweep(c *fiber.Ctx) error {
	res := sweeper.RunOnce()
	return c.JSON(fiber.Map{
		"matched": res.Matched,
		"sent":    res.Sent,
		"failed":  res.Failed,
		"skipped": res.Skipped,
	})
}

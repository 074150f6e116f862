package db

import (
	"fmt"
	"log"

	"github.com/mediconnect/clinic-scheduler/models"
)

// Migrate runs AutoMigrate for the scheduling tables. Only called
// explicitly, never on normal startup.
func Migrate() {
	err := DB.AutoMigrate(
		&models.Appointment{},
		&models.NotificationSetting{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}

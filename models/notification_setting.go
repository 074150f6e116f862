package models

import "gorm.io/gorm"

// NotificationSetting holds a patient's email-reminder preference.
// A missing row means reminders are enabled.
type NotificationSetting struct {
	gorm.Model
	PatientID      string `json:"patient_id" gorm:"index"`
	EmailReminders bool   `json:"email_reminders" gorm:"default:true"`
}

// EmailRemindersEnabled looks up the patient's preference, defaulting to
// enabled when no row exists.
func EmailRemindersEnabled(tx *gorm.DB, patientID string) bool {
	var setting NotificationSetting
	err := tx.Where("patient_id = ?", patientID).First(&setting).Error
	if err != nil {
		return true
	}
	return setting.EmailReminders
}

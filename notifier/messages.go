package notifier

import "fmt"

const (
	SubjectConfirmation = "Appointment Confirmation"
	SubjectReminder     = "Appointment Reminder"
)

// ConfirmationBody renders the booking confirmation email.
func ConfirmationBody(patientName, date, slot string) string {
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been booked successfully.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Please arrive a few minutes early. If you need to cancel, contact the clinic as soon as possible.</p>
		<p>Best regards,</p>
		<p>MediConnect Clinic</p>
	`, patientName, date, slot)
}

// ReminderBody renders the upcoming-appointment reminder email.
func ReminderBody(patientName, date, slot string) string {
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you can no longer attend, contact the clinic as soon as possible.</p>
		<p>Best regards,</p>
		<p>MediConnect Clinic</p>
	`, patientName, date, slot)
}

package mailer

// Mailer renders templateFile with data and delivers it to recipient.
type Mailer interface {
	Send(recipient, templateFile string, data any) error
}

const BookingConfirmedTemplate = "booking_confirmed.tmpl"

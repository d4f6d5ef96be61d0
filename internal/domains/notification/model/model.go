package model

const (
	TemplateBookingVerified     = "booking_verified"
	TemplatePaymentUploaded     = "payment_uploaded"
	TemplateNoticeSubmitted     = "notice_submitted"
	TemplateKycSubmitted        = "kyc_submitted"
	TemplateKycVerified         = "kyc_verified"
	TemplateRoomBookingCreated  = "room_booking_created"
	TemplateRoomBookingVerified = "room_booking_verified"
)

// Notification is an email to render from one of the templates above.
type Notification struct {
	To       string
	Subject  string
	Template string
	Data     map[string]any
}

// Mail is a rendered email as it travels through the notification topic.
type Mail struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

package notifications

import "time"

// DeviceToken is a registered push target for a user
type DeviceToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	Platform  string    `json:"platform" db:"platform"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PushNotification is a rendered push message ready for delivery
type PushNotification struct {
	Tokens []string
	Title  string
	Body   string
	Data   map[string]string
}

// EmailNotification is a rendered email ready for delivery
type EmailNotification struct {
	To      string
	Subject string
	Body    string
}

// RegisterDeviceRequest is the body of POST /notifications/devices
type RegisterDeviceRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=ios android web"`
}

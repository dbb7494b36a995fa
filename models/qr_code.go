package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QRCode is the daily kiosk code. Scanning it checks the employee in on
// the first scan and out on the second.
type QRCode struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Code      string               `json:"code" bson:"code"`
	Date      string               `json:"date" bson:"date"`
	ExpiresAt time.Time            `json:"expires_at" bson:"expires_at"`
	UsedBy    []primitive.ObjectID `json:"used_by" bson:"used_by"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
}

type QRCodeScanPayload struct {
	Code       string `json:"code" validate:"required"`
	EmployeeID string `json:"employee_id" validate:"required,len=24"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Leave statuses. Transitions are only allowed out of Pending.
const (
	LeavePending   = "Pending"
	LeaveApproved  = "Approved"
	LeaveRejected  = "Rejected"
	LeaveCancelled = "Cancelled"
)

// LeaveTypes lists every known leave type; the balance endpoint reports a
// total for each of them, zero included.
var LeaveTypes = []string{
	"Sick Leave",
	"Casual Leave",
	"Annual Leave",
	"Maternity Leave",
	"Paternity Leave",
	"Unpaid Leave",
	"Compensatory Leave",
}

type LeaveDocument struct {
	Name string `json:"name" bson:"name"`
	URL  string `json:"url" bson:"url"`
}

type LeaveComment struct {
	UserID  primitive.ObjectID `json:"user_id" bson:"user_id"`
	Comment string             `json:"comment" bson:"comment"`
	Date    time.Time          `json:"date" bson:"date"`
}

type Leave struct {
	ID              primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeID      primitive.ObjectID  `json:"employee_id" bson:"employee_id"`
	LeaveType       string              `json:"leave_type" bson:"leave_type"`
	StartDate       string              `json:"start_date" bson:"start_date"`
	EndDate         string              `json:"end_date" bson:"end_date"`
	NumberOfDays    int                 `json:"number_of_days" bson:"number_of_days"`
	Reason          string              `json:"reason" bson:"reason"`
	Status          string              `json:"status" bson:"status"`
	AppliedDate     time.Time           `json:"applied_date" bson:"applied_date"`
	ApprovedBy      *primitive.ObjectID `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	ApprovedDate    *time.Time          `json:"approved_date,omitempty" bson:"approved_date,omitempty"`
	RejectionReason string              `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	Documents       []LeaveDocument     `json:"documents" bson:"documents"`
	Comments        []LeaveComment      `json:"comments" bson:"comments"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
}

// LeaveWithEmployee is a leave enriched with the employee document via
// $lookup, for the pending-approvals listing.
type LeaveWithEmployee struct {
	Leave    `bson:",inline"`
	Employee *Employee `json:"employee" bson:"employee,omitempty"`
}

type LeaveApplyPayload struct {
	EmployeeID string          `json:"employee_id" validate:"required,len=24"`
	LeaveType  string          `json:"leave_type" validate:"required,oneof='Sick Leave' 'Casual Leave' 'Annual Leave' 'Maternity Leave' 'Paternity Leave' 'Unpaid Leave' 'Compensatory Leave'"`
	StartDate  string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string          `json:"end_date" validate:"required,datetime=2006-01-02,gtefield=StartDate"`
	Reason     string          `json:"reason" validate:"required,min=5,max=500"`
	Documents  []LeaveDocument `json:"documents"`
}

type LeaveApprovePayload struct {
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

type LeaveRejectPayload struct {
	RejectionReason string `json:"rejection_reason" validate:"omitempty,max=500"`
}

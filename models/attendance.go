package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attendance statuses.
const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceLate    = "Late"
	AttendanceHalfDay = "Half-day"
	AttendanceOnLeave = "On Leave"
)

// Attendance holds one day of check-in/check-out data for one employee.
// Date is the YYYY-MM-DD key of the (employee, date) unique index.
type Attendance struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeID       primitive.ObjectID `json:"employee_id" bson:"employee_id"`
	Date             string             `json:"date" bson:"date"`
	CheckInTime      time.Time          `json:"check_in_time" bson:"check_in_time"`
	CheckInLocation  string             `json:"check_in_location,omitempty" bson:"check_in_location,omitempty"`
	CheckInNotes     string             `json:"check_in_notes,omitempty" bson:"check_in_notes,omitempty"`
	CheckOutTime     *time.Time         `json:"check_out_time,omitempty" bson:"check_out_time,omitempty"`
	CheckOutLocation string             `json:"check_out_location,omitempty" bson:"check_out_location,omitempty"`
	CheckOutNotes    string             `json:"check_out_notes,omitempty" bson:"check_out_notes,omitempty"`
	Status           string             `json:"status" bson:"status"`
	WorkHours        float64            `json:"work_hours" bson:"work_hours"`
	IsLate           bool               `json:"is_late" bson:"is_late"`
	LateBy           int                `json:"late_by" bson:"late_by"`
	Overtime         int                `json:"overtime" bson:"overtime"`
	Remarks          string             `json:"remarks,omitempty" bson:"remarks,omitempty"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

type CheckInPayload struct {
	EmployeeID string `json:"employee_id" validate:"required,len=24"`
	Location   string `json:"location" validate:"omitempty,max=255"`
	Notes      string `json:"notes" validate:"omitempty,max=500"`
}

type CheckOutPayload struct {
	EmployeeID string `json:"employee_id" validate:"required,len=24"`
	Location   string `json:"location" validate:"omitempty,max=255"`
	Notes      string `json:"notes" validate:"omitempty,max=500"`
}

// AttendanceReportRow is one employee's aggregate over a report range.
type AttendanceReportRow struct {
	EmployeeID     primitive.ObjectID `json:"employee_id"`
	EmployeeName   string             `json:"employee_name"`
	Department     string             `json:"department"`
	TotalPresent   int                `json:"total_present"`
	TotalAbsent    int                `json:"total_absent"`
	TotalLate      int                `json:"total_late"`
	TotalWorkHours float64            `json:"total_work_hours"`
	TotalOvertime  int                `json:"total_overtime"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payroll statuses. The lifecycle is unguarded: status moves freely
// between Draft, Processed, Paid and On Hold.
const (
	PayrollDraft     = "Draft"
	PayrollProcessed = "Processed"
	PayrollPaid      = "Paid"
	PayrollOnHold    = "On Hold"
)

// PayrollAttendance is the attendance summary a payslip was derived from.
type PayrollAttendance struct {
	WorkingDays   int     `json:"working_days" bson:"working_days"`
	PresentDays   int     `json:"present_days" bson:"present_days"`
	AbsentDays    int     `json:"absent_days" bson:"absent_days"`
	LeaveDays     int     `json:"leave_days" bson:"leave_days"`
	OvertimeHours float64 `json:"overtime_hours" bson:"overtime_hours"`
}

// Payroll is one payslip. Uniqueness over (employee, month, year) is
// enforced by an index; gross - totalDeductions = net always holds.
type Payroll struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeID      primitive.ObjectID `json:"employee_id" bson:"employee_id"`
	Month           int                `json:"month" bson:"month"`
	Year            int                `json:"year" bson:"year"`
	BasicSalary     float64            `json:"basic_salary" bson:"basic_salary"`
	Allowances      map[string]float64 `json:"allowances" bson:"allowances"`
	Deductions      map[string]float64 `json:"deductions" bson:"deductions"`
	Attendance      PayrollAttendance  `json:"attendance" bson:"attendance"`
	OvertimePay     float64            `json:"overtime_pay" bson:"overtime_pay"`
	GrossSalary     float64            `json:"gross_salary" bson:"gross_salary"`
	TotalDeductions float64            `json:"total_deductions" bson:"total_deductions"`
	NetSalary       float64            `json:"net_salary" bson:"net_salary"`
	Status          string             `json:"status" bson:"status"`
	PaymentDate     *time.Time         `json:"payment_date,omitempty" bson:"payment_date,omitempty"`
	PaymentMethod   string             `json:"payment_method,omitempty" bson:"payment_method,omitempty"`
	Remarks         string             `json:"remarks,omitempty" bson:"remarks,omitempty"`
	GeneratedBy     primitive.ObjectID `json:"generated_by" bson:"generated_by"`
	GeneratedAt     time.Time          `json:"generated_at" bson:"generated_at"`
}

type PayrollWithEmployee struct {
	Payroll  `bson:",inline"`
	Employee *Employee `json:"employee" bson:"employee,omitempty"`
}

type PayrollCalculatePayload struct {
	EmployeeID string `json:"employee_id" validate:"required,len=24"`
	Month      int    `json:"month" validate:"required,min=1,max=12"`
	Year       int    `json:"year" validate:"required,min=2000,max=2100"`
}

type PayrollGeneratePayload struct {
	Month      int    `json:"month" validate:"required,min=1,max=12"`
	Year       int    `json:"year" validate:"required,min=2000,max=2100"`
	Department string `json:"department" validate:"omitempty"`
}

type PayrollUpdatePayload struct {
	Status        string `json:"status,omitempty" validate:"omitempty,oneof=Draft Processed Paid 'On Hold'"`
	PaymentDate   string `json:"payment_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string `json:"payment_method,omitempty" validate:"omitempty,oneof='Bank Transfer' Cash Cheque"`
	Remarks       string `json:"remarks,omitempty" validate:"omitempty,max=500"`
}

// PayrollBatchResult is one employee's outcome of a bulk generation run.
// The batch is best-effort: failures are collected here, never fatal.
type PayrollBatchResult struct {
	EmployeeCode string `json:"employee_code"`
	Status       string `json:"status"`
	Message      string `json:"message"`
}

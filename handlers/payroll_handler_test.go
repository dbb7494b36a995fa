package handlers

import (
	"math"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrms/models"
)

func TestBuildPayslipNoOvertime(t *testing.T) {
	employee := &models.Employee{
		ID:          primitive.NewObjectID(),
		BasicSalary: 3000,
		Allowances:  map[string]float64{"hra": 500, "transport": 200},
		Deductions:  map[string]float64{"tax": 300},
	}

	var records []models.Attendance
	for i := 0; i < 22; i++ {
		records = append(records, models.Attendance{Status: models.AttendancePresent})
	}

	payslip := buildPayslip(employee, records, 6, 2024)

	if payslip.GrossSalary != 3700 {
		t.Errorf("GrossSalary = %v, want 3700", payslip.GrossSalary)
	}
	if payslip.TotalDeductions != 300 {
		t.Errorf("TotalDeductions = %v, want 300", payslip.TotalDeductions)
	}
	if payslip.NetSalary != 3400 {
		t.Errorf("NetSalary = %v, want 3400", payslip.NetSalary)
	}
	if payslip.OvertimePay != 0 {
		t.Errorf("OvertimePay = %v, want 0", payslip.OvertimePay)
	}
	if payslip.Attendance.WorkingDays != 30 {
		t.Errorf("WorkingDays = %d, want 30 for June", payslip.Attendance.WorkingDays)
	}
	if payslip.Attendance.PresentDays != 22 {
		t.Errorf("PresentDays = %d, want 22", payslip.Attendance.PresentDays)
	}
	if payslip.Status != models.PayrollDraft {
		t.Errorf("Status = %q, want %q", payslip.Status, models.PayrollDraft)
	}
}

func TestBuildPayslipOvertimePay(t *testing.T) {
	employee := &models.Employee{
		ID:          primitive.NewObjectID(),
		BasicSalary: 4800,
		Allowances:  map[string]float64{},
		Deductions:  map[string]float64{},
	}

	// 120 overtime minutes = 2 hours across the month.
	records := []models.Attendance{
		{Status: models.AttendancePresent, Overtime: 90},
		{Status: models.AttendancePresent, Overtime: 30},
	}

	payslip := buildPayslip(employee, records, 4, 2024)

	// April has 30 days: hourly rate = 4800 / (30*8) = 20; pay = 20 * 2 * 1.5.
	wantOvertimePay := 60.0
	if payslip.OvertimePay != wantOvertimePay {
		t.Errorf("OvertimePay = %v, want %v", payslip.OvertimePay, wantOvertimePay)
	}
	if payslip.Attendance.OvertimeHours != 2 {
		t.Errorf("OvertimeHours = %v, want 2", payslip.Attendance.OvertimeHours)
	}
	if payslip.GrossSalary != 4860 {
		t.Errorf("GrossSalary = %v, want 4860", payslip.GrossSalary)
	}
	if payslip.NetSalary != 4860 {
		t.Errorf("NetSalary = %v, want 4860", payslip.NetSalary)
	}
}

func TestBuildPayslipStatusCounts(t *testing.T) {
	employee := &models.Employee{
		ID:          primitive.NewObjectID(),
		BasicSalary: 1000,
	}

	records := []models.Attendance{
		{Status: models.AttendancePresent},
		{Status: models.AttendanceLate},
		{Status: models.AttendanceHalfDay},
		{Status: models.AttendanceAbsent},
		{Status: models.AttendanceOnLeave},
		{Status: models.AttendanceOnLeave},
	}

	payslip := buildPayslip(employee, records, 2, 2024)

	if payslip.Attendance.PresentDays != 3 {
		t.Errorf("PresentDays = %d, want 3 (Present, Late and Half-day)", payslip.Attendance.PresentDays)
	}
	if payslip.Attendance.AbsentDays != 1 {
		t.Errorf("AbsentDays = %d, want 1", payslip.Attendance.AbsentDays)
	}
	if payslip.Attendance.LeaveDays != 2 {
		t.Errorf("LeaveDays = %d, want 2", payslip.Attendance.LeaveDays)
	}
	if payslip.Attendance.WorkingDays != 29 {
		t.Errorf("WorkingDays = %d, want 29 for February 2024", payslip.Attendance.WorkingDays)
	}
}

func TestBuildPayslipNetInvariant(t *testing.T) {
	employee := &models.Employee{
		ID:          primitive.NewObjectID(),
		BasicSalary: 3333.33,
		Allowances:  map[string]float64{"hra": 123.45, "meal": 67.89},
		Deductions:  map[string]float64{"tax": 456.78, "insurance": 12.34},
	}
	records := []models.Attendance{{Status: models.AttendancePresent, Overtime: 155}}

	payslip := buildPayslip(employee, records, 7, 2024)

	diff := math.Abs(payslip.GrossSalary - payslip.TotalDeductions - payslip.NetSalary)
	if diff > 1e-9 {
		t.Errorf("gross - deductions != net: %v - %v = %v, net is %v",
			payslip.GrossSalary, payslip.TotalDeductions, payslip.GrossSalary-payslip.TotalDeductions, payslip.NetSalary)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		month, year, want int
	}{
		{1, 2024, 31},
		{2, 2024, 29},
		{2, 2023, 28},
		{4, 2024, 30},
		{12, 2024, 31},
	}
	for _, tt := range tests {
		if got := daysInMonth(tt.month, tt.year); got != tt.want {
			t.Errorf("daysInMonth(%d, %d) = %d, want %d", tt.month, tt.year, got, tt.want)
		}
	}
}

func TestMonthSpan(t *testing.T) {
	start, end := monthSpan(2, 2024)
	if start != "2024-02-01" || end != "2024-02-29" {
		t.Errorf("monthSpan(2, 2024) = %q, %q; want 2024-02-01, 2024-02-29", start, end)
	}

	start, end = monthSpan(12, 2023)
	if start != "2023-12-01" || end != "2023-12-31" {
		t.Errorf("monthSpan(12, 2023) = %q, %q; want 2023-12-01, 2023-12-31", start, end)
	}
}

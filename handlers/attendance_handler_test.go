package handlers

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrms/models"
)

func TestComputeWorkHours(t *testing.T) {
	base := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		checkOut time.Time
		want     float64
	}{
		{"full day", base.Add(8 * time.Hour), 8.00},
		{"half day", base.Add(4*time.Hour + 30*time.Minute), 4.50},
		{"rounded to 2 decimals", base.Add(7*time.Hour + 47*time.Minute), 7.78},
		{"checkout before checkin", base.Add(-time.Hour), 0},
		{"same instant", base, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeWorkHours(base, tt.checkOut)
			if got != tt.want {
				t.Errorf("computeWorkHours() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeWorkHoursMatchesMillisecondFormula(t *testing.T) {
	checkIn := time.Date(2024, 3, 11, 9, 4, 30, 0, time.UTC)
	checkOut := time.Date(2024, 3, 11, 17, 51, 12, 0, time.UTC)

	millis := float64(checkOut.Sub(checkIn).Milliseconds())
	want := float64(int(millis/3600000*100+0.5)) / 100

	if got := computeWorkHours(checkIn, checkOut); got != want {
		t.Errorf("computeWorkHours() = %v, want %v", got, want)
	}
}

func TestLateness(t *testing.T) {
	onTime := time.Date(2024, 3, 11, 8, 55, 0, 0, time.UTC)
	if isLate, lateBy := lateness(onTime); isLate || lateBy != 0 {
		t.Errorf("lateness(before start) = %v, %d; want false, 0", isLate, lateBy)
	}

	exact := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	if isLate, _ := lateness(exact); isLate {
		t.Error("lateness(exactly at start) = true, want false")
	}

	late := time.Date(2024, 3, 11, 9, 25, 0, 0, time.UTC)
	isLate, lateBy := lateness(late)
	if !isLate || lateBy != 25 {
		t.Errorf("lateness(9:25) = %v, %d; want true, 25", isLate, lateBy)
	}
}

func TestOvertimeMinutes(t *testing.T) {
	checkIn := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

	if got := overtimeMinutes(checkIn, checkIn.Add(8*time.Hour)); got != 0 {
		t.Errorf("overtimeMinutes(8h day) = %d, want 0", got)
	}
	if got := overtimeMinutes(checkIn, checkIn.Add(9*time.Hour+30*time.Minute)); got != 90 {
		t.Errorf("overtimeMinutes(9.5h day) = %d, want 90", got)
	}
	if got := overtimeMinutes(checkIn, checkIn.Add(-time.Hour)); got != 0 {
		t.Errorf("overtimeMinutes(negative span) = %d, want 0", got)
	}
}

func TestBuildAttendanceReport(t *testing.T) {
	alice := models.Employee{
		ID:         primitive.NewObjectID(),
		FirstName:  "Alice",
		LastName:   "Nguyen",
		Department: "Engineering",
	}
	bob := models.Employee{
		ID:         primitive.NewObjectID(),
		FirstName:  "Bob",
		LastName:   "Singh",
		Department: "Sales",
	}
	idle := models.Employee{
		ID:         primitive.NewObjectID(),
		FirstName:  "Cara",
		LastName:   "Okafor",
		Department: "Sales",
	}

	records := []models.Attendance{
		{EmployeeID: alice.ID, Status: models.AttendancePresent, WorkHours: 8.0, Overtime: 30},
		{EmployeeID: alice.ID, Status: models.AttendanceLate, IsLate: true, WorkHours: 7.5},
		{EmployeeID: alice.ID, Status: models.AttendanceAbsent},
		{EmployeeID: bob.ID, Status: models.AttendancePresent, WorkHours: 8.25, Overtime: 15},
	}

	report := buildAttendanceReport([]models.Employee{alice, bob, idle}, records)

	if len(report) != 2 {
		t.Fatalf("report length = %d, want 2 (employees without records are skipped)", len(report))
	}

	got := report[0]
	if got.EmployeeName != "Alice Nguyen" || got.Department != "Engineering" {
		t.Errorf("row identity = %q/%q, want Alice Nguyen/Engineering", got.EmployeeName, got.Department)
	}
	if got.TotalPresent != 2 {
		t.Errorf("TotalPresent = %d, want 2 (Late counts as present)", got.TotalPresent)
	}
	if got.TotalAbsent != 1 {
		t.Errorf("TotalAbsent = %d, want 1", got.TotalAbsent)
	}
	if got.TotalLate != 1 {
		t.Errorf("TotalLate = %d, want 1", got.TotalLate)
	}
	if got.TotalWorkHours != 15.5 {
		t.Errorf("TotalWorkHours = %v, want 15.5", got.TotalWorkHours)
	}
	if got.TotalOvertime != 30 {
		t.Errorf("TotalOvertime = %d, want 30", got.TotalOvertime)
	}

	if report[1].TotalPresent != 1 || report[1].TotalOvertime != 15 {
		t.Errorf("second row = %+v, want 1 present and 15 overtime minutes", report[1])
	}
}

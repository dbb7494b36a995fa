package handlers

import (
	"testing"

	"hrms/models"
)

func TestLeaveDays(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
		want      int
		wantErr   bool
	}{
		{"inclusive span", "2024-01-01", "2024-01-03", 3, false},
		{"single day", "2024-06-10", "2024-06-10", 1, false},
		{"across month boundary", "2024-01-30", "2024-02-02", 4, false},
		{"end before start", "2024-01-05", "2024-01-01", 0, true},
		{"malformed start", "01-01-2024", "2024-01-03", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := leaveDays(tt.startDate, tt.endDate)
			if (err != nil) != tt.wantErr {
				t.Fatalf("leaveDays() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("leaveDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLeaveBalance(t *testing.T) {
	leaves := []models.Leave{
		{LeaveType: "Sick Leave", NumberOfDays: 2},
		{LeaveType: "Sick Leave", NumberOfDays: 1},
		{LeaveType: "Annual Leave", NumberOfDays: 5},
	}

	balance := leaveBalance(leaves)

	if len(balance) != len(models.LeaveTypes) {
		t.Fatalf("balance has %d types, want %d (every known type present)", len(balance), len(models.LeaveTypes))
	}
	if balance["Sick Leave"] != 3 {
		t.Errorf("Sick Leave = %d, want 3", balance["Sick Leave"])
	}
	if balance["Annual Leave"] != 5 {
		t.Errorf("Annual Leave = %d, want 5", balance["Annual Leave"])
	}
	if balance["Casual Leave"] != 0 {
		t.Errorf("Casual Leave = %d, want 0 for unused type", balance["Casual Leave"])
	}
}

func TestLeaveBalanceEmpty(t *testing.T) {
	balance := leaveBalance(nil)
	for _, leaveType := range models.LeaveTypes {
		if total, ok := balance[leaveType]; !ok || total != 0 {
			t.Errorf("balance[%q] = %d, %v; want 0 and present", leaveType, total, ok)
		}
	}
}

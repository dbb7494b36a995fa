package handlers

import (
	"testing"

	"hrms/models"
)

func TestBuildEmployeeUpdateSkipsUnsetFields(t *testing.T) {
	salary := 5500.0
	payload := &models.EmployeeUpdatePayload{
		FirstName:   "Noor",
		BasicSalary: &salary,
		Allowances:  map[string]float64{"hra": 400},
	}

	updateData, err := buildEmployeeUpdate(payload)
	if err != nil {
		t.Fatalf("buildEmployeeUpdate: %v", err)
	}

	if len(updateData) != 3 {
		t.Errorf("updateData has %d keys, want 3: %v", len(updateData), updateData)
	}
	if updateData["first_name"] != "Noor" {
		t.Errorf("first_name = %v, want Noor", updateData["first_name"])
	}
	if updateData["basic_salary"] != 5500.0 {
		t.Errorf("basic_salary = %v, want 5500", updateData["basic_salary"])
	}
	if _, ok := updateData["email"]; ok {
		t.Error("email was set even though the payload left it empty")
	}
}

func TestBuildEmployeeUpdateEmptyPayload(t *testing.T) {
	updateData, err := buildEmployeeUpdate(&models.EmployeeUpdatePayload{})
	if err != nil {
		t.Fatalf("buildEmployeeUpdate: %v", err)
	}
	if len(updateData) != 0 {
		t.Errorf("updateData = %v, want empty for an empty payload", updateData)
	}
}

func TestBuildEmployeeUpdateRejectsBadManagerID(t *testing.T) {
	payload := &models.EmployeeUpdatePayload{ManagerID: "not-a-hex-object-id-1234"}
	if _, err := buildEmployeeUpdate(payload); err == nil {
		t.Error("buildEmployeeUpdate accepted a malformed manager id")
	}
}

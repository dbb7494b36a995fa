package util

import "testing"

type registerPayload struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Role     string `validate:"omitempty,oneof=admin hr manager employee"`
}

func TestValidateStructValid(t *testing.T) {
	payload := registerPayload{
		Email:    "dana@example.com",
		Password: "longenough",
		Role:     "hr",
	}
	if fieldErrors := ValidateStruct(payload); fieldErrors != nil {
		t.Errorf("ValidateStruct returned errors for a valid payload: %+v", fieldErrors)
	}
}

func TestValidateStructCollectsAllFailures(t *testing.T) {
	payload := registerPayload{
		Email:    "not-an-email",
		Password: "short",
		Role:     "superuser",
	}

	fieldErrors := ValidateStruct(payload)
	if len(fieldErrors) != 3 {
		t.Fatalf("got %d field errors, want 3: %+v", len(fieldErrors), fieldErrors)
	}

	byField := make(map[string]string)
	for _, fieldError := range fieldErrors {
		byField[fieldError.Field] = fieldError.Tag
	}
	if byField["Email"] != "email" {
		t.Errorf("Email tag = %q, want email", byField["Email"])
	}
	if byField["Password"] != "min" {
		t.Errorf("Password tag = %q, want min", byField["Password"])
	}
	if byField["Role"] != "oneof" {
		t.Errorf("Role tag = %q, want oneof", byField["Role"])
	}
}

func TestValidateStructRequired(t *testing.T) {
	fieldErrors := ValidateStruct(registerPayload{})
	if len(fieldErrors) != 2 {
		t.Fatalf("got %d field errors, want 2 (Role is optional): %+v", len(fieldErrors), fieldErrors)
	}
	for _, fieldError := range fieldErrors {
		if fieldError.Tag != "required" {
			t.Errorf("tag for %s = %q, want required", fieldError.Field, fieldError.Tag)
		}
		if fieldError.Msg == "" {
			t.Errorf("message for %s is empty", fieldError.Field)
		}
	}
}

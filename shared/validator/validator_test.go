package validator_test

import (
	"strings"
	"testing"
	"venue/shared/validator"
)

// Test structs for validation
type ValidTestStruct struct {
	Name     string `validate:"required" json:"name"`
	Email    string `validate:"required,email" json:"email"`
	Capacity int    `validate:"gte=0,lte=5000" json:"capacity"`
	Role     string `validate:"oneof=employee student outsider" json:"role"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *ValidTestStruct
		expectError bool
	}{
		{
			name: "valid struct",
			data: &ValidTestStruct{
				Name:     "Main Auditorium",
				Email:    "admin@campus.edu",
				Capacity: 400,
				Role:     "employee",
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &ValidTestStruct{
				Email:    "admin@campus.edu",
				Capacity: 400,
				Role:     "employee",
			},
			expectError: true,
		},
		{
			name: "invalid email",
			data: &ValidTestStruct{
				Name:     "Main Auditorium",
				Email:    "invalid-email",
				Capacity: 400,
				Role:     "employee",
			},
			expectError: true,
		},
		{
			name: "capacity out of range",
			data: &ValidTestStruct{
				Name:     "Main Auditorium",
				Email:    "admin@campus.edu",
				Capacity: 6000,
				Role:     "employee",
			},
			expectError: true,
		},
		{
			name: "invalid role",
			data: &ValidTestStruct{
				Name:     "Main Auditorium",
				Email:    "admin@campus.edu",
				Capacity: 400,
				Role:     "dean",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "test",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid email",
			field:       "test@campus.edu",
			tag:         "email",
			expectError: false,
		},
		{
			name:        "invalid email",
			field:       "invalid-email",
			tag:         "email",
			expectError: true,
		},
		{
			name:        "valid oneof",
			field:       "student",
			tag:         "oneof=employee student outsider",
			expectError: false,
		},
		{
			name:        "invalid oneof",
			field:       "invalid",
			tag:         "oneof=employee student outsider",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestTimeSlotValidation(t *testing.T) {
	tests := []struct {
		name        string
		slot        string
		expectError bool
	}{
		{
			name: "first bookable slot",
			slot: "09:00",
		},
		{
			name: "last bookable slot",
			slot: "20:00",
		},
		{
			name: "mid-day slot",
			slot: "14:00",
		},
		{
			name:        "before opening",
			slot:        "08:00",
			expectError: true,
		},
		{
			name:        "after closing",
			slot:        "21:00",
			expectError: true,
		},
		{
			name:        "not on the hour",
			slot:        "09:30",
			expectError: true,
		},
		{
			name:        "not a time",
			slot:        "morning",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.slot, "timeslot")

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"name":"Main Auditorium","email":"admin@campus.edu","capacity":400,"role":"employee"}`,
			expectError: false,
		},
		{
			name:        "invalid JSON",
			jsonBody:    `{"name":"Main Auditorium","email":"invalid-email","capacity":400,"role":"employee"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"name":"Main Auditorium","email":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)
			var data ValidTestStruct
			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

// Test custom validation messages
func TestValidationMessages(t *testing.T) {
	data := &ValidTestStruct{}
	err := validator.ValidateStruct(data)

	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	errorMsg := err.Error()

	// Check that error message contains field name and is descriptive
	if !strings.Contains(errorMsg, "required") || errorMsg == "" {
		t.Errorf("expected descriptive error message containing 'required', got: %s", errorMsg)
	}
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Address struct {
	Street  string `json:"street,omitempty" bson:"street,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty" bson:"zip_code,omitempty"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
}

type EmergencyContact struct {
	Name         string `json:"name,omitempty" bson:"name,omitempty"`
	Relationship string `json:"relationship,omitempty" bson:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// Employee is the master record the payroll and attendance pipelines read
// from. Allowances and deductions are named monthly amounts, e.g.
// {"hra": 500, "transport": 200}.
type Employee struct {
	ID               primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeCode     string              `json:"employee_code" bson:"employee_code"`
	FirstName        string              `json:"first_name" bson:"first_name"`
	LastName         string              `json:"last_name" bson:"last_name"`
	Email            string              `json:"email" bson:"email"`
	Phone            string              `json:"phone" bson:"phone"`
	DateOfBirth      string              `json:"date_of_birth,omitempty" bson:"date_of_birth,omitempty"`
	Gender           string              `json:"gender,omitempty" bson:"gender,omitempty"`
	Address          Address             `json:"address,omitempty" bson:"address,omitempty"`
	Department       string              `json:"department" bson:"department"`
	Position         string              `json:"position" bson:"position"`
	JoiningDate      string              `json:"joining_date" bson:"joining_date"`
	EmploymentType   string              `json:"employment_type" bson:"employment_type"`
	BasicSalary      float64             `json:"basic_salary" bson:"basic_salary"`
	Allowances       map[string]float64  `json:"allowances" bson:"allowances"`
	Deductions       map[string]float64  `json:"deductions" bson:"deductions"`
	ManagerID        *primitive.ObjectID `json:"manager_id,omitempty" bson:"manager_id,omitempty"`
	EmergencyContact EmergencyContact    `json:"emergency_contact,omitempty" bson:"emergency_contact,omitempty"`
	Status           string              `json:"status" bson:"status"`
	ProfileImage     string              `json:"profile_image,omitempty" bson:"profile_image,omitempty"`
	CreatedAt        time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at" bson:"updated_at"`
}

type EmployeeCreatePayload struct {
	EmployeeCode     string             `json:"employee_code" validate:"required,min=2,max=20"`
	FirstName        string             `json:"first_name" validate:"required,min=1,max=100"`
	LastName         string             `json:"last_name" validate:"required,min=1,max=100"`
	Email            string             `json:"email" validate:"required,email"`
	Phone            string             `json:"phone" validate:"required"`
	DateOfBirth      string             `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender           string             `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Address          Address            `json:"address"`
	Department       string             `json:"department" validate:"required"`
	Position         string             `json:"position" validate:"required"`
	JoiningDate      string             `json:"joining_date" validate:"omitempty,datetime=2006-01-02"`
	EmploymentType   string             `json:"employment_type" validate:"omitempty,oneof=Full-time Part-time Contract Intern"`
	BasicSalary      float64            `json:"basic_salary" validate:"min=0"`
	Allowances       map[string]float64 `json:"allowances"`
	Deductions       map[string]float64 `json:"deductions"`
	ManagerID        string             `json:"manager_id" validate:"omitempty,len=24"`
	EmergencyContact EmergencyContact   `json:"emergency_contact"`
	Status           string             `json:"status" validate:"omitempty,oneof=Active 'On Leave' Terminated Resigned"`
	ProfileImage     string             `json:"profile_image" validate:"omitempty,url"`
}

type EmployeeUpdatePayload struct {
	FirstName        string             `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName         string             `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Email            string             `json:"email,omitempty" validate:"omitempty,email"`
	Phone            string             `json:"phone,omitempty"`
	DateOfBirth      string             `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Gender           string             `json:"gender,omitempty" validate:"omitempty,oneof=Male Female Other"`
	Address          *Address           `json:"address,omitempty"`
	Department       string             `json:"department,omitempty"`
	Position         string             `json:"position,omitempty"`
	EmploymentType   string             `json:"employment_type,omitempty" validate:"omitempty,oneof=Full-time Part-time Contract Intern"`
	BasicSalary      *float64           `json:"basic_salary,omitempty" validate:"omitempty,min=0"`
	Allowances       map[string]float64 `json:"allowances,omitempty"`
	Deductions       map[string]float64 `json:"deductions,omitempty"`
	ManagerID        string             `json:"manager_id,omitempty" validate:"omitempty,len=24"`
	EmergencyContact *EmergencyContact  `json:"emergency_contact,omitempty"`
	Status           string             `json:"status,omitempty" validate:"omitempty,oneof=Active 'On Leave' Terminated Resigned"`
	ProfileImage     string             `json:"profile_image,omitempty" validate:"omitempty,url"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID         primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Email      string              `json:"email" bson:"email"`
	Password   string              `json:"-" bson:"password"`
	Role       string              `json:"role" bson:"role"`
	EmployeeID *primitive.ObjectID `json:"employee_id,omitempty" bson:"employee_id,omitempty"`
	IsActive   bool                `json:"is_active" bson:"is_active"`
	LastLogin  *time.Time          `json:"last_login,omitempty" bson:"last_login,omitempty"`
	CreatedAt  time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at" bson:"updated_at"`
}

type UserRegisterPayload struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,max=50"`
	Role       string `json:"role" validate:"omitempty,oneof=admin hr manager employee"`
	EmployeeID string `json:"employee_id" validate:"omitempty,len=24"`
}

type UserLoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordPayload struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=50"`
}

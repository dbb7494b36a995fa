package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Job posting statuses.
const (
	JobDraft  = "Draft"
	JobOpen   = "Open"
	JobClosed = "Closed"
	JobOnHold = "On Hold"
	JobFilled = "Filled"
)

type JobRequirements struct {
	Education      []string `json:"education,omitempty" bson:"education,omitempty"`
	ExperienceMin  int      `json:"experience_min,omitempty" bson:"experience_min,omitempty"`
	ExperienceMax  int      `json:"experience_max,omitempty" bson:"experience_max,omitempty"`
	Skills         []string `json:"skills,omitempty" bson:"skills,omitempty"`
	Certifications []string `json:"certifications,omitempty" bson:"certifications,omitempty"`
}

type SalaryRange struct {
	Min      float64 `json:"min,omitempty" bson:"min,omitempty"`
	Max      float64 `json:"max,omitempty" bson:"max,omitempty"`
	Currency string  `json:"currency,omitempty" bson:"currency,omitempty"`
}

type Applicant struct {
	FirstName string `json:"first_name" bson:"first_name" validate:"required"`
	LastName  string `json:"last_name" bson:"last_name" validate:"required"`
	Email     string `json:"email" bson:"email" validate:"required,email"`
	Phone     string `json:"phone" bson:"phone" validate:"required"`
	Location  string `json:"location,omitempty" bson:"location,omitempty"`
}

type Interview struct {
	ID           string               `json:"id" bson:"id"`
	Round        int                  `json:"round" bson:"round"`
	Type         string               `json:"type" bson:"type"`
	Date         *time.Time           `json:"date,omitempty" bson:"date,omitempty"`
	Interviewers []primitive.ObjectID `json:"interviewers" bson:"interviewers"`
	Feedback     string               `json:"feedback,omitempty" bson:"feedback,omitempty"`
	Rating       float64              `json:"rating,omitempty" bson:"rating,omitempty"`
	Status       string               `json:"status" bson:"status"`
}

type ApplicationNote struct {
	Note      string             `json:"note" bson:"note"`
	AddedBy   primitive.ObjectID `json:"added_by" bson:"added_by"`
	AddedDate time.Time          `json:"added_date" bson:"added_date"`
}

// Application is embedded in its job posting, uuid-keyed.
type Application struct {
	ID          string            `json:"id" bson:"id"`
	Applicant   Applicant         `json:"applicant" bson:"applicant"`
	Resume      string            `json:"resume,omitempty" bson:"resume,omitempty"`
	CoverLetter string            `json:"cover_letter,omitempty" bson:"cover_letter,omitempty"`
	Status      string            `json:"status" bson:"status"`
	AppliedDate time.Time         `json:"applied_date" bson:"applied_date"`
	Interviews  []Interview       `json:"interviews" bson:"interviews"`
	Notes       []ApplicationNote `json:"notes" bson:"notes"`
}

type Recruitment struct {
	ID                  primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	JobTitle            string              `json:"job_title" bson:"job_title"`
	Department          string              `json:"department" bson:"department"`
	Position            string              `json:"position" bson:"position"`
	JobDescription      string              `json:"job_description" bson:"job_description"`
	Requirements        JobRequirements     `json:"requirements" bson:"requirements"`
	NumberOfOpenings    int                 `json:"number_of_openings" bson:"number_of_openings"`
	EmploymentType      string              `json:"employment_type" bson:"employment_type"`
	SalaryRange         SalaryRange         `json:"salary_range" bson:"salary_range"`
	Location            string              `json:"location" bson:"location"`
	PostedBy            primitive.ObjectID  `json:"posted_by" bson:"posted_by"`
	PostedDate          time.Time           `json:"posted_date" bson:"posted_date"`
	ApplicationDeadline string              `json:"application_deadline" bson:"application_deadline"`
	Status              string              `json:"status" bson:"status"`
	Applications        []Application       `json:"applications" bson:"applications"`
	HiringManagerID     *primitive.ObjectID `json:"hiring_manager_id,omitempty" bson:"hiring_manager_id,omitempty"`
	CreatedAt           time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at" bson:"updated_at"`
}

type JobCreatePayload struct {
	JobTitle            string          `json:"job_title" validate:"required,min=2,max=200"`
	Department          string          `json:"department" validate:"required"`
	Position            string          `json:"position" validate:"required"`
	JobDescription      string          `json:"job_description" validate:"required,min=10"`
	Requirements        JobRequirements `json:"requirements"`
	NumberOfOpenings    int             `json:"number_of_openings" validate:"omitempty,min=1"`
	EmploymentType      string          `json:"employment_type" validate:"omitempty,oneof=Full-time Part-time Contract Intern"`
	SalaryRange         SalaryRange     `json:"salary_range"`
	Location            string          `json:"location" validate:"required"`
	ApplicationDeadline string          `json:"application_deadline" validate:"required,datetime=2006-01-02"`
	HiringManagerID     string          `json:"hiring_manager_id" validate:"omitempty,len=24"`
}

type JobUpdatePayload struct {
	JobTitle            string           `json:"job_title,omitempty" validate:"omitempty,min=2,max=200"`
	JobDescription      string           `json:"job_description,omitempty" validate:"omitempty,min=10"`
	Requirements        *JobRequirements `json:"requirements,omitempty"`
	NumberOfOpenings    *int             `json:"number_of_openings,omitempty" validate:"omitempty,min=1"`
	EmploymentType      string           `json:"employment_type,omitempty" validate:"omitempty,oneof=Full-time Part-time Contract Intern"`
	SalaryRange         *SalaryRange     `json:"salary_range,omitempty"`
	Location            string           `json:"location,omitempty"`
	ApplicationDeadline string           `json:"application_deadline,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status              string           `json:"status,omitempty" validate:"omitempty,oneof=Draft Open Closed 'On Hold' Filled"`
}

type ApplicationSubmitPayload struct {
	JobID       string    `json:"job_id" validate:"required,len=24"`
	Applicant   Applicant `json:"applicant" validate:"required"`
	Resume      string    `json:"resume" validate:"omitempty,url"`
	CoverLetter string    `json:"cover_letter" validate:"omitempty,max=5000"`
}

type ApplicationUpdatePayload struct {
	Status string `json:"status,omitempty" validate:"omitempty,oneof=New Shortlisted 'Interview Scheduled' Interviewed Offered Rejected Hired Withdrawn"`
	Note   string `json:"note,omitempty" validate:"omitempty,max=1000"`
}

type InterviewSchedulePayload struct {
	Round        int      `json:"round" validate:"omitempty,min=1"`
	Type         string   `json:"type" validate:"required,oneof=Phone Video In-person Technical HR"`
	Date         string   `json:"date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Interviewers []string `json:"interviewers" validate:"omitempty,dive,len=24"`
}

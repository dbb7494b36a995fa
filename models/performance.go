package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Performance evaluation statuses. Acknowledged is terminal and only
// reachable by the evaluated employee.
const (
	PerformanceDraft        = "Draft"
	PerformanceSubmitted    = "Submitted"
	PerformanceUnderReview  = "Under Review"
	PerformanceCompleted    = "Completed"
	PerformanceAcknowledged = "Acknowledged"
)

type PerformanceCriterion struct {
	Name        string  `json:"name" bson:"name" validate:"required"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	Rating      float64 `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Comments    string  `json:"comments,omitempty" bson:"comments,omitempty"`
}

type PerformanceGoal struct {
	Title                string `json:"title" bson:"title"`
	Description          string `json:"description,omitempty" bson:"description,omitempty"`
	Status               string `json:"status" bson:"status" validate:"omitempty,oneof='Not Started' 'In Progress' Completed Delayed"`
	CompletionPercentage int    `json:"completion_percentage" bson:"completion_percentage" validate:"min=0,max=100"`
}

type Acknowledgement struct {
	Acknowledged     bool       `json:"acknowledged" bson:"acknowledged"`
	AcknowledgedDate *time.Time `json:"acknowledged_date,omitempty" bson:"acknowledged_date,omitempty"`
	Signature        string     `json:"signature,omitempty" bson:"signature,omitempty"`
}

type Performance struct {
	ID                      primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeID              primitive.ObjectID     `json:"employee_id" bson:"employee_id"`
	ReviewerID              primitive.ObjectID     `json:"reviewer_id" bson:"reviewer_id"`
	ReviewStartDate         string                 `json:"review_start_date" bson:"review_start_date"`
	ReviewEndDate           string                 `json:"review_end_date" bson:"review_end_date"`
	ReviewType              string                 `json:"review_type" bson:"review_type"`
	Criteria                []PerformanceCriterion `json:"criteria" bson:"criteria"`
	Goals                   []PerformanceGoal      `json:"goals" bson:"goals"`
	OverallRating           float64                `json:"overall_rating" bson:"overall_rating"`
	Strengths               []string               `json:"strengths" bson:"strengths"`
	AreasOfImprovement      []string               `json:"areas_of_improvement" bson:"areas_of_improvement"`
	TrainingRecommendations []string               `json:"training_recommendations" bson:"training_recommendations"`
	EmployeeComments        string                 `json:"employee_comments,omitempty" bson:"employee_comments,omitempty"`
	ReviewerComments        string                 `json:"reviewer_comments,omitempty" bson:"reviewer_comments,omitempty"`
	ManagerComments         string                 `json:"manager_comments,omitempty" bson:"manager_comments,omitempty"`
	Status                  string                 `json:"status" bson:"status"`
	NextReviewDate          string                 `json:"next_review_date,omitempty" bson:"next_review_date,omitempty"`
	Acknowledgement         Acknowledgement        `json:"acknowledgement" bson:"acknowledgement"`
	CreatedAt               time.Time              `json:"created_at" bson:"created_at"`
	UpdatedAt               time.Time              `json:"updated_at" bson:"updated_at"`
}

type PerformanceWithNames struct {
	Performance `bson:",inline"`
	Employee    *Employee `json:"employee" bson:"employee,omitempty"`
	Reviewer    *Employee `json:"reviewer" bson:"reviewer,omitempty"`
}

type PerformanceCreatePayload struct {
	EmployeeID              string                 `json:"employee_id" validate:"required,len=24"`
	ReviewStartDate         string                 `json:"review_start_date" validate:"required,datetime=2006-01-02"`
	ReviewEndDate           string                 `json:"review_end_date" validate:"required,datetime=2006-01-02,gtefield=ReviewStartDate"`
	ReviewType              string                 `json:"review_type" validate:"required,oneof=Quarterly Half-yearly Annual Probation Special"`
	Criteria                []PerformanceCriterion `json:"criteria" validate:"dive"`
	Goals                   []PerformanceGoal      `json:"goals" validate:"dive"`
	Strengths               []string               `json:"strengths"`
	AreasOfImprovement      []string               `json:"areas_of_improvement"`
	TrainingRecommendations []string               `json:"training_recommendations"`
	ReviewerComments        string                 `json:"reviewer_comments" validate:"omitempty,max=2000"`
	ManagerComments         string                 `json:"manager_comments" validate:"omitempty,max=2000"`
}

type PerformanceUpdatePayload struct {
	Criteria                []PerformanceCriterion `json:"criteria,omitempty" validate:"omitempty,dive"`
	Goals                   []PerformanceGoal      `json:"goals,omitempty" validate:"omitempty,dive"`
	Strengths               []string               `json:"strengths,omitempty"`
	AreasOfImprovement      []string               `json:"areas_of_improvement,omitempty"`
	TrainingRecommendations []string               `json:"training_recommendations,omitempty"`
	ReviewerComments        string                 `json:"reviewer_comments,omitempty" validate:"omitempty,max=2000"`
	ManagerComments         string                 `json:"manager_comments,omitempty" validate:"omitempty,max=2000"`
	Status                  string                 `json:"status,omitempty" validate:"omitempty,oneof=Draft Submitted 'Under Review' Completed"`
	NextReviewDate          string                 `json:"next_review_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type PerformanceAcknowledgePayload struct {
	Signature        string `json:"signature" validate:"omitempty,max=255"`
	EmployeeComments string `json:"employee_comments" validate:"omitempty,max=2000"`
}

type RatingPoint struct {
	Date   string  `json:"date"`
	Rating float64 `json:"rating"`
}

type PerformanceAnalytics struct {
	TotalEvaluations   int           `json:"total_evaluations"`
	AverageRating      float64       `json:"average_rating"`
	LatestRating       float64       `json:"latest_rating"`
	RatingTrend        []RatingPoint `json:"rating_trend"`
	Strengths          []string      `json:"strengths"`
	AreasOfImprovement []string      `json:"areas_of_improvement"`
}

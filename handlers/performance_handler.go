package handlers

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrms/models"
	"hrms/pkg/paseto"
	util "hrms/pkg/utils"
	"hrms/repository"
)

type PerformanceHandler struct {
	performanceRepo *repository.PerformanceRepository
	employeeRepo    *repository.EmployeeRepository
}

func NewPerformanceHandler(performanceRepo *repository.PerformanceRepository, employeeRepo *repository.EmployeeRepository) *PerformanceHandler {
	return &PerformanceHandler{
		performanceRepo: performanceRepo,
		employeeRepo:    employeeRepo,
	}
}

// CreateEvaluation godoc
// @Summary Create Evaluation
// @Description Creates a Draft evaluation; the overall rating is the 1-decimal mean of the criteria ratings
// @Tags Performance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param evaluation body models.PerformanceCreatePayload true "Evaluation data"
// @Success 201 {object} models.APIResponse{data=models.Performance} "Evaluation created"
// @Failure 404 {object} models.APIResponse "Employee not found"
// @Router /performance/evaluation [post]
func (h *PerformanceHandler) CreateEvaluation(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, models.ErrUnauthorized, "Not authenticated")
	}

	var payload models.PerformanceCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid request body")
	}
	if fieldErrors := util.ValidateStruct(payload); fieldErrors != nil {
		return respondValidation(c, fieldErrors)
	}

	employeeID, err := primitive.ObjectIDFromHex(payload.EmployeeID)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid employee id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	employee, err := h.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to look up employee")
	}
	if employee == nil {
		return respondError(c, fiber.StatusNotFound, models.ErrNotFound, "Employee not found")
	}

	evaluation := &models.Performance{
		EmployeeID:              employeeID,
		ReviewStartDate:         payload.ReviewStartDate,
		ReviewEndDate:           payload.ReviewEndDate,
		ReviewType:              payload.ReviewType,
		Criteria:                payload.Criteria,
		Goals:                   payload.Goals,
		OverallRating:           overallRating(payload.Criteria),
		Strengths:               payload.Strengths,
		AreasOfImprovement:      payload.AreasOfImprovement,
		TrainingRecommendations: payload.TrainingRecommendations,
		ReviewerComments:        payload.ReviewerComments,
		ManagerComments:         payload.ManagerComments,
		Status:                  models.PerformanceDraft,
	}
	if reviewerID := claims.EmployeeID; !reviewerID.IsZero() {
		evaluation.ReviewerID = reviewerID
	}
	if evaluation.Criteria == nil {
		evaluation.Criteria = []models.PerformanceCriterion{}
	}
	if evaluation.Goals == nil {
		evaluation.Goals = []models.PerformanceGoal{}
	}
	if evaluation.Strengths == nil {
		evaluation.Strengths = []string{}
	}
	if evaluation.AreasOfImprovement == nil {
		evaluation.AreasOfImprovement = []string{}
	}
	if evaluation.TrainingRecommendations == nil {
		evaluation.TrainingRecommendations = []string{}
	}

	if err := h.performanceRepo.Create(ctx, evaluation); err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to create evaluation")
	}

	return respondData(c, fiber.StatusCreated, "Evaluation created successfully", evaluation)
}

// UpdateEvaluation godoc
// @Summary Update Evaluation
// @Description Applies a partial update; the overall rating is recomputed when criteria are supplied
// @Tags Performance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Evaluation ID"
// @Param evaluation body models.PerformanceUpdatePayload true "Fields to update"
// @Success 200 {object} models.APIResponse{data=models.Performance} "Updated evaluation"
// @Failure 404 {object} models.APIResponse "Evaluation not found"
// @Router /performance/{id} [put]
func (h *PerformanceHandler) UpdateEvaluation(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid evaluation id")
	}

	var payload models.PerformanceUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid request body")
	}
	if fieldErrors := util.ValidateStruct(payload); fieldErrors != nil {
		return respondValidation(c, fieldErrors)
	}

	updateData := bson.M{}
	if payload.Criteria != nil {
		updateData["criteria"] = payload.Criteria
		updateData["overall_rating"] = overallRating(payload.Criteria)
	}
	if payload.Goals != nil {
		updateData["goals"] = payload.Goals
	}
	if payload.Strengths != nil {
		updateData["strengths"] = payload.Strengths
	}
	if payload.AreasOfImprovement != nil {
		updateData["areas_of_improvement"] = payload.AreasOfImprovement
	}
	if payload.TrainingRecommendations != nil {
		updateData["training_recommendations"] = payload.TrainingRecommendations
	}
	if payload.ReviewerComments != "" {
		updateData["reviewer_comments"] = payload.ReviewerComments
	}
	if payload.ManagerComments != "" {
		updateData["manager_comments"] = payload.ManagerComments
	}
	if payload.Status != "" {
		updateData["status"] = payload.Status
	}
	if payload.NextReviewDate != "" {
		updateData["next_review_date"] = payload.NextReviewDate
	}
	if len(updateData) == 0 {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "No fields to update")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	updated, err := h.performanceRepo.Update(ctx, id, updateData)
	if err != nil {
		return respondRepoError(c, err, "Evaluation not found", "")
	}

	return respondData(c, fiber.StatusOK, "Evaluation updated successfully", updated)
}

// GetEvaluation godoc
// @Summary Get Evaluation
// @Description Fetches one evaluation enriched with the employee and reviewer
// @Tags Performance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Evaluation ID"
// @Success 200 {object} models.APIResponse{data=models.PerformanceWithNames} "Evaluation detail"
// @Failure 404 {object} models.APIResponse "Evaluation not found"
// @Router /performance/{id} [get]
func (h *PerformanceHandler) GetEvaluation(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid evaluation id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	evaluation, err := h.performanceRepo.FindByIDWithNames(ctx, id)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch evaluation")
	}
	if evaluation == nil {
		return respondError(c, fiber.StatusNotFound, models.ErrNotFound, "Evaluation not found")
	}

	return respondData(c, fiber.StatusOK, "", evaluation)
}

// GetEmployeeEvaluations godoc
// @Summary Employee Evaluations
// @Description Lists an employee's evaluations, newest review period first
// @Tags Performance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} models.APIResponse{data=[]models.Performance} "Evaluation list"
// @Router /performance/employee/{id} [get]
func (h *PerformanceHandler) GetEmployeeEvaluations(c *fiber.Ctx) error {
	employeeID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid employee id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	evaluations, err := h.performanceRepo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch evaluations")
	}

	return respondList(c, len(evaluations), evaluations)
}

// GetPendingEvaluations godoc
// @Summary Pending Evaluations
// @Description Lists evaluations not yet completed, enriched with employee and reviewer
// @Tags Performance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=[]models.PerformanceWithNames} "Pending evaluations"
// @Router /performance/pending/all [get]
func (h *PerformanceHandler) GetPendingEvaluations(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	evaluations, err := h.performanceRepo.FindPendingWithNames(ctx)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch pending evaluations")
	}

	return respondList(c, len(evaluations), evaluations)
}

// AcknowledgeEvaluation godoc
// @Summary Acknowledge Evaluation
// @Description Lets the evaluated employee sign off their completed evaluation
// @Tags Performance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Evaluation ID"
// @Param payload body models.PerformanceAcknowledgePayload false "Signature and comments"
// @Success 200 {object} models.APIResponse{data=models.Performance} "Evaluation acknowledged"
// @Failure 403 {object} models.APIResponse "Evaluation belongs to another employee"
// @Failure 404 {object} models.APIResponse "Evaluation not found"
// @Router /performance/{id}/acknowledge [put]
func (h *PerformanceHandler) AcknowledgeEvaluation(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, models.ErrUnauthorized, "Not authenticated")
	}

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid evaluation id")
	}

	var payload models.PerformanceAcknowledgePayload
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid request body")
		}
		if fieldErrors := util.ValidateStruct(payload); fieldErrors != nil {
			return respondValidation(c, fieldErrors)
		}
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	evaluation, err := h.performanceRepo.FindByID(ctx, id)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch evaluation")
	}
	if evaluation == nil {
		return respondError(c, fiber.StatusNotFound, models.ErrNotFound, "Evaluation not found")
	}
	if claims.EmployeeID.IsZero() || claims.EmployeeID != evaluation.EmployeeID {
		return respondError(c, fiber.StatusForbidden, models.ErrForbidden, "Evaluation belongs to another employee")
	}

	now := time.Now()
	updateData := bson.M{
		"status": models.PerformanceAcknowledged,
		"acknowledgement": models.Acknowledgement{
			Acknowledged:     true,
			AcknowledgedDate: &now,
			Signature:        payload.Signature,
		},
	}
	if payload.EmployeeComments != "" {
		updateData["employee_comments"] = payload.EmployeeComments
	}

	updated, err := h.performanceRepo.Update(ctx, id, updateData)
	if err != nil {
		return respondRepoError(c, err, "Evaluation not found", "")
	}

	return respondData(c, fiber.StatusOK, "Evaluation acknowledged", updated)
}

// GetAnalytics godoc
// @Summary Performance Analytics
// @Description Aggregates an employee's evaluations into rating averages, trend and themes
// @Tags Performance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} models.APIResponse{data=models.PerformanceAnalytics} "Analytics"
// @Router /performance/analytics/{id} [get]
func (h *PerformanceHandler) GetAnalytics(c *fiber.Ctx) error {
	employeeID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid employee id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	evaluations, err := h.performanceRepo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch evaluations")
	}

	return respondData(c, fiber.StatusOK, "", buildAnalytics(evaluations))
}

// overallRating is the mean of the criteria ratings rounded to one
// decimal, zero when no criteria are rated.
func overallRating(criteria []models.PerformanceCriterion) float64 {
	if len(criteria) == 0 {
		return 0
	}
	var total float64
	for _, criterion := range criteria {
		total += criterion.Rating
	}
	mean := total / float64(len(criteria))
	return math.Round(mean*10) / 10
}

// buildAnalytics summarizes evaluations into totals, a time-ordered
// rating trend and de-duplicated strength/improvement unions.
func buildAnalytics(evaluations []models.Performance) models.PerformanceAnalytics {
	analytics := models.PerformanceAnalytics{
		TotalEvaluations:   len(evaluations),
		RatingTrend:        []models.RatingPoint{},
		Strengths:          []string{},
		AreasOfImprovement: []string{},
	}
	if len(evaluations) == 0 {
		return analytics
	}

	analytics.LatestRating = evaluations[0].OverallRating

	var total float64
	seenStrengths := make(map[string]bool)
	seenImprovements := make(map[string]bool)
	for _, evaluation := range evaluations {
		total += evaluation.OverallRating
		analytics.RatingTrend = append(analytics.RatingTrend, models.RatingPoint{
			Date:   evaluation.ReviewEndDate,
			Rating: evaluation.OverallRating,
		})
		for _, strength := range evaluation.Strengths {
			if !seenStrengths[strength] {
				seenStrengths[strength] = true
				analytics.Strengths = append(analytics.Strengths, strength)
			}
		}
		for _, improvement := range evaluation.AreasOfImprovement {
			if !seenImprovements[improvement] {
				seenImprovements[improvement] = true
				analytics.AreasOfImprovement = append(analytics.AreasOfImprovement, improvement)
			}
		}
	}

	analytics.AverageRating = math.Round(total/float64(len(evaluations))*10) / 10
	sort.Slice(analytics.RatingTrend, func(i, j int) bool {
		return analytics.RatingTrend[i].Date < analytics.RatingTrend[j].Date
	})
	return analytics
}

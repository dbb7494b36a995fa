package handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrms/models"
	"hrms/pkg/paseto"
	util "hrms/pkg/utils"
	"hrms/repository"
)

type LeaveHandler struct {
	leaveRepo    repository.LeaveRepository
	employeeRepo *repository.EmployeeRepository
}

func NewLeaveHandler(leaveRepo repository.LeaveRepository, employeeRepo *repository.EmployeeRepository) *LeaveHandler {
	return &LeaveHandler{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
	}
}

// ApplyLeave godoc
// @Summary Apply for Leave
// @Description Creates a Pending leave request with the inclusive day count derived from the date span
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param leave body models.LeaveApplyPayload true "Leave request"
// @Success 201 {object} models.APIResponse{data=models.Leave} "Leave requested"
// @Failure 400 {object} models.APIResponse "Invalid payload or validation error"
// @Failure 404 {object} models.APIResponse "Employee not found"
// @Router /leaves [post]
func (h *LeaveHandler) ApplyLeave(c *fiber.Ctx) error {
	var payload models.LeaveApplyPayload
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

	numberOfDays, err := leaveDays(payload.StartDate, payload.EndDate)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid leave date range")
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

	leave := &models.Leave{
		EmployeeID:   employeeID,
		LeaveType:    payload.LeaveType,
		StartDate:    payload.StartDate,
		EndDate:      payload.EndDate,
		NumberOfDays: numberOfDays,
		Reason:       payload.Reason,
		Status:       models.LeavePending,
		Documents:    payload.Documents,
		Comments:     []models.LeaveComment{},
	}
	if leave.Documents == nil {
		leave.Documents = []models.LeaveDocument{}
	}

	if err := h.leaveRepo.Create(ctx, leave); err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to create leave request")
	}

	return respondData(c, fiber.StatusCreated, "Leave requested successfully", leave)
}

// GetEmployeeLeaves godoc
// @Summary Employee Leaves
// @Description Lists an employee's leave requests, newest applied first
// @Tags Leaves
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param status query string false "Filter by status"
// @Param year query string false "Filter by start-date year"
// @Success 200 {object} models.APIResponse{data=[]models.Leave} "Leave list"
// @Router /leaves/user/{id} [get]
func (h *LeaveHandler) GetEmployeeLeaves(c *fiber.Ctx) error {
	employeeID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid employee id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	leaves, err := h.leaveRepo.FindByEmployee(ctx, employeeID, c.Query("status"), c.Query("year"))
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch leaves")
	}

	return respondList(c, len(leaves), leaves)
}

// GetPendingLeaves godoc
// @Summary Pending Leaves
// @Description Lists Pending leave requests enriched with the requesting employee
// @Tags Leaves
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=[]models.LeaveWithEmployee} "Pending leaves"
// @Router /leaves/pending [get]
func (h *LeaveHandler) GetPendingLeaves(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	leaves, err := h.leaveRepo.FindPendingWithEmployee(ctx)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch pending leaves")
	}

	return respondList(c, len(leaves), leaves)
}

// ApproveLeave godoc
// @Summary Approve Leave
// @Description Transitions a Pending leave to Approved, recording the actor and timestamp
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave ID"
// @Param payload body models.LeaveApprovePayload false "Optional comment"
// @Success 200 {object} models.APIResponse{data=models.Leave} "Leave approved"
// @Failure 404 {object} models.APIResponse "Leave not found"
// @Failure 409 {object} models.APIResponse "Leave is not pending"
// @Router /leaves/{id}/approve [put]
func (h *LeaveHandler) ApproveLeave(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, models.ErrUnauthorized, "Not authenticated")
	}

	var payload models.LeaveApprovePayload
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid request body")
		}
		if fieldErrors := util.ValidateStruct(payload); fieldErrors != nil {
			return respondValidation(c, fieldErrors)
		}
	}

	actorID := claims.UserID
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"status":        models.LeaveApproved,
			"approved_by":   actorID,
			"approved_date": now,
		},
	}
	if payload.Comment != "" {
		update["$push"] = bson.M{"comments": models.LeaveComment{
			UserID:  actorID,
			Comment: payload.Comment,
			Date:    now,
		}}
	}

	return h.transitionLeave(c, update, models.LeaveApproved, "Leave approved successfully")
}

// RejectLeave godoc
// @Summary Reject Leave
// @Description Transitions a Pending leave to Rejected with an optional reason
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave ID"
// @Param payload body models.LeaveRejectPayload false "Rejection reason"
// @Success 200 {object} models.APIResponse{data=models.Leave} "Leave rejected"
// @Failure 404 {object} models.APIResponse "Leave not found"
// @Failure 409 {object} models.APIResponse "Leave is not pending"
// @Router /leaves/{id}/reject [put]
func (h *LeaveHandler) RejectLeave(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, models.ErrUnauthorized, "Not authenticated")
	}

	var payload models.LeaveRejectPayload
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid request body")
		}
		if fieldErrors := util.ValidateStruct(payload); fieldErrors != nil {
			return respondValidation(c, fieldErrors)
		}
	}

	actorID := claims.UserID
	update := bson.M{
		"$set": bson.M{
			"status":           models.LeaveRejected,
			"approved_by":      actorID,
			"approved_date":    time.Now(),
			"rejection_reason": payload.RejectionReason,
		},
	}

	return h.transitionLeave(c, update, models.LeaveRejected, "Leave rejected")
}

// CancelLeave godoc
// @Summary Cancel Leave
// @Description Lets the requesting employee cancel their own Pending leave
// @Tags Leaves
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave ID"
// @Success 200 {object} models.APIResponse{data=models.Leave} "Leave cancelled"
// @Failure 403 {object} models.APIResponse "Leave belongs to another employee"
// @Failure 404 {object} models.APIResponse "Leave not found"
// @Failure 409 {object} models.APIResponse "Leave is not pending"
// @Router /leaves/{id}/cancel [put]
func (h *LeaveHandler) CancelLeave(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, models.ErrUnauthorized, "Not authenticated")
	}

	leaveID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid leave id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	leave, err := h.leaveRepo.FindByID(ctx, leaveID)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch leave")
	}
	if leave == nil {
		return respondError(c, fiber.StatusNotFound, models.ErrNotFound, "Leave not found")
	}
	if claims.EmployeeID.IsZero() || claims.EmployeeID != leave.EmployeeID {
		return respondError(c, fiber.StatusForbidden, models.ErrForbidden, "Leave belongs to another employee")
	}
	if leave.Status != models.LeavePending {
		return respondError(c, fiber.StatusConflict, models.ErrInvalidState, "Only pending leaves can be cancelled")
	}

	updated, err := h.leaveRepo.UpdateStatus(ctx, leaveID, bson.M{"$set": bson.M{"status": models.LeaveCancelled}})
	if err != nil {
		return respondRepoError(c, err, "Leave not found", "")
	}

	return respondData(c, fiber.StatusOK, "Leave cancelled", updated)
}

// GetLeaveBalance godoc
// @Summary Leave Balance
// @Description Per-type day totals over Approved and Pending leaves in the year
// @Tags Leaves
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param year query int false "Calendar year, default current"
// @Success 200 {object} models.APIResponse "Per-type day totals"
// @Router /leaves/balance/{id} [get]
func (h *LeaveHandler) GetLeaveBalance(c *fiber.Ctx) error {
	employeeID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid employee id")
	}

	year := time.Now().Year()
	if yearQuery := c.Query("year"); yearQuery != "" {
		year, err = strconv.Atoi(yearQuery)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid year")
		}
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	leaves, err := h.leaveRepo.FindForBalance(ctx, employeeID, year)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch leaves")
	}

	return respondData(c, fiber.StatusOK, "", fiber.Map{
		"year":    year,
		"balance": leaveBalance(leaves),
	})
}

func (h *LeaveHandler) transitionLeave(c *fiber.Ctx, update bson.M, target, message string) error {
	leaveID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid leave id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	leave, err := h.leaveRepo.FindByID(ctx, leaveID)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch leave")
	}
	if leave == nil {
		return respondError(c, fiber.StatusNotFound, models.ErrNotFound, "Leave not found")
	}
	if leave.Status != models.LeavePending {
		return respondError(c, fiber.StatusConflict, models.ErrInvalidState, "Leave is not pending")
	}

	updated, err := h.leaveRepo.UpdateStatus(ctx, leaveID, update)
	if err != nil {
		return respondRepoError(c, err, "Leave not found", "")
	}

	return respondData(c, fiber.StatusOK, message, updated)
}

// leaveDays counts the inclusive whole-day span between two dates.
func leaveDays(startDate, endDate string) (int, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return 0, err
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return 0, err
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 0, errInvalidDateRange
	}
	return days, nil
}

var errInvalidDateRange = errors.New("end date is before start date")

// leaveBalance sums day counts per type; every known type is present in
// the result, zero when unused.
func leaveBalance(leaves []models.Leave) map[string]int {
	balance := make(map[string]int, len(models.LeaveTypes))
	for _, leaveType := range models.LeaveTypes {
		balance[leaveType] = 0
	}
	for _, leave := range leaves {
		balance[leave.LeaveType] += leave.NumberOfDays
	}
	return balance
}

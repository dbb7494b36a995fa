package handlers

import (
	"context"
	"errors"
	"fmt"
	"math"
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

type PayrollHandler struct {
	payrollRepo    repository.PayrollRepository
	attendanceRepo repository.AttendanceRepository
	employeeRepo   *repository.EmployeeRepository
}

func NewPayrollHandler(payrollRepo repository.PayrollRepository, attendanceRepo repository.AttendanceRepository, employeeRepo *repository.EmployeeRepository) *PayrollHandler {
	return &PayrollHandler{
		payrollRepo:    payrollRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

// CalculatePayroll godoc
// @Summary Calculate Payroll
// @Description Derives one payslip from the employee's compensation and the month's attendance
// @Tags Payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.PayrollCalculatePayload true "Employee and period"
// @Success 201 {object} models.APIResponse{data=models.Payroll} "Payslip created"
// @Failure 404 {object} models.APIResponse "Employee not found"
// @Failure 409 {object} models.APIResponse "Payslip already exists for the period"
// @Router /payroll/calculate [post]
func (h *PayrollHandler) CalculatePayroll(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, models.ErrUnauthorized, "Not authenticated")
	}

	var payload models.PayrollCalculatePayload
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
	generatedBy := claims.UserID

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	employee, err := h.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to look up employee")
	}
	if employee == nil {
		return respondError(c, fiber.StatusNotFound, models.ErrNotFound, "Employee not found")
	}

	payroll, err := h.calculateForEmployee(ctx, employee, payload.Month, payload.Year, generatedBy)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return respondError(c, fiber.StatusConflict, models.ErrDuplicateEntry, "Payslip already exists for this period")
		}
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to calculate payroll")
	}

	return respondData(c, fiber.StatusCreated, "Payroll calculated successfully", payroll)
}

// GeneratePayroll godoc
// @Summary Bulk Generate Payroll
// @Description Runs the payroll calculation for every Active employee; per-employee failures never abort the batch
// @Tags Payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.PayrollGeneratePayload true "Period and optional department"
// @Success 200 {object} models.APIResponse{data=[]models.PayrollBatchResult} "Per-employee outcomes"
// @Router /payroll/generate [post]
func (h *PayrollHandler) GeneratePayroll(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, models.ErrUnauthorized, "Not authenticated")
	}

	var payload models.PayrollGeneratePayload
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid request body")
	}
	if fieldErrors := util.ValidateStruct(payload); fieldErrors != nil {
		return respondValidation(c, fieldErrors)
	}

	generatedBy := claims.UserID

	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	employees, err := h.employeeRepo.FindActive(ctx, payload.Department)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to list employees")
	}

	results := make([]models.PayrollBatchResult, 0, len(employees))
	for _, employee := range employees {
		result := models.PayrollBatchResult{EmployeeCode: employee.EmployeeCode}

		exists, err := h.payrollRepo.Exists(ctx, employee.ID, payload.Month, payload.Year)
		switch {
		case err != nil:
			result.Status = "error"
			result.Message = err.Error()
		case exists:
			result.Status = "skipped"
			result.Message = "Payslip already exists for this period"
		default:
			if _, err := h.calculateForEmployee(ctx, &employee, payload.Month, payload.Year, generatedBy); err != nil {
				if errors.Is(err, repository.ErrDuplicate) {
					result.Status = "skipped"
					result.Message = "Payslip already exists for this period"
				} else {
					result.Status = "error"
					result.Message = err.Error()
				}
			} else {
				result.Status = "success"
				result.Message = "Payslip generated"
			}
		}

		results = append(results, result)
	}

	return respondData(c, fiber.StatusOK, fmt.Sprintf("Processed %d employees", len(results)), results)
}

// UpdatePayroll godoc
// @Summary Update Payroll
// @Description Updates a payslip's status, payment date, method and remarks
// @Tags Payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payroll ID"
// @Param payload body models.PayrollUpdatePayload true "Fields to update"
// @Success 200 {object} models.APIResponse{data=models.Payroll} "Updated payslip"
// @Failure 404 {object} models.APIResponse "Payslip not found"
// @Router /payroll/{id} [put]
func (h *PayrollHandler) UpdatePayroll(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid payroll id")
	}

	var payload models.PayrollUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid request body")
	}
	if fieldErrors := util.ValidateStruct(payload); fieldErrors != nil {
		return respondValidation(c, fieldErrors)
	}

	updateData := bson.M{}
	if payload.Status != "" {
		updateData["status"] = payload.Status
	}
	if payload.PaymentDate != "" {
		paymentDate, err := time.Parse("2006-01-02", payload.PaymentDate)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid payment date")
		}
		updateData["payment_date"] = paymentDate
	}
	if payload.PaymentMethod != "" {
		updateData["payment_method"] = payload.PaymentMethod
	}
	if payload.Remarks != "" {
		updateData["remarks"] = payload.Remarks
	}
	if len(updateData) == 0 {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "No fields to update")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	updated, err := h.payrollRepo.Update(ctx, id, updateData)
	if err != nil {
		return respondRepoError(c, err, "Payslip not found", "")
	}

	return respondData(c, fiber.StatusOK, "Payroll updated successfully", updated)
}

// GetEmployeePayrolls godoc
// @Summary Employee Payslips
// @Description Lists an employee's payslips, newest period first
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param year query int false "Filter by year"
// @Success 200 {object} models.APIResponse{data=[]models.Payroll} "Payslip list"
// @Router /payroll/employee/{id} [get]
func (h *PayrollHandler) GetEmployeePayrolls(c *fiber.Ctx) error {
	employeeID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid employee id")
	}

	year := 0
	if yearQuery := c.Query("year"); yearQuery != "" {
		year, err = strconv.Atoi(yearQuery)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid year")
		}
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	payrolls, err := h.payrollRepo.FindByEmployee(ctx, employeeID, year)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch payslips")
	}

	return respondList(c, len(payrolls), payrolls)
}

// GetMonthlyPayrolls godoc
// @Summary Monthly Payslips
// @Description Lists one period's payslips enriched with the employee, ordered by employee code
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Param month path int true "Month (1-12)"
// @Param year path int true "Year"
// @Success 200 {object} models.APIResponse{data=[]models.PayrollWithEmployee} "Payslip list"
// @Router /payroll/monthly/{month}/{year} [get]
func (h *PayrollHandler) GetMonthlyPayrolls(c *fiber.Ctx) error {
	month, err := strconv.Atoi(c.Params("month"))
	if err != nil || month < 1 || month > 12 {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid month")
	}
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid year")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	payrolls, err := h.payrollRepo.FindMonthlyWithEmployee(ctx, month, year)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch payslips")
	}

	return respondList(c, len(payrolls), payrolls)
}

func (h *PayrollHandler) calculateForEmployee(ctx context.Context, employee *models.Employee, month, year int, generatedBy primitive.ObjectID) (*models.Payroll, error) {
	startDate, endDate := monthSpan(month, year)
	records, err := h.attendanceRepo.FindInRange(ctx, startDate, endDate, []primitive.ObjectID{employee.ID})
	if err != nil {
		return nil, err
	}

	payroll := buildPayslip(employee, records, month, year)
	payroll.GeneratedBy = generatedBy
	payroll.GeneratedAt = time.Now()

	if err := h.payrollRepo.Create(ctx, payroll); err != nil {
		return nil, err
	}
	return payroll, nil
}

// monthSpan returns the inclusive YYYY-MM-DD bounds of a month.
func monthSpan(month, year int) (string, string) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}

func daysInMonth(month, year int) int {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// buildPayslip derives a Draft payslip from the employee's compensation
// and the month's attendance records.
//
// The derivation chain: workingDays = calendar days in the month;
// overtimeHours = sum of overtime minutes / 60; overtimePay = hourly rate
// (basic over workingDays of 8 hours) times overtimeHours times 1.5;
// gross = basic + allowances + overtimePay; net = gross - deductions.
func buildPayslip(employee *models.Employee, records []models.Attendance, month, year int) *models.Payroll {
	workingDays := daysInMonth(month, year)

	var presentDays, absentDays, leaveDays, overtimeMinutes int
	for _, record := range records {
		switch record.Status {
		case models.AttendancePresent, models.AttendanceLate, models.AttendanceHalfDay:
			presentDays++
		case models.AttendanceAbsent:
			absentDays++
		case models.AttendanceOnLeave:
			leaveDays++
		}
		overtimeMinutes += record.Overtime
	}
	overtimeHours := float64(overtimeMinutes) / 60

	var overtimePay float64
	if overtimeHours > 0 {
		hourlyRate := employee.BasicSalary / (float64(workingDays) * 8)
		overtimePay = round2(hourlyRate * overtimeHours * 1.5)
	}

	grossSalary := round2(employee.BasicSalary + sumValues(employee.Allowances) + overtimePay)
	totalDeductions := round2(sumValues(employee.Deductions))

	return &models.Payroll{
		EmployeeID:  employee.ID,
		Month:       month,
		Year:        year,
		BasicSalary: employee.BasicSalary,
		Allowances:  employee.Allowances,
		Deductions:  employee.Deductions,
		Attendance: models.PayrollAttendance{
			WorkingDays:   workingDays,
			PresentDays:   presentDays,
			AbsentDays:    absentDays,
			LeaveDays:     leaveDays,
			OvertimeHours: round2(overtimeHours),
		},
		OvertimePay:     overtimePay,
		GrossSalary:     grossSalary,
		TotalDeductions: totalDeductions,
		NetSalary:       round2(grossSalary - totalDeductions),
		Status:          models.PayrollDraft,
	}
}

func sumValues(amounts map[string]float64) float64 {
	var total float64
	for _, amount := range amounts {
		total += amount
	}
	return total
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

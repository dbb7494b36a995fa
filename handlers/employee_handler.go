package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrms/models"
	util "hrms/pkg/utils"
	"hrms/repository"
)

type EmployeeHandler struct {
	employeeRepo *repository.EmployeeRepository
}

func NewEmployeeHandler(employeeRepo *repository.EmployeeRepository) *EmployeeHandler {
	return &EmployeeHandler{
		employeeRepo: employeeRepo,
	}
}

// CreateEmployee godoc
// @Summary Create Employee
// @Description Registers a new employee master record (admin/hr only)
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employee body models.EmployeeCreatePayload true "Employee data"
// @Success 201 {object} models.APIResponse{data=models.Employee} "Employee created"
// @Failure 400 {object} models.APIResponse "Invalid payload or validation error"
// @Failure 409 {object} models.APIResponse "Employee code or email already in use"
// @Router /employees [post]
func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var payload models.EmployeeCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid request body")
	}
	if fieldErrors := util.ValidateStruct(payload); fieldErrors != nil {
		return respondValidation(c, fieldErrors)
	}

	employee := &models.Employee{
		EmployeeCode:     payload.EmployeeCode,
		FirstName:        payload.FirstName,
		LastName:         payload.LastName,
		Email:            payload.Email,
		Phone:            payload.Phone,
		DateOfBirth:      payload.DateOfBirth,
		Gender:           payload.Gender,
		Address:          payload.Address,
		Department:       payload.Department,
		Position:         payload.Position,
		JoiningDate:      payload.JoiningDate,
		EmploymentType:   payload.EmploymentType,
		BasicSalary:      payload.BasicSalary,
		Allowances:       payload.Allowances,
		Deductions:       payload.Deductions,
		EmergencyContact: payload.EmergencyContact,
		Status:           payload.Status,
		ProfileImage:     payload.ProfileImage,
	}
	if employee.Status == "" {
		employee.Status = "Active"
	}
	if employee.EmploymentType == "" {
		employee.EmploymentType = "Full-time"
	}
	if employee.Allowances == nil {
		employee.Allowances = map[string]float64{}
	}
	if employee.Deductions == nil {
		employee.Deductions = map[string]float64{}
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	if payload.ManagerID != "" {
		managerID, err := primitive.ObjectIDFromHex(payload.ManagerID)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid manager id")
		}
		manager, err := h.employeeRepo.FindByID(ctx, managerID)
		if err != nil {
			return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to look up manager")
		}
		if manager == nil {
			return respondError(c, fiber.StatusNotFound, models.ErrNotFound, "Manager not found")
		}
		employee.ManagerID = &managerID
	}

	if err := h.employeeRepo.Create(ctx, employee); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return respondError(c, fiber.StatusConflict, models.ErrDuplicateEntry, "Employee code or email already in use")
		}
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to create employee")
	}

	return respondData(c, fiber.StatusCreated, "Employee created successfully", employee)
}

// GetAllEmployees godoc
// @Summary List Employees
// @Description Lists employees with optional department, status and free-text search filters
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param department query string false "Filter by department"
// @Param status query string false "Filter by status"
// @Param search query string false "Match against name, code or email"
// @Success 200 {object} models.APIResponse{data=[]models.Employee} "Employee list"
// @Router /employees [get]
func (h *EmployeeHandler) GetAllEmployees(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	employees, err := h.employeeRepo.FindAll(ctx, c.Query("department"), c.Query("status"), c.Query("search"))
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to list employees")
	}

	return respondList(c, len(employees), employees)
}

// GetEmployeeByID godoc
// @Summary Get Employee
// @Description Fetches a single employee by id
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} models.APIResponse{data=models.Employee} "Employee detail"
// @Failure 404 {object} models.APIResponse "Employee not found"
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetEmployeeByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid employee id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	employee, err := h.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch employee")
	}
	if employee == nil {
		return respondError(c, fiber.StatusNotFound, models.ErrNotFound, "Employee not found")
	}

	return respondData(c, fiber.StatusOK, "", employee)
}

// GetEmployeesByDepartment godoc
// @Summary List Employees by Department
// @Description Lists every employee in a department
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param department path string true "Department name"
// @Success 200 {object} models.APIResponse{data=[]models.Employee} "Employee list"
// @Router /employees/department/{department} [get]
func (h *EmployeeHandler) GetEmployeesByDepartment(c *fiber.Ctx) error {
	department := c.Params("department")
	if department == "" {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Department is required")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	employees, err := h.employeeRepo.FindAll(ctx, department, "", "")
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to list employees")
	}

	return respondList(c, len(employees), employees)
}

// UpdateEmployee godoc
// @Summary Update Employee
// @Description Applies a partial update to an employee record (admin/hr only)
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param employee body models.EmployeeUpdatePayload true "Fields to update"
// @Success 200 {object} models.APIResponse{data=models.Employee} "Updated employee"
// @Failure 404 {object} models.APIResponse "Employee not found"
// @Failure 409 {object} models.APIResponse "Email already in use"
// @Router /employees/{id} [put]
func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid employee id")
	}

	var payload models.EmployeeUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid request body")
	}
	if fieldErrors := util.ValidateStruct(payload); fieldErrors != nil {
		return respondValidation(c, fieldErrors)
	}

	updateData, err := buildEmployeeUpdate(&payload)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, err.Error())
	}
	if len(updateData) == 0 {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "No fields to update")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	updated, err := h.employeeRepo.Update(ctx, id, updateData)
	if err != nil {
		return respondRepoError(c, err, "Employee not found", "Email already in use")
	}

	return respondData(c, fiber.StatusOK, "Employee updated successfully", updated)
}

// DeleteEmployee godoc
// @Summary Delete Employee
// @Description Removes an employee record (admin only)
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} models.APIResponse "Employee deleted"
// @Failure 404 {object} models.APIResponse "Employee not found"
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid employee id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	if err := h.employeeRepo.Delete(ctx, id); err != nil {
		return respondRepoError(c, err, "Employee not found", "")
	}

	return respondData(c, fiber.StatusOK, "Employee deleted successfully", nil)
}

// buildEmployeeUpdate turns the partial payload into a $set document,
// skipping fields the caller did not send.
func buildEmployeeUpdate(payload *models.EmployeeUpdatePayload) (bson.M, error) {
	updateData := bson.M{}

	setIfNotEmpty := func(key, value string) {
		if value != "" {
			updateData[key] = value
		}
	}
	setIfNotEmpty("first_name", payload.FirstName)
	setIfNotEmpty("last_name", payload.LastName)
	setIfNotEmpty("email", payload.Email)
	setIfNotEmpty("phone", payload.Phone)
	setIfNotEmpty("date_of_birth", payload.DateOfBirth)
	setIfNotEmpty("gender", payload.Gender)
	setIfNotEmpty("department", payload.Department)
	setIfNotEmpty("position", payload.Position)
	setIfNotEmpty("employment_type", payload.EmploymentType)
	setIfNotEmpty("status", payload.Status)
	setIfNotEmpty("profile_image", payload.ProfileImage)

	if payload.Address != nil {
		updateData["address"] = payload.Address
	}
	if payload.BasicSalary != nil {
		updateData["basic_salary"] = *payload.BasicSalary
	}
	if payload.Allowances != nil {
		updateData["allowances"] = payload.Allowances
	}
	if payload.Deductions != nil {
		updateData["deductions"] = payload.Deductions
	}
	if payload.EmergencyContact != nil {
		updateData["emergency_contact"] = payload.EmergencyContact
	}
	if payload.ManagerID != "" {
		managerID, err := primitive.ObjectIDFromHex(payload.ManagerID)
		if err != nil {
			return nil, errors.New("Invalid manager id")
		}
		updateData["manager_id"] = managerID
	}

	return updateData, nil
}

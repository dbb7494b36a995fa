package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrms/models"
	"hrms/pkg/paseto"
	"hrms/pkg/password"
	util "hrms/pkg/utils"
	"hrms/repository"
)

type AuthHandler struct {
	userRepo     *repository.UserRepository
	employeeRepo *repository.EmployeeRepository
	tokenMaker   *paseto.Maker
}

func NewAuthHandler(userRepo *repository.UserRepository, employeeRepo *repository.EmployeeRepository, tokenMaker *paseto.Maker) *AuthHandler {
	return &AuthHandler{
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
		tokenMaker:   tokenMaker,
	}
}

// Register godoc
// @Summary Register User
// @Description Registers a new account, optionally linked to an employee record, and returns a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body models.UserRegisterPayload true "Registration payload"
// @Success 201 {object} models.APIResponse{data=models.LoginData} "Account created"
// @Failure 400 {object} models.APIResponse "Invalid request body or validation error"
// @Failure 409 {object} models.APIResponse "Email already registered"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var payload models.UserRegisterPayload
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid request body")
	}
	if fieldErrors := util.ValidateStruct(payload); fieldErrors != nil {
		return respondValidation(c, fieldErrors)
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	newUser := &models.User{
		Email:    payload.Email,
		Role:     payload.Role,
		IsActive: true,
	}
	if newUser.Role == "" {
		newUser.Role = "employee"
	}

	if payload.EmployeeID != "" {
		employeeID, err := primitive.ObjectIDFromHex(payload.EmployeeID)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid employee id")
		}
		employee, err := h.employeeRepo.FindByID(ctx, employeeID)
		if err != nil {
			return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to look up employee")
		}
		if employee == nil {
			return respondError(c, fiber.StatusNotFound, models.ErrNotFound, "Employee not found")
		}
		newUser.EmployeeID = &employeeID
	}

	hashedPassword, err := password.HashPassword(payload.Password)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to hash password")
	}
	newUser.Password = hashedPassword

	if err := h.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return respondError(c, fiber.StatusConflict, models.ErrDuplicateEntry, "Email is already registered")
		}
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to register user")
	}

	claims := &paseto.Claims{
		UserID: newUser.ID,
		Email:  newUser.Email,
		Role:   newUser.Role,
	}
	if newUser.EmployeeID != nil {
		claims.EmployeeID = *newUser.EmployeeID
	}
	token, err := h.tokenMaker.GenerateToken(claims)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to generate token")
	}

	return respondData(c, fiber.StatusCreated, "User registered successfully", models.LoginData{
		User:  newUser,
		Token: token,
	})
}

// Login godoc
// @Summary Login User
// @Description Verifies credentials and returns a PASETO token plus the linked employee profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.UserLoginPayload true "Login credentials"
// @Success 200 {object} models.APIResponse{data=models.LoginData} "Login successful"
// @Failure 400 {object} models.APIResponse "Invalid payload or validation error"
// @Failure 401 {object} models.APIResponse "Wrong email and password combination"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload models.UserLoginPayload
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid request body")
	}
	if fieldErrors := util.ValidateStruct(payload); fieldErrors != nil {
		return respondValidation(c, fieldErrors)
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	user, err := h.userRepo.FindByEmail(ctx, payload.Email)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Internal server error")
	}
	if user == nil || !user.IsActive || !password.CheckPasswordHash(payload.Password, user.Password) {
		return respondError(c, fiber.StatusUnauthorized, models.ErrUnauthorized, "Wrong email and password combination")
	}

	claims := &paseto.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}

	var employee *models.Employee
	if user.EmployeeID != nil {
		claims.EmployeeID = *user.EmployeeID
		employee, err = h.employeeRepo.FindByID(ctx, *user.EmployeeID)
		if err != nil {
			return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to load employee profile")
		}
	}

	token, err := h.tokenMaker.GenerateToken(claims)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to generate token")
	}

	if err := h.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to record login")
	}

	return respondData(c, fiber.StatusOK, "Login successful", models.LoginData{
		User:     user,
		Token:    token,
		Employee: employee,
	})
}

// Me godoc
// @Summary Current User
// @Description Returns the authenticated account and its linked employee profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "Authenticated account"
// @Failure 401 {object} models.APIResponse "Not authenticated"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, models.ErrUnauthorized, "Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	user, err := h.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Internal server error")
	}
	if user == nil {
		return respondError(c, fiber.StatusNotFound, models.ErrNotFound, "User not found")
	}

	var employee *models.Employee
	if user.EmployeeID != nil {
		employee, err = h.employeeRepo.FindByID(ctx, *user.EmployeeID)
		if err != nil {
			return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to load employee profile")
		}
	}

	return respondData(c, fiber.StatusOK, "", fiber.Map{
		"user":     user,
		"employee": employee,
	})
}

// ChangePassword godoc
// @Summary Change Password
// @Description Replaces the account password after verifying the current one
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.ChangePasswordPayload true "Current and new password"
// @Success 200 {object} models.APIResponse "Password updated"
// @Failure 400 {object} models.APIResponse "Invalid payload or validation error"
// @Failure 401 {object} models.APIResponse "Current password is wrong"
// @Router /auth/change-password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, models.ErrUnauthorized, "Not authenticated")
	}

	var payload models.ChangePasswordPayload
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid request body")
	}
	if fieldErrors := util.ValidateStruct(payload); fieldErrors != nil {
		return respondValidation(c, fieldErrors)
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	user, err := h.userRepo.FindByID(ctx, claims.UserID)
	if err != nil || user == nil {
		return respondError(c, fiber.StatusUnauthorized, models.ErrUnauthorized, "Not authenticated")
	}

	if !password.CheckPasswordHash(payload.CurrentPassword, user.Password) {
		return respondError(c, fiber.StatusUnauthorized, models.ErrUnauthorized, "Current password is wrong")
	}

	hashed, err := password.HashPassword(payload.NewPassword)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to hash password")
	}
	if err := h.userRepo.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to update password")
	}

	return respondData(c, fiber.StatusOK, "Password updated successfully", nil)
}

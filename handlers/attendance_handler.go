package handlers

import (
	"context"
	"encoding/base64"
	"errors"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrms/models"
	util "hrms/pkg/utils"
	"hrms/repository"
)

const (
	workdayStartHour   = 9
	standardDayMinutes = 8 * 60
	qrExpiryHour       = 23
)

type AttendanceHandler struct {
	attendanceRepo repository.AttendanceRepository
	employeeRepo   *repository.EmployeeRepository
}

func NewAttendanceHandler(attendanceRepo repository.AttendanceRepository, employeeRepo *repository.EmployeeRepository) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

// CheckIn godoc
// @Summary Check In
// @Description Records today's check-in for an employee
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CheckInPayload true "Check-in data"
// @Success 201 {object} models.APIResponse{data=models.Attendance} "Checked in"
// @Failure 404 {object} models.APIResponse "Employee not found"
// @Failure 409 {object} models.APIResponse "Already checked in today"
// @Router /attendance/checkin [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	var payload models.CheckInPayload
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

	record, err := h.recordCheckIn(ctx, employeeID, payload.Location, payload.Notes)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return respondError(c, fiber.StatusNotFound, models.ErrNotFound, "Employee not found")
		case errors.Is(err, repository.ErrDuplicate):
			return respondError(c, fiber.StatusConflict, models.ErrDuplicateEntry, "Already checked in today")
		default:
			return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to check in")
		}
	}

	return respondData(c, fiber.StatusCreated, "Checked in successfully", record)
}

// CheckOut godoc
// @Summary Check Out
// @Description Completes today's attendance record and derives work hours and overtime
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CheckOutPayload true "Check-out data"
// @Success 200 {object} models.APIResponse{data=models.Attendance} "Checked out"
// @Failure 404 {object} models.APIResponse "No check-in found for today"
// @Failure 409 {object} models.APIResponse "Already checked out today"
// @Router /attendance/checkout [post]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	var payload models.CheckOutPayload
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

	record, err := h.recordCheckOut(ctx, employeeID, payload.Location, payload.Notes)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return respondError(c, fiber.StatusNotFound, models.ErrNotFound, "No check-in found for today")
		case errors.Is(err, errAlreadyCheckedOut):
			return respondError(c, fiber.StatusConflict, models.ErrInvalidState, "Already checked out today")
		default:
			return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to check out")
		}
	}

	return respondData(c, fiber.StatusOK, "Checked out successfully", record)
}

// GetToday godoc
// @Summary Today's Attendance
// @Description Returns today's attendance record for an employee, or null
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param employeeId query string true "Employee ID"
// @Success 200 {object} models.APIResponse "Today's record"
// @Router /attendance/today [get]
func (h *AttendanceHandler) GetToday(c *fiber.Ctx) error {
	employeeID, err := primitive.ObjectIDFromHex(c.Query("employeeId"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid employee id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	record, err := h.attendanceRepo.FindByEmployeeAndDate(ctx, employeeID, todayDate())
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch attendance")
	}

	return respondData(c, fiber.StatusOK, "", record)
}

// GetHistory godoc
// @Summary Attendance History
// @Description Returns an employee's attendance records, newest first
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} models.APIResponse{data=[]models.Attendance} "Attendance history"
// @Router /attendance/user/{id} [get]
func (h *AttendanceHandler) GetHistory(c *fiber.Ctx) error {
	employeeID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid employee id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	records, err := h.attendanceRepo.FindByEmployee(ctx, employeeID, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch attendance history")
	}

	return respondList(c, len(records), records)
}

// GetReport godoc
// @Summary Attendance Report
// @Description Per-employee attendance totals over a date range, optionally filtered by department
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Param department query string false "Filter by department"
// @Success 200 {object} models.APIResponse{data=[]models.AttendanceReportRow} "Attendance report"
// @Router /attendance/report [get]
func (h *AttendanceHandler) GetReport(c *fiber.Ctx) error {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate == "" || endDate == "" {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "startDate and endDate are required")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	employees, err := h.employeeRepo.FindActive(ctx, c.Query("department"))
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to list employees")
	}

	employeeIDs := make([]primitive.ObjectID, 0, len(employees))
	for _, employee := range employees {
		employeeIDs = append(employeeIDs, employee.ID)
	}

	records, err := h.attendanceRepo.FindInRange(ctx, startDate, endDate, employeeIDs)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch attendance records")
	}

	report := buildAttendanceReport(employees, records)
	return respondList(c, len(report), report)
}

// GenerateQRCode godoc
// @Summary Attendance QR Code
// @Description Issues today's kiosk QR code as a base64 PNG, valid until 23:00
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "QR code image and expiry"
// @Router /attendance/qrcode [get]
func (h *AttendanceHandler) GenerateQRCode(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	today := todayDate()
	qrCode, err := h.attendanceRepo.FindActiveQRCodeByDate(ctx, today)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to look up QR code")
	}

	if qrCode == nil {
		now := time.Now()
		qrCode = &models.QRCode{
			ID:        primitive.NewObjectID(),
			Code:      uuid.NewString(),
			Date:      today,
			ExpiresAt: time.Date(now.Year(), now.Month(), now.Day(), qrExpiryHour, 0, 0, 0, now.Location()),
			UsedBy:    []primitive.ObjectID{},
			CreatedAt: now,
		}
		if err := h.attendanceRepo.CreateQRCode(ctx, qrCode); err != nil {
			return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to create QR code")
		}
	}

	png, err := qrcode.Encode(qrCode.Code, qrcode.Medium, 256)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to render QR code")
	}

	return respondData(c, fiber.StatusOK, "", fiber.Map{
		"qr_image":   "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		"date":       qrCode.Date,
		"expires_at": qrCode.ExpiresAt,
	})
}

// ScanQRCode godoc
// @Summary Scan Attendance QR Code
// @Description First scan of the day checks the employee in, second scan checks out
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.QRCodeScanPayload true "Scanned code"
// @Success 200 {object} models.APIResponse{data=models.Attendance} "Scan processed"
// @Failure 404 {object} models.APIResponse "QR code not recognized"
// @Failure 409 {object} models.APIResponse "Attendance already complete for today"
// @Router /attendance/scan [post]
func (h *AttendanceHandler) ScanQRCode(c *fiber.Ctx) error {
	var payload models.QRCodeScanPayload
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

	qrCode, err := h.attendanceRepo.FindQRCodeByValue(ctx, payload.Code)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to look up QR code")
	}
	if qrCode == nil {
		return respondError(c, fiber.StatusNotFound, models.ErrNotFound, "QR code not recognized")
	}
	if qrCode.Date != todayDate() || time.Now().After(qrCode.ExpiresAt) {
		return respondError(c, fiber.StatusConflict, models.ErrInvalidState, "QR code has expired")
	}

	existing, err := h.attendanceRepo.FindByEmployeeAndDate(ctx, employeeID, todayDate())
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch attendance")
	}

	var record *models.Attendance
	var message string
	switch {
	case existing == nil:
		record, err = h.recordCheckIn(ctx, employeeID, "Kiosk", "")
		message = "Checked in successfully"
	case existing.CheckOutTime == nil:
		record, err = h.recordCheckOut(ctx, employeeID, "Kiosk", "")
		message = "Checked out successfully"
	default:
		return respondError(c, fiber.StatusConflict, models.ErrInvalidState, "Attendance already complete for today")
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return respondError(c, fiber.StatusNotFound, models.ErrNotFound, "Employee not found")
		}
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to process scan")
	}

	if err := h.attendanceRepo.MarkQRCodeAsUsed(ctx, qrCode.ID, employeeID); err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to record scan")
	}

	return respondData(c, fiber.StatusOK, message, record)
}

var errAlreadyCheckedOut = errors.New("already checked out")

func (h *AttendanceHandler) recordCheckIn(ctx context.Context, employeeID primitive.ObjectID, location, notes string) (*models.Attendance, error) {
	employee, err := h.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, repository.ErrNotFound
	}

	now := time.Now()
	isLate, lateBy := lateness(now)
	status := models.AttendancePresent
	if isLate {
		status = models.AttendanceLate
	}

	record := &models.Attendance{
		EmployeeID:      employeeID,
		Date:            todayDate(),
		CheckInTime:     now,
		CheckInLocation: location,
		CheckInNotes:    notes,
		Status:          status,
		IsLate:          isLate,
		LateBy:          lateBy,
	}
	if err := h.attendanceRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (h *AttendanceHandler) recordCheckOut(ctx context.Context, employeeID primitive.ObjectID, location, notes string) (*models.Attendance, error) {
	record, err := h.attendanceRepo.FindByEmployeeAndDate(ctx, employeeID, todayDate())
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, repository.ErrNotFound
	}
	if record.CheckOutTime != nil {
		return nil, errAlreadyCheckedOut
	}

	checkOut := time.Now()
	workHours := computeWorkHours(record.CheckInTime, checkOut)
	overtime := overtimeMinutes(record.CheckInTime, checkOut)
	if err := h.attendanceRepo.SetCheckOut(ctx, record.ID, checkOut, location, notes, workHours, overtime); err != nil {
		return nil, err
	}

	record.CheckOutTime = &checkOut
	record.CheckOutLocation = location
	record.CheckOutNotes = notes
	record.WorkHours = workHours
	record.Overtime = overtime
	return record, nil
}

func todayDate() string {
	return time.Now().Format("2006-01-02")
}

// computeWorkHours is the span between the two stamps in hours, rounded
// to 2 decimals.
func computeWorkHours(checkIn, checkOut time.Time) float64 {
	if !checkOut.After(checkIn) {
		return 0
	}
	hours := checkOut.Sub(checkIn).Hours()
	return math.Round(hours*100) / 100
}

// lateness compares the check-in stamp against the workday start on the
// same calendar day and reports the overshoot in whole minutes.
func lateness(checkIn time.Time) (bool, int) {
	workdayStart := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), workdayStartHour, 0, 0, 0, checkIn.Location())
	if !checkIn.After(workdayStart) {
		return false, 0
	}
	return true, int(checkIn.Sub(workdayStart).Minutes())
}

// overtimeMinutes is time worked beyond the standard 8 hour day, in
// whole minutes.
func overtimeMinutes(checkIn, checkOut time.Time) int {
	if !checkOut.After(checkIn) {
		return 0
	}
	worked := int(checkOut.Sub(checkIn).Minutes())
	if worked <= standardDayMinutes {
		return 0
	}
	return worked - standardDayMinutes
}

func buildAttendanceReport(employees []models.Employee, records []models.Attendance) []models.AttendanceReportRow {
	byEmployee := make(map[primitive.ObjectID][]models.Attendance)
	for _, record := range records {
		byEmployee[record.EmployeeID] = append(byEmployee[record.EmployeeID], record)
	}

	report := make([]models.AttendanceReportRow, 0, len(employees))
	for _, employee := range employees {
		rows := byEmployee[employee.ID]
		if len(rows) == 0 {
			continue
		}

		row := models.AttendanceReportRow{
			EmployeeID:   employee.ID,
			EmployeeName: employee.FirstName + " " + employee.LastName,
			Department:   employee.Department,
		}
		for _, record := range rows {
			switch record.Status {
			case models.AttendancePresent, models.AttendanceLate:
				row.TotalPresent++
			case models.AttendanceAbsent:
				row.TotalAbsent++
			}
			if record.IsLate {
				row.TotalLate++
			}
			row.TotalWorkHours += record.WorkHours
			row.TotalOvertime += record.Overtime
		}
		row.TotalWorkHours = math.Round(row.TotalWorkHours*100) / 100
		report = append(report, row)
	}
	return report
}

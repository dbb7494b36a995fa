package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"hrms/models"
	util "hrms/pkg/utils"
)

type CalendarHandler struct {
	workdayRule string
}

func NewCalendarHandler(workdayRule string) *CalendarHandler {
	return &CalendarHandler{
		workdayRule: workdayRule,
	}
}

// GetWorkdays godoc
// @Summary Company Workdays
// @Description Expands the configured workday recurrence rule over a date range
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Param start query string true "Range start (YYYY-MM-DD)"
// @Param end query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} models.APIResponse "Workday dates"
// @Failure 400 {object} models.APIResponse "Invalid range"
// @Router /calendar/workdays [get]
func (h *CalendarHandler) GetWorkdays(c *fiber.Ctx) error {
	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid start date")
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid end date")
	}
	if end.Before(start) {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "End date is before start date")
	}

	workdays, err := util.ExpandWorkdays(h.workdayRule, start, end)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to expand workday rule")
	}

	return respondList(c, len(workdays), workdays)
}

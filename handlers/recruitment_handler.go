package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrms/models"
	"hrms/pkg/paseto"
	util "hrms/pkg/utils"
	"hrms/repository"
)

// Application statuses.
const (
	ApplicationNew                = "New"
	ApplicationInterviewScheduled = "Interview Scheduled"
)

type RecruitmentHandler struct {
	recruitmentRepo *repository.RecruitmentRepository
}

func NewRecruitmentHandler(recruitmentRepo *repository.RecruitmentRepository) *RecruitmentHandler {
	return &RecruitmentHandler{
		recruitmentRepo: recruitmentRepo,
	}
}

// CreateJob godoc
// @Summary Create Job Posting
// @Description Publishes a new job posting with status Open
// @Tags Recruitment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param job body models.JobCreatePayload true "Job posting"
// @Success 201 {object} models.APIResponse{data=models.Recruitment} "Job posted"
// @Router /recruitment/jobs [post]
func (h *RecruitmentHandler) CreateJob(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, models.ErrUnauthorized, "Not authenticated")
	}

	var payload models.JobCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid request body")
	}
	if fieldErrors := util.ValidateStruct(payload); fieldErrors != nil {
		return respondValidation(c, fieldErrors)
	}

	job := &models.Recruitment{
		JobTitle:            payload.JobTitle,
		Department:          payload.Department,
		Position:            payload.Position,
		JobDescription:      payload.JobDescription,
		Requirements:        payload.Requirements,
		NumberOfOpenings:    payload.NumberOfOpenings,
		EmploymentType:      payload.EmploymentType,
		SalaryRange:         payload.SalaryRange,
		Location:            payload.Location,
		PostedBy:            claims.UserID,
		ApplicationDeadline: payload.ApplicationDeadline,
		Status:              models.JobOpen,
	}
	if job.NumberOfOpenings == 0 {
		job.NumberOfOpenings = 1
	}
	if job.EmploymentType == "" {
		job.EmploymentType = "Full-time"
	}
	if payload.HiringManagerID != "" {
		hiringManagerID, err := primitive.ObjectIDFromHex(payload.HiringManagerID)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid hiring manager id")
		}
		job.HiringManagerID = &hiringManagerID
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	if err := h.recruitmentRepo.Create(ctx, job); err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to create job posting")
	}

	return respondData(c, fiber.StatusCreated, "Job posted successfully", job)
}

// GetJobs godoc
// @Summary List Job Postings
// @Description Lists job postings, newest first, with optional status/department/location filters
// @Tags Recruitment
// @Produce json
// @Param status query string false "Filter by status"
// @Param department query string false "Filter by department"
// @Param location query string false "Location substring match"
// @Success 200 {object} models.APIResponse{data=[]models.Recruitment} "Job list"
// @Router /recruitment/jobs [get]
func (h *RecruitmentHandler) GetJobs(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	jobs, err := h.recruitmentRepo.FindAll(ctx, c.Query("status"), c.Query("department"), c.Query("location"))
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to list job postings")
	}

	return respondList(c, len(jobs), jobs)
}

// GetJobByID godoc
// @Summary Get Job Posting
// @Description Fetches a single job posting
// @Tags Recruitment
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} models.APIResponse{data=models.Recruitment} "Job detail"
// @Failure 404 {object} models.APIResponse "Job not found"
// @Router /recruitment/jobs/{id} [get]
func (h *RecruitmentHandler) GetJobByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid job id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	job, err := h.recruitmentRepo.FindByID(ctx, id)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch job posting")
	}
	if job == nil {
		return respondError(c, fiber.StatusNotFound, models.ErrNotFound, "Job not found")
	}

	return respondData(c, fiber.StatusOK, "", job)
}

// UpdateJob godoc
// @Summary Update Job Posting
// @Description Applies a partial update to a job posting
// @Tags Recruitment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param job body models.JobUpdatePayload true "Fields to update"
// @Success 200 {object} models.APIResponse{data=models.Recruitment} "Updated job"
// @Failure 404 {object} models.APIResponse "Job not found"
// @Router /recruitment/jobs/{id} [put]
func (h *RecruitmentHandler) UpdateJob(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid job id")
	}

	var payload models.JobUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid request body")
	}
	if fieldErrors := util.ValidateStruct(payload); fieldErrors != nil {
		return respondValidation(c, fieldErrors)
	}

	updateData := bson.M{}
	if payload.JobTitle != "" {
		updateData["job_title"] = payload.JobTitle
	}
	if payload.JobDescription != "" {
		updateData["job_description"] = payload.JobDescription
	}
	if payload.Requirements != nil {
		updateData["requirements"] = payload.Requirements
	}
	if payload.NumberOfOpenings != nil {
		updateData["number_of_openings"] = *payload.NumberOfOpenings
	}
	if payload.EmploymentType != "" {
		updateData["employment_type"] = payload.EmploymentType
	}
	if payload.SalaryRange != nil {
		updateData["salary_range"] = payload.SalaryRange
	}
	if payload.Location != "" {
		updateData["location"] = payload.Location
	}
	if payload.ApplicationDeadline != "" {
		updateData["application_deadline"] = payload.ApplicationDeadline
	}
	if payload.Status != "" {
		updateData["status"] = payload.Status
	}
	if len(updateData) == 0 {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "No fields to update")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	updated, err := h.recruitmentRepo.Update(ctx, id, updateData)
	if err != nil {
		return respondRepoError(c, err, "Job not found", "")
	}

	return respondData(c, fiber.StatusOK, "Job updated successfully", updated)
}

// DeleteJob godoc
// @Summary Delete Job Posting
// @Description Removes a job posting and its embedded applications (admin only)
// @Tags Recruitment
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} models.APIResponse "Job deleted"
// @Failure 404 {object} models.APIResponse "Job not found"
// @Router /recruitment/jobs/{id} [delete]
func (h *RecruitmentHandler) DeleteJob(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid job id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	if err := h.recruitmentRepo.Delete(ctx, id); err != nil {
		return respondRepoError(c, err, "Job not found", "")
	}

	return respondData(c, fiber.StatusOK, "Job deleted successfully", nil)
}

// SubmitApplication godoc
// @Summary Submit Application
// @Description Adds an application to an Open job; one application per email per job
// @Tags Recruitment
// @Accept json
// @Produce json
// @Param application body models.ApplicationSubmitPayload true "Application data"
// @Success 201 {object} models.APIResponse{data=models.Application} "Application submitted"
// @Failure 404 {object} models.APIResponse "Job not found"
// @Failure 409 {object} models.APIResponse "Job not open or already applied"
// @Router /recruitment/applications [post]
func (h *RecruitmentHandler) SubmitApplication(c *fiber.Ctx) error {
	var payload models.ApplicationSubmitPayload
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid request body")
	}
	if fieldErrors := util.ValidateStruct(payload); fieldErrors != nil {
		return respondValidation(c, fieldErrors)
	}

	jobID, err := primitive.ObjectIDFromHex(payload.JobID)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid job id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	job, err := h.recruitmentRepo.FindByID(ctx, jobID)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch job posting")
	}
	if job == nil {
		return respondError(c, fiber.StatusNotFound, models.ErrNotFound, "Job not found")
	}
	if job.Status != models.JobOpen {
		return respondError(c, fiber.StatusConflict, models.ErrInvalidState, "Job is not open for applications")
	}
	for _, application := range job.Applications {
		if strings.EqualFold(application.Applicant.Email, payload.Applicant.Email) {
			return respondError(c, fiber.StatusConflict, models.ErrDuplicateEntry, "An application with this email already exists")
		}
	}

	application := &models.Application{
		ID:          uuid.NewString(),
		Applicant:   payload.Applicant,
		Resume:      payload.Resume,
		CoverLetter: payload.CoverLetter,
		Status:      ApplicationNew,
		AppliedDate: time.Now(),
		Interviews:  []models.Interview{},
		Notes:       []models.ApplicationNote{},
	}

	if err := h.recruitmentRepo.PushApplication(ctx, jobID, application); err != nil {
		return respondRepoError(c, err, "Job not found", "")
	}

	return respondData(c, fiber.StatusCreated, "Application submitted successfully", application)
}

// GetApplications godoc
// @Summary List Applications
// @Description Lists a job's applications, optionally filtered by status
// @Tags Recruitment
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "Job ID"
// @Param status query string false "Filter by application status"
// @Success 200 {object} models.APIResponse{data=[]models.Application} "Application list"
// @Failure 404 {object} models.APIResponse "Job not found"
// @Router /recruitment/applications/{jobId} [get]
func (h *RecruitmentHandler) GetApplications(c *fiber.Ctx) error {
	jobID, err := primitive.ObjectIDFromHex(c.Params("jobId"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid job id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	job, err := h.recruitmentRepo.FindByID(ctx, jobID)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch job posting")
	}
	if job == nil {
		return respondError(c, fiber.StatusNotFound, models.ErrNotFound, "Job not found")
	}

	applications := job.Applications
	if status := c.Query("status"); status != "" {
		filtered := make([]models.Application, 0, len(applications))
		for _, application := range applications {
			if application.Status == status {
				filtered = append(filtered, application)
			}
		}
		applications = filtered
	}

	return respondList(c, len(applications), applications)
}

// UpdateApplication godoc
// @Summary Update Application
// @Description Updates an application's status and/or appends a note
// @Tags Recruitment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "Job ID"
// @Param appId path string true "Application ID"
// @Param payload body models.ApplicationUpdatePayload true "Status and/or note"
// @Success 200 {object} models.APIResponse{data=models.Application} "Updated application"
// @Failure 404 {object} models.APIResponse "Job or application not found"
// @Router /recruitment/applications/{jobId}/{appId} [put]
func (h *RecruitmentHandler) UpdateApplication(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, models.ErrUnauthorized, "Not authenticated")
	}

	var payload models.ApplicationUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid request body")
	}
	if fieldErrors := util.ValidateStruct(payload); fieldErrors != nil {
		return respondValidation(c, fieldErrors)
	}
	if payload.Status == "" && payload.Note == "" {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "No fields to update")
	}

	actorID := claims.UserID
	return h.editApplication(c, func(application *models.Application) error {
		if payload.Status != "" {
			application.Status = payload.Status
		}
		if payload.Note != "" {
			application.Notes = append(application.Notes, models.ApplicationNote{
				Note:      payload.Note,
				AddedBy:   actorID,
				AddedDate: time.Now(),
			})
		}
		return nil
	}, "Application updated successfully")
}

// ScheduleInterview godoc
// @Summary Schedule Interview
// @Description Appends a Scheduled interview round and moves the application to Interview Scheduled
// @Tags Recruitment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "Job ID"
// @Param appId path string true "Application ID"
// @Param interview body models.InterviewSchedulePayload true "Interview data"
// @Success 200 {object} models.APIResponse{data=models.Application} "Interview scheduled"
// @Failure 404 {object} models.APIResponse "Job or application not found"
// @Router /recruitment/applications/{jobId}/{appId}/interview [post]
func (h *RecruitmentHandler) ScheduleInterview(c *fiber.Ctx) error {
	var payload models.InterviewSchedulePayload
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid request body")
	}
	if fieldErrors := util.ValidateStruct(payload); fieldErrors != nil {
		return respondValidation(c, fieldErrors)
	}

	date, err := time.Parse(time.RFC3339, payload.Date)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid interview date")
	}

	interviewers := make([]primitive.ObjectID, 0, len(payload.Interviewers))
	for _, rawID := range payload.Interviewers {
		interviewerID, err := primitive.ObjectIDFromHex(rawID)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid interviewer id")
		}
		interviewers = append(interviewers, interviewerID)
	}

	return h.editApplication(c, func(application *models.Application) error {
		round := payload.Round
		if round == 0 {
			round = len(application.Interviews) + 1
		}
		application.Interviews = append(application.Interviews, models.Interview{
			ID:           uuid.NewString(),
			Round:        round,
			Type:         payload.Type,
			Date:         &date,
			Interviewers: interviewers,
			Status:       "Scheduled",
		})
		application.Status = ApplicationInterviewScheduled
		return nil
	}, "Interview scheduled successfully")
}

// editApplication loads the job, applies the edit to the matching
// embedded application and writes the array back.
func (h *RecruitmentHandler) editApplication(c *fiber.Ctx, edit func(*models.Application) error, message string) error {
	jobID, err := primitive.ObjectIDFromHex(c.Params("jobId"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, "Invalid job id")
	}
	appID := c.Params("appId")

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	job, err := h.recruitmentRepo.FindByID(ctx, jobID)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, models.ErrServer, "Failed to fetch job posting")
	}
	if job == nil {
		return respondError(c, fiber.StatusNotFound, models.ErrNotFound, "Job not found")
	}

	index := -1
	for i := range job.Applications {
		if job.Applications[i].ID == appID {
			index = i
			break
		}
	}
	if index < 0 {
		return respondError(c, fiber.StatusNotFound, models.ErrNotFound, "Application not found")
	}

	if err := edit(&job.Applications[index]); err != nil {
		return respondError(c, fiber.StatusBadRequest, models.ErrValidation, err.Error())
	}

	if err := h.recruitmentRepo.SetApplications(ctx, jobID, job.Applications); err != nil {
		return respondRepoError(c, err, "Job not found", "")
	}

	return respondData(c, fiber.StatusOK, message, job.Applications[index])
}

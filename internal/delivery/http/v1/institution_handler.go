package v1

import (
	"net/http"
	"time"

	"mockzen-backend/internal/delivery/http/response"
	"mockzen-backend/internal/domain"
	"mockzen-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type InstitutionHandler struct {
	institutionUC domain.InstitutionUsecase
	scheduleUC    domain.ScheduleUsecase
}

// NewInstitutionHandler registers the institution admin surface. Role checks
// live in the usecases; a non-admin caller gets 403 from there.
func NewInstitutionHandler(protected *gin.RouterGroup, institutionUC domain.InstitutionUsecase, scheduleUC domain.ScheduleUsecase) {
	handler := &InstitutionHandler{institutionUC: institutionUC, scheduleUC: scheduleUC}

	inst := protected.Group("/institution")
	{
		inst.GET("/batches", handler.ListBatches)
		inst.POST("/batches", handler.CreateBatch)
		inst.GET("/members", handler.ListMembers)
		inst.POST("/members", handler.AddMember)
		inst.DELETE("/members/:userId", handler.RemoveMember)
		inst.PUT("/members/:userId/role", handler.UpdateMemberRole)
		inst.GET("/invite-code", handler.InviteCode)
		inst.GET("/stats", handler.Stats)
		inst.GET("/credits", handler.Credits)
		inst.GET("/schedules", handler.ListSchedules)
		inst.POST("/schedules", handler.CreateSchedule)
		inst.DELETE("/schedules/:scheduleId", handler.DeleteSchedule)
	}
}

type CreateBatchRequest struct {
	Name        string `json:"name" binding:"required,valid_name"`
	Description string `json:"description"`
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type CreateScheduleRequest struct {
	MemberID      string     `json:"memberId" binding:"required"`
	Course        string     `json:"course" binding:"required"`
	Difficulty    string     `json:"difficulty" binding:"omitempty,difficulty"`
	ScheduledDate time.Time  `json:"scheduledDate" binding:"required"`
	Deadline      *time.Time `json:"deadline"`
	Duration      int        `json:"duration"`
}

// ListBatches godoc
// @Summary      List the admin's institution batches
// @Tags         institution
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /institution/batches [get]
// @Security     BearerAuth
func (h *InstitutionHandler) ListBatches(c *gin.Context) {
	adminID := c.GetString(string(domain.KeyUserID))

	batches, err := h.institutionUC.ListBatches(c.Request.Context(), adminID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Batches", gin.H{"batches": batches})
}

// CreateBatch godoc
// @Summary      Create a batch with a generated join code
// @Tags         institution
// @Accept       json
// @Produce      json
// @Param        batch  body  CreateBatchRequest  true  "Batch JSON"
// @Success      201  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /institution/batches [post]
// @Security     BearerAuth
func (h *InstitutionHandler) CreateBatch(c *gin.Context) {
	var req CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	adminID := c.GetString(string(domain.KeyUserID))

	batch, err := h.institutionUC.CreateBatch(c.Request.Context(), adminID, req.Name, req.Description)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Batch created", batch)
}

// ListMembers godoc
// @Summary      List institution members
// @Tags         institution
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /institution/members [get]
// @Security     BearerAuth
func (h *InstitutionHandler) ListMembers(c *gin.Context) {
	adminID := c.GetString(string(domain.KeyUserID))

	members, err := h.institutionUC.ListMembers(c.Request.Context(), adminID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Members", gin.H{"members": members})
}

// AddMember godoc
// @Summary      Add a member by email
// @Tags         institution
// @Accept       json
// @Produce      json
// @Param        member  body  AddMemberRequest  true  "Member JSON"
// @Success      200  {object}  response.Response
// @Router       /institution/members [post]
// @Security     BearerAuth
func (h *InstitutionHandler) AddMember(c *gin.Context) {
	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	adminID := c.GetString(string(domain.KeyUserID))

	msg, err := h.institutionUC.AddMemberByEmail(c.Request.Context(), adminID, req.Email, req.Role)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, msg, nil)
}

// RemoveMember godoc
// @Summary      Remove a member from the institution
// @Tags         institution
// @Produce      json
// @Param        userId  path  string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /institution/members/{userId} [delete]
// @Security     BearerAuth
func (h *InstitutionHandler) RemoveMember(c *gin.Context) {
	adminID := c.GetString(string(domain.KeyUserID))

	if err := h.institutionUC.RemoveMember(c.Request.Context(), adminID, c.Param("userId")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Member removed", nil)
}

// UpdateMemberRole godoc
// @Summary      Change a member's role
// @Tags         institution
// @Accept       json
// @Produce      json
// @Param        userId  path  string             true  "User ID"
// @Param        role    body  UpdateRoleRequest  true  "Role JSON"
// @Success      200  {object}  response.Response
// @Router       /institution/members/{userId}/role [put]
// @Security     BearerAuth
func (h *InstitutionHandler) UpdateMemberRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	adminID := c.GetString(string(domain.KeyUserID))

	if err := h.institutionUC.UpdateMemberRole(c.Request.Context(), adminID, c.Param("userId"), req.Role); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Role updated", nil)
}

// InviteCode godoc
// @Summary      Get (or lazily create) the institution invite code
// @Tags         institution
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /institution/invite-code [get]
// @Security     BearerAuth
func (h *InstitutionHandler) InviteCode(c *gin.Context) {
	adminID := c.GetString(string(domain.KeyUserID))

	code, err := h.institutionUC.GetOrCreateInviteCode(c.Request.Context(), adminID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Invite code", gin.H{"inviteCode": code})
}

// Stats godoc
// @Summary      Institution dashboard summary
// @Tags         institution
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /institution/stats [get]
// @Security     BearerAuth
func (h *InstitutionHandler) Stats(c *gin.Context) {
	adminID := c.GetString(string(domain.KeyUserID))

	stats, err := h.institutionUC.Stats(c.Request.Context(), adminID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Institution stats", stats)
}

// Credits godoc
// @Summary      Institution credit balance and recent transactions
// @Tags         institution
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /institution/credits [get]
// @Security     BearerAuth
func (h *InstitutionHandler) Credits(c *gin.Context) {
	adminID := c.GetString(string(domain.KeyUserID))

	balance, txns, err := h.institutionUC.Credits(c.Request.Context(), adminID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Institution credits", gin.H{
		"credits":      balance,
		"transactions": txns,
	})
}

// ListSchedules godoc
// @Summary      List scheduled interviews for the institution
// @Tags         institution
// @Produce      json
// @Param        institutionId  query  string  false  "Institution ID (defaults to the caller's)"
// @Success      200  {object}  response.Response
// @Router       /institution/schedules [get]
// @Security     BearerAuth
func (h *InstitutionHandler) ListSchedules(c *gin.Context) {
	callerID := c.GetString(string(domain.KeyUserID))

	schedules, err := h.scheduleUC.ListByInstitution(c.Request.Context(), callerID, c.Query("institutionId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Scheduled interviews", gin.H{"schedules": schedules})
}

// CreateSchedule godoc
// @Summary      Schedule an interview for a member
// @Tags         institution
// @Accept       json
// @Produce      json
// @Param        schedule  body  CreateScheduleRequest  true  "Schedule JSON"
// @Success      201  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /institution/schedules [post]
// @Security     BearerAuth
func (h *InstitutionHandler) CreateSchedule(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	adminID := c.GetString(string(domain.KeyUserID))

	err := h.scheduleUC.Create(c.Request.Context(), adminID, domain.CreateScheduleInput{
		MemberID:      req.MemberID,
		Course:        req.Course,
		Difficulty:    req.Difficulty,
		ScheduledDate: req.ScheduledDate,
		Deadline:      req.Deadline,
		Duration:      req.Duration,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Interview scheduled", nil)
}

// DeleteSchedule godoc
// @Summary      Cancel a scheduled interview
// @Tags         institution
// @Produce      json
// @Param        scheduleId  path  string  true  "Schedule ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /institution/schedules/{scheduleId} [delete]
// @Security     BearerAuth
func (h *InstitutionHandler) DeleteSchedule(c *gin.Context) {
	adminID := c.GetString(string(domain.KeyUserID))

	if err := h.scheduleUC.Delete(c.Request.Context(), adminID, c.Param("scheduleId")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Schedule cancelled", nil)
}

package v1

import (
	"net/http"

	"mockzen-backend/internal/delivery/http/response"
	"mockzen-backend/internal/domain"
	"mockzen-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type MembershipHandler struct {
	membershipUC domain.MembershipUsecase
	scheduleUC   domain.ScheduleUsecase
}

func NewMembershipHandler(protected *gin.RouterGroup, membershipUC domain.MembershipUsecase, scheduleUC domain.ScheduleUsecase) {
	handler := &MembershipHandler{membershipUC: membershipUC, scheduleUC: scheduleUC}

	protected.POST("/batches/join", handler.JoinBatch)
	protected.POST("/institutions/join", handler.JoinInstitution)
	protected.GET("/user/scheduled-interviews", handler.ListScheduled)
}

type JoinBatchRequest struct {
	JoinCode string `json:"joinCode" binding:"required,join_code"`
}

type JoinInstitutionRequest struct {
	InviteCode string `json:"inviteCode" binding:"required,join_code"`
}

// JoinBatch godoc
// @Summary      Join a batch by code
// @Description  Joining a batch also enrolls the caller in its institution
// @Tags         membership
// @Accept       json
// @Produce      json
// @Param        request  body  JoinBatchRequest  true  "Join code"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /batches/join [post]
// @Security     BearerAuth
func (h *MembershipHandler) JoinBatch(c *gin.Context) {
	var req JoinBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("A join code is required"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	result, err := h.membershipUC.JoinBatch(c.Request.Context(), userID, req.JoinCode)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Joined batch", result)
}

// JoinInstitution godoc
// @Summary      Join an institution by invite code
// @Tags         membership
// @Accept       json
// @Produce      json
// @Param        request  body  JoinInstitutionRequest  true  "Invite code"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /institutions/join [post]
// @Security     BearerAuth
func (h *MembershipHandler) JoinInstitution(c *gin.Context) {
	var req JoinInstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("An invite code is required"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	result, err := h.membershipUC.JoinInstitution(c.Request.Context(), userID, req.InviteCode)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Joined institution", result)
}

// ListScheduled godoc
// @Summary      List pending scheduled interviews assigned to the caller
// @Tags         membership
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /user/scheduled-interviews [get]
// @Security     BearerAuth
func (h *MembershipHandler) ListScheduled(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	schedules, err := h.scheduleUC.ListForMember(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Scheduled interviews", gin.H{"schedules": schedules})
}

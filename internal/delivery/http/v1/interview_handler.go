package v1

import (
	"errors"
	"net/http"

	"mockzen-backend/internal/delivery/http/response"
	"mockzen-backend/internal/domain"
	"mockzen-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

func NewInterviewHandler(protected *gin.RouterGroup, interviewUC domain.InterviewUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	interviews := protected.Group("/interviews")
	{
		interviews.POST("/start", handler.Start)
		interviews.POST("/:id/complete", handler.Complete)
		interviews.POST("/start-scheduled/:scheduleId", handler.StartScheduled)
	}
}

type StartInterviewRequest struct {
	InterviewType  string `json:"interviewType"`
	Duration       int    `json:"duration" binding:"omitempty,gt=0"`
	Difficulty     string `json:"difficulty" binding:"omitempty,difficulty"`
	CustomScenario string `json:"customScenario"`
	UserName       string `json:"userName" binding:"omitempty,valid_name"`
}

// Start godoc
// @Summary      Start an interview session
// @Description  Deducts credits based on duration and opens a new session
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        session  body      StartInterviewRequest  true  "Session JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      402  {object}  response.Response
// @Router       /interviews/start [post]
// @Security     BearerAuth
func (h *InterviewHandler) Start(c *gin.Context) {
	var req StartInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	session, err := h.interviewUC.StartSession(c.Request.Context(), domain.StartSessionInput{
		UserID:         c.GetString(string(domain.KeyUserID)),
		UserEmail:      c.GetString(string(domain.KeyUserEmail)),
		UserName:       req.UserName,
		InterviewType:  req.InterviewType,
		Referer:        c.GetHeader("Referer"),
		Duration:       req.Duration,
		Difficulty:     req.Difficulty,
		CustomScenario: req.CustomScenario,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Interview session started", session)
}

// Complete godoc
// @Summary      Complete an interview session
// @Tags         interviews
// @Produce      json
// @Param        id  path  string  true  "Session ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id}/complete [post]
// @Security     BearerAuth
func (h *InterviewHandler) Complete(c *gin.Context) {
	sessionID := c.Param("id")
	userID := c.GetString(string(domain.KeyUserID))

	session, err := h.interviewUC.CompleteSession(c.Request.Context(), sessionID, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview session completed", session)
}

// StartScheduled godoc
// @Summary      Start a scheduled interview
// @Description  Opens (or resumes) the session linked to a schedule assigned to the caller
// @Tags         interviews
// @Produce      json
// @Param        scheduleId  path  string  true  "Schedule ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /interviews/start-scheduled/{scheduleId} [post]
// @Security     BearerAuth
func (h *InterviewHandler) StartScheduled(c *gin.Context) {
	scheduleID := c.Param("scheduleId")
	userID := c.GetString(string(domain.KeyUserID))

	result, err := h.interviewUC.StartScheduled(c.Request.Context(), userID, scheduleID)
	if err != nil {
		// A completed schedule reports the interview it already produced so
		// the frontend can link straight to the results page.
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusConflict && result != nil {
			response.Error(c, appErr.Code, appErr.Message, gin.H{"interviewId": result.InterviewID})
			return
		}
		c.Error(err)
		return
	}

	msg := "Interview session started"
	if result.AlreadyStarted {
		msg = "Interview session resumed"
	}
	response.Success(c, http.StatusOK, msg, result)
}

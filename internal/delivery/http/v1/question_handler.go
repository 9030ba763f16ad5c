package v1

import (
	"net/http"

	"mockzen-backend/internal/delivery/http/response"
	"mockzen-backend/internal/domain"
	"mockzen-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionUC domain.QuestionUsecase
}

// NewQuestionHandler registers the LLM-backed endpoints. The ai group
// carries a per-user rate limit on top of auth.
func NewQuestionHandler(ai *gin.RouterGroup, questionUC domain.QuestionUsecase) {
	handler := &QuestionHandler{questionUC: questionUC}

	ai.POST("/interviews/:id/question", handler.GenerateQuestion)
	ai.POST("/interviews/answer/evaluate", handler.EvaluateAnswer)
}

type GenerateQuestionRequest struct {
	InterviewType   string               `json:"interviewType" binding:"required"`
	Difficulty      string               `json:"difficulty" binding:"omitempty,difficulty"`
	QuestionNumber  int                  `json:"questionNumber" binding:"required,gt=0"`
	QuestionCount   int                  `json:"questionCount" binding:"required,gt=0"`
	CustomScenario  string               `json:"customScenario"`
	PreviousAnswers []domain.PriorAnswer `json:"previousAnswers"`
}

type EvaluateAnswerRequest struct {
	InterviewType string `json:"interviewType" binding:"required"`
	Question      string `json:"question" binding:"required"`
	Answer        string `json:"answer" binding:"required"`
}

// GenerateQuestion godoc
// @Summary      Generate the next interview question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        id       path  string                   true  "Session ID"
// @Param        request  body  GenerateQuestionRequest  true  "Question context"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /interviews/{id}/question [post]
// @Security     BearerAuth
func (h *QuestionHandler) GenerateQuestion(c *gin.Context) {
	var req GenerateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "intermediate"
	}

	question, err := h.questionUC.GenerateQuestion(c.Request.Context(), domain.QuestionRequest{
		InterviewID:     c.Param("id"),
		InterviewType:   req.InterviewType,
		Difficulty:      difficulty,
		QuestionNumber:  req.QuestionNumber,
		QuestionCount:   req.QuestionCount,
		CustomScenario:  req.CustomScenario,
		PreviousAnswers: req.PreviousAnswers,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Question generated", gin.H{"question": question})
}

// EvaluateAnswer godoc
// @Summary      Evaluate an interview answer
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        request  body  EvaluateAnswerRequest  true  "Answer JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /interviews/answer/evaluate [post]
// @Security     BearerAuth
func (h *QuestionHandler) EvaluateAnswer(c *gin.Context) {
	var req EvaluateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	feedback, err := h.questionUC.EvaluateAnswer(c.Request.Context(), req.InterviewType, req.Question, req.Answer)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Answer evaluated", feedback)
}

package v1

import (
	"net/http"

	"mockzen-backend/internal/delivery/http/response"
	"mockzen-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CreditHandler struct {
	creditUC domain.CreditUsecase
}

func NewCreditHandler(protected *gin.RouterGroup, creditUC domain.CreditUsecase) {
	handler := &CreditHandler{creditUC: creditUC}

	user := protected.Group("/user")
	{
		user.GET("/credits", handler.GetCredits)
		user.POST("/ensure-credits", handler.EnsureCredits)
		user.GET("/credits/transactions", handler.ListTransactions)
	}
}

// GetCredits godoc
// @Summary      Get the caller's credit balance
// @Tags         credits
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /user/credits [get]
// @Security     BearerAuth
func (h *CreditHandler) GetCredits(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	balance, err := h.creditUC.GetBalance(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Credit balance", gin.H{"credits": balance})
}

// EnsureCredits godoc
// @Summary      Ensure the caller has a credit balance row
// @Description  Grants the one-time welcome bonus when no balance exists yet
// @Tags         credits
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /user/ensure-credits [post]
// @Security     BearerAuth
func (h *CreditHandler) EnsureCredits(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	balance, err := h.creditUC.EnsureInitialBalance(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Credit balance ready", gin.H{"credits": balance})
}

// ListTransactions godoc
// @Summary      List the caller's recent credit transactions
// @Tags         credits
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /user/credits/transactions [get]
// @Security     BearerAuth
func (h *CreditHandler) ListTransactions(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	txns, err := h.creditUC.ListTransactions(c.Request.Context(), userID, 100)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Credit transactions", gin.H{"transactions": txns})
}

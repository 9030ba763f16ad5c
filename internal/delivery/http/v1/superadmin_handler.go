package v1

import (
	"net/http"

	"mockzen-backend/internal/delivery/http/response"
	"mockzen-backend/internal/domain"
	"mockzen-backend/pkg/apperror"
	"mockzen-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type SuperAdminHandler struct {
	superAdminUC domain.SuperAdminUsecase
}

// NewSuperAdminHandler registers the real admin surface. The admin group is
// mounted under an unguessable path and already carries the super_admin
// role check plus a strict rate limit.
func NewSuperAdminHandler(admin *gin.RouterGroup, superAdminUC domain.SuperAdminUsecase) {
	handler := &SuperAdminHandler{superAdminUC: superAdminUC}

	admin.GET("/institutions", handler.ListInstitutions)
	admin.POST("/institutions", handler.CreateInstitution)
	admin.GET("/institutions/:id/credits", handler.InstitutionCredits)
	admin.POST("/institutions/:id/credits", handler.AdjustInstitutionCredits)
	admin.GET("/users/:id/credits", handler.UserCredits)
	admin.POST("/users/:id/credits", handler.AdjustUserCredits)
}

type CreateInstitutionRequest struct {
	Name        string `json:"name" binding:"required,valid_name"`
	EmailDomain string `json:"emailDomain" binding:"required,fqdn"`
}

// AdjustCreditsRequest accepts either a delta (amount) or an absolute
// target (setTo). Providing neither is a 400.
type AdjustCreditsRequest struct {
	Amount *int `json:"amount"`
	SetTo  *int `json:"setTo"`
}

// ListInstitutions godoc
// @Summary      List institutions with member counts and balances
// @Tags         superadmin
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /institutions [get]
// @Security     BearerAuth
func (h *SuperAdminHandler) ListInstitutions(c *gin.Context) {
	institutions, err := h.superAdminUC.ListInstitutions(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Institutions", gin.H{"institutions": institutions})
}

// CreateInstitution godoc
// @Summary      Create an institution
// @Tags         superadmin
// @Accept       json
// @Produce      json
// @Param        institution  body  CreateInstitutionRequest  true  "Institution JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /institutions [post]
// @Security     BearerAuth
func (h *SuperAdminHandler) CreateInstitution(c *gin.Context) {
	var req CreateInstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	inst, err := h.superAdminUC.CreateInstitution(c.Request.Context(), req.Name, req.EmailDomain)
	if err != nil {
		c.Error(err)
		return
	}

	h.audit(c, "create_institution", map[string]interface{}{"institution_id": inst.ID})
	response.Success(c, http.StatusCreated, "Institution created", inst)
}

// InstitutionCredits godoc
// @Summary      Institution credit balance and ledger
// @Tags         superadmin
// @Produce      json
// @Param        id  path  string  true  "Institution ID"
// @Success      200  {object}  response.Response
// @Router       /institutions/{id}/credits [get]
// @Security     BearerAuth
func (h *SuperAdminHandler) InstitutionCredits(c *gin.Context) {
	balance, txns, err := h.superAdminUC.InstitutionCredits(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Institution credits", gin.H{
		"credits":      balance,
		"transactions": txns,
	})
}

// AdjustInstitutionCredits godoc
// @Summary      Adjust an institution's credit balance
// @Description  amount applies a delta; setTo writes an absolute balance
// @Tags         superadmin
// @Accept       json
// @Produce      json
// @Param        id       path  string                true  "Institution ID"
// @Param        request  body  AdjustCreditsRequest  true  "Adjustment JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /institutions/{id}/credits [post]
// @Security     BearerAuth
func (h *SuperAdminHandler) AdjustInstitutionCredits(c *gin.Context) {
	var req AdjustCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	institutionID := c.Param("id")

	balance, err := h.superAdminUC.AdjustInstitutionCredits(
		c.Request.Context(), institutionID, req.Amount, req.SetTo, domain.ReasonSuperAdminTopup)
	if err != nil {
		c.Error(err)
		return
	}

	h.audit(c, "adjust_institution_credits", map[string]interface{}{
		"institution_id": institutionID,
		"balance":        balance,
	})
	response.Success(c, http.StatusOK, "Credits updated", gin.H{"credits": balance})
}

// UserCredits godoc
// @Summary      A user's credit balance and ledger
// @Tags         superadmin
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  response.Response
// @Router       /users/{id}/credits [get]
// @Security     BearerAuth
func (h *SuperAdminHandler) UserCredits(c *gin.Context) {
	balance, txns, err := h.superAdminUC.UserCredits(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User credits", gin.H{
		"credits":      balance,
		"transactions": txns,
	})
}

// AdjustUserCredits godoc
// @Summary      Apply a delta to a user's credit balance
// @Tags         superadmin
// @Accept       json
// @Produce      json
// @Param        id       path  string                true  "User ID"
// @Param        request  body  AdjustCreditsRequest  true  "Adjustment JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /users/{id}/credits [post]
// @Security     BearerAuth
func (h *SuperAdminHandler) AdjustUserCredits(c *gin.Context) {
	var req AdjustCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	if req.Amount == nil {
		c.Error(apperror.BadRequest("Invalid payload: provide amount (delta)"))
		return
	}

	userID := c.Param("id")

	balance, err := h.superAdminUC.AdjustUserCredits(
		c.Request.Context(), userID, *req.Amount, domain.ReasonSuperAdminTopup)
	if err != nil {
		c.Error(err)
		return
	}

	h.audit(c, "adjust_user_credits", map[string]interface{}{
		"user_id": userID,
		"balance": balance,
	})
	response.Success(c, http.StatusOK, "Credits updated", gin.H{"credits": balance})
}

func (h *SuperAdminHandler) audit(c *gin.Context, action string, details map[string]interface{}) {
	requestID, _ := c.Get("RequestID")
	reqIDStr, _ := requestID.(string)
	security.DefaultLogger().LogAdminAction(
		c.Request.Context(),
		c.GetString(string(domain.KeyUserID)),
		reqIDStr,
		action,
		details,
	)
}

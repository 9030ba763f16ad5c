package v1

import (
	"net/http"

	"mockzen-backend/internal/delivery/http/response"
	"mockzen-backend/internal/domain"
	"mockzen-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	user := protected.Group("/user")
	{
		user.GET("/profile", handler.Get)
		user.PUT("/profile", handler.Update)
	}
}

type UpdateProfileRequest struct {
	Name       *string  `json:"name" binding:"omitempty,valid_name,no_emoji"`
	Bio        *string  `json:"bio" binding:"omitempty,max=2000"`
	Phone      *string  `json:"phone"`
	Location   *string  `json:"location" binding:"omitempty,max=200"`
	Skills     []string `json:"skills" binding:"omitempty,max=50"`
	Education  *string  `json:"education" binding:"omitempty,max=2000"`
	Experience *string  `json:"experience" binding:"omitempty,max=4000"`
}

// Get godoc
// @Summary      Get the caller's profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /user/profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) Get(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	user, err := h.profileUC.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile", user)
}

// Update godoc
// @Summary      Update the caller's profile
// @Description  Omitted fields are left unchanged
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        profile  body  UpdateProfileRequest  true  "Profile JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /user/profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) Update(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	user, err := h.profileUC.UpdateProfile(c.Request.Context(), userID, &domain.ProfileUpdate{
		Name:       req.Name,
		Bio:        req.Bio,
		Phone:      req.Phone,
		Location:   req.Location,
		Skills:     req.Skills,
		Education:  req.Education,
		Experience: req.Experience,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", user)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/careerportal/internal/app/models/dto"
	"github.com/yigit/careerportal/internal/app/services"
	"github.com/yigit/careerportal/internal/middleware"
)

// ProfileController handles the caller profile endpoints
type ProfileController struct {
	profileService services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
	}
}

// Me returns the signed-in caller's profile, or null
// @Summary Current user
// @Description Never fails: anonymous callers and callers without a profile get {"user": null}
// @Tags profile
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Router /me [get]
func (c *ProfileController) Me(ctx *gin.Context) {
	user := c.profileService.CurrentUser(ctx.Request.Context(), middleware.CurrentIdentity(ctx))
	ctx.JSON(http.StatusOK, dto.MeResponse{User: user})
}

// GetProfile returns the caller's stored profile
// @Summary Get own profile
// @Tags profile
// @Produce json
// @Security SessionCookie
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	profile, err := c.profileService.GetProfile(ctx.Request.Context(), middleware.CurrentIdentity(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ProfileResponse{Profile: profile})
}

// UpdateProfile merges the editable profile fields
// @Summary Update own profile
// @Description Merges firstName, lastName, phone, studentId, major, graduationYear, bio and linkedinUrl. Other fields are ignored.
// @Tags profile
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /profile [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindError(err))
		return
	}

	profile, err := c.profileService.UpdateProfile(ctx.Request.Context(), middleware.CurrentIdentity(ctx), req.ToPatch())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ProfileResponse{Profile: profile})
}

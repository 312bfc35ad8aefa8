package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/careerportal/internal/app/models"
	"github.com/yigit/careerportal/internal/app/models/dto"
	"github.com/yigit/careerportal/internal/app/services"
	"github.com/yigit/careerportal/internal/middleware"
)

// AdminSecretHeader carries the shared secret for production admin provisioning
const AdminSecretHeader = "X-Admin-Secret"

// SessionController handles session cookie exchange and admin provisioning
type SessionController struct {
	sessionService services.SessionService
	cookieName     string
	secureCookie   bool
}

// NewSessionController creates a new SessionController. secureCookie should be true in production.
func NewSessionController(sessionService services.SessionService, cookieName string, secureCookie bool) *SessionController {
	return &SessionController{
		sessionService: sessionService,
		cookieName:     cookieName,
		secureCookie:   secureCookie,
	}
}

func (c *SessionController) setCookie(ctx *gin.Context, value string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.cookieName, value, maxAge, "/", "", c.secureCookie, true)
}

// CreateSession exchanges an ID token for a session cookie
// @Summary Sign in
// @Description Verifies the ID token, sets the session cookie and upserts the optional profile seed
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest true "ID token and optional profile"
// @Success 200 {object} dto.OKResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Router /auth/session [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	var req dto.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindError(err))
		return
	}

	var seed *models.ProfilePatch
	if req.Profile != nil {
		patch := req.Profile.ToPatch()
		seed = &patch
	}

	cookie, err := c.sessionService.CreateSession(ctx.Request.Context(), req.IDToken, seed)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setCookie(ctx, cookie, int(c.sessionService.MaxAge().Seconds()))
	ctx.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// DestroySession clears the session cookie
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} dto.OKResponse
// @Router /auth/session [delete]
func (c *SessionController) DestroySession(ctx *gin.Context) {
	c.setCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// RegisterAdmin provisions a career office account
// @Summary Provision a career office account
// @Description Open outside production. In production the X-Admin-Secret header must match the configured hash.
// @Tags auth
// @Accept json
// @Produce json
// @Param X-Admin-Secret header string false "Admin provisioning secret"
// @Param request body dto.RegisterAdminRequest true "Account"
// @Success 200 {object} dto.RegisterAdminResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Router /auth/register-admin [post]
func (c *SessionController) RegisterAdmin(ctx *gin.Context) {
	var req dto.RegisterAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindError(err))
		return
	}

	profile, err := c.sessionService.RegisterAdmin(ctx.Request.Context(), services.RegisterAdminInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, ctx.GetHeader(AdminSecretHeader))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RegisterAdminResponse{
		OK:    true,
		UID:   profile.ID,
		Email: profile.Email,
		Role:  profile.Role,
	})
}

package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/careerportal/internal/app/models"
	"github.com/yigit/careerportal/internal/app/models/dto"
	"github.com/yigit/careerportal/internal/app/services"
	"github.com/yigit/careerportal/internal/middleware"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
)

// ApplicationController handles job application endpoints
type ApplicationController struct {
	applicationService services.ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService services.ApplicationService) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
	}
}

// bindWithID binds a body that must carry an id; an empty body counts as a missing id
func bindWithID(ctx *gin.Context, obj interface{}) error {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.ErrMissingID
		}
		return middleware.BindError(err)
	}
	return nil
}

// ListApplications returns the caller's applications, or all of them for the career office
// @Summary List applications
// @Description Career office callers see every application; everyone else sees only their own. Sorted by id.
// @Tags applications
// @Produce json
// @Security SessionCookie
// @Success 200 {array} models.Application
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /applications [get]
func (c *ApplicationController) ListApplications(ctx *gin.Context) {
	apps, err := c.applicationService.ListApplications(ctx.Request.Context(), middleware.CurrentIdentity(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, apps)
}

// CreateApplication submits an application for the caller
// @Summary Create an application
// @Description userId and date are assigned by the server. An optional resume may be sent as base64 or a data URL.
// @Tags applications
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param request body dto.CreateApplicationRequest true "Application"
// @Success 201 {object} models.Application
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /applications [post]
func (c *ApplicationController) CreateApplication(ctx *gin.Context) {
	var req dto.CreateApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindError(err))
		return
	}

	app, err := c.applicationService.CreateApplication(ctx.Request.Context(), middleware.CurrentIdentity(ctx), req.ToModel(), req.Resume())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, app)
}

// UpdateApplication changes the caller's own application
// @Summary Update an application
// @Description Only jobTitle, company, status and date may change. The caller must own the application.
// @Tags applications
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param request body dto.UpdateApplicationRequest true "Application id and fields"
// @Success 200 {object} models.Application
// @Failure 400 {object} dto.ErrorResponse "Missing id or invalid data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /applications [put]
func (c *ApplicationController) UpdateApplication(ctx *gin.Context) {
	var req dto.UpdateApplicationRequest
	if err := bindWithID(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if req.ID == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrMissingID)
		return
	}

	app, err := c.applicationService.UpdateApplication(ctx.Request.Context(), middleware.CurrentIdentity(ctx), *req.ID, req.ToPatch())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, app)
}

// DeleteApplication removes the caller's own application
// @Summary Delete an application
// @Tags applications
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param request body dto.DeleteApplicationRequest true "Application id"
// @Success 200 {object} dto.OKResponse
// @Failure 400 {object} dto.ErrorResponse "Missing id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /applications [delete]
func (c *ApplicationController) DeleteApplication(ctx *gin.Context) {
	var req dto.DeleteApplicationRequest
	if err := bindWithID(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if req.ID == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrMissingID)
		return
	}

	if err := c.applicationService.DeleteApplication(ctx.Request.Context(), middleware.CurrentIdentity(ctx), *req.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// GetApplication returns one application to its owner or the career office
// @Summary Get an application
// @Tags applications
// @Produce json
// @Security SessionCookie
// @Param id path int true "Application ID" Format(int64) minimum(1)
// @Success 200 {object} models.Application
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id} [get]
func (c *ApplicationController) GetApplication(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	app, err := c.applicationService.GetApplication(ctx.Request.Context(), middleware.CurrentIdentity(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, app)
}

// UpdateApplicationStatus sets any known status; career office only
// @Summary Change application status
// @Tags applications
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param id path int true "Application ID" Format(int64) minimum(1)
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} models.Application
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id}/status [patch]
func (c *ApplicationController) UpdateApplicationStatus(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindError(err))
		return
	}

	app, err := c.applicationService.UpdateApplicationStatus(ctx.Request.Context(), middleware.CurrentIdentity(ctx), id, models.ApplicationStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, app)
}

// DownloadResume streams the stored resume
// @Summary Download the resume of an application
// @Tags applications
// @Produce octet-stream
// @Security SessionCookie
// @Param id path int true "Application ID" Format(int64) minimum(1)
// @Success 200 {file} file
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Resume not found"
// @Router /applications/{id}/resume [get]
func (c *ApplicationController) DownloadResume(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resume, err := c.applicationService.GetResume(ctx.Request.Context(), middleware.CurrentIdentity(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.FileAttachment(resume.Path, resume.FileName)
}

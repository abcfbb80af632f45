package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	profileDto "anoa.com/apiplayground/internal/modules/profile/dto"
	profile "anoa.com/apiplayground/internal/modules/profile/service"
	"anoa.com/apiplayground/pkg/apperror"
	"anoa.com/apiplayground/pkg/response"
	"anoa.com/apiplayground/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService profile.ProfileService
}

func NewProfileHandler(profileService profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) GetProfiles(c *gin.Context) {
	var filter profileDto.ProfileFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ResponseError(c, apperror.InvalidInput(err.Error()))
		return
	}

	profiles, err := h.profileService.ListProfiles(c.Request.Context(), filter.Skill)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.profileService.GetProfile(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	req, ok := bindProfile(c)
	if !ok {
		return
	}

	id, err := h.profileService.CreateProfile(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profileDto.CreateProfileResponse{
		ID:      id,
		Message: "Profile created successfully",
	})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	req, ok := bindProfile(c)
	if !ok {
		return
	}

	if err := h.profileService.UpdateProfile(c.Request.Context(), id, req); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Profile updated successfully")
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.profileService.DeleteProfile(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Profile deleted successfully")
}

func (h *ProfileHandler) SearchProjects(c *gin.Context) {
	var query profileDto.ProjectSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ResponseError(c, apperror.InvalidInput(err.Error()))
		return
	}

	projects, err := h.profileService.SearchProjects(c.Request.Context(), query.Q)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// parseID treats an id that is not a positive integer as one that matches
// no row. Ids must fit a Postgres bigint.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 63)
	if err != nil || id == 0 {
		response.ResponseError(c, apperror.NotFound("Profile not found"))
		return 0, false
	}
	return uint(id), true
}

func bindProfile(c *gin.Context) (profileDto.ProfileRequest, bool) {
	var req profileDto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		switch {
		case errors.Is(err, io.EOF), validator.IsMissingRequired(err):
			response.ResponseError(c, apperror.InvalidInput(validator.MissingProfileFields))
		default:
			response.ResponseError(c, apperror.InvalidInput(validator.FormatValidationError(err)))
		}
		return req, false
	}
	return req, true
}

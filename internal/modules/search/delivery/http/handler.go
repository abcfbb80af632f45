package handler

import (
	"net/http"

	search "anoa.com/apiplayground/internal/modules/search/service"
	"anoa.com/apiplayground/pkg/apperror"
	"anoa.com/apiplayground/pkg/response"
	"github.com/gin-gonic/gin"
)

const searchLimit = 20

type SearchHandler struct {
	service search.MeiliSearchService
}

// NewSearchHandler accepts a nil service; the endpoint then reports that
// search is not configured.
func NewSearchHandler(service search.MeiliSearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) SearchProfiles(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.ResponseError(c, apperror.InvalidInput(`Query parameter "q" is required`))
		return
	}

	if h.service == nil {
		response.ResponseError(c, apperror.Unavailable("Profile search is not configured"))
		return
	}

	hits, err := h.service.SearchProfiles(query, searchLimit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, hits)
}

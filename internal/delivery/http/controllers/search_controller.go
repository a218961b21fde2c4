package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"gatherly/internal/delivery/http/helpers"
	"gatherly/internal/domain"
)

type SearchController struct {
	Logger *slog.Logger
	Search domain.SearchService
}

func NewSearchController(logger *slog.Logger, search domain.SearchService) *SearchController {
	return &SearchController{
		Logger: logger,
		Search: search,
	}
}

// HostSearchSuccessResponse is the success response envelope for the host search.
type HostSearchSuccessResponse struct {
	Data  []*domain.HostSearchResult `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// SearchHosts godoc
// @Summary Search hosts by name
// @Description Matches name fragments case-insensitively. A single token matches first or last name; multiple tokens split into a first-name and a last-name filter. Each result pairs a guest with one event they host.
// @Tags search
// @Produce json
// @Security BearerAuth
// @Param q query string true "Name query"
// @Success 200 {object} controllers.HostSearchSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (empty query)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /search/hosts [get]
func (c *SearchController) SearchHosts(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "q is required")
		return
	}

	results, err := c.Search.SearchHosts(r.Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, results)
}

package controllers

import (
	"log/slog"
	"net/http"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/domain"
)

type LookupController struct {
	Logger  *slog.Logger
	Service domain.LookupService
}

func NewLookupController(logger *slog.Logger, svc domain.LookupService) *LookupController {
	return &LookupController{Logger: logger, Service: svc}
}

// ListCategoriesSuccessResponse is the success response envelope for GET /categories (200).
type ListCategoriesSuccessResponse struct {
	Data  []*domain.Category `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListCategories godoc
// @Summary List event categories
// @Tags lookups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListCategoriesSuccessResponse "data contains categories"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories [get]
func (c *LookupController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.Service.ListCategories(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, categories)
}

// ListLocationsSuccessResponse is the success response envelope for GET /locations (200).
type ListLocationsSuccessResponse struct {
	Data  []*domain.Location `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListLocations godoc
// @Summary List event locations
// @Tags lookups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListLocationsSuccessResponse "data contains locations"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /locations [get]
func (c *LookupController) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := c.Service.ListLocations(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, locations)
}

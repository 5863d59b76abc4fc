package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bikeshare/analysis"
	dataErrors "bikeshare/domain/errors"
	"bikeshare/filter"
	"bikeshare/utils"
)

// analysisService is the part of analysis.Service used by the handlers
type analysisService interface {
	Cities() []string
	Analyze(ctx context.Context, cityID string, criteria filter.Criteria) (*analysis.Report, error)
	Select(ctx context.Context, cityID string, criteria filter.Criteria) (analysis.Selection, error)
	Page(selection analysis.Selection, offset int, count int) analysis.TripPage
}

// AnalysisHandler handles HTTP requests for city stats and trips
type AnalysisHandler struct {
	service  analysisService
	pageSize int
}

func NewAnalysisHandler(service analysisService, pageSize int) *AnalysisHandler {
	return &AnalysisHandler{
		service:  service,
		pageSize: pageSize,
	}
}

// RegisterRoutes adds the health check and the /api/v1 routes to router
func RegisterRoutes(router gin.IRouter, h *AnalysisHandler) {
	router.GET("/health", h.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/cities", h.GetCities)
		api.GET("/cities/:city/stats", h.GetStats)
		api.GET("/cities/:city/trips", h.GetTrips)
	}
}

// Health handles GET /health
func (h *AnalysisHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "bikeshare API is running",
	})
}

// GetCities handles GET /api/v1/cities
func (h *AnalysisHandler) GetCities(c *gin.Context) {
	Success(c, h.service.Cities())
}

// GetStats handles GET /api/v1/cities/:city/stats?month=&day=
func (h *AnalysisHandler) GetStats(c *gin.Context) {
	city, criteria, ok := h.parseSelection(c)
	if !ok {
		return
	}

	report, err := h.service.Analyze(c.Request.Context(), city, criteria)
	if err != nil {
		h.handleError(c, err)
		return
	}

	Success(c, report)
}

// GetTrips handles GET /api/v1/cities/:city/trips?month=&day=&offset=&count=
func (h *AnalysisHandler) GetTrips(c *gin.Context) {
	city, criteria, ok := h.parseSelection(c)
	if !ok {
		return
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		BadRequest(c, fmt.Sprintf("invalid offset %q", c.Query("offset")))
		return
	}

	count, err := strconv.Atoi(c.DefaultQuery("count", strconv.Itoa(h.pageSize)))
	if err != nil || count <= 0 {
		BadRequest(c, fmt.Sprintf("invalid count %q", c.Query("count")))
		return
	}

	selection, err := h.service.Select(c.Request.Context(), city, criteria)
	if err != nil {
		h.handleError(c, err)
		return
	}

	Success(c, h.service.Page(selection, offset, count))
}

// parseSelection resolves the city of the path and validates the month and day of the query.
// The response is already sent when the bool is false.
func (h *AnalysisHandler) parseSelection(c *gin.Context) (string, filter.Criteria, bool) {
	city, ok := h.resolveCity(c.Param("city"))
	if !ok {
		NotFound(c, fmt.Sprintf("%s: %s", dataErrors.ErrUnknownCity, c.Param("city")))
		return "", filter.Criteria{}, false
	}

	criteria, err := filter.ParseCriteria(c.DefaultQuery("month", filter.All), c.DefaultQuery("day", filter.All))
	if err != nil {
		BadRequest(c, err.Error())
		return "", filter.Criteria{}, false
	}

	return city, criteria, true
}

// resolveCity accepts a city id or its slug, e.g. "new york city" or "new-york-city"
func (h *AnalysisHandler) resolveCity(param string) (string, bool) {
	slug := utils.Slug(param)
	for _, city := range h.service.Cities() {
		if utils.Slug(city) == slug {
			return city, true
		}
	}
	return "", false
}

func (h *AnalysisHandler) handleError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, dataErrors.ErrUnknownCity):
		NotFound(c, err.Error())
	case errors.Is(err, dataErrors.ErrInvalidMonth), errors.Is(err, dataErrors.ErrInvalidDay):
		BadRequest(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

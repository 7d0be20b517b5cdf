package handlers

import (
	"net/http"
	"time"

	"goldlinks/internal/hours"
	"goldlinks/pkg/models"

	"github.com/labstack/echo/v4"
)

// HoursHandler exposes the hours engine without a stored store
type HoursHandler struct {
	defaultZone string
}

// NewHoursHandler creates a new hours handler
func NewHoursHandler(defaultZone string) *HoursHandler {
	return &HoursHandler{defaultZone: defaultZone}
}

// Parse godoc
// @Summary Parse an hours line
// @Description Parse text such as "Mon-Sat: 10AM-6PM, Sun: Closed" into weekly rows. With "at", also answer whether it is open at that instant.
// @Tags hours
// @Accept json
// @Produce json
// @Param request body models.ParseHoursRequest true "Hours text"
// @Success 200 {object} models.ParseHoursResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /hours/parse [post]
func (h *HoursHandler) Parse(c echo.Context) error {
	var req models.ParseHoursRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	zone := req.Timezone
	if zone == "" {
		zone = h.defaultZone
	}
	if _, err := time.LoadLocation(zone); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Unknown timezone")
	}

	week := hours.ParseText(req.Text)
	resp := models.ParseHoursResponse{
		Records:  week.Records(),
		Summary:  hours.Summary(week),
		Timezone: zone,
	}

	if req.At != "" {
		at, err := time.Parse(time.RFC3339, req.At)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "Invalid 'at', expected RFC3339")
		}
		local := hours.InZone(at, zone)
		status := hours.Status(week, local)
		resp.Status = &status
		if !status.IsOpen {
			if next, ok := hours.NextOpening(week, local); ok {
				resp.NextOpening = &next
			}
		}
	}

	return c.JSON(http.StatusOK, resp)
}

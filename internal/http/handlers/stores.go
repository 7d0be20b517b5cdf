package handlers

import (
	"net/http"
	"strconv"
	"time"

	"goldlinks/internal/services"
	"goldlinks/pkg/models"

	"github.com/labstack/echo/v4"
)

// StoreHandler handles store listing and hours endpoints
type StoreHandler struct {
	storeService *services.StoreService
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(storeService *services.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// List godoc
// @Summary List stores
// @Description List active stores with their current open/closed status
// @Tags stores
// @Produce json
// @Param search query string false "Name or city search"
// @Param kind query string false "local or online"
// @Param city query string false "City"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} models.StoreListResponse
// @Router /stores [get]
func (h *StoreHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))

	result, err := h.storeService.List(c.Request().Context(), models.StoreListFilter{
		Search:  c.QueryParam("search"),
		Kind:    c.QueryParam("kind"),
		City:    c.QueryParam("city"),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// Get godoc
// @Summary Get store
// @Tags stores
// @Produce json
// @Param id path string true "Store ID"
// @Success 200 {object} models.StoreWithStatus
// @Failure 404 {object} models.ErrorResponse
// @Router /stores/{id} [get]
func (h *StoreHandler) Get(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid store ID")
	}

	store, err := h.storeService.GetWithStatus(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, store)
}

// Status godoc
// @Summary Store open/closed status
// @Description Whether the store is open at the given instant (default now), read in the store's timezone
// @Tags stores
// @Produce json
// @Param id path string true "Store ID"
// @Param at query string false "RFC3339 instant"
// @Success 200 {object} models.StoreStatus
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /stores/{id}/status [get]
func (h *StoreHandler) Status(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid store ID")
	}

	at, err := parseAt(c.QueryParam("at"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid 'at', expected RFC3339")
	}

	status, err := h.storeService.Status(c.Request().Context(), id, at)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, status)
}

// Hours godoc
// @Summary Store opening hours
// @Description Structured weekly hours and display lines
// @Tags stores
// @Produce json
// @Param id path string true "Store ID"
// @Success 200 {object} models.StoreHoursView
// @Failure 404 {object} models.ErrorResponse
// @Router /stores/{id}/hours [get]
func (h *StoreHandler) Hours(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid store ID")
	}

	view, err := h.storeService.Hours(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

// MyStores godoc
// @Summary List my stores
// @Tags owner
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.StoreWithStatus
// @Router /me/stores [get]
func (h *StoreHandler) MyStores(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "User not authenticated")
	}

	stores, err := h.storeService.ListByOwner(c.Request().Context(), a)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, stores)
}

// Create godoc
// @Summary Create store
// @Tags owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateStoreRequest true "Store data"
// @Success 201 {object} models.Store
// @Failure 400 {object} models.ErrorResponse
// @Router /stores [post]
func (h *StoreHandler) Create(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateStoreRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	store, err := h.storeService.Create(c.Request().Context(), a, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, store)
}

// Update godoc
// @Summary Update store
// @Tags owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Store ID"
// @Param request body models.UpdateStoreRequest true "Fields to change"
// @Success 200 {object} models.Store
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /stores/{id} [put]
func (h *StoreHandler) Update(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "User not authenticated")
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid store ID")
	}

	var req models.UpdateStoreRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	store, err := h.storeService.Update(c.Request().Context(), a, id, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, store)
}

// Delete godoc
// @Summary Delete store
// @Tags owner
// @Security BearerAuth
// @Param id path string true "Store ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /stores/{id} [delete]
func (h *StoreHandler) Delete(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "User not authenticated")
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid store ID")
	}

	if err := h.storeService.Delete(c.Request().Context(), a, id); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateHours godoc
// @Summary Replace store hours
// @Description Replace the weekly hours from structured rows, a per-day schedule, or a free-text line such as "Mon-Sat: 10AM-6PM, Sun: Closed"
// @Tags owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Store ID"
// @Param request body models.UpdateHoursRequest true "Rows, schedule or text"
// @Success 200 {object} models.StoreHoursView
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /stores/{id}/hours [put]
func (h *StoreHandler) UpdateHours(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "User not authenticated")
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid store ID")
	}

	var req models.UpdateHoursRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.storeService.UpdateHours(c.Request().Context(), a, id, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

// UploadLogo godoc
// @Summary Upload store logo
// @Tags owner
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Store ID"
// @Param file formData file true "JPEG, PNG, WebP or GIF image"
// @Success 200 {object} models.Store
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /stores/{id}/logo [post]
func (h *StoreHandler) UploadLogo(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "User not authenticated")
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid store ID")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "File is required")
	}

	store, err := h.storeService.UploadLogo(c.Request().Context(), a, id, file)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, store)
}

// parseAt reads an optional RFC3339 instant; empty means now
func parseAt(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}

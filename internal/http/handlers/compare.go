package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"goldlinks/internal/services"
	"goldlinks/pkg/models"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// CompareHandler handles the shopper comparison endpoint
type CompareHandler struct {
	compareService *services.CompareService
}

// NewCompareHandler creates a new compare handler
func NewCompareHandler(compareService *services.CompareService) *CompareHandler {
	return &CompareHandler{compareService: compareService}
}

// Compare godoc
// @Summary Compare gold chains
// @Description Side-by-side comparison of gold chains across stores, each row with price per gram and the store's current status
// @Tags compare
// @Produce json
// @Param karat query string false "10K, 14K, 18K, 22K or 24K"
// @Param style query string false "Chain style"
// @Param kind query string false "Store kind: local or online"
// @Param city query string false "Store city"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param min_length query number false "Minimum length in inches"
// @Param max_length query number false "Maximum length in inches"
// @Param in_stock query bool false "Only in-stock chains"
// @Param open_now query bool false "Only stores open right now"
// @Param sort query string false "price_asc, price_desc, price_per_gram, weight_desc or store_name"
// @Param limit query int false "Maximum rows" default(50)
// @Success 200 {object} models.CompareResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /compare [get]
func (h *CompareHandler) Compare(c echo.Context) error {
	filter, err := parseCompareFilter(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	resp, err := h.compareService.Compare(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

func parseCompareFilter(c echo.Context) (models.CompareFilter, error) {
	filter := models.CompareFilter{
		Karat:     strings.ToUpper(strings.TrimSpace(c.QueryParam("karat"))),
		Style:     strings.ToLower(strings.TrimSpace(c.QueryParam("style"))),
		StoreKind: c.QueryParam("kind"),
		City:      c.QueryParam("city"),
		Sort:      c.QueryParam("sort"),
	}

	var err error
	if filter.MinPrice, err = queryDecimal(c, "min_price"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = queryDecimal(c, "max_price"); err != nil {
		return filter, err
	}
	if filter.MinLength, err = queryDecimal(c, "min_length"); err != nil {
		return filter, err
	}
	if filter.MaxLength, err = queryDecimal(c, "max_length"); err != nil {
		return filter, err
	}
	if filter.InStock, err = queryBool(c, "in_stock"); err != nil {
		return filter, err
	}
	if filter.OpenNow, err = queryBool(c, "open_now"); err != nil {
		return filter, err
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if filter.Limit, err = strconv.Atoi(raw); err != nil || filter.Limit < 0 {
			return filter, fmt.Errorf("invalid limit %q", raw)
		}
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return filter, fmt.Errorf("min_price is greater than max_price")
	}
	return filter, nil
}

func queryDecimal(c echo.Context, name string) (*decimal.Decimal, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &d, nil
}

func queryBool(c echo.Context, name string) (bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", name, raw)
	}
	return b, nil
}

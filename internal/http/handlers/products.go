package handlers

import (
	"net/http"

	"goldlinks/internal/services"
	"goldlinks/pkg/models"

	"github.com/labstack/echo/v4"
)

const maxImportSize = 2 << 20

// ProductHandler handles gold chain listing endpoints
type ProductHandler struct {
	productService *services.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListByStore godoc
// @Summary List store products
// @Tags products
// @Produce json
// @Param id path string true "Store ID"
// @Success 200 {array} models.Product
// @Failure 404 {object} models.ErrorResponse
// @Router /stores/{id}/products [get]
func (h *ProductHandler) ListByStore(c echo.Context) error {
	storeID, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid store ID")
	}

	products, err := h.productService.ListByStore(c.Request().Context(), storeID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, products)
}

// Create godoc
// @Summary Add product
// @Tags owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Store ID"
// @Param request body models.CreateProductRequest true "Product data"
// @Success 201 {object} models.Product
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /stores/{id}/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "User not authenticated")
	}
	storeID, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid store ID")
	}

	var req models.CreateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.productService.Create(c.Request().Context(), a, storeID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, product)
}

// Update godoc
// @Summary Update product
// @Tags owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body models.UpdateProductRequest true "Fields to change"
// @Success 200 {object} models.Product
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "User not authenticated")
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid product ID")
	}

	var req models.UpdateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.productService.Update(c.Request().Context(), a, id, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, product)
}

// Delete godoc
// @Summary Delete product
// @Tags owner
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "User not authenticated")
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid product ID")
	}

	if err := h.productService.Delete(c.Request().Context(), a, id); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UploadImage godoc
// @Summary Upload product image
// @Tags owner
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param file formData file true "JPEG, PNG, WebP or GIF image"
// @Success 200 {object} models.Product
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /products/{id}/image [post]
func (h *ProductHandler) UploadImage(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "User not authenticated")
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid product ID")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "File is required")
	}

	product, err := h.productService.UploadImage(c.Request().Context(), a, id, file)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, product)
}

// Import godoc
// @Summary Import products from CSV
// @Description Create products from a catalog CSV with a header row. Comma or semicolon delimited; name, karat and price columns are required.
// @Tags owner
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Store ID"
// @Param file formData file true "Catalog CSV"
// @Success 200 {object} models.ImportResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /stores/{id}/products/import [post]
func (h *ProductHandler) Import(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "User not authenticated")
	}
	storeID, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid store ID")
	}

	header, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "File is required")
	}
	if header.Size > maxImportSize {
		return errorJSON(c, http.StatusBadRequest, "File is too large")
	}

	file, err := header.Open()
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Failed to read file")
	}
	defer file.Close()

	result, err := h.productService.Import(c.Request().Context(), a, storeID, file)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

package models

// PaginationResult represents paginated results
type PaginationResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginationResult fills in the page count for a result set
func NewPaginationResult[T any](data []T, total int64, page, perPage int) PaginationResult[T] {
	totalPages := 0
	if perPage > 0 {
		totalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	if data == nil {
		data = []T{}
	}
	return PaginationResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}
}

// Swagger-specific types (non-generic to avoid swag parsing issues)

// StoreListResponse represents paginated store results for Swagger docs
type StoreListResponse struct {
	Data       []StoreWithStatus `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
	TotalPages int               `json:"total_pages"`
}

// ErrorResponse is the JSON body of every API error
type ErrorResponse struct {
	Error string `json:"error"`
}

// GetAllModels returns all models for GORM AutoMigrate
func GetAllModels() []interface{} {
	return []interface{}{
		&User{},
		&Store{},
		&StoreHours{},
		&Product{},
	}
}

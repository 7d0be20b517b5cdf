package app

import (
	"errors"

	"goldlinks/internal/auth"
	"goldlinks/internal/config"
	"goldlinks/internal/repo"
	"goldlinks/internal/services"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Services holds all application services
type Services struct {
	DB     *gorm.DB
	Config *config.Config

	UserRepo       *repo.UserRepository
	StoreRepo      *repo.StoreRepository
	StoreHoursRepo *repo.StoreHoursRepository
	ProductRepo    *repo.ProductRepository

	AuthService    *auth.Service
	StoreService   *services.StoreService
	ProductService *services.ProductService
	CompareService *services.CompareService
	StorageService *services.StorageService
}

// NewServices creates a new services container
func NewServices(db *gorm.DB, cfg *config.Config) *Services {
	userRepo := repo.NewUserRepository(db)
	storeRepo := repo.NewStoreRepository(db)
	storeHoursRepo := repo.NewStoreHoursRepository(db)
	productRepo := repo.NewProductRepository(db)

	authService := auth.NewService(userRepo, auth.Options{
		Secret:          cfg.JWTSecret,
		AccessDuration:  cfg.JWTAccessDuration,
		RefreshDuration: cfg.JWTRefreshDuration,
	})

	// Image storage is optional; uploads answer 503 without it
	var storage services.ObjectStorage
	storageService, err := services.NewStorageService(cfg.S3)
	switch {
	case err == nil:
		storage = storageService
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Image storage enabled")
	case errors.Is(err, services.ErrStorageDisabled):
		log.Info().Msg("Image storage disabled")
	default:
		log.Warn().Err(err).Msg("Failed to initialize image storage, uploads disabled")
	}

	storeService := services.NewStoreService(storeRepo, storeHoursRepo, storage, cfg.DefaultTimezone)
	productService := services.NewProductService(productRepo, storeService, storage)
	compareService := services.NewCompareService(storeRepo, productRepo, cfg.DefaultTimezone)

	return &Services{
		DB:             db,
		Config:         cfg,
		UserRepo:       userRepo,
		StoreRepo:      storeRepo,
		StoreHoursRepo: storeHoursRepo,
		ProductRepo:    productRepo,
		AuthService:    authService,
		StoreService:   storeService,
		ProductService: productService,
		CompareService: compareService,
		StorageService: storageService,
	}
}

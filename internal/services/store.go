package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"goldlinks/internal/hours"
	"goldlinks/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Actor is the authenticated caller of an owner operation
type Actor struct {
	UserID uuid.UUID
	Role   string
}

// IsAdmin reports whether the actor may act on any store
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleSystemAdmin
}

// StoreRepository is the store data access used by the services
type StoreRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	Create(ctx context.Context, store *models.Store) error
	Update(ctx context.Context, store *models.Store) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter models.StoreListFilter) ([]models.Store, int64, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error)
	ListActive(ctx context.Context, kind, city string) ([]models.Store, error)
}

// StoreHoursRepository stores structured opening-hours rows
type StoreHoursRepository interface {
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.StoreHours, error)
	Replace(ctx context.Context, storeID uuid.UUID, rows []models.StoreHours) error
}

// StoreService manages store listings and answers open/closed questions
type StoreService struct {
	stores      StoreRepository
	hoursRows   StoreHoursRepository
	storage     ObjectStorage
	defaultZone string
	now         func() time.Time
}

// NewStoreService creates a new store service. storage may be nil.
func NewStoreService(stores StoreRepository, hoursRows StoreHoursRepository, storage ObjectStorage, defaultZone string) *StoreService {
	return &StoreService{
		stores:      stores,
		hoursRows:   hoursRows,
		storage:     storage,
		defaultZone: defaultZone,
		now:         time.Now,
	}
}

// DefaultZone is the zone used for stores without one
func (s *StoreService) DefaultZone() string {
	return s.defaultZone
}

// Get loads a store with its hours
func (s *StoreService) Get(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	store, err := s.stores.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("store", err)
	}
	return store, nil
}

// GetWithStatus loads a store with its current status
func (s *StoreService) GetWithStatus(ctx context.Context, id uuid.UUID) (*models.StoreWithStatus, error) {
	store, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.StoreWithStatus{
		Store:  *store,
		Status: EvaluateStatus(store, s.now(), s.defaultZone),
	}, nil
}

// List returns a page of active stores, each with its current status
func (s *StoreService) List(ctx context.Context, filter models.StoreListFilter) (models.PaginationResult[models.StoreWithStatus], error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 20
	}

	stores, total, err := s.stores.List(ctx, filter)
	if err != nil {
		return models.PaginationResult[models.StoreWithStatus]{}, fmt.Errorf("failed to list stores: %w", err)
	}

	return models.NewPaginationResult(s.withStatus(stores), total, filter.Page, filter.PerPage), nil
}

// ListByOwner returns every store owned by the actor
func (s *StoreService) ListByOwner(ctx context.Context, actor Actor) ([]models.StoreWithStatus, error) {
	stores, err := s.stores.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner stores: %w", err)
	}
	return s.withStatus(stores), nil
}

func (s *StoreService) withStatus(stores []models.Store) []models.StoreWithStatus {
	now := s.now()
	out := make([]models.StoreWithStatus, 0, len(stores))
	for i := range stores {
		out = append(out, models.StoreWithStatus{
			Store:  stores[i],
			Status: EvaluateStatus(&stores[i], now, s.defaultZone),
		})
	}
	return out
}

// Create creates a store owned by the actor
func (s *StoreService) Create(ctx context.Context, actor Actor, req models.CreateStoreRequest) (*models.Store, error) {
	if err := validateZone(req.Timezone); err != nil {
		return nil, err
	}

	kind := req.Kind
	if kind == "" {
		kind = models.StoreKindLocal
	}
	country := req.Country
	if country == "" {
		country = "US"
	}

	store := &models.Store{
		OwnerID:     actor.UserID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Kind:        kind,
		Street:      req.Street,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Country:     country,
		Phone:       req.Phone,
		Website:     req.Website,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Timezone:    req.Timezone,
		HoursText:   strings.TrimSpace(req.HoursText),
		IsActive:    true,
	}

	if err := s.stores.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	log.Info().Str("store_id", store.ID.String()).Str("owner_id", actor.UserID.String()).Msg("Store created")
	return store, nil
}

// Update applies a partial update to a store the actor owns
func (s *StoreService) Update(ctx context.Context, actor Actor, id uuid.UUID, req models.UpdateStoreRequest) (*models.Store, error) {
	store, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Timezone != nil {
		if err := validateZone(*req.Timezone); err != nil {
			return nil, err
		}
		store.Timezone = *req.Timezone
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalid("name must not be empty")
		}
		store.Name = name
	}
	if req.Description != nil {
		store.Description = *req.Description
	}
	if req.Kind != nil {
		store.Kind = *req.Kind
	}
	if req.Street != nil {
		store.Street = *req.Street
	}
	if req.City != nil {
		store.City = *req.City
	}
	if req.State != nil {
		store.State = *req.State
	}
	if req.ZipCode != nil {
		store.ZipCode = *req.ZipCode
	}
	if req.Country != nil {
		store.Country = *req.Country
	}
	if req.Phone != nil {
		store.Phone = *req.Phone
	}
	if req.Website != nil {
		store.Website = *req.Website
	}
	if req.Latitude != nil {
		store.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		store.Longitude = req.Longitude
	}
	if req.HoursText != nil {
		store.HoursText = strings.TrimSpace(*req.HoursText)
	}
	if req.IsActive != nil {
		store.IsActive = *req.IsActive
	}

	if err := s.stores.Update(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to update store: %w", err)
	}
	return store, nil
}

// Delete removes a store the actor owns along with its products
func (s *StoreService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	store, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.stores.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}
	removeImage(ctx, s.storage, store.LogoKey)

	log.Info().Str("store_id", id.String()).Msg("Store deleted")
	return nil
}

// Status evaluates whether the store is open at the instant
func (s *StoreService) Status(ctx context.Context, id uuid.UUID, at time.Time) (models.StoreStatus, error) {
	store, err := s.Get(ctx, id)
	if err != nil {
		return models.StoreStatus{}, err
	}
	if at.IsZero() {
		at = s.now()
	}
	return EvaluateStatus(store, at, s.defaultZone), nil
}

// Hours returns the store's effective week as rows and display lines
func (s *StoreService) Hours(ctx context.Context, id uuid.UUID) (*models.StoreHoursView, error) {
	store, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.hoursRows.ListByStore(ctx, store.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list store hours: %w", err)
	}
	store.Hours = rows
	week, source := WeeklyHours(store)
	return &models.StoreHoursView{
		StoreID:  store.ID,
		Timezone: StoreZone(store, s.defaultZone),
		Source:   source,
		Records:  week.Records(),
		Summary:  hours.Summary(week),
	}, nil
}

// UpdateHours replaces a store's structured hours. Text input is parsed into
// rows and also kept as the store's hours line; a schedule's zone becomes the
// store's zone.
func (s *StoreService) UpdateHours(ctx context.Context, actor Actor, id uuid.UUID, req models.UpdateHoursRequest) (*models.StoreHoursView, error) {
	store, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	var records []hours.Record
	var zone string
	text := strings.TrimSpace(req.Text)
	fromText := false
	switch {
	case len(req.Records) > 0:
		records = req.Records
	case req.Schedule != nil:
		records = req.Schedule.Records()
		zone = strings.TrimSpace(req.Schedule.Timezone)
		if err := validateZone(zone); err != nil {
			return nil, err
		}
	case text != "":
		week := hours.ParseText(text)
		if week.IsEmpty() {
			return nil, invalid("no opening hours recognised in %q", text)
		}
		records = week.Records()
		fromText = true
	default:
		return nil, invalid("one of records, schedule or text is required")
	}
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	rows := make([]models.StoreHours, 0, len(records))
	for _, rec := range records {
		day, _ := hours.LookupDay(rec.Day)
		row := models.StoreHours{
			DayOfWeek: day.String(),
			IsClosed:  rec.IsClosed,
			SortOrder: int(day),
		}
		if !rec.IsClosed {
			row.OpenTime = normalizeClock(rec.OpenTime)
			row.CloseTime = normalizeClock(rec.CloseTime)
		}
		rows = append(rows, row)
	}
	rows = dedupeDays(rows)

	if err := s.hoursRows.Replace(ctx, store.ID, rows); err != nil {
		return nil, fmt.Errorf("failed to replace store hours: %w", err)
	}

	if fromText || zone != "" {
		if fromText {
			store.HoursText = text
		}
		if zone != "" {
			store.Timezone = zone
		}
		store.Hours = nil
		if err := s.stores.Update(ctx, store); err != nil {
			return nil, fmt.Errorf("failed to update store: %w", err)
		}
	}

	log.Info().Str("store_id", store.ID.String()).Int("rows", len(rows)).Msg("Store hours replaced")
	return s.Hours(ctx, store.ID)
}

// UploadLogo stores a new logo image for the store
func (s *StoreService) UploadLogo(ctx context.Context, actor Actor, id uuid.UUID, file *multipart.FileHeader) (*models.Store, error) {
	store, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	url, key, err := uploadImage(ctx, s.storage, file, "stores/"+store.ID.String()+"/logo")
	if err != nil {
		return nil, err
	}

	previous := store.LogoKey
	store.LogoURL = url
	store.LogoKey = key
	store.Hours = nil
	if err := s.stores.Update(ctx, store); err != nil {
		removeImage(ctx, s.storage, key)
		return nil, fmt.Errorf("failed to save logo: %w", err)
	}
	removeImage(ctx, s.storage, previous)

	return s.Get(ctx, store.ID)
}

// owned loads a store and checks that the actor may manage it
func (s *StoreService) owned(ctx context.Context, actor Actor, id uuid.UUID) (*models.Store, error) {
	store, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if store.OwnerID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return store, nil
}

func validateZone(zone string) error {
	if zone == "" {
		return nil
	}
	if _, err := time.LoadLocation(zone); err != nil {
		return invalid("unknown timezone %q", zone)
	}
	return nil
}

func validateRecords(records []hours.Record) error {
	for _, rec := range records {
		if _, ok := hours.LookupDay(rec.Day); !ok {
			return invalid("unknown day %q", rec.Day)
		}
		if rec.IsClosed {
			continue
		}
		open, ok := hours.ParseClock(rec.OpenTime)
		if !ok {
			return invalid("invalid open time %q for %s", rec.OpenTime, rec.Day)
		}
		closing, ok := hours.ParseClock(rec.CloseTime)
		if !ok {
			return invalid("invalid close time %q for %s", rec.CloseTime, rec.Day)
		}
		if open >= closing {
			return invalid("%s opens at %s but closes at %s", rec.Day, rec.OpenTime, rec.CloseTime)
		}
	}
	return nil
}

// normalizeClock rewrites a valid time as 24h HH:MM
func normalizeClock(s string) string {
	m, ok := hours.ParseClock(s)
	if !ok {
		return s
	}
	return hours.FormatClock(m)
}

// dedupeDays keeps the last row given for each day
func dedupeDays(rows []models.StoreHours) []models.StoreHours {
	byDay := make(map[string]int, len(rows))
	out := make([]models.StoreHours, 0, len(rows))
	for _, row := range rows {
		if i, ok := byDay[row.DayOfWeek]; ok {
			out[i] = row
			continue
		}
		byDay[row.DayOfWeek] = len(out)
		out = append(out, row)
	}
	return out
}

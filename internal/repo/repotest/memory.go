// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"goldlinks/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DB is a shared in-memory backing store. Its repositories return
// gorm.ErrRecordNotFound for missing rows, like the gorm ones.
type DB struct {
	mu       sync.Mutex
	users    map[uuid.UUID]models.User
	stores   map[uuid.UUID]models.Store
	hours    map[uuid.UUID][]models.StoreHours
	products map[uuid.UUID]models.Product
}

// NewDB creates an empty in-memory store
func NewDB() *DB {
	return &DB{
		users:    map[uuid.UUID]models.User{},
		stores:   map[uuid.UUID]models.Store{},
		hours:    map[uuid.UUID][]models.StoreHours{},
		products: map[uuid.UUID]models.Product{},
	}
}

// Users returns the user repository
func (db *DB) Users() Users { return Users{db} }

// Stores returns the store repository
func (db *DB) Stores() Stores { return Stores{db} }

// Hours returns the store hours repository
func (db *DB) Hours() Hours { return Hours{db} }

// Products returns the product repository
func (db *DB) Products() Products { return Products{db} }

// Store returns the raw stored row
func (db *DB) Store(id uuid.UUID) (models.Store, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	s, ok := db.stores[id]
	return s, ok
}

// HoursRows returns the stored hours rows of a store
func (db *DB) HoursRows(id uuid.UUID) []models.StoreHours {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]models.StoreHours(nil), db.hours[id]...)
}

func (db *DB) withHours(s models.Store) models.Store {
	rows := append([]models.StoreHours(nil), db.hours[s.ID]...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].SortOrder < rows[j].SortOrder })
	s.Hours = rows
	return s
}

// Users is an in-memory user repository
type Users struct{ db *DB }

func (r Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r Users) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r Users) Create(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.db.users[user.ID] = *user
	return nil
}

func (r Users) Update(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.users[user.ID] = *user
	return nil
}

// Stores is an in-memory store repository
type Stores struct{ db *DB }

func (r Stores) GetByID(_ context.Context, id uuid.UUID) (*models.Store, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.stores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	s = r.db.withHours(s)
	return &s, nil
}

func (r Stores) Create(_ context.Context, store *models.Store) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if store.ID == uuid.Nil {
		store.ID = uuid.New()
	}
	cp := *store
	cp.Hours = nil
	r.db.stores[store.ID] = cp
	return nil
}

func (r Stores) Update(_ context.Context, store *models.Store) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *store
	cp.Hours = nil
	r.db.stores[store.ID] = cp
	return nil
}

func (r Stores) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.stores, id)
	delete(r.db.hours, id)
	for pid, p := range r.db.products {
		if p.StoreID == id {
			delete(r.db.products, pid)
		}
	}
	return nil
}

func (r Stores) List(_ context.Context, filter models.StoreListFilter) ([]models.Store, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Store
	for _, s := range r.db.stores {
		if !s.IsActive {
			continue
		}
		if filter.Kind != "" && s.Kind != filter.Kind {
			continue
		}
		if filter.City != "" && !strings.EqualFold(s.City, filter.City) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, r.db.withHours(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	total := int64(len(out))
	start := (filter.Page - 1) * filter.PerPage
	if start > len(out) {
		start = len(out)
	}
	end := start + filter.PerPage
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (r Stores) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]models.Store, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Store
	for _, s := range r.db.stores {
		if s.OwnerID == ownerID {
			out = append(out, r.db.withHours(s))
		}
	}
	return out, nil
}

func (r Stores) ListActive(_ context.Context, kind, city string) ([]models.Store, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Store
	for _, s := range r.db.stores {
		if !s.IsActive || (kind != "" && s.Kind != kind) || (city != "" && !strings.EqualFold(s.City, city)) {
			continue
		}
		out = append(out, r.db.withHours(s))
	}
	return out, nil
}

// Hours is an in-memory store hours repository
type Hours struct{ db *DB }

func (r Hours) ListByStore(_ context.Context, storeID uuid.UUID) ([]models.StoreHours, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.withHours(models.Store{BaseModel: models.BaseModel{ID: storeID}}).Hours, nil
}

func (r Hours) Replace(_ context.Context, storeID uuid.UUID, rows []models.StoreHours) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]models.StoreHours, len(rows))
	for i, row := range rows {
		row.StoreID = storeID
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		out[i] = row
	}
	r.db.hours[storeID] = out
	return nil
}

// Products is an in-memory product repository
type Products struct{ db *DB }

func (r Products) GetByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r Products) Create(_ context.Context, product *models.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.db.products[product.ID] = *product
	return nil
}

func (r Products) Update(_ context.Context, product *models.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.products[product.ID] = *product
	return nil
}

func (r Products) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.products, id)
	return nil
}

func (r Products) ListByStore(_ context.Context, storeID uuid.UUID) ([]models.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Product
	for _, p := range r.db.products {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	return out, nil
}

// Search applies the same column filters as the gorm repository
func (r Products) Search(_ context.Context, filter models.CompareFilter) ([]models.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Product
	for _, p := range r.db.products {
		switch {
		case filter.Karat != "" && p.Karat != filter.Karat,
			filter.Style != "" && p.Style != filter.Style,
			filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice),
			filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice),
			filter.MinLength != nil && p.LengthInches.LessThan(*filter.MinLength),
			filter.MaxLength != nil && p.LengthInches.GreaterThan(*filter.MaxLength),
			filter.InStock && !p.InStock:
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	return out, nil
}

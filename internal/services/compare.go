package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"goldlinks/pkg/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Compare sort orders
const (
	SortPriceAsc     = "price_asc"
	SortPriceDesc    = "price_desc"
	SortPricePerGram = "price_per_gram"
	SortWeightDesc   = "weight_desc"
	SortStoreName    = "store_name"
)

const (
	defaultCompareLimit = 50
	maxCompareLimit     = 200
)

// CompareService builds the shopper's side-by-side gold chain comparison
type CompareService struct {
	stores      StoreRepository
	products    ProductRepository
	defaultZone string
	now         func() time.Time
}

// NewCompareService creates a new compare service
func NewCompareService(stores StoreRepository, products ProductRepository, defaultZone string) *CompareService {
	return &CompareService{
		stores:      stores,
		products:    products,
		defaultZone: defaultZone,
		now:         time.Now,
	}
}

// Compare lists the products matching the filter, joined with their store
// and its current status.
func (s *CompareService) Compare(ctx context.Context, filter models.CompareFilter) (*models.CompareResponse, error) {
	switch filter.Sort {
	case "":
		filter.Sort = SortPriceAsc
	case SortPriceAsc, SortPriceDesc, SortPricePerGram, SortWeightDesc, SortStoreName:
	default:
		return nil, invalid("unknown sort %q", filter.Sort)
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultCompareLimit
	}
	if filter.Limit > maxCompareLimit {
		filter.Limit = maxCompareLimit
	}

	var (
		stores   []models.Store
		products []models.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stores, err = s.stores.ListActive(gctx, filter.StoreKind, filter.City)
		if err != nil {
			return fmt.Errorf("failed to load stores: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		products, err = s.products.Search(gctx, filter)
		if err != nil {
			return fmt.Errorf("failed to search products: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now()
	byID := make(map[uuid.UUID]*models.Store, len(stores))
	statuses := make(map[uuid.UUID]models.StoreStatus, len(stores))
	for i := range stores {
		byID[stores[i].ID] = &stores[i]
	}

	rows := make([]models.CompareRow, 0, len(products))
	for _, p := range products {
		store, ok := byID[p.StoreID]
		if !ok {
			continue
		}
		status, ok := statuses[store.ID]
		if !ok {
			status = EvaluateStatus(store, now, s.defaultZone)
			statuses[store.ID] = status
		}
		if filter.OpenNow && !status.IsOpen {
			continue
		}
		rows = append(rows, models.CompareRow{
			ProductID:    p.ID,
			Name:         p.Name,
			Karat:        p.Karat,
			Style:        p.Style,
			LengthInches: p.LengthInches,
			WeightGrams:  p.WeightGrams,
			Price:        p.Price,
			PricePerGram: p.PricePerGram(),
			Currency:     p.Currency,
			InStock:      p.InStock,
			ImageURL:     p.ImageURL,
			ProductURL:   p.ProductURL,
			StoreID:      store.ID,
			StoreName:    store.Name,
			StoreKind:    store.Kind,
			StoreCity:    store.City,
			StoreStatus:  status,
		})
	}

	sortRows(rows, filter.Sort)

	resp := summarize(rows)
	if len(rows) > filter.Limit {
		rows = rows[:filter.Limit]
	}
	resp.Data = rows
	return resp, nil
}

// summarize computes the figures over every matching row
func summarize(rows []models.CompareRow) *models.CompareResponse {
	resp := &models.CompareResponse{Total: len(rows)}
	if len(rows) == 0 {
		return resp
	}

	cheapest, priciest := rows[0].Price, rows[0].Price
	sum := decimal.Zero
	weighed := 0
	for _, r := range rows {
		if r.Price.LessThan(cheapest) {
			cheapest = r.Price
		}
		if r.Price.GreaterThan(priciest) {
			priciest = r.Price
		}
		if r.PricePerGram.IsPositive() {
			sum = sum.Add(r.PricePerGram)
			weighed++
		}
	}
	resp.Cheapest = &cheapest
	resp.Priciest = &priciest
	if weighed > 0 {
		avg := sum.DivRound(decimal.NewFromInt(int64(weighed)), 2)
		resp.AvgPerGram = &avg
	}
	return resp
}

func sortRows(rows []models.CompareRow, order string) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch order {
		case SortPriceDesc:
			if !a.Price.Equal(b.Price) {
				return a.Price.GreaterThan(b.Price)
			}
		case SortPricePerGram:
			// unknown weight sorts last
			ap, bp := a.PricePerGram.IsPositive(), b.PricePerGram.IsPositive()
			if ap != bp {
				return ap
			}
			if !a.PricePerGram.Equal(b.PricePerGram) {
				return a.PricePerGram.LessThan(b.PricePerGram)
			}
		case SortWeightDesc:
			if !a.WeightGrams.Equal(b.WeightGrams) {
				return a.WeightGrams.GreaterThan(b.WeightGrams)
			}
		case SortStoreName:
			an, bn := strings.ToLower(a.StoreName), strings.ToLower(b.StoreName)
			if an != bn {
				return an < bn
			}
		}
		if !a.Price.Equal(b.Price) {
			return a.Price.LessThan(b.Price)
		}
		return a.Name < b.Name
	})
}

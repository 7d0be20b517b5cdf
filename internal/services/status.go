package services

import (
	"strings"
	"time"

	"goldlinks/internal/hours"
	"goldlinks/pkg/models"
)

// Hours sources reported in StoreStatus.Source
const (
	HoursSourceRecords = "records"
	HoursSourceText    = "text"
	HoursSourceNone    = "none"
)

// WeeklyHours picks a store's hours: structured rows first, then the free-text
// line, otherwise closed all week.
func WeeklyHours(store *models.Store) (hours.WeeklyHours, string) {
	if len(store.Hours) > 0 {
		records := make([]hours.Record, 0, len(store.Hours))
		for _, row := range store.Hours {
			records = append(records, row.Record())
		}
		return hours.FromRecords(records), HoursSourceRecords
	}
	if strings.TrimSpace(store.HoursText) != "" {
		return hours.ParseText(store.HoursText), HoursSourceText
	}
	return hours.Closed(), HoursSourceNone
}

// StoreZone is the store's own zone or the fallback
func StoreZone(store *models.Store, fallback string) string {
	if store.Timezone != "" {
		return store.Timezone
	}
	return fallback
}

// EvaluateStatus answers whether the store is open at the instant, read in
// the store's zone.
func EvaluateStatus(store *models.Store, at time.Time, fallbackZone string) models.StoreStatus {
	week, source := WeeklyHours(store)
	zone := StoreZone(store, fallbackZone)
	local := hours.InZone(at, zone)

	result := hours.Status(week, local)
	status := models.StoreStatus{
		StoreID:     store.ID,
		IsOpen:      result.IsOpen,
		NextChange:  result.NextChange,
		Timezone:    zone,
		Source:      source,
		EvaluatedAt: local,
	}

	if !result.IsOpen {
		if next, ok := hours.NextOpening(week, local); ok {
			status.NextOpening = &next
		}
	}
	return status
}

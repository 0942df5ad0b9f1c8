package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the station service
// Pattern: etik:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG  = 24 * time.Hour // 24 hours - for station preferences
	TTL_STATIC_SHORT = 6 * time.Hour  // 6 hours - for marketplace pages
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_SHORT = 1 * time.Hour    // 1 hour - for page state
	TTL_SEMI_STATIC_QUICK = 15 * time.Minute // 15 minutes - for show catalog
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "etik"
)

// ================== CATALOG MODULE ==================

const (
	CACHE_KEY_EVENT_SHOWS       = CACHE_PREFIX + ":catalog:shows:event:" // + event-id
	CACHE_KEY_MARKETPLACE_EVENT = CACHE_PREFIX + ":catalog:marketplace:" // + slug
)

const (
	TTL_EVENT_SHOWS       = TTL_SEMI_STATIC_QUICK // 15 minutes
	TTL_MARKETPLACE_EVENT = TTL_STATIC_SHORT      // 6 hours
)

// ================== STATIONS MODULE ==================

const (
	CACHE_KEY_STATION_PREFERENCES = CACHE_PREFIX + ":stations:preferences:" // + station-id
	CACHE_KEY_STATION_STATE       = CACHE_PREFIX + ":stations:state:"       // + station-id:mode
)

const (
	TTL_STATION_PREFERENCES = 30 * TTL_STATIC_LONG  // 30 days
	TTL_STATION_STATE       = TTL_SEMI_STATIC_SHORT // 1 hour
)

// ================== ANALYTICS MODULE ==================

const (
	CACHE_KEY_SCAN_ANALYTICS = CACHE_PREFIX + ":analytics:scans:event:" // + event-id
)

const (
	TTL_SCAN_ANALYTICS = 1 * time.Minute
)

// ================== INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_EVENT_SHOWS = CACHE_KEY_EVENT_SHOWS + "*"
)

// ================== KEY BUILDERS ==================

func BuildEventShowsKey(eventID int64) string {
	return fmt.Sprintf("%s%d", CACHE_KEY_EVENT_SHOWS, eventID)
}

func BuildMarketplaceEventKey(slug string) string {
	return CACHE_KEY_MARKETPLACE_EVENT + slug
}

func BuildStationPreferencesKey(stationID string) string {
	return CACHE_KEY_STATION_PREFERENCES + stationID
}

func BuildStationStateKey(stationID, mode string) string {
	return CACHE_KEY_STATION_STATE + stationID + ":" + mode
}

func BuildScanAnalyticsKey(eventID int64) string {
	return fmt.Sprintf("%s%d", CACHE_KEY_SCAN_ANALYTICS, eventID)
}

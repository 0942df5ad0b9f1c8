package events

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"etik/internal/shared/constants"
	"etik/pkg/cache"
	"etik/pkg/etikapi"
)

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidToken        = errors.New("transaction token is required")
)

type Service interface {
	// ListShows returns the raw catalog; the check-in flow names labels from it
	ListShows(ctx context.Context, eventID int64) ([]Show, error)
	GetShows(ctx context.Context, eventID int64) ([]ShowResponse, error)
	GetMarketplaceEvent(ctx context.Context, slug string) (*MarketplaceEventResponse, error)
	GetCustomerTransaction(ctx context.Context, transactionID int64, token string) (*Transaction, error)
	InvalidateShows(ctx context.Context, eventID int64) error
	InvalidateAllShows(ctx context.Context) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
	now          func() time.Time
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:         repo,
		cacheService: cacheService,
		now:          time.Now,
	}
}

func (s *service) ListShows(ctx context.Context, eventID int64) ([]Show, error) {
	var shows []Show
	err := s.cacheService.GetOrSet(ctx, constants.BuildEventShowsKey(eventID), constants.TTL_EVENT_SHOWS,
		func() (interface{}, error) {
			log.Printf("🔍 Cache miss: fetching shows for event %d", eventID)
			return s.repo.ListShows(ctx, eventID)
		}, &shows)
	if err != nil {
		if errors.Is(err, etikapi.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get shows: %w", err)
	}
	return shows, nil
}

func (s *service) GetShows(ctx context.Context, eventID int64) ([]ShowResponse, error) {
	shows, err := s.ListShows(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return toShowResponses(shows, s.now()), nil
}

func (s *service) GetMarketplaceEvent(ctx context.Context, slug string) (*MarketplaceEventResponse, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, ErrEventNotFound
	}

	var event MarketplaceEvent
	err := s.cacheService.GetOrSet(ctx, constants.BuildMarketplaceEventKey(slug), constants.TTL_MARKETPLACE_EVENT,
		func() (interface{}, error) {
			log.Printf("🔍 Cache miss: fetching marketplace event %s", slug)
			return s.repo.GetMarketplaceEvent(ctx, slug)
		}, &event)
	if err != nil {
		if errors.Is(err, etikapi.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get marketplace event: %w", err)
	}

	return &MarketplaceEventResponse{
		ID:          event.ID,
		Slug:        event.Slug,
		Name:        event.Name,
		Description: event.Description,
		Venue:       event.Venue,
		BannerURL:   event.BannerURL,
		Shows:       toShowResponses(event.Shows, s.now()),
	}, nil
}

// GetCustomerTransaction is never cached: payment status moves
func (s *service) GetCustomerTransaction(ctx context.Context, transactionID int64, token string) (*Transaction, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrInvalidToken
	}

	tx, err := s.repo.GetCustomerTransaction(ctx, transactionID, token)
	if err != nil {
		if errors.Is(err, etikapi.ErrNotFound) || errors.Is(err, etikapi.ErrForbidden) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}

func (s *service) InvalidateShows(ctx context.Context, eventID int64) error {
	if err := s.cacheService.Delete(ctx, constants.BuildEventShowsKey(eventID)); err != nil {
		return fmt.Errorf("failed to invalidate shows cache: %w", err)
	}
	log.Printf("🗑️ Invalidated show cache for event %d", eventID)
	return nil
}

func (s *service) InvalidateAllShows(ctx context.Context) error {
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_EVENT_SHOWS); err != nil {
		return fmt.Errorf("failed to invalidate shows cache: %w", err)
	}
	log.Println("🗑️ Invalidated show cache for all events")
	return nil
}

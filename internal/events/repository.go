package events

import (
	"context"
)

// Repository is where catalog data comes from; the ETIK client satisfies it
type Repository interface {
	ListShows(ctx context.Context, eventID int64) ([]Show, error)
	GetMarketplaceEvent(ctx context.Context, slug string) (*MarketplaceEvent, error)
	GetCustomerTransaction(ctx context.Context, transactionID int64, token string) (*Transaction, error)
}

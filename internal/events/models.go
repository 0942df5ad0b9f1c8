package events

import (
	"time"

	"etik/pkg/etikapi"
)

type (
	Show             = etikapi.Show
	TicketCategory   = etikapi.TicketCategory
	MarketplaceEvent = etikapi.MarketplaceEvent
	Transaction      = etikapi.Transaction
)

// ShowResponse is a show of the event studio catalog with its timing status
type ShowResponse struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	StartTime        time.Time        `json:"start_time"`
	EndTime          time.Time        `json:"end_time"`
	Status           Status           `json:"status"`
	TicketCategories []TicketCategory `json:"ticket_categories"`
}

type MarketplaceEventResponse struct {
	ID          int64          `json:"id"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Venue       string         `json:"venue"`
	BannerURL   string         `json:"banner_url"`
	Shows       []ShowResponse `json:"shows"`
}

func toShowResponse(show Show, now time.Time) ShowResponse {
	categories := show.TicketCategories
	if categories == nil {
		categories = []TicketCategory{}
	}
	return ShowResponse{
		ID:               show.ID,
		Name:             show.Name,
		StartTime:        show.StartTime,
		EndTime:          show.EndTime,
		Status:           ShowStatus(show, now),
		TicketCategories: categories,
	}
}

func toShowResponses(shows []Show, now time.Time) []ShowResponse {
	out := make([]ShowResponse, 0, len(shows))
	for _, show := range shows {
		out = append(out, toShowResponse(show, now))
	}
	return out
}

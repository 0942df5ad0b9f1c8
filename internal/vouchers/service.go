package vouchers

import (
	"context"
	"errors"
	"fmt"
	"math"

	"etik/pkg/etikapi"
	"etik/pkg/logger"

	"github.com/go-playground/validator/v10"
)

var (
	ErrCampaignNotFound = errors.New("voucher campaign not found")
	ErrForbidden        = errors.New("not allowed to manage vouchers of this event")
)

// ValidationError lists every field problem of a campaign request
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInvalidCampaign, e.Fields)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidCampaign
}

type Service interface {
	ListCampaigns(ctx context.Context, eventID int64, query ListQuery) (*PaginatedCampaigns, error)
	GetCampaign(ctx context.Context, eventID, campaignID int64) (*CampaignResponse, error)
	CreateCampaign(ctx context.Context, eventID int64, userID string, req CampaignRequest) (*CampaignResponse, error)
	// UpdateCampaign falls back to a read-only view when the backend refuses the edit
	UpdateCampaign(ctx context.Context, eventID, campaignID int64, userID string, req CampaignRequest) (*CampaignResponse, error)
	DeleteCampaign(ctx context.Context, eventID, campaignID int64, userID string) error
	ListVouchers(ctx context.Context, eventID, campaignID int64, query ListQuery) (*PaginatedVouchers, error)
}

type service struct {
	repo      Repository
	validator *validator.Validate
	logger    *logger.Logger
}

func NewService(repo Repository, l *logger.Logger) Service {
	return &service{
		repo:      repo,
		validator: newValidator(),
		logger:    l,
	}
}

func (s *service) ListCampaigns(ctx context.Context, eventID int64, query ListQuery) (*PaginatedCampaigns, error) {
	q := query.toAPI()
	page, err := s.repo.ListVoucherCampaigns(ctx, eventID, q)
	if err != nil {
		return nil, mapError(err)
	}

	campaigns := page.Items
	if campaigns == nil {
		campaigns = []Campaign{}
	}
	return &PaginatedCampaigns{
		Campaigns:  campaigns,
		TotalCount: page.TotalCount,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: totalPages(page.TotalCount, q.Limit),
	}, nil
}

func (s *service) GetCampaign(ctx context.Context, eventID, campaignID int64) (*CampaignResponse, error) {
	campaign, err := s.repo.GetVoucherCampaign(ctx, eventID, campaignID)
	if err != nil {
		return nil, mapError(err)
	}
	return &CampaignResponse{Campaign: campaign, Editable: true}, nil
}

func (s *service) CreateCampaign(ctx context.Context, eventID int64, userID string, req CampaignRequest) (*CampaignResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	campaign, err := s.repo.CreateVoucherCampaign(ctx, eventID, req.toInput())
	if err != nil {
		return nil, mapError(err)
	}

	s.logger.LogVoucherCampaignChanged(ctx, "Created", eventID, campaign.ID, userID)
	return &CampaignResponse{Campaign: campaign, Editable: true}, nil
}

func (s *service) UpdateCampaign(ctx context.Context, eventID, campaignID int64, userID string, req CampaignRequest) (*CampaignResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	campaign, err := s.repo.UpdateVoucherCampaign(ctx, eventID, campaignID, req.toInput())
	if errors.Is(err, etikapi.ErrForbidden) {
		current, getErr := s.repo.GetVoucherCampaign(ctx, eventID, campaignID)
		if getErr != nil {
			return nil, mapError(getErr)
		}
		return &CampaignResponse{Campaign: current, Editable: false}, nil
	}
	if err != nil {
		return nil, mapError(err)
	}

	s.logger.LogVoucherCampaignChanged(ctx, "Updated", eventID, campaignID, userID)
	return &CampaignResponse{Campaign: campaign, Editable: true}, nil
}

func (s *service) DeleteCampaign(ctx context.Context, eventID, campaignID int64, userID string) error {
	if err := s.repo.DeleteVoucherCampaign(ctx, eventID, campaignID); err != nil {
		return mapError(err)
	}
	s.logger.LogVoucherCampaignChanged(ctx, "Deleted", eventID, campaignID, userID)
	return nil
}

func (s *service) ListVouchers(ctx context.Context, eventID, campaignID int64, query ListQuery) (*PaginatedVouchers, error) {
	q := query.toAPI()
	page, err := s.repo.ListVouchers(ctx, eventID, campaignID, q)
	if err != nil {
		return nil, mapError(err)
	}

	items := page.Items
	if items == nil {
		items = []Voucher{}
	}
	return &PaginatedVouchers{
		Vouchers:   items,
		TotalCount: page.TotalCount,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: totalPages(page.TotalCount, q.Limit),
	}, nil
}

func (s *service) validate(req CampaignRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return &ValidationError{Fields: describe(err)}
	}
	return nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, etikapi.ErrNotFound):
		return ErrCampaignNotFound
	case errors.Is(err, etikapi.ErrForbidden):
		return ErrForbidden
	}
	return fmt.Errorf("voucher backend request failed: %w", err)
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

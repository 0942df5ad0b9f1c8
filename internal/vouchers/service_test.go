package vouchers

import (
	"context"
	"errors"
	"testing"
	"time"

	"etik/pkg/etikapi"
	"etik/pkg/logger"
)

type fakeRepo struct {
	campaigns map[int64]*Campaign
	updateErr error
	lastInput CampaignInput
	lastQuery etikapi.ListQuery
	vouchers  []Voucher
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{campaigns: map[int64]*Campaign{
		7: {ID: 7, EventID: 1, Name: "Early bird", DiscountType: etikapi.DiscountTypePercentage, DiscountValue: 10},
	}}
}

func (f *fakeRepo) ListVoucherCampaigns(_ context.Context, _ int64, q etikapi.ListQuery) (*etikapi.Page[Campaign], error) {
	f.lastQuery = q
	var items []Campaign
	for _, c := range f.campaigns {
		items = append(items, *c)
	}
	return &etikapi.Page[Campaign]{Items: items, TotalCount: 21}, nil
}

func (f *fakeRepo) GetVoucherCampaign(_ context.Context, _, campaignID int64) (*Campaign, error) {
	c, ok := f.campaigns[campaignID]
	if !ok {
		return nil, &etikapi.APIError{StatusCode: 404, Message: "not found"}
	}
	return c, nil
}

func (f *fakeRepo) CreateVoucherCampaign(_ context.Context, eventID int64, input CampaignInput) (*Campaign, error) {
	f.lastInput = input
	c := &Campaign{ID: 8, EventID: eventID, Name: input.Name, DiscountType: input.DiscountType, DiscountValue: input.DiscountValue}
	f.campaigns[c.ID] = c
	return c, nil
}

func (f *fakeRepo) UpdateVoucherCampaign(_ context.Context, _, campaignID int64, input CampaignInput) (*Campaign, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.lastInput = input
	c, ok := f.campaigns[campaignID]
	if !ok {
		return nil, &etikapi.APIError{StatusCode: 404, Message: "not found"}
	}
	c.Name = input.Name
	return c, nil
}

func (f *fakeRepo) DeleteVoucherCampaign(_ context.Context, _, campaignID int64) error {
	if _, ok := f.campaigns[campaignID]; !ok {
		return &etikapi.APIError{StatusCode: 404, Message: "not found"}
	}
	delete(f.campaigns, campaignID)
	return nil
}

func (f *fakeRepo) ListVouchers(_ context.Context, _, _ int64, q etikapi.ListQuery) (*etikapi.Page[Voucher], error) {
	f.lastQuery = q
	return &etikapi.Page[Voucher]{Items: f.vouchers, TotalCount: int64(len(f.vouchers))}, nil
}

func validRequest() CampaignRequest {
	start := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	return CampaignRequest{
		Name:          "Launch week",
		DiscountType:  etikapi.DiscountTypePercentage,
		DiscountValue: 15,
		StartTime:     start,
		EndTime:       start.Add(7 * 24 * time.Hour),
	}
}

func intPtr(v int) *int { return &v }

func TestCreateCampaign(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, logger.New())

	resp, err := svc.CreateCampaign(context.Background(), 1, "owner-1", validRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !resp.Editable || resp.Campaign.ID != 8 {
		t.Errorf("unexpected response %+v", resp)
	}
	if repo.lastInput.ApplicableShowIDs == nil || repo.lastInput.ApplicableCategoryIDs == nil {
		t.Error("empty scope lists should be sent as empty arrays")
	}
}

func TestCreateCampaignValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CampaignRequest)
		field  string
	}{
		{"percentage above 100", func(r *CampaignRequest) { r.DiscountValue = 120 }, "discount_value cannot exceed 100 for a percentage discount"},
		{"end before start", func(r *CampaignRequest) { r.EndTime = r.StartTime.Add(-time.Hour) }, "end_time must be after start_time"},
		{"max discount on fixed", func(r *CampaignRequest) {
			r.DiscountType = etikapi.DiscountTypeFixed
			v := 50.0
			r.MaxDiscount = &v
		}, "max_discount only applies to percentage discounts"},
		{"per customer above total", func(r *CampaignRequest) {
			r.TotalUsageLimit = intPtr(5)
			r.PerCustomerLimit = intPtr(6)
		}, "per_customer_limit cannot exceed total_usage_limit"},
		{"duplicate shows", func(r *CampaignRequest) { r.ApplicableShowIDs = []int64{1, 1} }, "applicable_show_ids contains duplicates"},
		{"missing name", func(r *CampaignRequest) { r.Name = "" }, "name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeRepo(), logger.New())
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.CreateCampaign(context.Background(), 1, "owner-1", req)
			if !errors.Is(err, ErrInvalidCampaign) {
				t.Fatalf("expected invalid campaign, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			found := false
			for _, f := range verr.Fields {
				if f == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %q in %v", tt.field, verr.Fields)
			}
		})
	}
}

func TestUpdateCampaignForbiddenFallsBackToReadOnly(t *testing.T) {
	repo := newFakeRepo()
	repo.updateErr = &etikapi.APIError{StatusCode: 403, Message: "campaign already started"}
	svc := NewService(repo, logger.New())

	resp, err := svc.UpdateCampaign(context.Background(), 1, 7, "owner-1", validRequest())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.Editable {
		t.Error("campaign should be reported as not editable")
	}
	if resp.Campaign.Name != "Early bird" {
		t.Errorf("expected current values, got %q", resp.Campaign.Name)
	}
}

func TestUpdateCampaign(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, logger.New())

	resp, err := svc.UpdateCampaign(context.Background(), 1, 7, "owner-1", validRequest())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !resp.Editable || resp.Campaign.Name != "Launch week" {
		t.Errorf("unexpected response %+v", resp.Campaign)
	}
}

func TestGetAndDeleteNotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), logger.New())

	if _, err := svc.GetCampaign(context.Background(), 1, 99); !errors.Is(err, ErrCampaignNotFound) {
		t.Errorf("get: expected not found, got %v", err)
	}
	if err := svc.DeleteCampaign(context.Background(), 1, 99, "owner-1"); !errors.Is(err, ErrCampaignNotFound) {
		t.Errorf("delete: expected not found, got %v", err)
	}
	if err := svc.DeleteCampaign(context.Background(), 1, 7, "owner-1"); err != nil {
		t.Errorf("delete: %v", err)
	}
}

func TestListCampaignsPagination(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, logger.New())

	page, err := svc.ListCampaigns(context.Background(), 1, ListQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastQuery.Page != 1 || repo.lastQuery.Limit != 10 {
		t.Errorf("expected default paging, got %+v", repo.lastQuery)
	}
	if page.TotalPages != 3 || len(page.Campaigns) != 1 {
		t.Errorf("unexpected page %+v", page)
	}

	vouchers, err := svc.ListVouchers(context.Background(), 1, 7, ListQuery{Page: 2, Limit: 5})
	if err != nil {
		t.Fatalf("list vouchers: %v", err)
	}
	if vouchers.Vouchers == nil || vouchers.Page != 2 {
		t.Errorf("unexpected vouchers page %+v", vouchers)
	}
}

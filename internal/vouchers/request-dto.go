package vouchers

import (
	"time"

	"etik/pkg/etikapi"
)

// CampaignRequest is the create/update body of a voucher campaign
type CampaignRequest struct {
	Name                  string               `json:"name" validate:"required,min=3,max=255"`
	Description           string               `json:"description" validate:"max=2000"`
	DiscountType          etikapi.DiscountType `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue         float64              `json:"discount_value" validate:"gt=0"`
	MaxDiscount           *float64             `json:"max_discount" validate:"omitempty,gte=0"`
	MinOrderValue         float64              `json:"min_order_value" validate:"gte=0"`
	StartTime             time.Time            `json:"start_time" validate:"required"`
	EndTime               time.Time            `json:"end_time" validate:"required,gtfield=StartTime"`
	TotalUsageLimit       *int                 `json:"total_usage_limit" validate:"omitempty,min=1"`
	PerCustomerLimit      *int                 `json:"per_customer_limit" validate:"omitempty,min=1"`
	ApplicableShowIDs     []int64              `json:"applicable_show_ids" validate:"omitempty,unique,dive,min=1"`
	ApplicableCategoryIDs []int64              `json:"applicable_category_ids" validate:"omitempty,unique,dive,min=1"`
	VoucherCodes          []string             `json:"voucher_codes" validate:"omitempty,max=1000,unique,dive,alphanum,min=3,max=32"`
}

type ListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search" binding:"omitempty,max=100"`
}

func (r CampaignRequest) toInput() CampaignInput {
	return CampaignInput{
		Name:                  r.Name,
		Description:           r.Description,
		DiscountType:          r.DiscountType,
		DiscountValue:         r.DiscountValue,
		MaxDiscount:           r.MaxDiscount,
		MinOrderValue:         r.MinOrderValue,
		StartTime:             r.StartTime,
		EndTime:               r.EndTime,
		TotalUsageLimit:       r.TotalUsageLimit,
		PerCustomerLimit:      r.PerCustomerLimit,
		ApplicableShowIDs:     nonNil(r.ApplicableShowIDs),
		ApplicableCategoryIDs: nonNil(r.ApplicableCategoryIDs),
		VoucherCodes:          r.VoucherCodes,
	}
}

func (q ListQuery) toAPI() etikapi.ListQuery {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	return etikapi.ListQuery{Page: q.Page, Limit: q.Limit, Search: q.Search}
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

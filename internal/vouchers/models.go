package vouchers

import (
	"context"

	"etik/pkg/etikapi"
)

type (
	Campaign      = etikapi.VoucherCampaign
	Voucher       = etikapi.Voucher
	CampaignInput = etikapi.VoucherCampaignInput
)

// Repository is the ETIK voucher campaign endpoint set
type Repository interface {
	ListVoucherCampaigns(ctx context.Context, eventID int64, q etikapi.ListQuery) (*etikapi.Page[Campaign], error)
	GetVoucherCampaign(ctx context.Context, eventID, campaignID int64) (*Campaign, error)
	CreateVoucherCampaign(ctx context.Context, eventID int64, input CampaignInput) (*Campaign, error)
	UpdateVoucherCampaign(ctx context.Context, eventID, campaignID int64, input CampaignInput) (*Campaign, error)
	DeleteVoucherCampaign(ctx context.Context, eventID, campaignID int64) error
	ListVouchers(ctx context.Context, eventID, campaignID int64, q etikapi.ListQuery) (*etikapi.Page[Voucher], error)
}

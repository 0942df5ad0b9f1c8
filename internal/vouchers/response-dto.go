package vouchers

// CampaignResponse carries a campaign and whether this operator may edit it
type CampaignResponse struct {
	Campaign *Campaign `json:"campaign"`
	Editable bool      `json:"editable"`
}

type PaginatedCampaigns struct {
	Campaigns  []Campaign `json:"campaigns"`
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
}

type PaginatedVouchers struct {
	Vouchers   []Voucher `json:"vouchers"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

package etikapi

import "time"

// HistoryType is the kind of a check-in history entry
type HistoryType string

const (
	HistoryCheckInType  HistoryType = "check-in"
	HistoryCheckOutType HistoryType = "check-out"
)

// TicketStatus mirrors the backend ticket status enum
type TicketStatus string

const (
	TicketStatusNormal    TicketStatus = "normal"
	TicketStatusCancelled TicketStatus = "cancelled"
	TicketStatusLocked    TicketStatus = "locked"
)

// Creator is the staff member who recorded a history entry
type Creator struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// HistoryCheckIn is an append-only check-in/check-out record
type HistoryCheckIn struct {
	ID        int64       `json:"id"`
	Type      HistoryType `json:"type"`
	CreatedAt time.Time   `json:"createdAt"`
	Creator   *Creator    `json:"creator,omitempty"`
}

type Ticket struct {
	ID              int64            `json:"id"`
	Code            string           `json:"code"`
	HolderName      string           `json:"holderName"`
	HolderEmail     string           `json:"holderEmail"`
	HolderPhone     string           `json:"holderPhone"`
	Status          TicketStatus     `json:"status"`
	HistoryCheckIns []HistoryCheckIn `json:"historyCheckIns"`
}

type Show struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	StartTime        time.Time        `json:"startTime"`
	EndTime          time.Time        `json:"endTime"`
	TicketCategories []TicketCategory `json:"ticketCategories,omitempty"`
}

type TicketCategory struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	ShowID int64   `json:"showId"`
	Show   *Show   `json:"show,omitempty"`
}

// TransactionTicketCategory is a line item of a transaction
type TransactionTicketCategory struct {
	ID               int64          `json:"id"`
	TicketCategoryID int64          `json:"ticketCategoryId"`
	TicketCategory   TicketCategory `json:"ticketCategory"`
	Tickets          []Ticket       `json:"tickets"`
}

type Transaction struct {
	ID                          int64                       `json:"id"`
	Name                        string                      `json:"name"`
	Email                       string                      `json:"email"`
	PhoneNumber                 string                      `json:"phoneNumber"`
	PaymentStatus               string                      `json:"paymentStatus"`
	EventName                   string                      `json:"eventName,omitempty"`
	CreatedAt                   time.Time                   `json:"createdAt"`
	TransactionTicketCategories []TransactionTicketCategory `json:"transactionTicketCategories"`
}

// CheckInItem selects tickets of one transaction line item for a
// check-in or check-out mutation. IsAll covers the whole line item.
type CheckInItem struct {
	TransactionTicketCategoryID int64   `json:"transactionTicketCategoryId"`
	IsAll                       bool    `json:"isAll"`
	TicketIDs                   []int64 `json:"ticketIds,omitempty"`
}

type CheckInPayload struct {
	TransactionID int64         `json:"transactionId"`
	Items         []CheckInItem `json:"items"`
}

type MarketplaceEvent struct {
	ID          int64  `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Venue       string `json:"venue"`
	BannerURL   string `json:"bannerUrl"`
	Shows       []Show `json:"shows"`
}

// Voucher campaigns

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

type VoucherCampaign struct {
	ID                    int64        `json:"id"`
	EventID               int64        `json:"eventId"`
	Name                  string       `json:"name"`
	Description           string       `json:"description"`
	DiscountType          DiscountType `json:"discountType"`
	DiscountValue         float64      `json:"discountValue"`
	MaxDiscount           *float64     `json:"maxDiscount,omitempty"`
	MinOrderValue         float64      `json:"minOrderValue"`
	StartTime             time.Time    `json:"startTime"`
	EndTime               time.Time    `json:"endTime"`
	TotalUsageLimit       *int         `json:"totalUsageLimit,omitempty"`
	PerCustomerLimit      *int         `json:"perCustomerLimit,omitempty"`
	ApplicableShowIDs     []int64      `json:"applicableShowIds"`
	ApplicableCategoryIDs []int64      `json:"applicableCategoryIds"`
	UsedCount             int          `json:"usedCount"`
	Status                string       `json:"status"`
}

type Voucher struct {
	ID         int64  `json:"id"`
	CampaignID int64  `json:"campaignId"`
	Code       string `json:"code"`
	UsedCount  int    `json:"usedCount"`
	UsageLimit *int   `json:"usageLimit,omitempty"`
}

// VoucherCampaignInput is the create/update body for a campaign
type VoucherCampaignInput struct {
	Name                  string       `json:"name"`
	Description           string       `json:"description"`
	DiscountType          DiscountType `json:"discountType"`
	DiscountValue         float64      `json:"discountValue"`
	MaxDiscount           *float64     `json:"maxDiscount,omitempty"`
	MinOrderValue         float64      `json:"minOrderValue"`
	StartTime             time.Time    `json:"startTime"`
	EndTime               time.Time    `json:"endTime"`
	TotalUsageLimit       *int         `json:"totalUsageLimit,omitempty"`
	PerCustomerLimit      *int         `json:"perCustomerLimit,omitempty"`
	ApplicableShowIDs     []int64      `json:"applicableShowIds"`
	ApplicableCategoryIDs []int64      `json:"applicableCategoryIds"`
	VoucherCodes          []string     `json:"voucherCodes,omitempty"`
}

type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
}

// PresignedUpload is returned by the storage endpoint
type PresignedUpload struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	Key       string `json:"key"`
}

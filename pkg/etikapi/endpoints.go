package etikapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Check-in / check-out

// GetCheckInTransaction looks up the transaction behind a scanned eCode
func (c *Client) GetCheckInTransaction(ctx context.Context, eventID int64, eCode string) (*Transaction, error) {
	var tx Transaction
	path := studioPath(eventID, "/check-in/transactions/%s", url.PathEscape(eCode))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (c *Client) CheckIn(ctx context.Context, eventID int64, payload CheckInPayload) error {
	return c.do(ctx, http.MethodPost, studioPath(eventID, "/check-in"), nil, payload, nil)
}

func (c *Client) CheckOut(ctx context.Context, eventID int64, payload CheckInPayload) error {
	return c.do(ctx, http.MethodPost, studioPath(eventID, "/check-out"), nil, payload, nil)
}

// Catalog

func (c *Client) ListShows(ctx context.Context, eventID int64) ([]Show, error) {
	var shows []Show
	if err := c.do(ctx, http.MethodGet, studioPath(eventID, "/shows"), nil, nil, &shows); err != nil {
		return nil, err
	}
	return shows, nil
}

func (c *Client) GetMarketplaceEvent(ctx context.Context, slug string) (*MarketplaceEvent, error) {
	var event MarketplaceEvent
	path := fmt.Sprintf("/marketplace/events/%s", url.PathEscape(slug))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// GetCustomerTransaction fetches an order using the customer's access token
func (c *Client) GetCustomerTransaction(ctx context.Context, transactionID int64, token string) (*Transaction, error) {
	var tx Transaction
	query := url.Values{}
	query.Set("token", token)
	path := fmt.Sprintf("/customers/transactions/%d", transactionID)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// Voucher campaigns

func (c *Client) ListVoucherCampaigns(ctx context.Context, eventID int64, q ListQuery) (*Page[VoucherCampaign], error) {
	var page Page[VoucherCampaign]
	if err := c.do(ctx, http.MethodGet, studioPath(eventID, "/voucher-campaigns"), listValues(q), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetVoucherCampaign(ctx context.Context, eventID, campaignID int64) (*VoucherCampaign, error) {
	var campaign VoucherCampaign
	if err := c.do(ctx, http.MethodGet, studioPath(eventID, "/voucher-campaigns/%d", campaignID), nil, nil, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (c *Client) CreateVoucherCampaign(ctx context.Context, eventID int64, input VoucherCampaignInput) (*VoucherCampaign, error) {
	var campaign VoucherCampaign
	if err := c.do(ctx, http.MethodPost, studioPath(eventID, "/voucher-campaigns"), nil, input, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (c *Client) UpdateVoucherCampaign(ctx context.Context, eventID, campaignID int64, input VoucherCampaignInput) (*VoucherCampaign, error) {
	var campaign VoucherCampaign
	if err := c.do(ctx, http.MethodPut, studioPath(eventID, "/voucher-campaigns/%d", campaignID), nil, input, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (c *Client) DeleteVoucherCampaign(ctx context.Context, eventID, campaignID int64) error {
	return c.do(ctx, http.MethodDelete, studioPath(eventID, "/voucher-campaigns/%d", campaignID), nil, nil, nil)
}

func (c *Client) ListVouchers(ctx context.Context, eventID, campaignID int64, q ListQuery) (*Page[Voucher], error) {
	var page Page[Voucher]
	path := studioPath(eventID, "/voucher-campaigns/%d/vouchers", campaignID)
	if err := c.do(ctx, http.MethodGet, path, listValues(q), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Uploads

type presignRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// RequestPresignedURL asks the backend for a storage upload slot
func (c *Client) RequestPresignedURL(ctx context.Context, fileName, contentType string) (*PresignedUpload, error) {
	var upload PresignedUpload
	body := presignRequest{FileName: fileName, ContentType: contentType}
	if err := c.do(ctx, http.MethodPost, "/common/s3/presigned-url", nil, body, &upload); err != nil {
		return nil, err
	}
	return &upload, nil
}

// PutObject uploads raw bytes straight to a presigned storage URL. The
// storage endpoint is not the ETIK backend so no bearer token is sent.
func (c *Client) PutObject(ctx context.Context, uploadURL, contentType string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(data))

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("storage upload failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: "storage upload rejected"}
	}
	return nil
}

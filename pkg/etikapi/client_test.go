package etikapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/", Token: "secret"}, srv.Client(), nil)
}

func TestGetCheckInTransaction(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/event-studio/events/7/check-in/transactions/ABC-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"message":"ok","data":{"id":42,"name":"Ann","transactionTicketCategories":[
			{"id":1,"ticketCategory":{"id":3,"name":"VIP","showId":9},"tickets":[
				{"id":100,"status":"normal","historyCheckIns":[{"id":1,"type":"check-in","createdAt":"2026-01-02T10:00:00Z"}]}
			]}
		]}}`)
	})

	tx, err := client.GetCheckInTransaction(context.Background(), 7, "ABC-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.ID != 42 || len(tx.TransactionTicketCategories) != 1 {
		t.Fatalf("unexpected transaction %+v", tx)
	}
	ticket := tx.TransactionTicketCategories[0].Tickets[0]
	if ticket.HistoryCheckIns[0].Type != HistoryCheckInType {
		t.Errorf("expected check-in history, got %q", ticket.HistoryCheckIns[0].Type)
	}
	want := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	if !ticket.HistoryCheckIns[0].CreatedAt.Equal(want) {
		t.Errorf("unexpected createdAt %v", ticket.HistoryCheckIns[0].CreatedAt)
	}
}

func TestCheckInSendsPayload(t *testing.T) {
	var got CheckInPayload
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/event-studio/events/7/check-out" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	})

	payload := CheckInPayload{
		TransactionID: 42,
		Items: []CheckInItem{
			{TransactionTicketCategoryID: 1, IsAll: true},
			{TransactionTicketCategoryID: 2, TicketIDs: []int64{5, 6}},
		},
	}
	if err := client.CheckOut(context.Background(), 7, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TransactionID != 42 || len(got.Items) != 2 || !got.Items[0].IsAll || len(got.Items[1].TicketIDs) != 2 {
		t.Errorf("payload not forwarded: %+v", got)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		target error
	}{
		{"not found", http.StatusNotFound, ErrNotFound},
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, `{"message":"nope"}`)
			})

			_, err := client.GetVoucherCampaign(context.Background(), 1, 2)
			if !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}
			if StatusCode(err) != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, StatusCode(err))
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.Message != "nope" {
				t.Errorf("expected backend message, got %v", err)
			}
		})
	}
}

func TestListVoucherCampaignsQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("limit") != "5" || q.Get("search") != "early" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		io.WriteString(w, `{"data":{"items":[{"id":1,"name":"Early bird"}],"totalCount":1,"page":2,"limit":5}}`)
	})

	page, err := client.ListVoucherCampaigns(context.Background(), 3, ListQuery{Page: 2, Limit: 5, Search: "early"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "Early bird" {
		t.Errorf("unexpected page %+v", page)
	}
}

func TestPutObjectSkipsBearer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("storage upload must not carry the backend token")
		}
		if r.Header.Get("Content-Type") != "image/png" {
			t.Errorf("unexpected content type %q", r.Header.Get("Content-Type"))
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "png-bytes" {
			t.Errorf("unexpected body %q", body)
		}
	})

	if err := client.PutObject(context.Background(), client.baseURL+"/bucket/key", "image/png", []byte("png-bytes")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

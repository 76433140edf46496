package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinoapp/checkout/internal/model"
)

func TestFetchSeatMap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/tickets/screenings/7/seats/", r.URL.Path)
		_ = json.NewEncoder(w).Encode(model.SeatMap{
			"0": {{ID: 1, Row: 1, SeatNumber: 1, Reserved: false}, {ID: 2, Row: 1, SeatNumber: 2, Reserved: true}},
			"1": {{ID: 3, Row: 2, SeatNumber: 1, Reserved: false}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	m, err := c.FetchSeatMap(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, m, 2)
	require.Len(t, m["0"], 2)
	assert.True(t, m["0"][1].Reserved)
}

func TestFetchSeatMapUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.FetchSeatMap(context.Background(), 7)
	assert.Error(t, err)
}

func TestCheckPromotion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tickets/check-promotion/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req PromotionCheckRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, uint64(7), req.ScreeningID)
		assert.Equal(t, 1, req.TicketTypeID)
		assert.Equal(t, []model.SeatRef{{RowNumber: 1, SeatNumber: 5}, {RowNumber: 1, SeatNumber: 6}}, req.SeatIDs)

		_, _ = w.Write([]byte(`{"final_price": 54.00, "promotion": {"name": "Wtorek -10%", "discount_percent": 10}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	preview, err := c.CheckPromotion(context.Background(), PromotionCheckRequest{
		ScreeningID:  7,
		TicketTypeID: 1,
		SeatIDs:      []model.SeatRef{{RowNumber: 1, SeatNumber: 5}, {RowNumber: 1, SeatNumber: 6}},
	})
	require.NoError(t, err)
	assert.True(t, preview.FinalPrice.Equal(decimal.New(5400, -2)))
	require.NotNil(t, preview.Promotion)
	assert.Equal(t, "Wtorek -10%", preview.Promotion.Name)
}

func TestCheckPromotionNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"final_price": 60.00, "promotion": null}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	preview, err := c.CheckPromotion(context.Background(), PromotionCheckRequest{ScreeningID: 7, TicketTypeID: 1})
	require.NoError(t, err)
	assert.Nil(t, preview.Promotion)
}

func TestCheckPromotionUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.CheckPromotion(context.Background(), PromotionCheckRequest{ScreeningID: 7, TicketTypeID: 1})
	assert.Error(t, err)
}

func purchaseResponseBody() string {
	return `{
		"total_price": 54.00,
		"order_number": "A100",
		"customer_info": {"first_name": "Jan", "last_name": "Kowalski", "email": "jan@example.com", "phone": "+48 600 000 000"},
		"tickets": [
			{"screening": {"id": 7, "movie": "Diuna", "start_time": "2026-03-14T20:30:00", "auditorium_id": 2},
			 "seat": {"row_number": 1, "seat_number": 5}, "ticket_type": "normalny", "price": 27.00},
			{"screening": {"id": 7, "movie": "Diuna", "start_time": "2026-03-14T20:30:00", "auditorium_id": 2},
			 "seat": {"row_number": 1, "seat_number": 6}, "ticket_type": "normalny", "price": 27.00}
		]
	}`
}

func TestPurchase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tickets/purchase/", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		var req PurchaseRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Tickets, 2)
		assert.Equal(t, 1, req.Tickets[0].TicketTypeID)
		assert.Equal(t, "jan@example.com", req.Tickets[1].Email, "contact fields are duplicated onto every line")

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(purchaseResponseBody()))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	ticket := PurchaseTicket{
		TicketTypeID: 1,
		Seats:        []model.SeatRef{{RowNumber: 1, SeatNumber: 5}},
		FirstName:    "Jan", LastName: "Kowalski",
		Email: "jan@example.com", PhoneNumber: "+48 600 000 000",
	}
	second := ticket
	second.Seats = []model.SeatRef{{RowNumber: 1, SeatNumber: 6}}

	resp, err := c.Purchase(context.Background(), PurchaseRequest{ScreeningID: 7, Tickets: []PurchaseTicket{ticket, second}}, "token-123")
	require.NoError(t, err)
	assert.Equal(t, "A100", resp.OrderNumber)
	assert.True(t, resp.TotalPrice.Equal(decimal.New(5400, -2)))
	require.Len(t, resp.Tickets, 2)
	assert.Equal(t, "Diuna", resp.Tickets[0].Screening.Movie)
}

func TestPurchaseWithoutBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(purchaseResponseBody()))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Purchase(context.Background(), PurchaseRequest{ScreeningID: 7}, "")
	assert.NoError(t, err)
}

func TestPurchaseValidationErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"tickets": [{"email": ["Nieprawidłowy email"]}, {"phone_number": ["Nieprawidłowy numer"]}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Purchase(context.Background(), PurchaseRequest{ScreeningID: 7}, "")

	var perr *PurchaseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusBadRequest, perr.StatusCode)
	assert.Equal(t, []string{"Nieprawidłowy email", "Nieprawidłowy numer"}, perr.FieldMessages)
}

func TestPurchaseOpaqueFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Purchase(context.Background(), PurchaseRequest{ScreeningID: 7}, "")

	var perr *PurchaseError
	require.ErrorAs(t, err, &perr)
	assert.Empty(t, perr.FieldMessages)
}

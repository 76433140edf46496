// Package upstream is the HTTP client for the ticketing backend: seat
// maps, promotion previews and purchases.  All three operations are
// at-most-once from this side; no retries are attempted here.
package upstream

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "time"

    "github.com/kinoapp/checkout/internal/model"
)

// Client talks to the ticketing backend REST API.
type Client struct {
    baseURL string
    http    *http.Client
}

// New returns a Client for the backend at baseURL.  The timeout bounds
// every request including body read.
func New(baseURL string, timeout time.Duration) *Client {
    if timeout <= 0 {
        timeout = 10 * time.Second
    }
    return &Client{
        baseURL: baseURL,
        http:    &http.Client{Timeout: timeout},
    }
}

// FetchSeatMap retrieves the seat availability snapshot for a
// screening, grouped by row key.  The snapshot does not live-update;
// seats taken by others after the fetch surface only at purchase time.
func (c *Client) FetchSeatMap(ctx context.Context, screeningID uint64) (model.SeatMap, error) {
    url := fmt.Sprintf("%s/tickets/screenings/%d/seats/", c.baseURL, screeningID)
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
    if err != nil {
        return nil, err
    }
    resp, err := c.http.Do(req)
    if err != nil {
        return nil, fmt.Errorf("fetch seat map: %w", err)
    }
    defer func() { _ = resp.Body.Close() }()
    if resp.StatusCode != http.StatusOK {
        return nil, fmt.Errorf("fetch seat map: status %d", resp.StatusCode)
    }
    var m model.SeatMap
    if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
        return nil, fmt.Errorf("fetch seat map: decode: %w", err)
    }
    return m, nil
}

// CheckPromotion asks the backend for a discounted total for the given
// screening, ticket category and seats.  The call is read-only on the
// backend and safe to repeat on every relevant change.
func (c *Client) CheckPromotion(ctx context.Context, pr PromotionCheckRequest) (*model.PromotionPreview, error) {
    body, err := json.Marshal(pr)
    if err != nil {
        return nil, err
    }
    url := c.baseURL + "/tickets/check-promotion/"
    req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
    if err != nil {
        return nil, err
    }
    req.Header.Set("Content-Type", "application/json")
    resp, err := c.http.Do(req)
    if err != nil {
        return nil, fmt.Errorf("check promotion: %w", err)
    }
    defer func() { _ = resp.Body.Close() }()
    if resp.StatusCode < 200 || resp.StatusCode > 299 {
        return nil, fmt.Errorf("check promotion: status %d", resp.StatusCode)
    }
    var preview model.PromotionPreview
    if err := json.NewDecoder(resp.Body).Decode(&preview); err != nil {
        return nil, fmt.Errorf("check promotion: decode: %w", err)
    }
    return &preview, nil
}

// Purchase submits the atomic ticket purchase.  The bearer token, when
// non-empty, is forwarded so the backend can tie the order to the
// customer's account.  A non-201 answer comes back as *PurchaseError
// with any per-ticket validation messages the backend included.
func (c *Client) Purchase(ctx context.Context, pr PurchaseRequest, bearer string) (*PurchaseResponse, error) {
    body, err := json.Marshal(pr)
    if err != nil {
        return nil, err
    }
    url := c.baseURL + "/tickets/purchase/"
    req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
    if err != nil {
        return nil, err
    }
    req.Header.Set("Content-Type", "application/json")
    if bearer != "" {
        req.Header.Set("Authorization", "Bearer "+bearer)
    }
    resp, err := c.http.Do(req)
    if err != nil {
        return nil, fmt.Errorf("purchase: %w", err)
    }
    defer func() { _ = resp.Body.Close() }()
    if resp.StatusCode != http.StatusCreated {
        raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
        return nil, &PurchaseError{
            StatusCode:    resp.StatusCode,
            FieldMessages: parseTicketErrors(raw),
        }
    }
    var out PurchaseResponse
    if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
        return nil, fmt.Errorf("purchase: decode: %w", err)
    }
    return &out, nil
}

// parseTicketErrors extracts per-ticket validation messages from an
// error body shaped like {"tickets":[{"email":[...],"phone_number":[...]}]}.
// Anything that does not match yields no messages.
func parseTicketErrors(raw []byte) []string {
    var body struct {
        Tickets []struct {
            Email       []string `json:"email"`
            PhoneNumber []string `json:"phone_number"`
        } `json:"tickets"`
    }
    if err := json.Unmarshal(raw, &body); err != nil {
        return nil
    }
    var msgs []string
    for _, t := range body.Tickets {
        msgs = append(msgs, t.Email...)
        msgs = append(msgs, t.PhoneNumber...)
    }
    return msgs
}

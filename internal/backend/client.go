package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/MitaliChangani/Chai-Biscuit-website/internal/modules/tracking"
)

// Client talks to the platform's REST API. Every method treats a non-2xx
// answer or an unparsable body as a failed call and reports it to the
// caller; it never panics and never retries on its own.
type Client struct {
	baseURL string
	hc      *http.Client
	log     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}
}

// OrderStatus fetches the authoritative status of one order and returns it
// as a field-level tracking update.
func (c *Client) OrderStatus(ctx context.Context, orderID string) (tracking.Partial, error) {
	var w WireOrder
	if err := c.getJSON(ctx, "/api/orders/"+url.PathEscape(orderID)+"/status/", nil, &w); err != nil {
		return tracking.Partial{}, err
	}
	if w.OrderID == "" {
		w.OrderID = orderID
	}
	return w.ToPartial(), nil
}

// OrderHistory lists a customer's past orders, newest first.
func (c *Client) OrderHistory(ctx context.Context, phone string) ([]WireOrder, error) {
	var out []WireOrder
	err := c.getJSON(ctx, "/api/order-history/", url.Values{"phone": {phone}}, &out)
	return out, err
}

func (c *Client) UserProfile(ctx context.Context, phone string) (Profile, error) {
	var out Profile
	err := c.getJSON(ctx, "/api/get-user-profile/", url.Values{"phone": {phone}}, &out)
	return out, err
}

func (c *Client) UpdateUserProfile(ctx context.Context, phone, address string) error {
	return c.postJSON(ctx, "/api/update-user-profile/", map[string]string{
		"phone_number": phone,
		"address":      address,
	})
}

// UnassignedOrders lists orders no partner has accepted yet.
func (c *Client) UnassignedOrders(ctx context.Context) ([]WireOrder, error) {
	var out []WireOrder
	err := c.getJSON(ctx, "/api/orders/unassigned/", nil, &out)
	return out, err
}

// AssignedOrders lists the orders currently assigned to a partner.
func (c *Client) AssignedOrders(ctx context.Context, phone string) ([]WireOrder, error) {
	var out []WireOrder
	err := c.getJSON(ctx, "/api/orders/assigned/", url.Values{"phone": {phone}}, &out)
	return out, err
}

// DeliveryHistory lists a partner's completed deliveries.
func (c *Client) DeliveryHistory(ctx context.Context, phone string) ([]WireOrder, error) {
	var out []WireOrder
	err := c.getJSON(ctx, "/api/orders/history/", url.Values{"phone": {phone}}, &out)
	return out, err
}

// UpdateOrderStatus moves an order through the delivery lifecycle on the
// partner's behalf ("assigned" requires the partner's phone number).
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status, partnerPhone string) error {
	body := map[string]string{"status": status}
	if partnerPhone != "" {
		body["phone_number"] = partnerPhone
	}
	return c.doJSON(ctx, http.MethodPatch, "/api/orders/"+url.PathEscape(orderID)+"/update-status/", body)
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, dst any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("backend: GET %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("backend: GET %s: decode: %w", path, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any) error {
	return c.doJSON(ctx, http.MethodPost, path, body)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("backend: %s %s: status %d", method, path, resp.StatusCode)
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	return nil
}

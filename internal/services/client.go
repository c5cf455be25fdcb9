package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"surfpass/internal/config"
	"surfpass/internal/models"
	"surfpass/pkg/logger"
)

// APIClient talks to the surf-school booking API. It implements
// BookingAPIInterface and PaymentAPIInterface.
//
// Transient transport failures (network errors, 5xx, 429) are retried
// with exponential backoff. The retry loop reuses the request payload
// and idempotency key verbatim, so a retried request can never duplicate
// a side effect; only a genuinely new attempt supplies a new key.
type APIClient struct {
	config config.APIConfig
	client *http.Client
	log    *logger.Logger
}

// NewAPIClient creates a new booking API client
func NewAPIClient(cfg config.APIConfig, log *logger.Logger) *APIClient {
	return &APIClient{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log,
	}
}

// CreateBooking issues POST /sessions/{id}/book and returns the HOLD
// booking. When the response carries a hold-TTL hint and no explicit
// expiry, the expiry is derived from the TTL locally.
func (c *APIClient) CreateBooking(ctx context.Context, sessionID, idempotencyKey string) (*models.Booking, error) {
	var resp struct {
		models.Booking
		HoldTTLSeconds int `json:"hold_ttl_seconds,omitempty"`
	}
	path := fmt.Sprintf("/sessions/%s/book", url.PathEscape(sessionID))
	if err := c.doJSON(ctx, http.MethodPost, path, idempotencyKey, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	booking := resp.Booking
	if booking.HoldExpiresAt == nil && resp.HoldTTLSeconds > 0 {
		expires := time.Now().Add(time.Duration(resp.HoldTTLSeconds) * time.Second)
		booking.HoldExpiresAt = &expires
	}
	return &booking, nil
}

// ListMyBookings lists the current user's bookings, optionally narrowed
// by session and status.
func (c *APIClient) ListMyBookings(ctx context.Context, filter BookingFilter) ([]*models.Booking, error) {
	query := url.Values{}
	if filter.SessionID != "" {
		query.Set("session_id", filter.SessionID)
	}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	path := "/me/bookings"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var resp struct {
		Bookings []*models.Booking `json:"bookings"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return resp.Bookings, nil
}

// CreateBookingPayment issues POST /bookings/{id}/payment
func (c *APIClient) CreateBookingPayment(ctx context.Context, bookingID string, methods models.PaymentMethodsRequest, idempotencyKey string) (*models.Payment, error) {
	body := struct {
		PaymentMethods models.PaymentMethodsRequest `json:"payment_methods"`
	}{PaymentMethods: methods}

	var payment models.Payment
	path := fmt.Sprintf("/bookings/%s/payment", url.PathEscape(bookingID))
	if err := c.doJSON(ctx, http.MethodPost, path, idempotencyKey, body, &payment); err != nil {
		return nil, fmt.Errorf("failed to create booking payment: %w", err)
	}
	return &payment, nil
}

// PurchaseSeasonTicket issues POST /season-ticket-plans/{id}/purchase
func (c *APIClient) PurchaseSeasonTicket(ctx context.Context, planID string, methods models.PaymentMethodsRequest, idempotencyKey string) (*models.Payment, error) {
	body := struct {
		PaymentMethods models.PaymentMethodsRequest `json:"payment_methods"`
	}{PaymentMethods: methods}

	var payment models.Payment
	path := fmt.Sprintf("/season-ticket-plans/%s/purchase", url.PathEscape(planID))
	if err := c.doJSON(ctx, http.MethodPost, path, idempotencyKey, body, &payment); err != nil {
		return nil, fmt.Errorf("failed to purchase season ticket: %w", err)
	}
	return &payment, nil
}

// PurchaseCertificate issues POST /certificates and returns the issued
// certificate together with its payment.
func (c *APIClient) PurchaseCertificate(ctx context.Context, req CertificatePurchaseRequest, methods models.PaymentMethodsRequest, idempotencyKey string) (*CertificatePurchaseResult, error) {
	body := struct {
		CertificatePurchaseRequest
		PaymentMethods models.PaymentMethodsRequest `json:"payment_methods"`
	}{CertificatePurchaseRequest: req, PaymentMethods: methods}

	var result CertificatePurchaseResult
	if err := c.doJSON(ctx, http.MethodPost, "/certificates", idempotencyKey, body, &result); err != nil {
		return nil, fmt.Errorf("failed to purchase certificate: %w", err)
	}
	return &result, nil
}

// doJSON performs one JSON request with transport-level retry
func (c *APIClient) doJSON(ctx context.Context, method, path, idempotencyKey string, reqBody, out interface{}) error {
	if idempotencyKey != "" {
		if err := ValidateIdempotencyKey(idempotencyKey); err != nil {
			return err
		}
	}

	var payload []byte
	if reqBody != nil {
		var err error
		payload, err = json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	operation := func() error {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, bodyReader)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.config.AuthToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
		}
		if idempotencyKey != "" {
			req.Header.Set("Idempotency-Key", idempotencyKey)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			c.log.WarnContext(ctx, "request failed, will retry",
				"method", method, "path", path, "error", err.Error())
			return err
		}
		defer resp.Body.Close()

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			// Transient; keep the same idempotency key on the next try.
			return c.decodeAPIError(resp.StatusCode, bodyBytes)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(c.decodeAPIError(resp.StatusCode, bodyBytes))
		}

		if out != nil {
			if err := json.Unmarshal(bodyBytes, out); err != nil {
				return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
			}
		}
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.config.MaxRetries), ctx)
	return backoff.Retry(operation, bo)
}

// decodeAPIError parses an error response into *models.APIError
func (c *APIClient) decodeAPIError(status int, body []byte) error {
	var wrapped struct {
		Error *models.APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Error != nil && wrapped.Error.Message != "" {
		wrapped.Error.Status = status
		return wrapped.Error
	}

	var apiErr models.APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && (apiErr.Code != "" || apiErr.Message != "") {
		apiErr.Status = status
		return &apiErr
	}

	return &models.APIError{Status: status, Message: string(body)}
}

package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Client talks to the clinic's CRM over its JSON API. Upserts are keyed by
// external ID, so exporting the same record twice is safe.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewClient(baseURL, token string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// UpsertContact creates or updates a CRM contact for a patient.
func (c *Client) UpsertContact(ctx context.Context, payload ContactPayload) error {
	return c.put(ctx, fmt.Sprintf("%s/api/contacts/%s", c.baseURL, payload.ExternalID), payload)
}

// UpsertEvent creates or updates a CRM calendar event for an appointment.
func (c *Client) UpsertEvent(ctx context.Context, payload EventPayload) error {
	return c.put(ctx, fmt.Sprintf("%s/api/events/%s", c.baseURL, payload.ExternalID), payload)
}

func (c *Client) put(ctx context.Context, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to encode payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		respBody, _ := io.ReadAll(resp.Body)
		c.log.Warnf("CRM returned status %d for %s: %s", resp.StatusCode, url, string(respBody))
		return fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
	}
}

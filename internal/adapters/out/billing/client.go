// Package billing queries the subscription service for specialist accounts.
package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/services"
)

const defaultTimeout = 5 * time.Second

// Client is an HTTP client for the billing service. Subscription records
// come back raw; the visibility gate judges them against the evaluation
// clock.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a billing client for the given endpoint.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

type subscriptionResponse struct {
	Status      string     `json:"status"`
	TrialEndsAt *time.Time `json:"trial_ends_at"`
}

// GetSubscription returns the billing state of a specialist account. An
// unknown account reads as having no subscription.
func (c *Client) GetSubscription(ctx context.Context, specialistID kernel.UUID) (services.Subscription, error) {
	endpoint := fmt.Sprintf("%s/subscriptions/%s", c.baseURL, specialistID.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return services.Subscription{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return services.Subscription{}, fmt.Errorf("billing request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return services.Subscription{Status: services.SubscriptionNone}, nil
	default:
		return services.Subscription{}, fmt.Errorf("billing service returned status %d", resp.StatusCode)
	}

	var payload subscriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return services.Subscription{}, fmt.Errorf("decode billing response: %w", err)
	}

	return services.Subscription{
		Status:      parseStatus(payload.Status),
		TrialEndsAt: payload.TrialEndsAt,
	}, nil
}

func parseStatus(s string) services.SubscriptionStatus {
	switch s {
	case "ACTIVE":
		return services.SubscriptionActive
	case "TRIAL":
		return services.SubscriptionTrial
	case "EXPIRED":
		return services.SubscriptionExpired
	default:
		return services.SubscriptionNone
	}
}

// Package repositories implements the Tracker Client (C4) against the
// external ad tracker's HTTP API, grounded on the teacher's
// core/services/asaas_service.go doRequest pattern and generalized with the
// circuit breaker + split read/write retry policies spec §4.6 requires.
package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/RodolfoBonis/spooliq/core/config"
	coreerrors "github.com/RodolfoBonis/spooliq/core/errors"
	"github.com/RodolfoBonis/spooliq/core/logger"
	"github.com/RodolfoBonis/spooliq/core/reliability"
	"github.com/RodolfoBonis/spooliq/features/tracker/domain/entities"
	"github.com/RodolfoBonis/spooliq/features/tracker/domain/repositories"
	"github.com/shopspring/decimal"
)

type trackerClientHTTP struct {
	baseURL      string
	apiKey       string
	log          logger.Logger
	readClient   *http.Client
	writeClient  *http.Client
	breaker      *reliability.CircuitBreaker
	readPolicy   reliability.RetryPolicy
	writePolicy  reliability.RetryPolicy
}

// NewTrackerClient builds the HTTP-backed tracker client. A single circuit
// breaker guards both read and write paths, as spec §4.6 describes ("inside
// a single circuit breaker").
func NewTrackerClient(cfg *config.AppConfig, log logger.Logger) repositories.TrackerClient {
	return &trackerClientHTTP{
		baseURL:     cfg.TrackerBaseURL,
		apiKey:      cfg.TrackerAPIKey,
		log:         log,
		readClient:  &http.Client{Timeout: cfg.TrackerReadTimeout},
		writeClient: &http.Client{Timeout: cfg.TrackerWriteTimeout},
		breaker:     reliability.NewCircuitBreaker(5, 30*time.Second),
		readPolicy:  reliability.ReadPolicy(),
		writePolicy: reliability.WritePolicy(),
	}
}

// trackerError classifies an HTTP status per spec §4.6: 429/418 and 5xx are
// retryable; 4xx other than 408/429 are terminal; 404 on update is a
// terminal not-found.
func trackerError(status int, body []byte) error {
	msg := fmt.Sprintf("tracker responded %d: %s", status, string(body))
	switch {
	case status == http.StatusNotFound:
		return coreerrors.NotFound(msg)
	case status == http.StatusTooManyRequests, status == http.StatusTeapot, status == http.StatusRequestTimeout:
		return coreerrors.UpstreamUnavailableError(msg, nil)
	case status >= 500:
		return coreerrors.UpstreamUnavailableError(msg, nil)
	case status >= 400:
		return coreerrors.ValidationError(msg)
	default:
		return nil
	}
}

func (c *trackerClientHTTP) doRead(ctx context.Context, method, path string) ([]byte, error) {
	var body []byte
	err := c.breaker.Execute(func() error {
		return c.readPolicy.Do(ctx, coreerrors.IsRetryable, func(ctx context.Context) error {
			b, err := c.request(ctx, c.readClient, method, path, nil, "")
			if err != nil {
				return err
			}
			body = b
			return nil
		})
	})
	return body, err
}

func (c *trackerClientHTTP) doWrite(ctx context.Context, method, path string, payload interface{}, idempotencyKey string) ([]byte, error) {
	var encoded []byte
	if payload != nil {
		var err error
		encoded, err = json.Marshal(payload)
		if err != nil {
			return nil, coreerrors.ValidationError("failed to encode tracker request body")
		}
	}

	var body []byte
	err := c.breaker.Execute(func() error {
		return c.writePolicy.Do(ctx, coreerrors.IsRetryable, func(ctx context.Context) error {
			b, err := c.request(ctx, c.writeClient, method, path, encoded, idempotencyKey)
			if err != nil {
				return err
			}
			body = b
			return nil
		})
	})
	return body, err
}

func (c *trackerClientHTTP) request(ctx context.Context, client *http.Client, method, path string, body []byte, idempotencyKey string) ([]byte, error) {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, coreerrors.ValidationError("failed to build tracker request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		c.log.LogError(ctx, "tracker request failed", coreerrors.UpstreamUnavailableError(err.Error(), err, map[string]interface{}{"url": url}))
		return nil, coreerrors.UpstreamUnavailableError("tracker request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, coreerrors.UpstreamUnavailableError("failed to read tracker response", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, nil
	}

	return nil, trackerError(resp.StatusCode, respBody)
}

func (c *trackerClientHTTP) CampaignExists(ctx context.Context, campaignID string) (bool, error) {
	_, err := c.doRead(ctx, http.MethodGet, "/campaigns/"+campaignID)
	if err != nil {
		if coreerrors.IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *trackerClientHTTP) GetDetailedStats(ctx context.Context, campaignID string) (*entities.CampaignStats, error) {
	body, err := c.doRead(ctx, http.MethodGet, "/campaigns/"+campaignID+"/stats")
	if err != nil {
		return nil, err
	}

	var wire struct {
		Clicks      int64  `json:"clicks"`
		Conversions int64  `json:"conversions"`
		Cost        string `json:"cost"`
		Revenue     string `json:"revenue"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, coreerrors.UpstreamUnavailableError("malformed tracker stats response", err)
	}

	cost, _ := decimal.NewFromString(wire.Cost)
	revenue, _ := decimal.NewFromString(wire.Revenue)

	return &entities.CampaignStats{
		Clicks:      wire.Clicks,
		Conversions: wire.Conversions,
		Cost:        cost,
		Revenue:     revenue,
	}, nil
}

func (c *trackerClientHTTP) PauseCampaign(ctx context.Context, campaignID, idempotencyKey string) (bool, error) {
	_, err := c.doWrite(ctx, http.MethodPost, "/campaigns/"+campaignID+"/pause", nil, idempotencyKey)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *trackerClientHTTP) ListOffers(ctx context.Context) ([]entities.Offer, error) {
	body, err := c.doRead(ctx, http.MethodGet, "/offers")
	if err != nil {
		return nil, err
	}
	var offers []entities.Offer
	if err := json.Unmarshal(body, &offers); err != nil {
		return nil, coreerrors.UpstreamUnavailableError("malformed tracker offers response", err)
	}
	return offers, nil
}

func (c *trackerClientHTTP) CreateOffer(ctx context.Context, url, name, idempotencyKey string) (*entities.Offer, error) {
	payload := map[string]string{"url": url, "name": name}
	body, err := c.doWrite(ctx, http.MethodPost, "/offers", payload, idempotencyKey)
	if err != nil {
		return nil, err
	}
	var offer entities.Offer
	if err := json.Unmarshal(body, &offer); err != nil {
		return nil, coreerrors.UpstreamUnavailableError("malformed tracker offer response", err)
	}
	return &offer, nil
}

func (c *trackerClientHTTP) UpdateOffer(ctx context.Context, offerID string, req entities.UpdateOfferRequest, idempotencyKey string) error {
	_, err := c.doWrite(ctx, http.MethodPut, "/offers/"+offerID, req, idempotencyKey)
	return err
}

func (c *trackerClientHTTP) SetClickCost(ctx context.Context, req entities.SetClickCostRequest, idempotencyKey string) error {
	payload := map[string]string{"campaignId": req.CampaignID, "cost": req.Cost.String()}
	_, err := c.doWrite(ctx, http.MethodPost, "/click-cost", payload, idempotencyKey)
	return err
}

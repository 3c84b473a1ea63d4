package repositories

import (
	"context"

	"github.com/RodolfoBonis/spooliq/features/tracker/domain/entities"
)

// TrackerClient is the black-box contract to the external ad tracker
// (spec §6.2). Writes send the caller-supplied key as the Idempotency-Key
// header so a retried write is safe to repeat; the client does not build
// the key from orderId and attemptNumber itself.
type TrackerClient interface {
	CampaignExists(ctx context.Context, campaignID string) (bool, error)
	GetDetailedStats(ctx context.Context, campaignID string) (*entities.CampaignStats, error)
	PauseCampaign(ctx context.Context, campaignID, idempotencyKey string) (bool, error)
	ListOffers(ctx context.Context) ([]entities.Offer, error)
	CreateOffer(ctx context.Context, url, name, idempotencyKey string) (*entities.Offer, error)
	UpdateOffer(ctx context.Context, offerID string, req entities.UpdateOfferRequest, idempotencyKey string) error
	SetClickCost(ctx context.Context, req entities.SetClickCostRequest, idempotencyKey string) error
}

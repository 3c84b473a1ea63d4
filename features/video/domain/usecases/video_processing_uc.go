// Package usecases implements the Video-Processing Worker (C7): consumes
// order.created, runs the clip/direct decision and view-count probe, and on
// success publishes offer.assignment (spec §4.5).
package usecases

import (
	"context"
	"time"

	"github.com/RodolfoBonis/spooliq/core/bus"
	"github.com/RodolfoBonis/spooliq/core/cache"
	coreerrors "github.com/RodolfoBonis/spooliq/core/errors"
	"github.com/RodolfoBonis/spooliq/core/logger"
	catalogentities "github.com/RodolfoBonis/spooliq/features/catalog/domain/entities"
	catalogusecases "github.com/RodolfoBonis/spooliq/features/catalog/domain/usecases"
	orderentities "github.com/RodolfoBonis/spooliq/features/orders/domain/entities"
	orderusecases "github.com/RodolfoBonis/spooliq/features/orders/domain/usecases"
	"github.com/RodolfoBonis/spooliq/features/video/domain/entities"
	"github.com/RodolfoBonis/spooliq/features/video/domain/repositories"
	"github.com/google/uuid"
)

// VideoProcessingUseCase is C7's handler for the order.created topic.
type VideoProcessingUseCase interface {
	HandleOrderCreated(ctx context.Context, env bus.Envelope) error
}

type videoProcessingUseCase struct {
	client   repositories.VideoClient
	accounts repositories.AccountRepository
	states   repositories.VideoProcessingRepository
	catalog  catalogusecases.CatalogUseCase
	orders   orderusecases.OrderUseCase
	bus      *bus.Bus
	cache    *cache.Client
	log      logger.Logger
}

// NewVideoProcessingUseCase wires C7's collaborators.
func NewVideoProcessingUseCase(client repositories.VideoClient, accounts repositories.AccountRepository, states repositories.VideoProcessingRepository, catalog catalogusecases.CatalogUseCase, orders orderusecases.OrderUseCase, b *bus.Bus, c *cache.Client, log logger.Logger) VideoProcessingUseCase {
	return &videoProcessingUseCase{client: client, accounts: accounts, states: states, catalog: catalog, orders: orders, bus: b, cache: c, log: log}
}

// poolExhaustedTTL bounds how long a discovered daily-quota exhaustion is
// trusted before the next order.created falls back to a fresh DB check —
// short enough that an account freed mid-day (status flip, quota reset) is
// picked back up quickly (spec §4.5's pool is read-mostly but not static).
const poolExhaustedTTL = 5 * time.Minute

func poolExhaustedKey(today time.Time) string {
	return "video:pool:exhausted:" + today.UTC().Format("2006-01-02")
}

// reserveAccount is the Redis fast-path in front of the DB-authoritative
// reservation transaction (spec's Redis domain table: "C5 account-pool fast
// lookup"). A cached exhaustion flag skips the DB round-trip outright; the
// DB transaction itself remains the only place an account is ever assigned.
func (uc *videoProcessingUseCase) reserveAccount(ctx context.Context, now time.Time) *entities.YouTubeAccountEntity {
	key := poolExhaustedKey(now)
	exhausted, err := uc.cache.GetInt(ctx, key)
	if err != nil {
		uc.log.LogError(ctx, "redis pool-exhaustion lookup failed; falling back to the database", err)
	} else if exhausted > 0 {
		return nil
	}

	account, err := uc.accounts.ReserveAccount(ctx, now)
	if err != nil {
		uc.log.LogError(ctx, "account reservation failed, falling back to direct path", err)
		return nil
	}
	if account == nil {
		if _, cacheErr := uc.cache.IncrBy(ctx, key, 1, poolExhaustedTTL); cacheErr != nil {
			uc.log.LogError(ctx, "failed to cache pool exhaustion", cacheErr)
		}
	}
	return account
}

// HandleOrderCreated runs the video state machine for one order (spec §4.5).
// Returned errors are retried by the bus consumer per entities.AppErrorType's
// retryable classification; exhaustion routes the message to the DLQ and the
// order is left for the caller to transition to ERROR.
func (uc *videoProcessingUseCase) HandleOrderCreated(ctx context.Context, env bus.Envelope) error {
	orderID, err := uuid.Parse(env.OrderID)
	if err != nil {
		return coreerrors.PoisonMessageError("order.created envelope carries an invalid orderId")
	}

	order, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	videoID, videoType, err := uc.client.ParseVideoID(order.Link)
	if err != nil {
		return uc.fail(ctx, orderID, "unsupported video host")
	}

	state := &entities.VideoProcessingEntity{
		OrderID:     orderID,
		OriginalURL: order.Link,
		VideoType:   videoType,
		Status:      entities.ProcessingInFlight,
	}

	targetURL := order.Link
	mode := catalogentities.ModeWithoutClip
	account := uc.reserveAccount(ctx, time.Now())

	if account != nil && videoType != entities.VideoLive {
		clipURL, clipErr := uc.client.CreateClip(ctx, videoID, account)
		if clipErr != nil {
			uc.log.LogError(ctx, "clip creation failed, falling back to direct path", clipErr)
		} else {
			state.ClipCreated = true
			state.ClipURL = &clipURL
			state.YoutubeAccountID = &account.ID
			mode = catalogentities.ModeWithClip
			targetURL = clipURL
		}
	}

	coefficient, err := uc.catalog.Coefficient(ctx, order.ServiceID, mode)
	if err != nil {
		return uc.persistFailureAndReturn(ctx, state, err)
	}

	startCount, err := uc.client.ProbeViewCount(ctx, videoID)
	if err != nil {
		return uc.persistFailureAndReturn(ctx, state, err)
	}
	if startCount == 0 {
		probeErr := coreerrors.UpstreamUnavailableError("view-count probe returned zero", nil)
		return uc.persistFailureAndReturn(ctx, state, probeErr)
	}

	state.Status = entities.ProcessingCompleted
	if err := uc.states.Upsert(ctx, state); err != nil {
		return err
	}

	enteredProcessing := false
	err = uc.orders.Transition(ctx, orderID, orderentities.EventStatusChanged, func(o *orderentities.OrderEntity) (orderentities.Status, error) {
		o.StartCount = int64(startCount)
		o.Coefficient = coefficient
		if state.ClipURL != nil {
			o.YoutubeVideoID = &videoID
		}
		enteredProcessing = o.Status == orderentities.StatusPending
		if enteredProcessing {
			return orderentities.StatusProcessing, nil
		}
		return orderentities.StatusInProgress, nil
	})
	if err != nil {
		return err
	}
	if enteredProcessing {
		err = uc.orders.Transition(ctx, orderID, orderentities.EventStatusChanged, func(o *orderentities.OrderEntity) (orderentities.Status, error) {
			return orderentities.StatusInProgress, nil
		})
		if err != nil {
			return err
		}
	}

	offerEnv := bus.Envelope{
		OrderID:        orderID.String(),
		OriginalURL:    targetURL,
		TargetQuantity: uint32(order.Quantity),
		GeoTargeting:   derefString(order.TargetCountry),
		MaxAttempts:    3,
		CreatedAt:      time.Now(),
	}
	return uc.bus.Publish(ctx, bus.TopicOfferAssignment, offerEnv)
}

func (uc *videoProcessingUseCase) persistFailureAndReturn(ctx context.Context, state *entities.VideoProcessingEntity, cause error) error {
	state.Status = entities.ProcessingFailed
	msg := cause.Error()
	state.LastError = &msg
	if err := uc.states.Upsert(ctx, state); err != nil {
		uc.log.LogError(ctx, "failed to persist video processing failure state", err)
	}
	return cause
}

func (uc *videoProcessingUseCase) fail(ctx context.Context, orderID uuid.UUID, reason string) error {
	err := uc.orders.Transition(ctx, orderID, orderentities.EventStatusChanged, func(o *orderentities.OrderEntity) (orderentities.Status, error) {
		return orderentities.StatusError, nil
	})
	if err != nil {
		uc.log.LogError(ctx, "failed to transition order to ERROR: "+reason, err)
	}
	return coreerrors.PoisonMessageError(reason)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

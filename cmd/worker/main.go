// Command worker is the order-fulfillment pipeline's single process: it
// declares every topic in core/bus, consumes order.created,
// offer.assignment and instagram.results, runs the reconciler and stale-
// pending recovery on a timer, and serves health/ready probes plus the
// operator's refill endpoint over HTTP — mirroring the teacher's
// app.NewFxApp/InitAndRun lifecycle-hook pattern (app/fx.go, app/init.go),
// generalized from an HTTP-only API to a consumer-plus-admin-surface
// service.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/RodolfoBonis/spooliq/core/bus"
	"github.com/RodolfoBonis/spooliq/core/cache"
	"github.com/RodolfoBonis/spooliq/core/config"
	"github.com/RodolfoBonis/spooliq/core/db"
	"github.com/RodolfoBonis/spooliq/core/health"
	"github.com/RodolfoBonis/spooliq/core/logger"
	"github.com/RodolfoBonis/spooliq/core/middlewares"

	campaignsdi "github.com/RodolfoBonis/spooliq/features/campaigns/di"
	campaignusecases "github.com/RodolfoBonis/spooliq/features/campaigns/domain/usecases"
	catalogdi "github.com/RodolfoBonis/spooliq/features/catalog/di"
	ledgermodels "github.com/RodolfoBonis/spooliq/features/ledger/data/models"
	ledgerdi "github.com/RodolfoBonis/spooliq/features/ledger/di"
	ingressdi "github.com/RodolfoBonis/spooliq/features/ingress/di"
	ingressusecases "github.com/RodolfoBonis/spooliq/features/ingress/domain/usecases"
	catalogmodels "github.com/RodolfoBonis/spooliq/features/catalog/data/models"
	intakedi "github.com/RodolfoBonis/spooliq/features/intake/di"
	intakeusecases "github.com/RodolfoBonis/spooliq/features/intake/domain/usecases"
	campaignmodels "github.com/RodolfoBonis/spooliq/features/campaigns/data/models"
	ordersmodels "github.com/RodolfoBonis/spooliq/features/orders/data/models"
	ordersdi "github.com/RodolfoBonis/spooliq/features/orders/di"
	"github.com/RodolfoBonis/spooliq/features/refill"
	refillmodels "github.com/RodolfoBonis/spooliq/features/refill/data/models"
	refilldi "github.com/RodolfoBonis/spooliq/features/refill/di"
	refillusecases "github.com/RodolfoBonis/spooliq/features/refill/domain/usecases"
	trackerdi "github.com/RodolfoBonis/spooliq/features/tracker/di"
	videomodels "github.com/RodolfoBonis/spooliq/features/video/data/models"
	videodi "github.com/RodolfoBonis/spooliq/features/video/di"
	videousecases "github.com/RodolfoBonis/spooliq/features/video/domain/usecases"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		logger.Module,
		config.Module,
		db.Module,
		cache.Module,
		bus.Module,
		middlewares.Module,

		ledgerdi.Module,
		catalogdi.Module,
		ordersdi.Module,
		intakedi.Module,
		trackerdi.Module,
		videodi.Module,
		campaignsdi.Module,
		refilldi.Module,
		ingressdi.Module,

		fx.Provide(
			func(conn *db.Connection) *gorm.DB { return conn.DB },
			gin.New,
		),

		fx.Invoke(runMigrations),
		fx.Invoke(startConsumers),
		fx.Invoke(startReconciler),
		fx.Invoke(startStalePendingRecovery),
		fx.Invoke(startHTTPServer),
	).Run()
}

// runMigrations syncs every feature's schema on startup, replacing the
// teacher's hand-rolled SQL migration runner (core/migrations) with GORM's
// AutoMigrate (spec Non-goals: "Schema management").
func runMigrations(lc fx.Lifecycle, conn *db.Connection, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return conn.AutoMigrate(
				&ledgermodels.UserModel{},
				&ledgermodels.BalanceTransactionModel{},
				&catalogmodels.ServiceModel{},
				&catalogmodels.CoefficientModel{},
				&ordersmodels.OrderModel{},
				&ordersmodels.OrderEventModel{},
				&campaignmodels.FixedCampaignModel{},
				&campaignmodels.CampaignBindingModel{},
				&videomodels.YouTubeAccountModel{},
				&videomodels.VideoProcessingModel{},
				&refillmodels.OrderRefillModel{},
			)
		},
	})
}

// startConsumers binds one Bus.Consume loop per topic this process handles
// (spec §4.3). Each loop runs for the lifetime of the app; cancellation on
// OnStop lets in-flight handlers finish within their own call timeouts.
func startConsumers(lc fx.Lifecycle, b *bus.Bus, video videousecases.VideoProcessingUseCase, assigner campaignusecases.AssignerUseCase, ingress ingressusecases.IngressUseCase, log logger.Logger) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, topic := range []string{bus.TopicOrderCreated, bus.TopicOrderStateChanged, bus.TopicVideoProcessing, bus.TopicOfferAssignment, bus.TopicInstagramResults} {
				if err := b.DeclareTopic(topic); err != nil {
					return err
				}
			}
			go runConsumer(ctx, b, bus.TopicOrderCreated, log, video.HandleOrderCreated)
			go runConsumer(ctx, b, bus.TopicOfferAssignment, log, assigner.HandleOfferAssignment)
			go runConsumer(ctx, b, bus.TopicInstagramResults, log, ingress.HandleResult)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

const consumerConcurrency = 8

func runConsumer(ctx context.Context, b *bus.Bus, topic string, log logger.Logger, handler bus.Handler) {
	if err := b.Consume(ctx, topic, consumerConcurrency, handler); err != nil {
		log.LogError(ctx, fmt.Sprintf("consumer for %s stopped with an error", topic), err)
	}
}

// startReconciler runs C9's periodic tick on ReconcilerInterval, batching up
// to ReconcilerBatchSize orders per tick (spec §4.6).
func startReconciler(lc fx.Lifecycle, cfg *config.AppConfig, reconciler campaignusecases.ReconcilerUseCase, log logger.Logger) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ticker := time.NewTicker(cfg.ReconcilerInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						n, err := reconciler.ReconcileBatch(ctx, cfg.ReconcilerBatchSize)
						if err != nil {
							log.LogError(ctx, "reconciliation tick failed", err)
							continue
						}
						log.Info(ctx, "reconciliation tick complete", map[string]interface{}{"orders_processed": n})
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

// startStalePendingRecovery republishes order.created for orders Intake
// failed to publish after insert (spec §4.4).
func startStalePendingRecovery(lc fx.Lifecycle, intake intakeusecases.IntakeUseCase, log logger.Logger) {
	ctx, cancel := context.WithCancel(context.Background())

	const (
		minAge        = 2 * time.Minute
		batchSize     = 100
		sweepInterval = time.Minute
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ticker := time.NewTicker(sweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						n, err := intake.RecoverStalePending(ctx, minAge, batchSize)
						if err != nil {
							log.LogError(ctx, "stale-pending recovery sweep failed", err)
							continue
						}
						if n > 0 {
							log.Info(ctx, "recovered stale pending orders", map[string]interface{}{"count": n})
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

// startHTTPServer exposes health/ready probes and the operator refill
// endpoint (spec §4.7), matching the teacher's InitAndRun background-serve
// pattern.
func startHTTPServer(lc fx.Lifecycle, router *gin.Engine, cfg *config.AppConfig, conn *db.Connection, b *bus.Bus, c *cache.Client, refillUC refillusecases.RefillUseCase, protectFactory func(handler gin.HandlerFunc, role string) gin.HandlerFunc, log logger.Logger) {
	root := router.Group("/")

	checkers := map[string]health.Checker{
		"database": conn.Ping,
		"bus":      b.Ping,
		"cache":    c.Ping,
	}
	health.Routes(root, log, checkers)
	refill.Routes(root, refillUC, protectFactory)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := router.Run(":" + cfg.Port); err != nil {
					log.LogError(context.Background(), "http server stopped with an error", err)
				}
			}()
			return nil
		},
	})
}

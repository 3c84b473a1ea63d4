package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/RodolfoBonis/spooliq/features/video/domain/entities"
	"github.com/google/uuid"
)

// ErrUnsupportedHost is returned when a URL's host isn't a recognized video
// host (spec §4.8).
var ErrUnsupportedHost = errors.New("video: unsupported host")

// VideoClient is C5's external-facing capability surface.
type VideoClient interface {
	// ParseVideoID extracts the stable identifier and type from a URL.
	ParseVideoID(rawURL string) (videoID string, videoType entities.VideoType, err error)
	// ProbeViewCount is deterministic and idempotent (spec §4.8).
	ProbeViewCount(ctx context.Context, videoID string) (uint64, error)
	// CreateClip performs the external clip flow against the chosen account.
	CreateClip(ctx context.Context, videoID string, account *entities.YouTubeAccountEntity) (clipURL string, err error)
}

// AccountRepository manages the YouTube account pool with quota tracking.
type AccountRepository interface {
	// ReserveAccount selects an eligible account by
	// (status=ACTIVE, dailyClipsCount ASC, lastUsedAt ASC) and increments its
	// quota counter inside one transaction (spec §4.5). Returns nil, nil if
	// no eligible account exists.
	ReserveAccount(ctx context.Context, today time.Time) (*entities.YouTubeAccountEntity, error)
}

// VideoProcessingRepository persists the per-order video sub-state.
type VideoProcessingRepository interface {
	Upsert(ctx context.Context, vp *entities.VideoProcessingEntity) error
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entities.VideoProcessingEntity, error)
}

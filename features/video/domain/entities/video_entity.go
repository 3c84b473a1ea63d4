// Package entities holds the Video Client (C5) and Video-Processing Worker
// (C7) domain types: the YouTube account pool and the per-order video
// processing sub-state (spec §3.1 YouTubeAccount, VideoProcessing; §4.5).
package entities

import (
	"time"

	"github.com/google/uuid"
)

// VideoType classifies a probed/clipped video.
type VideoType string

// Video types (spec §3.1).
const (
	VideoStandard VideoType = "STANDARD"
	VideoShorts   VideoType = "SHORTS"
	VideoLive     VideoType = "LIVE"
)

// AccountStatus enumerates YouTubeAccount.status.
type AccountStatus string

// Account statuses (spec §3.1).
const (
	AccountActive      AccountStatus = "ACTIVE"
	AccountBlocked      AccountStatus = "BLOCKED"
	AccountSuspended    AccountStatus = "SUSPENDED"
	AccountRateLimited  AccountStatus = "RATE_LIMITED"
)

// YouTubeAccountEntity is an element of the clip-creation account pool
// (spec §3.1).
type YouTubeAccountEntity struct {
	ID              uuid.UUID
	CredentialRef   string
	Status          AccountStatus
	DailyClipsCount int
	LastClipDate    time.Time
	DailyLimit      int
	ProxyConfig     string
	LastUsedAt      time.Time
}

// QuotaAvailable reports whether the account can take one more clip today,
// accounting for the lazy daily reset (spec §3.2: "reset lazily on first use
// per UTC day").
func (a *YouTubeAccountEntity) QuotaAvailable(today time.Time) bool {
	if a.Status != AccountActive {
		return false
	}
	if a.LastClipDate.UTC().Truncate(24 * time.Hour).Before(today.UTC().Truncate(24 * time.Hour)) {
		return true
	}
	return a.DailyClipsCount < a.DailyLimit
}

// ProcessingStatus enumerates VideoProcessing.status (spec §4.5).
type ProcessingStatus string

// Processing statuses.
const (
	ProcessingPending    ProcessingStatus = "PENDING"
	ProcessingQueued     ProcessingStatus = "QUEUED"
	ProcessingInFlight   ProcessingStatus = "PROCESSING"
	ProcessingCompleted  ProcessingStatus = "COMPLETED"
	ProcessingFailed     ProcessingStatus = "FAILED"
	ProcessingCancelled  ProcessingStatus = "CANCELLED"
	ProcessingRetrying   ProcessingStatus = "RETRYING"
)

// VideoProcessingEntity is 1:1 with an Order where applicable (spec §3.1).
type VideoProcessingEntity struct {
	OrderID           uuid.UUID
	OriginalURL       string
	VideoType         VideoType
	ClipCreated       bool
	ClipURL           *string
	YoutubeAccountID  *uuid.UUID
	Status            ProcessingStatus
	AttemptCount      int
	LastError         *string
}

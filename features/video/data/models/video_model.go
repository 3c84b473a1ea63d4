package models

import (
	"time"

	"github.com/RodolfoBonis/spooliq/features/video/domain/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// YouTubeAccountModel is the GORM projection of entities.YouTubeAccountEntity.
type YouTubeAccountModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CredentialRef   string    `gorm:"type:varchar(255);not null" json:"credential_ref"`
	Status          string    `gorm:"type:varchar(16);not null;index" json:"status"`
	DailyClipsCount int       `gorm:"not null;default:0" json:"daily_clips_count"`
	LastClipDate    time.Time `json:"last_clip_date"`
	DailyLimit      int       `gorm:"not null" json:"daily_limit"`
	ProxyConfig     string    `gorm:"type:text" json:"proxy_config"`
	LastUsedAt      time.Time `json:"last_used_at"`
}

// TableName pins the physical table name.
func (YouTubeAccountModel) TableName() string { return "youtube_accounts" }

// BeforeCreate assigns the primary key client-side.
func (m *YouTubeAccountModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ToEntity converts the row to the domain type.
func (m *YouTubeAccountModel) ToEntity() *entities.YouTubeAccountEntity {
	return &entities.YouTubeAccountEntity{
		ID:              m.ID,
		CredentialRef:   m.CredentialRef,
		Status:          entities.AccountStatus(m.Status),
		DailyClipsCount: m.DailyClipsCount,
		LastClipDate:    m.LastClipDate,
		DailyLimit:      m.DailyLimit,
		ProxyConfig:     m.ProxyConfig,
		LastUsedAt:      m.LastUsedAt,
	}
}

// VideoProcessingModel is the GORM projection of entities.VideoProcessingEntity.
type VideoProcessingModel struct {
	OrderID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"order_id"`
	OriginalURL      string     `gorm:"type:text;not null" json:"original_url"`
	VideoType        string     `gorm:"type:varchar(16);not null" json:"video_type"`
	ClipCreated      bool       `gorm:"not null;default:false" json:"clip_created"`
	ClipURL          *string    `gorm:"type:text" json:"clip_url"`
	YoutubeAccountID *uuid.UUID `gorm:"type:uuid" json:"youtube_account_id"`
	Status           string     `gorm:"type:varchar(16);not null;index" json:"status"`
	AttemptCount     int        `gorm:"not null;default:0" json:"attempt_count"`
	LastError        *string    `gorm:"type:text" json:"last_error"`
}

// TableName pins the physical table name.
func (VideoProcessingModel) TableName() string { return "video_processing" }

// ToEntity converts the row to the domain type.
func (m *VideoProcessingModel) ToEntity() *entities.VideoProcessingEntity {
	return &entities.VideoProcessingEntity{
		OrderID:          m.OrderID,
		OriginalURL:      m.OriginalURL,
		VideoType:        entities.VideoType(m.VideoType),
		ClipCreated:      m.ClipCreated,
		ClipURL:          m.ClipURL,
		YoutubeAccountID: m.YoutubeAccountID,
		Status:           entities.ProcessingStatus(m.Status),
		AttemptCount:     m.AttemptCount,
		LastError:        m.LastError,
	}
}

// FromEntity populates the row from the domain type.
func (m *VideoProcessingModel) FromEntity(e *entities.VideoProcessingEntity) {
	m.OrderID = e.OrderID
	m.OriginalURL = e.OriginalURL
	m.VideoType = string(e.VideoType)
	m.ClipCreated = e.ClipCreated
	m.ClipURL = e.ClipURL
	m.YoutubeAccountID = e.YoutubeAccountID
	m.Status = string(e.Status)
	m.AttemptCount = e.AttemptCount
	m.LastError = e.LastError
}

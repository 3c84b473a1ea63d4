package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/RodolfoBonis/spooliq/core/config"
	coreerrors "github.com/RodolfoBonis/spooliq/core/errors"
	"github.com/RodolfoBonis/spooliq/core/logger"
	"github.com/RodolfoBonis/spooliq/features/video/domain/entities"
	"github.com/RodolfoBonis/spooliq/features/video/domain/repositories"
)

type videoClientHTTP struct {
	baseURL     string
	log         logger.Logger
	readClient  *http.Client
	writeClient *http.Client
}

// NewVideoClient builds the HTTP-backed video probe/clip client (spec §4.8).
func NewVideoClient(cfg *config.AppConfig, log logger.Logger) repositories.VideoClient {
	return &videoClientHTTP{
		baseURL:     cfg.VideoAPIBaseURL,
		log:         log,
		readClient:  &http.Client{Timeout: cfg.VideoReadTimeout},
		writeClient: &http.Client{Timeout: cfg.VideoWriteTimeout},
	}
}

var videoHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"youtu.be":        true,
	"m.youtube.com":   true,
}

// ParseVideoID extracts the stable video identifier from a YouTube URL
// (spec §4.8). Unsupported hosts return ErrUnsupportedHost.
func (c *videoClientHTTP) ParseVideoID(rawURL string) (string, entities.VideoType, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", "", repositories.ErrUnsupportedHost
	}
	host := strings.ToLower(parsed.Host)
	if !videoHosts[host] {
		return "", "", repositories.ErrUnsupportedHost
	}

	var videoID string
	switch {
	case host == "youtu.be":
		videoID = strings.Trim(parsed.Path, "/")
	case strings.Contains(parsed.Path, "/shorts/"):
		parts := strings.Split(parsed.Path, "/shorts/")
		videoID = strings.Trim(parts[len(parts)-1], "/")
		return videoID, entities.VideoShorts, nil
	case strings.Contains(parsed.Path, "/live/"):
		parts := strings.Split(parsed.Path, "/live/")
		videoID = strings.Trim(parts[len(parts)-1], "/")
		return videoID, entities.VideoLive, nil
	default:
		videoID = parsed.Query().Get("v")
	}

	if videoID == "" {
		return "", "", repositories.ErrUnsupportedHost
	}

	return videoID, entities.VideoStandard, nil
}

// ProbeViewCount queries the current view count for a video. Deterministic
// and idempotent (spec §4.8); a zero or missing count is surfaced as a
// retryable upstream error by the caller (spec §4.5).
func (c *videoClientHTTP) ProbeViewCount(ctx context.Context, videoID string) (uint64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/videos/"+videoID+"/views", nil)
	if err != nil {
		return 0, coreerrors.ValidationError("failed to build view-probe request")
	}

	resp, err := c.readClient.Do(req)
	if err != nil {
		return 0, coreerrors.UpstreamUnavailableError("view-probe request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, coreerrors.UpstreamUnavailableError("failed to read view-probe response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, coreerrors.UpstreamUnavailableError(fmt.Sprintf("view-probe responded %d: %s", resp.StatusCode, string(body)), nil)
	}

	var wire struct {
		Views uint64 `json:"views"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return 0, coreerrors.UpstreamUnavailableError("malformed view-probe response", err)
	}

	return wire.Views, nil
}

// CreateClip performs the external clip-creation flow using the reserved
// account's credentials.
func (c *videoClientHTTP) CreateClip(ctx context.Context, videoID string, account *entities.YouTubeAccountEntity) (string, error) {
	payload := map[string]string{"videoId": videoID, "credentialRef": account.CredentialRef}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", coreerrors.ValidationError("failed to encode clip request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/clips", strings.NewReader(string(body)))
	if err != nil {
		return "", coreerrors.ValidationError("failed to build clip request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.writeClient.Do(req)
	if err != nil {
		return "", coreerrors.UpstreamUnavailableError("clip request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", coreerrors.UpstreamUnavailableError("failed to read clip response", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", coreerrors.UpstreamUnavailableError(fmt.Sprintf("clip creation responded %d: %s", resp.StatusCode, string(respBody)), nil)
	}

	var wire struct {
		ClipURL string `json:"clipUrl"`
	}
	if err := json.Unmarshal(respBody, &wire); err != nil {
		return "", coreerrors.UpstreamUnavailableError("malformed clip response", err)
	}

	return wire.ClipURL, nil
}

package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Afeez-Ola/flowplay/internal/domain"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"

	watchURLPrefix    = "https://music.youtube.com/watch?v="
	playlistURLPrefix = "https://music.youtube.com/playlist?list="

	playlistDescription = "Converted with FlowPlay – Playlist Converter (Spotify → YouTube Music)"
)

// TrackRef is the YouTube Music variant of a catalog match.
type TrackRef struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	WatchURL     string `json:"watchUrl"`
}

func (r TrackRef) ExternalID() string  { return r.VideoID }
func (r TrackRef) ExternalURL() string { return r.WatchURL }

// Matcher implements ports.CatalogMatcher using the YouTube Data API v3.
type Matcher struct {
	client  *http.Client
	baseURL string
}

// NewMatcher creates a YouTube matcher. A nil client falls back to
// http.DefaultClient; an empty baseURL falls back to the Data API.
func NewMatcher(client *http.Client, baseURL string) *Matcher {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Matcher{client: client, baseURL: baseURL}
}

func (m *Matcher) Provider() domain.Provider {
	return domain.ProviderYouTube
}

// -- API response types (internal) ------------------------------------------

type searchListResponse struct {
	Items []searchResult `json:"items"`
}

type searchResult struct {
	ID      searchResultID `json:"id"`
	Snippet searchSnippet  `json:"snippet"`
}

type searchResultID struct {
	VideoID string `json:"videoId"`
}

type searchSnippet struct {
	Title        string     `json:"title"`
	ChannelTitle string     `json:"channelTitle"`
	Thumbnails   thumbnails `json:"thumbnails"`
}

type thumbnails struct {
	Default thumbnail `json:"default"`
	Medium  thumbnail `json:"medium"`
	High    thumbnail `json:"high"`
}

type thumbnail struct {
	URL string `json:"url"`
}

// -- CatalogMatcher implementation -------------------------------------------

// Match applies the two-tier policy: an "isrc:<code>" advanced query first,
// then an ordered list of free-text query variants. The first variant with a
// result short-circuits the rest.
func (m *Matcher) Match(ctx context.Context, auth domain.AuthContext, track domain.NormalizedTrack) (domain.TrackRef, error) {
	token := auth.YouTubeToken

	if track.ISRC != "" {
		best, err := m.search(ctx, token, "isrc:"+track.ISRC)
		if err != nil {
			return nil, err
		}
		if best != nil {
			return toTrackRef(*best), nil
		}
	}

	// Query variants reward "official audio"/"lyric"/"topic" uploads, which
	// tend to be the actual recording rather than live or cover versions.
	queries := []string{
		fmt.Sprintf("%s %s audio", track.Name, track.Artists),
		fmt.Sprintf("%s %s official audio", track.Name, track.Artists),
		fmt.Sprintf("%s %s lyric", track.Artists, track.Name),
		fmt.Sprintf("%s %s topic", track.Name, track.Artists),
		fmt.Sprintf("%s %s auto-generated", track.Name, track.Artists),
	}

	for _, q := range queries {
		best, err := m.search(ctx, token, q)
		if err != nil {
			return nil, err
		}
		if best != nil {
			return toTrackRef(*best), nil
		}
	}

	return nil, nil
}

// search issues one music-category video search limited to a single result.
func (m *Matcher) search(ctx context.Context, token string, query string) (*searchResult, error) {
	endpoint := fmt.Sprintf(
		"%s/search?part=snippet&type=video&videoCategoryId=10&maxResults=1&q=%s",
		m.baseURL, url.QueryEscape(query),
	)

	body, err := doGet(ctx, m.client, token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("youtube: search failed: %w", err)
	}

	var resp searchListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("youtube: failed to parse search response: %w", err)
	}

	if len(resp.Items) == 0 || resp.Items[0].ID.VideoID == "" {
		return nil, nil
	}
	return &resp.Items[0], nil
}

func toTrackRef(best searchResult) TrackRef {
	thumb := best.Snippet.Thumbnails.Medium.URL
	if thumb == "" {
		thumb = best.Snippet.Thumbnails.High.URL
	}
	if thumb == "" {
		thumb = best.Snippet.Thumbnails.Default.URL
	}

	return TrackRef{
		VideoID:      best.ID.VideoID,
		Title:        best.Snippet.Title,
		ChannelTitle: best.Snippet.ChannelTitle,
		ThumbnailURL: thumb,
		WatchURL:     watchURLPrefix + best.ID.VideoID,
	}
}

// -- PlaylistMaterializer ----------------------------------------------------

// Materializer implements ports.PlaylistMaterializer using the YouTube Data
// API v3 playlists and playlistItems endpoints.
type Materializer struct {
	client  *http.Client
	baseURL string
	logger  *log.Logger
}

// NewMaterializer creates a YouTube playlist materializer.
func NewMaterializer(client *http.Client, baseURL string, logger *log.Logger) *Materializer {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Materializer{client: client, baseURL: baseURL, logger: logger}
}

// Materialize creates a private playlist and inserts each matched track in
// order, one playlistItems call per track. A failed insert is logged and
// skipped so the remaining tracks still land.
func (mz *Materializer) Materialize(ctx context.Context, auth domain.AuthContext, name string, tracks []domain.TrackRef) (domain.PlaylistHandle, error) {
	token := auth.YouTubeToken

	playlistID, err := mz.createPlaylist(ctx, token, name)
	if err != nil {
		return domain.PlaylistHandle{}, err
	}
	if playlistID == "" {
		return domain.PlaylistHandle{}, fmt.Errorf("youtube: create playlist returned no id")
	}

	for _, track := range tracks {
		if err := mz.insertItem(ctx, token, playlistID, track.ExternalID()); err != nil {
			mz.logger.Warn("failed to add track to playlist",
				"playlist", playlistID, "video", track.ExternalID(), "err", err)
		}
	}

	return domain.PlaylistHandle{
		ID:  playlistID,
		URL: playlistURLPrefix + playlistID,
	}, nil
}

func (mz *Materializer) createPlaylist(ctx context.Context, token string, name string) (string, error) {
	payload := map[string]any{
		"snippet": map[string]string{
			"title":       name,
			"description": playlistDescription,
		},
		"status": map[string]string{
			"privacyStatus": "private",
		},
	}
	payloadBytes, _ := json.Marshal(payload)

	endpoint := fmt.Sprintf("%s/playlists?part=snippet,status", mz.baseURL)
	body, err := doPost(ctx, mz.client, token, endpoint, payloadBytes)
	if err != nil {
		return "", fmt.Errorf("youtube: failed to create playlist: %w", err)
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("youtube: failed to parse create playlist response: %w", err)
	}

	return resp.ID, nil
}

func (mz *Materializer) insertItem(ctx context.Context, token string, playlistID string, videoID string) error {
	payload := map[string]any{
		"snippet": map[string]any{
			"playlistId": playlistID,
			"resourceId": map[string]string{
				"kind":    "youtube#video",
				"videoId": videoID,
			},
		},
	}
	payloadBytes, _ := json.Marshal(payload)

	endpoint := fmt.Sprintf("%s/playlistItems?part=snippet", mz.baseURL)
	if _, err := doPost(ctx, mz.client, token, endpoint, payloadBytes); err != nil {
		return fmt.Errorf("youtube: failed to add video %s to playlist: %w", videoID, err)
	}
	return nil
}

// -- HTTP helpers ------------------------------------------------------------

func doGet(ctx context.Context, client *http.Client, token string, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube API returned status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

func doPost(ctx context.Context, client *http.Client, token string, endpoint string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("youtube API returned status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

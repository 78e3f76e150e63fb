package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/Afeez-Ola/flowplay/internal/domain"
)

const (
	defaultBaseURL = "https://api.spotify.com/v1"
	maxPerPage     = 50
)

var playlistIDPattern = regexp.MustCompile(`playlist/([A-Za-z0-9]+)`)

// Library implements ports.SourceLibrary for Spotify using the Web API.
type Library struct {
	client  *http.Client
	baseURL string
}

// NewLibrary creates a Spotify library reader. A nil client falls back to
// http.DefaultClient; an empty baseURL falls back to the public Web API.
func NewLibrary(client *http.Client, baseURL string) *Library {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Library{client: client, baseURL: baseURL}
}

// ExtractPlaylistID pulls the playlist id out of a Spotify playlist URL,
// e.g. https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=x.
func (l *Library) ExtractPlaylistID(url string) (string, bool) {
	m := playlistIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// -- API response types (internal) ------------------------------------------

type tracksResponse struct {
	Items []trackItem `json:"items"`
	Next  string      `json:"next"`
}

type trackItem struct {
	Track trackData `json:"track"`
}

type trackData struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Artists     []artistData `json:"artists"`
	DurationMS  int          `json:"duration_ms"`
	ExternalIDs externalIDs  `json:"external_ids"`
}

type artistData struct {
	Name string `json:"name"`
}

type externalIDs struct {
	ISRC string `json:"isrc"`
}

// -- SourceLibrary implementation --------------------------------------------

// PlaylistTracks fetches every track in the playlist, following pagination,
// and returns them normalized for matching.
func (l *Library) PlaylistTracks(ctx context.Context, token string, playlistID string) ([]domain.NormalizedTrack, error) {
	var tracks []domain.NormalizedTrack
	endpoint := fmt.Sprintf("%s/playlists/%s/tracks?limit=%d", l.baseURL, playlistID, maxPerPage)

	for endpoint != "" {
		body, err := l.doGet(ctx, token, endpoint)
		if err != nil {
			return nil, fmt.Errorf("spotify: failed to get playlist tracks: %w", err)
		}

		var resp tracksResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("spotify: failed to parse tracks response: %w", err)
		}

		for _, item := range resp.Items {
			if item.Track.ID == "" {
				continue // skip local or unavailable tracks
			}
			tracks = append(tracks, normalize(item.Track))
		}

		endpoint = resp.Next
	}

	return tracks, nil
}

// -- HTTP helpers ------------------------------------------------------------

func (l *Library) doGet(ctx context.Context, token string, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify API returned status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// -- Helpers -----------------------------------------------------------------

// normalize is the track record normalizer: it reduces a Spotify track item
// to the provider-agnostic fields used for matching. Artist names become one
// comma-joined display string, not a structured list.
func normalize(t trackData) domain.NormalizedTrack {
	artists := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		artists = append(artists, a.Name)
	}

	return domain.NormalizedTrack{
		Name:       t.Name,
		Artists:    strings.Join(artists, ", "),
		ISRC:       t.ExternalIDs.ISRC,
		DurationMS: t.DurationMS,
		SourceID:   t.ID,
	}
}

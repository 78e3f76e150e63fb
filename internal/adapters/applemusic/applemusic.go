package applemusic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Afeez-Ola/flowplay/internal/domain"
)

const defaultBaseURL = "https://itunes.apple.com"

// regions is the ordered list of storefronts probed on every lookup. Earlier
// regions take priority; the first non-empty result wins.
var regions = []string{"us", "gb", "de", "ng", "fr"}

// TrackRef is the Apple Music variant of a catalog match.
type TrackRef struct {
	TrackID        int    `json:"trackId"`
	TrackName      string `json:"trackName"`
	ArtistName     string `json:"artistName"`
	CollectionName string `json:"collectionName,omitempty"`
	PreviewURL     string `json:"previewUrl,omitempty"`
	ArtworkURL     string `json:"artworkUrl100,omitempty"`
	AppleMusicURL  string `json:"appleMusicUrl"`
	Region         string `json:"region"`
}

func (r TrackRef) ExternalID() string  { return strconv.Itoa(r.TrackID) }
func (r TrackRef) ExternalURL() string { return r.AppleMusicURL }

// Matcher implements ports.CatalogMatcher against the iTunes lookup/search
// API. No credential is required; the catalog is partitioned by region.
type Matcher struct {
	client  *http.Client
	baseURL string
}

// NewMatcher creates an Apple Music matcher. A nil client falls back to
// http.DefaultClient; an empty baseURL falls back to the public iTunes API.
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
	return domain.ProviderAppleMusic
}

// Regions returns the storefront probe order.
func (m *Matcher) Regions() []string {
	return regions
}

// -- API response types (internal) ------------------------------------------

type lookupResponse struct {
	Results []lookupResult `json:"results"`
}

type lookupResult struct {
	TrackID        int    `json:"trackId"`
	TrackName      string `json:"trackName"`
	ArtistName     string `json:"artistName"`
	CollectionName string `json:"collectionName"`
	PreviewURL     string `json:"previewUrl"`
	ArtworkURL100  string `json:"artworkUrl100"`
	TrackViewURL   string `json:"trackViewUrl"`
}

// -- CatalogMatcher implementation -------------------------------------------

// Match applies the two-tier policy: exact ISRC lookup across the region
// list, then a free-text name+artists search across the same list. A failed
// or malformed probe counts as "no result in this region", never an error.
func (m *Matcher) Match(ctx context.Context, _ domain.AuthContext, track domain.NormalizedTrack) (domain.TrackRef, error) {
	if track.ISRC != "" {
		if ref := m.lookupByISRC(ctx, track.ISRC); ref != nil {
			return ref, nil
		}
	}

	if ref := m.searchByQuery(ctx, track.Name, track.Artists); ref != nil {
		return ref, nil
	}
	return nil, nil
}

func (m *Matcher) lookupByISRC(ctx context.Context, isrc string) domain.TrackRef {
	for _, region := range regions {
		endpoint := fmt.Sprintf("%s/lookup?isrc=%s&entity=song&country=%s",
			m.baseURL, url.QueryEscape(isrc), region)

		if best, ok := m.probe(ctx, endpoint); ok {
			return toTrackRef(best, region)
		}
	}
	return nil
}

func (m *Matcher) searchByQuery(ctx context.Context, name, artists string) domain.TrackRef {
	term := url.QueryEscape(name + " " + artists)
	for _, region := range regions {
		endpoint := fmt.Sprintf("%s/search?term=%s&limit=1&entity=song&country=%s",
			m.baseURL, term, region)

		if best, ok := m.probe(ctx, endpoint); ok {
			return toTrackRef(best, region)
		}
	}
	return nil
}

// probe issues one region query and returns its first result, if any.
func (m *Matcher) probe(ctx context.Context, endpoint string) (lookupResult, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return lookupResult{}, false
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return lookupResult{}, false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		return lookupResult{}, false
	}

	var parsed lookupResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return lookupResult{}, false
	}
	if len(parsed.Results) == 0 {
		return lookupResult{}, false
	}
	return parsed.Results[0], true
}

func toTrackRef(best lookupResult, region string) TrackRef {
	return TrackRef{
		TrackID:        best.TrackID,
		TrackName:      best.TrackName,
		ArtistName:     best.ArtistName,
		CollectionName: best.CollectionName,
		PreviewURL:     best.PreviewURL,
		ArtworkURL:     best.ArtworkURL100,
		AppleMusicURL:  best.TrackViewURL,
		Region:         region,
	}
}

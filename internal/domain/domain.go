package domain

import (
	"fmt"
	"strings"
)

// Provider identifies a streaming service by its canonical id.
type Provider string

const (
	ProviderSpotify    Provider = "spotify"
	ProviderAppleMusic Provider = "applemusic"
	ProviderYouTube    Provider = "youtube"
)

// DisplayName returns the human-facing name used in playlist titles and
// error messages.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderSpotify:
		return "Spotify"
	case ProviderAppleMusic:
		return "Apple Music"
	case ProviderYouTube:
		return "YouTube Music"
	}
	return string(p)
}

// ParseProvider resolves a user-supplied provider name (display name,
// canonical id, or common variants) to its canonical Provider.
func ParseProvider(s string) (Provider, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(normalized)

	switch normalized {
	case "spotify":
		return ProviderSpotify, true
	case "applemusic", "apple", "itunes":
		return ProviderAppleMusic, true
	case "youtube", "youtubemusic", "ytmusic":
		return ProviderYouTube, true
	}
	return "", false
}

// DetectProvider guesses the provider from a pasted playlist URL. Returns
// "unknown" when no known host matches.
func DetectProvider(url string) string {
	switch {
	case strings.Contains(url, "spotify.com"):
		return string(ProviderSpotify)
	case strings.Contains(url, "music.apple.com"):
		return string(ProviderAppleMusic)
	case strings.Contains(url, "youtube.com"), strings.Contains(url, "youtu.be"):
		return string(ProviderYouTube)
	}
	return "unknown"
}

// NormalizedTrack is a source track reduced to the provider-agnostic fields
// needed for cross-catalog matching. Name and Artists are always present;
// ISRC is frequently absent and must be treated as optional.
type NormalizedTrack struct {
	Name       string `json:"name"`
	Artists    string `json:"artists"`
	ISRC       string `json:"isrc,omitempty"`
	DurationMS int    `json:"duration_ms,omitempty"`
	SourceID   string `json:"source_id,omitempty"`
}

// TrackRef is a destination-catalog match for one source track. Concrete
// variants live in the destination adapters; each carries a human-navigable
// open-in-provider URL.
type TrackRef interface {
	// ExternalID is the destination-native track id (video id, store track id).
	ExternalID() string

	// ExternalURL opens the matched track in the destination provider.
	ExternalURL() string
}

// MatchCandidate pairs a source track with its catalog match. Matched is nil
// when no catalog entry cleared the matching policy.
type MatchCandidate struct {
	Source  NormalizedTrack `json:"source"`
	Matched TrackRef        `json:"matched"`
}

// UnmatchedTrack is the projection of an unmatched candidate shown to the
// user for auditing.
type UnmatchedTrack struct {
	Name    string `json:"name"`
	Artists string `json:"artists"`
}

// PlaylistHandle identifies a playlist created on a destination provider.
type PlaylistHandle struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ReportStatus summarizes the overall outcome of a conversion.
type ReportStatus string

const (
	StatusSuccess ReportStatus = "success"
	StatusPartial ReportStatus = "partial"
	StatusError   ReportStatus = "error"
)

// StepPlaylistCreateFailed marks a report whose matching succeeded but whose
// destination playlist could not be created.
const StepPlaylistCreateFailed = "playlist_create_failed"

// ConversionReport is the final, auditable result of one conversion. Matches
// preserve source order: Matches[i].Source is the i-th input track.
type ConversionReport struct {
	Status ReportStatus `json:"status"`
	Step   string       `json:"step,omitempty"`
	From   Provider     `json:"from"`
	To     Provider     `json:"to"`

	TotalTracks    int `json:"total_tracks"`
	MatchedTracks  int `json:"matched_tracks"`
	UnmatchedCount int `json:"unmatched_count"`

	Matches   []MatchCandidate `json:"matches"`
	Unmatched []UnmatchedTrack `json:"unmatched"`

	// Destinations with a write API.
	PlaylistID  string `json:"playlist_id,omitempty"`
	PlaylistURL string `json:"playlist_url,omitempty"`

	// Lookup-only destinations.
	TargetPlaylistName string   `json:"target_playlist_name,omitempty"`
	RegionsUsed        []string `json:"regions_used,omitempty"`
}

// ConversionRequest is the inbound conversion trigger.
type ConversionRequest struct {
	URL          string `json:"url"`
	From         string `json:"from"`
	To           string `json:"to"`
	PlaylistName string `json:"playlistName,omitempty"`
}

// AuthContext carries the per-provider credentials for one request. It is
// populated by the authorization layer; the core never reads transport-level
// headers or cookies itself.
type AuthContext struct {
	SpotifyToken string
	YouTubeToken string
}

// TokenFor returns the credential for the given provider, or "" when the
// provider needs none or the user is not connected.
func (a AuthContext) TokenFor(p Provider) string {
	switch p {
	case ProviderSpotify:
		return a.SpotifyToken
	case ProviderYouTube:
		return a.YouTubeToken
	}
	return ""
}

// ResolvePlaylistName returns the caller-supplied name if non-empty after
// trimming, else the default FlowPlay name embedding source and destination.
func ResolvePlaylistName(requested string, from, to Provider) string {
	if name := strings.TrimSpace(requested); name != "" {
		return name
	}
	return fmt.Sprintf("FlowPlay – %s → %s", from.DisplayName(), to.DisplayName())
}

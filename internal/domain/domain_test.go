package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProvider(t *testing.T) {
	tests := []struct {
		in     string
		want   Provider
		wantOK bool
	}{
		{"spotify", ProviderSpotify, true},
		{"Spotify", ProviderSpotify, true},
		{"  Spotify ", ProviderSpotify, true},
		{"Apple Music", ProviderAppleMusic, true},
		{"applemusic", ProviderAppleMusic, true},
		{"apple-music", ProviderAppleMusic, true},
		{"YouTube Music", ProviderYouTube, true},
		{"youtube", ProviderYouTube, true},
		{"yt_music", ProviderYouTube, true},
		{"tidal", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseProvider(tt.in)
		assert.Equal(t, tt.wantOK, ok, "input: %q", tt.in)
		assert.Equal(t, tt.want, got, "input: %q", tt.in)
	}
}

func TestDetectProvider(t *testing.T) {
	assert.Equal(t, "spotify", DetectProvider("https://open.spotify.com/playlist/x"))
	assert.Equal(t, "applemusic", DetectProvider("https://music.apple.com/us/playlist/y"))
	assert.Equal(t, "youtube", DetectProvider("https://www.youtube.com/playlist?list=z"))
	assert.Equal(t, "youtube", DetectProvider("https://youtu.be/abc"))
	assert.Equal(t, "unknown", DetectProvider("https://soundcloud.com/set/q"))
}

func TestResolvePlaylistName(t *testing.T) {
	assert.Equal(t, "FlowPlay – Spotify → YouTube Music",
		ResolvePlaylistName("", ProviderSpotify, ProviderYouTube))
	assert.Equal(t, "FlowPlay – Spotify → Apple Music",
		ResolvePlaylistName("   ", ProviderSpotify, ProviderAppleMusic))
	assert.Equal(t, "Road Trip",
		ResolvePlaylistName(" Road Trip ", ProviderSpotify, ProviderYouTube))
}

func TestAuthContextTokenFor(t *testing.T) {
	auth := AuthContext{SpotifyToken: "s", YouTubeToken: "y"}
	assert.Equal(t, "s", auth.TokenFor(ProviderSpotify))
	assert.Equal(t, "y", auth.TokenFor(ProviderYouTube))
	assert.Empty(t, auth.TokenFor(ProviderAppleMusic), "Apple Music needs no credential")
}

func TestErrorMessages(t *testing.T) {
	err := NewAuthError(ProviderYouTube)
	assert.Equal(t, 401, err.Status)
	assert.Equal(t, "YouTube Music not authenticated", err.Message)

	err = NewUnsupportedDestination("Tidal")
	assert.Equal(t, 400, err.Status)
	assert.Equal(t, "Target platform 'Tidal' not implemented yet", err.Message)

	err = NewValidationError("Missing fields")
	assert.Equal(t, "Missing fields", err.Error())

	err = NewUpstreamError(ProviderSpotify, assert.AnError)
	assert.Equal(t, 500, err.Status)
	assert.Contains(t, err.Error(), "Failed to fetch Spotify tracks")
	assert.Contains(t, err.Error(), assert.AnError.Error())
}

package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/Afeez-Ola/flowplay/internal/adapters"
	"github.com/Afeez-Ola/flowplay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Mocks -------------------------------------------------------------------

type fakeRef struct {
	ID string
}

func (f fakeRef) ExternalID() string  { return f.ID }
func (f fakeRef) ExternalURL() string { return "https://dest.example/" + f.ID }

type mockSource struct {
	tracks     []domain.NormalizedTrack
	fetchErr   error
	badURL     bool
	gotID      string
	gotToken   string
}

func (m *mockSource) ExtractPlaylistID(_ string) (string, bool) {
	if m.badURL {
		return "", false
	}
	return "pl-1", true
}

func (m *mockSource) PlaylistTracks(_ context.Context, token string, playlistID string) ([]domain.NormalizedTrack, error) {
	m.gotID = playlistID
	m.gotToken = token
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.tracks, nil
}

type matchOutcome struct {
	ref domain.TrackRef
	err error
}

type mockMatcher struct {
	provider domain.Provider
	results  map[string]matchOutcome // keyed by track name

	mu        sync.Mutex
	callCount int
}

func (m *mockMatcher) Provider() domain.Provider { return m.provider }

func (m *mockMatcher) Match(_ context.Context, _ domain.AuthContext, track domain.NormalizedTrack) (domain.TrackRef, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if out, ok := m.results[track.Name]; ok {
		return out.ref, out.err
	}
	return nil, nil
}

// regionMatcher adds the RegionProber interface on top of mockMatcher.
type regionMatcher struct {
	mockMatcher
	regions []string
}

func (m *regionMatcher) Regions() []string { return m.regions }

type mockMaterializer struct {
	handle    domain.PlaylistHandle
	err       error
	gotName   string
	gotTracks []domain.TrackRef
	calls     int
}

func (m *mockMaterializer) Materialize(_ context.Context, _ domain.AuthContext, name string, tracks []domain.TrackRef) (domain.PlaylistHandle, error) {
	m.calls++
	m.gotName = name
	m.gotTracks = tracks
	if m.err != nil {
		return domain.PlaylistHandle{}, m.err
	}
	return m.handle, nil
}

// -- Helpers -----------------------------------------------------------------

func testAuth() domain.AuthContext {
	return domain.AuthContext{SpotifyToken: "spotify-token", YouTubeToken: "youtube-token"}
}

func newTestService(source *mockSource, dest adapters.Destination, workers int) *Service {
	registry := adapters.NewDestinationRegistry()
	registry.Register(dest)
	return NewService(source, registry, workers, 1000, nil)
}

func validRequest() domain.ConversionRequest {
	return domain.ConversionRequest{
		URL:  "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M",
		From: "Spotify",
		To:   "YouTube Music",
	}
}

func requireConvErr(t *testing.T, err error, status int) *domain.Error {
	t.Helper()
	require.Error(t, err)
	convErr, ok := err.(*domain.Error)
	require.True(t, ok, "expected *domain.Error, got %T", err)
	assert.Equal(t, status, convErr.Status)
	return convErr
}

// -- Validation --------------------------------------------------------------

func TestConvert_MissingFields(t *testing.T) {
	svc := newTestService(&mockSource{}, adapters.Destination{Matcher: &mockMatcher{provider: domain.ProviderYouTube}}, 1)

	_, err := svc.Convert(context.Background(), testAuth(), domain.ConversionRequest{URL: "x"})
	convErr := requireConvErr(t, err, http.StatusBadRequest)
	assert.Contains(t, convErr.Message, "Missing fields")
}

func TestConvert_SameProvider(t *testing.T) {
	svc := newTestService(&mockSource{}, adapters.Destination{Matcher: &mockMatcher{provider: domain.ProviderYouTube}}, 1)

	req := validRequest()
	req.To = "spotify"
	_, err := svc.Convert(context.Background(), testAuth(), req)
	convErr := requireConvErr(t, err, http.StatusBadRequest)
	assert.Contains(t, convErr.Message, "cannot be the same")
}

func TestConvert_NonSpotifySource(t *testing.T) {
	svc := newTestService(&mockSource{}, adapters.Destination{Matcher: &mockMatcher{provider: domain.ProviderYouTube}}, 1)

	req := validRequest()
	req.From = "Apple Music"
	req.To = "YouTube Music"
	_, err := svc.Convert(context.Background(), testAuth(), req)
	convErr := requireConvErr(t, err, http.StatusBadRequest)
	assert.Contains(t, convErr.Message, "Only Spotify")
}

func TestConvert_BadPlaylistURL(t *testing.T) {
	svc := newTestService(&mockSource{badURL: true}, adapters.Destination{Matcher: &mockMatcher{provider: domain.ProviderYouTube}}, 1)

	_, err := svc.Convert(context.Background(), testAuth(), validRequest())
	convErr := requireConvErr(t, err, http.StatusBadRequest)
	assert.Contains(t, convErr.Message, "playlist ID")
}

func TestConvert_UnsupportedDestination(t *testing.T) {
	// Registry only knows Apple Music; ask for YouTube.
	svc := newTestService(&mockSource{}, adapters.Destination{Matcher: &mockMatcher{provider: domain.ProviderAppleMusic}}, 1)

	_, err := svc.Convert(context.Background(), testAuth(), validRequest())
	convErr := requireConvErr(t, err, http.StatusBadRequest)
	assert.Contains(t, convErr.Message, "YouTube Music")
	assert.Contains(t, convErr.Message, "not implemented")
}

func TestConvert_MissingSourceAuth(t *testing.T) {
	svc := newTestService(&mockSource{}, adapters.Destination{Matcher: &mockMatcher{provider: domain.ProviderYouTube}}, 1)

	auth := testAuth()
	auth.SpotifyToken = ""
	_, err := svc.Convert(context.Background(), auth, validRequest())
	convErr := requireConvErr(t, err, http.StatusUnauthorized)
	assert.Contains(t, convErr.Message, "Spotify")
}

func TestConvert_MissingDestinationAuth(t *testing.T) {
	dest := adapters.Destination{
		Matcher:      &mockMatcher{provider: domain.ProviderYouTube},
		RequiresAuth: true,
	}
	svc := newTestService(&mockSource{}, dest, 1)

	auth := testAuth()
	auth.YouTubeToken = ""
	_, err := svc.Convert(context.Background(), auth, validRequest())
	convErr := requireConvErr(t, err, http.StatusUnauthorized)
	assert.Contains(t, convErr.Message, "YouTube Music")
}

func TestConvert_SourceFetchFailure(t *testing.T) {
	source := &mockSource{fetchErr: fmt.Errorf("spotify API returned status 502")}
	svc := newTestService(source, adapters.Destination{Matcher: &mockMatcher{provider: domain.ProviderYouTube}}, 1)

	_, err := svc.Convert(context.Background(), testAuth(), validRequest())
	requireConvErr(t, err, http.StatusInternalServerError)
}

func TestConvert_EmptyPlaylist(t *testing.T) {
	svc := newTestService(&mockSource{tracks: []domain.NormalizedTrack{}}, adapters.Destination{Matcher: &mockMatcher{provider: domain.ProviderYouTube}}, 1)

	_, err := svc.Convert(context.Background(), testAuth(), validRequest())
	convErr := requireConvErr(t, err, http.StatusBadRequest)
	assert.Contains(t, convErr.Message, "No tracks found")
}

// -- Matching ----------------------------------------------------------------

func TestConvert_OrderPreservedAcrossWorkers(t *testing.T) {
	const n = 25
	tracks := make([]domain.NormalizedTrack, n)
	results := make(map[string]matchOutcome, n)
	for i := range tracks {
		name := fmt.Sprintf("Track %d", i)
		tracks[i] = domain.NormalizedTrack{Name: name, Artists: fmt.Sprintf("Artist %d", i)}
		results[name] = matchOutcome{ref: fakeRef{ID: fmt.Sprintf("vid-%d", i)}}
	}

	matcher := &mockMatcher{provider: domain.ProviderYouTube, results: results}
	mz := &mockMaterializer{handle: domain.PlaylistHandle{ID: "new-pl", URL: "https://music.youtube.com/playlist?list=new-pl"}}
	svc := newTestService(&mockSource{tracks: tracks}, adapters.Destination{Matcher: matcher, Materializer: mz, RequiresAuth: true}, 8)

	report, err := svc.Convert(context.Background(), testAuth(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, n, report.TotalTracks)
	assert.Equal(t, n, report.MatchedTracks)
	assert.Equal(t, 0, report.UnmatchedCount)
	assert.Equal(t, n, matcher.callCount)
	require.Len(t, report.Matches, n)

	// Slot i must hold input track i regardless of worker completion order.
	for i, m := range report.Matches {
		assert.Equal(t, tracks[i], m.Source)
		require.NotNil(t, m.Matched)
		assert.Equal(t, fmt.Sprintf("vid-%d", i), m.Matched.ExternalID())
	}

	// Materializer receives only matched refs, in source order.
	require.Len(t, mz.gotTracks, n)
	for i, ref := range mz.gotTracks {
		assert.Equal(t, fmt.Sprintf("vid-%d", i), ref.ExternalID())
	}
}

func TestConvert_PerTrackFailureIsolated(t *testing.T) {
	tracks := []domain.NormalizedTrack{
		{Name: "Song A", Artists: "Artist X"},
		{Name: "Song B", Artists: "Artist Y"},
		{Name: "Song C", Artists: "Artist Z"},
	}
	matcher := &mockMatcher{
		provider: domain.ProviderYouTube,
		results: map[string]matchOutcome{
			"Song A": {ref: fakeRef{ID: "vid-a"}},
			"Song B": {err: fmt.Errorf("search quota exceeded")},
			"Song C": {ref: fakeRef{ID: "vid-c"}},
		},
	}
	mz := &mockMaterializer{handle: domain.PlaylistHandle{ID: "pl-new"}}
	svc := newTestService(&mockSource{tracks: tracks}, adapters.Destination{Matcher: matcher, Materializer: mz, RequiresAuth: true}, 2)

	report, err := svc.Convert(context.Background(), testAuth(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalTracks)
	assert.Equal(t, 2, report.MatchedTracks)
	assert.Equal(t, 1, report.UnmatchedCount)
	assert.Equal(t, report.TotalTracks, report.MatchedTracks+report.UnmatchedCount)
	assert.Equal(t, domain.StatusPartial, report.Status)

	// Unmatched entries carry only name and artists.
	require.Len(t, report.Unmatched, 1)
	assert.Equal(t, domain.UnmatchedTrack{Name: "Song B", Artists: "Artist Y"}, report.Unmatched[0])

	// The failed track left a nil match in its slot, not a hole.
	assert.Nil(t, report.Matches[1].Matched)
	assert.Equal(t, "Song B", report.Matches[1].Source.Name)
}

func TestConvert_AllMatchedIsSuccess(t *testing.T) {
	tracks := []domain.NormalizedTrack{{Name: "Song A", Artists: "Artist X"}}
	matcher := &mockMatcher{
		provider: domain.ProviderYouTube,
		results:  map[string]matchOutcome{"Song A": {ref: fakeRef{ID: "vid-a"}}},
	}
	mz := &mockMaterializer{handle: domain.PlaylistHandle{ID: "pl", URL: "https://music.youtube.com/playlist?list=pl"}}
	source := &mockSource{tracks: tracks}
	svc := newTestService(source, adapters.Destination{Matcher: matcher, Materializer: mz, RequiresAuth: true}, 1)

	report, err := svc.Convert(context.Background(), testAuth(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, report.Status)
	assert.Equal(t, "pl", report.PlaylistID)
	assert.Equal(t, "https://music.youtube.com/playlist?list=pl", report.PlaylistURL)

	// The source fetch used the extracted id and the source credential.
	assert.Equal(t, "pl-1", source.gotID)
	assert.Equal(t, "spotify-token", source.gotToken)
}

// -- Materialization ---------------------------------------------------------

func TestConvert_PlaylistCreateFailureKeepsMatches(t *testing.T) {
	tracks := []domain.NormalizedTrack{{Name: "Song A", Artists: "Artist X"}}
	matcher := &mockMatcher{
		provider: domain.ProviderYouTube,
		results:  map[string]matchOutcome{"Song A": {ref: fakeRef{ID: "vid-a"}}},
	}
	mz := &mockMaterializer{err: fmt.Errorf("youtube: create playlist returned no id")}
	svc := newTestService(&mockSource{tracks: tracks}, adapters.Destination{Matcher: matcher, Materializer: mz, RequiresAuth: true}, 1)

	report, err := svc.Convert(context.Background(), testAuth(), validRequest())
	require.NoError(t, err, "matching work succeeded and must not be discarded")

	assert.Equal(t, domain.StatusError, report.Status)
	assert.Equal(t, domain.StepPlaylistCreateFailed, report.Step)
	assert.Equal(t, 1, report.MatchedTracks)
	require.Len(t, report.Matches, 1)
	assert.NotNil(t, report.Matches[0].Matched)
	assert.Empty(t, report.PlaylistID)
}

func TestConvert_EmptyPlaylistStillCreated(t *testing.T) {
	tracks := []domain.NormalizedTrack{{Name: "Obscure Song", Artists: "Nobody"}}
	matcher := &mockMatcher{provider: domain.ProviderYouTube} // nothing matches
	mz := &mockMaterializer{handle: domain.PlaylistHandle{ID: "empty-pl"}}
	svc := newTestService(&mockSource{tracks: tracks}, adapters.Destination{Matcher: matcher, Materializer: mz, RequiresAuth: true}, 1)

	report, err := svc.Convert(context.Background(), testAuth(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, mz.calls)
	assert.Empty(t, mz.gotTracks)
	assert.Equal(t, "empty-pl", report.PlaylistID)
}

func TestConvert_PlaylistNameDefaultAndOverride(t *testing.T) {
	tracks := []domain.NormalizedTrack{{Name: "Song A", Artists: "Artist X"}}
	matcher := &mockMatcher{
		provider: domain.ProviderYouTube,
		results:  map[string]matchOutcome{"Song A": {ref: fakeRef{ID: "vid-a"}}},
	}
	mz := &mockMaterializer{handle: domain.PlaylistHandle{ID: "pl"}}
	svc := newTestService(&mockSource{tracks: tracks}, adapters.Destination{Matcher: matcher, Materializer: mz, RequiresAuth: true}, 1)

	req := validRequest()
	_, err := svc.Convert(context.Background(), testAuth(), req)
	require.NoError(t, err)
	assert.Equal(t, "FlowPlay – Spotify → YouTube Music", mz.gotName)

	req.PlaylistName = "  Road Trip  "
	_, err = svc.Convert(context.Background(), testAuth(), req)
	require.NoError(t, err)
	assert.Equal(t, "Road Trip", mz.gotName)
}

// -- Lookup-only destinations ------------------------------------------------

func TestConvert_RegionProberFillsReportExtras(t *testing.T) {
	tracks := []domain.NormalizedTrack{{Name: "Song A", Artists: "Artist X", ISRC: "USABC1234567"}}
	matcher := &regionMatcher{
		mockMatcher: mockMatcher{
			provider: domain.ProviderAppleMusic,
			results:  map[string]matchOutcome{"Song A": {ref: fakeRef{ID: "123"}}},
		},
		regions: []string{"us", "gb", "de", "ng", "fr"},
	}
	svc := newTestService(&mockSource{tracks: tracks}, adapters.Destination{Matcher: matcher}, 1)

	req := validRequest()
	req.To = "Apple Music"
	report, err := svc.Convert(context.Background(), testAuth(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"us", "gb", "de", "ng", "fr"}, report.RegionsUsed)
	assert.Equal(t, "FlowPlay – Spotify → Apple Music", report.TargetPlaylistName)
	assert.Empty(t, report.PlaylistID, "lookup-only destination has no playlist")
	assert.Equal(t, domain.ProviderAppleMusic, report.To)
}

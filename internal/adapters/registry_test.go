package adapters

import (
	"context"
	"testing"

	"github.com/Afeez-Ola/flowplay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Minimal stubs for registry tests -----------------------------------------

type stubMatcher struct {
	provider domain.Provider
}

func (s *stubMatcher) Provider() domain.Provider { return s.provider }
func (s *stubMatcher) Match(_ context.Context, _ domain.AuthContext, _ domain.NormalizedTrack) (domain.TrackRef, error) {
	return nil, nil
}

type stubMaterializer struct{}

func (s *stubMaterializer) Materialize(_ context.Context, _ domain.AuthContext, _ string, _ []domain.TrackRef) (domain.PlaylistHandle, error) {
	return domain.PlaylistHandle{}, nil
}

// -- Tests -------------------------------------------------------------------

func TestDestinationRegistry_RegisterAndGet(t *testing.T) {
	registry := NewDestinationRegistry()
	registry.Register(Destination{Matcher: &stubMatcher{provider: domain.ProviderAppleMusic}})
	registry.Register(Destination{
		Matcher:      &stubMatcher{provider: domain.ProviderYouTube},
		Materializer: &stubMaterializer{},
		RequiresAuth: true,
	})

	d, err := registry.Get(domain.ProviderAppleMusic)
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderAppleMusic, d.Matcher.Provider())
	assert.Nil(t, d.Materializer, "lookup-only destination has no materializer")
	assert.False(t, d.RequiresAuth)

	d, err = registry.Get(domain.ProviderYouTube)
	require.NoError(t, err)
	assert.NotNil(t, d.Materializer)
	assert.True(t, d.RequiresAuth)
}

func TestDestinationRegistry_GetUnknown(t *testing.T) {
	registry := NewDestinationRegistry()

	_, err := registry.Get(domain.Provider("deezer"))
	require.Error(t, err)

	convErr, ok := err.(*domain.Error)
	require.True(t, ok)
	assert.Contains(t, convErr.Message, "deezer")
	assert.Contains(t, convErr.Message, "not implemented")
}

func TestDestinationRegistry_Available(t *testing.T) {
	registry := NewDestinationRegistry()
	registry.Register(Destination{Matcher: &stubMatcher{provider: domain.ProviderAppleMusic}})
	registry.Register(Destination{Matcher: &stubMatcher{provider: domain.ProviderYouTube}})

	available := registry.Available()
	assert.Len(t, available, 2)
	assert.Contains(t, available, "Apple Music")
	assert.Contains(t, available, "YouTube Music")
}

func TestDestinationRegistry_OverwriteExisting(t *testing.T) {
	registry := NewDestinationRegistry()
	registry.Register(Destination{Matcher: &stubMatcher{provider: domain.ProviderYouTube}})
	registry.Register(Destination{Matcher: &stubMatcher{provider: domain.ProviderYouTube}}) // re-register

	assert.Len(t, registry.Available(), 1)
}

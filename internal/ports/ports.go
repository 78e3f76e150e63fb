package ports

import (
	"context"

	"github.com/Afeez-Ola/flowplay/internal/domain"
)

// SourceLibrary reads a user's playlist from the source provider and returns
// it as normalized tracks. This is the driven port for the source side of a
// conversion.
type SourceLibrary interface {
	// ExtractPlaylistID pulls the provider-native playlist id out of a pasted
	// playlist URL. Returns false when the URL carries no recognizable id.
	ExtractPlaylistID(url string) (string, bool)

	// PlaylistTracks fetches every track in the playlist, handling pagination
	// internally, and applies the track record normalizer before returning.
	PlaylistTracks(ctx context.Context, token string, playlistID string) ([]domain.NormalizedTrack, error)
}

// CatalogMatcher maps one normalized track to at most one destination-catalog
// entry. Implementations apply the two-tier policy: exact ISRC lookup first,
// free-text fallback second, first non-empty result wins.
type CatalogMatcher interface {
	// Provider returns the destination this matcher searches.
	Provider() domain.Provider

	// Match returns the best catalog entry for the track, or nil when no
	// entry cleared the policy. Errors are per-track and never abort a batch.
	Match(ctx context.Context, auth domain.AuthContext, track domain.NormalizedTrack) (domain.TrackRef, error)
}

// RegionProber is implemented by matchers that probe a fixed, ordered list of
// storefront regions. The list appears in the report as regions_used.
type RegionProber interface {
	Regions() []string
}

// PlaylistMaterializer creates a real playlist in the destination account and
// appends the matched tracks to it in source order. Destinations without a
// write API have no materializer.
type PlaylistMaterializer interface {
	// Materialize creates the playlist and appends each track. A failed
	// append is skipped, never fatal; a failed create is.
	Materialize(ctx context.Context, auth domain.AuthContext, name string, tracks []domain.TrackRef) (domain.PlaylistHandle, error)
}

// ConversionService is the driving port for the conversion use case.
type ConversionService interface {
	Convert(ctx context.Context, auth domain.AuthContext, req domain.ConversionRequest) (*domain.ConversionReport, error)
}

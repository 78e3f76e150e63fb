package app

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/Afeez-Ola/flowplay/internal/adapters"
	"github.com/Afeez-Ola/flowplay/internal/domain"
	"github.com/Afeez-Ola/flowplay/internal/ports"
)

// Service implements ports.ConversionService. Per-track catalog lookups run
// on a bounded worker pool; outbound searches share a rate limiter so a long
// playlist cannot burn through the destination's quota in one burst.
type Service struct {
	source   ports.SourceLibrary
	registry *adapters.DestinationRegistry
	workers  int
	limiter  *rate.Limiter
	logger   *log.Logger
}

// NewService creates a conversion service. workers bounds concurrent catalog
// lookups; searchesPerSecond caps the outbound search rate across requests.
func NewService(source ports.SourceLibrary, registry *adapters.DestinationRegistry, workers int, searchesPerSecond float64, logger *log.Logger) *Service {
	if workers < 1 {
		workers = 1
	}
	if searchesPerSecond <= 0 {
		searchesPerSecond = 5
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		source:   source,
		registry: registry,
		workers:  workers,
		limiter:  rate.NewLimiter(rate.Limit(searchesPerSecond), 1),
		logger:   logger,
	}
}

// Convert runs the full pipeline: validate, fetch + normalize source tracks,
// match every track on the destination, materialize a playlist where the
// destination supports it, and assemble the report.
func (s *Service) Convert(ctx context.Context, auth domain.AuthContext, req domain.ConversionRequest) (*domain.ConversionReport, error) {
	if req.URL == "" || req.From == "" || req.To == "" {
		return nil, domain.NewValidationError("Missing fields")
	}

	from, ok := domain.ParseProvider(req.From)
	if !ok {
		return nil, domain.NewValidationError("Unknown source platform '%s'", req.From)
	}
	to, ok := domain.ParseProvider(req.To)
	if !ok {
		return nil, domain.NewUnsupportedDestination(req.To)
	}

	if from == to {
		return nil, domain.NewValidationError("Source and destination cannot be the same")
	}
	if from != domain.ProviderSpotify {
		return nil, domain.NewValidationError("Only Spotify as source is implemented right now")
	}

	playlistID, ok := s.source.ExtractPlaylistID(req.URL)
	if !ok {
		return nil, domain.NewValidationError("Could not extract Spotify playlist ID from URL")
	}

	sourceToken := auth.TokenFor(from)
	if sourceToken == "" {
		return nil, domain.NewAuthError(from)
	}

	dest, err := s.registry.Get(to)
	if err != nil {
		return nil, err
	}
	if dest.RequiresAuth && auth.TokenFor(to) == "" {
		return nil, domain.NewAuthError(to)
	}

	s.logger.Info("fetching source tracks", "provider", from, "playlist", playlistID)
	tracks, err := s.source.PlaylistTracks(ctx, sourceToken, playlistID)
	if err != nil {
		s.logger.Error("source fetch failed", "err", err)
		return nil, domain.NewUpstreamError(from, err)
	}
	if len(tracks) == 0 {
		return nil, domain.NewValidationError("No tracks found in %s playlist", from.DisplayName())
	}

	s.logger.Info("matching tracks", "count", len(tracks), "destination", to)
	matches := s.matchAll(ctx, auth, dest.Matcher, tracks)

	report := s.assembleReport(from, to, matches)
	name := domain.ResolvePlaylistName(req.PlaylistName, from, to)

	if prober, ok := dest.Matcher.(ports.RegionProber); ok {
		report.RegionsUsed = prober.Regions()
		report.TargetPlaylistName = name
	}

	if dest.Materializer != nil {
		s.materialize(ctx, auth, dest.Materializer, name, report)
	}

	s.logger.Info("conversion complete",
		"matched", report.MatchedTracks, "unmatched", report.UnmatchedCount, "status", report.Status)
	return report, nil
}

// matchAll searches the destination catalog for every track using a bounded
// worker pool. Results are reassembled by original index, so slot i of the
// output always corresponds to input track i regardless of completion order.
// A failed lookup is folded into "no match" for that track only.
func (s *Service) matchAll(ctx context.Context, auth domain.AuthContext, matcher ports.CatalogMatcher, tracks []domain.NormalizedTrack) []domain.MatchCandidate {
	type indexedTrack struct {
		index int
		track domain.NormalizedTrack
	}
	type indexedMatch struct {
		index   int
		matched domain.TrackRef
	}

	trackCh := make(chan indexedTrack, len(tracks))
	matchCh := make(chan indexedMatch, len(tracks))

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for item := range trackCh {
				if err := s.limiter.Wait(ctx); err != nil {
					matchCh <- indexedMatch{index: item.index}
					continue
				}

				matched, err := matcher.Match(ctx, auth, item.track)
				if err != nil {
					// Per-track isolation: a transport or quota error on one
					// lookup never aborts the batch.
					s.logger.Warn("lookup failed, treating as unmatched",
						"worker", workerID, "track", item.track.Name, "artists", item.track.Artists, "err", err)
					matchCh <- indexedMatch{index: item.index}
					continue
				}

				if matched == nil {
					s.logger.Debug("no match",
						"worker", workerID, "track", item.track.Name, "artists", item.track.Artists)
				}
				matchCh <- indexedMatch{index: item.index, matched: matched}
			}
		}(i)
	}

	for i, track := range tracks {
		trackCh <- indexedTrack{index: i, track: track}
	}
	close(trackCh)

	go func() {
		wg.Wait()
		close(matchCh)
	}()

	candidates := make([]domain.MatchCandidate, len(tracks))
	for i, track := range tracks {
		candidates[i].Source = track
	}
	for im := range matchCh {
		candidates[im.index].Matched = im.matched
	}

	return candidates
}

func (s *Service) assembleReport(from, to domain.Provider, matches []domain.MatchCandidate) *domain.ConversionReport {
	report := &domain.ConversionReport{
		Status:      domain.StatusSuccess,
		From:        from,
		To:          to,
		TotalTracks: len(matches),
		Matches:     matches,
		Unmatched:   []domain.UnmatchedTrack{},
	}

	for _, m := range matches {
		if m.Matched != nil {
			report.MatchedTracks++
			continue
		}
		report.UnmatchedCount++
		report.Unmatched = append(report.Unmatched, domain.UnmatchedTrack{
			Name:    m.Source.Name,
			Artists: m.Source.Artists,
		})
	}

	if report.UnmatchedCount > 0 {
		report.Status = domain.StatusPartial
	}
	return report
}

// materialize creates the destination playlist and records the outcome on
// the report. A create failure downgrades the status but never discards the
// already-computed matches.
func (s *Service) materialize(ctx context.Context, auth domain.AuthContext, mz ports.PlaylistMaterializer, name string, report *domain.ConversionReport) {
	matched := make([]domain.TrackRef, 0, report.MatchedTracks)
	for _, m := range report.Matches {
		if m.Matched != nil {
			matched = append(matched, m.Matched)
		}
	}

	// The playlist is created even when nothing matched; an empty playlist
	// is still a valid destination for the user to fill by hand.
	handle, err := mz.Materialize(ctx, auth, name, matched)
	if err != nil {
		s.logger.Error("playlist creation failed", "err", err)
		report.Status = domain.StatusError
		report.Step = domain.StepPlaylistCreateFailed
		return
	}

	report.PlaylistID = handle.ID
	report.PlaylistURL = handle.URL
}

// Package auth implements the authorization collaborator: provider OAuth
// flows, httpOnly cookie storage for the resulting credentials, and the
// AuthContext handed to the conversion core. Token refresh is not handled;
// an expired credential simply surfaces as the provider's 401.
package auth

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	goog "golang.org/x/oauth2/google"
	spot "golang.org/x/oauth2/spotify"

	"github.com/Afeez-Ola/flowplay/internal/config"
	"github.com/Afeez-Ola/flowplay/internal/domain"
)

const (
	spotifyAccessCookie  = "spotify_access_token"
	spotifyRefreshCookie = "spotify_refresh_token"
	youtubeAccessCookie  = "youtube_access_token"
	youtubeRefreshCookie = "youtube_refresh_token"
	stateCookie          = "oauth_state"

	// Header fallbacks for clients that do not share the cookie jar.
	spotifyTokenHeader = "X-Spotify-Token"
	youtubeTokenHeader = "X-Youtube-Token"

	cookieMaxAge = 3600
)

var spotifyScopes = []string{
	"playlist-read-private",
	"playlist-read-collaborative",
	"playlist-modify-private",
	"playlist-modify-public",
	"user-library-read",
}

var youtubeScopes = []string{
	"https://www.googleapis.com/auth/youtube",
}

// Handler serves the OAuth login/callback routes and the connection status
// endpoint for both providers.
type Handler struct {
	spotify *oauth2.Config
	youtube *oauth2.Config
	appURL  string
	logger  *log.Logger
}

// NewHandler builds the OAuth configs from application configuration.
func NewHandler(cfg *config.Config, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		spotify: &oauth2.Config{
			ClientID:     cfg.SpotifyClientID,
			ClientSecret: cfg.SpotifyClientSecret,
			RedirectURL:  cfg.SpotifyRedirectURI,
			Scopes:       spotifyScopes,
			Endpoint:     spot.Endpoint,
		},
		youtube: &oauth2.Config{
			ClientID:     cfg.YouTubeClientID,
			ClientSecret: cfg.YouTubeClientSecret,
			RedirectURL:  cfg.YouTubeRedirectURI,
			Scopes:       youtubeScopes,
			Endpoint:     goog.Endpoint,
		},
		appURL: cfg.AppURL,
		logger: logger,
	}
}

// RegisterRoutes sets up the OAuth and status routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/auth/spotify", h.spotifyLogin)
	r.GET("/auth/spotify/callback", h.spotifyCallback)
	r.GET("/auth/youtube", h.youtubeLogin)
	r.GET("/auth/youtube/callback", h.youtubeCallback)
	r.GET("/auth/status", h.Status)
}

// FromRequest builds the AuthContext for one request: auth cookies first,
// explicit token headers as a fallback.
func FromRequest(c *gin.Context) domain.AuthContext {
	return domain.AuthContext{
		SpotifyToken: tokenFrom(c, spotifyAccessCookie, spotifyTokenHeader),
		YouTubeToken: tokenFrom(c, youtubeAccessCookie, youtubeTokenHeader),
	}
}

func tokenFrom(c *gin.Context, cookie string, header string) string {
	if v, err := c.Cookie(cookie); err == nil && v != "" {
		return v
	}
	return c.GetHeader(header)
}

// Status reports which providers the user is currently connected to.
//
//	@Summary		Provider connection status
//	@Description	Returns whether a valid credential is present for each provider.
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	map[string]bool
//	@Router			/auth/status [get]
func (h *Handler) Status(c *gin.Context) {
	auth := FromRequest(c)
	c.JSON(http.StatusOK, gin.H{
		"spotify": auth.SpotifyToken != "",
		"youtube": auth.YouTubeToken != "",
	})
}

func (h *Handler) spotifyLogin(c *gin.Context) {
	h.login(c, h.spotify)
}

func (h *Handler) youtubeLogin(c *gin.Context) {
	h.login(c, h.youtube, oauth2.AccessTypeOffline)
}

// login starts the authorization-code flow with a random state cookie.
func (h *Handler) login(c *gin.Context, cfg *oauth2.Config, opts ...oauth2.AuthCodeOption) {
	state := uuid.NewString()
	c.SetCookie(stateCookie, state, cookieMaxAge, "/", "", true, true)
	c.Redirect(http.StatusTemporaryRedirect, cfg.AuthCodeURL(state, opts...))
}

func (h *Handler) spotifyCallback(c *gin.Context) {
	h.callback(c, h.spotify, spotifyAccessCookie, spotifyRefreshCookie)
}

func (h *Handler) youtubeCallback(c *gin.Context) {
	h.callback(c, h.youtube, youtubeAccessCookie, youtubeRefreshCookie)
}

// callback exchanges the grant code for tokens and stores them in secure
// httpOnly cookies before bouncing back to the app.
func (h *Handler) callback(c *gin.Context, cfg *oauth2.Config, accessCookie, refreshCookie string) {
	if state, err := c.Cookie(stateCookie); err != nil || state == "" || state != c.Query("state") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid state"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing code"})
		return
	}

	token, err := cfg.Exchange(c.Request.Context(), code)
	if err != nil {
		h.logger.Error("token exchange failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token exchange failed"})
		return
	}

	c.SetCookie(accessCookie, token.AccessToken, cookieMaxAge, "/", "", true, true)
	if token.RefreshToken != "" {
		c.SetCookie(refreshCookie, token.RefreshToken, 0, "/", "", true, true)
	}
	c.SetCookie(stateCookie, "", -1, "/", "", true, true)

	c.Redirect(http.StatusTemporaryRedirect, h.appURL)
}

package server

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dukerupert/familytree/internal/account"
	"github.com/dukerupert/familytree/internal/family"
	"github.com/dukerupert/familytree/internal/familykey"
	"github.com/dukerupert/familytree/internal/gallery"
	"github.com/dukerupert/familytree/internal/handler"
	"github.com/dukerupert/familytree/internal/identity"
	"github.com/dukerupert/familytree/internal/middleware"
	"github.com/dukerupert/familytree/internal/store"
	ws "github.com/dukerupert/familytree/internal/websocket"
)

const (
	authRateLimit  = 10
	authRateWindow = time.Minute
)

// Deps are the collaborators the server is built from.
type Deps struct {
	DB            *sql.DB
	Registry      *family.Registry
	FamilyKey     *familykey.Verifier
	Identity      *identity.Client
	Photos        *gallery.PhotoStore
	SecureCookies bool
	Logger        *slog.Logger
}

type Server struct {
	hub          *ws.Hub
	authH        *handler.AuthHandler
	memberH      *handler.MemberHandler
	galleryH     *handler.GalleryHandler
	sessionStore *store.SessionStore
	rateLimiter  *middleware.RateLimiter
	logger       *slog.Logger
}

func New(d Deps) *Server {
	logger := d.Logger
	hub := ws.NewHub(logger.With("component", "websocket"))

	profileStore := store.NewProfileStore(d.DB)
	sessionStore := store.NewSessionStore(d.DB)
	galleryStore := store.NewGalleryStore(d.DB)

	accounts := account.NewService(d.FamilyKey, d.Identity, profileStore, sessionStore, logger, account.WithNotifier(hub))

	return &Server{
		hub:          hub,
		authH:        handler.NewAuthHandler(accounts, profileStore, sessionStore, hub, d.SecureCookies, logger),
		memberH:      handler.NewMemberHandler(d.Registry),
		galleryH:     handler.NewGalleryHandler(galleryStore, d.Photos, hub, logger),
		sessionStore: sessionStore,
		rateLimiter:  middleware.NewRateLimiter(),
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Public
	mux.Handle("GET /health", handler.Health(s.hub))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("POST /api/auth/validate-key", s.rateLimited(s.authH.ValidateKey))
	mux.Handle("POST /api/auth/register", s.rateLimited(s.authH.Register))
	mux.Handle("POST /api/auth/signup", s.rateLimited(s.authH.SignUp))
	mux.Handle("POST /api/auth/signin", s.rateLimited(s.authH.SignIn))

	// Session required
	mux.Handle("POST /api/auth/signout", s.protected(s.authH.SignOut))
	mux.Handle("POST /api/auth/signout-all", s.protected(s.authH.SignOutAll))
	mux.Handle("GET /api/auth/user", s.protected(s.authH.User))

	mux.Handle("GET /api/members", s.protected(s.memberH.List))
	mux.Handle("GET /api/members/{id}", s.protected(s.memberH.Get))
	mux.Handle("GET /api/tree", s.protected(s.memberH.Tree))
	mux.Handle("GET /api/search", s.protected(s.memberH.Search))
	mux.Handle("GET /api/search/suggest", s.protected(s.memberH.Suggest))

	mux.Handle("GET /api/gallery", s.protected(s.galleryH.List))
	mux.Handle("GET /api/gallery/{index}", s.protected(s.galleryH.View))
	mux.Handle("POST /api/gallery", s.protected(s.galleryH.Upload))
	mux.Handle("GET /photos/{key...}", s.protected(s.galleryH.Photo))

	mux.Handle("GET /api/online", s.protected(handler.Online(s.hub)))
	mux.Handle("GET /ws", s.protected(ws.HandleEvents(s.hub, s.logger)))
	mux.Handle("GET /ws/canvas", s.protected(ws.HandleCanvas(s.logger)))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

// protected is registered per route rather than on a nested mux so the
// request logger sees the matched pattern.
func (s *Server) protected(h http.HandlerFunc) http.Handler {
	return middleware.RequireAuth(s.sessionStore, s.logger.With("component", "auth"))(h)
}

func (s *Server) rateLimited(h http.HandlerFunc) http.Handler {
	return middleware.RateLimit(s.rateLimiter, middleware.ByIP, authRateLimit, authRateWindow)(h)
}

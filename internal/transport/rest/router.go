package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/hangyeol/internal/config"
	"github.com/heartmarshall/hangyeol/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (subject, role string, err error)
}

// Router collects the handlers and middleware settings for NewRouter.
// Admin and Tokens are optional; without them the admin routes are not
// mounted.
type Router struct {
	Grade    *GradeHandler
	Search   *SearchHandler
	Generate *GenerateHandler
	Admin    *LexiconAdminHandler
	Health   *HealthHandler

	Tokens    tokenValidator
	Limiter   *middleware.RateLimiter
	RateLimit config.RateLimitConfig
	CORS      config.CORSConfig
	Logger    *slog.Logger
}

// Handler builds the HTTP handler with every route and the global
// middleware chain.
func (rt Router) Handler() http.Handler {
	mux := http.NewServeMux()

	gradeLimit := rt.limit("grade", rt.RateLimit.GradePerMinute)
	generateLimit := rt.limit("generate", rt.RateLimit.GeneratePerMinute)

	mux.Handle("POST /api/grade", gradeLimit(http.HandlerFunc(rt.Grade.Grade)))
	mux.Handle("POST /api/grade/file", gradeLimit(http.HandlerFunc(rt.Grade.GradeFile)))
	mux.Handle("GET /api/search", gradeLimit(http.HandlerFunc(rt.Search.Search)))
	mux.Handle("POST /api/generate", generateLimit(http.HandlerFunc(rt.Generate.Generate)))

	if rt.Admin != nil && rt.Tokens != nil {
		mux.Handle("POST /admin/lexicon/reload", middleware.RequireAdmin(http.HandlerFunc(rt.Admin.Reload)))
		mux.Handle("GET /admin/lexicon/stats", middleware.RequireAdmin(http.HandlerFunc(rt.Admin.Stats)))
	}

	mux.HandleFunc("GET /live", rt.Health.Live)
	mux.HandleFunc("GET /ready", rt.Health.Ready)
	mux.HandleFunc("GET /health", rt.Health.Health)

	chain := []middleware.Middleware{
		middleware.RequestID(),
		middleware.Recovery(rt.Logger),
	}
	if rt.Tokens != nil {
		chain = append(chain, middleware.Auth(rt.Tokens))
	}
	chain = append(chain,
		middleware.Logger(rt.Logger),
		middleware.CORS(rt.CORS),
	)

	return middleware.Chain(chain...)(mux)
}

func (rt Router) limit(scope string, perMinute int) middleware.Middleware {
	if rt.Limiter == nil || perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return rt.Limiter.Limit(scope, perMinute)
}

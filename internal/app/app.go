// Package app wires configuration, adapters and services into the running
// service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/hangyeol/internal/adapter/httpclient"
	"github.com/heartmarshall/hangyeol/internal/adapter/llm/anthropic"
	"github.com/heartmarshall/hangyeol/internal/adapter/tokenizer/kiwi"
	"github.com/heartmarshall/hangyeol/internal/auth"
	"github.com/heartmarshall/hangyeol/internal/config"
	"github.com/heartmarshall/hangyeol/internal/domain"
	"github.com/heartmarshall/hangyeol/internal/lexicon"
	"github.com/heartmarshall/hangyeol/internal/service/analysis"
	"github.com/heartmarshall/hangyeol/internal/service/disambiguation"
	"github.com/heartmarshall/hangyeol/internal/service/generation"
	"github.com/heartmarshall/hangyeol/internal/service/profiler"
	"github.com/heartmarshall/hangyeol/internal/transport/middleware"
	"github.com/heartmarshall/hangyeol/internal/transport/rest"
)

type tokenizer interface {
	Tokenize(ctx context.Context, text string) ([]domain.Token, error)
	Ping(ctx context.Context) error
}

type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// App holds the wired services. Build it with New and release it with Close.
type App struct {
	cfg *config.Config
	log *slog.Logger

	Registry   *lexicon.Registry
	Analysis   *analysis.Service
	Generation *generation.Service
	Tokens     *auth.JWTManager

	tokenizer tokenizer
	limiter   *middleware.RateLimiter
	closers   []func()
}

// New builds every adapter and service and performs the first lexicon
// load. A failed load is logged, not returned: the service starts and
// reports not-ready until an operator reloads the tables.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: logger}

	src, closeSrc, err := OpenLexiconSource(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeSrc)

	// Interface-typed so an unconfigured dependency converts to a nil
	// interface downstream.
	var (
		tok tokenizer
		llm completer
	)
	if cfg.Tokenizer.URL != "" {
		tok = kiwi.New(cfg.Tokenizer.URL, httpclient.New(httpclient.Options{
			RetryMax: cfg.Tokenizer.RetryMax,
			Timeout:  cfg.Tokenizer.Timeout,
			Logger:   logger,
		}), logger)
	} else {
		logger.Warn("tokenizer url is empty, grading is disabled")
	}
	if cfg.LLM.Enabled() {
		llm = anthropic.New(anthropic.Config{
			APIKey:    cfg.LLM.APIKey,
			Model:     cfg.LLM.Model,
			BaseURL:   cfg.LLM.BaseURL,
			MaxTokens: cfg.LLM.MaxTokens,
		}, httpclient.New(httpclient.Options{
			RetryMax: cfg.LLM.RetryMax,
			Timeout:  cfg.LLM.Timeout,
			Logger:   logger,
		}), logger)
	}
	a.tokenizer = tok

	a.Registry = lexicon.NewRegistry(src, tok, logger)
	if err := a.Registry.Load(ctx); err != nil {
		logger.Error("initial lexicon load failed", slog.String("error", err.Error()))
		if cfg.Lexicon.RetryInterval > 0 {
			a.retryLoad(cfg.Lexicon.RetryInterval)
		}
	} else {
		st := a.Registry.Current().Stats()
		logger.Info("lexicon loaded",
			slog.Int("word_rows", st.WordRows),
			slog.Int("grammar_rows", st.GrammarRows),
			slog.Int("idiom_heads", st.IdiomHeads),
		)
	}

	prof := profiler.NewProfiler(logger, disambiguation.NewService(logger, llm))
	a.Analysis = analysis.NewService(logger, a.Registry, tok, prof)
	a.Generation = generation.NewService(logger, llm, a.Analysis, cfg.Generation.MaxAttempts)

	if cfg.Admin.Enabled() {
		a.Tokens = auth.NewJWTManager(cfg.Admin.JWTSecret, cfg.Admin.JWTIssuer, cfg.Admin.TokenTTL)
	}

	return a, nil
}

// retryLoad reloads the lexicon in the background until a load succeeds or
// the app is closed.
func (a *App) retryLoad(interval time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	a.closers = append(a.closers, func() {
		cancel()
		<-done
	})

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for attempt := 1; ; attempt++ {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if a.Registry.Current().Ready() {
				return
			}
			if err := a.Registry.Load(ctx); err != nil {
				a.log.Warn("lexicon load retry failed",
					slog.Int("attempt", attempt),
					slog.String("error", err.Error()),
				)
				continue
			}
			a.log.Info("lexicon loaded after retry", slog.Int("attempt", attempt))
			return
		}
	}()
}

// Handler builds the HTTP handler. It starts the rate limiter's cleanup
// goroutine, which Close stops.
func (a *App) Handler() http.Handler {
	if a.limiter == nil {
		a.limiter = middleware.NewRateLimiter(a.cfg.RateLimit.CleanupInterval)
		a.closers = append(a.closers, a.limiter.Stop)
	}

	checks := map[string]rest.Checker{
		"lexicon": rest.CheckFunc(func(context.Context) error {
			return a.Registry.Current().Err()
		}),
		"tokenizer": rest.CheckFunc(func(ctx context.Context) error {
			if a.tokenizer == nil {
				return domain.ErrTokenizerUnavailable
			}
			return a.tokenizer.Ping(ctx)
		}),
	}

	maxBody := a.cfg.Server.MaxBodyBytes
	rt := rest.Router{
		Grade:     rest.NewGradeHandler(a.Analysis, maxBody, a.log),
		Search:    rest.NewSearchHandler(a.Registry, a.log),
		Generate:  rest.NewGenerateHandler(a.Generation, maxBody, a.log),
		Health:    rest.NewHealthHandler(checks, BuildVersion()),
		Limiter:   a.limiter,
		RateLimit: a.cfg.RateLimit,
		CORS:      a.cfg.CORS,
		Logger:    a.log,
	}
	if a.Tokens != nil {
		rt.Admin = rest.NewLexiconAdminHandler(a.Registry, a.log)
		rt.Tokens = a.Tokens
	}
	return rt.Handler()
}

// Close releases every resource in reverse acquisition order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// Run is the server entry point. It loads configuration, wires the
// application and serves HTTP until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("lexicon_source", cfg.Lexicon.Source),
		slog.Bool("llm_enabled", cfg.LLM.Enabled()),
		slog.Bool("admin_enabled", cfg.Admin.Enabled()),
	)

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer a.Close()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      a.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("server stopped", slog.Duration("uptime", time.Since(startTime)))
	return nil
}

var startTime = time.Now()

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
	"github.com/secmon-lab/aletheia/pkg/usecase"
	"github.com/secmon-lab/aletheia/pkg/utils/logging"
)

type Server struct {
	router   *chi.Mux
	verifier *TokenVerifier
	noAuth   noAuthConfig
	registry *model.CompanyRegistry
}

type Options func(*Server)

// WithTokenSecret enables bearer token authentication with the given
// HMAC secret.
func WithTokenSecret(secret []byte) Options {
	return func(s *Server) {
		s.verifier = NewTokenVerifier(secret)
	}
}

// WithCompanyRegistry exposes the configured companies on the API
func WithCompanyRegistry(registry *model.CompanyRegistry) Options {
	return func(s *Server) {
		s.registry = registry
	}
}

// WithNoAuth disables authentication for local development. Role and
// company come from X-Dev-Role / X-Dev-Company headers, defaulting to
// an admin of the given company.
func WithNoAuth(companyID string) Options {
	return func(s *Server) {
		s.noAuth = noAuthConfig{Enabled: true, CompanyID: companyID}
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK")) //nolint:errcheck
	})

	r.Route("/api", func(r chi.Router) {
		if s.registry != nil {
			r.Get("/companies", companiesHandler(s.registry))
		}

		// Submission works without a token so that anonymous
		// whistleblowing stays possible.
		r.Post("/reports", createReportHandler(uc, s.verifier, s.noAuth))

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(s.verifier, s.noAuth))

			r.Get("/reports", listReportsHandler(uc))
			r.Route("/reports/{reportID}", func(r chi.Router) {
				r.Get("/", getReportHandler(uc))
				r.Get("/timeline", getTimelineHandler(uc))
				r.Post("/status", changeStatusHandler(uc))
				r.Post("/decision", decisionHandler(uc))
				r.Get("/comments", listCommentsHandler(uc))
				r.Post("/comments", addCommentHandler(uc))
				r.Get("/attachments", listAttachmentsHandler(uc))
				r.Post("/attachments", uploadAttachmentsHandler(uc))
			})
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// companiesHandler serves the company list so that submission forms
// can offer a picker without authentication.
func companiesHandler(registry *model.CompanyRegistry) http.HandlerFunc {
	type companyResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	type response struct {
		Companies []companyResponse `json:"companies"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		companies := registry.Companies()
		resp := response{
			Companies: make([]companyResponse, len(companies)),
		}
		for i, c := range companies {
			resp.Companies[i] = companyResponse{
				ID:   c.ID,
				Name: c.Name,
			}
		}
		respondJSON(r, w, http.StatusOK, resp)
	}
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

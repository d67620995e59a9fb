package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/mailmorph/internal/infra/http/handlers"
	"github.com/xavierca1/mailmorph/internal/infra/http/middleware"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Leads    *handlers.LeadHandler
	Emails   *handlers.EmailHandler
	Drafts   *handlers.DraftHandler
	Users    *handlers.UserHandler
	Checkout *handlers.CheckoutHandler
	Activity *handlers.ActivityHandler

	AllowedOrigins []string
	// UploadsDir is served under /uploads when pictures are stored locally.
	UploadsDir string
	// DraftLimiter caps generate-* calls per client IP; nil disables it.
	DraftLimiter *middleware.RateLimiter
}

func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)

	origins := h.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Handle("/metrics", promhttp.Handler())
	if h.Health != nil {
		r.Get("/health", h.Health.Handle)
	}

	if h.Leads != nil {
		r.Route("/lead", func(r chi.Router) {
			r.Post("/add", h.Leads.Add)
			r.Get("/list", h.Leads.List)
			r.Post("/delete", h.Leads.Delete)
			r.Post("/followup", h.Leads.FollowUp)
			r.Post("/score", h.Leads.Score)
		})
	}

	if h.Emails != nil {
		r.Post("/send", h.Emails.Send)
		r.Post("/send-bulk", h.Emails.SendBulk)
		r.Post("/reply", h.Emails.Reply)
		r.Get("/sent", h.Emails.Sent)
		r.Get("/replies", h.Emails.Replies)
		r.Get("/replies-latest", h.Emails.Latest)
		r.Post("/replies/sync", h.Emails.SyncReplies)
		r.Post("/email/tag", h.Emails.Tag)
		r.Delete("/emails/{threadId}", h.Emails.Delete)
	}

	if h.Drafts != nil {
		r.Group(func(r chi.Router) {
			if h.DraftLimiter != nil {
				r.Use(h.DraftLimiter.Limit)
			}
			r.Post("/generate-reply", h.Drafts.GenerateReply)
			r.Post("/generate-smart-email", h.Drafts.GenerateSmart)
		})
	}

	if h.Users != nil {
		r.Get("/auth/me", h.Users.Me)
		r.Post("/auth/logout", h.Users.Logout)
		r.Patch("/user/update", h.Users.Update)
	}

	if h.Checkout != nil {
		r.Post("/checkout", h.Checkout.Stripe)
		r.Post("/checkout/polar", h.Checkout.Polar)
	}

	if h.Activity != nil {
		r.Get("/activity", h.Activity.List)
	}

	if h.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.UploadsDir))))
	}

	return r
}

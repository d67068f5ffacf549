package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/freefind/freefind-backend/api/controllers"
	"github.com/freefind/freefind-backend/api/middleware"
	"github.com/freefind/freefind-backend/internal/accounts"
	"github.com/freefind/freefind-backend/internal/co2"
	"github.com/freefind/freefind-backend/internal/donations"
	"github.com/freefind/freefind-backend/internal/photos"
	"github.com/freefind/freefind-backend/pkg/aibackend"
	"github.com/freefind/freefind-backend/pkg/config"
	"github.com/freefind/freefind-backend/pkg/logger"
	"github.com/freefind/freefind-backend/pkg/metrics"
	"github.com/freefind/freefind-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	Redis          *redis.Client
	AIClient       *aibackend.Client
	Estimator      *co2.Estimator
	Accounts       accounts.Service
	Donations      donations.Service
	Photos         *photos.Storage
	RequestMetrics *metrics.RequestMetrics
	Gatherer       prometheus.Gatherer
}

func NewRouter(p RouterParams) http.Handler {
	cfg, logg := p.Config, p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.RequestMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.Redis, p.AIClient))
	})

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", controllers.AuthRegister(p.Accounts, logg))
			r.Post("/login", controllers.AuthLogin(p.Accounts, logg))
			r.Post("/logout", controllers.AuthLogout(p.Accounts, cfg.JWT, logg))
		})

		// Photos are fetched unauthenticated so listings can embed plain URLs.
		r.Get("/photos/{photoId}", controllers.PhotoFetch(p.Photos, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.Redis, logg))

			r.Route("/profile", func(r chi.Router) {
				r.Get("/me", controllers.ProfileFetch(p.Accounts, logg))
				r.Put("/me", controllers.ProfileUpdate(p.Accounts, logg))
			})

			r.Route("/donations", func(r chi.Router) {
				r.Get("/available", controllers.DonationListAvailable(p.Donations, logg))
				r.Get("/mine", controllers.DonationListMine(p.Donations, logg))
				r.Get("/stats", controllers.DonationStats(p.Donations, logg))
				r.Post("/", controllers.DonationCreate(p.Donations, logg))
				r.Get("/{donationId}", controllers.DonationDetail(p.Donations, logg))
				r.Put("/{donationId}", controllers.DonationUpdate(p.Donations, logg))
				r.Delete("/{donationId}", controllers.DonationDelete(p.Donations, logg))
				r.Post("/{donationId}/claim", controllers.DonationClaim(p.Donations, logg))
				r.Post("/{donationId}/pickup", controllers.DonationPickup(p.Donations, logg))
			})

			r.Route("/loyalty", func(r chi.Router) {
				r.Get("/", controllers.LoyaltySummary(p.Accounts, logg))
				r.Get("/rewards", controllers.LoyaltyRewards())
				r.Post("/rewards/claim", controllers.LoyaltyClaimReward(p.Accounts, logg))
			})

			r.Post("/co2/estimate", controllers.CO2Estimate(p.Estimator, logg))

			r.Route("/ai", func(r chi.Router) {
				r.Post("/analyze-image", controllers.AIAnalyzeImage(p.AIClient, logg))
				r.Post("/analyze-text", controllers.AIAnalyzeText(p.AIClient, logg))
			})

			r.Post("/photos", controllers.PhotoUpload(p.Photos, logg))
			r.Delete("/photos/{photoId}", controllers.PhotoDelete(p.Photos, logg))
		})
	})

	return r
}

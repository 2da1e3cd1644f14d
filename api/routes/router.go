package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/corneye/corneye-backend/api/controllers"
	"github.com/corneye/corneye-backend/api/middleware"
	"github.com/corneye/corneye-backend/internal/auth"
	"github.com/corneye/corneye-backend/internal/farmers"
	"github.com/corneye/corneye-backend/internal/notifications"
	"github.com/corneye/corneye-backend/internal/profile"
	"github.com/corneye/corneye-backend/internal/scans"
	"github.com/corneye/corneye-backend/internal/session"
	"github.com/corneye/corneye-backend/internal/subscriptions"
	"github.com/corneye/corneye-backend/pkg/config"
	"github.com/corneye/corneye-backend/pkg/db"
	"github.com/corneye/corneye-backend/pkg/enums"
	"github.com/corneye/corneye-backend/pkg/logger"
	"github.com/corneye/corneye-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessChecker
	Revoke(ctx context.Context, accountID uuid.UUID) error
}

// RouterParams bundles everything the route graph depends on.
type RouterParams struct {
	Config *config.Config
	Logger *logger.Logger

	DB    db.Pinger
	Redis *redis.Client

	Sessions sessionManager

	AuthService     auth.Service
	RegisterService auth.RegisterService
	ProfileService  profile.Service
	ScanService     scans.Service
	Notifications   notifications.Service
	Subscriptions   subscriptions.Service
	FarmersRepo     *farmers.Repository
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	authed := middleware.Auth(cfg.JWT, p.Sessions, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).Post("/register", controllers.AuthRegister(p.RegisterService, logg))
		r.With(authed).Post("/logout", controllers.AuthLogout(p.AuthService, logg))
	})

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AdminAuthLogin(p.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authed)

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileLoad(p.ProfileService, logg))
			r.Put("/", controllers.ProfileSave(p.ProfileService, logg))
		})

		r.Route("/scan", func(r chi.Router) {
			r.Post("/", controllers.ScanAnalyze(p.ScanService, logg))
			r.Get("/history", controllers.ScanHistory(p.ScanService, logg))
			r.Get("/{resultId}", controllers.ScanDetail(p.ScanService, logg))
		})

		r.Route("/diseases", func(r chi.Router) {
			r.Get("/", controllers.DiseaseList(logg))
			r.Get("/{name}", controllers.DiseaseDetail(logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(p.Notifications, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(p.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(p.Notifications, logg))
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/plans", controllers.SubscriptionPlans(p.Subscriptions, logg))
			r.Post("/subscribe", controllers.SubscriptionSubscribe(p.Subscriptions, logg))
			r.Get("/current", controllers.SubscriptionCurrent(p.Subscriptions, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(authed)
		r.Use(middleware.RequireRole(string(enums.ActorRoleAdmin), logg))

		r.Route("/farmers", func(r chi.Router) {
			r.Get("/", controllers.AdminFarmerList(p.FarmersRepo, logg))
			r.Get("/{farmerId}", controllers.AdminFarmerDetail(p.FarmersRepo, logg))
			r.Patch("/{farmerId}/status", controllers.AdminFarmerSetStatus(p.FarmersRepo, p.Sessions, logg))
		})

		r.Post("/notifications/broadcast", controllers.AdminBroadcast(p.Notifications, logg))
	})

	return r
}

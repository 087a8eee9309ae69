package http

import (
	"context"
	"net/http"

	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/application/auth"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/application/credential"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/application/donation"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/application/pet"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/application/profile"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/application/upload"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/config"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/transport/http/handler"
	appmiddleware "github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
// ctx bounds background work owned by the router, such as rate limiter cleanup.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	if cfg.TrustProxy {
		// Rewrites RemoteAddr from X-Forwarded-For / X-Real-IP; only safe behind a proxy that sets them.
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10, on the public auth endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(5), 10)

	credentialSvc := credential.NewService(credential.ServiceDeps{
		Signer:     deps.JWTProvider,
		BcryptCost: cfg.BcryptCost,
	})
	authSvc := auth.NewService(auth.ServiceDeps{
		AccountRepo:     deps.AccountRepo,
		TokenRepo:       deps.TokenRepo,
		Credentials:     credentialSvc,
		Gateway:         deps.Gateway,
		VerificationTTL: cfg.EmailVerificationTTL,
		OTPTTL:          cfg.PasswordResetOTPTTL,
	})
	donationSvc := donation.NewService(deps.DonationPostRepo)
	petSvc := pet.NewService(deps.PetPostRepo)
	profileSvc := profile.NewService(profile.ServiceDeps{
		ProfileRepo: deps.ProfileRepo,
		AccountRepo: deps.AccountRepo,
	})
	uploadSvc := upload.NewService(deps.ObjectStore)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	donationH := handler.NewDonationPostHandler(donationSvc)
	petH := handler.NewPetPostHandler(petSvc)
	profileH := handler.NewProfileHandler(profileSvc)
	uploadH := handler.NewUploadHandler(uploadSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)

		r.Route("/auth", func(r chi.Router) {
			r.With(sensitiveRL.Limit).Post("/register", authH.Register)
			r.Get("/verify/{accountId}", authH.VerifyEmail)
			r.With(sensitiveRL.Limit).Post("/verification/resend", authH.ResendVerification)
			r.With(sensitiveRL.Limit).Post("/login", authH.Login)
			r.With(sensitiveRL.Limit).Post("/password-reset/request", authH.RequestPasswordReset)
			r.With(sensitiveRL.Limit).Post("/password-reset/confirm", authH.ConfirmPasswordReset)
			r.With(authMw).Get("/me", authH.Me)
		})

		r.Get("/donation-posts", donationH.List)
		r.Get("/donation-posts/{id}", donationH.Get)
		r.Get("/pet-posts", petH.List)
		r.Get("/pet-posts/{id}", petH.Get)
		r.Get("/profiles", profileH.List)
		r.Get("/profiles/{id}", profileH.Get)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/donation-posts", donationH.Create)
			r.Put("/donation-posts/{id}", donationH.Update)
			r.Delete("/donation-posts/{id}", donationH.Delete)

			r.Post("/pet-posts", petH.Create)
			r.Put("/pet-posts/{id}", petH.Update)
			r.Delete("/pet-posts/{id}", petH.Delete)

			r.Put("/profiles/me", profileH.UpsertMine)

			r.Post("/uploads/images", uploadH.UploadImage)
		})
	})

	return r
}

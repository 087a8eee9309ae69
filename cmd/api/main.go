package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/application/auth"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/application/notification"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/config"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/infrastructure/dynamo"
	jwtinfra "github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/infrastructure/jwt"
	resendinfra "github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/infrastructure/resend"
	s3infra "github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/infrastructure/s3"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/infrastructure/smtp"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/infrastructure/sns"
	transporthttp "github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading from environment")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fatal("invalid configuration", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		fatal("dynamodb client", err)
	}
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		fatal("jwt provider", err)
	}

	s3Client, err := s3infra.NewClient(ctx, cfg)
	if err != nil {
		fatal("s3 client", err)
	}

	gateway, err := newGateway(ctx, cfg)
	if err != nil {
		fatal("notification gateway", err)
	}

	tokenRepo := dynamo.NewVerificationRepo(dynamoClient, cfg.DynamoTables.VerificationTokens)
	deps := &transporthttp.Deps{
		AccountRepo: dynamo.NewAccountRepo(dynamoClient,
			cfg.DynamoTables.Accounts, cfg.DynamoTables.AccountEmails, cfg.DynamoTables.VerificationTokens),
		TokenRepo:        tokenRepo,
		DonationPostRepo: dynamo.NewDonationPostRepo(dynamoClient, cfg.DynamoTables.DonationPosts),
		PetPostRepo:      dynamo.NewPetPostRepo(dynamoClient, cfg.DynamoTables.PetPosts),
		ProfileRepo:      dynamo.NewProfileRepo(dynamoClient, cfg.DynamoTables.Profiles),
		ObjectStore:      s3infra.NewStore(s3Client, cfg),
		Gateway:          gateway,
		JWTProvider:      jwtProvider,
	}

	go auth.NewTokenJanitor(tokenRepo, cfg.TokenSweepInterval).Run(ctx)

	router := transporthttp.NewRouter(ctx, cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv, "email_service", cfg.EmailService)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("server error", err)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
		return
	}
	slog.Info("server stopped")
}

// newGateway picks the notification transport named by EMAIL_SERVICE.
func newGateway(ctx context.Context, cfg *config.Config) (notification.Gateway, error) {
	settings := notification.Settings{
		BaseURL:         cfg.AppBaseURL,
		VerificationTTL: cfg.EmailVerificationTTL,
		OTPTTL:          cfg.PasswordResetOTPTTL,
	}
	switch cfg.EmailService {
	case config.EmailServiceResend:
		return notification.NewEmailGateway(resendinfra.NewMailer(cfg), settings), nil
	case config.EmailServiceSNS:
		sender, err := sns.NewSender(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return notification.NewSMSGateway(sender, settings), nil
	default:
		return notification.NewEmailGateway(smtp.NewMailer(cfg), settings), nil
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

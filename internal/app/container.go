package app

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/intothestar/session-booking-backend/internal/api"
	"github.com/intothestar/session-booking-backend/internal/auth"
	"github.com/intothestar/session-booking-backend/internal/availability"
	availabilityHttp "github.com/intothestar/session-booking-backend/internal/availability/http"
	"github.com/intothestar/session-booking-backend/internal/booking"
	bookingHttp "github.com/intothestar/session-booking-backend/internal/booking/http"
	"github.com/intothestar/session-booking-backend/internal/config"
	"github.com/intothestar/session-booking-backend/internal/currency"
	currencyHttp "github.com/intothestar/session-booking-backend/internal/currency/http"
	"github.com/intothestar/session-booking-backend/internal/mailer"
	"github.com/intothestar/session-booking-backend/internal/payment"
	"github.com/intothestar/session-booking-backend/internal/ratelimit"
	"github.com/intothestar/session-booking-backend/internal/settings"
	settingsHttp "github.com/intothestar/session-booking-backend/internal/settings/http"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Redis      *redis.Client
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	adminCredential := &auth.AdminCredential{
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
		Hasher:       passwordHasher,
	}

	// Availability Module
	availabilityRepo := availability.NewPgxRepository(pool)
	availabilityService := availability.NewService(availabilityRepo)

	// Settings Module
	settingsRepo := settings.NewPgxRepository(pool)
	settingsService := settings.NewService(settingsRepo)

	// Currency Module
	var rates currency.RateSource = currency.DefaultStaticRates
	if cfg.ExchangeAPIKey != "" {
		rates = currency.NewExchangeAPIClient(cfg.ExchangeAPIBase, cfg.ExchangeAPIKey, cfg.ExchangeTimeout)
	}
	converter := currency.NewConverter(rates, logger)

	// Payment gateway. The dev gateway auto-settles orders so the full
	// flow works without processor credentials.
	var gateway payment.Gateway
	if cfg.PaymentKeyID != "" {
		gateway = payment.NewRazorpayGateway(cfg.PaymentAPIBase, cfg.PaymentKeyID, cfg.PaymentKeySecret, cfg.PaymentTimeout)
	} else {
		logger.Warn("no payment credentials configured, using dev gateway")
		gateway = payment.NewDevGateway(logger)
	}

	// Mailer
	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.MailFrom, cfg.SMTPUser, cfg.SMTPPass)
	} else {
		mail = mailer.NewDevMailer(logger)
	}

	// Booking Module
	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(bookingRepo, availabilityService, settingsService, converter, gateway, mail, cfg.AdminEmail, logger)

	// Rate limiting of public booking endpoints
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	rateLimit := ratelimit.New(ratelimit.Config{
		Capacity: cfg.RateLimitCapacity,
		Window:   cfg.RateLimitWindow,
	}, rdb, logger)

	// API Router Config
	routerParams := api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		AuthHandler:         api.NewAuthHandler(adminCredential, jwtManager),
		JWTManager:          jwtManager,
		AvailabilityHandler: availabilityHttp.NewHandler(availabilityService),
		BookingHandler:      bookingHttp.NewHandler(bookingService, cfg.BookingExpiryWindow),
		CurrencyHandler:     currencyHttp.NewHandler(converter, settingsService),
		SettingsHandler:     settingsHttp.NewHandler(settingsService),
		RateLimit:           rateLimit,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Redis:      rdb,
	}
}

package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/intothestar/session-booking-backend/internal/auth"
	availabilityHttp "github.com/intothestar/session-booking-backend/internal/availability/http"
	bookingHttp "github.com/intothestar/session-booking-backend/internal/booking/http"
	currencyHttp "github.com/intothestar/session-booking-backend/internal/currency/http"
	settingsHttp "github.com/intothestar/session-booking-backend/internal/settings/http"
)

// Config carries everything the router needs from the container.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	AuthHandler         *AuthHandler
	JWTManager          *auth.JWTManager
	AvailabilityHandler *availabilityHttp.Handler
	BookingHandler      *bookingHttp.Handler
	CurrencyHandler     *currencyHttp.Handler
	SettingsHandler     *settingsHttp.Handler
	RateLimit           gin.HandlerFunc
}

// NewRouter assembles middleware (CORS, logging, recovery, auth) and
// registers each module's routes under /api.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	adminAuth := auth.AuthRequired(cfg.JWTManager)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		admin := api.Group("/admin")
		admin.POST("/login", cfg.AuthHandler.Login)
		admin.Use(adminAuth, auth.AdminRequired())

		availabilityHttp.RegisterRoutes(api, admin, cfg.AvailabilityHandler)
		bookingHttp.RegisterRoutes(api, admin, cfg.BookingHandler, cfg.RateLimit)
		currencyHttp.RegisterRoutes(api, cfg.CurrencyHandler)
		settingsHttp.RegisterRoutes(api, admin, cfg.SettingsHandler)
	}

	return r
}

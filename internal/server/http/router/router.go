package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/miccroten/quoteportal/internal/config"
	"github.com/miccroten/quoteportal/internal/domain/model"
	"github.com/miccroten/quoteportal/internal/server/http/handlers"
	"github.com/miccroten/quoteportal/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware. The payment
// callback and the contact form stay outside the auth group: the former is
// authenticated by its gateway signature, the latter is public.
func Setup(facade handlers.PortalFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade, cfg.SecureCookies)
	quotationHandler := handlers.NewQuotationHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	fileHandler := handlers.NewFileHandler(facade)
	contactHandler := handlers.NewContactHandler(facade)
	profileHandler := handlers.NewProfileHandler(facade)

	api := engine.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/contact", contactHandler.Submit)
	api.POST("/payments/callback", paymentHandler.Callback)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.POST("/quotations", quotationHandler.Submit)
	authed.GET("/quotations", quotationHandler.ListMine)
	authed.GET("/quotations/:id", quotationHandler.Get)
	authed.POST("/quotations/:id/checkout", paymentHandler.Checkout)
	authed.POST("/files/signed-url", fileHandler.SignedURL)
	authed.GET("/profile", profileHandler.Get)
	authed.PUT("/profile", profileHandler.Update)

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.GET("/quotations", adminHandler.ListQuotations)
	admin.PUT("/quotations/:id/quote", adminHandler.SetQuote)
	admin.POST("/quotations/:id/advance", adminHandler.Advance)
	admin.GET("/contacts", adminHandler.ListContacts)

	return engine
}

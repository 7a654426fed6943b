// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/jmbtrust/donation-backend/internal/handler"
	"github.com/jmbtrust/donation-backend/internal/middleware"
	"github.com/jmbtrust/donation-backend/internal/model"
)

// Handlers bundles the per-resource handlers so main can register
// everything in one call.
type Handlers struct {
	Users       *handler.UserHandler
	Donations   *handler.DonationHandler
	Cash        *handler.CashDonationHandler
	Sponsors    *handler.SponsorHandler
	DonorImages *handler.DonorImageHandler
	Recipients  *handler.RecipientHandler
	Inquiries   *handler.InquiryHandler
}

// Register wires every route onto the Echo instance.  Public endpoints are
// registered bare (the abuse-prone ones behind the rate limiter), and the
// rest sit behind JWT auth with per-route role allow-lists.
func Register(e *echo.Echo, h *Handlers, jwtSecret string, limit echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	// ---- Public routes ----
	e.POST("/api/users/login", h.Users.Login)

	// Donor-facing payment flow.  Order creation is the endpoint bots hit,
	// so it carries the limiter; verification is bounded by the gateway
	// signature check.
	e.POST("/api/donations/create-order", h.Donations.CreateOrder, limit)
	e.POST("/api/donations/verify-payment", h.Donations.VerifyPayment)
	e.GET("/api/donations/:id", h.Donations.GetByID) // shareable receipt link
	e.GET("/api/cash-donations/:id", h.Cash.GetByID) // shareable receipt link

	e.GET("/api/sponsors", h.Sponsors.List)
	e.GET("/api/daily-donors", h.DonorImages.List)
	e.POST("/api/inquiries", h.Inquiries.Create, limit)

	// ---- Authenticated routes ----
	auth := e.Group("/api", middleware.JWTAuth(jwtSecret))

	adminTier := middleware.RequireRole(model.RoleAdmin, model.RoleMasterAdmin)
	backOffice := middleware.RequireRole(model.RoleAdmin, model.RoleMasterAdmin, model.RoleAccounts, model.RoleTrustee)
	collectors := middleware.RequireRole(model.RoleVolunteer, model.RoleAdmin, model.RoleMasterAdmin, model.RoleAccounts)
	verifiers := middleware.RequireRole(model.RoleAccounts, model.RoleMasterAdmin)
	graphics := middleware.RequireRole(model.RoleAdmin, model.RoleMasterAdmin, model.RoleGraphics)
	masterOnly := middleware.RequireRole(model.RoleMasterAdmin)

	// Users.  Registration is itself authenticated: only admin-tier users
	// create accounts, and the handler restricts admin-tier targets to
	// master_admin.
	auth.POST("/users/register", h.Users.Register, adminTier)
	auth.GET("/users", h.Users.List, adminTier)
	auth.GET("/users/me", h.Users.Me)
	auth.PUT("/users/:id", h.Users.UpdatePassword) // self change or admin reset, checked in handler
	auth.DELETE("/users/:id", h.Users.Delete, adminTier)

	// Online donations back office.
	auth.GET("/donations/all", h.Donations.List, backOffice)
	auth.DELETE("/donations/:id", h.Donations.SoftDelete, adminTier)

	// Cash donations and the deposit workflow.
	auth.POST("/cash-donations", h.Cash.Create, collectors)
	auth.GET("/cash-donations", h.Cash.List, backOffice)
	auth.GET("/cash-donations/mine", h.Cash.ListMine, middleware.RequireRole(model.RoleVolunteer))
	auth.PATCH("/cash-donations/acknowledge-batch", h.Cash.AcknowledgeBatch, collectors)
	auth.PATCH("/cash-donations/:id/acknowledge", h.Cash.Acknowledge, collectors)
	auth.PATCH("/cash-donations/:id/verify-deposit", h.Cash.VerifyDeposit, verifiers)
	auth.DELETE("/cash-donations/:id", h.Cash.SoftDelete, adminTier)

	// Site imagery.
	auth.POST("/sponsors", h.Sponsors.Create, adminTier)
	auth.DELETE("/sponsors/:id", h.Sponsors.Delete, adminTier)
	auth.POST("/daily-donors/upload", h.DonorImages.Upload, graphics)
	auth.PUT("/daily-donors/:id", h.DonorImages.Update, graphics)
	auth.DELETE("/daily-donors/:id", h.DonorImages.Delete, graphics)

	// Report recipients.
	auth.POST("/report-recipients", h.Recipients.Create, masterOnly)
	auth.GET("/report-recipients", h.Recipients.List, masterOnly)
	auth.PUT("/report-recipients/:id", h.Recipients.Update, masterOnly)
	auth.DELETE("/report-recipients/:id", h.Recipients.Delete, masterOnly)

	// Inquiry triage.
	auth.GET("/inquiries", h.Inquiries.List, adminTier)
	auth.PATCH("/inquiries/:id/status", h.Inquiries.UpdateStatus, adminTier)
}

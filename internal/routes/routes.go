package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mhartig/TrainerDeskBack/internal/config"
	"github.com/mhartig/TrainerDeskBack/internal/handlers"
	"github.com/mhartig/TrainerDeskBack/internal/middleware"
	"github.com/mhartig/TrainerDeskBack/internal/repository"
	"github.com/mhartig/TrainerDeskBack/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewTrainerProfileRepository(db)
	clientRepo := repository.NewClientRepository(db)
	ratePlanRepo := repository.NewRatePlanRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	adjustmentRepo := repository.NewAdjustmentRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	templateRepo := repository.NewScheduleTemplateRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	var sender services.EmailSender = services.LogSender{}
	if cfg.SMTPHost != "" && cfg.SMTPFrom != "" {
		sender = services.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPPassword)
	}
	llmClient := services.NewLLMClient(cfg.LLMAPIURL, cfg.LLMAPIKey, cfg.LLMModel)

	sessionService := services.NewSessionService(db, sessionRepo, ratePlanRepo, templateRepo)
	invoiceService := services.NewInvoiceService(profileRepo, sessionRepo, ratePlanRepo, clientRepo, adjustmentRepo, paymentRepo)
	registrationService := services.NewRegistrationService(registrationRepo, userRepo, sender, cfg.NotifyEmail)

	authHandler := handlers.NewAuthHandler(db, userRepo, profileRepo, cfg.JWTSecret, cfg.DefaultVATRate)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	clientHandler := handlers.NewClientHandler(clientRepo)
	ratePlanHandler := handlers.NewRatePlanHandler(ratePlanRepo)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	paymentHandler := handlers.NewPaymentHandler(paymentRepo)
	adjustmentHandler := handlers.NewAdjustmentHandler(adjustmentRepo)
	noteHandler := handlers.NewNoteHandler(noteRepo)
	templateHandler := handlers.NewScheduleTemplateHandler(templateRepo, sessionService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	assistantHandler := handlers.NewAssistantHandler(llmClient, llmClient)
	registrationHandler := handlers.NewRegistrationHandler(registrationRepo, registrationService)
	expenseHandler := handlers.NewExpenseHandler(expenseRepo)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	// Public registration form endpoints; everything else requires a token.
	public := api.Group("/public")
	public.Get("/forms/:id", registrationHandler.GetForm)
	public.Post("/forms/:id/submit", registrationHandler.Submit)

	v1 := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	profile := v1.Group("/profile")
	profile.Get("", profileHandler.Get)
	profile.Put("", profileHandler.Update)
	profile.Put("/invoice-template", profileHandler.UpdateInvoiceTemplate)

	clients := v1.Group("/clients")
	clients.Post("", clientHandler.Create)
	clients.Get("", clientHandler.List)
	clients.Get("/:id", clientHandler.Get)
	clients.Put("/:id", clientHandler.Update)
	clients.Put("/:id/archive", clientHandler.SetArchived)

	ratePlans := v1.Group("/rate-plans")
	ratePlans.Post("", ratePlanHandler.Create)
	ratePlans.Get("", ratePlanHandler.List)
	ratePlans.Put("/:id", ratePlanHandler.Update)
	ratePlans.Delete("/:id", ratePlanHandler.Delete)

	sessions := v1.Group("/sessions")
	sessions.Post("", sessionHandler.Create)
	sessions.Get("", sessionHandler.List)
	sessions.Get("/:id", sessionHandler.Get)
	sessions.Put("/:id", sessionHandler.Update)
	sessions.Put("/:id/status", sessionHandler.UpdateStatus)
	sessions.Put("/:id/cash", sessionHandler.SetCashPaid)
	sessions.Delete("/:id", sessionHandler.Delete)

	payments := v1.Group("/payments")
	payments.Put("", paymentHandler.SetPaid)
	payments.Get("", paymentHandler.ListByMonth)

	adjustments := v1.Group("/adjustments")
	adjustments.Post("", adjustmentHandler.Create)
	adjustments.Get("", adjustmentHandler.ListByMonth)
	adjustments.Delete("/:id", adjustmentHandler.Delete)

	notes := v1.Group("/notes")
	notes.Post("", noteHandler.Create)
	notes.Get("", noteHandler.List)
	notes.Put("/:id", noteHandler.Update)
	notes.Delete("/:id", noteHandler.Delete)

	templates := v1.Group("/schedule-templates")
	templates.Post("", templateHandler.Create)
	templates.Get("", templateHandler.List)
	templates.Get("/:id", templateHandler.Get)
	templates.Put("/:id", templateHandler.Update)
	templates.Delete("/:id", templateHandler.Delete)
	templates.Post("/:id/apply", templateHandler.Apply)

	invoices := v1.Group("/invoices")
	invoices.Get("/overview", invoiceHandler.Overview)
	invoices.Get("/render/:clientId", invoiceHandler.Render)

	assistant := v1.Group("/assistant")
	assistant.Post("/invoice-template", assistantHandler.GenerateTemplate)
	assistant.Post("/parse-receipt", assistantHandler.ParseReceipt)

	forms := v1.Group("/forms")
	forms.Post("", registrationHandler.CreateForm)
	forms.Get("", registrationHandler.ListForms)
	forms.Get("/:id/registrations", registrationHandler.ListByForm)

	registrations := v1.Group("/registrations")
	registrations.Post("/:id/notify", registrationHandler.Notify)

	expenses := v1.Group("/expenses")
	expenses.Post("", expenseHandler.Create)
	expenses.Get("", expenseHandler.ListByMonth)
	expenses.Delete("/:id", expenseHandler.Delete)
}

// Package http содержит компоненты HTTP сервера Noto.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"noto/internal/noto/adapters/http/dto"
	"noto/internal/noto/adapters/http/handlers"
	"noto/internal/noto/adapters/http/middleware"
	"noto/internal/noto/app"
	"noto/pkg/metrics"
)

// Services - сценарии, которые обслуживает HTTP API.
type Services struct {
	Settings  *app.SettingsRepository
	Libraries *app.LibraryUseCase
	Labels    *app.LabelUseCase
	AllNotes  *app.AllNotesViewModel
	Vault     *app.VaultUseCase
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(router *fiber.App, svc Services, m *metrics.Metrics) {
	validator := dto.NewValidator()
	settingsHandler := handlers.NewSettingsHandler(svc.Settings, validator)
	libraryHandler := handlers.NewLibraryHandler(svc.Libraries, svc.Labels, svc.Settings, svc.Vault, validator)
	allNotesHandler := handlers.NewAllNotesHandler(svc.AllNotes, validator)
	vaultHandler := handlers.NewVaultHandler(svc.Vault, validator)

	// Middleware для всех запросов.
	router.Use(middleware.NewLoggerMiddleware())
	router.Use(middleware.NewRecoveryMiddleware())
	if m != nil {
		router.Use(middleware.NewMetricsMiddleware(m))
		router.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}

	apiV1 := router.Group("/api/v1")

	settingsRoutes := apiV1.Group("/settings")
	settingsRoutes.Get("/", settingsHandler.ListSettings)
	settingsRoutes.Put("/", settingsHandler.UpdateSettings)
	settingsRoutes.Get("/config", settingsHandler.GetConfig)
	settingsRoutes.Get("/:name", settingsHandler.GetSetting)
	settingsRoutes.Put("/:name", settingsHandler.SetSetting)

	widgetRoutes := apiV1.Group("/widgets")
	widgetRoutes.Get("/:widget_id", settingsHandler.GetWidget)
	widgetRoutes.Put("/:widget_id", settingsHandler.UpdateWidget)
	widgetRoutes.Delete("/:widget_id", settingsHandler.DeleteWidget)

	libraryRoutes := apiV1.Group("/libraries")
	libraryRoutes.Get("/", libraryHandler.ListLibraries)
	libraryRoutes.Post("/", libraryHandler.CreateLibrary)
	libraryRoutes.Get("/:library_id", libraryHandler.GetLibrary)
	libraryRoutes.Put("/:library_id", libraryHandler.UpdateLibrary)
	libraryRoutes.Delete("/:library_id", libraryHandler.DeleteLibrary)
	libraryRoutes.Get("/:library_id/notes", libraryHandler.ListNotes)
	libraryRoutes.Post("/:library_id/notes", libraryHandler.CreateNote)
	libraryRoutes.Get("/:library_id/labels", libraryHandler.ListLabels)
	libraryRoutes.Post("/:library_id/labels", libraryHandler.CreateLabel)

	noteRoutes := apiV1.Group("/notes")
	noteRoutes.Delete("/:note_id", libraryHandler.DeleteNote)
	noteRoutes.Post("/:note_id/labels/:label_id", libraryHandler.AttachLabel)

	allNotesRoutes := apiV1.Group("/all-notes")
	allNotesRoutes.Get("/", allNotesHandler.GetAllNotes)
	allNotesRoutes.Post("/search", allNotesHandler.Search)
	allNotesRoutes.Post("/visibility/:library_id", allNotesHandler.ToggleLibrary)
	allNotesRoutes.Post("/collapse", allNotesHandler.CollapseAll)
	allNotesRoutes.Post("/expand", allNotesHandler.ExpandAll)
	allNotesRoutes.Post("/toggle", allNotesHandler.ToggleAll)

	vaultRoutes := apiV1.Group("/vault")
	vaultRoutes.Get("/", vaultHandler.Status)
	vaultRoutes.Post("/passcode", vaultHandler.SetPasscode)
	vaultRoutes.Post("/open", vaultHandler.Open)
	vaultRoutes.Post("/close", vaultHandler.Close)
	vaultRoutes.Get("/libraries", libraryHandler.ListVaultedLibraries, middleware.NewVaultMiddleware(svc.Vault))

	// Обработчик для несуществующих маршрутов.
	router.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}

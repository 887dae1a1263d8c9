package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vivienda-api/internal/application/usecase"
	"github.com/jhoicas/vivienda-api/internal/domain/entity"
	"github.com/jhoicas/vivienda-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProgramUC *usecase.ProgramUseCase
	UserUC    *usecase.UserUseCase
	ReportUC  *usecase.ReportUseCase
	Logger    *logger.Logger
	// JWTSecret vacío deja /api sin autenticación.
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	api := app.Group("/api")
	if deps.JWTSecret != "" {
		// Lecturas para cualquier rol; escrituras solo ADMIN.
		api.Use(AuthMiddleware(deps.JWTSecret), RequireRoleForWrites(entity.RoleAdmin))
	}

	// Programs. /stats y /report antes de /:id.
	programs := api.Group("/programs")
	programHandler := NewProgramHandler(deps.ProgramUC, deps.ReportUC, log)
	programs.Get("/", programHandler.List)
	programs.Post("/", programHandler.Create)
	programs.Get("/stats", programHandler.Stats)
	programs.Get("/report", programHandler.Report)
	programs.Get("/:id", programHandler.GetByID)
	programs.Put("/:id", programHandler.Update)
	programs.Patch("/:id", programHandler.Update)
	programs.Delete("/:id", programHandler.Delete)
	programs.Post("/:id/change-state", programHandler.ChangeState)

	// Users
	users := api.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, log)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/stats", userHandler.Stats)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Patch("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Patch("/:id/change-state", userHandler.ChangeState)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-bff/internal/application/session"
	"github.com/jhoicas/Logistica-bff/internal/application/usecase"
	"github.com/jhoicas/Logistica-bff/internal/domain/role"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SessionUC   *usecase.SessionUseCase
	AreaUC      *usecase.AreaUseCase
	UserUC      *usecase.UserUseCase
	WarehouseUC *usecase.WarehouseUseCase
	BoxUC       *usecase.BoxUseCase
	AuditUC     *usecase.AuditUseCase
	DashboardUC *usecase.DashboardUseCase
	ReportUC    *usecase.ReportUseCase
	Sessions    *session.Manager
	JWTSecret   string
	JWTIssuer   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sesión: no pasa por el chequeo de redirección, iniciar sesión es justamente lo que la limpia.
	sessionHandler := NewSessionHandler(deps.SessionUC)
	sessionGroup := api.Group("/session", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer, nil))
	sessionGroup.Post("/", sessionHandler.Start)
	sessionGroup.Get("/", sessionHandler.Status)
	sessionGroup.Post("/reset", sessionHandler.Reset)

	// Rutas protegidas (Bearer Token + actor resuelto)
	protected := api.Group("/",
		AuthMiddleware(deps.JWTSecret, deps.JWTIssuer, deps.Sessions),
		RequireActor(deps.SessionUC),
	)
	protected.Get("/profile", sessionHandler.Profile)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Areas
	areas := protected.Group("/areas")
	areaHandler := NewAreaHandler(deps.AreaUC)
	areas.Get("/", areaHandler.List)
	areas.Post("/", areaHandler.Create)
	areas.Get("/:id", areaHandler.GetByID)
	areas.Put("/:id", areaHandler.Update)
	areas.Delete("/:id", RequireRole(role.Admin), areaHandler.Delete)
	areas.Get("/:id/managers", areaHandler.Managers)
	areas.Get("/:id/managers/candidates", areaHandler.ManagerCandidates)
	areas.Post("/:id/managers", areaHandler.AssignManager)
	areas.Delete("/:id/managers/:managerId", areaHandler.RemoveManager)
	areas.Get("/:id/warehouses", areaHandler.Warehouses)
	areas.Get("/:id/warehouses/candidates", areaHandler.WarehouseCandidates)
	areas.Post("/:id/warehouses", areaHandler.AssignWarehouse)
	areas.Delete("/:id/warehouses/:warehouseId", areaHandler.RemoveWarehouse)

	// Users (las rutas fijas van antes de /:id)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", RequireRole(role.Admin, role.Jefe), userHandler.Create)
	users.Get("/validate-unique", userHandler.ValidateUnique)
	users.Get("/enablement-history", RequireRole(role.Admin), userHandler.AllEnablementHistory)
	users.Get("/by-area/:areaId", userHandler.ByArea)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", RequireRole(role.Admin, role.Jefe), userHandler.Update)
	users.Patch("/:id/toggle-status", RequireRole(role.Admin, role.Jefe), userHandler.ToggleStatus)
	users.Put("/:id/assignments", RequireRole(role.Admin, role.Jefe), userHandler.UpdateAssignments)
	users.Get("/:id/assignment-history", userHandler.AssignmentHistory)
	users.Get("/:id/enablement-history", userHandler.EnablementHistory)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Post("/", RequireRole(role.Admin, role.Jefe), warehouseHandler.Create)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", RequireRole(role.Admin, role.Jefe), warehouseHandler.Update)
	warehouses.Get("/:id/supervisors", warehouseHandler.Supervisors)
	warehouses.Get("/:id/supervisors/candidates", warehouseHandler.SupervisorCandidates)
	warehouses.Post("/:id/supervisors/bulk", warehouseHandler.BulkSupervisors)
	warehouses.Post("/:id/supervisors", warehouseHandler.AssignSupervisor)
	warehouses.Delete("/:id/supervisors/:supervisorId", warehouseHandler.RemoveSupervisor)

	// Boxes
	boxes := protected.Group("/boxes")
	boxHandler := NewBoxHandler(deps.BoxUC)
	boxes.Get("/", boxHandler.List)
	boxes.Post("/", boxHandler.Create)
	boxes.Get("/qr/:qr", boxHandler.GetByQR)
	boxes.Get("/:id", boxHandler.GetByID)
	boxes.Put("/:id", boxHandler.Update)
	boxes.Delete("/:id", boxHandler.Delete)
	boxes.Get("/:id/history", boxHandler.History)
	boxes.Post("/:id/move", boxHandler.Move)
	boxes.Patch("/:id/status", boxHandler.ChangeStatus)
	boxes.Post("/:id/deactivate", boxHandler.Deactivate)
	boxes.Post("/:id/equipments", boxHandler.AddEquipment)
	boxes.Delete("/:id/equipments/:itemId", boxHandler.RemoveEquipment)
	boxes.Post("/:id/materials", boxHandler.AddMaterial)
	boxes.Delete("/:id/materials/:itemId", boxHandler.RemoveMaterial)

	// Audit y bitácora
	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/audit-logs", RequireRole(role.Admin), auditHandler.List)
	protected.Post("/audit-logs", auditHandler.Create)
	protected.Get("/journal", auditHandler.Journal)

	// Reports (PDF)
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/users/:id/assignments", reportHandler.AssignmentHistory)
	protected.Get("/reports/boxes/:id/label", reportHandler.BoxLabel)
}

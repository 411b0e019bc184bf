package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Agromercados-api/internal/application/analytics"
	"github.com/jhoicas/Agromercados-api/internal/application/auth"
	"github.com/jhoicas/Agromercados-api/internal/application/usecase"
	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	MarketUC      *usecase.MarketUseCase
	ProductUC     *usecase.ProductUseCase
	ProductBaseUC *usecase.ProductBaseUseCase
	CommentUC     *usecase.CommentUseCase
	StatsUC       *analytics.StatsUseCase
	ReportUC      *analytics.ReportUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authMW := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)
	adminOrManager := RequireRole(entity.RoleAdmin, entity.RoleMarketManager)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Users (ADMIN)
	userHandler := NewUserHandler(deps.UserUC)
	users := api.Group("/users", authMW, adminOnly)
	users.Get("/", userHandler.List)
	users.Patch("/:id/role", userHandler.ChangeRole)
	users.Delete("/:id", userHandler.Delete)

	// Markets: lectura pública, escritura ADMIN o gestor dueño
	marketHandler := NewMarketHandler(deps.MarketUC)
	markets := api.Group("/markets")
	markets.Get("/", marketHandler.List)
	markets.Get("/mine", authMW, RequireRole(entity.RoleMarketManager), marketHandler.Mine)
	markets.Get("/:id", marketHandler.GetByID)
	markets.Get("/:id/catalog.xml", marketHandler.Catalog)
	markets.Post("/", authMW, adminOnly, marketHandler.Create)
	markets.Put("/:id", authMW, adminOrManager, marketHandler.Update)
	markets.Delete("/:id", authMW, adminOnly, marketHandler.Delete)
	markets.Put("/:id/schedules", authMW, adminOrManager, marketHandler.ReplaceSchedules)
	markets.Post("/:id/image", authMW, adminOrManager, marketHandler.UploadImage)

	// Product bases (catálogo)
	baseHandler := NewProductBaseHandler(deps.ProductBaseUC)
	bases := api.Group("/product-bases")
	bases.Get("/", baseHandler.List)
	bases.Get("/:id", baseHandler.GetByID)
	bases.Post("/", authMW, adminOnly, baseHandler.Create)
	bases.Put("/:id", authMW, adminOnly, baseHandler.Update)
	bases.Delete("/:id", authMW, adminOnly, baseHandler.Delete)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	commentHandler := NewCommentHandler(deps.CommentUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", authMW, adminOrManager, productHandler.Create)
	products.Put("/:id", authMW, adminOrManager, productHandler.Update)
	products.Delete("/:id", authMW, adminOrManager, productHandler.Delete)
	products.Post("/:id/image", authMW, adminOrManager, productHandler.UploadImage)
	products.Get("/:id/comments", commentHandler.ListByProduct)
	products.Post("/:id/comments", authMW, commentHandler.Create)

	// Comments
	api.Delete("/comments/:id", authMW, commentHandler.Delete)

	// Stats
	statsHandler := NewStatsHandler(deps.StatsUC, deps.ReportUC)
	api.Get("/stats", authMW, adminOnly, statsHandler.Global)
	api.Get("/stats/report.pdf", authMW, adminOnly, statsHandler.Report)
	api.Get("/manager/stats", authMW, adminOrManager, statsHandler.Market)
}

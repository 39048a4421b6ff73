package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/issue-tracker/authz"
	"github.com/issue-tracker/middleware"
	"github.com/issue-tracker/notifier"
	"github.com/issue-tracker/services"
)

// Dependencies are the collaborators the routes are built with
type Dependencies struct {
	Auth         *services.AuthService
	Notifier     notifier.Notifier
	SecureCookie bool
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, deps Dependencies) {
	requireAuth := middleware.AuthMiddleware(deps.Auth)
	optionalAuth := middleware.OptionalAuth(deps.Auth)

	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Account endpoints
	authController := NewAuthController(deps.Auth, deps.SecureCookie)
	accounts := router.Group("/accounts")
	{
		accounts.POST("/register/", authController.Register)
		accounts.POST("/login/", authController.Login)
		accounts.POST("/logout/", authController.Logout)
		accounts.GET("/me/", requireAuth, authController.GetCurrentUser)
	}

	// Project endpoints
	projects := NewProjectController()
	router.GET("/", projects.ListProjects)
	router.GET("/project/:id/", projects.GetProject)
	router.POST("/project/add/", requireAuth, projects.CreateProject)
	router.GET("/project/:id/update/", requireAuth, middleware.RequirePermission(authz.ChangeProject), projects.EditProject)
	router.POST("/project/:id/update/", requireAuth, middleware.RequirePermission(authz.ChangeProject), projects.UpdateProject)
	router.POST("/project/:id/delete/", requireAuth, projects.DeleteProject)
	router.POST("/multi_delete/", requireAuth, projects.DeleteProjects)
	router.POST("/project/mass-action/", requireAuth, projects.MassAction)

	// Issue endpoints
	issues := NewIssueController()
	router.GET("/issue/", issues.ListIssues)
	router.GET("/issue/:id/", issues.GetIssue)
	router.POST("/project/:id/issue/add/", requireAuth, issues.CreateIssue)
	router.GET("/issue/:id/update/", requireAuth, middleware.RequirePermission(authz.ChangeIssue), issues.EditIssue)
	router.POST("/issue/:id/update/", requireAuth, middleware.RequirePermission(authz.ChangeIssue), issues.UpdateIssue)
	router.POST("/issue/:id/delete/", requireAuth, issues.DeleteIssue)
	router.GET("/statuses", issues.ListStatuses)
	router.GET("/types", issues.ListTypes)

	// Shop endpoints
	shop := NewShopController(deps.Notifier)
	router.GET("/products/", shop.ListProducts)
	router.GET("/products/:id/", shop.GetProduct)
	router.POST("/products/", requireAuth, middleware.AdminMiddleware(), shop.CreateProduct)
	router.POST("/cart/add/:product_id/", shop.AddToCart)
	router.GET("/cart/", shop.ViewCart)
	router.POST("/cart/:id/remove-one/", shop.RemoveOneFromCart)
	router.POST("/cart/:id/remove/", shop.RemoveFromCart)
	router.POST("/order/", optionalAuth, shop.PlaceOrder)
	router.GET("/orders/", requireAuth, shop.ListOrders)
}

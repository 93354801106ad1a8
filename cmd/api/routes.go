package main

import (
	"database/sql"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/httpapi"
	"fintrack/pkg/utils"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal
// modules; authorization policy lives entirely in the route middleware.
func registerRoutes(r *gin.Engine, v *auth.Verifier, h httpapi.Handlers, db *sql.DB) {
	r.GET("/healthz", func(c *gin.Context) {
		if err := utils.HealthCheck(c.Request.Context(), db, 2*time.Second); err != nil {
			c.JSON(503, gin.H{"status": "degraded"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Session cookies are scoped to /api; everything but login/register sits
	// behind the verifier.
	api := r.Group("/api")
	{
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", auth.Require(v, auth.Anyone()), h.Logout)

		api.GET("/me", auth.Require(v, auth.Anyone()), h.Me)

		// Per-account routes: only the account owner.
		usersGroup := api.Group("/users")
		usersGroup.Use(auth.RequireSameUser(v))
		{
			usersGroup.GET("/:username", h.GetUser)
			usersGroup.PUT("/:username", h.UpdateUser)
			usersGroup.DELETE("/:username", h.DeleteUser)
		}

		// Admin routes.
		admin := api.Group("/admin")
		admin.Use(auth.Require(v, auth.AdminOnly()))
		{
			admin.GET("/users", h.AdminListUsers)
			admin.PUT("/users/:username/role", h.AdminSetRole)
		}

		// Group management. Creating and listing needs any session; routes on
		// a specific group require membership resolved by name.
		api.POST("/groups", auth.Require(v, auth.Anyone()), h.CreateGroup)
		api.GET("/groups", auth.Require(v, auth.Anyone()), h.ListMyGroups)

		groupScoped := api.Group("/groups/:group")
		groupScoped.Use(auth.RequireGroupByName(v, h.Groups, "group"))
		{
			groupScoped.GET("", h.GetGroup)
			groupScoped.DELETE("", h.DeleteGroup)
			groupScoped.POST("/members", h.AddGroupMember)
			groupScoped.DELETE("/members", h.RemoveGroupMember)
			groupScoped.GET("/transactions", h.ListGroupTransactions)
		}

		// Categories and transactions are owner-scoped by the email inside
		// the verified session; any complete identity may use them.
		session := api.Group("")
		session.Use(auth.Require(v, auth.Anyone()))
		{
			session.POST("/categories", h.CreateCategory)
			session.GET("/categories", h.ListCategories)
			session.PUT("/categories/:category", h.RenameCategory)
			session.DELETE("/categories/:category", h.DeleteCategory)

			session.POST("/transactions", h.CreateTransaction)
			session.GET("/transactions", h.ListTransactions)
			session.GET("/transactions/:id", h.GetTransaction)
			session.PUT("/transactions/:id", h.UpdateTransaction)
			session.DELETE("/transactions/:id", h.DeleteTransaction)
		}
	}
}

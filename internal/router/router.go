package router

import (
	"github.com/gin-gonic/gin"

	"cluster-dashboard-backend/internal/handler"
)

// RegisterRoutes wires the GraphQL endpoint, the event stream and the REST
// mirror. Rate limits live on the resolver operations, not on routes.
func RegisterRoutes(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	nodeHandler *handler.NodeHandler,
	graphqlHandler *handler.GraphQLHandler,
	eventHandler *handler.EventHandler,
) {
	r.POST("/graphql", graphqlHandler.Serve)
	r.GET("/ws/nodes", eventHandler.Stream)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authHandler.Me)
		}

		api.GET("/users", authHandler.Users)

		nodes := api.Group("/nodes")
		{
			nodes.GET("", nodeHandler.List)
			nodes.POST("", nodeHandler.Create)
			nodes.GET("/:id", nodeHandler.Get)
			nodes.PUT("/:id", nodeHandler.Update)
			nodes.DELETE("/:id", nodeHandler.Delete)
			nodes.PUT("/:id/status", nodeHandler.UpdateStatus)
		}
	}
}

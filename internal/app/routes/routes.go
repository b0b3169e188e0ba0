package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/bfriends/backend/internal/app/controllers"
	"github.com/bfriends/backend/internal/middleware"
)

// SetupRoutes registers all API routes. Read endpoints take an optional token
// so signed-in viewers get their own vote state; write endpoints require one.
func SetupRoutes(router *gin.Engine, ctrl *controllers.Controllers, authMW *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.AuthController.Register)
		auth.POST("/login", ctrl.AuthController.Login)
		auth.POST("/refresh", ctrl.AuthController.Refresh)
		auth.POST("/logout", ctrl.AuthController.Logout)
	}

	v1.GET("/feed", authMW.OptionalJWTAuth(), ctrl.FeedController.GetGlobalFeed)
	v1.GET("/search", authMW.OptionalJWTAuth(), ctrl.FeedController.Search)

	profile := v1.Group("/profile", authMW.JWTAuth())
	{
		profile.GET("", ctrl.UserController.GetMe)
		profile.PUT("", ctrl.UserController.UpdateProfile)
		profile.PATCH("/username", ctrl.UserController.UpdateHandle)
		profile.POST("/avatar", ctrl.UserController.UploadAvatar)
	}

	users := v1.Group("/users")
	{
		users.GET("/:username", ctrl.UserController.GetByHandle)
		users.GET("/:username/posts", authMW.OptionalJWTAuth(), ctrl.FeedController.GetUserFeed)
		users.GET("/:username/comments", ctrl.UserController.GetComments)
	}

	communities := v1.Group("/communities")
	{
		communities.POST("", authMW.JWTAuth(), ctrl.CommunityController.Create)
		communities.GET("/:name", ctrl.CommunityController.GetByName)
		communities.GET("/:name/feed", authMW.OptionalJWTAuth(), ctrl.FeedController.GetCommunityFeed)
		communities.PATCH("/:name/description", authMW.JWTAuth(), ctrl.CommunityController.UpdateDescription)
	}

	posts := v1.Group("/posts")
	{
		posts.POST("", authMW.JWTAuth(), ctrl.PostController.Create)
		posts.GET("/:id", authMW.OptionalJWTAuth(), ctrl.PostController.GetDetail)
		posts.DELETE("/:id", authMW.JWTAuth(), ctrl.PostController.Delete)
		posts.POST("/:id/vote", authMW.JWTAuth(), ctrl.PostController.Vote)
		posts.POST("/:id/comments", authMW.JWTAuth(), ctrl.CommentController.Create)
	}

	comments := v1.Group("/comments")
	{
		comments.DELETE("/:id", authMW.JWTAuth(), ctrl.CommentController.Delete)
	}

	suggestions := v1.Group("/suggestions", authMW.JWTAuth())
	{
		suggestions.GET("/friends", ctrl.SuggestionController.GetFriendSuggestions)
	}
}

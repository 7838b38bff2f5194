package router

import (
	"StreamHub/internal/handler"
	"StreamHub/internal/middleware"
	"StreamHub/internal/model"
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers 汇总所有的handler，由main组装好传进来
type Handlers struct {
	Auth     handler.AuthHandler
	Video    handler.VideoHandler
	Comment  handler.CommentHandler
	Like     handler.LikeHandler
	Channel  handler.ChannelHandler
	Playlist handler.PlaylistHandler
	Admin    handler.AdminHandler
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func SetupRouter(h Handlers, tokens middleware.TokenValidator, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), cors.New(corsConfig(corsOrigins)))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	auth := middleware.AuthMiddleware(tokens)
	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})

		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", h.Auth.Register)
			authGroup.POST("/login", h.Auth.Login)
			authGroup.GET("/me", auth, h.Auth.Me)
		}

		videoGroup := apiV1.Group("/videos")
		{
			videoGroup.GET("", h.Video.ListVideos)
			videoGroup.GET("/:id", h.Video.GetVideo)
			videoGroup.PUT("/:id/view", h.Video.IncreaseView)
			videoGroup.GET("/:id/comments", h.Comment.ListComments)

			videoGroup.POST("/upload-request", auth, h.Video.CreateUploadRequest)
			videoGroup.DELETE("/:id", auth, h.Video.DeleteVideo)
			videoGroup.POST("/:id/comments", auth, h.Comment.AddComment)
			videoGroup.DELETE("/comments/:id", auth, h.Comment.DeleteComment)
			videoGroup.POST("/:id/likes", auth, h.Like.ToggleLike)
		}

		channelGroup := apiV1.Group("/channels/:username")
		{
			channelGroup.GET("", h.Channel.GetChannel)
			channelGroup.GET("/subscribers", h.Channel.GetSubscriberCount)
			channelGroup.GET("/subscription", auth, h.Channel.CheckSubscription)
			channelGroup.POST("/subscribe", auth, h.Channel.Subscribe)
			channelGroup.DELETE("/subscribe", auth, h.Channel.Unsubscribe)
		}

		playlistGroup := apiV1.Group("/playlists")
		{
			playlistGroup.GET("/user/:username", h.Playlist.GetUserPlaylists)
			playlistGroup.GET("/:id", h.Playlist.GetPlaylist)

			playlistGroup.POST("", auth, h.Playlist.CreatePlaylist)
			playlistGroup.PUT("/:id", auth, h.Playlist.UpdatePlaylist)
			playlistGroup.DELETE("/:id", auth, h.Playlist.DeletePlaylist)
			playlistGroup.POST("/:id/videos", auth, h.Playlist.AddVideo)
			playlistGroup.DELETE("/:id/videos/:videoId", auth, h.Playlist.RemoveVideo)
		}

		adminGroup := apiV1.Group("/admin")
		adminGroup.Use(auth, middleware.RequireRole(model.RoleAdmin))
		{
			adminGroup.GET("/users", h.Admin.ListUsers)
			adminGroup.POST("/users", h.Admin.CreateUser)
			adminGroup.GET("/users/:id", h.Admin.GetUser)
			adminGroup.PUT("/users/:id", h.Admin.UpdateUser)
			adminGroup.DELETE("/users/:id", h.Admin.DeleteUser)
			adminGroup.PUT("/users/:id/role", h.Admin.ChangeUserRole)

			adminGroup.GET("/videos", h.Admin.ListVideos)
			adminGroup.GET("/videos/:id", h.Admin.GetVideo)
			adminGroup.PUT("/videos/:id", h.Admin.UpdateVideo)
			adminGroup.DELETE("/videos/:id", h.Admin.DeleteVideo)

			adminGroup.DELETE("/comments/:id", h.Admin.DeleteComment)
		}
	}

	return r
}

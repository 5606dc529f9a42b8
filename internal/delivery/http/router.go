package http

import (
	"github.com/gin-gonic/gin"
	"github.com/icebreakapp/radar-gateway/internal/delivery/http/handler"
	"github.com/icebreakapp/radar-gateway/internal/delivery/http/ws"
)

type Router struct {
	feedHandler     *handler.FeedHandler
	radarHandler    *handler.RadarHandler
	sessionHandler  *handler.SessionHandler
	chatHandler     *handler.ChatHandler
	sphereHandler   *handler.SphereHandler
	locationHandler *handler.LocationHandler
	feedStream      *ws.FeedStream
}

func NewRouter(
	feedHandler *handler.FeedHandler,
	radarHandler *handler.RadarHandler,
	sessionHandler *handler.SessionHandler,
	chatHandler *handler.ChatHandler,
	sphereHandler *handler.SphereHandler,
	locationHandler *handler.LocationHandler,
	feedStream *ws.FeedStream,
) *Router {
	return &Router{
		feedHandler:     feedHandler,
		radarHandler:    radarHandler,
		sessionHandler:  sessionHandler,
		chatHandler:     chatHandler,
		sphereHandler:   sphereHandler,
		locationHandler: locationHandler,
		feedStream:      feedStream,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/session", r.sessionHandler.GetSession)

		feed := v1.Group("/feed")
		{
			feed.GET("", r.feedHandler.GetFeed)
			feed.POST("/refresh", r.feedHandler.RefreshFeed)
			feed.GET("/ws", r.feedStream.Handle)
		}

		radar := v1.Group("/radar")
		{
			radar.GET("", r.radarHandler.GetRadar)
			radar.PUT("", r.radarHandler.UpdateRadar)
		}

		chats := v1.Group("/chats")
		{
			chats.GET("", r.chatHandler.ListChats)
			chats.GET("/:chat_id/messages", r.chatHandler.GetMessages)
			chats.POST("/:chat_id/messages", r.chatHandler.SendMessage)
			chats.POST("/:chat_id/read", r.chatHandler.MarkRead)
		}

		location := v1.Group("/location")
		{
			location.PUT("", r.locationHandler.UpdatePosition)
			location.PUT("/permission", r.locationHandler.UpdatePermission)
			location.GET("/permission", r.locationHandler.GetPermissionPrompt)
		}

		v1.GET("/sphere/layout", r.sphereHandler.GetLayout)
	}

	return router
}

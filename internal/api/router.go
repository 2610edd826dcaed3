package api

import (
	v1 "github.com/cardsage/cardsage/internal/api/v1"
	"github.com/cardsage/cardsage/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health *v1.HealthHandler
	Query  *v1.QueryHandler
	Card   *v1.CardHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Query routes
	queries := router.Group("/queries")
	{
		queries.POST("", handlers.Query.ProcessQuery)
	}

	// Card routes
	cards := router.Group("/cards")
	{
		cards.GET("", handlers.Card.ListCards)
		cards.GET("/:id", handlers.Card.GetCard)
	}
}

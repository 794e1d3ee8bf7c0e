package routes

import (
	"github.com/14kear/pollstore/internal/handlers"
	"github.com/gin-gonic/gin"
)

func RegisterPublicRoutes(rg *gin.RouterGroup, handler *handlers.PollHandler) {
	{
		rg.GET("/polls", handler.GetPolls)
		rg.GET("/polls/:id", handler.GetPoll)
		rg.GET("/polls/:id/results", handler.GetResults)

		rg.POST("/votes", handler.Vote)
	}
}

func RegisterPrivateRoutes(rg *gin.RouterGroup, handler *handlers.PollHandler) {
	{
		rg.POST("/polls", handler.CreatePoll)
	}
}

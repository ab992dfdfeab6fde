package http

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/dedication-wall/internal/adapters/http/dto"
)

// NoRoute answers unknown routes and methods with the JSON error envelope.
func NoRoute(c *gin.Context) {
	dto.HandleErrorCode(c, dto.ErrorCodeNotFound, dto.MessageNoRoute)
}

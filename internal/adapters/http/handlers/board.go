package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/dedication-wall/internal/adapters/http/dto"
	"github.com/jsamuelsen/dedication-wall/internal/app"
	"github.com/jsamuelsen/dedication-wall/internal/presentation"
)

// BoardHandler serves the wall as a view model and as a rendered page.
type BoardHandler struct {
	service *app.DedicationService
}

// NewBoardHandler creates the handler.
func NewBoardHandler(service *app.DedicationService) *BoardHandler {
	return &BoardHandler{service: service}
}

// Board handles GET /api/board.
func (h *BoardHandler) Board(c *gin.Context) {
	board, err := h.service.Board(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}

// Page handles GET /. The page is rendered into a buffer first so a template
// failure still produces a clean error response.
func (h *BoardHandler) Page(c *gin.Context) {
	board, err := h.service.Board(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := presentation.RenderHTML(&buf, board); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// RegisterBoardRoutes registers GET /api/board on api and GET / on engine.
func (h *BoardHandler) RegisterBoardRoutes(engine *gin.Engine, api *gin.RouterGroup) {
	api.GET("/board", h.Board)
	engine.GET("/", h.Page)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/dedication-wall/internal/adapters/http/dto"
	"github.com/jsamuelsen/dedication-wall/internal/app"
	"github.com/jsamuelsen/dedication-wall/internal/domain"
)

// DedicationHandler serves the dedication and song routes.
type DedicationHandler struct {
	service *app.DedicationService
}

// NewDedicationHandler creates the handler.
func NewDedicationHandler(service *app.DedicationService) *DedicationHandler {
	return &DedicationHandler{service: service}
}

// List handles GET /api/dedications. The array is newest first and never
// null.
func (h *DedicationHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if list == nil {
		list = []domain.Dedication{}
	}

	c.JSON(http.StatusOK, list)
}

// Create handles POST /api/dedications and answers 201 with the stored
// record.
func (h *DedicationHandler) Create(c *gin.Context) {
	var req dto.DedicationRequest
	if err := dto.BindJSON(c, &req); err != nil {
		dto.HandleErrorCode(c, dto.ErrorCodeBadRequest, dto.MessageBadRequest)
		return
	}

	stored, err := h.service.Submit(c.Request.Context(), req.ToDomain())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, stored)
}

// Delete handles DELETE /api/dedications/:ref. An integer ref is a display
// position unless ?by=id is given; any other ref is an ID.
func (h *DedicationHandler) Delete(c *gin.Context) {
	var query dto.DeleteQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		respondQueryError(c, err)
		return
	}

	ref := c.Param("ref")
	position, convErr := strconv.Atoi(ref)

	var err error

	switch {
	case query.By == dto.DeleteByID:
		err = h.service.DeleteByID(c.Request.Context(), ref)
	case query.By == dto.DeleteByPosition && convErr != nil:
		err = domain.NewNotFoundError(domain.EntityDedication, ref)
	case convErr == nil:
		err = h.service.DeleteAt(c.Request.Context(), position)
	default:
		err = h.service.DeleteByID(c.Request.Context(), ref)
	}

	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// Song handles GET /api/song?url=. Provider failures still answer 200 with
// an editable result; only a link that is not a track is rejected.
func (h *DedicationHandler) Song(c *gin.Context) {
	var query dto.SongQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		respondQueryError(c, err)
		return
	}

	lookup, err := h.service.LookupSong(c.Request.Context(), query.URL)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, lookup)
}

// RegisterDedicationRoutes registers the routes on an /api group.
func (h *DedicationHandler) RegisterDedicationRoutes(rg *gin.RouterGroup) {
	rg.GET("/dedications", h.List)
	rg.POST("/dedications", h.Create)
	rg.DELETE("/dedications/:ref", h.Delete)
	rg.GET("/song", h.Song)
}

func respondQueryError(c *gin.Context, err error) {
	if errors.Is(err, dto.ErrValidation) {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
			dto.ErrorCodeValidation, dto.MessageValidation, dto.ValidationErrors(err),
		).WithTraceID(dto.GetTraceID(c)))

		return
	}

	dto.HandleErrorCode(c, dto.ErrorCodeBadRequest, dto.MessageBadRequest)
}

package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Miraines/MoonyAndStarry/library-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/app/library/service"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/domain/library/model"
)

// CRUD maps the REST verbs of one collection onto a catalog service.
type CRUD[T model.Entity] struct {
	svc  service.Service[T]
	base string
}

// RegisterCRUD mounts list/get/create/update/delete under g/path.
func RegisterCRUD[T model.Entity](g *gin.RouterGroup, path string, svc service.Service[T]) *CRUD[T] {
	h := &CRUD[T]{svc: svc, base: g.BasePath() + path}

	r := g.Group(path)
	r.GET("", h.list)
	r.GET("/:id", h.get)
	r.POST("", h.create)
	r.PUT("/:id", h.update)
	r.DELETE("/:id", h.delete)
	return h
}

func (h *CRUD[T]) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CRUD[T]) get(c *gin.Context) {
	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	item, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CRUD[T]) create(c *gin.Context) {
	var body T
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	created, err := h.svc.Create(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("%s/%d", h.base, created.Key()))
	c.JSON(http.StatusCreated, created)
}

func (h *CRUD[T]) update(c *gin.Context) {
	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	var body T
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, body); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CRUD[T]) delete(c *gin.Context) {
	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

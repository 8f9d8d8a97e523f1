package requests

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit-backend/internal/platform/apperr"
	"shareit-backend/internal/platform/auth"
	"shareit-backend/internal/platform/paging"
	"shareit-backend/internal/platform/validation"
)

type Handler struct{ svc *Service }

// RegisterRoutes: r には auth.RequireUser を通したグループを渡す
func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/requests", h.Create)
	r.GET("/requests", h.ListOwn)
	r.GET("/requests/all", h.ListOthers)
	r.GET("/requests/:id", h.Get)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, validation.Message(err))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), auth.UserID(c), req)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.Header("Location", "/requests/"+strconv.FormatInt(res.ID, 10))
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ListOwn(c *gin.Context) {
	res, err := h.svc.ListOwn(c.Request.Context(), auth.UserID(c))
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListOthers(c *gin.Context) {
	from, size, ok := paging.FromQuery(c, paging.DefaultSize)
	if !ok {
		return
	}
	res, err := h.svc.ListOthers(c.Request.Context(), auth.UserID(c), from, size)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apperr.BadRequest(c, "invalid id")
		return
	}
	res, err := h.svc.Get(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

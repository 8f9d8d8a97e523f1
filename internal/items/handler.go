package items

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

	r.POST("/items", h.Create)
	r.GET("/items", h.ListOwned)
	r.GET("/items/search", h.Search)
	r.GET("/items/:id", h.Get)
	r.PATCH("/items/:id", h.Update)
	r.POST("/items/:id/comment", h.AddComment)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, validation.Message(err))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), auth.UserID(c), req)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.Header("Location", "/items/"+strconv.FormatInt(res.ID, 10))
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, "invalid json")
		return
	}
	res, err := h.svc.Update(c.Request.Context(), id, auth.UserID(c), req)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := h.svc.Get(c.Request.Context(), id, auth.UserID(c))
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListOwned(c *gin.Context) {
	res, err := h.svc.ListOwned(c.Request.Context(), auth.UserID(c))
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Search(c *gin.Context) {
	from, size, ok := paging.FromQuery(c, SearchDefaultSize)
	if !ok {
		return
	}
	res, err := h.svc.Search(c.Request.Context(), auth.UserID(c), c.Query("text"), from, size)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) AddComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, validation.Message(err))
		return
	}
	res, err := h.svc.AddComment(c.Request.Context(), id, auth.UserID(c), req)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apperr.BadRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

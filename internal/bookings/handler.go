package bookings

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

	r.POST("/bookings", h.Create)
	r.PATCH("/bookings/:id", h.Approve)
	r.GET("/bookings/owner", h.ListForOwner)
	r.GET("/bookings/:id", h.Get)
	r.GET("/bookings", h.ListForBooker)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, validation.Message(err))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), auth.UserID(c), req)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.Header("Location", "/bookings/"+strconv.FormatInt(res.ID, 10))
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		apperr.BadRequest(c, "approved must be true or false")
		return
	}
	res, err := h.svc.Approve(c.Request.Context(), id, approved, auth.UserID(c))
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

func (h *Handler) ListForBooker(c *gin.Context) {
	from, size, ok := paging.FromQuery(c, paging.DefaultSize)
	if !ok {
		return
	}
	res, err := h.svc.ListForBooker(c.Request.Context(), auth.UserID(c), c.DefaultQuery("state", "ALL"), from, size)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListForOwner(c *gin.Context) {
	from, size, ok := paging.FromQuery(c, paging.DefaultSize)
	if !ok {
		return
	}
	res, err := h.svc.ListForOwner(c.Request.Context(), auth.UserID(c), c.DefaultQuery("state", "ALL"), from, size)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ---------- helpers ----------

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apperr.BadRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

package paging

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit-backend/internal/platform/apperr"
)

// FromQuery: ?from=&size= を読む。数値でなければ 400 を返して false
func FromQuery(c *gin.Context, defaultSize int) (from, size int, ok bool) {
	from, err := strconv.Atoi(c.DefaultQuery("from", strconv.Itoa(DefaultFrom)))
	if err != nil {
		apperr.BadRequest(c, "from must be an integer")
		return 0, 0, false
	}
	size, err = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultSize)))
	if err != nil {
		apperr.BadRequest(c, "size must be an integer")
		return 0, 0, false
	}
	return from, size, true
}

package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"shareit-backend/internal/platform/apperr"
)

const (
	CtxUserIDKey      = "user_id"
	DefaultUserHeader = "X-Sharer-User-Id"
)

type Options struct {
	// Secret が空なら Bearer トークンは受け付けない
	Secret []byte
	// ゲートウェイが付与する利用者IDヘッダ
	UserHeader string
}

// RequireUser: Authorization: Bearer <token> もしくは利用者IDヘッダから呼び出し元を決めて context に詰める
func RequireUser(opts Options) gin.HandlerFunc {
	header := opts.UserHeader
	if header == "" {
		header = DefaultUserHeader
	}

	return func(c *gin.Context) {
		if h := c.GetHeader("Authorization"); h != "" && len(opts.Secret) > 0 {
			id, err := userIDFromBearer(h, opts.Secret)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, apperr.BodyFrom(err))
				return
			}
			c.Set(CtxUserIDKey, id)
			c.Next()
			return
		}

		raw := strings.TrimSpace(c.GetHeader(header))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperr.Body(apperr.CodeUnauthorized, "missing "+header+" header"))
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid "+header+" header"))
			return
		}
		c.Set(CtxUserIDKey, id)
		c.Next()
	}
}

func userIDFromBearer(h string, secret []byte) (int64, error) {
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return 0, apperr.ErrUnauthorized("invalid Authorization header")
	}

	tokenStr := strings.TrimSpace(parts[1])
	if tokenStr == "" {
		return 0, apperr.ErrUnauthorized("empty token")
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		// alg 固定（none攻撃とか回避）
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || token == nil || !token.Valid {
		return 0, apperr.ErrUnauthorized("invalid token")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return 0, apperr.ErrUnauthorized("missing sub")
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.ErrUnauthorized("invalid sub")
	}
	return id, nil
}

// UserID: RequireUser を通った後のハンドラで呼ぶ
func UserID(c *gin.Context) int64 {
	v, ok := c.Get(CtxUserIDKey)
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}

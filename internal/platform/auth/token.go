package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IssueToken: ゲートウェイやクライアント向けに利用者IDを sub に入れた HS256 トークンを発行する
func IssueToken(secret []byte, userID int64, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Package validation は gin のバインディングに独自タグを登録する。
package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var once sync.Once

// Register: main とハンドラテストから呼ぶ。何度呼んでもよい
func Register() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("notblank", NotBlank)
	})
}

// NotBlank: 空白のみの文字列を弾く。文字列以外は常に通す
func NotBlank(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(f.String()) != ""
}

// Message: バインドエラーをクライアント向けの短い文言にする
func Message(err error) string {
	ves, ok := err.(validator.ValidationErrors)
	if !ok || len(ves) == 0 {
		return "invalid request body"
	}
	fe := ves[0]
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required", "notblank":
		return field + " must not be blank"
	case "email":
		return field + " must be a valid email"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "gt":
		return field + " must be > " + fe.Param()
	default:
		return field + " is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// Package paging は from/size 形式のページング。
package paging

import "shareit-backend/internal/platform/apperr"

const (
	DefaultFrom = 0
	DefaultSize = 10
)

type Page struct {
	Limit  int
	Offset int
}

// FromSize: from はページ番号の算出にだけ使う (from/size 番目のページ)。
// from=3,size=2 なら 2 件目からではなく 2 ページ目(offset=2)になる
func FromSize(from, size int) (Page, error) {
	if from < 0 {
		return Page{}, apperr.ErrInvalid("from must be >= 0")
	}
	if size <= 0 {
		return Page{}, apperr.ErrInvalid("size must be > 0")
	}
	return Page{Limit: size, Offset: (from / size) * size}, nil
}

package pagination

import "math"

const (
	DefaultSize = 10
	MaxSize     = 100
	// MaxPage держит (page-1)*size в пределах bigint при любом допустимом size.
	MaxPage = math.MaxInt32
)

// Normalize приводит номер страницы (с 1) и размер к допустимым значениям.
func Normalize(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size < 1 || size > MaxSize {
		size = DefaultSize
	}
	return page, size
}

package form

import (
	"math"
	"strconv"
	"strings"
)

// FindMovie 添加电影时的搜索表单
type FindMovie struct {
	Title string `form:"title" binding:"required,notblank"`
}

// Edit 评分/短评表单
// Rating 在这里只校验必填，数值转换由 ParseRating 完成
type Edit struct {
	Rating string `form:"rating" binding:"required,notblank"`
	Review string `form:"review" binding:"max=100"`
}

// ParseRating 把评分转换为浮点数，范围 0-10
func (f *Edit) ParseRating() (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(f.Rating), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &FieldError{Field: "rating", Message: "Rating must be a number, e.g. 7.5."}
	}
	if v < 0 || v > 10 {
		return 0, &FieldError{Field: "rating", Message: "Rating must be between 0 and 10."}
	}
	return v, nil
}

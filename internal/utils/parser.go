package utils

import (
	"strconv"
	"strings"
)

// ParseYear 从 TMDB 的 release_date（如 "1999-10-15"）中提取年份
// 取第一个 "-" 之前的部分，无法解析时返回 0
func ParseYear(releaseDate string) int {
	token, _, _ := strings.Cut(strings.TrimSpace(releaseDate), "-")
	year, err := strconv.Atoi(token)
	if err != nil {
		return 0
	}
	return year
}

// BuildImageURL 拼接海报地址：{base}/{size}/{poster_path}
// TMDB 返回的 poster_path 自带前导 "/"，这里去掉以避免出现 "//"
func BuildImageURL(base, size, posterPath string) string {
	posterPath = strings.TrimPrefix(strings.TrimSpace(posterPath), "/")
	if posterPath == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.Trim(size, "/") + "/" + posterPath
}

// ParseID 解析查询参数中的正整数 ID
func ParseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

package model

import "strings"

// SearchResult TMDB 搜索结果条目
type SearchResult struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"`
	PosterPath    string  `json:"poster_path"`
	VoteAverage   float64 `json:"vote_average"`
}

// ReleaseYear 上映年份（取 release_date 第一个 "-" 之前的部分）
func (r SearchResult) ReleaseYear() string {
	year, _, _ := strings.Cut(r.ReleaseDate, "-")
	return year
}

// MovieDetails TMDB 电影详情
type MovieDetails struct {
	ID            int     `json:"id"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"`
	PosterPath    string  `json:"poster_path"`
	VoteAverage   float64 `json:"vote_average"`
}

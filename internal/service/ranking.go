package service

import (
	"sort"

	"github.com/user/topmovies/internal/model"
)

// AssignRankings 按评分降序排序并写入排名
// 未评分的排在最后，评分相同按 ID 升序；同分同名次（1, 2, 2, 4）
func AssignRankings(movies []model.Movie) {
	sort.SliceStable(movies, func(i, j int) bool {
		a, b := movies[i].Rating, movies[j].Rating
		switch {
		case a == nil && b == nil:
			return movies[i].ID < movies[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a > *b
		default:
			return movies[i].ID < movies[j].ID
		}
	})

	for i := range movies {
		if i > 0 && sameRating(movies[i].Rating, movies[i-1].Rating) {
			movies[i].Ranking = movies[i-1].Ranking
			continue
		}
		movies[i].Ranking = i + 1
	}
}

func sameRating(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

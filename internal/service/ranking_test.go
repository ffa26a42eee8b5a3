package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/topmovies/internal/model"
)

func ptr(v float64) *float64 { return &v }

func TestAssignRankingsDistinct(t *testing.T) {
	movies := []model.Movie{
		{ID: 1, Rating: ptr(6.5)},
		{ID: 2, Rating: ptr(9.1)},
		{ID: 3, Rating: ptr(7.0)},
	}

	AssignRankings(movies)

	assert.Equal(t, []uint{2, 3, 1}, ids(movies))
	assert.Equal(t, []int{1, 2, 3}, rankings(movies))
}

func TestAssignRankingsTiesShareRank(t *testing.T) {
	movies := []model.Movie{
		{ID: 4, Rating: ptr(7.0)},
		{ID: 1, Rating: nil},
		{ID: 2, Rating: ptr(7.0)},
		{ID: 3, Rating: ptr(8.0)},
		{ID: 5, Rating: ptr(5.0)},
	}

	AssignRankings(movies)

	assert.Equal(t, []uint{3, 2, 4, 5, 1}, ids(movies))
	assert.Equal(t, []int{1, 2, 2, 4, 5}, rankings(movies))

	// 排名 = 1 + 评分严格更高的记录数
	for _, m := range movies {
		higher := 0
		for _, other := range movies {
			if other.Rating != nil && (m.Rating == nil || *other.Rating > *m.Rating) {
				higher++
			}
		}
		assert.Equal(t, higher+1, m.Ranking, "movie %d", m.ID)
	}
}

func TestAssignRankingsEmpty(t *testing.T) {
	var movies []model.Movie
	assert.NotPanics(t, func() { AssignRankings(movies) })
}

func ids(movies []model.Movie) []uint {
	out := make([]uint, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.ID)
	}
	return out
}

func rankings(movies []model.Movie) []int {
	out := make([]int, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.Ranking)
	}
	return out
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/user/topmovies/internal/metrics"
	"github.com/user/topmovies/internal/model"
	"github.com/user/topmovies/internal/repository"
	"github.com/user/topmovies/internal/utils"
	"golang.org/x/sync/singleflight"
)

// MetadataProvider 外部电影元数据服务
type MetadataProvider interface {
	SearchMovies(ctx context.Context, query string) ([]model.SearchResult, error)
	MovieDetails(ctx context.Context, externalID int) (*model.MovieDetails, error)
	PosterURL(posterPath string) string
}

// CatalogService 电影清单服务
type CatalogService struct {
	movies   *repository.MovieRepository
	provider MetadataProvider
	log      *logrus.Logger
	group    singleflight.Group
}

// NewCatalogService 创建电影清单服务
func NewCatalogService(movies *repository.MovieRepository, provider MetadataProvider, log *logrus.Logger) *CatalogService {
	return &CatalogService{
		movies:   movies,
		provider: provider,
		log:      log,
	}
}

// ImportResult 导入结果
type ImportResult struct {
	Movie   *model.Movie
	Created bool // false 表示标题已存在，返回的是已有记录
}

// Search 在 TMDB 中按标题搜索
func (s *CatalogService) Search(ctx context.Context, title string) ([]model.SearchResult, error) {
	return s.provider.SearchMovies(ctx, strings.TrimSpace(title))
}

// Import 根据 TMDB ID 导入电影
// 标题已存在时不新建，直接返回已有记录
func (s *CatalogService) Import(ctx context.Context, externalID int) (*ImportResult, error) {
	// 使用 singleflight 避免同一部电影被并发重复导入
	// 共享的导入不跟随首个调用方取消，耗时由 HTTP 客户端超时约束
	shared := context.WithoutCancel(ctx)
	val, err, _ := s.group.Do(strconv.Itoa(externalID), func() (interface{}, error) {
		return s.importMovie(shared, externalID)
	})
	if err != nil {
		metrics.MovieImports.WithLabelValues("error").Inc()
		return nil, err
	}
	result := val.(*ImportResult)
	if result.Created {
		metrics.MovieImports.WithLabelValues("created").Inc()
	} else {
		metrics.MovieImports.WithLabelValues("existing").Inc()
	}
	return result, nil
}

func (s *CatalogService) importMovie(ctx context.Context, externalID int) (*ImportResult, error) {
	details, err := s.provider.MovieDetails(ctx, externalID)
	if err != nil {
		return nil, err
	}

	movie := s.buildMovie(details)
	if movie.Title == "" {
		return nil, fmt.Errorf("%w: 电影 %d 缺少标题", ErrProvider, externalID)
	}

	existing, err := s.movies.FindByTitle(ctx, movie.Title)
	if err == nil {
		return &ImportResult{Movie: existing}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("查询电影失败: %w", err)
	}

	if err := s.movies.Create(ctx, movie); err != nil {
		// 并发导入时由唯一索引兜底
		if errors.Is(err, repository.ErrDuplicateTitle) {
			existing, findErr := s.movies.FindByTitle(ctx, movie.Title)
			if findErr != nil {
				return nil, fmt.Errorf("查询电影失败: %w", findErr)
			}
			return &ImportResult{Movie: existing}, nil
		}
		return nil, fmt.Errorf("保存电影失败: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"movie_id": movie.ID,
		"tmdb_id":  externalID,
		"title":    movie.Title,
	}).Info("[Catalog] 已导入电影")

	return &ImportResult{Movie: movie, Created: true}, nil
}

func (s *CatalogService) buildMovie(details *model.MovieDetails) *model.Movie {
	rating := details.VoteAverage
	return &model.Movie{
		Title:       strings.TrimSpace(details.OriginalTitle),
		Year:        utils.ParseYear(details.ReleaseDate),
		Description: details.Overview,
		Rating:      &rating,
		Ranking:     0,
		Review:      nil,
		ImageURL:    s.provider.PosterURL(details.PosterPath),
	}
}

// Ranked 返回按评分排序的电影列表
// 排名在同一个事务内重算并写回，只更新发生变化的记录
func (s *CatalogService) Ranked(ctx context.Context) ([]model.Movie, error) {
	var movies []model.Movie
	err := s.movies.Transaction(ctx, func(repo *repository.MovieRepository) error {
		list, err := repo.ListByRatingDesc(ctx)
		if err != nil {
			return err
		}

		previous := make(map[uint]int, len(list))
		for _, m := range list {
			previous[m.ID] = m.Ranking
		}

		AssignRankings(list)

		for _, m := range list {
			if previous[m.ID] == m.Ranking {
				continue
			}
			if err := repo.UpdateRanking(ctx, m.ID, m.Ranking); err != nil {
				return err
			}
		}
		movies = list
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("获取排行失败: %w", err)
	}
	return movies, nil
}

// Get 获取单部电影，不存在返回 repository.ErrNotFound
func (s *CatalogService) Get(ctx context.Context, id uint) (*model.Movie, error) {
	return s.movies.FindByID(ctx, id)
}

// UpdateReview 更新评分和短评
func (s *CatalogService) UpdateReview(ctx context.Context, id uint, rating float64, review string) (*model.Movie, error) {
	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	movie.Rating = &rating
	movie.Review = nil
	if review = strings.TrimSpace(review); review != "" {
		movie.Review = &review
	}

	if err := s.movies.Update(ctx, movie); err != nil {
		return nil, fmt.Errorf("更新电影失败: %w", err)
	}
	return movie, nil
}

// Delete 删除电影，不存在返回 repository.ErrNotFound
func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	if err := s.movies.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("movie_id", id).Info("[Catalog] 已删除电影")
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/user/topmovies/internal/config"
	"github.com/user/topmovies/internal/metrics"
	"github.com/user/topmovies/internal/model"
	"github.com/user/topmovies/internal/utils"
)

// ErrProvider TMDB 调用失败（非 2xx、网络错误或响应无法解析），不重试
var ErrProvider = errors.New("metadata provider error")

type TMDBService struct {
	client       *utils.HTTPClient
	apiKey       string
	baseURL      string
	imageBaseURL string
	posterSize   string
}

func NewTMDBService(cfg *config.Config) *TMDBService {
	return &TMDBService{
		client:       utils.NewHTTPClient(cfg.TMDBTimeout),
		apiKey:       cfg.TMDBAPIKey,
		baseURL:      strings.TrimSuffix(cfg.TMDBBaseURL, "/"),
		imageBaseURL: cfg.TMDBImageBaseURL,
		posterSize:   cfg.TMDBPosterSize,
	}
}

type tmdbSearchResponse struct {
	Page    int                  `json:"page"`
	Results []model.SearchResult `json:"results"`
}

// SearchMovies 按标题搜索电影，没有匹配时返回空切片
func (s *TMDBService) SearchMovies(ctx context.Context, query string) ([]model.SearchResult, error) {
	params := url.Values{}
	params.Set("api_key", s.apiKey)
	params.Set("query", query)

	var result tmdbSearchResponse
	err := s.client.GetJSON(ctx, s.baseURL+"/search/movie?"+params.Encode(), &result)
	metrics.ProviderRequests.WithLabelValues("search", metrics.Result(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("%w: 搜索 %q: %w", ErrProvider, query, err)
	}

	if result.Results == nil {
		return []model.SearchResult{}, nil
	}
	return result.Results, nil
}

// MovieDetails 获取单部电影详情
func (s *TMDBService) MovieDetails(ctx context.Context, externalID int) (*model.MovieDetails, error) {
	params := url.Values{}
	params.Set("api_key", s.apiKey)

	var details model.MovieDetails
	err := s.client.GetJSON(ctx, s.baseURL+"/movie/"+strconv.Itoa(externalID)+"?"+params.Encode(), &details)
	metrics.ProviderRequests.WithLabelValues("details", metrics.Result(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("%w: 获取详情 %d: %w", ErrProvider, externalID, err)
	}
	return &details, nil
}

// PosterURL 根据 poster_path 拼接海报地址
func (s *TMDBService) PosterURL(posterPath string) string {
	return utils.BuildImageURL(s.imageBaseURL, s.posterSize, posterPath)
}

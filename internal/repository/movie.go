package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/lib/pq"
	"github.com/user/topmovies/internal/model"
	"gorm.io/gorm"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrDuplicateTitle 标题唯一约束冲突
	ErrDuplicateTitle = errors.New("电影标题已存在")
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Transaction 在同一个事务中执行 fn
func (r *MovieRepository) Transaction(ctx context.Context, fn func(repo *MovieRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&MovieRepository{db: tx})
	})
}

// FindByID 根据 ID 查找电影
func (r *MovieRepository) FindByID(ctx context.Context, id uint) (*model.Movie, error) {
	var movie model.Movie
	if err := r.db.WithContext(ctx).First(&movie, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &movie, nil
}

// FindByTitle 根据标题精确查找电影
func (r *MovieRepository) FindByTitle(ctx context.Context, title string) (*model.Movie, error) {
	var movie model.Movie
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&movie).Error; err != nil {
		return nil, notFound(err)
	}
	return &movie, nil
}

// ListByRatingDesc 按评分降序列出全部电影
// 未评分的排在最后，评分相同时按 ID 升序
func (r *MovieRepository) ListByRatingDesc(ctx context.Context) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.db.WithContext(ctx).
		Order("CASE WHEN rating IS NULL THEN 1 ELSE 0 END").
		Order("rating DESC").
		Order("id ASC").
		Find(&movies).Error
	return movies, err
}

// Count 电影总数
func (r *MovieRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Movie{}).Count(&count).Error
	return count, err
}

// Create 新增电影
func (r *MovieRepository) Create(ctx context.Context, movie *model.Movie) error {
	err := r.db.WithContext(ctx).Create(movie).Error
	if isDuplicate(err) {
		return ErrDuplicateTitle
	}
	return err
}

// Update 保存电影的全部字段
func (r *MovieRepository) Update(ctx context.Context, movie *model.Movie) error {
	err := r.db.WithContext(ctx).Save(movie).Error
	if isDuplicate(err) {
		return ErrDuplicateTitle
	}
	return err
}

// UpdateRanking 只更新排名字段，不触碰 updated_at
func (r *MovieRepository) UpdateRanking(ctx context.Context, id uint, ranking int) error {
	return r.db.WithContext(ctx).
		Model(&model.Movie{}).
		Where("id = ?", id).
		UpdateColumn("ranking", ranking).Error
}

// Delete 物理删除电影
func (r *MovieRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Movie{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// isDuplicate 判断是否为唯一约束冲突
// sqlite 驱动由 gorm 翻译为 ErrDuplicatedKey；lib/pq 需要自行判断 23505
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

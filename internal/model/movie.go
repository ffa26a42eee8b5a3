package model

import (
	"strconv"
	"time"
)

// Movie 收藏的电影记录
type Movie struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:250;not null;uniqueIndex"`
	Year        int       `json:"year"`
	Description string    `json:"description" gorm:"type:text"`
	Rating      *float64  `json:"rating" gorm:"index"`
	Ranking     int       `json:"ranking" gorm:"not null;default:0"` // 仅用于展示，每次列表页重算
	Review      *string   `json:"review" gorm:"size:100"`
	ImageURL    string    `json:"image_url" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RatingText 评分的展示文本（未评分返回空字符串）
func (m Movie) RatingText() string {
	if m.Rating == nil {
		return ""
	}
	return strconv.FormatFloat(*m.Rating, 'f', -1, 64)
}

// ReviewText 短评的展示文本
func (m Movie) ReviewText() string {
	if m.Review == nil {
		return ""
	}
	return *m.Review
}

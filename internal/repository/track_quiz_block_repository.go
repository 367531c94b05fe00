package repository

import (
	"hirehub_backend/internal/model"

	"gorm.io/gorm"
)

type TrackQuizBlockRepository struct {
	DB *gorm.DB
}

func NewTrackQuizBlockRepository(db *gorm.DB) *TrackQuizBlockRepository {
	return &TrackQuizBlockRepository{DB: db}
}

func (r *TrackQuizBlockRepository) Create(link *model.TrackQuizBlock) error {
	return r.DB.Create(link).Error
}

// ListByTrack 按配置顺序返回赛道的块要求
func (r *TrackQuizBlockRepository) ListByTrack(trackID uint) ([]model.TrackQuizBlock, error) {
	var links []model.TrackQuizBlock
	err := r.DB.Preload("Block").
		Where("track_id = ?", trackID).
		Order("created_at ASC, block_id ASC").
		Find(&links).Error
	return links, err
}

func (r *TrackQuizBlockRepository) Find(trackID, blockID uint) (*model.TrackQuizBlock, error) {
	var link model.TrackQuizBlock
	err := r.DB.Where("track_id = ? AND block_id = ?", trackID, blockID).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *TrackQuizBlockRepository) Delete(trackID, blockID uint) error {
	return r.DB.Where("track_id = ? AND block_id = ?", trackID, blockID).
		Delete(&model.TrackQuizBlock{}).Error
}

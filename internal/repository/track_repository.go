package repository

import (
	"hirehub_backend/internal/model"

	"gorm.io/gorm"
)

type TrackRepository struct {
	DB *gorm.DB
}

func NewTrackRepository(db *gorm.DB) *TrackRepository {
	return &TrackRepository{DB: db}
}

func (r *TrackRepository) Create(track *model.Track) error {
	return r.DB.Create(track).Error
}

func (r *TrackRepository) FindByID(id uint) (*model.Track, error) {
	var track model.Track
	if err := r.DB.First(&track, id).Error; err != nil {
		return nil, err
	}
	return &track, nil
}

func (r *TrackRepository) FindByName(name string) (*model.Track, error) {
	var track model.Track
	err := r.DB.Where("name = ?", name).First(&track).Error
	if err != nil {
		return nil, err
	}
	return &track, nil
}

func (r *TrackRepository) List(activeOnly bool) ([]model.Track, error) {
	var tracks []model.Track
	query := r.DB.Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&tracks).Error
	return tracks, err
}

func (r *TrackRepository) Update(track *model.Track) error {
	return r.DB.Save(track).Error
}

package model

// Track 招聘赛道（方向），例如 Backend、Frontend、Analytics
// swagger:model Track
type Track struct {
	BaseModel
	Name        string `gorm:"size:100;unique;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
}

func (Track) TableName() string {
	return "tracks"
}

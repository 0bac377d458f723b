package model

import "time"

type Project struct {
	ProjectId   int64     `gorm:"primaryKey;autoIncrement"`
	UserIdx     int64     `gorm:"not null;index"`
	ProjectName string    `gorm:"type:varchar(200);not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Project) TableName() string {
	return "project"
}

package model

import "time"

type Memo struct {
	MemoId    int64     `gorm:"primaryKey;autoIncrement"`
	UserIdx   int64     `gorm:"not null;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Memo) TableName() string {
	return "memo"
}

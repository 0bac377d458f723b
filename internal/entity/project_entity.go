package entity

import "time"

type Project struct {
	ProjectId   int64
	UserIdx     int64
	ProjectName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

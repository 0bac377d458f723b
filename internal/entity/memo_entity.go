package entity

import "time"

type Memo struct {
	MemoId    int64
	UserIdx   int64
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

package dto

import "time"

type CreateMemoRequest struct {
	Content string `json:"content" validate:"required"`
}

type UpdateMemoRequest struct {
	Content string `json:"content" validate:"required"`
}

type MemoResponse struct {
	MemoId    int64     `json:"memo_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

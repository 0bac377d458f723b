package dto

import "time"

type CreateProjectRequest struct {
	ProjectName string `json:"project_name" validate:"required,min=1,max=200"`
}

type UpdateProjectRequest struct {
	ProjectName string `json:"project_name" validate:"required,min=1,max=200"`
}

type ProjectResponse struct {
	ProjectId   int64     `json:"project_id"`
	ProjectName string    `json:"project_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProjectWithSessionsResponse struct {
	ProjectId   int64                  `json:"project_id"`
	ProjectName string                 `json:"project_name"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	Sessions    []*ChatSessionResponse `json:"sessions"`
}

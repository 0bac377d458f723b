package specification

import "gorm.io/gorm"

type ByProjectPK struct {
	ProjectId int64
}

func (s ByProjectPK) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_id = ?", s.ProjectId)
}

type ByMemoID struct {
	MemoId int64
}

func (s ByMemoID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("memo_id = ?", s.MemoId)
}

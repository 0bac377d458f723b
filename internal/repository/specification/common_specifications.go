package specification

import (
	"fmt"

	"gorm.io/gorm"
)

type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, dir))
}

type Paginate struct {
	Limit  int
	Offset int
}

func (s Paginate) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}

// OwnedBy filters rows by the owning user.
type OwnedBy struct {
	UserIdx int64
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_idx = ?", s.UserIdx)
}

package repository

import "gorm.io/gorm"

const defaultListLimit = 100

// paginate applies offset+limit pagination shared by every List method.
func paginate(q *gorm.DB, skip, limit int) *gorm.DB {
	if skip > 0 {
		q = q.Offset(skip)
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return q.Limit(limit)
}

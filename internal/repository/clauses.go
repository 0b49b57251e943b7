package repository

import "gorm.io/gorm/clause"

// forUpdateClause SELECT ... FOR UPDATE 行锁
func forUpdateClause() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// offset converts a 1-based page into a row offset.
func offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

// likeEscaper quotes the LIKE metacharacters so user text matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// likeClause is the condition likePattern values are used with.
const likeClause = "LOWER(%s) LIKE ? ESCAPE '\\'"

// likePattern builds a substring pattern for likeClause, which both
// PostgreSQL and SQLite evaluate case-insensitively.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// nameContains filters on a case-insensitive name substring; empty search is a no-op.
func nameContains(search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		return db.Where(fmt.Sprintf(likeClause, "name"), likePattern(search))
	}
}

package database

import (
	"strings"

	"gorm.io/gorm"
)

// MonthExpr returns a SQL expression rendering column as "YYYY-MM" in the
// dialect of db. Dashboard queries group on it.
func MonthExpr(db *gorm.DB, column string) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "DATE_FORMAT(" + column + ", '%Y-%m')"
	case "sqlite":
		return "strftime('%Y-%m', " + column + ")"
	default:
		return "to_char(" + column + ", 'YYYY-MM')"
	}
}

// LikeEscape follows a LIKE pattern built by ContainsFold. '!' needs no
// quoting in any supported dialect, unlike a backslash on MySQL.
const LikeEscape = " ESCAPE '!'"

var likeReplacer = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ContainsFold builds the argument for a `LOWER(col) LIKE ?` + LikeEscape
// match on term. Wildcards in term match literally.
func ContainsFold(term string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

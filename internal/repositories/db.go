package repositories

import (
	"errors"
	"strings"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every relational table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Content{},
		&models.Follow{},
		&models.Comment{},
		&models.Notification{},
	)
}

// storeErr converts a gorm error into the application error taxonomy.
func storeErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(op + ": not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict(op + ": already exists")
	default:
		return apperr.Upstream(op, err)
	}
}

// likePattern lowercases term, escapes LIKE wildcards and wraps it for a substring match.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

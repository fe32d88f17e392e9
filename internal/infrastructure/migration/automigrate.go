package migration

import (
	"github.com/atelier-community/atelier/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists the models created by the auto-migrate strategy.
func AutoMigrateModels() []any {
	return []any{
		&models.LevelConfigModel{},
	}
}

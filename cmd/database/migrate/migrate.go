package migration

import (
	"khadija-recipes/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

// Models lists every persisted entity in dependency order.
func Models() []any {
	return []any{
		&entities.Unit{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.RecipeStep{},
		&entities.Product{},
		&entities.ProductImage{},
		&entities.Faq{},
		&entities.Redirect{},
	}
}

func Migrate(db *gorm.DB) error {
	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			log.Errorf("Error migrating %T: %v", model, err)
			return err
		}
	}

	log.Info("Database migration complete")
	return nil
}

package fixture

import (
	"context"
	"errors"

	migration "khadija-recipes/cmd/database/migrate"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultSequencePrefix selects the recipe tables.
const DefaultSequencePrefix = "recipe"

var ErrUnsupportedDialect = errors.New("sequence reset only works with sqlite databases")

// SequenceReset is one autoincrement counter that was set back to zero.
type SequenceReset struct {
	Table    string
	Previous int64
}

// ResetSequences zeroes the sqlite autoincrement counters of every table
// whose name starts with prefix. A database without a sqlite_sequence
// table has nothing to reset.
func ResetSequences(ctx context.Context, db *gorm.DB, prefix string) ([]SequenceReset, error) {
	if db.Dialector.Name() != "sqlite" {
		return nil, ErrUnsupportedDialect
	}
	if prefix == "" {
		prefix = DefaultSequencePrefix
	}
	db = db.WithContext(ctx)

	var found int64
	if err := db.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'sqlite_sequence'").
		Scan(&found).Error; err != nil {
		return nil, err
	}
	if found == 0 {
		log.Warn("No sqlite_sequence table found (no AUTOINCREMENT fields in DB).")
		return nil, nil
	}

	var rows []struct {
		Name string
		Seq  int64
	}
	if err := db.Raw("SELECT name, seq FROM sqlite_sequence WHERE name LIKE ?", prefix+"%").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		log.Warnf("No '%s' tables found in sqlite_sequence.", prefix)
		return nil, nil
	}

	resets := make([]SequenceReset, 0, len(rows))
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			if err := tx.Exec("UPDATE sqlite_sequence SET seq = 0 WHERE name = ?", row.Name).Error; err != nil {
				return err
			}
			log.Infof("Reset sequence for table '%s' (was %d)", row.Name, row.Seq)
			resets = append(resets, SequenceReset{Table: row.Name, Previous: row.Seq})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resets, nil
}

// syncSequences moves postgres id sequences past the ids written with
// explicit primary keys.
func syncSequences(ctx context.Context, db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	db = db.WithContext(ctx)
	for _, model := range migration.Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return err
		}
		table := stmt.Schema.Table
		err := db.Exec(
			"SELECT setval(pg_get_serial_sequence(?, 'id'), COALESCE(MAX(id), 1), MAX(id) IS NOT NULL) FROM ?",
			table, clause.Table{Name: table},
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

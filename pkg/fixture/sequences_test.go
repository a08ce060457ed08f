package fixture_test

import (
	"context"
	"testing"

	"khadija-recipes/entities"
	"khadija-recipes/internal/testutil"
	"khadija-recipes/pkg/fixture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestResetSequences(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	resets, err := fixture.ResetSequences(ctx, db, "")
	require.NoError(t, err)
	assert.Empty(t, resets)

	r := &entities.Recipe{Title: entities.Text("Suppe"), Introduction: entities.Text("Warm.")}
	require.NoError(t, db.Create(r).Error)
	require.NoError(t, db.Create(&entities.Faq{Question: entities.Text("Frage?"), Answer: entities.Text("Antwort.")}).Error)

	resets, err = fixture.ResetSequences(ctx, db, "")
	require.NoError(t, err)
	assert.Equal(t, []fixture.SequenceReset{{Table: "recipes", Previous: int64(r.ID)}}, resets)

	var seq int64
	require.NoError(t, db.Raw("SELECT seq FROM sqlite_sequence WHERE name = 'recipes'").Scan(&seq).Error)
	assert.Zero(t, seq)
	require.NoError(t, db.Raw("SELECT seq FROM sqlite_sequence WHERE name = 'faqs'").Scan(&seq).Error)
	assert.Equal(t, int64(1), seq)
}

func TestResetSequencesRejectsOtherDialects(t *testing.T) {
	db, err := gorm.Open(postgres.Open("host=127.0.0.1 port=1 user=none dbname=none sslmode=disable"), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	_, err = fixture.ResetSequences(context.Background(), db, "recipe")
	assert.ErrorIs(t, err, fixture.ErrUnsupportedDialect)
}

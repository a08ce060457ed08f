package entities_test

import (
	"testing"

	"khadija-recipes/entities"
	"khadija-recipes/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestComputeCalories(t *testing.T) {
	got := entities.ComputeCalories(dec("10"), dec("20"), dec("5"))
	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.NewFromInt(190)), "got %s", got)

	assert.Nil(t, entities.ComputeCalories(dec("10"), dec("20"), nil))
	assert.Nil(t, entities.ComputeCalories(nil, dec("20"), dec("5")))
}

func TestProductSaveDerivesCalories(t *testing.T) {
	db := testutil.NewDB(t)

	p := &entities.Product{
		Title:       entities.Text("Ras el Hanout"),
		Description: entities.Text("Gewürzmischung"),
		TotalFat:    dec("10"),
		TotalCarbo:  dec("20"),
		Protein:     dec("5"),
		Calories:    dec("1"),
	}
	require.NoError(t, db.Create(p).Error)

	var stored entities.Product
	require.NoError(t, db.First(&stored, p.ID).Error)
	require.NotNil(t, stored.Calories)
	assert.True(t, stored.Calories.Equal(decimal.NewFromInt(190)))
	assert.Equal(t, "ras-el-hanout", stored.SlugDefault)

	stored.Protein = nil
	require.NoError(t, db.Save(&stored).Error)
	require.NoError(t, db.First(&stored, p.ID).Error)
	assert.Nil(t, stored.Calories)
}

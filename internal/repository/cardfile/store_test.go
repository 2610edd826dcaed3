package cardfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/cardsage/cardsage/internal/errors"
	"github.com/cardsage/cardsage/internal/logger"
	"github.com/cardsage/cardsage/internal/types"
)

const atlasJSON = `{
	"id": "axis-atlas",
	"name": "Axis Bank Atlas Credit Card",
	"aliases": ["atlas", "axis atlas"],
	"reward_unit": "miles",
	"rate_general": "0.02",
	"category_tiers": {
		"travel": [
			{"floor": "0", "ceiling": "200000", "rate": "0.05"},
			{"floor": "200000", "rate": "0.02"}
		]
	},
	"accrual_exclusions": ["rent", "fuel"],
	"value_per_point": {"partner_transfer": "2", "vouchers": "1"},
	"annual_fee": {"amount": 5000, "currency": "INR"},
	"lounge_access": "unlimited domestic and international"
}`

func writeCardFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestNewStoreLoadsCards(t *testing.T) {
	dir := t.TempDir()
	writeCardFile(t, dir, "axis-atlas.json", atlasJSON)

	store, err := NewStore(dir, logger.GetLogger())
	require.NoError(t, err)

	c, err := store.Get(context.Background(), "axis-atlas")
	require.NoError(t, err)
	assert.Equal(t, "Axis Bank Atlas Credit Card", c.Name)
	assert.Equal(t, "miles", c.RewardUnit)
	assert.Len(t, c.CategoryTiers[types.CATEGORY_TRAVEL], 2)
	assert.Len(t, c.Exclusions, 2)
}

func TestNewStorePassesUnconsumedFieldsThrough(t *testing.T) {
	dir := t.TempDir()
	writeCardFile(t, dir, "axis-atlas.json", atlasJSON)

	store, err := NewStore(dir, logger.GetLogger())
	require.NoError(t, err)

	c, err := store.Get(context.Background(), "axis-atlas")
	require.NoError(t, err)
	assert.Contains(t, c.Sections, "annual_fee")
	assert.Contains(t, c.Sections, "lounge_access")
	assert.NotContains(t, c.Sections, "rate_general")
	assert.NotContains(t, c.Sections, "value_per_point")
}

func TestNewStoreRejectsInvalidCard(t *testing.T) {
	dir := t.TempDir()
	writeCardFile(t, dir, "bad.json", `{"id": "bad-card"}`)

	_, err := NewStore(dir, logger.GetLogger())
	assert.True(t, ierr.IsValidation(err))
}

func TestNewStoreRejectsIncompleteSchema(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"missing_reward_unit", `{"id": "c", "name": "Card", "aliases": ["c"], "rate_general": "0.01", "value_per_point": {"vouchers": "1"}}`},
		{"missing_aliases", `{"id": "c", "name": "Card", "reward_unit": "points", "rate_general": "0.01", "value_per_point": {"vouchers": "1"}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeCardFile(t, dir, "c.json", tc.body)

			_, err := NewStore(dir, logger.GetLogger())
			assert.True(t, ierr.IsValidation(err))
		})
	}
}

func TestNewStoreRejectsDuplicateID(t *testing.T) {
	dir := t.TempDir()
	writeCardFile(t, dir, "a.json", atlasJSON)
	writeCardFile(t, dir, "b.json", atlasJSON)

	_, err := NewStore(dir, logger.GetLogger())
	assert.True(t, ierr.IsValidation(err))
}

func TestNewStoreRejectsEmptyDir(t *testing.T) {
	_, err := NewStore(t.TempDir(), logger.GetLogger())
	assert.Error(t, err)
}

func TestNewStoreSkipsNonJSONFiles(t *testing.T) {
	dir := t.TempDir()
	writeCardFile(t, dir, "axis-atlas.json", atlasJSON)
	writeCardFile(t, dir, "README.md", "not a card")

	store, err := NewStore(dir, logger.GetLogger())
	require.NoError(t, err)

	cards, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestGetUnknownCard(t *testing.T) {
	dir := t.TempDir()
	writeCardFile(t, dir, "axis-atlas.json", atlasJSON)

	store, err := NewStore(dir, logger.GetLogger())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "missing")
	assert.True(t, ierr.IsNotFound(err))
}

func TestListOrderIsStable(t *testing.T) {
	dir := t.TempDir()
	writeCardFile(t, dir, "axis-atlas.json", atlasJSON)
	second := `{"id": "second-card", "name": "Second Card", "aliases": ["second"], "reward_unit": "points", "rate_general": "0.01", "value_per_point": {"vouchers": "0.5"}}`
	writeCardFile(t, dir, "second.json", second)

	store, err := NewStore(dir, logger.GetLogger())
	require.NoError(t, err)

	cards, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "axis-atlas", cards[0].ID)
	assert.Equal(t, "second-card", cards[1].ID)
}

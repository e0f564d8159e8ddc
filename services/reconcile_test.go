package services

import (
	"testing"

	"aurastylist/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileOutfitDropsUnknownItems(t *testing.T) {
	closet := []models.ClosetItem{
		{ID: 1, Name: "Navy Blazer", Category: models.CategoryOuterwear},
		{ID: 2, Name: "Jeans", Category: models.CategoryPants},
	}
	outfit := models.GeneratedOutfit{
		OutfitName: "Smart Casual",
		IntroText:  "Try this",
		Items: []models.OutfitItemSuggestion{
			{ItemName: "Navy Blazer", StylingNotes: "Sleeves pushed up"},
			{ItemName: "Red Scarf", StylingNotes: "Loose knot"},
		},
	}

	result := ReconcileOutfit(outfit, closet)

	require.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Items[0].ClosetItemID)
	assert.Equal(t, "Sleeves pushed up", result.Items[0].StylingNotes)
	assert.Equal(t, []string{"Red Scarf"}, result.Dropped)
}

func TestReconcileOutfitIsCaseSensitive(t *testing.T) {
	closet := []models.ClosetItem{{ID: 1, Name: "Jeans"}}
	outfit := models.GeneratedOutfit{Items: []models.OutfitItemSuggestion{{ItemName: "jeans"}, {ItemName: "Jeans "}}}

	result := ReconcileOutfit(outfit, closet)

	assert.Empty(t, result.Items)
	assert.Equal(t, []string{"jeans", "Jeans "}, result.Dropped)
}

func TestReconcileOutfitDuplicateNamesUseFirstInClosetOrder(t *testing.T) {
	closet := []models.ClosetItem{{ID: 20, Name: "Jeans"}, {ID: 10, Name: "Jeans"}}
	outfit := models.GeneratedOutfit{Items: []models.OutfitItemSuggestion{{ItemName: "Jeans"}}}

	result := ReconcileOutfit(outfit, closet)

	require.Len(t, result.Items, 1)
	assert.Equal(t, int64(20), result.Items[0].ClosetItemID)
	assert.NotNil(t, result.Items[0].ShoppingLinks)
}

func TestResolveSavedOutfitMarksMissingItems(t *testing.T) {
	saved := models.SavedOutfit{
		ID:   "outfit-1",
		Name: "Weekend",
		Items: []models.SavedOutfitItemDetails{
			{ClosetItemID: 1, StylingNotes: "a"},
			{ClosetItemID: 2, StylingNotes: "b"},
		},
	}
	closet := []models.ClosetItem{{ID: 2, Name: "Jeans"}}

	resolved := ResolveSavedOutfit(saved, closet)

	require.Len(t, resolved.Items, 2)
	assert.True(t, resolved.Items[0].Missing)
	assert.Nil(t, resolved.Items[0].ClosetItem)
	assert.False(t, resolved.Items[1].Missing)
	assert.Equal(t, "Jeans", resolved.Items[1].ClosetItem.Name)
}

package services

import (
	"context"
	"testing"

	"aurastylist/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func casualFriday(itemNames ...string) models.GeneratedOutfit {
	outfit := models.GeneratedOutfit{OutfitName: "Casual Friday", IntroText: "Relaxed but sharp."}
	for _, name := range itemNames {
		outfit.Items = append(outfit.Items, models.OutfitItemSuggestion{ItemName: name, StylingNotes: "notes for " + name})
	}
	return outfit
}

func TestSaveOutfit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sessionID := env.newSession(t)
	blazer, err := env.closet.Add(ctx, sessionID, "Navy Blazer", models.CategoryOuterwear, "https://example.com/blazer.jpg")
	require.NoError(t, err)
	_, err = env.closet.Add(ctx, sessionID, "Jeans", models.CategoryPants, "https://example.com/jeans.jpg")
	require.NoError(t, err)

	result, saved, err := env.outfits.Save(ctx, sessionID, casualFriday("Navy Blazer", "Red Scarf"))
	require.NoError(t, err)
	require.Equal(t, SaveResultSaved, result)
	require.NotNil(t, saved)
	assert.NotEmpty(t, saved.ID)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, blazer.ID, saved.Items[0].ClosetItemID)

	outfits, err := env.outfits.List(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, outfits, 1)
	assert.Equal(t, "Casual Friday", outfits[0].Name)
	assert.Equal(t, saved.Items, outfits[0].Items)
}

func TestSaveOutfitDuplicateNameIsNoop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sessionID := env.newSession(t)
	_, err := env.closet.Add(ctx, sessionID, "Jeans", models.CategoryPants, "https://example.com/jeans.jpg")
	require.NoError(t, err)
	_, err = env.closet.Add(ctx, sessionID, "Striped T-Shirt", models.CategoryTops, "https://example.com/tee.jpg")
	require.NoError(t, err)

	result, first, err := env.outfits.Save(ctx, sessionID, casualFriday("Jeans"))
	require.NoError(t, err)
	require.Equal(t, SaveResultSaved, result)

	result, second, err := env.outfits.Save(ctx, sessionID, casualFriday("Striped T-Shirt"))
	require.NoError(t, err)
	assert.Equal(t, SaveResultDuplicateName, result)
	assert.Nil(t, second)

	outfits, err := env.outfits.List(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, outfits, 1)
	assert.Equal(t, first.ID, outfits[0].ID)
	assert.Equal(t, first.Items, outfits[0].Items)
}

func TestSaveOutfitSameNameInAnotherSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		sessionID := env.newSession(t)
		_, err := env.closet.Add(ctx, sessionID, "Jeans", models.CategoryPants, "https://example.com/jeans.jpg")
		require.NoError(t, err)
		result, _, err := env.outfits.Save(ctx, sessionID, casualFriday("Jeans"))
		require.NoError(t, err)
		assert.Equal(t, SaveResultSaved, result)
	}
}

func TestSaveOutfitWithoutResolvableItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sessionID := env.newSession(t)
	_, err := env.closet.Add(ctx, sessionID, "Jeans", models.CategoryPants, "https://example.com/jeans.jpg")
	require.NoError(t, err)

	result, saved, err := env.outfits.Save(ctx, sessionID, casualFriday("Red Scarf", "jeans"))
	require.NoError(t, err)
	assert.Equal(t, SaveResultNoResolvableItems, result)
	assert.Nil(t, saved)

	outfits, err := env.outfits.List(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, outfits)
}

func TestDeletingClosetItemKeepsSavedOutfit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sessionID := env.newSession(t)
	jeans, err := env.closet.Add(ctx, sessionID, "Jeans", models.CategoryPants, "https://example.com/jeans.jpg")
	require.NoError(t, err)
	_, saved, err := env.outfits.Save(ctx, sessionID, casualFriday("Jeans"))
	require.NoError(t, err)

	require.NoError(t, env.closet.Delete(ctx, sessionID, jeans.ID))

	outfits, err := env.outfits.List(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, outfits, 1)
	assert.Equal(t, saved.Items, outfits[0].Items)

	item, ok, err := env.closet.Find(ctx, sessionID, jeans.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, item)

	resolved, err := env.outfits.ListResolved(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	require.Len(t, resolved[0].Items, 1)
	assert.True(t, resolved[0].Items[0].Missing)
}

func TestSaveFromMessage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sessionID := env.newSession(t)
	_, err := env.closet.Add(ctx, sessionID, "Jeans", models.CategoryPants, "https://example.com/jeans.jpg")
	require.NoError(t, err)
	outfit := casualFriday("Jeans")
	withOutfit, err := env.messages.Append(ctx, sessionID, models.Message{Sender: models.SenderAssistant, Text: outfit.IntroText, Outfit: &outfit})
	require.NoError(t, err)
	plain, err := env.messages.Append(ctx, sessionID, models.Message{Sender: models.SenderAssistant, Text: "hi"})
	require.NoError(t, err)

	_, _, err = env.outfits.SaveFromMessage(ctx, sessionID, plain.ID)
	assert.ErrorIs(t, err, ErrNoOutfit)

	_, _, err = env.outfits.SaveFromMessage(ctx, sessionID, "aura-unknown")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = env.outfits.SaveFromMessage(ctx, env.newSession(t), withOutfit.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	result, saved, err := env.outfits.SaveFromMessage(ctx, sessionID, withOutfit.ID)
	require.NoError(t, err)
	assert.Equal(t, SaveResultSaved, result)
	assert.Equal(t, "Casual Friday", saved.Name)
}

package services

import (
	"aurastylist/models"
)

// Reconciliation is the outcome of matching an outfit's item names against the
// closet. Items keep the outfit's order; Dropped lists names with no match.
type Reconciliation struct {
	Items   []models.SavedOutfitItemDetails
	Dropped []string
}

// ReconcileOutfit resolves every suggestion by exact, case-sensitive name. When
// several closet items share a name the first one in closet order wins.
func ReconcileOutfit(outfit models.GeneratedOutfit, closet []models.ClosetItem) Reconciliation {
	byName := make(map[string]int64, len(closet))
	for _, item := range closet {
		if _, seen := byName[item.Name]; !seen {
			byName[item.Name] = item.ID
		}
	}

	result := Reconciliation{Items: []models.SavedOutfitItemDetails{}}
	for _, suggestion := range outfit.Items {
		id, ok := byName[suggestion.ItemName]
		if !ok {
			result.Dropped = append(result.Dropped, suggestion.ItemName)
			continue
		}
		links := suggestion.ShoppingLinks
		if links == nil {
			links = []models.ShoppingLink{}
		}
		result.Items = append(result.Items, models.SavedOutfitItemDetails{
			ClosetItemID:  id,
			StylingNotes:  suggestion.StylingNotes,
			ShoppingLinks: links,
		})
	}
	return result
}

type ResolvedOutfitItem struct {
	models.SavedOutfitItemDetails
	ClosetItem *models.ClosetItem `json:"closetItem"`
	Missing    bool               `json:"missing"`
}

type ResolvedOutfit struct {
	ID    string               `json:"id"`
	Name  string               `json:"name"`
	Items []ResolvedOutfitItem `json:"items"`
}

// ResolveSavedOutfit joins a saved outfit with the current closet. References
// to deleted items come back with Missing set instead of failing.
func ResolveSavedOutfit(outfit models.SavedOutfit, closet []models.ClosetItem) ResolvedOutfit {
	byID := make(map[int64]models.ClosetItem, len(closet))
	for _, item := range closet {
		byID[item.ID] = item
	}
	resolved := ResolvedOutfit{ID: outfit.ID, Name: outfit.Name, Items: make([]ResolvedOutfitItem, 0, len(outfit.Items))}
	for _, details := range outfit.Items {
		entry := ResolvedOutfitItem{SavedOutfitItemDetails: details}
		if item, ok := byID[details.ClosetItemID]; ok {
			entry.ClosetItem = &item
		} else {
			entry.Missing = true
		}
		resolved.Items = append(resolved.Items, entry)
	}
	return resolved
}

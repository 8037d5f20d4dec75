// Package cache provides the cache adapters and the read-through
// helper used by the application services.
package cache

import (
	"fmt"

	"github.com/google/uuid"
)

// keyPrefix namespaces every cache key so multiple apps can share a
// Redis instance.
const keyPrefix = "ssl:"

// KeyCategories addresses the full category list.
func KeyCategories() string {
	return keyPrefix + "categories"
}

// KeyRecipes addresses the full recipe list.
func KeyRecipes() string {
	return keyPrefix + "recipes"
}

// KeyRecipe addresses a single recipe.
func KeyRecipe(id uuid.UUID) string {
	return fmt.Sprintf("%srecipe:%s", keyPrefix, id)
}

// KeyFavorites addresses a user's favorite list.
func KeyFavorites(userID uuid.UUID) string {
	return fmt.Sprintf("%sfavorites:%s", keyPrefix, userID)
}

// KeyConversations addresses a user's conversation list.
func KeyConversations(userID uuid.UUID) string {
	return fmt.Sprintf("%sconversations:%s", keyPrefix, userID)
}

// KeyAssistant addresses the active assistant profile.
func KeyAssistant() string {
	return keyPrefix + "assistant"
}

package chat

import "errors"

var (
	ErrEmptyMessage        = errors.New("message text is required")
	ErrMissingConversation = errors.New("general message requires a conversation")
	ErrMissingRecipe       = errors.New("recipe message requires a recipe")
)

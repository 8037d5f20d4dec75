package recipe

import "errors"

var (
	ErrTitleRequired     = errors.New("recipe title is required")
	ErrInvalidServings   = errors.New("servings must be positive")
	ErrInvalidDifficulty = errors.New("difficulty must be easy, medium or hard")
)

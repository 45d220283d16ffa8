package services

import "errors"

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrFoodItemNotFound    = errors.New("food item not found")
	ErrLanguageNotFound    = errors.New("language not found")
	ErrTranslationNotFound = errors.New("translation not found")
	// ErrInvalidInput wraps request problems other than name rule violations.
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("already exists")
	// ErrQueueUnavailable means the translation queue is full or stopped.
	ErrQueueUnavailable = errors.New("translation queue is unavailable")
)

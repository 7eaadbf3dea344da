package util

import "errors"

var (
	ErrSessionNotFound = errors.New("quiz session not found")
	ErrReviewNotFound  = errors.New("flashcard review not found")
	ErrInvalidSettings = errors.New("invalid course settings")
	ErrInvalidUpload   = errors.New("invalid upload")
	ErrEmptyUpload     = errors.New("uploaded file is empty")
)

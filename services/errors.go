package services

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrAwaitingResponse = errors.New("still waiting for the previous reply")
	ErrEmptyMessage     = errors.New("message needs text or an image")
	ErrNoOutfit         = errors.New("message does not carry an outfit")
	ErrInvalidCategory  = errors.New("unknown clothing category")
)

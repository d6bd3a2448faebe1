package models

import "errors"

// Custom errors
var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidOddsInput  = errors.New("provide exactly one of moneyline or decimal odds")
	ErrInvalidBetResult  = errors.New("bet result must be win, loss, or push")
	ErrBetAlreadySettled = errors.New("bet is already settled")
)

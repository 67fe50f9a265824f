package service

import "errors"

var (
	ErrUnauthenticated    = errors.New("sign in required")
	ErrForbidden          = errors.New("administrator access required")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrUserNotFound       = errors.New("user not found")
)

package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrActivityNotFound   = errors.New("activity not found")
	ErrCreatorCannotJoin  = errors.New("creator cannot join own activity")
	ErrNotCreator         = errors.New("only the creator can modify this activity")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAnonymous          = errors.New("sign in required")
)

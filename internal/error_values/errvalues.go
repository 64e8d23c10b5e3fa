package errorvalues

import "errors"

var (
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrReminderNotFound = errors.New("reminder doesn't exists")
	ErrOwnerNotFound    = errors.New("reminder owner doesn't exists")
	ErrWrongOwner       = errors.New("reminder belongs to another user")
	ErrReminderTerminal = errors.New("reminder is in a terminal status")
)

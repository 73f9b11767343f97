package simulation

import "errors"

// ErrInsufficientUsers marks a run attempted with fewer than two users.
var ErrInsufficientUsers = errors.New("at least two users are required")

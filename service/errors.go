package service

import "errors"

// ErrNoActiveRate means no demand rate is active; no interest can be computed
var ErrNoActiveRate = errors.New("no active demand interest rate")

package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrUnknownFamily  = errors.New("unknown entity family")
	ErrSyncInProgress = errors.New("sync already running for family")
	ErrNoVersion      = errors.New("no current version recorded")
)

package repository

import "errors"

// ErrCorruptStore is returned when the store exists but cannot be parsed.
var ErrCorruptStore = errors.New("submission store is corrupt")

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown store backend")

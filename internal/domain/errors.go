package domain

import "errors"

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountExists     = errors.New("account already exists")
	ErrFileLocked        = errors.New("log file locked by another process")
	ErrSnapshotCorrupted = errors.New("snapshot file corrupted")
)

package domain

import "errors"

var (
	ErrDuplicateName       = errors.New("fs: file already exists")
	ErrInvalidSize         = errors.New("fs: invalid file size")
	ErrNotFound            = errors.New("fs: file not found")
	ErrInsufficientSpace   = errors.New("fs: insufficient free blocks")
	ErrNoBackup            = errors.New("fs: no backup found")
	ErrCorruptSnapshot     = errors.New("fs: corrupt snapshot")
	ErrInternalConsistency = errors.New("fs: internal consistency failure")
)

package domain

import "errors"

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrInvalidStep         = errors.New("invalid conversation step")
	ErrConcurrentUpdate    = errors.New("project was modified by another request")
	ErrProjectNotCompleted = errors.New("website not yet generated")
	ErrIncompleteSite      = errors.New("cannot complete project without rendered html")
	ErrLockTimeout         = errors.New("timed out waiting for project lock")
	ErrInvalidStatus       = errors.New("invalid project status")
)

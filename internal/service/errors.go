package service

import "errors"

var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrPhotoStoreFailed  = errors.New("failed to store progress photo")
	ErrPhotoRecordFailed = errors.New("failed to record progress photo")
)

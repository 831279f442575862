package storage

import "errors"

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrGalleryNotFound = errors.New("gallery not found")
	ErrGalleryExists   = errors.New("open gallery already exists")
	ErrArtworkNotFound = errors.New("artwork not found")
	ErrLikeNotFound    = errors.New("like not found")
	ErrLikeExists      = errors.New("like already exists")
	ErrCommentNotFound = errors.New("comment not found")
	ErrAlarmNotFound   = errors.New("alarm not found")
	ErrorNoSuchKey     = errors.New("no such key")
)

var (
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileNotFound    = errors.New("file not found")
)

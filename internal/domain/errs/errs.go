// Package errs содержит доменную таксономию ошибок. Транспорт переводит Kind в HTTP статус,
// а Code отдается клиенту как стабильный идентификатор ошибки.
package errs

import "errors"

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindStateConflict
	KindUnauthorized
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindStateConflict:
		return "state_conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is сравнивает ошибки по коду, поэтому копии из WithMessage совпадают с исходным sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithMessage возвращает копию ошибки с уточненным сообщением.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: msg}
}

func New(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// As достает доменную ошибку из цепочки обертки.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

var (
	ErrMemberNotFound = New(KindNotFound, "MEMBER_NOT_FOUND", "member not found")

	ErrGalleryNotFound    = New(KindNotFound, "GALLERY_NOT_FOUND", "gallery not found")
	ErrGalleryAlreadyOpen = New(KindConflict, "OPEN_GALLERY_EXIST", "member already has an open gallery")
	ErrGalleryClosed      = New(KindStateConflict, "CLOSED_GALLERY", "gallery is closed")

	ErrArtworkNotFound            = New(KindNotFound, "ARTWORK_NOT_FOUND", "artwork not found")
	ErrArtworkNotFoundFromGallery = New(KindNotFound, "ARTWORK_NOT_FOUND_FROM_GALLERY", "artwork does not belong to gallery")
	ErrImageNotFound              = New(KindValidation, "IMAGE_NOT_FOUND_FROM_REQUEST", "image is required")
	ErrInvalidImage               = New(KindValidation, "INVALID_IMAGE", "image is not acceptable")

	ErrCommentNotFound            = New(KindNotFound, "COMMENT_NOT_FOUND", "comment not found")
	ErrCommentNotFoundFromGallery = New(KindNotFound, "COMMENT_NOT_FOUND_FROM_GALLERY", "comment does not belong to gallery")

	ErrAlarmNotFound      = New(KindNotFound, "ALARM_NOT_FOUND", "alarm not found")
	ErrInvalidAlarmFilter = New(KindValidation, "INVALID_ALARM_FILTER", "unknown alarm filter")

	ErrUnauthorized   = New(KindUnauthorized, "UNAUTHORIZED", "not allowed for this member")
	ErrInvalidTitle   = New(KindValidation, "INVALID_TITLE", "title is invalid")
	ErrInvalidContent = New(KindValidation, "INVALID_CONTENT", "content is invalid")
)

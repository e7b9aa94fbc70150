package comment

import "errors"

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrParentNotFound  = errors.New("parent comment not found")
	ErrParentMismatch  = errors.New("parent comment belongs to a different post")
	ErrReplyDepth      = errors.New("replies to replies are not supported")
	ErrNotAuthor       = errors.New("not authorized to modify this comment")
)

package post

import "errors"

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrDuplicateSlug = errors.New("a post with this slug already exists")
	ErrNotAuthor     = errors.New("not authorized to modify this post")
	ErrInvalidSlug   = errors.New("title does not produce a valid slug")
)

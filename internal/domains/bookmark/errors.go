package bookmark

import "errors"

var (
	ErrBookmarkNotFound  = errors.New("bookmark not found")
	ErrAlreadyBookmarked = errors.New("post is already bookmarked")
	ErrNotOwner          = errors.New("cannot manage another user's bookmarks")
)

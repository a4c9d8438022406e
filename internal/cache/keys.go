package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix = "user:%d"
	postKeyPrefix = "post:%d"
	postsListKey  = "posts:list"
	tagsListKey   = "tags:list"
)

// TTLs per key family. Posts change often through likes and comments, so
// their entries are short-lived.
const (
	UserTTL     = 5 * time.Minute
	PostTTL     = 2 * time.Minute
	ListTTL     = 30 * time.Second
	TagsListTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

func PostsListKey() string {
	return postsListKey
}

func TagsListKey() string {
	return tagsListKey
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID), postsListKey)
}

func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, postsListKey)
}

func InvalidateTagsList(ctx context.Context) {
	Invalidate(ctx, tagsListKey)
}

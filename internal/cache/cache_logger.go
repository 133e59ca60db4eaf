package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateUserCache drops every cached view of one user. Must run on any
// change to role, school binding or root flag so stale scopes cannot
// outlive a transfer.
func InvalidateUserCache(ctx context.Context, cm *CacheManager, userID string, schoolID *string) {
	SafeDelete(ctx, cm.User, fmt.Sprintf("id:%s", userID))
	if schoolID != nil {
		SafeInvalidatePattern(ctx, cm.User, fmt.Sprintf("school:%s:*", *schoolID))
		SafeInvalidatePattern(ctx, cm.Exists, fmt.Sprintf("root:%s", *schoolID))
	}
	SafeInvalidatePattern(ctx, cm.User, "list:*")
}

// InvalidateYearCache drops cached academic year state for a school. Runs
// on every lifecycle transition, dependent writes re-read fresh state.
func InvalidateYearCache(ctx context.Context, cm *CacheManager, yearID uint, schoolID string) {
	SafeDelete(ctx, cm.Year, fmt.Sprintf("id:%d", yearID))
	SafeDelete(ctx, cm.Year, fmt.Sprintf("active:%s", schoolID))
	SafeInvalidatePattern(ctx, cm.Year, fmt.Sprintf("school:%s:*", schoolID))
	SafeInvalidatePattern(ctx, cm.Stats, fmt.Sprintf("school:%s:*", schoolID))
}

// InvalidateSchoolCache drops cached school data.
func InvalidateSchoolCache(ctx context.Context, cm *CacheManager, schoolID string) {
	SafeDelete(ctx, cm.School, fmt.Sprintf("id:%s", schoolID))
	SafeInvalidatePattern(ctx, cm.School, "list:*")
	SafeInvalidatePattern(ctx, cm.Stats, fmt.Sprintf("school:%s:*", schoolID))
}

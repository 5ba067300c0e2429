package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix         = "user:%d"
	CategorySlugKeyPrefix = "category:slug:%s"
	PopularCategoriesKey  = "categories:popular"
)

const (
	UserTTL              = 5 * time.Minute
	CategoryTTL          = 10 * time.Minute
	PopularCategoriesTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func CategorySlugKey(slug string) string {
	return fmt.Sprintf(CategorySlugKeyPrefix, slug)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateCategory(ctx context.Context, slug string) {
	Invalidate(ctx, CategorySlugKey(slug))
	Invalidate(ctx, PopularCategoriesKey)
}

// InvalidatePopularCategories drops the cached popularity ranking. Called on
// every write that changes join-row counts.
func InvalidatePopularCategories(ctx context.Context) {
	Invalidate(ctx, PopularCategoriesKey)
}

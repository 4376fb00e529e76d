// Package redis keeps favorites as one Redis set per owner.
package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	goredis "github.com/go-redis/redis/v8"
)

const keyPrefix = "favorites:"

type FavoritesStore struct {
	client goredis.UniversalClient
}

func NewFavoritesStore(client goredis.UniversalClient) *FavoritesStore {
	return &FavoritesStore{client: client}
}

// Dial connects to addr and verifies the server answers.
func Dial(ctx context.Context, addr string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Toggle removes id when present, otherwise adds it.
func (s *FavoritesStore) Toggle(ctx context.Context, owner string, id int) (bool, error) {
	key := keyPrefix + owner
	member := strconv.Itoa(id)

	removed, err := s.client.SRem(ctx, key, member).Result()
	if err != nil {
		return false, fmt.Errorf("remove favorite: %w", err)
	}
	if removed > 0 {
		return false, nil
	}
	if err := s.client.SAdd(ctx, key, member).Err(); err != nil {
		return false, fmt.Errorf("add favorite: %w", err)
	}
	return true, nil
}

func (s *FavoritesStore) List(ctx context.Context, owner string) ([]int, error) {
	members, err := s.client.SMembers(ctx, keyPrefix+owner).Result()
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	out := make([]int, 0, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	sort.Ints(out)
	return out, nil
}

package ledger

import (
	"context"
	"slices"
	"time"

	goredis "github.com/redis/go-redis/v9"

	r "aifinder/internal/redis"
)

const redisKeyPrefix = "ledger"

// Snapshot is the serialized ledger of one profile.
type Snapshot struct {
	Ratings map[string]int `json:"ratings"`
	Saved   []string       `json:"saved"`
}

// RedisStore keeps a profile's ledger as one JSON document. Writes go through
// an optimistic transaction so concurrent requests of one profile do not
// overwrite each other. Reads and writes both restart the session TTL.
type RedisStore struct {
	cache     r.Cache[Snapshot]
	profileID string
}

func (s *RedisStore) load(ctx context.Context) (*Snapshot, error) {
	snapshot, err := s.cache.Get(ctx, s.profileID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Touch(ctx, s.profileID); err != nil {
		return nil, err
	}
	return normalize(snapshot), nil
}

func normalize(snapshot *Snapshot) *Snapshot {
	if snapshot == nil {
		snapshot = &Snapshot{}
	}
	if snapshot.Ratings == nil {
		snapshot.Ratings = make(map[string]int)
	}
	return snapshot
}

func (s *RedisStore) Ratings(ctx context.Context) (map[string]int, error) {
	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Ratings, nil
}

func (s *RedisStore) SetRating(ctx context.Context, toolID string, value int) error {
	return s.cache.Update(ctx, s.profileID, func(current *Snapshot) (*Snapshot, error) {
		snapshot := normalize(current)
		snapshot.Ratings[toolID] = value
		return snapshot, nil
	})
}

func (s *RedisStore) SavedTools(ctx context.Context) ([]string, error) {
	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Saved, nil
}

func (s *RedisStore) AddSaved(ctx context.Context, toolID string) (bool, error) {
	var added bool
	err := s.cache.Update(ctx, s.profileID, func(current *Snapshot) (*Snapshot, error) {
		snapshot := normalize(current)
		added = !slices.Contains(snapshot.Saved, toolID)
		if !added {
			return nil, nil
		}
		snapshot.Saved = append(snapshot.Saved, toolID)
		return snapshot, nil
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

type RedisSessions struct {
	cache *r.JSONCache[Snapshot]
}

func NewRedisSessions(client *goredis.Client, ttl time.Duration) *RedisSessions {
	return &RedisSessions{
		cache: r.NewJSONCache[Snapshot](client, redisKeyPrefix, ttl),
	}
}

func (rs *RedisSessions) Open(profileID string) Store {
	return &RedisStore{cache: rs.cache, profileID: profileID}
}

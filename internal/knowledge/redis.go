// internal/knowledge/redis.go
package knowledge

import (
	"context"
	"sort"

	apperrors "medical-qa-bot/internal/common/errors"
	"medical-qa-bot/internal/models"

	"github.com/redis/go-redis/v9"
)

const backendRedis = "redis"

// RedisSource reads a hash whose fields are disease names and values record JSON.
type RedisSource struct {
	client redis.Cmdable
	key    string
}

func NewRedisSource(client redis.Cmdable, key string) *RedisSource {
	return &RedisSource{client: client, key: key}
}

func (s *RedisSource) Name() string {
	return "redis:" + s.key
}

func (s *RedisSource) Load(ctx context.Context) (*LoadResult, error) {
	entries, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, classifyBackendError(ctx, backendRedis, err)
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	decoder := newRecordDecoder(s.Name())
	result := &LoadResult{}
	for i, name := range names {
		rec, err := decoder.decode([]byte(entries[name]), i+1)
		if err != nil {
			result.skip(err)
			continue
		}
		if rec.Name != name {
			result.skip(apperrors.NewRecordInvalidError(s.Name(), i+1, "hash field "+name+" holds record "+rec.Name))
			continue
		}
		result.Records = append(result.Records, *rec)
	}
	return result, nil
}

// SeedRedis writes records into the hash with a single pipeline.
func SeedRedis(ctx context.Context, client redis.Cmdable, key string, records []models.KnowledgeRecord) error {
	pipe := client.Pipeline()
	for i := range records {
		doc, err := json.Marshal(&records[i])
		if err != nil {
			return apperrors.NewRecordMalformedError("redis:"+key, i+1, err)
		}
		pipe.HSet(ctx, key, records[i].Name, doc)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return classifyBackendError(ctx, backendRedis, err)
	}
	return nil
}

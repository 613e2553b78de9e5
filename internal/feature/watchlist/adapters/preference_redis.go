package adapters

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"stockhawk/internal/feature/watchlist/domain/entity"
	"stockhawk/internal/feature/watchlist/usecase"
)

// preferenceRedis はPreferenceRepositoryインターフェースのRedis実装です。
// 監視銘柄は SET、設定値は文字列キーで保持します。
type preferenceRedis struct {
	rdb       *redis.Client
	namespace string
}

var _ usecase.PreferenceRepository = (*preferenceRedis)(nil)

// NewRedisPreferenceRepository は Redis をバックエンドとするリポジトリを生成します。
// namespace が空の場合は "prefs" を使います。
func NewRedisPreferenceRepository(rdb *redis.Client, namespace string) *preferenceRedis {
	if namespace == "" {
		namespace = "prefs"
	}
	return &preferenceRedis{rdb: rdb, namespace: namespace}
}

func (r *preferenceRedis) key(name string) string {
	return r.namespace + ":" + name
}

func (r *preferenceRedis) Symbols(ctx context.Context) ([]string, error) {
	symbols, err := r.rdb.SMembers(ctx, r.key("symbols")).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(symbols)
	return symbols, nil
}

func (r *preferenceRedis) AddSymbol(ctx context.Context, symbol string) error {
	return r.rdb.SAdd(ctx, r.key("symbols"), symbol).Err()
}

func (r *preferenceRedis) RemoveSymbol(ctx context.Context, symbol string) error {
	return r.rdb.SRem(ctx, r.key("symbols"), symbol).Err()
}

func (r *preferenceRedis) DisplayMode(ctx context.Context) (entity.DisplayMode, error) {
	v, err := r.rdb.Get(ctx, r.key(settingDisplayMode)).Result()
	if errors.Is(err, redis.Nil) {
		return entity.DefaultDisplayMode, nil
	}
	if err != nil {
		return "", err
	}
	return entity.ParseDisplayMode(v)
}

func (r *preferenceRedis) SetDisplayMode(ctx context.Context, mode entity.DisplayMode) error {
	return r.rdb.Set(ctx, r.key(settingDisplayMode), mode.String(), 0).Err()
}

func (r *preferenceRedis) Initialized(ctx context.Context) (bool, error) {
	v, err := r.rdb.Get(ctx, r.key(settingInitialized)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(v)
}

func (r *preferenceRedis) MarkInitialized(ctx context.Context) error {
	return r.rdb.Set(ctx, r.key(settingInitialized), "true", 0).Err()
}

package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotInitialized 缓存未初始化时返回，调用方按缓存未命中处理
var ErrNotInitialized = errors.New("redis client is not initialized")

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if Rdb == nil {
		return ErrNotInitialized
	}
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// GetValue 获取字符串类型的值
func GetValue(ctx context.Context, key string) (string, error) {
	if Rdb == nil {
		return "", ErrNotInitialized
	}
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// GetInt64 获取整型计数值，键不存在视为未命中
func GetInt64(ctx context.Context, key string) (int64, error) {
	if Rdb == nil {
		return 0, ErrNotInitialized
	}
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}

// Incr 计数自增
func Incr(ctx context.Context, key string) error {
	if Rdb == nil {
		return ErrNotInitialized
	}
	return Rdb.Incr(ctx, key).Err()
}

// Decr 计数自减
func Decr(ctx context.Context, key string) error {
	if Rdb == nil {
		return ErrNotInitialized
	}
	return Rdb.Decr(ctx, key).Err()
}

// SAdd 向集合添加成员
func SAdd(ctx context.Context, key string, members ...interface{}) error {
	if Rdb == nil {
		return ErrNotInitialized
	}
	return Rdb.SAdd(ctx, key, members...).Err()
}

// GetSet 获取集合
func GetSet(ctx context.Context, key string) ([]string, error) {
	if Rdb == nil {
		return nil, ErrNotInitialized
	}
	return Rdb.SMembers(ctx, key).Result()
}

// Rename 重命名键
func Rename(ctx context.Context, oldKey string, newKey string) error {
	if Rdb == nil {
		return ErrNotInitialized
	}
	return Rdb.Rename(ctx, oldKey, newKey).Err()
}

// DeleteKey 删除一个键
func DeleteKey(ctx context.Context, key string) error {
	if Rdb == nil {
		return ErrNotInitialized
	}
	return Rdb.Del(ctx, key).Err()
}

// TryLock 基于 SetNX 的简易分布式锁
func TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	if Rdb == nil {
		return false, ErrNotInitialized
	}
	for i := 0; i <= retryTimes; i++ {
		success, err := Rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		time.Sleep(time.Millisecond * 200)
	}
	return false, nil
}

// UnLock 释放锁，仅当持有者匹配时删除
func UnLock(ctx context.Context, key string, value interface{}) {
	if Rdb == nil {
		return
	}
	Rdb.Eval(ctx, "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end", []string{key}, value)
}

// GetRdbClient 获取redis客户端
func GetRdbClient() *redis.Client {
	return Rdb
}

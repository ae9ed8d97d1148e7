package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/constants"
)

// Redis 键值存储：上传去重的MD5集合与解析结果缓存
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedisAdapter 创建Redis客户端连接
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis配置不能为空")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis地址不能为空")
	}

	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	}

	client := redis.NewClient(opt)

	// OpenTelemetry钩子，记录所有Redis操作
	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("Redis添加OpenTelemetry钩子失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("连接Redis (%s) 失败: %w", cfg.Address, err)
	}

	return &Redis{
		Client: client,
		config: cfg,
	}, nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Ping 健康检查
func (r *Redis) Ping(ctx context.Context) error {
	_, err := r.Client.Ping(ctx).Result()
	return err
}

// CheckAndAddRawFileMD5 检查原始文件MD5是否已存在，不存在则原子加入去重集合
// 返回true表示之前已存在（重复上传）
func (r *Redis) CheckAndAddRawFileMD5(ctx context.Context, md5Hex string) (bool, error) {
	added, err := r.Client.SAdd(ctx, constants.RawFileMD5SetKey, md5Hex).Result()
	if err != nil {
		return false, fmt.Errorf("写入文件MD5集合失败: %w", err)
	}

	// 每次写入都刷新整个集合的过期时间
	if err := r.Client.Expire(ctx, constants.RawFileMD5SetKey, constants.MD5RecordExpireDur).Err(); err != nil {
		return false, fmt.Errorf("设置MD5集合过期时间失败: %w", err)
	}

	return added == 0, nil
}

// RemoveRawFileMD5 从去重集合移除MD5，用于处理失败时回滚
func (r *Redis) RemoveRawFileMD5(ctx context.Context, md5Hex string) error {
	return r.Client.SRem(ctx, constants.RawFileMD5SetKey, md5Hex).Err()
}

// CacheParsedRecord 缓存序列化后的解析结果
func (r *Redis) CacheParsedRecord(ctx context.Context, submissionUUID string, recordJSON string) error {
	key := constants.RecordCachePrefix + submissionUUID
	if err := r.Client.Set(ctx, key, recordJSON, constants.RecordCacheTTL).Err(); err != nil {
		return fmt.Errorf("缓存解析结果失败: %w", err)
	}
	return nil
}

// GetCachedParsedRecord 读取缓存的解析结果，未命中时返回空串且无错误
func (r *Redis) GetCachedParsedRecord(ctx context.Context, submissionUUID string) (string, error) {
	key := constants.RecordCachePrefix + submissionUUID
	val, err := r.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("读取解析结果缓存失败: %w", err)
	}
	return val, nil
}

package main

import (
	"testing"
	"time"

	"github.com/darkkaiser/voice-notifier/internal/config"
	"github.com/darkkaiser/voice-notifier/internal/service/event"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsesRedis(t *testing.T) {
	tests := []struct {
		name       string
		cacheStore string
		dedupStore string
		want       bool
	}{
		{"모두 메모리", config.StoreMemory, config.StoreMemory, false},
		{"캐시 메타데이터만 Redis", config.StoreRedis, config.StoreMemory, true},
		{"중복 판정만 Redis", config.StoreMemory, config.StoreRedis, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.AppConfig{
				Cache: config.CacheConfig{Store: tt.cacheStore},
				Event: config.EventConfig{DedupStore: tt.dedupStore},
			}
			assert.Equal(t, tt.want, usesRedis(cfg))
		})
	}
}

func TestNewDeduplicator(t *testing.T) {
	cfg := &config.AppConfig{Event: config.EventConfig{DedupWindow: time.Second, DedupStore: config.StoreRedis}}

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	assert.IsType(t, &event.RedisDeduplicator{}, newDeduplicator(cfg, client))

	// Redis 클라이언트가 없으면 메모리 저장소로 대체합니다.
	assert.IsType(t, &event.MemoryDeduplicator{}, newDeduplicator(cfg, nil))

	cfg.Event.DedupStore = config.StoreMemory
	assert.IsType(t, &event.MemoryDeduplicator{}, newDeduplicator(cfg, client))
}

func TestNewThumbnailCache(t *testing.T) {
	t.Run("썸네일 비활성화", func(t *testing.T) {
		cache, err := newThumbnailCache(&config.AppConfig{Telegram: config.TelegramConfig{Enabled: true}}, nil)
		require.NoError(t, err)
		assert.Nil(t, cache)
	})

	t.Run("메모리 메타데이터 저장소", func(t *testing.T) {
		cfg := &config.AppConfig{
			Telegram:  config.TelegramConfig{Enabled: true},
			Thumbnail: config.ThumbnailConfig{Enabled: true},
			Cache:     config.CacheConfig{Dir: t.TempDir(), Store: config.StoreMemory},
		}

		cache, err := newThumbnailCache(cfg, nil)
		require.NoError(t, err)
		assert.NotNil(t, cache)
	})
}

func TestNewNotificationManager_RegistersEnabledChannels(t *testing.T) {
	cfg := &config.AppConfig{
		Discord:  config.DiscordConfig{Enabled: true, BotToken: "token"},
		Telegram: config.TelegramConfig{Enabled: false},
	}

	manager := newNotificationManager(cfg, nil)
	assert.Equal(t, []string{"discord"}, manager.Names())
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "voice-notifier:event:", redisKey("", "voice-notifier:event:"))
	assert.Equal(t, "prod:voice-notifier:event:", redisKey("prod:", "voice-notifier:event:"))
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/darkkaiser/voice-notifier/internal/config"
	"github.com/darkkaiser/voice-notifier/internal/imagecache"
	"github.com/darkkaiser/voice-notifier/internal/notify/color"
	"github.com/darkkaiser/voice-notifier/internal/pkg/fetcher"
	"github.com/darkkaiser/voice-notifier/internal/pkg/version"
	"github.com/darkkaiser/voice-notifier/internal/profileimage"
	"github.com/darkkaiser/voice-notifier/internal/service/api"
	"github.com/darkkaiser/voice-notifier/internal/service/event"
	"github.com/darkkaiser/voice-notifier/internal/service/notification"
	notificationconstants "github.com/darkkaiser/voice-notifier/internal/service/notification/constants"
	"github.com/darkkaiser/voice-notifier/internal/service/notification/notifier/discord"
	"github.com/darkkaiser/voice-notifier/internal/service/notification/notifier/telegram"
	"github.com/darkkaiser/voice-notifier/internal/service/scheduler"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
	"github.com/redis/go-redis/v9"
)

const (
	component = "main"

	banner = `
 __     __    _              _   _       _   _  __ _
 \ \   / /__ (_) ___ ___    | \ | | ___ | |_(_)/ _(_) ___ _ __
  \ \ / / _ \| |/ __/ _ \   |  \| |/ _ \| __| | |_| |/ _ \ '__|
   \ V / (_) | | (_|  __/   | |\  | (_) | |_| |  _| |  __/ |
    \_/ \___/|_|\___\___|   |_| \_|\___/ \__|_|_| |_|\___|_|
                                                       %s
--------------------------------------------------------------------------------
`

	redisPingTimeout = 3 * time.Second
)

// service main이 시작과 종료를 관리하는 장기 실행 서비스입니다.
type service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	logOpts := applog.NewProductionOptions(config.AppName)
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	}

	logCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	buildInfo := version.Get()
	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponentAndFields(component, buildInfo.Fields()).Info("서버 초기화 시작")

	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent(component).Warn(warning)
	}

	if err := run(appConfig, buildInfo); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Error("서버 초기화 실패로 프로그램을 종료합니다")

		logCloser.Close()
		os.Exit(1)
	}
}

func run(appConfig *config.AppConfig, buildInfo version.Info) error {
	serviceStopCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var redisClient *redis.Client
	if usesRedis(appConfig) {
		redisClient = newRedisClient(serviceStopCtx, appConfig.Redis)
		defer redisClient.Close()
	}

	cache, err := newThumbnailCache(appConfig, redisClient)
	if err != nil {
		return err
	}

	manager := newNotificationManager(appConfig, cache)
	for name, initErr := range manager.InitializeAll(serviceStopCtx) {
		if initErr != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"provider": name,
				"error":    initErr,
			}).Warn("알림 채널 초기화에 실패하여 해당 채널은 전달에 실패합니다")
		}
	}

	dispatcher := event.NewDispatcher(manager, newDeduplicator(appConfig, redisClient))

	var services []service
	if appConfig.Scheduler.Enabled && cache != nil {
		services = append(services, scheduler.NewService(appConfig.Scheduler.CleanupSpec, appConfig.Scheduler.CleanupTimeout, cache))
	}
	if appConfig.API.Enabled {
		services = append(services, api.NewService(appConfig, manager, dispatcher, buildInfo))
	}

	serviceStopWG := &sync.WaitGroup{}
	for _, s := range services {
		serviceStopWG.Add(1)
		// Start는 실패 시 전달받은 WaitGroup을 스스로 해제합니다.
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			cancel()
			serviceStopWG.Wait()

			return err
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent(component).Info("서버 가동 완료")

	<-termC

	applog.WithComponent(component).Info("종료 신호를 수신하였습니다")

	cancel()
	serviceStopWG.Wait()

	return nil
}

func usesRedis(appConfig *config.AppConfig) bool {
	return appConfig.Cache.Store == config.StoreRedis || appConfig.Event.DedupStore == config.StoreRedis
}

// newRedisClient Redis 클라이언트를 생성합니다. 연결 확인에 실패해도 구동은 계속하며,
// 이후의 명령 실패는 각 사용처에서 처리합니다.
func newRedisClient(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"addr":  cfg.Addr,
			"error": err,
		}).Warn("Redis 연결 확인 실패")
	}

	return client
}

// newThumbnailCache 썸네일 캐시를 생성합니다. 텔레그램 썸네일이 비활성화되어 있으면 nil을 반환합니다.
func newThumbnailCache(appConfig *config.AppConfig, redisClient *redis.Client) (*imagecache.Cache, error) {
	if !appConfig.Telegram.Enabled || !appConfig.Thumbnail.Enabled {
		return nil, nil
	}

	var store imagecache.MetadataStore = imagecache.NewMemoryMetadataStore()
	if appConfig.Cache.Store == config.StoreRedis && redisClient != nil {
		store = imagecache.NewRedisMetadataStore(redisClient, redisKey(appConfig.Redis.KeyPrefix, imagecache.DefaultRedisHashKey))
	}

	return imagecache.New(imagecache.Config{
		Dir:      appConfig.Cache.Dir,
		TTL:      appConfig.Cache.TTL,
		MaxBytes: appConfig.Cache.MaxBytes,
	}, store)
}

// newNotificationManager 설정에서 활성화된 채널의 Provider를 등록한 Manager를 생성합니다.
func newNotificationManager(appConfig *config.AppConfig, cache *imagecache.Cache) *notification.Manager {
	manager := notification.NewManager()
	policy := color.NewPolicy(appConfig.Notification.ColorOverrides)

	if appConfig.Discord.Enabled {
		manager.Register(notificationconstants.ChannelDiscord, discord.New(discord.Config{
			BotToken:    appConfig.Discord.BotToken,
			HTTPTimeout: appConfig.Discord.HTTPTimeout,
			RateLimit:   appConfig.Discord.RateLimit,
			RateBurst:   appConfig.Discord.RateBurst,
		}, policy))
	}

	if appConfig.Telegram.Enabled {
		provider := telegram.New(telegram.Config{
			BotToken:    appConfig.Telegram.BotToken,
			Debug:       appConfig.Telegram.Debug,
			HTTPTimeout: appConfig.Telegram.HTTPTimeout,
			RetryDelay:  appConfig.Telegram.RetryDelay,
			RateLimit:   appConfig.Telegram.RateLimit,
			RateBurst:   appConfig.Telegram.RateBurst,
		})

		if appConfig.Thumbnail.Enabled {
			var thumbnailCache profileimage.ThumbnailCache
			if cache != nil {
				thumbnailCache = cache
			}

			provider.SetThumbnails(profileimage.NewPipeline(provider, newImageFetcher(appConfig.Thumbnail), thumbnailCache, profileimage.Config{
				Width:   appConfig.Thumbnail.Width,
				Height:  appConfig.Thumbnail.Height,
				Quality: appConfig.Thumbnail.Quality,
			}))
		}

		manager.Register(notificationconstants.ChannelTelegram, provider)
	}

	return manager
}

func newImageFetcher(cfg config.ThumbnailConfig) fetcher.Fetcher {
	return fetcher.NewImageFetcher(fetcher.Config{
		Timeout:                 cfg.APITimeout,
		MaxBytes:                cfg.MaxBytes,
		UserAgent:               cfg.UserAgent,
		BreakerName:             "telegram-profile-photo",
		BreakerFailureThreshold: cfg.BreakerFailureThreshold,
		BreakerOpenTimeout:      cfg.BreakerOpenTimeout,
	})
}

func newDeduplicator(appConfig *config.AppConfig, redisClient *redis.Client) event.Deduplicator {
	if appConfig.Event.DedupStore == config.StoreRedis && redisClient != nil {
		return event.NewRedisDeduplicator(redisClient, redisKey(appConfig.Redis.KeyPrefix, event.DefaultRedisKeyPrefix), appConfig.Event.DedupWindow)
	}
	return event.NewMemoryDeduplicator(appConfig.Event.DedupWindow)
}

// redisKey 설정된 접두사가 있으면 기본 키 앞에 붙입니다.
func redisKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + key
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/bitmark-inc/health-metrics-api/api"
	"github.com/bitmark-inc/health-metrics-api/external/objectstore"
	"github.com/bitmark-inc/health-metrics-api/store"
	"github.com/bitmark-inc/health-metrics-api/utils"
)

const defaultSessionTTL = 2 * time.Hour

var (
	server       *api.Server
	sessionStore store.SessionStore
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("healthmetrics")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("session.backend", "memory")
	viper.SetDefault("session.ttl", defaultSessionTTL)
	viper.SetDefault("server.ratelimit.window", time.Minute)
	viper.SetDefault("i18n.dir", "./i18n")
}

func sessionTTL() time.Duration {
	ttl := viper.GetDuration("session.ttl")
	if ttl <= 0 {
		return defaultSessionTTL
	}
	return ttl
}

func newSessionStore(ctx context.Context) (store.SessionStore, *redis.Client, error) {
	ttl := sessionTTL()

	switch backend := viper.GetString("session.backend"); backend {
	case "memory":
		return store.NewMemoryStore(ttl), nil, nil
	case "redis":
		client, err := store.NewRedisClient(ctx, viper.GetString("redis.conn"), viper.GetInt("redis.db"))
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedisStore(client, ttl), client, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend: %s", backend)
	}
}

func newObjectStore() (objectstore.ObjectStore, error) {
	if viper.GetString("s3.endpoint") == "" {
		return nil, nil
	}

	return objectstore.New(objectstore.Config{
		Endpoint:  viper.GetString("s3.endpoint"),
		AccessKey: viper.GetString("s3.access_key"),
		SecretKey: viper.GetString("s3.secret_key"),
		Bucket:    viper.GetString("s3.bucket"),
		Secure:    viper.GetBool("s3.secure"),
	})
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown health metrics api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if sessionStore != nil {
			log.Info("Shutting down session store")
			sessionStore.Close()
		}

		sentry.Flush(5 * time.Second)
		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	// Alert messages
	if err := utils.InitI18NBundle(viper.GetString("i18n.dir")); err != nil {
		log.WithField("prefix", "init").Warnf("Alert messages fall back to English: %s", err)
	} else {
		log.WithField("prefix", "init").Info("Loaded alert messages")
	}

	jwtSecret := viper.GetString("jwt.secret")
	if jwtSecret == "" {
		log.Panic("jwt.secret is required")
	}

	var redisClient *redis.Client
	var err error
	sessionStore, redisClient, err = newSessionStore(initialCtx)
	if err != nil {
		log.Panicf("create session store with error: %s", err)
	}
	log.WithField("prefix", "init").Infof("Initialized %s session store", viper.GetString("session.backend"))

	objectStore, err := newObjectStore()
	if err != nil {
		log.Panicf("create object store with error: %s", err)
	}
	if objectStore != nil {
		log.WithField("prefix", "init").Info("Initialized object store")
	}

	// Init http server
	server = api.NewServer(
		sessionStore,
		objectStore,
		[]byte(jwtSecret),
		sessionTTL())

	if limit := viper.GetInt("server.ratelimit.uploads"); redisClient != nil && limit > 0 {
		server.EnableUploadRateLimit(redisClient, limit, viper.GetDuration("server.ratelimit.window"))
		log.WithField("prefix", "init").Infof("Limited dataset uploads to %d per window", limit)
	}
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffval"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/kochabx/eckit/app"
	"github.com/kochabx/eckit/config"
	"github.com/kochabx/eckit/core/rate"
	"github.com/kochabx/eckit/core/validator"
	"github.com/kochabx/eckit/internal/conf"
	"github.com/kochabx/eckit/internal/service"
	_ "github.com/kochabx/eckit/internal/service/docs"
	"github.com/kochabx/eckit/log"
	mw "github.com/kochabx/eckit/middleware/http"
	"github.com/kochabx/eckit/transport/http"
	"github.com/kochabx/eckit/transport/http/metrics"
)

type rootConfig struct {
	flags   *ff.FlagSet
	command *ff.Command

	config  string
	addr    string
	curve   string
	verbose bool
}

func newRootCmd() *rootConfig {
	var cfg rootConfig
	cfg.flags = ff.NewFlagSet(appName)
	cfg.flags.AddFlag(ff.FlagConfig{
		ShortName: 'c',
		LongName:  "config",
		Value:     ffval.NewValueDefault(&cfg.config, ""),
		Usage:     "config file path, defaults to ./eccd.yaml or /etc/eccd/eccd.yaml",
	})
	cfg.flags.AddFlag(ff.FlagConfig{
		LongName: "addr",
		Value:    ffval.NewValueDefault(&cfg.addr, ""),
		Usage:    "listen address, overrides server.addr",
	})
	cfg.flags.AddFlag(ff.FlagConfig{
		LongName: "curve",
		Value:    ffval.NewValueDefault(&cfg.curve, ""),
		Usage:    "service key curve, overrides crypto.curve",
	})
	cfg.flags.AddFlag(ff.FlagConfig{
		ShortName: 'v',
		LongName:  "verbose",
		Value:     ffval.NewValueDefault(&cfg.verbose, false),
		Usage:     "enable debug logging",
		NoDefault: true,
	})

	cfg.command = &ff.Command{
		Name:      appName,
		Usage:     appName + " [FLAGS] <SUBCOMMAND>",
		ShortHelp: "elliptic curve key, signature and encryption service",
		Flags:     cfg.flags,
		Exec:      cfg.exec,
	}
	return &cfg
}

func (c *rootConfig) exec(ctx context.Context, args []string) error {
	var cfg conf.Config
	v := viper.New()

	opts := []config.FileOption{
		config.WithDefaults(conf.Defaults()),
		config.WithEnvPrefix(conf.EnvPrefix),
	}
	var loader *config.FileLoader
	if c.config != "" {
		loader = config.NewPathLoader(c.config, v, validator.Validate, opts...)
	} else {
		opts = append(opts, config.WithOptional())
		loader = config.NewFileLoader(appName+".yaml", []string{".", "/etc/" + appName}, v, validator.Validate, opts...)
	}

	// 命令行参数优先于文件与环境变量
	if c.addr != "" {
		v.Set("server.addr", c.addr)
	}
	if c.curve != "" {
		v.Set("crypto.curve", c.curve)
	}
	if c.verbose {
		v.Set("log.level", zerolog.DebugLevel.String())
	}

	cc := config.New(&cfg,
		config.WithViper(v),
		config.WithLoader(loader),
		config.WithOnChange(func() {
			level, err := log.ParseLevel(cfg.Log.Level)
			if err != nil {
				log.Warn().Err(err).Msg("ignore invalid log level")
				return
			}
			log.SetGlobalLevel(level)
			log.Info().Str("level", level.String()).Msg("config reloaded")
		}),
	)
	if err := cc.Load(); err != nil {
		return err
	}

	logger, err := log.NewFromConfig(cfg.Log)
	if err != nil {
		return err
	}
	log.SetGlobalLogger(logger)

	if file := cc.Source(); file != "" {
		log.Info().Str("file", file).Msg("config loaded")
	}
	if err := cc.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watch disabled")
	}

	svc, err := service.New(&cfg)
	if err != nil {
		_ = logger.Close()
		return err
	}

	var (
		limiter      rate.Limiter
		closeLimiter = func() error { return nil }
	)
	if cfg.Middleware.RateLimit.Enabled {
		limiter, closeLimiter, err = newLimiter(ctx, cfg.Middleware.RateLimit)
		if err != nil {
			_ = svc.Close()
			_ = logger.Close()
			return err
		}
	}

	handler, err := newRouter(&cfg, svc, limiter)
	if err != nil {
		_ = closeLimiter()
		_ = svc.Close()
		_ = logger.Close()
		return err
	}

	server := http.NewServer(cfg.Server.Addr, handler,
		http.WithMeta(http.Meta{Name: appName}),
		http.WithTimeoutOptions(cfg.Server.Timeouts),
		http.WithMetricsOptions(cfg.Server.Metrics),
		http.WithSwagOptions(cfg.Server.Swagger),
		http.WithHealthOptions(cfg.Server.Health),
	)

	log.Info().
		Str("addr", cfg.Server.Addr).
		Str("curve", cfg.Crypto.Curve).
		Str("version", version).
		Msg("starting " + appName)

	a := app.New(
		app.WithContext(ctx),
		app.WithName(appName),
		app.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		app.WithServer(server),
		app.WithClose("logger", func(context.Context) error { return logger.Close() }, 0),
		app.WithClose("service", func(context.Context) error { return svc.Close() }, 0),
		app.WithClose("ratelimit", func(context.Context) error { return closeLimiter() }, 0),
	)
	return a.Start()
}

// newRouter 组装中间件链与 /v1 路由
func newRouter(cfg *conf.Config, svc *service.Service, limiter rate.Limiter) (*gin.Engine, error) {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(
		mw.Recovery(),
		mw.RequestID(),
		metrics.Prom.GinMiddleware(),
	)
	if c := cfg.Middleware.Cors; c.Enabled {
		cc := mw.DefaultCorsConfig()
		cc.AllowOrigins = c.AllowOrigins
		cc.AllowCredentials = c.AllowCredentials
		cc.MaxAge = c.MaxAge
		r.Use(mw.Cors(cc))
	}
	if cfg.Middleware.AccessLog {
		r.Use(mw.Logger(mw.LoggerConfig{
			SkipPaths: []string{cfg.Server.Health.Path, cfg.Server.Metrics.Path},
		}))
	}

	api := r.Group("/")
	if limiter != nil {
		api.Use(mw.RateLimit(mw.RateLimitConfig{Limiter: limiter}))
	}
	if cfg.Middleware.SignaturePublicKey != "" {
		signer, err := mw.ECDSASignerBase64(cfg.Middleware.SignaturePublicKey)
		if err != nil {
			return nil, err
		}
		sc := mw.DefaultSignatureConfig()
		sc.Signer = signer
		if skew := cfg.Middleware.SignatureMaxSkew; skew > 0 {
			sc.TimestampHeader = "X-Timestamp"
			sc.MaxSkew = skew
		}
		api.Use(mw.Signature(sc))
	}
	if len(cfg.Middleware.EncryptedPaths) > 0 {
		encrypted := mw.NewPathMatcher(cfg.Middleware.EncryptedPaths)
		api.Use(mw.Crypto(mw.CryptoConfig{
			Decryptor: mw.ECIESDecryptor(svc.PrivateKey()),
			SkipFunc: func(c *gin.Context) bool {
				return !encrypted.Match(c.Request.URL.Path)
			},
		}))
	}
	svc.Register(api)

	return r, nil
}

package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kochabx/eckit/log"
	"github.com/kochabx/eckit/transport"
)

var (
	ErrAlreadyStarted = errors.New("application already started")
	ErrClosePanic     = errors.New("close function panicked")
	ErrNilServer      = errors.New("server cannot be nil")
	ErrNilClose       = errors.New("close function cannot be nil")
)

// Application 管理服务器与关闭函数的生命周期
type Application struct {
	ctx             context.Context
	cancel          context.CancelFunc
	name            string
	shutdownTimeout time.Duration
	closeTimeout    time.Duration
	signals         []os.Signal
	servers         []transport.Server
	closeFuncs      []CloseFunc

	mu      sync.RWMutex
	started bool
}

// CloseFunc 带超时的关闭函数
type CloseFunc struct {
	Name    string
	Fn      func(context.Context) error
	Timeout time.Duration
}

type Option func(*Application)

// WithContext 设置应用的根上下文, 上下文取消即触发关闭
func WithContext(ctx context.Context) Option {
	return func(app *Application) {
		if ctx != nil {
			app.ctx, app.cancel = context.WithCancel(ctx)
		}
	}
}

// WithName 设置应用名称, 用于日志
func WithName(name string) Option {
	return func(app *Application) {
		app.name = name
	}
}

// WithShutdownTimeout 设置服务器关闭的超时时间
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(app *Application) {
		if timeout > 0 {
			app.shutdownTimeout = timeout
		}
	}
}

// WithCloseTimeout 设置关闭函数的默认超时时间
func WithCloseTimeout(timeout time.Duration) Option {
	return func(app *Application) {
		if timeout > 0 {
			app.closeTimeout = timeout
		}
	}
}

// WithSignals 设置触发优雅关闭的信号
func WithSignals(signals ...os.Signal) Option {
	return func(app *Application) {
		if len(signals) > 0 {
			app.signals = append([]os.Signal(nil), signals...)
		}
	}
}

// WithServer 添加服务器, nil 被忽略
func WithServer(servers ...transport.Server) Option {
	return func(app *Application) {
		for _, server := range servers {
			if server != nil {
				app.servers = append(app.servers, server)
			}
		}
	}
}

// WithClose 添加关闭函数, timeout 为 0 时使用默认超时
func WithClose(name string, fn func(context.Context) error, timeout time.Duration) Option {
	return func(app *Application) {
		if fn == nil {
			log.Warn().Str("name", name).Msg("nil close function ignored")
			return
		}
		app.closeFuncs = append(app.closeFuncs, CloseFunc{Name: name, Fn: fn, Timeout: timeout})
	}
}

// New 创建应用实例
func New(options ...Option) *Application {
	app := &Application{
		name:            "eccd",
		shutdownTimeout: 30 * time.Second,
		closeTimeout:    10 * time.Second,
		signals:         []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT},
	}
	app.ctx, app.cancel = context.WithCancel(context.Background())

	for _, opt := range options {
		opt(app)
	}
	return app
}

// AddServer 在启动前添加服务器
func (app *Application) AddServer(server transport.Server) error {
	if server == nil {
		return ErrNilServer
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	if app.started {
		return ErrAlreadyStarted
	}
	app.servers = append(app.servers, server)
	return nil
}

// RegisterClose 添加关闭函数, 启动后仍可注册
func (app *Application) RegisterClose(name string, fn func(context.Context) error, timeout time.Duration) error {
	if fn == nil {
		return ErrNilClose
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	app.closeFuncs = append(app.closeFuncs, CloseFunc{Name: name, Fn: fn, Timeout: timeout})
	return nil
}

// Start 启动所有服务器并阻塞, 直到收到信号、上下文取消或某个服务器退出
//
// 服务器 Run 返回的非 http.ErrServerClosed 错误会触发其余服务器关闭并作为结果返回。
// 无论结果如何, 关闭函数都会按注册的逆序执行。
func (app *Application) Start() error {
	app.mu.Lock()
	if app.started {
		app.mu.Unlock()
		return ErrAlreadyStarted
	}
	app.started = true
	servers := append([]transport.Server(nil), app.servers...)
	signals := append([]os.Signal(nil), app.signals...)
	app.mu.Unlock()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, signals...)
	defer signal.Stop(sigCh)

	log.Info().Str("app", app.name).Int("servers", len(servers)).Msg("application starting")

	eg, egCtx := errgroup.WithContext(app.ctx)

	for _, server := range servers {
		eg.Go(func() error {
			if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		eg.Go(func() error {
			<-egCtx.Done()

			ctx, cancel := context.WithTimeout(context.Background(), app.shutdownTimeout)
			defer cancel()
			return server.Shutdown(ctx)
		})
	}

	eg.Go(func() error {
		select {
		case sig := <-sigCh:
			log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
			app.cancel()
		case <-egCtx.Done():
		}
		return nil
	})

	err := eg.Wait()
	app.runCloseTasks()

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Str("app", app.name).Msg("application stopped with error")
		return err
	}
	log.Info().Str("app", app.name).Msg("application stopped")
	return nil
}

// Stop 触发优雅关闭
func (app *Application) Stop() {
	app.cancel()
}

// runCloseTasks 按注册的逆序依次执行关闭函数
func (app *Application) runCloseTasks() {
	app.mu.RLock()
	closeFuncs := append([]CloseFunc(nil), app.closeFuncs...)
	app.mu.RUnlock()

	var errs []error
	for i := len(closeFuncs) - 1; i >= 0; i-- {
		if err := app.runCloseTask(closeFuncs[i]); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		log.Error().Err(errors.Join(errs...)).Msg("some close functions failed")
	}
}

// runCloseTask 执行单个带超时的关闭函数
func (app *Application) runCloseTask(cf CloseFunc) error {
	timeout := cf.Timeout
	if timeout <= 0 {
		timeout = app.closeTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("close", cf.Name).Msg("close function panicked")
				done <- ErrClosePanic
			}
		}()
		done <- cf.Fn(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Error().Err(err).Str("close", cf.Name).Msg("close function failed")
		}
		return err
	case <-ctx.Done():
		log.Warn().Str("close", cf.Name).Msg("close function timed out")
		return ctx.Err()
	}
}

// Info 返回应用状态信息
func (app *Application) Info() Info {
	app.mu.RLock()
	defer app.mu.RUnlock()

	return Info{
		Name:        app.name,
		Started:     app.started,
		ServerCount: len(app.servers),
		CloseCount:  len(app.closeFuncs),
	}
}

// Info 应用状态信息
type Info struct {
	Name        string `json:"name"`
	Started     bool   `json:"started"`
	ServerCount int    `json:"server_count"`
	CloseCount  int    `json:"close_count"`
}

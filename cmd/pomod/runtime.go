package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/pomod/internal/app"
	"github.com/sandeepkv93/pomod/internal/audio"
	"github.com/sandeepkv93/pomod/internal/config"
	"github.com/sandeepkv93/pomod/internal/logging"
	"github.com/sandeepkv93/pomod/internal/notify"
	"github.com/sandeepkv93/pomod/internal/storage"
	"github.com/sandeepkv93/pomod/internal/timer"
)

type rootFlags struct {
	configPath string
	dbPath     string
	logLevel   string
}

// runtime owns everything a command opened; Close releases it in reverse.
type runtime struct {
	cfg     config.Config
	log     zerolog.Logger
	app     *app.App
	toasts  *notify.Toasts
	desktop *notify.Desktop
	closers []func()
}

type runtimeOptions struct {
	// fileLog sends logs to the configured file instead of stderr; the TUI
	// owns the terminal.
	fileLog bool
	// notifier receives completion messages in addition to desktop popups.
	notifier timer.Notifier
	toasts   bool
}

func (f *rootFlags) config() (config.Config, error) {
	path := f.configPath
	if path == "" {
		path = config.DefaultFilePath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if f.dbPath != "" {
		cfg.DBPath = f.dbPath
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	return cfg, nil
}

func openRuntime(ctx context.Context, flags *rootFlags, opts runtimeOptions) (*runtime, error) {
	cfg, err := flags.config()
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg}

	if opts.fileLog {
		log, closer, err := logging.File(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		rt.log = log
		rt.closers = append(rt.closers, func() { _ = closer.Close() })
	} else {
		rt.log = logging.Console(cfg.LogLevel)
	}

	var store storage.Store
	sqlite, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		rt.log.Warn().Err(err).Str("path", cfg.DBPath).Msg("sqlite unavailable; state will not be saved")
		store = storage.NewMemoryStore()
	} else {
		store = sqlite
		rt.closers = append(rt.closers, func() { _ = sqlite.Close() })
	}

	var player timer.Player = audio.Nop{}
	if cfg.TerminalBell {
		bell := audio.NewBellPlayer(os.Stderr, rt.log)
		player = bell
		rt.closers = append(rt.closers, bell.Close)
	}

	fanout := notify.Fanout{opts.notifier}
	if opts.toasts {
		rt.toasts = &notify.Toasts{}
		fanout = append(fanout, rt.toasts)
	}
	if cfg.DesktopNotifications {
		rt.desktop = notify.NewDesktop(notify.ExecDesktopSender{}, nil, rt.log)
		fanout = append(fanout, rt.desktop)
		rt.closers = append(rt.closers, rt.desktop.Wait)
	}

	rt.app = app.Load(ctx, app.Deps{
		Gateway:  storage.NewGateway(store, rt.log),
		Player:   player,
		Notifier: fanout,
		Logger:   rt.log,
	})
	return rt, nil
}

func (r *runtime) Close() {
	if err := r.app.PersistError(); err != nil {
		r.log.Warn().Err(err).Msg("last save failed")
	}
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

func writerNotifier(w io.Writer) timer.Notifier {
	return notify.Writer{Out: w}
}

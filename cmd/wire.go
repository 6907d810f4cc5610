package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	configfile "github.com/bnema/aminoacids/internal/adapters/config/file"
	tomlrepo "github.com/bnema/aminoacids/internal/adapters/repo/toml"
	chainstore "github.com/bnema/aminoacids/internal/adapters/secrets/chain"
	"github.com/bnema/aminoacids/internal/adapters/transport/httptransport"
	"github.com/bnema/aminoacids/internal/application"
	"github.com/bnema/aminoacids/internal/domain"
	"github.com/bnema/aminoacids/internal/ports"
	"github.com/bnema/aminoacids/internal/remote"
	"github.com/bnema/aminoacids/internal/session"
	"github.com/spf13/viper"
)

const skipWireKey = "aa.skip-wire"

// skipWire marks commands that run without settings, device or sessions.
var skipWire = map[string]string{skipWireKey: "true"}

var errNoEmail = errors.New("no account email: pass --email or set account.email in settings.toml")

type app struct {
	verbose bool
	email   string

	logLevel *slog.LevelVar
	logSink  *logSink
	logger   *slog.Logger

	settings tomlrepo.Settings
	devices  *tomlrepo.DeviceRepository
	sessions *configfile.Store
	client   *remote.Client
	service  *application.Service
	now      func() time.Time
}

func newApp() *app {
	level := &slog.LevelVar{}
	sink := &logSink{w: os.Stderr}

	return &app{
		logLevel: level,
		logSink:  sink,
		logger:   slog.New(slog.NewTextHandler(sink, &slog.HandlerOptions{Level: level})),
		now:      time.Now,
	}
}

func (a *app) configureLogging(w io.Writer) {
	a.logSink.SetOutput(w)
	if a.verbose {
		a.logLevel.Set(slog.LevelDebug)
	} else {
		a.logLevel.Set(slog.LevelWarn)
	}
}

func (a *app) wire(ctx context.Context) error {
	settings, err := tomlrepo.LoadSettings(viper.New())
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	a.settings = settings

	clock := ports.SystemClock{}
	devices, err := tomlrepo.NewDeviceRepository(settings.DevicePath, clock)
	if err != nil {
		return fmt.Errorf("wire device repository: %w", err)
	}
	a.devices = devices

	profile, created, err := devices.LoadOrCreate(ctx)
	if err != nil {
		return fmt.Errorf("load device profile: %w", err)
	}
	if created {
		a.logger.Warn("generated a new device profile, register it with `aa device configure`", "path", devices.Path())
	}

	sessions, err := configfile.NewStore(settings.ConfigPath)
	if err != nil {
		return fmt.Errorf("wire session store: %w", err)
	}
	if err := sessions.Load(ctx); err != nil {
		return fmt.Errorf("load session store: %w", err)
	}
	a.sessions = sessions

	credentials, err := chainstore.NewPassFirstWithFileFallback(filepath.Join(filepath.Dir(settings.ConfigPath), "secrets"))
	if err != nil {
		return fmt.Errorf("wire credential store chain: %w", err)
	}

	sess, err := session.New(settings.APIBaseURL, profile)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	a.client = remote.NewClient(httptransport.New(settings.HTTPTimeout, a.logger), sess, a.logger)
	a.service = application.NewService(a.client, sessions, credentials, clock, a.logger)

	if strings.TrimSpace(a.email) == "" {
		a.email = settings.Email
	}

	return nil
}

// accountEmail resolves the account for commands that need a login.
func (a *app) accountEmail() (string, error) {
	email := strings.TrimSpace(a.email)
	if email == "" {
		return "", errNoEmail
	}
	return email, nil
}

// login authenticates from the stored session, falling back to a full login
// with the remembered password.
func (a *app) login(ctx context.Context) error {
	email, err := a.accountEmail()
	if err != nil {
		return err
	}

	err = a.service.Login(ctx, application.LoginCommand{Email: email})
	if errors.Is(err, domain.ErrAlreadyAuthenticated) {
		return nil
	}
	if errors.Is(err, application.ErrPasswordRequired) {
		return fmt.Errorf("no usable session for %s, run `aa login` first: %w", email, err)
	}

	return err
}

// logSink lets the logger follow the command's stderr.
type logSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *logSink) SetOutput(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w = w
}

func (s *logSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

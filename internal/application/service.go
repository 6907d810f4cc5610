package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bnema/aminoacids/internal/amino"
	"github.com/bnema/aminoacids/internal/domain"
	"github.com/bnema/aminoacids/internal/ports"
	"github.com/bnema/aminoacids/internal/remote"
	"github.com/bnema/aminoacids/internal/session"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
)

const (
	loginPath  = "/g/s/auth/login"
	devicePath = "/g/s/device"
	// accountPath doubles as the probe for stored sessions.
	accountPath = "/g/s/account"

	bundleID          = "com.narvii.master"
	clientCallbackURL = "narviiapp://default"
	deviceLocale      = "en_US"
)

type Service struct {
	client      *remote.Client
	sessions    ports.ConfigStore
	credentials ports.CredentialStore
	clock       ports.Clock
	logger      *slog.Logger
}

// NewService wires the service. credentials may be nil, which disables
// remembered passwords.
func NewService(client *remote.Client, sessions ports.ConfigStore, credentials ports.CredentialStore, clock ports.Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		client:      client,
		sessions:    sessions,
		credentials: credentials,
		clock:       clock,
		logger:      logger,
	}
}

func (s *Service) Client() *remote.Client {
	return s.client
}

// ConfigureDevice registers the session's device with the service.
func (s *Service) ConfigureDevice(ctx context.Context) error {
	now := s.clock.Now()
	_, offset := now.Zone()

	_, err := s.client.Do(ctx, remote.Request{
		Method: http.MethodPost,
		Path:   devicePath,
		Body: map[string]any{
			"bundleID":          bundleID,
			"clientCallbackURL": clientCallbackURL,
			"deviceID":          s.client.Session().Device().DeviceID,
			"timezone":          offset / 60,
			"locale":            deviceLocale,
			"timestamp":         now.UnixMilli(),
			"systemPushEnabled": 1,
			"clientType":        domain.ClientType,
		},
	})
	if err != nil {
		return fmt.Errorf("configure device: %w", err)
	}

	return nil
}

// Login authenticates the session. Unless cmd.Force is set, a stored session
// for the email is probed first and reused when the service still accepts
// it. Otherwise a full login runs and its result is stored.
func (s *Service) Login(ctx context.Context, cmd LoginCommand) error {
	sess := s.client.Session()
	if sess.Authenticated() {
		return domain.ErrAlreadyAuthenticated
	}

	email := strings.TrimSpace(cmd.Email)
	if email == "" {
		return ErrEmailRequired
	}

	var record domain.SessionRecord
	if !cmd.Force {
		stored, ok := s.sessions.Get(email)
		if ok {
			record = stored
		}
		if ok && stored.Usable() {
			creds, err := s.probe(ctx, stored)
			if err == nil {
				return sess.Authenticate(creds)
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			s.logger.Info("stored session rejected, logging in again", "email", email, "error", err)
		}
	}

	password := cmd.Password
	secret := record.Secret
	if secret == "" {
		if password == "" {
			remembered, err := s.rememberedPassword(ctx, email)
			if err != nil {
				return err
			}
			password = remembered
		}
		secret = "0 " + password
	}

	result, err := s.login(ctx, email, secret)
	if err != nil {
		return err
	}
	if result.Secret == "" {
		result.Secret = secret
	}

	creds := session.Credentials{SessionToken: result.SessionToken, AccountID: result.AccountID}
	if err := sess.Authenticate(creds); err != nil {
		return err
	}

	if err := s.sessions.Merge(ctx, email, result); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	if cmd.Remember && cmd.Password != "" && s.credentials != nil {
		if err := s.credentials.Put(ctx, email, cmd.Password); err != nil {
			return fmt.Errorf("remember password: %w", err)
		}
	}

	s.logger.Debug("logged in", "email", email, "account_id", result.AccountID)
	return nil
}

// Logout drops the session credentials. The stored session is kept.
func (s *Service) Logout(_ context.Context) {
	s.client.Session().Logout()
}

// Forget invalidates the stored session of an account and, when asked, its
// remembered password.
func (s *Service) Forget(ctx context.Context, cmd ForgetCommand) error {
	email := strings.TrimSpace(cmd.Email)
	if email == "" {
		return ErrEmailRequired
	}

	if err := s.sessions.Merge(ctx, email, domain.SessionRecord{}); err != nil {
		return fmt.Errorf("clear stored session: %w", err)
	}

	if cmd.Password && s.credentials != nil {
		if err := s.credentials.Delete(ctx, email); err != nil {
			return fmt.Errorf("forget password: %w", err)
		}
	}

	return nil
}

func (s *Service) Account() *amino.Account {
	return amino.NewAccount(s.client)
}

func (s *Service) Community(id string) *amino.Community {
	return amino.NewCommunity(s.client, id)
}

func (s *Service) User(id, ndc string) *amino.User {
	return amino.NewUser(s.client, id, ndc)
}

func (s *Service) Blog(id, ndc string) *amino.Blog {
	return amino.NewBlog(s.client, id, ndc)
}

// Hydratable is any lazy entity.
type Hydratable interface {
	Snapshot(ctx context.Context) (remote.Snapshot, error)
}

// Hydrate fetches independent entities concurrently, at most limit at a
// time. Each entity is touched by exactly one goroutine. The first failure
// cancels the remaining fetches.
func (s *Service) Hydrate(ctx context.Context, entities []Hydratable, limit int) error {
	if limit <= 0 {
		limit = 4
	}

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, entity := range entities {
		g.Go(func() error {
			_, err := entity.Snapshot(groupCtx)
			return err
		})
	}

	return g.Wait()
}

func (s *Service) probe(ctx context.Context, record domain.SessionRecord) (session.Credentials, error) {
	creds := session.Credentials{SessionToken: record.SessionToken, AccountID: record.AccountID}

	account, err := s.client.Object(ctx, remote.Request{Path: accountPath, Auth: true, Credentials: &creds}, "account")
	if err != nil {
		return session.Credentials{}, err
	}

	if creds.AccountID == "" {
		creds.AccountID = account.String("uid", "")
	}

	return creds, nil
}

func (s *Service) login(ctx context.Context, email, secret string) (domain.SessionRecord, error) {
	resp, err := s.client.Do(ctx, remote.Request{
		Method: http.MethodPost,
		Path:   loginPath,
		Body: map[string]any{
			"email":      email,
			"v":          2,
			"secret":     secret,
			"deviceID":   s.client.Session().Device().DeviceID,
			"clientType": domain.ClientType,
			"action":     "normal",
			"timestamp":  s.clock.Now().UnixMilli(),
		},
	})
	if err != nil {
		return domain.SessionRecord{}, classifyLoginError(err)
	}

	body, err := remote.DecodeSnapshot(resp.Body)
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("login: %w", err)
	}

	record := domain.SessionRecord{
		SessionToken: body.String("sid", ""),
		Secret:       body.String("secret", ""),
		AccountID:    body.String("auid", ""),
	}
	if !record.Usable() {
		return domain.SessionRecord{}, errors.New("login: response missing session token")
	}

	return record, nil
}

func classifyLoginError(err error) error {
	var fetchErr *domain.RemoteFetchError
	if errors.As(err, &fetchErr) && fetchErr.StatusCode == http.StatusBadRequest {
		if code, ok := remote.APIStatusCode(err); ok {
			switch code {
			case domain.LoginStatusInvalidCredentials:
				return domain.ErrFailedLogin
			case domain.LoginStatusCaptcha:
				return domain.ErrCaptcha
			}
		}
	}

	return fmt.Errorf("login: %w", err)
}

func (s *Service) rememberedPassword(ctx context.Context, email string) (string, error) {
	if s.credentials == nil {
		return "", ErrPasswordRequired
	}

	password, err := s.credentials.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			return "", ErrPasswordRequired
		}
		return "", fmt.Errorf("load remembered password: %w", err)
	}

	return password, nil
}

package main

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/km-arc/go-nestforge/framework/config"
	"github.com/km-arc/go-nestforge/framework/container"
	"github.com/km-arc/go-nestforge/internal/store"
)

// AppConfig is the application's own configuration.
type AppConfig struct {
	AppName  string
	LogLevel string
}

func loadAppConfig(env *config.EnvStore) (*AppConfig, error) {
	return &AppConfig{
		AppName:  env.Value("APP_NAME", "NestForge"),
		LogLevel: env.Value("LOG_LEVEL", "info"),
	}, nil
}

// ── Audit ─────────────────────────────────────────────────────────────────────

type AuditEvent struct {
	At      time.Time `json:"at"`
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
}

// AuditLog is an append-only, in-memory list of events.
type AuditLog struct {
	mu     sync.Mutex
	events []AuditEvent
}

func NewAuditLog() *AuditLog { return &AuditLog{} }

func (a *AuditLog) Record(kind, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, AuditEvent{At: time.Now().UTC(), Kind: kind, Message: message})
}

func (a *AuditLog) Events() []AuditEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]AuditEvent(nil), a.events...)
}

// ── Users ─────────────────────────────────────────────────────────────────────

var errEmailTaken = errors.New("email already in use")

type User struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UsersService struct {
	users *store.Memory[User]
	audit *AuditLog
}

// NewUsersService is the UsersModule factory.
func NewUsersService(c *container.Container) (*UsersService, error) {
	audit, err := container.Resolve[*AuditLog](c)
	if err != nil {
		return nil, err
	}
	users := store.NewMemory(func(u *User) *uint64 { return &u.ID },
		User{ID: 1, Name: "Vernon", Email: "vernon@example.com"},
		User{ID: 2, Name: "Sam", Email: "sam@example.com"},
	)
	return &UsersService{users: users, audit: audit}, nil
}

func (s *UsersService) List() []User               { return s.users.All() }
func (s *UsersService) Count() int                 { return s.users.Count() }
func (s *UsersService) Exists(id uint64) bool      { return s.users.Exists(id) }
func (s *UsersService) Get(id uint64) (User, bool) { return s.users.Get(id) }

func (s *UsersService) Create(dto CreateUserDTO) (User, error) {
	if s.emailTaken(dto.Email, 0) {
		return User{}, errEmailTaken
	}
	u := s.users.Create(User{Name: dto.Name, Email: dto.Email})
	s.audit.Record("user.created", u.Email)
	return u, nil
}

// Update applies the fields present in dto.
func (s *UsersService) Update(id uint64, dto UpdateUserDTO) (User, bool, error) {
	if dto.Email != nil && s.emailTaken(*dto.Email, id) {
		return User{}, false, errEmailTaken
	}
	u, ok := s.users.Update(id, func(u *User) {
		if dto.Name != nil {
			u.Name = *dto.Name
		}
		if dto.Email != nil {
			u.Email = *dto.Email
		}
	})
	return u, ok, nil
}

func (s *UsersService) Replace(id uint64, dto CreateUserDTO) (User, bool, error) {
	if s.emailTaken(dto.Email, id) {
		return User{}, false, errEmailTaken
	}
	u, ok := s.users.Replace(id, User{Name: dto.Name, Email: dto.Email})
	return u, ok, nil
}

func (s *UsersService) Delete(id uint64) (User, bool) {
	u, ok := s.users.Delete(id)
	if ok {
		s.audit.Record("user.deleted", u.Email)
	}
	return u, ok
}

func (s *UsersService) emailTaken(email string, except uint64) bool {
	for _, u := range s.users.All() {
		if u.ID != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// ── Settings ──────────────────────────────────────────────────────────────────

type Setting struct {
	ID    uint64 `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

type SettingsService struct {
	settings *store.Memory[Setting]
	audit    *AuditLog
}

// NewSettingsService seeds the settings from AppConfig.
func NewSettingsService(c *container.Container) (*SettingsService, error) {
	cfg, err := container.Resolve[*AppConfig](c)
	if err != nil {
		return nil, err
	}
	audit, err := container.Resolve[*AuditLog](c)
	if err != nil {
		return nil, err
	}
	settings := store.NewMemory(func(s *Setting) *uint64 { return &s.ID },
		Setting{ID: 1, Key: "app_name", Value: cfg.AppName},
		Setting{ID: 2, Key: "log_level", Value: cfg.LogLevel},
	)
	return &SettingsService{settings: settings, audit: audit}, nil
}

func (s *SettingsService) List() []Setting                  { return s.settings.All() }
func (s *SettingsService) Get(id uint64) (Setting, bool)    { return s.settings.Get(id) }
func (s *SettingsService) Delete(id uint64) (Setting, bool) { return s.settings.Delete(id) }

func (s *SettingsService) Create(dto CreateSettingDTO) Setting {
	st := s.settings.Create(Setting{Key: dto.Key, Value: dto.Value})
	s.audit.Record("setting.created", st.Key)
	return st
}

func (s *SettingsService) Update(id uint64, dto UpdateSettingDTO) (Setting, bool) {
	return s.settings.Update(id, func(st *Setting) {
		if dto.Key != nil {
			st.Key = *dto.Key
		}
		if dto.Value != nil {
			st.Value = *dto.Value
		}
	})
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"reviewdesk-mobile/internal/api"
	"reviewdesk-mobile/internal/domain"
	"reviewdesk-mobile/internal/store"

	"go.uber.org/zap"
)

// TokenSource 提供当前会话 token
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Do(ctx context.Context, fn func(token string) error) error
}

// SessionService 会话存储：token + 当前用户，持久化到本地 KV
type SessionService struct {
	api    *api.Client
	kv     store.KV
	logger *zap.Logger

	// logout 时一并清理的设备凭证
	onLogout []func(ctx context.Context) error
}

func NewSessionService(client *api.Client, kv store.KV, logger *zap.Logger) *SessionService {
	return &SessionService{api: client, kv: kv, logger: logger}
}

// OnLogout 注册登出时的清理动作
func (s *SessionService) OnLogout(fn func(ctx context.Context) error) {
	s.onLogout = append(s.onLogout, fn)
}

// Login 登录并持久化 token 与用户信息
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.Session{}, errors.New("email and password are required")
	}

	sess, err := s.api.Login(ctx, email, password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("login failed: %w", err)
	}
	if sess.Token == "" {
		return domain.Session{}, errors.New("login failed: server returned no token")
	}

	if err := s.kv.Set(ctx, KeySessionToken, sess.Token, 0); err != nil {
		return domain.Session{}, fmt.Errorf("failed to persist session: %w", err)
	}
	if err := s.saveUser(ctx, sess.User); err != nil {
		_ = s.kv.Delete(ctx, KeySessionToken)
		return domain.Session{}, err
	}

	s.logger.Info("Logged in", zap.String("user_id", sess.User.ID), zap.String("email", sess.User.Email))
	return sess, nil
}

// Logout 通知后端（尽力而为），并总是清理本地会话和设备凭证
func (s *SessionService) Logout(ctx context.Context) error {
	token, err := s.Token(ctx)
	if err == nil {
		if err := s.api.Logout(ctx, token); err != nil {
			s.logger.Warn("Backend logout failed, clearing local session anyway", zap.Error(err))
		}
	}

	var errs []error
	for _, fn := range s.onLogout {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.kv.Delete(ctx, KeySessionToken, KeySessionUser); err != nil {
		errs = append(errs, fmt.Errorf("failed to clear session: %w", err))
	}
	return errors.Join(errs...)
}

// Token 返回本地保存的 token；没有则 ErrNotAuthenticated
func (s *SessionService) Token(ctx context.Context) (string, error) {
	token, err := s.kv.Get(ctx, KeySessionToken)
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return "", ErrNotAuthenticated
		}
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	if token == "" {
		return "", ErrNotAuthenticated
	}
	return token, nil
}

// Do 使用当前 token 执行请求；后端返回 401 时清除本地会话并返回 ErrNotAuthenticated
func (s *SessionService) Do(ctx context.Context, fn func(token string) error) error {
	token, err := s.Token(ctx)
	if err != nil {
		return err
	}
	err = fn(token)
	if err != nil && errors.Is(err, api.ErrUnauthorized) {
		s.logger.Info("Session rejected by backend, clearing local token")
		if delErr := s.kv.Delete(ctx, KeySessionToken, KeySessionUser); delErr != nil {
			s.logger.Warn("Failed to clear rejected session", zap.Error(delErr))
		}
		return fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}
	return err
}

// CurrentUser 从后端获取当前用户并刷新本地缓存
func (s *SessionService) CurrentUser(ctx context.Context) (domain.User, error) {
	var u domain.User
	err := s.Do(ctx, func(token string) error {
		var err error
		u, err = s.api.Me(ctx, token)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}
	if err := s.saveUser(ctx, u); err != nil {
		s.logger.Warn("Failed to cache current user", zap.Error(err))
	}
	return u, nil
}

// CachedUser 读取本地缓存的用户（不发请求）
func (s *SessionService) CachedUser(ctx context.Context) (domain.User, error) {
	raw, err := s.kv.Get(ctx, KeySessionUser)
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return domain.User{}, ErrNotAuthenticated
		}
		return domain.User{}, err
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return domain.User{}, fmt.Errorf("failed to decode cached user: %w", err)
	}
	return u, nil
}

func (s *SessionService) saveUser(ctx context.Context, u domain.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, KeySessionUser, string(b), 0); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"reviewdesk-mobile/internal/api"
	"reviewdesk-mobile/internal/domain"
	"reviewdesk-mobile/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterDeviceInput 设备注册参数
// Permission 必须是推送子系统实际返回的结果
type RegisterDeviceInput struct {
	DeviceID   string
	DeviceName string
	PushToken  string
	Permission domain.PushPermission
	Severity   domain.Severity
}

// DeviceService 设备注册客户端
//
// 状态：Unregistered -> Registered(severity) -> Registered(severity')，
// 只有 Clear（登出时）会回到 Unregistered。没有自动重试或重新注册。
type DeviceService struct {
	api      *api.Client
	kv       store.KV
	sessions TokenSource
	platform string
	logger   *zap.Logger
	now      func() time.Time
}

func NewDeviceService(client *api.Client, kv store.KV, sessions TokenSource, platform string, logger *zap.Logger) *DeviceService {
	return &DeviceService{
		api:      client,
		kv:       kv,
		sessions: sessions,
		platform: platform,
		logger:   logger,
		now:      time.Now,
	}
}

// Register 注册设备并持久化返回的设备 id 与 secret（替换之前的注册）
func (s *DeviceService) Register(ctx context.Context, in RegisterDeviceInput) (domain.DeviceRegistration, error) {
	if !in.Severity.Valid() {
		return domain.DeviceRegistration{}, ErrInvalidSeverity
	}
	if in.Permission != domain.PushPermissionGranted {
		return domain.DeviceRegistration{}, fmt.Errorf("%w (status: %s)", ErrPushPermission, permissionLabel(in.Permission))
	}
	if strings.TrimSpace(in.PushToken) == "" {
		return domain.DeviceRegistration{}, ErrPushTokenMissing
	}
	if _, err := s.sessions.Token(ctx); err != nil {
		return domain.DeviceRegistration{}, err
	}

	deviceID := strings.TrimSpace(in.DeviceID)
	if deviceID == "" {
		id, err := s.InstallID(ctx)
		if err != nil {
			return domain.DeviceRegistration{}, err
		}
		deviceID = id
	}

	req := domain.RegisterDeviceRequest{
		DeviceID:   deviceID,
		DeviceName: in.DeviceName,
		PushToken:  in.PushToken,
		Platform:   s.platform,
		Severity:   in.Severity,
	}

	var reg domain.DeviceRegistration
	err := s.sessions.Do(ctx, func(token string) error {
		var err error
		reg, err = s.api.RegisterDevice(ctx, token, req)
		return err
	})
	if err != nil {
		return domain.DeviceRegistration{}, fmt.Errorf("device registration failed: %w", err)
	}
	if reg.DeviceID == "" || reg.DeviceSecret == "" {
		return domain.DeviceRegistration{}, errors.New("device registration failed: server returned no device credentials")
	}
	if reg.Severity == "" {
		reg.Severity = in.Severity
	}
	if reg.DeviceName == "" {
		reg.DeviceName = in.DeviceName
	}
	if reg.RegisteredAt.IsZero() {
		reg.RegisteredAt = s.now().UTC()
	}

	if err := s.save(ctx, reg); err != nil {
		return domain.DeviceRegistration{}, err
	}

	s.logger.Info("Device registered",
		zap.String("device_id", reg.DeviceID),
		zap.String("severity", string(reg.Severity)),
	)
	return reg, nil
}

// UpdateSeverity 修改通知订阅级别（设备凭证鉴权）
// 本地没有注册信息时直接返回 ErrDeviceNotRegistered，不发请求
func (s *DeviceService) UpdateSeverity(ctx context.Context, severity domain.Severity) (domain.DeviceRegistration, error) {
	reg, err := s.Current(ctx)
	if err != nil {
		return domain.DeviceRegistration{}, err
	}
	if !severity.Valid() {
		return domain.DeviceRegistration{}, ErrInvalidSeverity
	}

	updated, err := s.api.UpdateSubscription(ctx, credentials(reg), severity)
	if err != nil {
		return domain.DeviceRegistration{}, fmt.Errorf("failed to update subscription: %w", err)
	}
	reg.Severity = updated
	if err := s.saveSummary(ctx, reg); err != nil {
		return domain.DeviceRegistration{}, err
	}

	s.logger.Info("Device subscription updated",
		zap.String("device_id", reg.DeviceID),
		zap.String("severity", string(reg.Severity)),
	)
	return reg, nil
}

// Escalations 获取服务端按订阅级别过滤后的升级列表（客户端不再过滤）
func (s *DeviceService) Escalations(ctx context.Context) ([]domain.Feedback, error) {
	reg, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.api.DeviceEscalations(ctx, credentials(reg))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEscalationsUnavailable, err)
	}
	return items, nil
}

// Heartbeat 上报设备在线
func (s *DeviceService) Heartbeat(ctx context.Context) error {
	reg, err := s.Current(ctx)
	if err != nil {
		return err
	}
	if err := s.api.Heartbeat(ctx, credentials(reg)); err != nil {
		return fmt.Errorf("heartbeat failed: %w", err)
	}
	return nil
}

// Current 读取本地注册信息；id 和 secret 缺一即视为未注册
func (s *DeviceService) Current(ctx context.Context) (domain.DeviceRegistration, error) {
	id, err := s.getOptional(ctx, KeyDeviceID)
	if err != nil {
		return domain.DeviceRegistration{}, err
	}
	secret, err := s.getOptional(ctx, KeyDeviceSecret)
	if err != nil {
		return domain.DeviceRegistration{}, err
	}
	if id == "" || secret == "" {
		return domain.DeviceRegistration{}, ErrDeviceNotRegistered
	}

	reg := domain.DeviceRegistration{DeviceID: id}
	raw, err := s.getOptional(ctx, KeyDeviceRegistration)
	if err != nil {
		return domain.DeviceRegistration{}, err
	}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &reg); err != nil {
			s.logger.Warn("Ignoring corrupt device registration summary", zap.Error(err))
			reg = domain.DeviceRegistration{}
		}
	}
	reg.DeviceID = id
	reg.DeviceSecret = secret
	return reg, nil
}

// Clear 清除本地设备凭证（Registered -> Unregistered），安装 id 保留
func (s *DeviceService) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyDeviceID, KeyDeviceSecret, KeyDeviceRegistration); err != nil {
		return fmt.Errorf("failed to clear device credentials: %w", err)
	}
	return nil
}

// InstallID 本机安装 id，首次使用时生成并持久化
func (s *DeviceService) InstallID(ctx context.Context) (string, error) {
	id, err := s.getOptional(ctx, KeyInstallID)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}
	id = uuid.NewString()
	if err := s.kv.Set(ctx, KeyInstallID, id, 0); err != nil {
		return "", fmt.Errorf("failed to persist install id: %w", err)
	}
	return id, nil
}

// save 写入 secret、id、摘要；任一步失败则回滚已写入的键，
// 保证 id 和 secret 要么都存在要么都不存在
func (s *DeviceService) save(ctx context.Context, reg domain.DeviceRegistration) error {
	if err := s.Clear(ctx); err != nil {
		return err
	}

	var written []string
	rollback := func(cause error) error {
		if err := s.kv.Delete(ctx, written...); err != nil {
			s.logger.Error("Failed to roll back partial device registration", zap.Error(err))
		}
		return fmt.Errorf("failed to persist device registration: %w", cause)
	}

	if err := s.kv.Set(ctx, KeyDeviceSecret, reg.DeviceSecret, 0); err != nil {
		return rollback(err)
	}
	written = append(written, KeyDeviceSecret)
	if err := s.kv.Set(ctx, KeyDeviceID, reg.DeviceID, 0); err != nil {
		return rollback(err)
	}
	written = append(written, KeyDeviceID)
	if err := s.saveSummary(ctx, reg); err != nil {
		return rollback(err)
	}
	return nil
}

func (s *DeviceService) saveSummary(ctx context.Context, reg domain.DeviceRegistration) error {
	reg.DeviceSecret = ""
	b, err := json.Marshal(reg)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, KeyDeviceRegistration, string(b), 0)
}

func (s *DeviceService) getOptional(ctx context.Context, key string) (string, error) {
	v, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return v, nil
}

func credentials(reg domain.DeviceRegistration) api.DeviceCredentials {
	return api.DeviceCredentials{DeviceID: reg.DeviceID, DeviceSecret: reg.DeviceSecret}
}

func permissionLabel(p domain.PushPermission) string {
	if p == "" {
		return string(domain.PushPermissionUndetermined)
	}
	return string(p)
}

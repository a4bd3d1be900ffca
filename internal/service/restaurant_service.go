package service

import (
	"context"
	"fmt"

	"reviewdesk-mobile/internal/api"
	"reviewdesk-mobile/internal/domain"

	"go.uber.org/zap"
)

// RestaurantService 餐厅资料与统计
type RestaurantService struct {
	api      *api.Client
	sessions TokenSource
	logger   *zap.Logger
}

func NewRestaurantService(client *api.Client, sessions TokenSource, logger *zap.Logger) *RestaurantService {
	return &RestaurantService{api: client, sessions: sessions, logger: logger}
}

func (s *RestaurantService) Profile(ctx context.Context) (domain.Restaurant, error) {
	var r domain.Restaurant
	err := s.sessions.Do(ctx, func(token string) error {
		var err error
		r, err = s.api.Restaurant(ctx, token)
		return err
	})
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("failed to load restaurant: %w", err)
	}
	return r, nil
}

// UpdateProfile 修改设置；没有任何字段时返回 ErrNothingToUpdate，不发请求
func (s *RestaurantService) UpdateProfile(ctx context.Context, upd domain.RestaurantUpdate) (domain.Restaurant, error) {
	if upd.Empty() {
		return domain.Restaurant{}, ErrNothingToUpdate
	}
	var r domain.Restaurant
	err := s.sessions.Do(ctx, func(token string) error {
		var err error
		r, err = s.api.UpdateRestaurant(ctx, token, upd)
		return err
	})
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("failed to update restaurant: %w", err)
	}
	s.logger.Info("Restaurant settings updated", zap.String("restaurant_id", r.ID))
	return r, nil
}

func (s *RestaurantService) Stats(ctx context.Context) (domain.RestaurantStats, error) {
	var st domain.RestaurantStats
	err := s.sessions.Do(ctx, func(token string) error {
		var err error
		st, err = s.api.Stats(ctx, token)
		return err
	})
	if err != nil {
		return domain.RestaurantStats{}, fmt.Errorf("failed to load stats: %w", err)
	}
	return st, nil
}

package service

import (
	"context"
	"fmt"

	"reviewdesk-mobile/internal/api"
	"reviewdesk-mobile/internal/domain"
	"reviewdesk-mobile/internal/feedback"

	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	exportPageSize  = 100
)

// ListQuery 反馈列表查询：Page/Limit/Status 交给后端，Search 在客户端过滤
type ListQuery struct {
	Page   int
	Limit  int
	Status feedback.Status
	Search string
}

// FeedbackService 反馈列表/详情/处理
type FeedbackService struct {
	api      *api.Client
	sessions TokenSource
	logger   *zap.Logger
}

func NewFeedbackService(client *api.Client, sessions TokenSource, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{api: client, sessions: sessions, logger: logger}
}

// List 获取一页反馈，并按 Search 做客户端过滤（Total 为后端总数）
func (s *FeedbackService) List(ctx context.Context, q ListQuery) (domain.FeedbackPage, error) {
	if q.Limit <= 0 {
		q.Limit = defaultPageSize
	}
	if q.Page <= 0 {
		q.Page = 1
	}

	var page domain.FeedbackPage
	err := s.sessions.Do(ctx, func(token string) error {
		var err error
		page, err = s.api.ListFeedback(ctx, token, api.ListParams{
			Page:   q.Page,
			Limit:  q.Limit,
			Status: string(q.Status),
		})
		return err
	})
	if err != nil {
		return domain.FeedbackPage{}, fmt.Errorf("failed to load feedback: %w", err)
	}
	if q.Search != "" {
		page.Items = feedback.Filter(page.Items, feedback.Query{Search: q.Search})
	}
	return page, nil
}

// Escalated 会话维度的升级列表（不依赖设备注册）
func (s *FeedbackService) Escalated(ctx context.Context, limit int) (domain.FeedbackPage, error) {
	return s.List(ctx, ListQuery{Limit: limit, Status: feedback.StatusEscalated})
}

// All 逐页拉取全部反馈（导出使用）
func (s *FeedbackService) All(ctx context.Context, status feedback.Status) ([]domain.Feedback, error) {
	var out []domain.Feedback
	for pageNo := 1; ; pageNo++ {
		page, err := s.List(ctx, ListQuery{Page: pageNo, Limit: exportPageSize, Status: status})
		if err != nil {
			return nil, err
		}
		out = append(out, page.Items...)
		if len(page.Items) == 0 || len(out) >= page.Total {
			break
		}
	}
	s.logger.Debug("Loaded all feedback", zap.Int("count", len(out)))
	return out, nil
}

func (s *FeedbackService) Get(ctx context.Context, id string) (domain.Feedback, error) {
	var f domain.Feedback
	err := s.sessions.Do(ctx, func(token string) error {
		var err error
		f, err = s.api.Feedback(ctx, token, id)
		return err
	})
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("failed to load feedback %s: %w", id, err)
	}
	return f, nil
}

// Resolve 标记为已处理
func (s *FeedbackService) Resolve(ctx context.Context, id string) (domain.Feedback, error) {
	var f domain.Feedback
	err := s.sessions.Do(ctx, func(token string) error {
		var err error
		f, err = s.api.ResolveFeedback(ctx, token, id)
		return err
	})
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("failed to resolve feedback %s: %w", id, err)
	}
	s.logger.Info("Feedback resolved", zap.String("feedback_id", id))
	return f, nil
}

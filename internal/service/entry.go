package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chuyu5762/guestbook-backend/internal/config"
	"github.com/chuyu5762/guestbook-backend/internal/model"
	"github.com/chuyu5762/guestbook-backend/internal/repository"
)

// 提交相关错误
// 错误文本直接作为对外响应消息返回，因此使用英文
var (
	ErrFieldsRequired  = errors.New("Name and message are required")
	ErrContentRejected = errors.New("Your message contains prohibited content")
)

// SubmitInput 留言提交输入
type SubmitInput struct {
	Name      string
	Email     string
	Website   string
	Message   string
	IPAddress string
}

// EntryService 留言服务接口
type EntryService interface {
	// Submit 处理一次留言提交：清洗、校验、过滤、落库
	Submit(ctx context.Context, input *SubmitInput) (*model.Entry, error)
	// ListPublic 返回公开投影的已审核留言，存储故障时返回空列表
	ListPublic(ctx context.Context) []model.PublicEntry
	// ListAll 返回全部留言（管理投影），错误向管理边界传播
	ListAll(ctx context.Context) ([]*model.Entry, error)
	// Moderate 对单条留言执行一次审核动作，id 不存在时为空操作
	Moderate(ctx context.Context, id uint, action Action) error
	// CountPending 待审核留言数量
	CountPending(ctx context.Context) (int64, error)
}

type entryService struct {
	repo  repository.EntryRepository
	cache *ListingCache
	cfg   *config.GuestbookConfig
}

// NewEntryService 创建留言服务
// cache 可以为 nil，此时每次列表请求直读数据库
func NewEntryService(repo repository.EntryRepository, cache *ListingCache, cfg *config.GuestbookConfig) EntryService {
	return &entryService{
		repo:  repo,
		cache: cache,
		cfg:   cfg,
	}
}

// Submit 处理一次留言提交
// 处理顺序是契约：清洗 -> 必填校验 -> 违禁词过滤 -> 确定初始状态 -> 落库
func (s *entryService) Submit(ctx context.Context, input *SubmitInput) (*model.Entry, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	website := strings.TrimSpace(input.Website)
	message := strings.TrimSpace(input.Message)

	if name == "" || message == "" {
		return nil, ErrFieldsRequired
	}

	if IsRejected(message, s.cfg.BannedWords) {
		return nil, ErrContentRejected
	}

	entry := &model.Entry{
		Name:      name,
		Email:     email,
		Website:   website,
		Message:   message,
		Approved:  InitialApprovalState(s.cfg.ModerationRequired),
		IPAddress: input.IPAddress,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("保存留言失败: %w", err)
	}

	// 免审核的留言立即可见，需要让公开列表缓存失效
	if entry.Approved {
		s.cache.Invalidate(ctx)
	}

	return entry, nil
}

// ListPublic 返回公开投影的已审核留言
// 读失败降级为空列表：公开页面的渲染永远不应因存储故障报错
func (s *entryService) ListPublic(ctx context.Context) []model.PublicEntry {
	if cached, ok := s.cache.Get(ctx); ok {
		return cached
	}

	entries, err := s.repo.List(ctx, true, s.cfg.EntriesLimit)
	if err != nil {
		return []model.PublicEntry{}
	}

	public := make([]model.PublicEntry, 0, len(entries))
	for _, entry := range entries {
		public = append(public, entry.Public())
	}

	s.cache.Set(ctx, public)
	return public
}

// ListAll 返回全部留言（管理投影），不限制条数
func (s *entryService) ListAll(ctx context.Context) ([]*model.Entry, error) {
	return s.repo.List(ctx, false, 0)
}

// Moderate 对单条留言执行一次审核动作
func (s *entryService) Moderate(ctx context.Context, id uint, action Action) error {
	var err error
	switch action {
	case ActionApprove:
		err = s.repo.SetApproved(ctx, id, true)
	case ActionDelete:
		err = s.repo.Delete(ctx, id)
	default:
		err = s.repo.SetApproved(ctx, id, false)
	}
	if err != nil {
		return fmt.Errorf("执行审核动作失败: %w", err)
	}

	s.cache.Invalidate(ctx)
	return nil
}

// CountPending 待审核留言数量
func (s *entryService) CountPending(ctx context.Context) (int64, error) {
	total, err := s.repo.Count(ctx, false)
	if err != nil {
		return 0, err
	}
	approved, err := s.repo.Count(ctx, true)
	if err != nil {
		return 0, err
	}
	return total - approved, nil
}

package services

import (
	"context"
	"errors"
	"strings"

	"github.com/copyforge/apiserver/internal/events"
	"github.com/copyforge/apiserver/internal/generator"
	"github.com/copyforge/apiserver/types"
)

// ErrInvalidContentStatus is returned for an unknown publication status.
var ErrInvalidContentStatus = errors.New("invalid content status")

// ContentRepository defines persistence operations for content items.
type ContentRepository interface {
	Create(ctx context.Context, item types.ContentItem) (types.ContentItem, error)
	GetByID(ctx context.Context, id string) (types.ContentItem, error)
	ListByUser(ctx context.Context, userID string) ([]types.ContentItem, error)
	ListAll(ctx context.Context) ([]types.ContentItem, error)
}

// CreateContentParams are the inputs for content creation.
type CreateContentParams struct {
	Type    string
	Title   string
	Content string
	Status  types.ContentStatus
}

// GenerateContentParams describe a generation request; the body is produced
// by the generator and then stored through Create.
type GenerateContentParams struct {
	Type     string
	Title    string
	Prompt   string
	Tone     string
	Length   string
	Keywords []string
	Status   types.ContentStatus
}

// ContentService encapsulates content use-cases and quota accounting.
type ContentService struct {
	repo      ContentRepository
	accounts  AccountRepository
	gen       generator.Generator
	publisher *events.Publisher
}

func NewContentService(repo ContentRepository, accounts AccountRepository, gen generator.Generator, publisher *events.Publisher) *ContentService {
	return &ContentService{repo: repo, accounts: accounts, gen: gen, publisher: publisher}
}

// Create stores a content item for the account. The quota check and the
// usage increment are one atomic repository operation; there is no path to
// content creation that skips the check.
func (s *ContentService) Create(ctx context.Context, userID string, params CreateContentParams) (types.ContentItem, error) {
	status := params.Status
	if status == "" {
		status = types.ContentStatusDraft
	}
	if !types.ValidContentStatus(status) {
		return types.ContentItem{}, ErrInvalidContentStatus
	}

	if _, err := s.accounts.ReserveGeneration(ctx, userID); err != nil {
		return types.ContentItem{}, err
	}

	item, err := s.repo.Create(ctx, types.ContentItem{
		UserID:  userID,
		Type:    strings.TrimSpace(params.Type),
		Title:   strings.TrimSpace(params.Title),
		Content: params.Content,
		Status:  status,
	})
	if err != nil {
		// Hand the reserved generation back; the item was never stored.
		_ = s.accounts.ReleaseGeneration(ctx, userID)
		return types.ContentItem{}, err
	}

	s.publisher.Emit(ctx, events.ChannelContent, events.TypeContentCreated, item)
	return item, nil
}

// Generate produces the body text via the configured generator, then runs
// the quota-enforced Create.
func (s *ContentService) Generate(ctx context.Context, userID string, params GenerateContentParams) (types.ContentItem, error) {
	body, err := s.gen.Generate(ctx, generator.Request{
		Prompt:   params.Prompt,
		Type:     params.Type,
		Tone:     params.Tone,
		Length:   params.Length,
		Keywords: params.Keywords,
	})
	if err != nil {
		return types.ContentItem{}, err
	}

	title := strings.TrimSpace(params.Title)
	if title == "" {
		title = strings.TrimSpace(params.Prompt)
	}

	return s.Create(ctx, userID, CreateContentParams{
		Type:    params.Type,
		Title:   title,
		Content: body,
		Status:  params.Status,
	})
}

// ListByOwner returns the account's content items.
func (s *ContentService) ListByOwner(ctx context.Context, userID string) ([]types.ContentItem, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListAll returns every content item. Administrative.
func (s *ContentService) ListAll(ctx context.Context) ([]types.ContentItem, error) {
	return s.repo.ListAll(ctx)
}

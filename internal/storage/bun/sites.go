package bunrepo

import (
	"context"
	"strings"

	"github.com/goliatone/go-navigation/pkg/domain"
	"github.com/goliatone/go-navigation/pkg/interfaces/store"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SiteRepository persists the site registry with Bun.
type SiteRepository struct {
	base baseRepository[domain.Site]
}

var _ store.SiteRepository = (*SiteRepository)(nil)

func NewSiteRepository(db *bun.DB) *SiteRepository {
	handlers := repository.ModelHandlers[*domain.Site]{
		NewRecord:          func() *domain.Site { return &domain.Site{} },
		GetID:              func(s *domain.Site) uuid.UUID { return s.ID },
		SetID:              func(s *domain.Site, id uuid.UUID) { s.ID = id },
		GetIdentifier:      func() string { return "site_key" },
		GetIdentifierValue: func(s *domain.Site) string { return s.SiteKey },
	}
	return &SiteRepository{
		base: newBaseRepository[domain.Site](db, handlers, func(s *domain.Site) *domain.RecordMeta { return &s.RecordMeta }),
	}
}

func (r *SiteRepository) Create(ctx context.Context, site *domain.Site) error {
	return r.base.create(ctx, site)
}

func (r *SiteRepository) Update(ctx context.Context, site *domain.Site) error {
	return r.base.update(ctx, site)
}

func (r *SiteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Site, error) {
	return r.base.getByID(ctx, id, false)
}

func (r *SiteRepository) List(ctx context.Context, opts store.ListOptions) (store.ListResult[domain.Site], error) {
	return r.base.list(ctx, opts)
}

func (r *SiteRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.base.softDelete(ctx, id)
}

func (r *SiteRepository) GetByKey(ctx context.Context, siteKey string) (*domain.Site, error) {
	record, err := r.base.repo.Get(ctx, withoutDeleted(), func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("site_key = ?", siteKey)
	})
	if err != nil {
		return nil, mapError(err)
	}
	return record, nil
}

// ListByHost matches site URLs by host substring; exact host filtering
// happens in the sites service, which re-parses the stored URL.
func (r *SiteRepository) ListByHost(ctx context.Context, host string) ([]domain.Site, error) {
	pattern := "%" + strings.ToLower(host) + "%"
	records, _, err := r.base.repo.List(ctx, withoutDeleted(), func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("lower(url) LIKE ?", pattern).Order("created_at ASC")
	})
	if err != nil {
		return nil, mapError(err)
	}
	items := make([]domain.Site, len(records))
	for i, rec := range records {
		items[i] = *rec
	}
	return items, nil
}

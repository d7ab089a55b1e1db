package memory

import (
	"context"
	"net/url"
	"strings"

	"github.com/goliatone/go-navigation/pkg/domain"
	"github.com/goliatone/go-navigation/pkg/interfaces/store"
	"github.com/google/uuid"
)

// SiteRepository keeps the site registry in process memory.
type SiteRepository struct {
	base baseMemoryRepo[domain.Site]
}

var _ store.SiteRepository = (*SiteRepository)(nil)

func NewSiteRepository() *SiteRepository {
	return &SiteRepository{
		base: newBaseMemoryRepo(func(s *domain.Site) *domain.RecordMeta { return &s.RecordMeta }),
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
	matches := r.base.find(false, func(s *domain.Site) bool { return s.SiteKey == siteKey })
	if len(matches) == 0 {
		return nil, store.ErrNotFound
	}
	record := matches[0]
	return &record, nil
}

func (r *SiteRepository) ListByHost(ctx context.Context, host string) ([]domain.Site, error) {
	want := strings.ToLower(host)
	return r.base.find(false, func(s *domain.Site) bool {
		return siteHost(s.URL) == want
	}), nil
}

func siteHost(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return strings.ToLower(raw)
	}
	return strings.ToLower(parsed.Host)
}

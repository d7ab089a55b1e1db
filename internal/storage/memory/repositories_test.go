package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-navigation/pkg/domain"
	"github.com/goliatone/go-navigation/pkg/interfaces/store"
	"github.com/google/uuid"
)

func TestSiteRepositoryCRUD(t *testing.T) {
	repo := NewSiteRepository()
	ctx := context.Background()

	site := &domain.Site{SiteKey: "s1", Name: "School", URL: "https://school.example.edu"}
	if err := repo.Create(ctx, site); err != nil {
		t.Fatalf("create: %v", err)
	}
	if site.ID == uuid.Nil {
		t.Fatal("expected generated ID")
	}
	if site.CreatedAt.IsZero() || site.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps set")
	}

	fetched, err := repo.GetByID(ctx, site.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if fetched.SiteKey != "s1" {
		t.Fatalf("expected s1, got %s", fetched.SiteKey)
	}

	fetched.Name = "Renamed"
	if err := repo.Update(ctx, fetched); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, err := repo.GetByKey(ctx, "s1")
	if err != nil {
		t.Fatalf("get by key: %v", err)
	}
	if again.Name != "Renamed" {
		t.Fatalf("expected update to persist, got %s", again.Name)
	}
}

func TestSiteRepositoryGetByKeyMissing(t *testing.T) {
	repo := NewSiteRepository()
	if _, err := repo.GetByKey(context.Background(), "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSiteRepositoryUpdateMissing(t *testing.T) {
	repo := NewSiteRepository()
	site := &domain.Site{SiteKey: "s1"}
	site.EnsureID()
	if err := repo.Update(context.Background(), site); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSiteRepositoryListByHost(t *testing.T) {
	repo := NewSiteRepository()
	ctx := context.Background()

	seeds := []*domain.Site{
		{SiteKey: "s1", URL: "https://school.example.edu"},
		{SiteKey: "s2", URL: "https://School.Example.edu/subdir"},
		{SiteKey: "s3", URL: "https://other.example.edu"},
	}
	for _, seed := range seeds {
		if err := repo.Create(ctx, seed); err != nil {
			t.Fatalf("create %s: %v", seed.SiteKey, err)
		}
	}

	matches, err := repo.ListByHost(ctx, "school.example.edu")
	if err != nil {
		t.Fatalf("list by host: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].SiteKey != "s1" || matches[1].SiteKey != "s2" {
		t.Fatalf("expected creation order, got %#v", matches)
	}
}

func TestSiteRepositorySoftDelete(t *testing.T) {
	repo := NewSiteRepository()
	ctx := context.Background()

	site := &domain.Site{SiteKey: "s1", URL: "https://school.example.edu"}
	if err := repo.Create(ctx, site); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.SoftDelete(ctx, site.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	if _, err := repo.GetByID(ctx, site.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected deleted record hidden, got %v", err)
	}
	if _, err := repo.GetByKey(ctx, "s1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected deleted record hidden from key lookup, got %v", err)
	}

	result, err := repo.List(ctx, store.ListOptions{IncludeSoftDeleted: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("expected deleted record visible with IncludeSoftDeleted, got %d", result.Total)
	}
}

func TestSiteRepositoryListPagination(t *testing.T) {
	repo := NewSiteRepository()
	ctx := context.Background()

	keys := []string{"s1", "s2", "s3", "s4"}
	for _, key := range keys {
		if err := repo.Create(ctx, &domain.Site{SiteKey: key, URL: "https://school.example.edu"}); err != nil {
			t.Fatalf("create %s: %v", key, err)
		}
	}

	result, err := repo.List(ctx, store.ListOptions{Offset: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 4 {
		t.Fatalf("expected total 4, got %d", result.Total)
	}
	if len(result.Items) != 2 || result.Items[0].SiteKey != "s2" || result.Items[1].SiteKey != "s3" {
		t.Fatalf("unexpected page: %#v", result.Items)
	}
}

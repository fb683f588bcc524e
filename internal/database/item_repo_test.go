package database

import (
	"errors"
	"testing"

	"github.com/frabrice/insightium/internal/models"
)

func TestItemRepository_UpsertAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewItemRepository(db)

	item := models.NewMediaItem(models.KindVideo, "Test Video", "A test video", "Tech Trends")
	item.Duration = "4:05"
	item.ViewCount = "1K"
	item.Rating = 4.5

	if err := repo.UpsertItems([]models.MediaItem{*item}); err != nil {
		t.Fatalf("Failed to upsert item: %v", err)
	}

	retrieved, err := repo.GetItemByID(item.ID)
	if err != nil {
		t.Fatalf("Failed to retrieve item: %v", err)
	}

	if retrieved.Title != item.Title {
		t.Errorf("Expected title %s, got %s", item.Title, retrieved.Title)
	}
	if retrieved.Kind != models.KindVideo {
		t.Errorf("Expected kind video, got %s", retrieved.Kind)
	}
	if retrieved.Duration != "4:05" {
		t.Errorf("Expected duration 4:05, got %s", retrieved.Duration)
	}
	if retrieved.Rating != 4.5 {
		t.Errorf("Expected rating 4.5, got %f", retrieved.Rating)
	}
}

func TestItemRepository_UpsertRefreshesExisting(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewItemRepository(db)

	item := models.NewMediaItem(models.KindPodcast, "Original Title", "", "Mind Health")
	if err := repo.UpsertItems([]models.MediaItem{*item}); err != nil {
		t.Fatalf("Failed to upsert item: %v", err)
	}

	item.Title = "Updated Title"
	item.ViewCount = "2K"
	if err := repo.UpsertItems([]models.MediaItem{*item}); err != nil {
		t.Fatalf("Failed to re-upsert item: %v", err)
	}

	retrieved, err := repo.GetItemByID(item.ID)
	if err != nil {
		t.Fatalf("Failed to retrieve item: %v", err)
	}
	if retrieved.Title != "Updated Title" {
		t.Errorf("Expected updated title, got %s", retrieved.Title)
	}
	if retrieved.ViewCount != "2K" {
		t.Errorf("Expected view count 2K, got %s", retrieved.ViewCount)
	}

	items, err := repo.ListItemsByKind(models.KindPodcast)
	if err != nil {
		t.Fatalf("Failed to list items: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("Expected 1 item after refresh, got %d", len(items))
	}
}

func TestItemRepository_GetItemByID_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewItemRepository(db)

	_, err := repo.GetItemByID("00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestItemRepository_ListItemsByKind(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewItemRepository(db)

	video := models.NewMediaItem(models.KindVideo, "A Video", "", "Tech Trends")
	first := models.NewMediaItem(models.KindArticle, "First Article", "", "Research World")
	second := models.NewMediaItem(models.KindArticle, "Second Article", "", "Tech Trends")

	if err := repo.UpsertItems([]models.MediaItem{*video, *first, *second}); err != nil {
		t.Fatalf("Failed to upsert items: %v", err)
	}

	articles, err := repo.ListItemsByKind(models.KindArticle)
	if err != nil {
		t.Fatalf("Failed to list articles: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(articles))
	}
	if articles[0].ID != first.ID {
		t.Errorf("Expected insertion order preserved, got %s first", articles[0].Title)
	}
}

func TestItemRepository_Categories(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewItemRepository(db)

	items := []models.MediaItem{
		*models.NewMediaItem(models.KindVideo, "One", "", "Tech Trends"),
		*models.NewMediaItem(models.KindVideo, "Two", "", "Mind Health"),
		*models.NewMediaItem(models.KindVideo, "Three", "", "Tech Trends"),
		*models.NewMediaItem(models.KindArticle, "Other Kind", "", "Research World"),
	}
	if err := repo.UpsertItems(items); err != nil {
		t.Fatalf("Failed to upsert items: %v", err)
	}

	categories, err := repo.Categories(models.KindVideo)
	if err != nil {
		t.Fatalf("Failed to list categories: %v", err)
	}

	if len(categories) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(categories))
	}
	if categories[0] != "Mind Health" || categories[1] != "Tech Trends" {
		t.Errorf("Expected sorted distinct categories, got %v", categories)
	}
}

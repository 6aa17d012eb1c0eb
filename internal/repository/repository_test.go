package repository

import (
	"fmt"
	"testing"
	"time"

	"plume/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createTestGroup(t *testing.T, db *gorm.DB, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: "Group " + slug, Slug: slug}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("create group %s: %v", slug, err)
	}
	return group
}

// createTestPosts inserts count posts for the author with ascending
// created_at, so posts[count-1] is the newest.
func createTestPosts(t *testing.T, db *gorm.DB, author *models.User, group *models.Group, count int) []*models.Post {
	t.Helper()
	base := time.Now().Add(-time.Duration(count) * time.Hour)
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		post := &models.Post{
			Text:      fmt.Sprintf("post %d by %s", i, author.Username),
			AuthorID:  author.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if group != nil {
			post.GroupID = &group.ID
		}
		if err := db.Create(post).Error; err != nil {
			t.Fatalf("create post %d: %v", i, err)
		}
		posts = append(posts, post)
	}
	return posts
}

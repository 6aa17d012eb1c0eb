// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"plume/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// builtinGroups are always present after seeding so group feeds have
// something to show.
var builtinGroups = []models.Group{
	{Title: "Technology", Slug: "tech", Description: "Software, hardware, and everything between."},
	{Title: "Books", Slug: "books", Description: "What are you reading?"},
	{Title: "Travel", Slug: "travel", Description: "Trip reports and route advice."},
	{Title: "Music", Slug: "music", Description: "Releases, shows, and gear."},
	{Title: "Food", Slug: "food", Description: "Recipes and restaurant finds."},
}

// Seeder populates the database with generated content.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded content, child tables first.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"comments", "follows", "posts", "groups", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// Groups inserts the built-in groups, skipping slugs that already exist.
func Groups(db *gorm.DB) ([]models.Group, error) {
	groups := make([]models.Group, len(builtinGroups))
	copy(groups, builtinGroups)
	for i := range groups {
		err := db.Where(models.Group{Slug: groups[i].Slug}).FirstOrCreate(&groups[i]).Error
		if err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// Seed populates the database with test data
func (s *Seeder) Seed(opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	groups, err := Groups(s.db)
	if err != nil {
		return fmt.Errorf("failed to create groups: %w", err)
	}
	log.Printf("✓ %d groups available", len(groups))

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("✓ %d test users created", len(users))

	posts, err := s.factory.CreatePosts(users, groups, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	comments, err := s.factory.CreateComments(users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", comments)

	follows, err := s.factory.CreateFollows(users)
	if err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	log.Printf("✓ %d follow edges created", follows)

	return nil
}

// SeedPassword is the password every generated user is created with.
const SeedPassword = "password123"

func hashedSeedPassword() string {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	return string(hashed)
}

// spreadCreatedAt returns a timestamp up to maxDays in the past so feeds
// look lived-in rather than created in one burst.
func spreadCreatedAt(r *rand.Rand, maxDays int) time.Time {
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	minsBack := r.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

func init() {
	gofakeit.Seed(time.Now().UnixNano())
}

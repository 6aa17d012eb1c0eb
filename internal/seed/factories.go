package seed

import (
	"fmt"
	"math/rand"
	"time"

	"plume/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: hashedSeedPassword(),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs an unsaved post with a realistic created_at spread.
// Roughly two thirds of posts land in a group.
func (f *Factory) BuildPost(author *models.User, groups []models.Group) *models.Post {
	post := &models.Post{
		Text:      gofakeit.Paragraph(1, 3, 8, "\n"),
		AuthorID:  author.ID,
		CreatedAt: spreadCreatedAt(f.rng, 90),
	}
	if len(groups) > 0 && f.rng.Intn(3) < 2 {
		g := groups[f.rng.Intn(len(groups))]
		post.GroupID = &g.ID
	}
	return post
}

// CreatePosts persists count posts spread across the given authors.
func (f *Factory) CreatePosts(users []*models.User, groups []models.Group, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		posts = append(posts, f.BuildPost(users[f.rng.Intn(len(users))], groups))
	}
	if err := f.db.Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CreateComments adds zero to four comments per post and returns the total.
func (f *Factory) CreateComments(users []*models.User, posts []*models.Post) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	total := 0
	for _, post := range posts {
		for i := f.rng.Intn(5); i > 0; i-- {
			comment := &models.Comment{
				PostID:   post.ID,
				AuthorID: users[f.rng.Intn(len(users))].ID,
				Text:     gofakeit.Sentence(f.rng.Intn(15) + 3),
			}
			if err := f.db.Create(comment).Error; err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}

// CreateFollows wires each user to a handful of random authors. Self-edges
// are skipped and duplicates are absorbed by the unique constraint.
func (f *Factory) CreateFollows(users []*models.User) (int, error) {
	total := 0
	for _, user := range users {
		for i := f.rng.Intn(6); i > 0; i-- {
			author := users[f.rng.Intn(len(users))]
			if author.ID == user.ID {
				continue
			}
			follow := &models.Follow{UserID: user.ID, AuthorID: author.ID}
			res := f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(follow)
			if res.Error != nil {
				return total, res.Error
			}
			total += int(res.RowsAffected)
		}
	}
	return total, nil
}

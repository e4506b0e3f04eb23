package seed

import (
	"fmt"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with demo users, posts and comment threads.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) (*Seeder, error) {
	factory, err := NewFactory(db)
	if err != nil {
		return nil, err
	}
	return &Seeder{db: db, factory: factory}, nil
}

// ClearAll removes all seeded data. Comments go first so the post and user
// rows they reference can be deleted on databases without cascades applied.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{&models.Comment{}, &models.Post{}, &models.User{}} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// Run seeds numUsers accounts and numPosts posts with comment threads.
// Roughly half the posts get comments and a third of those get replies,
// so reply counts and pagination have something to chew on locally.
func (s *Seeder) Run(numUsers, numPosts int) error {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		users = append(users, s.factory.BuildUser())
	}
	if err := s.factory.CreateUsersBatch(users); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		owner := users[s.factory.rand.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(owner, 90))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}

	var comments int
	for _, post := range posts {
		if s.factory.rand.Intn(2) == 0 {
			continue
		}
		for i := 0; i < s.factory.rand.Intn(5)+1; i++ {
			author := users[s.factory.rand.Intn(len(users))]
			comment := s.factory.BuildComment(author, post)
			if err := s.db.Create(comment).Error; err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
			comments++

			if s.factory.rand.Intn(3) == 0 {
				for j := 0; j < s.factory.rand.Intn(3)+1; j++ {
					replier := users[s.factory.rand.Intn(len(users))]
					if err := s.db.Create(s.factory.BuildReply(replier, comment)).Error; err != nil {
						return fmt.Errorf("seed reply: %w", err)
					}
					comments++
				}
			}
		}
	}

	middleware.Logger.Info("seeding complete",
		"users", len(users), "posts", len(posts), "comments", comments)
	return nil
}

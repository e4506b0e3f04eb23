// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the plaintext password every seeded account uses, so
// seeded users can be logged in from a local client.
const DemoPassword = "inkwell123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
	// hash is computed once; bcrypt per user makes large seeds crawl.
	hash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) (*Factory, error) {
	gofakeit.Seed(time.Now().UnixNano())
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		hash: string(hash),
	}, nil
}

// BuildUser constructs an unpersisted user with realistic fake data.
func (f *Factory) BuildUser() *models.User {
	return &models.User{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Username:  uuid.New().String(),
		Email:     gofakeit.Email(),
		Address:   gofakeit.Address().Address,
		Password:  f.hash,
	}
}

// BuildPost constructs an unpersisted post owned by user, with a creation
// time spread over the past maxDays days so listings look lived-in.
func (f *Factory) BuildPost(user *models.User, maxDays int) *models.Post {
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rand.Intn(maxDays*24*60)) * time.Minute
	return &models.Post{
		UserID:      user.ID,
		Title:       gofakeit.Sentence(5),
		Description: gofakeit.Paragraph(1, 3, 5, "\n"),
		Publish:     f.rand.Intn(4) > 0,
		CreatedAt:   time.Now().Add(-back),
	}
}

// BuildComment constructs an unpersisted post-level comment.
func (f *Factory) BuildComment(user *models.User, post *models.Post) *models.Comment {
	return &models.Comment{
		PostID: &post.ID,
		UserID: &user.ID,
		Body:   gofakeit.Sentence(f.rand.Intn(12) + 3),
	}
}

// BuildReply constructs an unpersisted reply to parent.
func (f *Factory) BuildReply(user *models.User, parent *models.Comment) *models.Comment {
	return &models.Comment{
		ParentID: &parent.ID,
		UserID:   &user.ID,
		Body:     gofakeit.Sentence(f.rand.Intn(10) + 2),
	}
}

// CreateUsersBatch persists users in one insert.
func (f *Factory) CreateUsersBatch(users []*models.User) error {
	return f.db.Create(&users).Error
}

// CreatePostsBatch persists posts in one insert.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	return f.db.Create(&posts).Error
}

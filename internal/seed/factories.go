package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"echos/internal/middleware"
	"echos/internal/models"
	"echos/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory generates fake demo content through the repository layer so every
// invariant the store enforces also holds for seeded data.
type Factory struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	tags     repository.TagRepository
	comments repository.CommentRepository
	opts     Options
}

// NewFactory returns a Factory over the given database.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		users:    repository.NewUserRepository(db),
		posts:    repository.NewPostRepository(db),
		tags:     repository.NewTagRepository(db),
		comments: repository.NewCommentRepository(db),
		opts:     opts,
	}
}

// CreateUser creates a fake member account.
func (f *Factory) CreateUser(ctx context.Context) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(f.opts.Password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    fmt.Sprintf("%s%d@example.com", gofakeit.Username(), gofakeit.Number(100, 999)),
		Password: string(hash),
		Role:     models.RoleMember,
	}
	if err := f.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost creates a fake post by the given author, tagged with up to two
// of the given tags.
func (f *Factory) CreatePost(ctx context.Context, author *models.User, tags []models.Tag) (*models.Post, error) {
	post := &models.Post{
		Title:    gofakeit.Sentence(5),
		Content:  gofakeit.Paragraph(1, 3, 5, "\n"),
		AuthorID: author.ID,
	}

	var tagIDs []uint
	if len(tags) > 0 {
		for _, i := range rand.Perm(len(tags))[:rand.Intn(min(3, len(tags)+1))] {
			tagIDs = append(tagIDs, tags[i].ID)
		}
	}

	if err := f.posts.Create(ctx, post, tagIDs); err != nil {
		return nil, err
	}
	return post, nil
}

// Run populates the database with demo users, posts, likes, and comments.
func (f *Factory) Run(ctx context.Context) error {
	tags, err := f.tags.List(ctx)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, f.opts.NumUsers)
	for i := 0; i < f.opts.NumUsers; i++ {
		user, err := f.CreateUser(ctx)
		if err != nil {
			return fmt.Errorf("seeding user: %w", err)
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return nil
	}

	for i := 0; i < f.opts.NumPosts; i++ {
		author := users[rand.Intn(len(users))]
		post, err := f.CreatePost(ctx, author, tags)
		if err != nil {
			return fmt.Errorf("seeding post: %w", err)
		}

		for _, user := range users {
			if rand.Intn(3) == 0 {
				if _, err := f.posts.ToggleLike(ctx, post.ID, user.ID); err != nil {
					return fmt.Errorf("seeding like: %w", err)
				}
			}
			if rand.Intn(4) == 0 {
				comment := &models.Comment{
					PostID:   post.ID,
					AuthorID: user.ID,
					Content:  gofakeit.Sentence(8),
				}
				if err := f.comments.Create(ctx, comment); err != nil {
					return fmt.Errorf("seeding comment: %w", err)
				}
			}
		}
	}

	middleware.Logger.Info("demo data seeded",
		"users", len(users), "posts", f.opts.NumPosts)
	return nil
}

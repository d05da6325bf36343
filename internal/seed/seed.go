// Package seed fills a database with fake users, posts and interactions.
package seed

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/anonto42/mediashare/backend/internal/models"
	"github.com/anonto42/mediashare/backend/internal/repositories"
	"github.com/anonto42/mediashare/backend/internal/services"
)

// DefaultPassword is the password of every seeded account.
const DefaultPassword = "password123"

type Options struct {
	Users int
	Posts int
	// Seed makes runs reproducible. Zero picks a random seed.
	Seed int64
}

type Summary struct {
	Users    int `json:"users"`
	Posts    int `json:"posts"`
	Follows  int `json:"follows"`
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}

// Run inserts opts.Users users and opts.Posts text posts, then has users
// follow, like and comment on each other through the regular services so
// counters and notifications stay consistent.
func Run(ctx context.Context, db *gorm.DB, opts Options) (*Summary, error) {
	if opts.Users < 2 {
		return nil, fmt.Errorf("need at least 2 users, got %d", opts.Users)
	}
	if opts.Posts < 0 {
		return nil, fmt.Errorf("posts must not be negative")
	}

	faker := newFaker(opts.Seed)

	users := repositories.NewPostgresUserRepository(db)
	contents := repositories.NewPostgresContentRepository(db)
	counters := repositories.NewPostgresCounterStore(db)
	notifications := services.NewNotificationService(repositories.NewPostgresNotificationRepository(db), nil)
	social := services.NewSocialService(repositories.NewPostgresFollowRepository(db), users, notifications)
	interactions := services.NewInteractionService(counters, contents, repositories.NewPostgresCommentRepository(db), notifications)
	content := services.NewContentService(contents, counters, nil)

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	sum := &Summary{}
	ids := make([]uint, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		username := strings.ToLower(fmt.Sprintf("%s%d", faker.Username(), i))
		u := &models.User{
			Username:     username,
			DisplayName:  faker.Name(),
			Email:        username + "@example.com",
			Bio:          faker.Sentence(8),
			PasswordHash: string(hash),
		}
		if err := users.CreateUser(ctx, u); err != nil {
			return sum, fmt.Errorf("create user %s: %w", username, err)
		}
		ids = append(ids, u.ID)
		sum.Users++
	}

	for i, follower := range ids {
		for _, j := range pick(faker, len(ids), i, 3) {
			following, err := social.ToggleFollow(ctx, follower, ids[j])
			if err != nil {
				return sum, fmt.Errorf("follow: %w", err)
			}
			if following {
				sum.Follows++
			}
		}
	}

	for i := 0; i < opts.Posts; i++ {
		author := ids[faker.Number(0, len(ids)-1)]
		post, err := content.Create(ctx, services.CreateContentInput{
			AuthorID:    author,
			Kind:        models.KindText,
			Title:       strings.TrimSuffix(faker.Sentence(6), "."),
			Description: faker.Paragraph(1, 3, 12, " "),
		})
		if err != nil {
			return sum, fmt.Errorf("create post: %w", err)
		}
		sum.Posts++

		for _, j := range pick(faker, len(ids), -1, faker.Number(0, 4)) {
			if _, err := interactions.ToggleLike(ctx, post.ID, ids[j], services.ActionLike); err != nil {
				return sum, fmt.Errorf("like: %w", err)
			}
			sum.Likes++
		}
		for n := faker.Number(0, 2); n > 0; n-- {
			commenter := ids[faker.Number(0, len(ids)-1)]
			if _, err := interactions.CreateComment(ctx, post.ID, commenter, faker.Sentence(10)); err != nil {
				return sum, fmt.Errorf("comment: %w", err)
			}
			sum.Comments++
		}
	}

	log.Printf("Seeded %d users, %d posts, %d follows, %d likes, %d comments.",
		sum.Users, sum.Posts, sum.Follows, sum.Likes, sum.Comments)
	return sum, nil
}

// pick returns up to n distinct indexes in [0,total) other than skip.
func pick(faker *gofakeit.Faker, total, skip, n int) []int {
	all := make([]int, total)
	for i := range all {
		all[i] = i
	}
	faker.ShuffleInts(all)

	out := make([]int, 0, n)
	for _, idx := range all {
		if len(out) == n {
			break
		}
		if idx != skip {
			out = append(out, idx)
		}
	}
	return out
}

func newFaker(seed int64) *gofakeit.Faker { return gofakeit.New(seed) }

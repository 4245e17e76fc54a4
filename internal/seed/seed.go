// Package seed provides database seeding utilities for local development.
package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"linguaspace/internal/middleware"
	"linguaspace/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers int
	NumPosts int
	Clean    bool
}

// Every seeded account uses this password so local logins are easy.
const seedPassword = "password123"

// Run populates the database with fake users and posts. It is only ever
// invoked explicitly via cmd/seed, never at server startup.
func Run(db *gorm.DB, opts Options) error {
	if opts.Clean {
		if err := db.Exec("DELETE FROM posts").Error; err != nil {
			return fmt.Errorf("clean posts: %w", err)
		}
		if err := db.Exec("DELETE FROM users").Error; err != nil {
			return fmt.Errorf("clean users: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	users := make([]models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		email := strings.ToLower(fmt.Sprintf("%s.%s%d@%s",
			gofakeit.FirstName(), gofakeit.LastName(), i, gofakeit.DomainName()))
		user := models.User{
			Email:        email,
			PasswordHash: string(hash),
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("seed user %q: %w", email, err)
		}
		users = append(users, user)
	}

	if len(users) == 0 && opts.NumPosts > 0 {
		return fmt.Errorf("cannot seed posts without users")
	}

	for i := 0; i < opts.NumPosts; i++ {
		author := users[rand.Intn(len(users))]
		post := models.Post{
			Title:     gofakeit.Sentence(gofakeit.Number(3, 8)),
			Content:   gofakeit.Paragraph(2, 4, 12, "\n\n"),
			AuthorID:  &author.ID,
			CreatedAt: time.Now().Add(-time.Duration(gofakeit.Number(0, 72)) * time.Hour),
		}
		if err := db.Create(&post).Error; err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
	}

	middleware.Logger.Info("Seeding complete",
		slog.Int("users", opts.NumUsers),
		slog.Int("posts", opts.NumPosts),
	)
	return nil
}

package service

import (
	"context"
	"strings"

	"linguaspace/internal/models"
	"linguaspace/internal/repository"
)

// PostService implements post creation and retrieval.
type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost validates and persists a new post. The creation timestamp is
// assigned by the store, never by the client.
func (s *PostService) CreatePost(ctx context.Context, title, content string, authorID uint) (*models.Post, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, models.NewValidationError("Title and content cannot be empty")
	}

	post := &models.Post{
		Title:    title,
		Content:  content,
		AuthorID: &authorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts returns all posts in reverse-chronological order.
func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.List(ctx)
}

// GetPost returns the post with the given id, author preloaded when the weak
// reference still resolves.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arslanca/portfolio/internal/logging"
	"github.com/arslanca/portfolio/internal/models"
	"github.com/arslanca/portfolio/internal/repo"
	"github.com/arslanca/portfolio/internal/search"
)

type BlogService struct {
	Repo  *repo.GormRepo
	Index *search.BlogIndex
}

func (s *BlogService) GetAll(ctx context.Context) ([]models.BlogPost, error) {
	posts, err := s.Repo.ListBlogPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("blog list: %w", err)
	}
	return posts, nil
}

func (s *BlogService) Add(ctx context.Context, post *models.BlogPost) error {
	exists, err := s.Repo.BlogTitleExists(ctx, post.Title)
	if err != nil {
		return fmt.Errorf("blog add: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: a post titled %q already exists", ErrBusinessRule, post.Title)
	}
	post.CreatedDate = time.Now()
	if err := s.Repo.CreateBlogPost(ctx, post); err != nil {
		return fmt.Errorf("blog add: %w", err)
	}
	s.reindex(ctx, post)
	return nil
}

func (s *BlogService) Update(ctx context.Context, id uint, title, content string, isDraft bool) error {
	post, err := s.Repo.GetBlogPost(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: blog post %d", ErrNotFound, id)
		}
		return fmt.Errorf("blog update: %w", err)
	}
	post.Title = title
	post.Content = content
	post.IsDraft = isDraft
	if err := s.Repo.SaveBlogPost(ctx, post); err != nil {
		return fmt.Errorf("blog update: %w", err)
	}
	s.reindex(ctx, post)
	return nil
}

func (s *BlogService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteBlogPost(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: blog post %d", ErrNotFound, id)
		}
		return fmt.Errorf("blog delete: %w", err)
	}
	if err := s.Index.DeletePost(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("blog_index_delete_failed", "id", id, "error", err)
	}
	return nil
}

func (s *BlogService) Search(ctx context.Context, query string, from, size int) (int64, []models.BlogPost, error) {
	return s.Index.Search(ctx, query, from, size)
}

// The DB is the source of truth; a lagging index only degrades search.
func (s *BlogService) reindex(ctx context.Context, post *models.BlogPost) {
	if err := s.Index.IndexPost(ctx, post); err != nil {
		logging.FromContext(ctx).Warn("blog_index_failed", "id", post.ID, "error", err)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/arslanca/portfolio/internal/models"
	"github.com/arslanca/portfolio/internal/repo"
)

type ProjectService struct {
	Repo *repo.GormRepo
}

func (s *ProjectService) GetAll(ctx context.Context) ([]models.PinnedProject, error) {
	projects, err := s.Repo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("project list: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) Add(ctx context.Context, project *models.PinnedProject) error {
	if err := s.Repo.CreateProject(ctx, project); err != nil {
		return fmt.Errorf("project add: %w", err)
	}
	return nil
}

func (s *ProjectService) Update(ctx context.Context, id uint, in *models.PinnedProject) error {
	project, err := s.Repo.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: project %d", ErrNotFound, id)
		}
		return fmt.Errorf("project update: %w", err)
	}
	project.Title = in.Title
	project.Description = in.Description
	project.Tags = in.Tags
	project.GithubURL = in.GithubURL
	if err := s.Repo.SaveProject(ctx, project); err != nil {
		return fmt.Errorf("project update: %w", err)
	}
	return nil
}

func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProject(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: project %d", ErrNotFound, id)
		}
		return fmt.Errorf("project delete: %w", err)
	}
	return nil
}

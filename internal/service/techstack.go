package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/arslanca/portfolio/internal/models"
	"github.com/arslanca/portfolio/internal/repo"
)

var stackLevels = map[string]bool{
	"FRONTEND": true,
	"BACKEND":  true,
	"DEVOPS":   true,
	"OTHER":    true,
}

type TechStackService struct {
	Repo *repo.GormRepo
}

func (s *TechStackService) GetAll(ctx context.Context) ([]models.TechStack, error) {
	stack, err := s.Repo.ListTechStack(ctx)
	if err != nil {
		return nil, fmt.Errorf("techstack list: %w", err)
	}
	return stack, nil
}

func (s *TechStackService) Add(ctx context.Context, entry *models.TechStack) error {
	if !stackLevels[entry.Level] {
		return fmt.Errorf("%w: unknown stack level %q", ErrBusinessRule, entry.Level)
	}
	if err := s.Repo.CreateTechStack(ctx, entry); err != nil {
		return fmt.Errorf("techstack add: %w", err)
	}
	return nil
}

func (s *TechStackService) Update(ctx context.Context, id uint, name, level string) error {
	if !stackLevels[level] {
		return fmt.Errorf("%w: unknown stack level %q", ErrBusinessRule, level)
	}
	entry, err := s.Repo.GetTechStack(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: techstack %d", ErrNotFound, id)
		}
		return fmt.Errorf("techstack update: %w", err)
	}
	entry.Name = name
	entry.Level = level
	if err := s.Repo.SaveTechStack(ctx, entry); err != nil {
		return fmt.Errorf("techstack update: %w", err)
	}
	return nil
}

func (s *TechStackService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteTechStack(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: techstack %d", ErrNotFound, id)
		}
		return fmt.Errorf("techstack delete: %w", err)
	}
	return nil
}

package catalog

import (
	"context"
	"fmt"
	"strings"

	"local-library/internal/models"
)

// AuthorService to operacje tworzenia, edycji i usuwania autorów
type AuthorService struct {
	store     Store
	validator *Validator
}

// NewAuthorService tworzy serwis autorów
func NewAuthorService(store Store, v *Validator) *AuthorService {
	if v == nil {
		v = NewValidator()
	}
	return &AuthorService{store: store, validator: v}
}

// Get pobiera autora do formularza edycji
func (s *AuthorService) Get(ctx context.Context, p Principal, id string) (*models.Author, error) {
	if err := p.Require(models.PermManageCatalog); err != nil {
		return nil, err
	}
	return s.store.GetAuthor(ctx, id)
}

// Create zapisuje nowego autora
func (s *AuthorService) Create(ctx context.Context, p Principal, a *models.Author) error {
	if err := p.Require(models.PermManageCatalog); err != nil {
		return err
	}
	normalizeAuthor(a)
	if err := s.validator.Validate(a); err != nil {
		return err
	}
	if err := s.store.CreateAuthor(ctx, a); err != nil {
		return fmt.Errorf("creating author: %w", err)
	}
	return nil
}

// Update nadpisuje pola istniejącego autora
func (s *AuthorService) Update(ctx context.Context, p Principal, a *models.Author) error {
	if err := p.Require(models.PermManageCatalog); err != nil {
		return err
	}
	if _, err := s.store.GetAuthor(ctx, a.ID); err != nil {
		return err
	}
	normalizeAuthor(a)
	if err := s.validator.Validate(a); err != nil {
		return err
	}
	if err := s.store.UpdateAuthor(ctx, a); err != nil {
		return fmt.Errorf("updating author %s: %w", a.ID, err)
	}
	return nil
}

// Delete usuwa autora bez dodatkowych warunków
func (s *AuthorService) Delete(ctx context.Context, p Principal, id string) error {
	if err := p.Require(models.PermManageCatalog); err != nil {
		return err
	}
	if err := s.store.DeleteAuthor(ctx, id); err != nil {
		return fmt.Errorf("deleting author %s: %w", id, err)
	}
	return nil
}

func normalizeAuthor(a *models.Author) {
	a.FirstName = strings.TrimSpace(a.FirstName)
	a.LastName = strings.TrimSpace(a.LastName)
}

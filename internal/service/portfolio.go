package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/port"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PortfolioService lists and creates showcase items.
type PortfolioService struct {
	store  port.PortfolioStore
	logger *zap.Logger
}

func NewPortfolioService(store port.PortfolioStore, logger *zap.Logger) *PortfolioService {
	return &PortfolioService{store: store, logger: logger}
}

// List returns items matching filter, newest first.
func (s *PortfolioService) List(ctx context.Context, filter domain.PortfolioFilter) (*domain.PortfolioListResponse, error) {
	items, err := s.store.ListPortfolio(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list portfolio: %w", err)
	}
	if items == nil {
		items = []domain.PortfolioItem{}
	}
	return &domain.PortfolioListResponse{Items: items}, nil
}

// Create adds an item authored by userID.
func (s *PortfolioService) Create(ctx context.Context, userID string, req *domain.CreatePortfolioRequest) (*domain.PortfolioItem, error) {
	item := &domain.PortfolioItem{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Category:    strings.TrimSpace(req.Category),
		Tags:        req.Tags,
		Featured:    req.Featured,
		CreatedAt:   time.Now().UTC(),
	}
	if item.Title == "" || item.Description == "" || item.ImageURL == "" || item.Category == "" {
		return nil, &domain.ErrValidation{Message: "Title, description, imageUrl and category are required"}
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}

	if err := s.store.CreatePortfolioItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create portfolio item: %w", err)
	}

	s.logger.Info("portfolio item created", zap.String("item_id", item.ID), zap.String("user_id", userID))
	return item, nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"go.uber.org/zap"
)

type CategoryUsecase struct {
	d      Deps
	logger *logger.Logger
}

func NewCategoryUsecase(d Deps) *CategoryUsecase {
	return &CategoryUsecase{d: d, logger: d.log().Named("CategoryUsecase")}
}

// ListCategories is public. Counts include APPROVED listings only.
func (uc *CategoryUsecase) ListCategories(ctx context.Context) ([]domain.CategoryCount, error) {
	return uc.d.Categories.ListWithCounts(ctx)
}

func (uc *CategoryUsecase) CreateCategory(ctx context.Context, viewer domain.Viewer, name, description string) (*domain.Category, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrInvalidInput)
	}
	now := uc.d.now()
	c := &domain.Category{Name: name, Description: description, CreatedAt: now, UpdatedAt: now}
	if err := uc.d.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.logger.Info("Category created", zap.String("category_id", c.ID), zap.String("name", name))
	return c, nil
}

func (uc *CategoryUsecase) UpdateCategory(ctx context.Context, viewer domain.Viewer, id, name, description string) (*domain.Category, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	c, err := uc.d.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		c.Name = name
	}
	c.Description = description
	c.UpdatedAt = uc.d.now()
	if err := uc.d.Categories.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.invalidateListings(ctx, id)
	return c, nil
}

// DeleteCategory removes the category and its listing links.
func (uc *CategoryUsecase) DeleteCategory(ctx context.Context, viewer domain.Viewer, id string) error {
	if err := requireAdmin(viewer); err != nil {
		return err
	}
	// Links are gone after the delete, so collect them first.
	linked := uc.linkedListings(ctx, id)
	err := uc.d.inTx(ctx, func(ctx context.Context) error {
		return uc.d.Categories.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	for _, listingID := range linked {
		uc.d.invalidate(ctx, uc.logger, listingID)
	}
	uc.logger.Info("Category deleted", zap.String("category_id", id), zap.Int("listings", len(linked)))
	return nil
}

// Cached listings embed their categories.
func (uc *CategoryUsecase) invalidateListings(ctx context.Context, id string) {
	for _, listingID := range uc.linkedListings(ctx, id) {
		uc.d.invalidate(ctx, uc.logger, listingID)
	}
}

func (uc *CategoryUsecase) linkedListings(ctx context.Context, id string) []string {
	if uc.d.Cache == nil {
		return nil
	}
	ids, err := uc.d.Categories.ListingIDs(ctx, id)
	if err != nil {
		uc.logger.Warn("Failed to list category listings", zap.String("category_id", id), zap.Error(err))
		return nil
	}
	return ids
}

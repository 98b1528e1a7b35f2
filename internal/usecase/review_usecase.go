package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"foodapp/internal/domain/entity"
	"foodapp/internal/domain/repository"
	"foodapp/pkg/errors"
	"foodapp/pkg/logger"
)

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	orderRepo  repository.OrderRepository
	storeRepo  repository.StoreRepository
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	orderRepo repository.OrderRepository,
	storeRepo repository.StoreRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
		storeRepo:  storeRepo,
	}
}

type CreateReviewInput struct {
	OrderID string `json:"order_id" validate:"required"`
	FoodID  string `json:"food_id"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

// CreateReview lets the customer rate a completed order once. The
// store's cached rating average is updated best effort.
func (uc *ReviewUseCase) CreateReview(ctx context.Context, customer *entity.Account, input CreateReviewInput) (*entity.Review, error) {
	order, err := uc.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customer.ID {
		return nil, errors.Forbidden("You can only review your own orders", nil)
	}
	if order.Status != entity.OrderStatusCompleted {
		return nil, errors.BadRequest("only completed orders can be reviewed", nil)
	}

	if existing, err := uc.reviewRepo.GetByOrderID(ctx, input.OrderID); err == nil && existing != nil {
		return nil, errors.Conflict("order has already been reviewed")
	}

	review := &entity.Review{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
		StoreID:    order.StoreID,
		FoodID:     input.FoodID,
		OrderID:    input.OrderID,
		Rating:     input.Rating,
		Comment:    input.Comment,
		Active:     true,
		CreatedAt:  time.Now(),
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	uc.refreshStoreRating(ctx, order.StoreID)

	return review, nil
}

// refreshStoreRating recomputes the store's cached average. Failures
// only log; the review itself is already stored.
func (uc *ReviewUseCase) refreshStoreRating(ctx context.Context, storeID string) {
	reviews, total, err := uc.reviewRepo.ListByStore(ctx, storeID, 0, 0)
	if err != nil || total == 0 {
		if err != nil {
			logger.Warn("Failed to load reviews for store %s: %v", storeID, err)
		}
		return
	}

	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}

	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		logger.Warn("Failed to load store %s for rating refresh: %v", storeID, err)
		return
	}
	store.Rating = float64(sum) / float64(len(reviews))
	store.ReviewCount = len(reviews)
	store.UpdatedAt = time.Now()

	if err := uc.storeRepo.Update(ctx, store); err != nil {
		logger.Warn("Failed to update rating for store %s: %v", storeID, err)
	}
}

func (uc *ReviewUseCase) ListStoreReviews(ctx context.Context, storeID string, limit, offset int) ([]*entity.Review, int64, error) {
	return uc.reviewRepo.ListByStore(ctx, storeID, limit, offset)
}

func (uc *ReviewUseCase) ListFoodReviews(ctx context.Context, foodID string, limit, offset int) ([]*entity.Review, int64, error) {
	return uc.reviewRepo.ListByFood(ctx, foodID, limit, offset)
}

package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"foodapp/internal/domain/entity"
	"foodapp/internal/domain/repository"
	"foodapp/pkg/errors"
)

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

func (r *firestoreReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.CreatedAt = time.Now()

	_, err := r.client.Collection("reviews").Doc(review.ID).Set(ctx, review)
	if err != nil {
		return errors.Internal("Failed to create review", err)
	}

	return nil
}

func (r *firestoreReviewRepository) GetByOrderID(ctx context.Context, orderID string) (*entity.Review, error) {
	query := r.client.Collection("reviews").Where("orderId", "==", orderID).Limit(1)
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query review by order", err)
	}
	if len(docs) == 0 {
		return nil, errors.NotFound("Review", nil)
	}

	var review entity.Review
	if err := docs[0].DataTo(&review); err != nil {
		return nil, errors.Internal("Failed to parse review data", err)
	}
	review.ID = docs[0].Ref.ID

	return &review, nil
}

func (r *firestoreReviewRepository) ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.Review, int64, error) {
	query := r.client.Collection("reviews").
		Where("storeId", "==", storeID).
		Where("active", "==", true)
	return r.list(ctx, query, limit, offset)
}

func (r *firestoreReviewRepository) ListByFood(ctx context.Context, foodID string, limit, offset int) ([]*entity.Review, int64, error) {
	query := r.client.Collection("reviews").
		Where("foodId", "==", foodID).
		Where("active", "==", true)
	return r.list(ctx, query, limit, offset)
}

func (r *firestoreReviewRepository) list(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.Review, int64, error) {
	allDocs, err := query.OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch reviews", err)
	}

	total := int64(len(allDocs))

	start := offset
	if start > len(allDocs) {
		start = len(allDocs)
	}
	end := len(allDocs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	var reviews []*entity.Review
	for i := start; i < end; i++ {
		var review entity.Review
		if err := allDocs[i].DataTo(&review); err != nil {
			continue
		}
		review.ID = allDocs[i].Ref.ID
		reviews = append(reviews, &review)
	}

	return reviews, total, nil
}

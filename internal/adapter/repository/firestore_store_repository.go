package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"foodapp/internal/domain/entity"
	"foodapp/internal/domain/repository"
	"foodapp/pkg/errors"
)

type firestoreStoreRepository struct {
	client *firestore.Client
}

func NewFirestoreStoreRepository(client *firestore.Client) repository.StoreRepository {
	return &firestoreStoreRepository{
		client: client,
	}
}

func (r *firestoreStoreRepository) Create(ctx context.Context, store *entity.Store) error {
	if store.ID == "" {
		store.ID = uuid.New().String()
	}

	now := time.Now()
	store.CreatedAt = now
	store.UpdatedAt = now

	_, err := r.client.Collection("stores").Doc(store.ID).Set(ctx, store)
	if err != nil {
		return errors.Internal("Failed to create store", err)
	}

	return nil
}

func (r *firestoreStoreRepository) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	doc, err := r.client.Collection("stores").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Store", nil)
		}
		return nil, errors.Internal("Failed to get store", err)
	}

	var store entity.Store
	if err := doc.DataTo(&store); err != nil {
		return nil, errors.Internal("Failed to parse store data", err)
	}
	store.ID = doc.Ref.ID

	return &store, nil
}

func (r *firestoreStoreRepository) GetByAccountID(ctx context.Context, accountID string) (*entity.Store, error) {
	query := r.client.Collection("stores").Where("accountId", "==", accountID).Limit(1)
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query store by account", err)
	}
	if len(docs) == 0 {
		return nil, errors.NotFound("Store", nil)
	}

	var store entity.Store
	if err := docs[0].DataTo(&store); err != nil {
		return nil, errors.Internal("Failed to parse store data", err)
	}
	store.ID = docs[0].Ref.ID

	return &store, nil
}

// List returns approved, active stores. Name search is an in-memory
// substring match; Firestore has no native contains query and the
// store catalog is small.
func (r *firestoreStoreRepository) List(ctx context.Context, search string, limit, offset int) ([]*entity.Store, int64, error) {
	query := r.client.Collection("stores").
		Where("isApproved", "==", true).
		Where("active", "==", true)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch stores", err)
	}

	var matched []*entity.Store
	for _, doc := range allDocs {
		var store entity.Store
		if err := doc.DataTo(&store); err != nil {
			continue // Skip malformed documents
		}
		store.ID = doc.Ref.ID

		if search != "" && !strings.Contains(strings.ToLower(store.Name), strings.ToLower(search)) {
			continue
		}
		matched = append(matched, &store)
	}

	total := int64(len(matched))

	start := offset
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return matched[start:end], total, nil
}

func (r *firestoreStoreRepository) Update(ctx context.Context, store *entity.Store) error {
	store.UpdatedAt = time.Now()

	updateData := map[string]interface{}{
		"name":         store.Name,
		"description":  store.Description,
		"address":      store.Address,
		"latitude":     store.Latitude,
		"longitude":    store.Longitude,
		"openingHours": store.OpeningHours,
		"avatar":       store.Avatar,
		"isApproved":   store.IsApproved,
		"active":       store.Active,
		"rating":       store.Rating,
		"reviewCount":  store.ReviewCount,
		"updatedAt":    store.UpdatedAt,
	}

	_, err := r.client.Collection("stores").Doc(store.ID).Set(ctx, updateData, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update store", err)
	}

	return nil
}

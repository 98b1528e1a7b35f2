package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"foodapp/internal/domain/entity"
	"foodapp/internal/domain/repository"
	"foodapp/pkg/errors"
)

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

func (r *firestoreOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	_, err := r.client.Collection("orders").Doc(order.ID).Set(ctx, order)
	if err != nil {
		return errors.Internal("Failed to create order", err)
	}

	return nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.client.Collection("orders").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Order", nil)
		}
		return nil, errors.Internal("Failed to get order", err)
	}

	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}
	order.ID = doc.Ref.ID

	return &order, nil
}

func (r *firestoreOrderRepository) ListByCustomer(ctx context.Context, customerID string, orderStatus string, limit, offset int) ([]*entity.Order, int64, error) {
	query := r.client.Collection("orders").Where("customerId", "==", customerID)
	if orderStatus != "" {
		query = query.Where("status", "==", orderStatus)
	}
	return r.list(ctx, query, limit, offset)
}

func (r *firestoreOrderRepository) ListByStore(ctx context.Context, storeID string, orderStatus string, limit, offset int) ([]*entity.Order, int64, error) {
	query := r.client.Collection("orders").Where("storeId", "==", storeID)
	if orderStatus != "" {
		query = query.Where("status", "==", orderStatus)
	}
	return r.list(ctx, query, limit, offset)
}

func (r *firestoreOrderRepository) list(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.Order, int64, error) {
	allDocs, err := query.OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch orders", err)
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

	var orders []*entity.Order
	for i := start; i < end; i++ {
		var order entity.Order
		if err := allDocs[i].DataTo(&order); err != nil {
			continue // Skip malformed documents
		}
		order.ID = allDocs[i].Ref.ID
		orders = append(orders, &order)
	}

	return orders, total, nil
}

func (r *firestoreOrderRepository) Update(ctx context.Context, order *entity.Order) error {
	order.UpdatedAt = time.Now()

	_, err := r.client.Collection("orders").Doc(order.ID).Set(ctx, order)
	if err != nil {
		return errors.Internal("Failed to update order", err)
	}

	return nil
}

func (r *firestoreOrderRepository) ListCompletedByStoreBetween(ctx context.Context, storeID string, from, to time.Time) ([]*entity.Order, error) {
	query := r.client.Collection("orders").
		Where("storeId", "==", storeID).
		Where("status", "==", entity.OrderStatusCompleted).
		Where("createdAt", ">=", from).
		Where("createdAt", "<", to)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch completed orders", err)
	}

	var orders []*entity.Order
	for _, doc := range docs {
		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			continue
		}
		order.ID = doc.Ref.ID
		orders = append(orders, &order)
	}

	return orders, nil
}

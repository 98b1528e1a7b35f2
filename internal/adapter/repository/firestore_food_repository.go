package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"foodapp/internal/domain/entity"
	"foodapp/internal/domain/repository"
	"foodapp/pkg/errors"
)

type firestoreFoodRepository struct {
	client *firestore.Client
}

func NewFirestoreFoodRepository(client *firestore.Client) repository.FoodRepository {
	return &firestoreFoodRepository{
		client: client,
	}
}

func (r *firestoreFoodRepository) Create(ctx context.Context, food *entity.Food) error {
	if food.ID == "" {
		food.ID = uuid.New().String()
	}

	now := time.Now()
	food.CreatedAt = now
	food.UpdatedAt = now

	_, err := r.client.Collection("foods").Doc(food.ID).Set(ctx, food)
	if err != nil {
		return errors.Internal("Failed to create food", err)
	}

	return nil
}

func (r *firestoreFoodRepository) GetByID(ctx context.Context, id string) (*entity.Food, error) {
	doc, err := r.client.Collection("foods").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Food", nil)
		}
		return nil, errors.Internal("Failed to get food", err)
	}

	var food entity.Food
	if err := doc.DataTo(&food); err != nil {
		return nil, errors.Internal("Failed to parse food data", err)
	}
	food.ID = doc.Ref.ID

	return &food, nil
}

func (r *firestoreFoodRepository) List(ctx context.Context, filter repository.FoodFilter, limit, offset int) ([]*entity.Food, int64, error) {
	query := r.client.Collection("foods").Where("active", "==", true)

	if filter.StoreID != "" {
		query = query.Where("storeId", "==", filter.StoreID)
	}
	if filter.CategoryID != "" {
		query = query.Where("categoryId", "==", filter.CategoryID)
	}
	if filter.MealTime != "" && filter.MealTime != entity.MealTimeAnytime {
		query = query.Where("mealTime", "in", []string{filter.MealTime, entity.MealTimeAnytime})
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch foods", err)
	}

	var matched []*entity.Food
	for _, doc := range allDocs {
		var food entity.Food
		if err := doc.DataTo(&food); err != nil {
			continue // Skip malformed documents
		}
		food.ID = doc.Ref.ID

		if filter.Search != "" && !strings.Contains(strings.ToLower(food.Name), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, &food)
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

func (r *firestoreFoodRepository) Update(ctx context.Context, food *entity.Food) error {
	food.UpdatedAt = time.Now()

	_, err := r.client.Collection("foods").Doc(food.ID).Set(ctx, food)
	if err != nil {
		return errors.Internal("Failed to update food", err)
	}

	return nil
}

func (r *firestoreFoodRepository) Delete(ctx context.Context, id string) error {
	// Soft delete; orders keep referencing the food snapshot.
	_, err := r.client.Collection("foods").Doc(id).Set(ctx, map[string]interface{}{
		"active":    false,
		"updatedAt": time.Now(),
	}, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to delete food", err)
	}

	return nil
}

func (r *firestoreFoodRepository) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	iter := r.client.Collection("categories").Where("active", "==", true).Documents(ctx)

	var categories []*entity.Category
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate categories", err)
		}

		var category entity.Category
		if err := doc.DataTo(&category); err != nil {
			continue
		}
		category.ID = doc.Ref.ID
		categories = append(categories, &category)
	}

	return categories, nil
}

func (r *firestoreFoodRepository) CreateMenu(ctx context.Context, menu *entity.Menu) error {
	if menu.ID == "" {
		menu.ID = uuid.New().String()
	}

	now := time.Now()
	menu.CreatedAt = now
	menu.UpdatedAt = now

	_, err := r.client.Collection("menus").Doc(menu.ID).Set(ctx, menu)
	if err != nil {
		return errors.Internal("Failed to create menu", err)
	}

	return nil
}

func (r *firestoreFoodRepository) GetMenuByID(ctx context.Context, id string) (*entity.Menu, error) {
	doc, err := r.client.Collection("menus").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Menu", nil)
		}
		return nil, errors.Internal("Failed to get menu", err)
	}

	var menu entity.Menu
	if err := doc.DataTo(&menu); err != nil {
		return nil, errors.Internal("Failed to parse menu data", err)
	}
	menu.ID = doc.Ref.ID

	return &menu, nil
}

func (r *firestoreFoodRepository) ListMenusByStore(ctx context.Context, storeID string) ([]*entity.Menu, error) {
	iter := r.client.Collection("menus").
		Where("storeId", "==", storeID).
		Where("active", "==", true).
		Documents(ctx)

	var menus []*entity.Menu
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate menus", err)
		}

		var menu entity.Menu
		if err := doc.DataTo(&menu); err != nil {
			continue
		}
		menu.ID = doc.Ref.ID
		menus = append(menus, &menu)
	}

	return menus, nil
}

func (r *firestoreFoodRepository) UpdateMenu(ctx context.Context, menu *entity.Menu) error {
	menu.UpdatedAt = time.Now()

	_, err := r.client.Collection("menus").Doc(menu.ID).Set(ctx, menu)
	if err != nil {
		return errors.Internal("Failed to update menu", err)
	}

	return nil
}

func (r *firestoreFoodRepository) DeleteMenu(ctx context.Context, id string) error {
	_, err := r.client.Collection("menus").Doc(id).Set(ctx, map[string]interface{}{
		"active":    false,
		"updatedAt": time.Now(),
	}, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to delete menu", err)
	}

	return nil
}

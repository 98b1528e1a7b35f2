package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"foodapp/internal/domain/entity"
	"foodapp/internal/domain/repository"
	"foodapp/pkg/errors"
	"foodapp/pkg/logger"
)

type OrderUseCase struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	storeRepo repository.StoreRepository
	pusher    Pusher
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	storeRepo repository.StoreRepository,
	pusher Pusher,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		storeRepo: storeRepo,
		pusher:    pusher,
	}
}

type CheckoutInput struct {
	DeliveryAddress string  `json:"delivery_address" validate:"required,max=200"`
	ShippingFee     float64 `json:"shipping_fee" validate:"min=0"`
	PaymentMethod   string  `json:"payment_method" validate:"omitempty,oneof=CASH"`
	Note            string  `json:"note" validate:"max=500"`
}

// Checkout turns the customer's cart into a pending order and clears
// the cart. Prices were snapshotted when the items entered the cart.
func (uc *OrderUseCase) Checkout(ctx context.Context, customer *entity.Account, input CheckoutInput) (*entity.Order, error) {
	cart, err := uc.cartRepo.Get(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, errors.BadRequest("cart is empty", nil)
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = entity.PaymentMethodCash
	}

	items := make([]entity.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, entity.OrderItem{
			FoodID:   item.FoodID,
			FoodName: item.FoodName,
			Quantity: item.Quantity,
			Price:    item.Price,
			Note:     item.Note,
		})
	}

	now := time.Now()
	order := &entity.Order{
		ID:              uuid.New().String(),
		CustomerID:      customer.ID,
		StoreID:         cart.StoreID,
		Items:           items,
		Status:          entity.OrderStatusPending,
		ShippingFee:     input.ShippingFee,
		PaymentMethod:   paymentMethod,
		DeliveryAddress: input.DeliveryAddress,
		Note:            input.Note,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := uc.cartRepo.Clear(ctx, customer.ID); err != nil {
		logger.Warn("Failed to clear cart for %s after checkout: %v", customer.ID, err)
	}

	uc.notifyStore(ctx, order, "order.created")
	logger.Info("Order %s created by %s for store %s, total %.0f",
		order.ID, customer.ID, order.StoreID, order.TotalAmount())

	return order, nil
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, viewer *entity.Account, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(ctx, viewer, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (uc *OrderUseCase) ListCustomerOrders(ctx context.Context, customer *entity.Account, status string, limit, offset int) ([]*entity.Order, int64, error) {
	return uc.orderRepo.ListByCustomer(ctx, customer.ID, status, limit, offset)
}

func (uc *OrderUseCase) ListStoreOrders(ctx context.Context, owner *entity.Account, status string, limit, offset int) ([]*entity.Order, int64, error) {
	store, err := uc.storeRepo.GetByAccountID(ctx, owner.ID)
	if err != nil {
		return nil, 0, errors.NotFound("Store", err)
	}
	return uc.orderRepo.ListByStore(ctx, store.ID, status, limit, offset)
}

// UpdateStatus advances the order through its status machine. The
// customer may only cancel a pending order; the store owner drives the
// rest of the flow.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, actor *entity.Account, orderID, next string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(ctx, actor, order); err != nil {
		return nil, err
	}

	if actor.ID == order.CustomerID && next != entity.OrderStatusCancelled {
		return nil, errors.Forbidden("Customers can only cancel their orders", nil)
	}

	if !order.CanTransitionTo(next) {
		return nil, errors.Conflict(
			fmt.Sprintf("cannot move order from %s to %s", order.Status, next))
	}

	order.Status = next
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if actor.ID == order.CustomerID {
		uc.notifyStore(ctx, order, "order.status")
	} else {
		uc.pushToOrder(order.CustomerID, order, "order.status")
	}
	logger.Info("Order %s moved to %s by %s", orderID, next, actor.ID)

	return order, nil
}

func (uc *OrderUseCase) authorize(ctx context.Context, viewer *entity.Account, order *entity.Order) error {
	if viewer.Role == entity.RoleAdmin || viewer.ID == order.CustomerID {
		return nil
	}
	if viewer.IsStoreOwner() {
		store, err := uc.storeRepo.GetByAccountID(ctx, viewer.ID)
		if err == nil && store.ID == order.StoreID {
			return nil
		}
	}
	return errors.Forbidden("You have no access to this order", nil)
}

func (uc *OrderUseCase) notifyStore(ctx context.Context, order *entity.Order, eventType string) {
	store, err := uc.storeRepo.GetByID(ctx, order.StoreID)
	if err != nil {
		return
	}
	uc.pushToOrder(store.AccountID, order, eventType)
}

func (uc *OrderUseCase) pushToOrder(userID string, order *entity.Order, eventType string) {
	if uc.pusher == nil || userID == "" {
		return
	}
	uc.pusher.Push(userID, eventType, order)
}

// RevenueBucket is one aggregation slot of the revenue report.
type RevenueBucket struct {
	Label      string  `json:"label"`
	OrderCount int     `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}

// RevenueStats sums completed orders of the owner's store for the
// given year, bucketed by "month", "quarter" or "year".
func (uc *OrderUseCase) RevenueStats(ctx context.Context, owner *entity.Account, year int, period string) ([]RevenueBucket, error) {
	store, err := uc.storeRepo.GetByAccountID(ctx, owner.ID)
	if err != nil {
		return nil, errors.NotFound("Store", err)
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(1, 0, 0)

	orders, err := uc.orderRepo.ListCompletedByStoreBetween(ctx, store.ID, from, to)
	if err != nil {
		return nil, err
	}

	var buckets []RevenueBucket
	var slot func(t time.Time) int

	switch period {
	case "month":
		for m := time.January; m <= time.December; m++ {
			buckets = append(buckets, RevenueBucket{Label: fmt.Sprintf("%d-%02d", year, m)})
		}
		slot = func(t time.Time) int { return int(t.Month()) - 1 }
	case "quarter":
		for q := 1; q <= 4; q++ {
			buckets = append(buckets, RevenueBucket{Label: fmt.Sprintf("%d-Q%d", year, q)})
		}
		slot = func(t time.Time) int { return (int(t.Month()) - 1) / 3 }
	case "year":
		buckets = []RevenueBucket{{Label: fmt.Sprintf("%d", year)}}
		slot = func(t time.Time) int { return 0 }
	default:
		return nil, errors.Validation("period must be month, quarter or year", nil)
	}

	for _, order := range orders {
		i := slot(order.CreatedAt)
		buckets[i].OrderCount++
		buckets[i].Revenue += order.TotalAmount()
	}

	return buckets, nil
}

// FoodRevenue is the yearly total of one dish.
type FoodRevenue struct {
	FoodID   string  `json:"food_id"`
	FoodName string  `json:"food_name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// RevenueByFood breaks the year's completed orders down per dish,
// best sellers first. Names come from the order line snapshots, so
// renamed or deleted dishes keep the name they were sold under.
func (uc *OrderUseCase) RevenueByFood(ctx context.Context, owner *entity.Account, year int) ([]FoodRevenue, error) {
	store, err := uc.storeRepo.GetByAccountID(ctx, owner.ID)
	if err != nil {
		return nil, errors.NotFound("Store", err)
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(1, 0, 0)

	orders, err := uc.orderRepo.ListCompletedByStoreBetween(ctx, store.ID, from, to)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*FoodRevenue)
	for _, order := range orders {
		for _, item := range order.Items {
			fr, ok := totals[item.FoodID]
			if !ok {
				fr = &FoodRevenue{FoodID: item.FoodID, FoodName: item.FoodName}
				totals[item.FoodID] = fr
			}
			fr.Quantity += item.Quantity
			fr.Revenue += item.Price * float64(item.Quantity)
		}
	}

	result := make([]FoodRevenue, 0, len(totals))
	for _, fr := range totals {
		result = append(result, *fr)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Revenue != result[j].Revenue {
			return result[i].Revenue > result[j].Revenue
		}
		return result[i].FoodID < result[j].FoodID
	})
	return result, nil
}

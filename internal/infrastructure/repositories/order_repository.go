package repositories

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/you/storefront/domain"
)

// OrderRepositoryImpl implements domain.OrderRepository using GORM
type OrderRepositoryImpl struct {
	db *gorm.DB
}

// DBOrder represents the database model for Order (with GORM tags)
type DBOrder struct {
	ID        uint   `gorm:"primaryKey"`
	Reference string `gorm:"uniqueIndex;size:64"`
	UserID    uint   `gorm:"index"`
	Items     string `gorm:"type:text"`
	Total     int64
	Status    string `gorm:"index;size:32"`
	Address   string `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBOrder) TableName() string {
	return "orders"
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

// Create implements domain.OrderRepository
func (r *OrderRepositoryImpl) Create(ctx context.Context, order *domain.Order) error {
	dbOrder := orderToDB(order)
	if err := r.db.WithContext(ctx).Create(dbOrder).Error; err != nil {
		return err
	}
	order.ID = dbOrder.ID
	return nil
}

// FindByID implements domain.OrderRepository
func (r *OrderRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	var dbOrder DBOrder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbOrder).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return orderToDomain(&dbOrder), nil
}

// FindByUser implements domain.OrderRepository
func (r *OrderRepositoryImpl) FindByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	var dbOrders []DBOrder
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&dbOrders).Error
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(dbOrders))
	for i := range dbOrders {
		orders = append(orders, *orderToDomain(&dbOrders[i]))
	}
	return orders, nil
}

// ListAll implements domain.OrderRepository
func (r *OrderRepositoryImpl) ListAll(ctx context.Context) ([]domain.Order, error) {
	var dbOrders []DBOrder
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dbOrders).Error
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(dbOrders))
	for i := range dbOrders {
		orders = append(orders, *orderToDomain(&dbOrders[i]))
	}
	return orders, nil
}

// UpdateStatus implements domain.OrderRepository
func (r *OrderRepositoryImpl) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&DBOrder{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// orderToDB converts domain order to database order
func orderToDB(order *domain.Order) *DBOrder {
	items := ""
	if data, err := json.Marshal(order.Items); err == nil {
		items = string(data)
	}
	address := ""
	if data, err := json.Marshal(order.Address); err == nil {
		address = string(data)
	}
	return &DBOrder{
		ID:        order.ID,
		Reference: order.Reference,
		UserID:    order.UserID,
		Items:     items,
		Total:     order.Total,
		Status:    order.Status,
		Address:   address,
	}
}

// orderToDomain converts database order to domain order
func orderToDomain(dbOrder *DBOrder) *domain.Order {
	var items []domain.OrderItem
	if dbOrder.Items != "" {
		_ = json.Unmarshal([]byte(dbOrder.Items), &items)
	}
	var address domain.Address
	if dbOrder.Address != "" {
		_ = json.Unmarshal([]byte(dbOrder.Address), &address)
	}
	return &domain.Order{
		ID:        dbOrder.ID,
		Reference: dbOrder.Reference,
		UserID:    dbOrder.UserID,
		Items:     items,
		Total:     dbOrder.Total,
		Status:    dbOrder.Status,
		Address:   address,
		CreatedAt: dbOrder.CreatedAt,
		UpdatedAt: dbOrder.UpdatedAt,
	}
}

package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/you/identitysvc/domain"
)

// DBProduct represents the database model for Product
type DBProduct struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:50"`
	Description string `gorm:"size:200"`
	HomeURL     string `gorm:"size:200"`
	ExternalID  string `gorm:"uniqueIndex;size:200"`
	CreatedAt   time.Time
}

func (DBProduct) TableName() string { return "products" }

// DBPurchase represents the database model for Purchase
type DBPurchase struct {
	ID            uint `gorm:"primaryKey"`
	UserID        uint `gorm:"index"`
	ProductID     uint `gorm:"index"`
	Product       *DBProduct
	Price         string    `gorm:"size:50"`
	PurchasedDate time.Time `gorm:"autoCreateTime"`
}

func (DBPurchase) TableName() string { return "purchases" }

// ProductRepositoryImpl implements domain.ProductRepository using GORM
type ProductRepositoryImpl struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

// Create implements domain.ProductRepository
func (r *ProductRepositoryImpl) Create(ctx context.Context, product *domain.Product) error {
	dbProduct := &DBProduct{
		Name:        product.Name,
		Description: product.Description,
		HomeURL:     product.HomeURL,
		ExternalID:  product.ExternalID,
	}
	if err := r.db.WithContext(ctx).Create(dbProduct).Error; err != nil {
		return err
	}
	product.ID = dbProduct.ID
	product.CreatedAt = dbProduct.CreatedAt
	return nil
}

// FindByExternalID implements domain.ProductRepository
func (r *ProductRepositoryImpl) FindByExternalID(ctx context.Context, externalID string) (*domain.Product, error) {
	var dbProduct DBProduct
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&dbProduct).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return productToDomain(&dbProduct), nil
}

// List implements domain.ProductRepository
func (r *ProductRepositoryImpl) List(ctx context.Context) ([]*domain.Product, error) {
	var dbProducts []DBProduct
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&dbProducts).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(dbProducts))
	for i := range dbProducts {
		products = append(products, productToDomain(&dbProducts[i]))
	}
	return products, nil
}

// PurchaseRepositoryImpl implements domain.PurchaseRepository using GORM
type PurchaseRepositoryImpl struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) domain.PurchaseRepository {
	return &PurchaseRepositoryImpl{db: db}
}

// Create implements domain.PurchaseRepository
func (r *PurchaseRepositoryImpl) Create(ctx context.Context, purchase *domain.Purchase) error {
	dbPurchase := &DBPurchase{
		UserID:    purchase.UserID,
		ProductID: purchase.ProductID,
		Price:     purchase.Price,
	}
	if err := r.db.WithContext(ctx).Create(dbPurchase).Error; err != nil {
		return err
	}
	purchase.ID = dbPurchase.ID
	purchase.PurchasedDate = dbPurchase.PurchasedDate
	return nil
}

// ListByUser implements domain.PurchaseRepository, newest first.
func (r *PurchaseRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]*domain.Purchase, error) {
	var dbPurchases []DBPurchase
	err := r.db.WithContext(ctx).Preload("Product").
		Where("user_id = ?", userID).Order("purchased_date desc").Find(&dbPurchases).Error
	if err != nil {
		return nil, err
	}
	purchases := make([]*domain.Purchase, 0, len(dbPurchases))
	for i := range dbPurchases {
		purchases = append(purchases, purchaseToDomain(&dbPurchases[i]))
	}
	return purchases, nil
}

func productToDomain(dbProduct *DBProduct) *domain.Product {
	return &domain.Product{
		ID:          dbProduct.ID,
		Name:        dbProduct.Name,
		Description: dbProduct.Description,
		HomeURL:     dbProduct.HomeURL,
		ExternalID:  dbProduct.ExternalID,
		CreatedAt:   dbProduct.CreatedAt,
	}
}

func purchaseToDomain(dbPurchase *DBPurchase) *domain.Purchase {
	purchase := &domain.Purchase{
		ID:            dbPurchase.ID,
		UserID:        dbPurchase.UserID,
		ProductID:     dbPurchase.ProductID,
		Price:         dbPurchase.Price,
		PurchasedDate: dbPurchase.PurchasedDate,
	}
	if dbPurchase.Product != nil {
		purchase.Product = productToDomain(dbPurchase.Product)
	}
	return purchase
}

package services

import (
	"log"
	"strings"
	"time"

	"retail_pos/internal/models"
	"retail_pos/internal/redis"
	"retail_pos/internal/repository"
)

type ProductService interface {
	CreateProduct(product *models.Product) error
	GetProductByID(id uint) (*models.Product, error)
	GetAllProducts() ([]models.Product, error)
	GetProductsPaginated(page, limit int) ([]models.Product, int64, error)
	SearchProducts(query string) ([]models.Product, error)
	UpdateProduct(product *models.Product) error
	DeleteProduct(id uint) error
}

type productService struct {
	productRepo repository.ProductRepository
	cache       *redis.Client
	cacheTTL    time.Duration
}

func NewProductService(productRepo repository.ProductRepository, cache *redis.Client, cacheTTL time.Duration) ProductService {
	return &productService{productRepo: productRepo, cache: cache, cacheTTL: cacheTTL}
}

func (s *productService) CreateProduct(product *models.Product) error {
	return s.productRepo.Create(product)
}

func (s *productService) GetProductByID(id uint) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

func (s *productService) GetAllProducts() ([]models.Product, error) {
	return s.productRepo.GetAll()
}

func (s *productService) GetProductsPaginated(page, limit int) ([]models.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.productRepo.GetPaginated(page, limit)
}

// SearchProducts serves repeated queries from the cache; a miss falls
// through to the database and repopulates it.
func (s *productService) SearchProducts(query string) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Product{}, nil
	}

	cacheKey := strings.ToLower(query)
	if s.cache != nil {
		var cached []models.Product
		if err := s.cache.GetSearchResults(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	products, err := s.productRepo.Search(query)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetSearchResults(cacheKey, products, s.cacheTTL); err != nil {
			log.Printf("Warning: failed to cache search results: %v", err)
		}
	}
	return products, nil
}

func (s *productService) UpdateProduct(product *models.Product) error {
	return s.productRepo.Update(product)
}

func (s *productService) DeleteProduct(id uint) error {
	return s.productRepo.Delete(id)
}

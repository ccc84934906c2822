package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jortega/storefront/internal/domain/entity"
	"github.com/jortega/storefront/internal/domain/repository"
)

// InventoryService owns back-of-house stock records.
type InventoryService struct {
	Items  repository.InventoryRepository
	Logger *logrus.Logger
}

func NewInventoryService(items repository.InventoryRepository, logger *logrus.Logger) *InventoryService {
	return &InventoryService{Items: items, Logger: logger}
}

type InventoryInput struct {
	Name     string
	Quantity int
	Price    float64
}

func (in *InventoryInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if in.Quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "cannot be negative"}
	}
	if in.Price < 0 {
		return &ValidationError{Field: "price", Reason: "cannot be negative"}
	}
	return nil
}

func (s *InventoryService) Create(ctx context.Context, in InventoryInput) (*entity.InventoryItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	it := &entity.InventoryItem{
		Name:     strings.TrimSpace(in.Name),
		Quantity: in.Quantity,
		Price:    in.Price,
	}
	if err := s.Items.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *InventoryService) Get(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return s.Items.GetByID(ctx, id)
}

func (s *InventoryService) List(ctx context.Context) ([]entity.InventoryItem, error) {
	return s.Items.List(ctx)
}

func (s *InventoryService) Update(ctx context.Context, id string, in InventoryInput) (*entity.InventoryItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	it, err := s.Items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	it.Name = strings.TrimSpace(in.Name)
	it.Quantity = in.Quantity
	it.Price = in.Price
	if err := s.Items.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *InventoryService) Delete(ctx context.Context, id string) error {
	return s.Items.Delete(ctx, id)
}

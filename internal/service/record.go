package service

import (
	"context"

	"github.com/Astemirdum/lending-service/internal/model"
)

func (s *Service) CreateItem(ctx context.Context, req model.CreateItemRequest) (model.Item, error) {
	return s.repo.CreateItem(ctx, req)
}

func (s *Service) GetItem(ctx context.Context, id int64) (model.Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) ListItems(ctx context.Context, keyword string, page, size int) (model.ListItems, error) {
	return s.repo.ListItems(ctx, keyword, page, size)
}

func (s *Service) UpdateItem(ctx context.Context, id int64, req model.UpdateItemRequest) (model.Item, error) {
	return s.repo.UpdateItem(ctx, id, req)
}

func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	return s.repo.DeleteItem(ctx, id)
}

func (s *Service) CreateBorrower(ctx context.Context, req model.CreateBorrowerRequest) (model.Borrower, error) {
	return s.repo.CreateBorrower(ctx, req)
}

func (s *Service) GetBorrower(ctx context.Context, id int64) (model.Borrower, error) {
	return s.repo.GetBorrower(ctx, id)
}

func (s *Service) ListBorrowers(ctx context.Context, keyword string, page, size int) (model.ListBorrowers, error) {
	return s.repo.ListBorrowers(ctx, keyword, page, size)
}

func (s *Service) UpdateBorrower(ctx context.Context, id int64, req model.UpdateBorrowerRequest) (model.Borrower, error) {
	return s.repo.UpdateBorrower(ctx, id, req)
}

func (s *Service) DeleteBorrower(ctx context.Context, id int64) error {
	return s.repo.DeleteBorrower(ctx, id)
}

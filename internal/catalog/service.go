package catalog

import (
	"context"
	"strings"

	"foodcourt-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the read side the cart is filled from.
type Service interface {
	ListOrganizations(ctx context.Context) ([]string, error)
	ListVendors(ctx context.Context, org, search string) ([]*Vendor, error)
	ListMenu(ctx context.Context, vendorID string) ([]*MenuItem, error)
	GetMenuItem(ctx context.Context, itemID string) (*MenuItem, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListOrganizations(ctx context.Context) ([]string, error) {
	log := logger.For(ctx, "service", "ListOrganizations")

	orgs, err := s.repo.ListOrganizations(ctx)
	if err != nil {
		log.Error("failed to list organizations", zap.Error(err))
		return nil, err
	}

	log.Debug("ListOrganizations success", zap.Int("count", len(orgs)))
	return orgs, nil
}

func (s *service) ListVendors(ctx context.Context, org, search string) ([]*Vendor, error) {
	log := logger.For(ctx, "service", "ListVendors").With(zap.String("organization", org))

	org = strings.TrimSpace(org)
	if org == "" {
		return []*Vendor{}, nil
	}

	vendors, err := s.repo.ListVendors(ctx, org, search)
	if err != nil {
		log.Error("failed to list vendors", zap.Error(err))
		return nil, err
	}

	log.Debug("ListVendors success", zap.Int("count", len(vendors)))
	return vendors, nil
}

// ListMenu fails with ErrVendorNotFound for unknown and unapproved vendors alike.
func (s *service) ListMenu(ctx context.Context, vendorID string) ([]*MenuItem, error) {
	log := logger.For(ctx, "service", "ListMenu").With(zap.String("vendor_id", vendorID))

	if _, err := uuid.Parse(vendorID); err != nil {
		return nil, ErrInvalidVendorID
	}

	vendor, err := s.repo.GetVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(vendor.Status, StatusApproved) {
		log.Info("vendor not approved", zap.String("status", vendor.Status))
		return nil, ErrVendorNotFound
	}

	items, err := s.repo.ListMenu(ctx, vendorID)
	if err != nil {
		log.Error("failed to list menu", zap.Error(err))
		return nil, err
	}

	log.Debug("ListMenu success", zap.Int("count", len(items)))
	return items, nil
}

func (s *service) GetMenuItem(ctx context.Context, itemID string) (*MenuItem, error) {
	if _, err := uuid.Parse(itemID); err != nil {
		return nil, ErrInvalidMenuItemID
	}
	return s.repo.GetMenuItem(ctx, itemID)
}

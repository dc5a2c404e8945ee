package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"foodcourt-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListOrganizations(ctx context.Context) ([]string, error)
	ListVendors(ctx context.Context, org, search string) ([]*Vendor, error)
	GetVendor(ctx context.Context, vendorID string) (*Vendor, error)
	ListMenu(ctx context.Context, vendorID string) ([]*MenuItem, error)
	GetMenuItem(ctx context.Context, itemID string) (*MenuItem, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const menuItemColumns = `
		m.id,
		m.vendor_id,
		v.business_name,
		v.organization,
		m.name,
		m.description,
		m.price,
		m.image_url,
		m.category_id,
		c.name
	FROM menuitems m
	JOIN vendors v ON v.id = m.vendor_id
	LEFT JOIN categories c ON c.id = m.category_id`

func (r *repository) ListOrganizations(ctx context.Context) ([]string, error) {
	log := logger.For(ctx, "repository", "ListOrganizations")

	query := `
		SELECT DISTINCT v.organization
		FROM vendors v
		WHERE v.status = $1 AND v.organization <> ''
		ORDER BY v.organization ASC
	`

	rows, err := r.db.QueryContext(ctx, query, StatusApproved)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orgs := []string{}
	for rows.Next() {
		var org string
		if err := rows.Scan(&org); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		orgs = append(orgs, org)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return orgs, nil
}

func (r *repository) ListVendors(ctx context.Context, org, search string) ([]*Vendor, error) {
	log := logger.For(ctx, "repository", "ListVendors").With(
		zap.String("organization", org),
		zap.String("search", search),
	)

	query := `
		SELECT
			v.id,
			v.business_name,
			v.organization,
			v.status
		FROM vendors v
	`

	where := []string{"v.status = $1", "v.organization = $2"}
	args := []interface{}{StatusApproved, org}

	if search = strings.TrimSpace(search); search != "" {
		where = append(where, fmt.Sprintf("v.business_name ILIKE $%d", len(args)+1))
		args = append(args, "%"+search+"%")
	}

	query += " WHERE " + strings.Join(where, " AND ")
	query += " ORDER BY v.business_name ASC"

	log.Debug("Executing ListVendors query", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	vendors := []*Vendor{}
	for rows.Next() {
		var v Vendor
		if err := rows.Scan(&v.ID, &v.BusinessName, &v.Organization, &v.Status); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		vendors = append(vendors, &v)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return vendors, nil
}

func (r *repository) GetVendor(ctx context.Context, vendorID string) (*Vendor, error) {
	log := logger.For(ctx, "repository", "GetVendor").With(zap.String("vendor_id", vendorID))

	query := `
		SELECT id, business_name, organization, status
		FROM vendors
		WHERE id = $1
	`

	var v Vendor
	err := r.db.QueryRowContext(ctx, query, vendorID).
		Scan(&v.ID, &v.BusinessName, &v.Organization, &v.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}

	return &v, nil
}

func (r *repository) ListMenu(ctx context.Context, vendorID string) ([]*MenuItem, error) {
	log := logger.For(ctx, "repository", "ListMenu").With(zap.String("vendor_id", vendorID))

	query := `SELECT` + menuItemColumns + `
		WHERE m.vendor_id = $1
		ORDER BY c.name ASC NULLS LAST, m.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, vendorID)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := []*MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return items, nil
}

// GetMenuItem only returns items whose vendor is approved.
func (r *repository) GetMenuItem(ctx context.Context, itemID string) (*MenuItem, error) {
	log := logger.For(ctx, "repository", "GetMenuItem").With(zap.String("item_id", itemID))

	query := `SELECT` + menuItemColumns + `
		WHERE m.id = $1 AND v.status = $2
	`

	item, err := scanMenuItem(r.db.QueryRowContext(ctx, query, itemID, StatusApproved))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMenuItemNotFound
	}
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}

	return item, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMenuItem(s scanner) (*MenuItem, error) {
	var m MenuItem
	var description, imageURL, categoryID, categoryName sql.NullString

	err := s.Scan(
		&m.ID,
		&m.VendorID,
		&m.VendorName,
		&m.OrgName,
		&m.Name,
		&description,
		&m.Price,
		&imageURL,
		&categoryID,
		&categoryName,
	)
	if err != nil {
		return nil, err
	}

	m.Description = description.String
	m.ImageURL = imageURL.String
	m.CategoryID = categoryID.String
	m.CategoryName = categoryName.String
	return &m, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aistaff/platform/internal/database"
	apperrors "github.com/aistaff/platform/internal/errors"
	"github.com/aistaff/platform/internal/marketplace/domain"
)

// MySQLListingRepository handles listing persistence for MySQL.
type MySQLListingRepository struct {
	db *sql.DB
}

// NewMySQLListingRepository creates a new MySQLListingRepository.
func NewMySQLListingRepository(db *sql.DB) *MySQLListingRepository {
	return &MySQLListingRepository{
		db: db,
	}
}

// Create inserts a new listing and fills in the generated id.
func (r *MySQLListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	querier := database.GetTx(ctx, r.db)

	capabilities, err := marshalCapabilities(listing.Capabilities)
	if err != nil {
		return err
	}

	query := `INSERT INTO marketplace_listings
			  (name, description, price, author, capabilities, rating, downloads, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	result, err := querier.ExecContext(
		ctx, query,
		listing.Name, listing.Description, listing.Price, listing.Author,
		capabilities, listing.Rating, listing.Downloads,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create listing")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read generated listing id")
	}
	listing.ID = id
	return nil
}

// Get retrieves a listing by ID.
func (r *MySQLListingRepository) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, price, author, capabilities, rating, downloads, created_at, updated_at
			  FROM marketplace_listings WHERE id = ?`

	listing, err := scanListing(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get listing")
	}
	return listing, nil
}

// List retrieves listings ordered by ID.
func (r *MySQLListingRepository) List(ctx context.Context, offset, limit int) ([]*domain.Listing, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, price, author, capabilities, rating, downloads, created_at, updated_at
			  FROM marketplace_listings
			  ORDER BY id
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list listings")
	}
	defer rows.Close()

	listings := make([]*domain.Listing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan listing")
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate listings")
	}

	return listings, nil
}

// Update replaces the mutable fields of a listing.
func (r *MySQLListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	querier := database.GetTx(ctx, r.db)

	capabilities, err := marshalCapabilities(listing.Capabilities)
	if err != nil {
		return err
	}

	query := `UPDATE marketplace_listings
			  SET name = ?, description = ?, price = ?, author = ?, capabilities = ?, updated_at = NOW()
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx, query,
		listing.Name, listing.Description, listing.Price, listing.Author, capabilities, listing.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update listing")
	}
	return checkAffected(result)
}

// Delete removes a listing permanently.
func (r *MySQLListingRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM marketplace_listings WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete listing")
	}
	return checkAffected(result)
}

// IncrementDownloads bumps the download counter by one.
func (r *MySQLListingRepository) IncrementDownloads(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE marketplace_listings SET downloads = downloads + 1, updated_at = NOW() WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to increment downloads")
	}
	return checkAffected(result)
}

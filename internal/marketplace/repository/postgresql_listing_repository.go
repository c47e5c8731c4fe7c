// Package repository provides data persistence implementations for marketplace listings.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/aistaff/platform/internal/database"
	apperrors "github.com/aistaff/platform/internal/errors"
	"github.com/aistaff/platform/internal/marketplace/domain"
)

// PostgreSQLListingRepository handles listing persistence for PostgreSQL.
// Capability lists are stored as a JSON text column to preserve order.
type PostgreSQLListingRepository struct {
	db *sql.DB
}

// NewPostgreSQLListingRepository creates a new PostgreSQLListingRepository.
func NewPostgreSQLListingRepository(db *sql.DB) *PostgreSQLListingRepository {
	return &PostgreSQLListingRepository{
		db: db,
	}
}

// Create inserts a new listing and fills in the generated id.
func (r *PostgreSQLListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	querier := database.GetTx(ctx, r.db)

	capabilities, err := marshalCapabilities(listing.Capabilities)
	if err != nil {
		return err
	}

	query := `INSERT INTO marketplace_listings
			  (name, description, price, author, capabilities, rating, downloads, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			  RETURNING id`

	err = querier.QueryRowContext(
		ctx, query,
		listing.Name, listing.Description, listing.Price, listing.Author,
		capabilities, listing.Rating, listing.Downloads,
	).Scan(&listing.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create listing")
	}
	return nil
}

// Get retrieves a listing by ID.
func (r *PostgreSQLListingRepository) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, price, author, capabilities, rating, downloads, created_at, updated_at
			  FROM marketplace_listings WHERE id = $1`

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
func (r *PostgreSQLListingRepository) List(ctx context.Context, offset, limit int) ([]*domain.Listing, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, price, author, capabilities, rating, downloads, created_at, updated_at
			  FROM marketplace_listings
			  ORDER BY id
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
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
func (r *PostgreSQLListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	querier := database.GetTx(ctx, r.db)

	capabilities, err := marshalCapabilities(listing.Capabilities)
	if err != nil {
		return err
	}

	query := `UPDATE marketplace_listings
			  SET name = $1, description = $2, price = $3, author = $4, capabilities = $5, updated_at = NOW()
			  WHERE id = $6`

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
func (r *PostgreSQLListingRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM marketplace_listings WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete listing")
	}
	return checkAffected(result)
}

// IncrementDownloads bumps the download counter by one.
func (r *PostgreSQLListingRepository) IncrementDownloads(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE marketplace_listings SET downloads = downloads + 1, updated_at = NOW() WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to increment downloads")
	}
	return checkAffected(result)
}

// rowScanner lets scanListing work for both QueryRow and Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (*domain.Listing, error) {
	var listing domain.Listing
	var capabilities string

	err := row.Scan(
		&listing.ID, &listing.Name, &listing.Description, &listing.Price, &listing.Author,
		&capabilities, &listing.Rating, &listing.Downloads, &listing.CreatedAt, &listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(capabilities), &listing.Capabilities); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode listing capabilities")
	}
	return &listing, nil
}

func marshalCapabilities(capabilities []string) (string, error) {
	if capabilities == nil {
		capabilities = []string{}
	}
	encoded, err := json.Marshal(capabilities)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to encode listing capabilities")
	}
	return string(encoded), nil
}

func checkAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if rows == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

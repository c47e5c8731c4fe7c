// Package repository provides data persistence implementations for agent entities.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/aistaff/platform/internal/agent/domain"
	"github.com/aistaff/platform/internal/database"
	apperrors "github.com/aistaff/platform/internal/errors"
)

// PostgreSQLAgentRepository handles agent persistence for PostgreSQL.
// Capability lists are stored as a JSON text column to preserve order.
type PostgreSQLAgentRepository struct {
	db *sql.DB
}

// NewPostgreSQLAgentRepository creates a new PostgreSQLAgentRepository.
func NewPostgreSQLAgentRepository(db *sql.DB) *PostgreSQLAgentRepository {
	return &PostgreSQLAgentRepository{
		db: db,
	}
}

// Create inserts a new agent and fills in the generated id.
func (r *PostgreSQLAgentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	querier := database.GetTx(ctx, r.db)

	capabilities, err := marshalCapabilities(agent.Capabilities)
	if err != nil {
		return err
	}

	query := `INSERT INTO agents (name, description, capabilities, status, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			  RETURNING id`

	err = querier.QueryRowContext(
		ctx, query,
		agent.Name, agent.Description, capabilities, agent.Status, agent.IsActive,
	).Scan(&agent.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create agent")
	}
	return nil
}

// Get retrieves an agent by ID. Soft deleted agents are not visible.
func (r *PostgreSQLAgentRepository) Get(ctx context.Context, id int64) (*domain.Agent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, capabilities, status, is_active, created_at, updated_at
			  FROM agents WHERE id = $1 AND is_active = TRUE`

	agent, err := scanAgent(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAgentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get agent")
	}
	return agent, nil
}

// List retrieves active agents ordered by ID.
func (r *PostgreSQLAgentRepository) List(ctx context.Context, offset, limit int) ([]*domain.Agent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, capabilities, status, is_active, created_at, updated_at
			  FROM agents WHERE is_active = TRUE
			  ORDER BY id
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list agents")
	}
	defer rows.Close()

	agents := make([]*domain.Agent, 0)
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan agent")
		}
		agents = append(agents, agent)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate agents")
	}

	return agents, nil
}

// SoftDelete hides an agent by clearing the active flag.
func (r *PostgreSQLAgentRepository) SoftDelete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE agents SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete agent")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if rows == 0 {
		return domain.ErrAgentNotFound
	}
	return nil
}

// rowScanner lets scanAgent work for both QueryRow and Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAgent(row rowScanner) (*domain.Agent, error) {
	var agent domain.Agent
	var capabilities string

	err := row.Scan(
		&agent.ID, &agent.Name, &agent.Description, &capabilities,
		&agent.Status, &agent.IsActive, &agent.CreatedAt, &agent.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(capabilities), &agent.Capabilities); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode agent capabilities")
	}
	return &agent, nil
}

func marshalCapabilities(capabilities []string) (string, error) {
	if capabilities == nil {
		capabilities = []string{}
	}
	encoded, err := json.Marshal(capabilities)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to encode agent capabilities")
	}
	return string(encoded), nil
}

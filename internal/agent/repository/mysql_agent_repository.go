package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aistaff/platform/internal/agent/domain"
	"github.com/aistaff/platform/internal/database"
	apperrors "github.com/aistaff/platform/internal/errors"
)

// MySQLAgentRepository handles agent persistence for MySQL.
type MySQLAgentRepository struct {
	db *sql.DB
}

// NewMySQLAgentRepository creates a new MySQLAgentRepository.
func NewMySQLAgentRepository(db *sql.DB) *MySQLAgentRepository {
	return &MySQLAgentRepository{
		db: db,
	}
}

// Create inserts a new agent and fills in the generated id.
func (r *MySQLAgentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	querier := database.GetTx(ctx, r.db)

	capabilities, err := marshalCapabilities(agent.Capabilities)
	if err != nil {
		return err
	}

	query := `INSERT INTO agents (name, description, capabilities, status, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, NOW(), NOW())`

	result, err := querier.ExecContext(
		ctx, query,
		agent.Name, agent.Description, capabilities, agent.Status, agent.IsActive,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create agent")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read generated agent id")
	}
	agent.ID = id
	return nil
}

// Get retrieves an agent by ID. Soft deleted agents are not visible.
func (r *MySQLAgentRepository) Get(ctx context.Context, id int64) (*domain.Agent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, capabilities, status, is_active, created_at, updated_at
			  FROM agents WHERE id = ? AND is_active = TRUE`

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
func (r *MySQLAgentRepository) List(ctx context.Context, offset, limit int) ([]*domain.Agent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, capabilities, status, is_active, created_at, updated_at
			  FROM agents WHERE is_active = TRUE
			  ORDER BY id
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
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
func (r *MySQLAgentRepository) SoftDelete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE agents SET is_active = FALSE, updated_at = NOW() WHERE id = ? AND is_active = TRUE`

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

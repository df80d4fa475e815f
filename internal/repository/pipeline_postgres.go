package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/salesflow/crm/internal/domain"
)

type pipelineRepository struct {
	db *sql.DB
}

func NewPipelineRepository(db *sql.DB) domain.PipelineRepository {
	return &pipelineRepository{db: db}
}

func (r *pipelineRepository) CreatePipeline(ctx context.Context, p *domain.Pipeline) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	return withTransaction(ctx, r.db, func(tx *sql.Tx) error {
		if p.IsDefault {
			if _, err := tx.ExecContext(ctx, `UPDATE pipelines SET is_default = false WHERE organization_id = $1`, p.OrganizationID); err != nil {
				return fmt.Errorf("failed to reset default pipeline: %w", err)
			}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO pipelines (id, organization_id, name, is_default, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			p.ID, p.OrganizationID, p.Name, p.IsDefault, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.NewConflictError("pipeline %s already exists", p.Name)
			}
			return fmt.Errorf("failed to create pipeline: %w", err)
		}
		for _, s := range p.Stages {
			if err := insertStage(ctx, tx, p.ID, s); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertStage(ctx context.Context, tx *sql.Tx, pipelineID string, s *domain.Stage) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	s.PipelineID = pipelineID
	_, err := tx.ExecContext(ctx, `
		INSERT INTO pipeline_stages (id, pipeline_id, name, position, probability, is_won, is_lost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.PipelineID, s.Name, s.Position, s.Probability, s.IsWon, s.IsLost,
	)
	if err != nil {
		return fmt.Errorf("failed to create stage %s: %w", s.Name, err)
	}
	return nil
}

func (r *pipelineRepository) loadStages(ctx context.Context, pipelineIDs []string) (map[string][]*domain.Stage, error) {
	out := make(map[string][]*domain.Stage)
	if len(pipelineIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pipeline_id, name, position, probability, is_won, is_lost
		FROM pipeline_stages
		WHERE pipeline_id = ANY($1)
		ORDER BY pipeline_id, position`, pq.Array(pipelineIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load stages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s domain.Stage
		if err := rows.Scan(&s.ID, &s.PipelineID, &s.Name, &s.Position, &s.Probability, &s.IsWon, &s.IsLost); err != nil {
			return nil, fmt.Errorf("failed to scan stage: %w", err)
		}
		out[s.PipelineID] = append(out[s.PipelineID], &s)
	}
	return out, rows.Err()
}

func (r *pipelineRepository) GetPipeline(ctx context.Context, organizationID, id string) (*domain.Pipeline, error) {
	var p domain.Pipeline
	err := r.db.QueryRowContext(ctx, `
		SELECT id, organization_id, name, is_default, created_at, updated_at
		FROM pipelines WHERE organization_id = $1 AND id = $2`, organizationID, id,
	).Scan(&p.ID, &p.OrganizationID, &p.Name, &p.IsDefault, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("pipeline", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pipeline: %w", err)
	}
	stages, err := r.loadStages(ctx, []string{p.ID})
	if err != nil {
		return nil, err
	}
	p.Stages = stages[p.ID]
	return &p, nil
}

func (r *pipelineRepository) ListPipelines(ctx context.Context, organizationID string) ([]*domain.Pipeline, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, organization_id, name, is_default, created_at, updated_at
		FROM pipelines WHERE organization_id = $1
		ORDER BY is_default DESC, created_at`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pipelines: %w", err)
	}
	defer rows.Close()

	pipelines := []*domain.Pipeline{}
	var ids []string
	for rows.Next() {
		var p domain.Pipeline
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.Name, &p.IsDefault, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pipeline: %w", err)
		}
		pipelines = append(pipelines, &p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	stages, err := r.loadStages(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range pipelines {
		p.Stages = stages[p.ID]
	}
	return pipelines, nil
}

// UpdatePipeline replaces the stage set; removing a stage that still holds opportunities is a conflict.
func (r *pipelineRepository) UpdatePipeline(ctx context.Context, p *domain.Pipeline) error {
	p.UpdatedAt = time.Now().UTC()
	return withTransaction(ctx, r.db, func(tx *sql.Tx) error {
		if p.IsDefault {
			if _, err := tx.ExecContext(ctx, `UPDATE pipelines SET is_default = false WHERE organization_id = $1 AND id <> $2`, p.OrganizationID, p.ID); err != nil {
				return fmt.Errorf("failed to reset default pipeline: %w", err)
			}
		}
		res, err := tx.ExecContext(ctx, `
			UPDATE pipelines SET name = $1, is_default = $2, updated_at = $3
			WHERE organization_id = $4 AND id = $5`,
			p.Name, p.IsDefault, p.UpdatedAt, p.OrganizationID, p.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update pipeline: %w", err)
		}
		if err := rowsAffectedOrNotFound(res, "pipeline", p.ID); err != nil {
			return err
		}

		keep := make([]string, 0, len(p.Stages))
		for _, s := range p.Stages {
			if s.ID == "" {
				if err := insertStage(ctx, tx, p.ID, s); err != nil {
					return err
				}
			} else {
				_, err := tx.ExecContext(ctx, `
					UPDATE pipeline_stages SET name = $1, position = $2, probability = $3, is_won = $4, is_lost = $5
					WHERE pipeline_id = $6 AND id = $7`,
					s.Name, s.Position, s.Probability, s.IsWon, s.IsLost, p.ID, s.ID,
				)
				if err != nil {
					return fmt.Errorf("failed to update stage %s: %w", s.Name, err)
				}
			}
			keep = append(keep, s.ID)
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM pipeline_stages WHERE pipeline_id = $1 AND NOT (id = ANY($2))`, p.ID, pq.Array(keep))
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.NewConflictError("cannot remove a stage that still has opportunities")
			}
			return fmt.Errorf("failed to remove stages: %w", err)
		}
		return nil
	})
}

func (r *pipelineRepository) DeletePipeline(ctx context.Context, organizationID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pipelines WHERE organization_id = $1 AND id = $2`, organizationID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewConflictError("pipeline still has opportunities")
		}
		return fmt.Errorf("failed to delete pipeline: %w", err)
	}
	return rowsAffectedOrNotFound(res, "pipeline", id)
}

func (r *pipelineRepository) UpdateStagePositions(ctx context.Context, pipelineID string, stageIDs []string) error {
	return withTransaction(ctx, r.db, func(tx *sql.Tx) error {
		for pos, id := range stageIDs {
			res, err := tx.ExecContext(ctx,
				`UPDATE pipeline_stages SET position = $1 WHERE pipeline_id = $2 AND id = $3`, pos, pipelineID, id)
			if err != nil {
				return fmt.Errorf("failed to reorder stages: %w", err)
			}
			if err := rowsAffectedOrNotFound(res, "stage", id); err != nil {
				return err
			}
		}
		return nil
	})
}

var opportunityColumns = []string{
	"opportunities.id", "opportunities.organization_id", "opportunities.pipeline_id", "opportunities.stage_id",
	"opportunities.contact_id", "opportunities.title", "opportunities.value", "opportunities.currency",
	"opportunities.probability", "opportunities.expected_close_date", "opportunities.status", "opportunities.owner_id",
	"opportunities.notes", "opportunities.metakocka_order_id", "opportunities.closed_at",
	"opportunities.created_at", "opportunities.updated_at",
}

func scanOpportunity(row interface{ Scan(...interface{}) error }) (*domain.Opportunity, error) {
	var o domain.Opportunity
	var contactID, ownerID, orderID sql.NullString
	var expected, closed sql.NullTime
	err := row.Scan(&o.ID, &o.OrganizationID, &o.PipelineID, &o.StageID, &contactID, &o.Title, &o.Value, &o.Currency,
		&o.Probability, &expected, &o.Status, &ownerID, &o.Notes, &orderID, &closed, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.ContactID = stringPtr(contactID)
	o.OwnerID = stringPtr(ownerID)
	o.MetakockaOrderID = stringPtr(orderID)
	o.ExpectedCloseDate = timePtr(expected)
	o.ClosedAt = timePtr(closed)
	return &o, nil
}

func (r *pipelineRepository) CreateOpportunity(ctx context.Context, o *domain.Opportunity) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	o.CreatedAt, o.UpdatedAt = now, now

	query, args, err := psql.Insert("opportunities").
		Columns("id", "organization_id", "pipeline_id", "stage_id", "contact_id", "title", "value", "currency",
			"probability", "expected_close_date", "status", "owner_id", "notes", "closed_at", "created_at", "updated_at").
		Values(o.ID, o.OrganizationID, o.PipelineID, o.StageID, nullString(o.ContactID), o.Title, o.Value, o.Currency,
			o.Probability, o.ExpectedCloseDate, o.Status, nullString(o.OwnerID), o.Notes, o.ClosedAt, o.CreatedAt, o.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("unknown contact, pipeline or stage")
		}
		return fmt.Errorf("failed to create opportunity: %w", err)
	}
	return nil
}

func (r *pipelineRepository) GetOpportunity(ctx context.Context, organizationID, id string) (*domain.Opportunity, error) {
	query, args, err := psql.Select(opportunityColumns...).From("opportunities").
		Where(sq.Eq{"opportunities.organization_id": organizationID, "opportunities.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	o, err := scanOpportunity(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("opportunity", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}
	return o, nil
}

func (r *pipelineRepository) ListOpportunities(ctx context.Context, req domain.ListOpportunitiesRequest) (*domain.ListOpportunitiesResponse, error) {
	q := psql.Select(opportunityColumns...).From("opportunities").
		Where(sq.Eq{"opportunities.organization_id": req.OrganizationID})
	if req.PipelineID != "" {
		q = q.Where(sq.Eq{"opportunities.pipeline_id": req.PipelineID})
	}
	if req.StageID != "" {
		q = q.Where(sq.Eq{"opportunities.stage_id": req.StageID})
	}
	if req.Status != "" {
		q = q.Where(sq.Eq{"opportunities.status": req.Status})
	}
	if req.ContactID != "" {
		q = q.Where(sq.Eq{"opportunities.contact_id": req.ContactID})
	}
	q, err := keysetPage(q, "opportunities", req.Page)
	if err != nil {
		return nil, err
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	defer rows.Close()

	items := []*domain.Opportunity{}
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		items = append(items, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	resp := &domain.ListOpportunitiesResponse{Opportunities: items}
	req.Page.Normalize()
	if len(items) > req.Limit {
		last := items[req.Limit-1]
		resp.NextCursor = domain.EncodeCursor(last.CreatedAt, last.ID)
		resp.Opportunities = items[:req.Limit]
	}
	return resp, nil
}

func (r *pipelineRepository) UpdateOpportunity(ctx context.Context, o *domain.Opportunity) error {
	o.UpdatedAt = time.Now().UTC()
	query, args, err := psql.Update("opportunities").
		SetMap(map[string]interface{}{
			"stage_id":            o.StageID,
			"contact_id":          nullString(o.ContactID),
			"title":               o.Title,
			"value":               o.Value,
			"currency":            o.Currency,
			"probability":         o.Probability,
			"expected_close_date": o.ExpectedCloseDate,
			"status":              o.Status,
			"owner_id":            nullString(o.OwnerID),
			"notes":               o.Notes,
			"metakocka_order_id":  nullString(o.MetakockaOrderID),
			"closed_at":           o.ClosedAt,
			"updated_at":          o.UpdatedAt,
		}).
		Where(sq.Eq{"organization_id": o.OrganizationID, "id": o.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update opportunity: %w", err)
	}
	return rowsAffectedOrNotFound(res, "opportunity", o.ID)
}

func (r *pipelineRepository) DeleteOpportunity(ctx context.Context, organizationID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM opportunities WHERE organization_id = $1 AND id = $2`, organizationID, id)
	if err != nil {
		return fmt.Errorf("failed to delete opportunity: %w", err)
	}
	return rowsAffectedOrNotFound(res, "opportunity", id)
}

func (r *pipelineRepository) StageTotals(ctx context.Context, organizationID, pipelineID string) (map[string]*domain.StageSummary, map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT stage_id, COUNT(*), COALESCE(SUM(value), 0), COALESCE(SUM(value * probability / 100), 0)
		FROM opportunities
		WHERE organization_id = $1 AND pipeline_id = $2
		GROUP BY stage_id`, organizationID, pipelineID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to aggregate opportunities: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]*domain.StageSummary)
	weighted := make(map[string]int64)
	for rows.Next() {
		var s domain.StageSummary
		var w int64
		if err := rows.Scan(&s.StageID, &s.Count, &s.TotalValue, &w); err != nil {
			return nil, nil, fmt.Errorf("failed to scan totals: %w", err)
		}
		totals[s.StageID] = &s
		weighted[s.StageID] = w
	}
	return totals, weighted, rows.Err()
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"data-catalog/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.DataProduct) error
	GetByID(ctx context.Context, id int64) (*domain.DataProduct, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.DataProduct, error)
	Update(ctx context.Context, product *domain.DataProduct) error
	Delete(ctx context.Context, id int64) (bool, error)
	Stats(ctx context.Context) (*domain.CatalogStats, error)
	Count(ctx context.Context) (int64, error)
}

type productRepository struct {
	db sqlx.ExtContext
}

func NewProductRepository(db sqlx.ExtContext) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *domain.DataProduct) error {
	query := `
		INSERT INTO data_products (name, description, type, domain, status, owner, owner_initials,
			tags, metadata, contract_sla, quality_metrics, technical_contact, business_contact,
			data_source, update_frequency, api_endpoint, documentation_url, documentation_content,
			model_type, confidence_level, compliance_level, upstream_sources, downstream_targets)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23)
		RETURNING id, last_updated, created_at`

	return r.db.QueryRowxContext(ctx, query,
		p.Name, p.Description, p.Type, p.Domain, p.Status, p.Owner, p.OwnerInitials,
		p.Tags, p.Metadata, p.ContractSLA, p.QualityMetrics, p.TechnicalContact, p.BusinessContact,
		p.DataSource, p.UpdateFrequency, p.APIEndpoint, p.DocumentationURL, p.DocumentationContent,
		p.ModelType, p.ConfidenceLevel, p.ComplianceLevel, p.UpstreamSources, p.DownstreamTargets,
	).Scan(&p.ID, &p.LastUpdated, &p.CreatedAt)
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.DataProduct, error) {
	var product domain.DataProduct
	query := `SELECT * FROM data_products WHERE id = $1`

	err := sqlx.GetContext(ctx, r.db, &product, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.DataProduct, error) {
	filter = filter.Normalize()

	var (
		conditions []string
		args       []any
	)
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf(
			`(name ILIKE $%[1]d OR description ILIKE $%[1]d OR owner ILIKE $%[1]d
				OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $%[1]d))`, len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Domain != "" {
		args = append(args, filter.Domain)
		conditions = append(conditions, fmt.Sprintf("domain = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT * FROM data_products`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY last_updated, id"

	products := []domain.DataProduct{}
	if err := sqlx.SelectContext(ctx, r.db, &products, query, args...); err != nil {
		return nil, err
	}
	return products, nil
}

// Update writes every column of p and refreshes last_updated. It returns
// domain.ErrProductNotFound when the row no longer exists.
func (r *productRepository) Update(ctx context.Context, p *domain.DataProduct) error {
	query := `
		UPDATE data_products
		SET name = $2, description = $3, type = $4, domain = $5, status = $6, owner = $7,
			owner_initials = $8, tags = $9, metadata = $10, contract_sla = $11,
			quality_metrics = $12, technical_contact = $13, business_contact = $14,
			data_source = $15, update_frequency = $16, api_endpoint = $17,
			documentation_url = $18, documentation_content = $19, model_type = $20,
			confidence_level = $21, compliance_level = $22, upstream_sources = $23,
			downstream_targets = $24, last_updated = GREATEST(NOW(), created_at)
		WHERE id = $1
		RETURNING last_updated`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID, p.Name, p.Description, p.Type, p.Domain, p.Status, p.Owner,
		p.OwnerInitials, p.Tags, p.Metadata, p.ContractSLA,
		p.QualityMetrics, p.TechnicalContact, p.BusinessContact,
		p.DataSource, p.UpdateFrequency, p.APIEndpoint,
		p.DocumentationURL, p.DocumentationContent, p.ModelType,
		p.ConfidenceLevel, p.ComplianceLevel, p.UpstreamSources,
		p.DownstreamTargets,
	).Scan(&p.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProductNotFound
	}
	return err
}

func (r *productRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM data_products WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *productRepository) Stats(ctx context.Context) (*domain.CatalogStats, error) {
	var stats domain.CatalogStats
	query := `
		SELECT
			COUNT(*) AS total_products,
			COUNT(*) FILTER (WHERE status = 'active') AS active_products,
			COUNT(*) FILTER (WHERE contract_sla IS NOT NULL AND contract_sla <> '') AS with_contracts,
			COUNT(*) FILTER (WHERE status IN ('deprecated', 'development')) AS needs_attention
		FROM data_products`

	if err := sqlx.GetContext(ctx, r.db, &stats, query); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := sqlx.GetContext(ctx, r.db, &count, `SELECT COUNT(*) FROM data_products`)
	return count, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

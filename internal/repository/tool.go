package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"aifinder/internal/domain"
)

type toolRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Price       string         `db:"price"`
	Description string         `db:"description"`
	Link        string         `db:"link"`
	Tags        pq.StringArray `db:"tags"`
	Featured    bool           `db:"featured"`
}

type functionRow struct {
	ToolID   string `db:"tool_id"`
	Category string `db:"category"`
}

type seedRatingRow struct {
	ToolID   string `db:"tool_id"`
	Category string `db:"category"`
	Value    int    `db:"value"`
}

// ToolRepository reads and replaces the catalog kept in postgres. It is a
// catalog.Loader.
type ToolRepository struct {
	db *sqlx.DB
}

func NewToolRepository(db *sqlx.DB) *ToolRepository {
	return &ToolRepository{db: db}
}

func (r *ToolRepository) Load(ctx context.Context) ([]domain.Tool, error) {
	return r.FindAll(ctx)
}

// FindAll assembles every tool with its functions and seed ratings, in
// catalog order.
func (r *ToolRepository) FindAll(ctx context.Context) ([]domain.Tool, error) {
	return findAll(ctx, r.db)
}

func findAll(ctx context.Context, db ExtHandle) ([]domain.Tool, error) {
	var rows []toolRow
	query := `
		SELECT id, name, price, description, link, tags, featured
		FROM tools
		ORDER BY position ASC, id ASC
	`
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select tools: %w", err)
	}

	var functions []functionRow
	query = `
		SELECT tool_id, category
		FROM tool_functions
		ORDER BY tool_id, position ASC
	`
	if err := db.SelectContext(ctx, &functions, query); err != nil {
		return nil, fmt.Errorf("select tool functions: %w", err)
	}

	var seeds []seedRatingRow
	query = `
		SELECT tool_id, category, value
		FROM tool_seed_ratings
		ORDER BY id ASC
	`
	if err := db.SelectContext(ctx, &seeds, query); err != nil {
		return nil, fmt.Errorf("select seed ratings: %w", err)
	}

	byID := make(map[string]*domain.Tool, len(rows))
	tools := make([]domain.Tool, len(rows))
	for i, row := range rows {
		tools[i] = domain.Tool{
			ID:          row.ID,
			Name:        row.Name,
			Price:       domain.Price(row.Price),
			Description: row.Description,
			Link:        row.Link,
			Tags:        []string(row.Tags),
			Featured:    row.Featured,
		}
		byID[row.ID] = &tools[i]
	}

	for _, fn := range functions {
		if tool, ok := byID[fn.ToolID]; ok {
			tool.Functions = append(tool.Functions, fn.Category)
		}
	}

	for _, seed := range seeds {
		tool, ok := byID[seed.ToolID]
		if !ok {
			continue
		}
		if tool.Ratings == nil {
			tool.Ratings = make(map[string][]int)
		}
		tool.Ratings[seed.Category] = append(tool.Ratings[seed.Category], seed.Value)
	}

	return tools, nil
}

// ReplaceAll swaps the stored catalog for tools in a single transaction.
func (r *ToolRepository) ReplaceAll(ctx context.Context, tools []domain.Tool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tools`); err != nil {
		return fmt.Errorf("clear tools: %w", err)
	}

	for position, tool := range tools {
		if err := insertTool(ctx, tx, tool, position); err != nil {
			return fmt.Errorf("insert tool %s: %w", tool.ID, err)
		}
	}

	return tx.Commit()
}

func insertTool(ctx context.Context, db ExtHandle, tool domain.Tool, position int) error {
	query := `
		INSERT INTO tools (id, name, price, description, link, tags, featured, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	tags := tool.Tags
	if tags == nil {
		tags = []string{}
	}
	_, err := db.ExecContext(ctx, query,
		tool.ID, tool.Name, string(tool.Price), tool.Description, tool.Link,
		pq.Array(tags), tool.Featured, position,
	)
	if err != nil {
		return err
	}

	for i, category := range tool.Functions {
		_, err := db.ExecContext(ctx,
			`INSERT INTO tool_functions (tool_id, category, position) VALUES ($1, $2, $3)`,
			tool.ID, category, i,
		)
		if err != nil {
			return err
		}
		for _, value := range tool.Ratings[category] {
			_, err := db.ExecContext(ctx,
				`INSERT INTO tool_seed_ratings (tool_id, category, value) VALUES ($1, $2, $3)`,
				tool.ID, category, value,
			)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

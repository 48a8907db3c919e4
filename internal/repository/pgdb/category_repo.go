package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
// Категории заполняются миграциями, репозиторий только читает.
type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

func (c *CategoryRepo) db(ctx context.Context) querier {
	if tx, err := tr.TxFromCtx(ctx); err == nil {
		return tx
	}
	return c.pool
}

// ListAll возвращает все категории, отсортированные по имени.
func (c *CategoryRepo) ListAll(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT id, name FROM categories ORDER BY name`

	rows, err := c.db(ctx).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Category, 0)
	for rows.Next() {
		var model converter.CategoryModel
		if err := rows.Scan(&model.ID, &model.Name); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *c.conv.ToEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// GetByID возвращает категорию по id.
// Возвращает e.ErrCategoryNotFound, если строки нет.
func (c *CategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `SELECT id, name FROM categories WHERE id = $1`

	var model converter.CategoryModel
	if err := c.db(ctx).QueryRow(ctx, query, id).Scan(&model.ID, &model.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrCategoryNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

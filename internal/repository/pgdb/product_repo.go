package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const uniqueViolationCode = "23505"

// querier — операции pgx, общие для pgxpool.Pool и pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// db возвращает транзакцию из контекста, если она открыта, иначе пул.
func (p *ProductRepo) db(ctx context.Context) querier {
	if tx, err := tr.TxFromCtx(ctx); err == nil {
		return tx
	}
	return p.pool
}

// Search возвращает страницу продуктов с названием категории и общее число
// строк, попавших под фильтр. Поиск по имени и SKU без учёта регистра,
// сортировка — от новых к старым (id DESC).
func (p *ProductRepo) Search(ctx context.Context, req *usecase.SearchProductsReq) ([]usecase.ProductInfo, int64, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM products pr
		WHERE ($1 = '' OR pr.product_name ILIKE '%' || $1 || '%' OR pr.sku ILIKE '%' || $1 || '%')
		  AND ($2::bigint IS NULL OR pr.category_id = $2)
	`

	var total int64
	if err := p.db(ctx).QueryRow(ctx, countQuery, req.Term, req.CategoryID).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		SELECT pr.id, pr.product_name, pr.sku, pr.price_cents, pr.category_id,
		       pr.status, pr.photo, pr.created_at, pr.updated_at, cat.name AS category_name
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
		WHERE ($1 = '' OR pr.product_name ILIKE '%' || $1 || '%' OR pr.sku ILIKE '%' || $1 || '%')
		  AND ($2::bigint IS NULL OR pr.category_id = $2)
		ORDER BY pr.id DESC
		LIMIT $3 OFFSET $4
	`

	offset := (req.Page - 1) * req.PageSize
	rows, err := p.db(ctx).Query(ctx, query, req.Term, req.CategoryID, req.PageSize, offset)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.ProductInfo, 0)
	for rows.Next() {
		var model converter.ProductInfoModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.SKU, &model.PriceCents, &model.CategoryID,
			&model.Status, &model.Photo, &model.CreatedAt, &model.UpdatedAt, &model.CategoryName,
		); err != nil {
			return nil, 0, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *p.conv.ToInfo(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, total, nil
}

// GetByID возвращает продукт с названием категории.
// Возвращает e.ErrProductNotFound, если строки нет.
func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*usecase.ProductInfo, error) {
	query := `
		SELECT pr.id, pr.product_name, pr.sku, pr.price_cents, pr.category_id,
		       pr.status, pr.photo, pr.created_at, pr.updated_at, cat.name AS category_name
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
		WHERE pr.id = $1
	`

	var model converter.ProductInfoModel
	err := p.db(ctx).QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Name, &model.SKU, &model.PriceCents, &model.CategoryID,
		&model.Status, &model.Photo, &model.CreatedAt, &model.UpdatedAt, &model.CategoryName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToInfo(&model), nil
}

// ExistsBySKU сообщает, занят ли SKU каким-либо продуктом.
func (p *ProductRepo) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE sku = $1)`

	var exists bool
	if err := p.db(ctx).QueryRow(ctx, query, sku).Scan(&exists); err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}

// ExistsBySKUExcludingID сообщает, занят ли SKU другим продуктом.
// Используется при обновлении, чтобы продукт не конфликтовал сам с собой.
func (p *ProductRepo) ExistsBySKUExcludingID(ctx context.Context, sku string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE sku = $1 AND id <> $2)`

	var exists bool
	if err := p.db(ctx).QueryRow(ctx, query, sku, excludeID).Scan(&exists); err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}

// Create вставляет продукт и возвращает присвоенный id.
// Нарушение уникальности sku (гонка, проигранная на предварительной
// проверке) транслируется в e.ErrSkuNotUnique.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (int64, error) {
	query := `
		INSERT INTO products (product_name, sku, price_cents, category_id, status, photo)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	model := p.conv.ToModel(product)

	var id int64
	err := p.db(ctx).QueryRow(ctx, query,
		model.Name, model.SKU, model.PriceCents, model.CategoryID, model.Status, model.Photo,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, e.ErrSkuNotUnique
		}
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return id, nil
}

// Update полностью заменяет изменяемые поля продукта по id.
// Возвращает e.ErrProductNotFound, если строка не существует.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET product_name = $2,
		    sku = $3,
		    price_cents = $4,
		    category_id = $5,
		    status = $6,
		    photo = $7,
		    updated_at = NOW()
		WHERE id = $1
	`

	model := p.conv.ToModel(product)

	tag, err := p.db(ctx).Exec(ctx, query,
		model.ID, model.Name, model.SKU, model.PriceCents, model.CategoryID, model.Status, model.Photo,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return e.ErrSkuNotUnique
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.ErrProductNotFound
	}

	return nil
}

// Delete удаляет строку продукта. Отсутствие строки не считается ошибкой.
func (p *ProductRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	if _, err := p.db(ctx).Exec(ctx, query, id); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// isUniqueViolation распознаёт нарушение уникального ограничения PostgreSQL.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ProductUseCase реализует бизнес-логику управления каталогом продуктов:
// валидацию, проверку уникальности SKU, работу с фото и фиксацию изменений.
type ProductUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	dbPool       transaction.Transactional
	photos       PhotosInfra
	cacheRepo    CacheRepository
	logger       logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	dbPool transaction.Transactional,
	photos PhotosInfra,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		dbPool:       dbPool,
		photos:       photos,
		cacheRepo:    cacheRepo,
		logger:       logger,
	}
}

// SearchProducts возвращает страницу продуктов по поисковому запросу и фильтру категории.
// Page < 1 и PageSize < 1 приводятся к допустимым значениям, отрицательный offset невозможен.
func (p *ProductUseCase) SearchProducts(ctx context.Context, req *SearchProductsReq) (*SearchProductsRes, error) {
	const op = "ProductUseCase.SearchProducts"

	normalized := *req
	if normalized.Page < 1 {
		normalized.Page = 1
	}
	if normalized.PageSize < 1 {
		normalized.PageSize = defaultPageSize
	}
	if normalized.PageSize > maxPageSize {
		normalized.PageSize = maxPageSize
	}

	products, total, err := p.productRepo.Search(ctx, &normalized)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewSearchProductsRes(products, total, normalized.Page, normalized.PageSize), nil
}

// GetProductByID возвращает продукт с названием категории.
// Сначала проверяется кэш; промах и ошибка кэша приводят к чтению из БД.
func (p *ProductUseCase) GetProductByID(ctx context.Context, id int64) (*ProductInfo, error) {
	const op = "ProductUseCase.GetProductByID"

	if cached, err := p.cacheRepo.GetProduct(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Фоновое добавление продукта в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := p.cacheRepo.SetProduct(bgCtx, product); err != nil {
			p.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return product, nil
}

// CreateProduct проверяет кандидата и сохраняет его вместе с необязательным фото.
// Фото сохраняется только после прохождения всех остальных проверок; при
// неудачной вставке строки сохранённый файл компенсируется фоновой очисткой.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *SaveProductReq) (int64, error) {
	const op = "ProductUseCase.CreateProduct"

	normalizeProductReq(req)

	if err := p.validateProduct(ctx, req, false); err != nil {
		return 0, e.Wrap(op, err)
	}

	var photoPath *string
	if req.Photo != nil {
		if err := p.photos.Validate(req.Photo.FileName, req.Photo.Size); err != nil {
			return 0, e.Wrap(op, err)
		}

		path, err := p.photos.Save(ctx, req.Photo)
		if err != nil {
			return 0, e.Wrap(op, err)
		}
		photoPath = &path
	}

	product := domain.NewProduct(req.Name, req.SKU, req.PriceCents, req.CategoryID, req.Status, photoPath)

	id, err := p.insertProduct(ctx, product)
	if err != nil {
		if photoPath != nil {
			p.logger.Warnf(
				"Cleaning up orphaned photo after failed insert. sku: %s, error: %v",
				req.SKU,
				e.Wrap(op, err),
			)
			p.photos.CleanupPhotos([]string{*photoPath})
		}

		return 0, e.Wrap(op, err)
	}

	p.invalidateCache(ctx, id)

	return id, nil
}

// UpdateProduct полностью заменяет изменяемые поля продукта после повторной валидации.
// Старое фото удаляется только после успешного сохранения нового файла
// и успешного обновления строки — фото не теряется при неудачной записи.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, req *SaveProductReq) error {
	const op = "ProductUseCase.UpdateProduct"

	normalizeProductReq(req)

	current, err := p.productRepo.GetByID(ctx, req.ID)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := p.validateProduct(ctx, req, true); err != nil {
		return e.Wrap(op, err)
	}

	photoPath := current.Photo
	var newPath *string
	if req.Photo != nil {
		if err := p.photos.Validate(req.Photo.FileName, req.Photo.Size); err != nil {
			return e.Wrap(op, err)
		}

		path, err := p.photos.Save(ctx, req.Photo)
		if err != nil {
			return e.Wrap(op, err)
		}
		newPath = &path
		photoPath = newPath
	}

	product := &domain.Product{
		ID:         req.ID,
		Name:       req.Name,
		SKU:        req.SKU,
		PriceCents: req.PriceCents,
		CategoryID: req.CategoryID,
		Status:     req.Status,
		Photo:      photoPath,
	}

	if err := p.updateProduct(ctx, product); err != nil {
		if newPath != nil {
			p.logger.Warnf(
				"Cleaning up new photo after failed update. id: %d, error: %v",
				req.ID,
				e.Wrap(op, err),
			)
			p.photos.CleanupPhotos([]string{*newPath})
		}

		return e.Wrap(op, err)
	}

	if newPath != nil && current.Photo != nil {
		if err := p.photos.Delete(ctx, *current.Photo); err != nil {
			p.logger.Warnf("Failed to delete replaced photo %s: %v", *current.Photo, e.Wrap(op, err))
		}
	}

	p.invalidateCache(ctx, req.ID)

	return nil
}

// DeleteProduct удаляет продукт вместе с его фото.
// Удаление несуществующего id — не ошибка, операция идемпотентна для вызывающего.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, id int64) error {
	const op = "ProductUseCase.DeleteProduct"

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrProductNotFound) {
			return nil
		}

		return e.Wrap(op, err)
	}

	if product.Photo != nil {
		if err := p.photos.Delete(ctx, *product.Photo); err != nil {
			p.logger.Warnf("Failed to delete photo %s: %v", *product.Photo, e.Wrap(op, err))
		}
	}

	if err := p.productRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	p.invalidateCache(ctx, id)

	return nil
}

// ListCategories возвращает все категории, отсортированные по имени.
func (p *ProductUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "ProductUseCase.ListCategories"

	categories, err := p.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return categories, nil
}

// GetCategoryByID возвращает категорию по идентификатору.
func (p *ProductUseCase) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	const op = "ProductUseCase.GetCategoryByID"

	category, err := p.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return category, nil
}

// insertProduct вставляет строку продукта в рамках транзакции.
func (p *ProductUseCase) insertProduct(ctx context.Context, product *domain.Product) (int64, error) {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	var id int64
	id, err = p.productRepo.Create(ctx, product)
	if err != nil {
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}

	return id, nil
}

// updateProduct обновляет строку продукта в рамках транзакции.
func (p *ProductUseCase) updateProduct(ctx context.Context, product *domain.Product) error {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err = p.productRepo.Update(ctx, product); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// validateProduct проверяет бизнес-правила кандидата.
// Предварительная проверка уникальности SKU — best effort: гонку двух
// параллельных запросов окончательно разрешает уникальный индекс в базе.
func (p *ProductUseCase) validateProduct(ctx context.Context, req *SaveProductReq, isUpdate bool) error {
	if req.Name == "" {
		return e.ErrProductNameRequired
	}

	if req.SKU == "" {
		return e.ErrSkuRequired
	}

	if req.PriceCents <= 0 {
		return e.ErrPriceMustBePositive
	}

	if req.CategoryID <= 0 {
		return e.ErrCategoryRequired
	}

	if !req.Status.IsValid() {
		return e.ErrInvalidStatus
	}

	if _, err := p.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, e.ErrCategoryNotFound) {
			return e.ErrCategoryNotExists
		}

		return err
	}

	var (
		exists bool
		err    error
	)
	if isUpdate {
		exists, err = p.productRepo.ExistsBySKUExcludingID(ctx, req.SKU, req.ID)
	} else {
		exists, err = p.productRepo.ExistsBySKU(ctx, req.SKU)
	}
	if err != nil {
		return err
	}
	if exists {
		return e.ErrSkuNotUnique
	}

	return nil
}

// invalidateCache удаляет продукт из кэша после зафиксированной записи.
func (p *ProductUseCase) invalidateCache(ctx context.Context, id int64) {
	if err := p.cacheRepo.DeleteProduct(ctx, id); err != nil {
		p.logger.Warnf("Failed to invalidate product cache. id: %d, error: %v", id, err)
	}
}

// normalizeProductReq обрезает пробелы в строковых полях кандидата.
func normalizeProductReq(req *SaveProductReq) {
	req.Name = strings.TrimSpace(req.Name)
	req.SKU = strings.TrimSpace(req.SKU)
}

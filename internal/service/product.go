package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/dukerupert/tantuka/internal/domain"
	"github.com/dukerupert/tantuka/internal/repository"
)

type productService struct {
	store repository.Store
}

// NewProductService creates a ProductService backed by store.
func NewProductService(store repository.Store) domain.ProductService {
	return &productService{store: store}
}

func (s *productService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.ProductDetail, error) {
	const op = "product.list"

	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, domain.NewValidationError(op, "min_price", "must not exceed max_price")
	}

	skip, limit := page(filter.Skip, filter.Limit)
	params := repository.ListProductsParams{
		Offset:     skip,
		Limit:      limit,
		CategoryID: filter.CategoryID,
		Search:     filter.Search,
		IsActive:   filter.IsActive,
		IsFeatured: filter.IsFeatured,
		MinPrice:   filter.MinPrice,
		MaxPrice:   filter.MaxPrice,
		SortBy:     "created_at",
		SortDesc:   true,
	}
	if domain.ProductSortColumns[filter.SortBy] {
		params.SortBy = filter.SortBy
		params.SortDesc = strings.EqualFold(filter.SortOrder, "desc")
	}

	var details []domain.ProductDetail
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		products, err := q.ListProducts(ctx, params)
		if err != nil {
			return err
		}
		details, err = loadProductDetails(ctx, q, products)
		return err
	})
	if err != nil {
		return nil, storeError(err, op, "failed to list products")
	}

	return details, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*domain.ProductDetail, error) {
	return s.getProduct(ctx, "product.get", func(q repository.Querier) (repository.Product, error) {
		return q.GetProductByID(ctx, id)
	})
}

func (s *productService) GetProductBySlug(ctx context.Context, slug string) (*domain.ProductDetail, error) {
	return s.getProduct(ctx, "product.get_by_slug", func(q repository.Querier) (repository.Product, error) {
		return q.GetProductBySlug(ctx, slug)
	})
}

func (s *productService) getProduct(ctx context.Context, op string, get func(q repository.Querier) (repository.Product, error)) (*domain.ProductDetail, error) {
	var detail domain.ProductDetail
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		product, err := get(q)
		if err != nil {
			if repository.IsNotFound(err) {
				return domain.WithOp(domain.ErrProductNotFound, op)
			}
			return err
		}
		details, err := loadProductDetails(ctx, q, []repository.Product{product})
		if err != nil {
			return err
		}
		detail = details[0]
		return nil
	})
	if err != nil {
		return nil, storeError(err, op, "failed to get product")
	}

	return &detail, nil
}

func (s *productService) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.ProductDetail, error) {
	const op = "product.create"

	if err := domain.ValidatePricing(op, input.BasePrice, input.DiscountPercent); err != nil {
		return nil, err
	}
	for i, v := range input.Variants {
		if v.Price.IsNegative() {
			return nil, domain.NewValidationError(op, variantField(i, "price"), "must not be negative")
		}
	}

	create := func(q repository.Querier, slug string) (domain.ProductDetail, error) {
		return s.insertProduct(ctx, q, op, slug, input)
	}

	var (
		detail domain.ProductDetail
		err    error
	)
	if input.Slug == "" {
		detail, err = createWithDerivedSlug(ctx, s.store, op, "product", input.Name,
			repository.ConstraintProductSlug, s.store.ProductSlugExists, create)
	} else {
		if err := domain.ValidateSlug(op, input.Slug); err != nil {
			return nil, err
		}
		err = s.store.ExecTx(ctx, func(q repository.Querier) error {
			var err error
			detail, err = create(q, input.Slug)
			return err
		})
		if repository.IsUniqueViolation(err, repository.ConstraintProductSlug) {
			return nil, domain.WithOp(domain.ErrDuplicateProduct, op)
		}
	}
	if err != nil {
		return nil, storeError(err, op, "failed to create product")
	}

	return &detail, nil
}

func (s *productService) insertProduct(ctx context.Context, q repository.Querier, op, slug string, input domain.ProductInput) (domain.ProductDetail, error) {
	category, err := lookupCategory(ctx, q, op, input.CategoryID)
	if err != nil {
		return domain.ProductDetail{}, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	product, err := q.CreateProduct(ctx, repository.CreateProductParams{
		Name:            input.Name,
		Slug:            slug,
		Description:     input.Description,
		CategoryID:      input.CategoryID,
		Brand:           input.Brand,
		BasePrice:       input.BasePrice,
		DiscountPercent: input.DiscountPercent,
		IsActive:        isActive,
		IsFeatured:      input.IsFeatured,
		Metadata:        rawJSON(input.Metadata),
	})
	if err != nil {
		return domain.ProductDetail{}, err
	}

	variants := make([]domain.Variant, 0, len(input.Variants))
	for _, v := range input.Variants {
		variant, err := insertVariant(ctx, q, op, product.ID, v)
		if err != nil {
			return domain.ProductDetail{}, err
		}
		variants = append(variants, variant)
	}

	images := make([]domain.Image, 0, len(input.Images))
	primarySet := false
	for _, img := range input.Images {
		// Only the first image flagged primary keeps the flag.
		img.IsPrimary = img.IsPrimary && !primarySet
		primarySet = primarySet || img.IsPrimary
		image, err := q.CreateImage(ctx, createImageParams(product.ID, img))
		if err != nil {
			return domain.ProductDetail{}, err
		}
		images = append(images, toDomainImage(image))
	}

	return domain.NewProductDetail(toDomainProduct(product), variants, images, category), nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, input domain.ProductUpdate) (*domain.ProductDetail, error) {
	const op = "product.update"

	if input.Slug != nil {
		if err := domain.ValidateSlug(op, *input.Slug); err != nil {
			return nil, err
		}
	}

	var detail domain.ProductDetail
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		current, err := q.GetProductByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return domain.WithOp(domain.ErrProductNotFound, op)
			}
			return err
		}

		params := repository.UpdateProductParams{
			ID:              current.ID,
			Name:            current.Name,
			Slug:            current.Slug,
			Description:     current.Description,
			CategoryID:      current.CategoryID,
			Brand:           current.Brand,
			BasePrice:       current.BasePrice,
			DiscountPercent: current.DiscountPercent,
			IsActive:        current.IsActive,
			IsFeatured:      current.IsFeatured,
			Metadata:        current.Metadata,
		}
		if input.Name != nil {
			params.Name = *input.Name
		}
		if input.Slug != nil {
			params.Slug = *input.Slug
		}
		if input.Description != nil {
			params.Description = input.Description
		}
		if input.CategoryID != nil {
			if _, err := lookupCategory(ctx, q, op, input.CategoryID); err != nil {
				return err
			}
			params.CategoryID = input.CategoryID
		}
		if input.Brand != nil {
			params.Brand = input.Brand
		}
		if input.BasePrice != nil {
			params.BasePrice = *input.BasePrice
		}
		if input.DiscountPercent != nil {
			params.DiscountPercent = *input.DiscountPercent
		}
		if input.IsActive != nil {
			params.IsActive = *input.IsActive
		}
		if input.IsFeatured != nil {
			params.IsFeatured = *input.IsFeatured
		}
		if input.Metadata != nil {
			params.Metadata = rawJSON(input.Metadata)
		}

		if err := domain.ValidatePricing(op, params.BasePrice, params.DiscountPercent); err != nil {
			return err
		}

		updated, err := q.UpdateProduct(ctx, params)
		if err != nil {
			if repository.IsUniqueViolation(err, repository.ConstraintProductSlug) {
				return domain.WithOp(domain.ErrDuplicateProduct, op)
			}
			return err
		}

		details, err := loadProductDetails(ctx, q, []repository.Product{updated})
		if err != nil {
			return err
		}
		detail = details[0]
		return nil
	})
	if err != nil {
		return nil, storeError(err, op, "failed to update product")
	}

	return &detail, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	const op = "product.delete"

	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		deleted, err := q.DeleteProduct(ctx, id)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return domain.WithOp(domain.ErrProductNotFound, op)
		}
		return nil
	})
	if err != nil {
		return storeError(err, op, "failed to delete product")
	}

	return nil
}

func (s *productService) AddVariant(ctx context.Context, productID int64, input domain.VariantInput) (*domain.Variant, error) {
	const op = "product.add_variant"

	if input.Price.IsNegative() {
		return nil, domain.NewValidationError(op, "price", "must not be negative")
	}

	var variant domain.Variant
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.GetProductByID(ctx, productID); err != nil {
			if repository.IsNotFound(err) {
				return domain.WithOp(domain.ErrProductNotFound, op)
			}
			return err
		}
		var err error
		variant, err = insertVariant(ctx, q, op, productID, input)
		return err
	})
	if err != nil {
		return nil, storeError(err, op, "failed to add variant")
	}

	return &variant, nil
}

func (s *productService) AddImage(ctx context.Context, productID int64, input domain.ImageInput) (*domain.Image, error) {
	const op = "product.add_image"

	var image repository.ProductImage
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.GetProductByID(ctx, productID); err != nil {
			if repository.IsNotFound(err) {
				return domain.WithOp(domain.ErrProductNotFound, op)
			}
			return err
		}

		if input.IsPrimary {
			if err := q.ClearPrimaryImages(ctx, productID); err != nil {
				return err
			}
		}

		var err error
		image, err = q.CreateImage(ctx, createImageParams(productID, input))
		return err
	})
	if err != nil {
		return nil, storeError(err, op, "failed to add image")
	}

	result := toDomainImage(image)
	return &result, nil
}

func (s *productService) GenerateUniqueSlug(ctx context.Context, name string) (string, error) {
	return generateUniqueSlug(ctx, "product.generate_slug", name, s.store.ProductSlugExists)
}

// loadProductDetails attaches variants, images and categories to products,
// keeping the input order.
func loadProductDetails(ctx context.Context, q repository.Querier, products []repository.Product) ([]domain.ProductDetail, error) {
	details := make([]domain.ProductDetail, 0, len(products))
	if len(products) == 0 {
		return details, nil
	}

	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	variants, err := q.ListVariantsByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	variantsByProduct := make(map[int64][]domain.Variant)
	for _, v := range variants {
		variantsByProduct[v.ProductID] = append(variantsByProduct[v.ProductID], toDomainVariant(v))
	}

	images, err := q.ListImagesByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	imagesByProduct := make(map[int64][]domain.Image)
	for _, img := range images {
		imagesByProduct[img.ProductID] = append(imagesByProduct[img.ProductID], toDomainImage(img))
	}

	categories := make(map[int64]*domain.Category)
	for _, p := range products {
		if p.CategoryID == nil {
			continue
		}
		if _, ok := categories[*p.CategoryID]; ok {
			continue
		}
		c, err := q.GetCategoryByID(ctx, *p.CategoryID)
		if err != nil {
			if repository.IsNotFound(err) {
				categories[*p.CategoryID] = nil
				continue
			}
			return nil, err
		}
		categories[*p.CategoryID] = toDomainCategory(c)
	}

	for _, p := range products {
		var category *domain.Category
		if p.CategoryID != nil {
			category = categories[*p.CategoryID]
		}
		details = append(details, domain.NewProductDetail(
			toDomainProduct(p),
			variantsByProduct[p.ID],
			imagesByProduct[p.ID],
			category,
		))
	}

	return details, nil
}

// lookupCategory resolves an optional category reference. A nil id yields a
// nil category; an unknown id is ErrCategoryNotFound.
func lookupCategory(ctx context.Context, q repository.Querier, op string, id *int64) (*domain.Category, error) {
	if id == nil {
		return nil, nil
	}
	c, err := q.GetCategoryByID(ctx, *id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.WithOp(domain.ErrCategoryNotFound, op)
		}
		return nil, err
	}
	return toDomainCategory(c), nil
}

func insertVariant(ctx context.Context, q repository.Querier, op string, productID int64, v domain.VariantInput) (domain.Variant, error) {
	isActive := true
	if v.IsActive != nil {
		isActive = *v.IsActive
	}
	variant, err := q.CreateVariant(ctx, repository.CreateVariantParams{
		ProductID:   productID,
		Sku:         v.SKU,
		VariantName: v.VariantName,
		Price:       v.Price,
		StockQty:    v.StockQty,
		Attributes:  rawJSON(v.Attributes),
		IsActive:    isActive,
	})
	if err != nil {
		if repository.IsUniqueViolation(err, repository.ConstraintVariantSKU) {
			return domain.Variant{}, domain.WithOp(domain.ErrDuplicateSKU, op)
		}
		return domain.Variant{}, err
	}
	return toDomainVariant(variant), nil
}

func createImageParams(productID int64, img domain.ImageInput) repository.CreateImageParams {
	return repository.CreateImageParams{
		ProductID: productID,
		ImageUrl:  img.ImageURL,
		AltText:   img.AltText,
		IsPrimary: img.IsPrimary,
		SortOrder: img.Order,
	}
}

func variantField(i int, field string) string {
	return "variants[" + strconv.Itoa(i) + "]." + field
}

// rawJSON maps an absent or JSON null document to SQL NULL.
func rawJSON(m json.RawMessage) []byte {
	if len(m) == 0 || string(m) == "null" {
		return nil
	}
	return m
}

func toDomainProduct(p repository.Product) domain.Product {
	return domain.Product{
		ID:              p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		Brand:           p.Brand,
		BasePrice:       p.BasePrice,
		DiscountPercent: p.DiscountPercent,
		IsActive:        p.IsActive,
		IsFeatured:      p.IsFeatured,
		Metadata:        json.RawMessage(p.Metadata),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toDomainVariant(v repository.ProductVariant) domain.Variant {
	return domain.Variant{
		ID:          v.ID,
		ProductID:   v.ProductID,
		SKU:         v.Sku,
		VariantName: v.VariantName,
		Price:       v.Price,
		StockQty:    v.StockQty,
		Attributes:  json.RawMessage(v.Attributes),
		IsActive:    v.IsActive,
	}
}

func toDomainImage(i repository.ProductImage) domain.Image {
	return domain.Image{
		ID:        i.ID,
		ProductID: i.ProductID,
		ImageURL:  i.ImageUrl,
		AltText:   i.AltText,
		IsPrimary: i.IsPrimary,
		Order:     i.SortOrder,
	}
}

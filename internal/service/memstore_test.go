package service

import (
	"context"
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/dukerupert/tantuka/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory repository.Store. ExecTx snapshots the state and
// restores it when fn fails, so rollback behaviour can be asserted.
type memStore struct {
	users      map[int64]repository.User
	categories map[int64]repository.Category
	products   map[int64]repository.Product
	variants   map[int64]repository.ProductVariant
	images     map[int64]repository.ProductImage
	carts      map[int64]repository.Cart
	items      map[int64]repository.CartItem
	orders     map[int64]repository.Order
	nextID     int64

	// fail makes the named method return the error.
	fail map[string]error
	// hideSlugs makes the *SlugExists probes report every slug as free.
	hideSlugs bool
	pingErr   error
	lastList  repository.ListProductsParams
	commits   int
	rollbacks int
	now       time.Time
}

var _ repository.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users:      map[int64]repository.User{},
		categories: map[int64]repository.Category{},
		products:   map[int64]repository.Product{},
		variants:   map[int64]repository.ProductVariant{},
		images:     map[int64]repository.ProductImage{},
		carts:      map[int64]repository.Cart{},
		items:      map[int64]repository.CartItem{},
		orders:     map[int64]repository.Order{},
		fail:       map[string]error{},
		now:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

type memSnapshot struct {
	users      map[int64]repository.User
	categories map[int64]repository.Category
	products   map[int64]repository.Product
	variants   map[int64]repository.ProductVariant
	images     map[int64]repository.ProductImage
	carts      map[int64]repository.Cart
	items      map[int64]repository.CartItem
	orders     map[int64]repository.Order
}

func (m *memStore) ExecTx(ctx context.Context, fn func(q repository.Querier) error) error {
	if err := m.err("ExecTx"); err != nil {
		return err
	}
	snap := memSnapshot{
		users:      maps.Clone(m.users),
		categories: maps.Clone(m.categories),
		products:   maps.Clone(m.products),
		variants:   maps.Clone(m.variants),
		images:     maps.Clone(m.images),
		carts:      maps.Clone(m.carts),
		items:      maps.Clone(m.items),
		orders:     maps.Clone(m.orders),
	}
	if err := fn(m); err != nil {
		m.users, m.categories, m.products = snap.users, snap.categories, snap.products
		m.variants, m.images = snap.variants, snap.images
		m.carts, m.items, m.orders = snap.carts, snap.items, snap.orders
		m.rollbacks++
		return err
	}
	m.commits++
	return nil
}

func (m *memStore) Ping(ctx context.Context) error {
	return m.pingErr
}

func (m *memStore) err(method string) error {
	return m.fail[method]
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func foreignKeyViolation() error {
	return &pgconn.PgError{Code: "23503"}
}

func sortedValues[T any](m map[int64]T) []T {
	keys := slices.Sorted(maps.Keys(m))
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

func paginate[T any](items []T, arg repository.ListParams) []T {
	start := min(int(arg.Offset), len(items))
	end := min(start+int(arg.Limit), len(items))
	return slices.Clone(items[start:end])
}

// users

func (m *memStore) CreateUser(ctx context.Context, arg repository.CreateUserParams) (repository.User, error) {
	if err := m.err("CreateUser"); err != nil {
		return repository.User{}, err
	}
	for _, u := range m.users {
		if strings.EqualFold(u.Email, arg.Email) {
			return repository.User{}, uniqueViolation(repository.ConstraintUserEmail)
		}
	}
	u := repository.User{
		ID:           m.id(),
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		FirstName:    arg.FirstName,
		LastName:     arg.LastName,
		Phone:        arg.Phone,
		Role:         arg.Role,
		IsActive:     arg.IsActive,
		CreatedAt:    m.now,
		UpdatedAt:    m.now,
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *memStore) GetUserByID(ctx context.Context, id int64) (repository.User, error) {
	if err := m.err("GetUserByID"); err != nil {
		return repository.User{}, err
	}
	u, ok := m.users[id]
	if !ok {
		return repository.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (m *memStore) GetUserByEmail(ctx context.Context, email string) (repository.User, error) {
	if err := m.err("GetUserByEmail"); err != nil {
		return repository.User{}, err
	}
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return repository.User{}, pgx.ErrNoRows
}

func (m *memStore) ListUsers(ctx context.Context, arg repository.ListParams) ([]repository.User, error) {
	if err := m.err("ListUsers"); err != nil {
		return nil, err
	}
	users := sortedValues(m.users)
	slices.Reverse(users)
	return paginate(users, arg), nil
}

func (m *memStore) UpdateUser(ctx context.Context, arg repository.UpdateUserParams) (repository.User, error) {
	if err := m.err("UpdateUser"); err != nil {
		return repository.User{}, err
	}
	u, ok := m.users[arg.ID]
	if !ok {
		return repository.User{}, pgx.ErrNoRows
	}
	for _, other := range m.users {
		if other.ID != arg.ID && strings.EqualFold(other.Email, arg.Email) {
			return repository.User{}, uniqueViolation(repository.ConstraintUserEmail)
		}
	}
	u.Email, u.PasswordHash = arg.Email, arg.PasswordHash
	u.FirstName, u.LastName, u.Phone = arg.FirstName, arg.LastName, arg.Phone
	u.UpdatedAt = m.now
	m.users[u.ID] = u
	return u, nil
}

func (m *memStore) CountUsers(ctx context.Context) (int64, error) {
	if err := m.err("CountUsers"); err != nil {
		return 0, err
	}
	return int64(len(m.users)), nil
}

func (m *memStore) CountUsersByDay(ctx context.Context, since time.Time) ([]repository.CountUsersByDayRow, error) {
	if err := m.err("CountUsersByDay"); err != nil {
		return nil, err
	}
	counts := map[time.Time]int64{}
	for _, u := range m.users {
		if u.CreatedAt.Before(since) {
			continue
		}
		counts[u.CreatedAt.UTC().Truncate(24*time.Hour)]++
	}
	rows := []repository.CountUsersByDayRow{}
	for _, day := range slices.SortedFunc(maps.Keys(counts), func(a, b time.Time) int { return a.Compare(b) }) {
		rows = append(rows, repository.CountUsersByDayRow{Day: day, Count: counts[day]})
	}
	return rows, nil
}

// categories

func (m *memStore) CreateCategory(ctx context.Context, arg repository.CreateCategoryParams) (repository.Category, error) {
	if err := m.err("CreateCategory"); err != nil {
		return repository.Category{}, err
	}
	for _, c := range m.categories {
		if c.Slug == arg.Slug {
			return repository.Category{}, uniqueViolation(repository.ConstraintCategorySlug)
		}
	}
	if arg.ParentID != nil {
		if _, ok := m.categories[*arg.ParentID]; !ok {
			return repository.Category{}, foreignKeyViolation()
		}
	}
	c := repository.Category{
		ID:          m.id(),
		Name:        arg.Name,
		Slug:        arg.Slug,
		ParentID:    arg.ParentID,
		Description: arg.Description,
		CreatedAt:   m.now,
	}
	m.categories[c.ID] = c
	return c, nil
}

func (m *memStore) GetCategoryByID(ctx context.Context, id int64) (repository.Category, error) {
	if err := m.err("GetCategoryByID"); err != nil {
		return repository.Category{}, err
	}
	c, ok := m.categories[id]
	if !ok {
		return repository.Category{}, pgx.ErrNoRows
	}
	return c, nil
}

func (m *memStore) GetCategoryBySlug(ctx context.Context, slug string) (repository.Category, error) {
	if err := m.err("GetCategoryBySlug"); err != nil {
		return repository.Category{}, err
	}
	for _, c := range m.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return repository.Category{}, pgx.ErrNoRows
}

func (m *memStore) ListCategories(ctx context.Context, arg repository.ListParams) ([]repository.Category, error) {
	if err := m.err("ListCategories"); err != nil {
		return nil, err
	}
	return paginate(sortedValues(m.categories), arg), nil
}

func (m *memStore) ListAllCategories(ctx context.Context) ([]repository.Category, error) {
	if err := m.err("ListAllCategories"); err != nil {
		return nil, err
	}
	return sortedValues(m.categories), nil
}

func (m *memStore) UpdateCategory(ctx context.Context, arg repository.UpdateCategoryParams) (repository.Category, error) {
	if err := m.err("UpdateCategory"); err != nil {
		return repository.Category{}, err
	}
	c, ok := m.categories[arg.ID]
	if !ok {
		return repository.Category{}, pgx.ErrNoRows
	}
	for _, other := range m.categories {
		if other.ID != arg.ID && other.Slug == arg.Slug {
			return repository.Category{}, uniqueViolation(repository.ConstraintCategorySlug)
		}
	}
	c.Name, c.Slug, c.ParentID, c.Description = arg.Name, arg.Slug, arg.ParentID, arg.Description
	m.categories[c.ID] = c
	return c, nil
}

func (m *memStore) DeleteCategory(ctx context.Context, id int64) (int64, error) {
	if err := m.err("DeleteCategory"); err != nil {
		return 0, err
	}
	if _, ok := m.categories[id]; !ok {
		return 0, nil
	}
	delete(m.categories, id)
	for pid, p := range m.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			p.CategoryID = nil
			m.products[pid] = p
		}
	}
	return 1, nil
}

func (m *memStore) CountChildCategories(ctx context.Context, parentID int64) (int64, error) {
	if err := m.err("CountChildCategories"); err != nil {
		return 0, err
	}
	var n int64
	for _, c := range m.categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CategorySlugExists(ctx context.Context, slug string) (bool, error) {
	if err := m.err("CategorySlugExists"); err != nil {
		return false, err
	}
	if m.hideSlugs {
		return false, nil
	}
	_, err := m.GetCategoryBySlug(ctx, slug)
	return err == nil, nil
}

func (m *memStore) CountCategories(ctx context.Context) (int64, error) {
	if err := m.err("CountCategories"); err != nil {
		return 0, err
	}
	return int64(len(m.categories)), nil
}

func (m *memStore) CountProductsPerCategory(ctx context.Context) ([]repository.CountProductsPerCategoryRow, error) {
	if err := m.err("CountProductsPerCategory"); err != nil {
		return nil, err
	}
	rows := []repository.CountProductsPerCategoryRow{}
	for _, c := range sortedValues(m.categories) {
		row := repository.CountProductsPerCategoryRow{CategoryID: c.ID, CategoryName: c.Name}
		for _, p := range m.products {
			if p.CategoryID != nil && *p.CategoryID == c.ID {
				row.ProductCount++
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// products

func (m *memStore) CreateProduct(ctx context.Context, arg repository.CreateProductParams) (repository.Product, error) {
	if err := m.err("CreateProduct"); err != nil {
		return repository.Product{}, err
	}
	for _, p := range m.products {
		if p.Slug == arg.Slug {
			return repository.Product{}, uniqueViolation(repository.ConstraintProductSlug)
		}
	}
	if arg.CategoryID != nil {
		if _, ok := m.categories[*arg.CategoryID]; !ok {
			return repository.Product{}, foreignKeyViolation()
		}
	}
	p := repository.Product{
		ID:              m.id(),
		Name:            arg.Name,
		Slug:            arg.Slug,
		Description:     arg.Description,
		CategoryID:      arg.CategoryID,
		Brand:           arg.Brand,
		BasePrice:       arg.BasePrice,
		DiscountPercent: arg.DiscountPercent,
		IsActive:        arg.IsActive,
		IsFeatured:      arg.IsFeatured,
		Metadata:        arg.Metadata,
		CreatedAt:       m.now,
		UpdatedAt:       m.now,
	}
	m.products[p.ID] = p
	return p, nil
}

func (m *memStore) GetProductByID(ctx context.Context, id int64) (repository.Product, error) {
	if err := m.err("GetProductByID"); err != nil {
		return repository.Product{}, err
	}
	p, ok := m.products[id]
	if !ok {
		return repository.Product{}, pgx.ErrNoRows
	}
	return p, nil
}

func (m *memStore) GetProductBySlug(ctx context.Context, slug string) (repository.Product, error) {
	if err := m.err("GetProductBySlug"); err != nil {
		return repository.Product{}, err
	}
	for _, p := range m.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return repository.Product{}, pgx.ErrNoRows
}

func (m *memStore) ListProducts(ctx context.Context, arg repository.ListProductsParams) ([]repository.Product, error) {
	if err := m.err("ListProducts"); err != nil {
		return nil, err
	}
	m.lastList = arg

	var out []repository.Product
	for _, p := range sortedValues(m.products) {
		if arg.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *arg.CategoryID) {
			continue
		}
		if arg.Search != nil && *arg.Search != "" {
			needle := strings.ToLower(*arg.Search)
			hay := strings.ToLower(p.Name + " " + deref(p.Description) + " " + deref(p.Brand))
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		if arg.IsActive != nil && p.IsActive != *arg.IsActive {
			continue
		}
		if arg.IsFeatured != nil && p.IsFeatured != *arg.IsFeatured {
			continue
		}
		if arg.MinPrice != nil && p.BasePrice.LessThan(*arg.MinPrice) {
			continue
		}
		if arg.MaxPrice != nil && p.BasePrice.GreaterThan(*arg.MaxPrice) {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b repository.Product) int {
		var c int
		switch arg.SortBy {
		case "name":
			c = strings.Compare(a.Name, b.Name)
		case "base_price":
			c = a.BasePrice.Cmp(b.BasePrice)
		case "discount_percent":
			c = a.DiscountPercent.Cmp(b.DiscountPercent)
		}
		if c == 0 {
			c = int(a.ID - b.ID)
		}
		if arg.SortDesc {
			return -c
		}
		return c
	})

	return paginate(out, repository.ListParams{Offset: arg.Offset, Limit: arg.Limit}), nil
}

func (m *memStore) ListFeaturedProducts(ctx context.Context, limit int32) ([]repository.Product, error) {
	if err := m.err("ListFeaturedProducts"); err != nil {
		return nil, err
	}
	var out []repository.Product
	products := sortedValues(m.products)
	slices.Reverse(products)
	for _, p := range products {
		if p.IsFeatured && p.IsActive {
			out = append(out, p)
		}
	}
	return paginate(out, repository.ListParams{Limit: limit}), nil
}

func (m *memStore) UpdateProduct(ctx context.Context, arg repository.UpdateProductParams) (repository.Product, error) {
	if err := m.err("UpdateProduct"); err != nil {
		return repository.Product{}, err
	}
	p, ok := m.products[arg.ID]
	if !ok {
		return repository.Product{}, pgx.ErrNoRows
	}
	for _, other := range m.products {
		if other.ID != arg.ID && other.Slug == arg.Slug {
			return repository.Product{}, uniqueViolation(repository.ConstraintProductSlug)
		}
	}
	p.Name, p.Slug, p.Description, p.CategoryID, p.Brand = arg.Name, arg.Slug, arg.Description, arg.CategoryID, arg.Brand
	p.BasePrice, p.DiscountPercent = arg.BasePrice, arg.DiscountPercent
	p.IsActive, p.IsFeatured, p.Metadata = arg.IsActive, arg.IsFeatured, arg.Metadata
	p.UpdatedAt = m.now
	m.products[p.ID] = p
	return p, nil
}

func (m *memStore) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	if err := m.err("DeleteProduct"); err != nil {
		return 0, err
	}
	if _, ok := m.products[id]; !ok {
		return 0, nil
	}
	delete(m.products, id)
	for vid, v := range m.variants {
		if v.ProductID != id {
			continue
		}
		delete(m.variants, vid)
		for iid, item := range m.items {
			if item.VariantID == vid {
				delete(m.items, iid)
			}
		}
	}
	for iid, img := range m.images {
		if img.ProductID == id {
			delete(m.images, iid)
		}
	}
	return 1, nil
}

func (m *memStore) ProductSlugExists(ctx context.Context, slug string) (bool, error) {
	if err := m.err("ProductSlugExists"); err != nil {
		return false, err
	}
	if m.hideSlugs {
		return false, nil
	}
	_, err := m.GetProductBySlug(ctx, slug)
	return err == nil, nil
}

func (m *memStore) CountProducts(ctx context.Context) (int64, error) {
	if err := m.err("CountProducts"); err != nil {
		return 0, err
	}
	return int64(len(m.products)), nil
}

func (m *memStore) GetProductDistribution(ctx context.Context) (repository.ProductDistributionRow, error) {
	if err := m.err("GetProductDistribution"); err != nil {
		return repository.ProductDistributionRow{}, err
	}
	var row repository.ProductDistributionRow
	for _, p := range m.products {
		if p.IsActive {
			row.Active++
		} else {
			row.Inactive++
		}
		if p.IsFeatured {
			row.Featured++
		}
	}
	return row, nil
}

// variants and images

func (m *memStore) CreateVariant(ctx context.Context, arg repository.CreateVariantParams) (repository.ProductVariant, error) {
	if err := m.err("CreateVariant"); err != nil {
		return repository.ProductVariant{}, err
	}
	for _, v := range m.variants {
		if v.Sku == arg.Sku {
			return repository.ProductVariant{}, uniqueViolation(repository.ConstraintVariantSKU)
		}
	}
	if _, ok := m.products[arg.ProductID]; !ok {
		return repository.ProductVariant{}, foreignKeyViolation()
	}
	v := repository.ProductVariant{
		ID:          m.id(),
		ProductID:   arg.ProductID,
		Sku:         arg.Sku,
		VariantName: arg.VariantName,
		Price:       arg.Price,
		StockQty:    arg.StockQty,
		Attributes:  arg.Attributes,
		IsActive:    arg.IsActive,
	}
	m.variants[v.ID] = v
	return v, nil
}

func (m *memStore) GetActiveVariant(ctx context.Context, id int64) (repository.ProductVariant, error) {
	if err := m.err("GetActiveVariant"); err != nil {
		return repository.ProductVariant{}, err
	}
	v, ok := m.variants[id]
	if !ok || !v.IsActive {
		return repository.ProductVariant{}, pgx.ErrNoRows
	}
	return v, nil
}

func (m *memStore) ListVariantsByProductIDs(ctx context.Context, productIDs []int64) ([]repository.ProductVariant, error) {
	if err := m.err("ListVariantsByProductIDs"); err != nil {
		return nil, err
	}
	out := []repository.ProductVariant{}
	for _, v := range sortedValues(m.variants) {
		if slices.Contains(productIDs, v.ProductID) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memStore) CountVariants(ctx context.Context) (int64, error) {
	if err := m.err("CountVariants"); err != nil {
		return 0, err
	}
	return int64(len(m.variants)), nil
}

func (m *memStore) CreateImage(ctx context.Context, arg repository.CreateImageParams) (repository.ProductImage, error) {
	if err := m.err("CreateImage"); err != nil {
		return repository.ProductImage{}, err
	}
	if _, ok := m.products[arg.ProductID]; !ok {
		return repository.ProductImage{}, foreignKeyViolation()
	}
	if arg.IsPrimary {
		for _, img := range m.images {
			if img.ProductID == arg.ProductID && img.IsPrimary {
				return repository.ProductImage{}, uniqueViolation("idx_product_images_one_primary")
			}
		}
	}
	img := repository.ProductImage{
		ID:        m.id(),
		ProductID: arg.ProductID,
		ImageUrl:  arg.ImageUrl,
		AltText:   arg.AltText,
		IsPrimary: arg.IsPrimary,
		SortOrder: arg.SortOrder,
	}
	m.images[img.ID] = img
	return img, nil
}

func (m *memStore) ClearPrimaryImages(ctx context.Context, productID int64) error {
	if err := m.err("ClearPrimaryImages"); err != nil {
		return err
	}
	for id, img := range m.images {
		if img.ProductID == productID && img.IsPrimary {
			img.IsPrimary = false
			m.images[id] = img
		}
	}
	return nil
}

func (m *memStore) ListImagesByProductIDs(ctx context.Context, productIDs []int64) ([]repository.ProductImage, error) {
	if err := m.err("ListImagesByProductIDs"); err != nil {
		return nil, err
	}
	out := []repository.ProductImage{}
	for _, img := range sortedValues(m.images) {
		if slices.Contains(productIDs, img.ProductID) {
			out = append(out, img)
		}
	}
	return out, nil
}

// carts

func (m *memStore) GetCartByUserID(ctx context.Context, userID int64) (repository.Cart, error) {
	if err := m.err("GetCartByUserID"); err != nil {
		return repository.Cart{}, err
	}
	for _, c := range sortedValues(m.carts) {
		if c.UserID == userID {
			return c, nil
		}
	}
	return repository.Cart{}, pgx.ErrNoRows
}

func (m *memStore) InsertCartIfAbsent(ctx context.Context, userID int64) error {
	if err := m.err("InsertCartIfAbsent"); err != nil {
		return err
	}
	for _, c := range m.carts {
		if c.UserID == userID {
			return nil
		}
	}
	c := repository.Cart{ID: m.id(), UserID: userID, CreatedAt: m.now, UpdatedAt: m.now}
	m.carts[c.ID] = c
	return nil
}

func (m *memStore) TouchCart(ctx context.Context, id int64) error {
	if err := m.err("TouchCart"); err != nil {
		return err
	}
	if c, ok := m.carts[id]; ok {
		c.UpdatedAt = m.now
		m.carts[id] = c
	}
	return nil
}

func (m *memStore) UpsertCartItem(ctx context.Context, arg repository.UpsertCartItemParams) (repository.CartItem, error) {
	if err := m.err("UpsertCartItem"); err != nil {
		return repository.CartItem{}, err
	}
	if arg.Quantity <= 0 {
		return repository.CartItem{}, &pgconn.PgError{Code: "23514"}
	}
	for id, item := range m.items {
		if item.CartID == arg.CartID && item.VariantID == arg.VariantID {
			if int64(item.Quantity)+int64(arg.Quantity) > math.MaxInt32 {
				return repository.CartItem{}, &pgconn.PgError{Code: "22003"}
			}
			item.Quantity += arg.Quantity
			m.items[id] = item
			return item, nil
		}
	}
	item := repository.CartItem{ID: m.id(), CartID: arg.CartID, VariantID: arg.VariantID, Quantity: arg.Quantity}
	m.items[item.ID] = item
	return item, nil
}

func (m *memStore) UpdateCartItemQuantity(ctx context.Context, arg repository.UpdateCartItemQuantityParams) (repository.CartItem, error) {
	if err := m.err("UpdateCartItemQuantity"); err != nil {
		return repository.CartItem{}, err
	}
	item, ok := m.items[arg.ID]
	if !ok || item.CartID != arg.CartID {
		return repository.CartItem{}, pgx.ErrNoRows
	}
	item.Quantity = arg.Quantity
	m.items[item.ID] = item
	return item, nil
}

func (m *memStore) DeleteCartItem(ctx context.Context, arg repository.DeleteCartItemParams) (int64, error) {
	if err := m.err("DeleteCartItem"); err != nil {
		return 0, err
	}
	item, ok := m.items[arg.ID]
	if !ok || item.CartID != arg.CartID {
		return 0, nil
	}
	delete(m.items, arg.ID)
	return 1, nil
}

func (m *memStore) ClearCartItems(ctx context.Context, cartID int64) (int64, error) {
	if err := m.err("ClearCartItems"); err != nil {
		return 0, err
	}
	var n int64
	for id, item := range m.items {
		if item.CartID == cartID {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) GetCartLines(ctx context.Context, cartID int64) ([]repository.GetCartLinesRow, error) {
	if err := m.err("GetCartLines"); err != nil {
		return nil, err
	}
	rows := []repository.GetCartLinesRow{}
	for _, item := range sortedValues(m.items) {
		if item.CartID != cartID {
			continue
		}
		v := m.variants[item.VariantID]
		p := m.products[v.ProductID]
		row := repository.GetCartLinesRow{
			ID:              item.ID,
			CartID:          item.CartID,
			VariantID:       item.VariantID,
			Quantity:        item.Quantity,
			Price:           v.Price,
			VariantName:     v.VariantName,
			ProductName:     p.Name,
			ProductSlug:     p.Slug,
			DiscountPercent: p.DiscountPercent,
		}
		for _, img := range sortedValues(m.images) {
			if img.ProductID == p.ID && img.IsPrimary {
				url := img.ImageUrl
				row.ImageUrl = &url
				break
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// orders

func (m *memStore) ListOrders(ctx context.Context, arg repository.ListParams) ([]repository.Order, error) {
	if err := m.err("ListOrders"); err != nil {
		return nil, err
	}
	orders := sortedValues(m.orders)
	slices.Reverse(orders)
	return paginate(orders, arg), nil
}

func (m *memStore) CountOrders(ctx context.Context) (int64, error) {
	if err := m.err("CountOrders"); err != nil {
		return 0, err
	}
	return int64(len(m.orders)), nil
}

func (m *memStore) SumDeliveredOrders(ctx context.Context) (decimal.Decimal, error) {
	if err := m.err("SumDeliveredOrders"); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, o := range m.orders {
		if o.Status == "delivered" {
			total = total.Add(o.TotalAmount)
		}
	}
	return total, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

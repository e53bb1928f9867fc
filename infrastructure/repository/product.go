package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-ledger-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
)

const (
	productsTable   = "products p"
	productsColumns = "p.product_id, p.product_name, p.product_price, p.created_at"
)

type ProductRepository interface {
	GetProduct(productID int) (*domain.Product, error)
	GetProductsByIDs(productIDs []int) (map[int]*domain.Product, error)
	FindByName(name string) (*domain.Product, error)
	InsertProduct(product *domain.Product) error
	ListProducts() ([]*domain.Product, error)
}

type productRepository struct {
	conn postgres.Queryer
}

func NewProductRepository(conn postgres.Queryer) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) GetProduct(productID int) (*domain.Product, error) {
	query, args, err := squirrel.
		Select(productsColumns).
		From(productsTable).
		Where(squirrel.Eq{"p.product_id": productID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	product, err := scanProduct(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, classifyError("buscar produto", err)
	}

	return product, nil
}

func (r *productRepository) GetProductsByIDs(productIDs []int) (map[int]*domain.Product, error) {
	products := make(map[int]*domain.Product, len(productIDs))
	if len(productIDs) == 0 {
		return products, nil
	}

	query, args, err := squirrel.
		Select(productsColumns).
		From(productsTable).
		Where(squirrel.Eq{"p.product_id": productIDs}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, classifyError("buscar produtos", err)
	}
	defer rows.Close()

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, classifyError("escanear produto", err)
		}
		products[product.ID] = product
	}

	if err = rows.Err(); err != nil {
		return nil, classifyError("iterar produtos", err)
	}

	return products, nil
}

// FindByName faz busca exata pelo nome e retorna o primeiro produto pela ordem do id
func (r *productRepository) FindByName(name string) (*domain.Product, error) {
	query, args, err := squirrel.
		Select(productsColumns).
		From(productsTable).
		Where(squirrel.Eq{"p.product_name": name}).
		OrderBy("p.product_id ASC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	product, err := scanProduct(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, classifyError("buscar produto por nome", err)
	}

	return product, nil
}

func (r *productRepository) InsertProduct(product *domain.Product) error {
	query, args, err := squirrel.
		Insert("products").
		Columns("product_id", "product_name", "product_price").
		Values(product.ID, product.Name, product.Price).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&product.CreatedAt); err != nil {
		return classifyError("inserir produto", err)
	}

	return nil
}

func (r *productRepository) ListProducts() ([]*domain.Product, error) {
	query, args, err := squirrel.
		Select(productsColumns).
		From(productsTable).
		OrderBy("p.product_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, classifyError("listar produtos", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, classifyError("escanear produto", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, classifyError("iterar produtos", err)
	}

	return products, nil
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return product, nil
}

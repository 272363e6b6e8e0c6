package store

import (
	"context"
	"fmt"

	"cyber-shop/internal/database"
	"cyber-shop/internal/model"
)

func ListProducts(ctx context.Context, db database.DB, skip, limit int) ([]model.Product, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, description, price, image_url, stock_quantity, created_at
		 FROM products ORDER BY id OFFSET $1 LIMIT $2`,
		skip, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ListProducts: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.ImageURL,
			&p.StockQuantity,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListProducts: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListProducts: %w", err)
	}
	return products, nil
}

func GetProductByID(ctx context.Context, db database.DB, productID int) (*model.Product, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, description, price, image_url, stock_quantity, created_at
		 FROM products WHERE id = $1`,
		productID,
	)
	p := &model.Product{}
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&p.StockQuantity,
		&p.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetProductByID: %w", err)
	}
	return p, nil
}

func CreateProduct(ctx context.Context, db database.DB, p *model.Product) (*model.Product, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO products (name, description, price, image_url, stock_quantity)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		p.Name,
		p.Description,
		p.Price,
		p.ImageURL,
		p.StockQuantity,
	)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateProduct: %w", err)
	}
	return p, nil
}

// UpdateProduct 全量覆寫可變欄位，id 與 created_at 不變
func UpdateProduct(ctx context.Context, db database.DB, p *model.Product) error {
	_, err := db.Exec(ctx,
		`UPDATE products
		 SET name = $1, description = $2, price = $3, image_url = $4, stock_quantity = $5
		 WHERE id = $6`,
		p.Name,
		p.Description,
		p.Price,
		p.ImageURL,
		p.StockQuantity,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateProduct: %w", err)
	}
	return nil
}

func DeleteProduct(ctx context.Context, db database.DB, productID int) error {
	_, err := db.Exec(ctx,
		`DELETE FROM products WHERE id = $1`,
		productID,
	)
	if err != nil {
		return fmt.Errorf("DeleteProduct: %w", err)
	}
	return nil
}

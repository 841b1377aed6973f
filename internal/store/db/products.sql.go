package db

import (
	"context"
)

const create = `-- name: Create :one
INSERT INTO products (name, description, stock, price)
VALUES ($1, $2, $3, $4)
RETURNING id, name, description, stock, price, created_at, updated_at
`

type CreateParams struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Stock       int32   `json:"stock"`
	Price       float64 `json:"price"`
}

func (q *Queries) Create(ctx context.Context, arg CreateParams) (Product, error) {
	row := q.db.QueryRow(ctx, create,
		arg.Name,
		arg.Description,
		arg.Stock,
		arg.Price,
	)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.Stock,
		&i.Price,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteByID = `-- name: DeleteByID :execrows
DELETE FROM products
WHERE id = $1
`

func (q *Queries) DeleteByID(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.Exec(ctx, deleteByID, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const findAll = `-- name: FindAll :many
SELECT id, name, description, stock, price, created_at, updated_at
FROM products
ORDER BY id
LIMIT $1 OFFSET $2
`

type FindAllParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) FindAll(ctx context.Context, arg FindAllParams) ([]Product, error) {
	rows, err := q.db.Query(ctx, findAll, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		var i Product
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Description,
			&i.Stock,
			&i.Price,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findByID = `-- name: FindByID :one
SELECT id, name, description, stock, price, created_at, updated_at
FROM products
WHERE id = $1
`

func (q *Queries) FindByID(ctx context.Context, id int64) (Product, error) {
	row := q.db.QueryRow(ctx, findByID, id)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.Stock,
		&i.Price,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const update = `-- name: Update :one
UPDATE products
SET name        = COALESCE($2, name),
    description = COALESCE($3, description),
    stock       = COALESCE($4, stock),
    price       = COALESCE($5, price),
    updated_at  = now()
WHERE id = $1
RETURNING id, name, description, stock, price, created_at, updated_at
`

// UpdateParams carries optional columns; nil keeps the stored value.
type UpdateParams struct {
	ID          int64    `json:"id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Stock       *int32   `json:"stock"`
	Price       *float64 `json:"price"`
}

func (q *Queries) Update(ctx context.Context, arg UpdateParams) (Product, error) {
	row := q.db.QueryRow(ctx, update,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Stock,
		arg.Price,
	)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.Stock,
		&i.Price,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

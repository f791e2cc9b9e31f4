package psql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	databaseerrors "shopeasy/internal/database"
	"shopeasy/internal/models"
	"shopeasy/pkg/lib/logger/sl"

	_ "github.com/lib/pq"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

type Storage struct {
	log *slog.Logger
	db  *sqlx.DB
}

func New(log *slog.Logger, connStr string) *Storage {
	const op = "database.psql.New"
	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		log.With("op", op).Error("Error connect to database", sl.Err(err))
		panic(fmt.Errorf("%s: %w", op, err))
	}

	wd, err := os.Getwd()
	if err != nil {
		log.With("op", op).Error("Error getting work dir", sl.Err(err))
		panic(fmt.Errorf("%s: %w", op, err))
	}
	migrationsPath := filepath.Join(wd, "migrations")

	if err := goose.Up(db.DB, migrationsPath); err != nil {
		log.With("op", op).Error("Error applying migrations", sl.Err(err))
		panic(fmt.Errorf("%s: %w", op, err))
	}

	return &Storage{
		log: log,
		db:  db,
	}
}

func NewWithParams(log *slog.Logger, db *sqlx.DB) *Storage {
	return &Storage{
		log: log,
		db:  db,
	}
}

func (s *Storage) Close() {
	s.db.Close()
}

func (s *Storage) ListProducts(ctx context.Context) ([]models.Product, error) {
	const op = "database.psql.ListProducts"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, name, price, description, image FROM product;
	`)
	if err != nil {
		log.Error("Failed to query products", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var products = make([]models.Product, 0, 10)
	var tmpProduct models.Product
	for rows.Next() {
		if err := rows.StructScan(&tmpProduct); err != nil {
			log.Error("Failed to scan row", sl.Err(err))
			continue
		}

		products = append(products, tmpProduct)
	}

	return products, nil
}

func (s *Storage) CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error) {
	const op = "database.psql.CreateProduct"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.Product{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	id := uuid.NewString()

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO product (id, name, price, description, image)
		VALUES ($1, $2, $3, $4, $5);
	`, id, input.Name, input.Price, input.Description, input.Image); err != nil {
		log.Error("Failed to insert product", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.Product{
		Id:          id,
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Image:       input.Image,
	}, nil
}

func (s *Storage) UpdateProduct(ctx context.Context, id string, input models.ProductInput) (models.Product, error) {
	const op = "database.psql.UpdateProduct"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.Product{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var updated models.Product
	row := s.db.QueryRowxContext(ctx, `
		UPDATE product
		SET name=$1, price=$2, description=$3, image=$4
		WHERE id=$5
		RETURNING id, name, price, description, image;
	`, input.Name, input.Price, input.Description, input.Image, id)
	if err := row.StructScan(&updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("Product doesn't exist", sl.Err(databaseerrors.ErrNotFound))
			return models.Product{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}

		log.Error("Failed to update product", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (s *Storage) DeleteProduct(ctx context.Context, id string) error {
	const op = "database.psql.DeleteProduct"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM product
		WHERE id=$1;
	`, id)
	if err != nil {
		log.Error("Failed to delete product", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		log.Error("Failed to get affected rows", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		log.Warn("Product doesn't exist", sl.Err(databaseerrors.ErrNotFound))
		return fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
	}

	return nil
}

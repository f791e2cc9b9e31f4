package psql_test

import (
	databaseerrors "shopeasy/internal/database"
	"shopeasy/internal/database/psql"
	"shopeasy/internal/models"
	"shopeasy/pkg/lib/logger/slogdiscard"

	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func newTestStorage(t *testing.T) (*psql.Storage, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %s", err)
	}

	// sqlx.NewDb keeps the field mapper StructScan relies on
	storage := psql.NewWithParams(slogdiscard.NewDiscardLogger(), sqlx.NewDb(db, "sqlmock"))
	cleanup := func() { db.Close() }
	return storage, mock, cleanup
}

func strPtr(s string) *string { return &s }

func TestListProducts_ContextCanceled(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := storage.ListProducts(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListProducts_DeadlineExceeded(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*50)
	defer cancel()

	time.Sleep(time.Millisecond * 55)
	_, err := storage.ListProducts(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListProducts_Success(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "name", "price", "description", "image"}).
		AddRow("id-1", "Pen", 10.0, "Blue pen", nil).
		AddRow("id-2", "Notebook", 45.0, "A5 ruled", "https://example.com/nb.jpg")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, price, description, image FROM product;`)).
		WillReturnRows(rows)

	products, err := storage.ListProducts(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Name != "Pen" || products[1].Name != "Notebook" {
		t.Errorf("unexpected products in list")
	}
	if products[0].Image != nil {
		t.Errorf("expected nil image for first product")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %s", err)
	}
}

func TestListProducts_QueryError(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, price, description, image FROM product;`)).
		WillReturnError(errors.New("query failure"))

	_, err := storage.ListProducts(ctx)
	if err == nil {
		t.Fatal("expected error on query failure, got nil")
	}
	if err.Error() != "database.psql.ListProducts: query failure" {
		t.Errorf("unexpected error message: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %s", err)
	}
}

func TestListProducts_ScanRowError(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "name", "price", "description", "image"}).
		AddRow("id-1", "Pen", "not_a_number", "Blue pen", nil)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, price, description, image FROM product;`)).
		WillReturnRows(rows)

	products, err := storage.ListProducts(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("expected 0 products due to scan error, got %d", len(products))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %s", err)
	}
}

func TestCreateProduct_ContextCanceled(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := storage.CreateProduct(ctx, models.ProductInput{Name: "Pen", Price: 10})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateProduct_Success(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	input := models.ProductInput{
		Name:        "Pen",
		Price:       10,
		Description: "Blue pen",
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO product (id, name, price, description, image) VALUES ($1, $2, $3, $4, $5);`)).
		WithArgs(sqlmock.AnyArg(), input.Name, input.Price, input.Description, input.Image).
		WillReturnResult(sqlmock.NewResult(0, 1))

	product, err := storage.CreateProduct(ctx, input)
	assert.NoError(t, err)
	assert.NotEmpty(t, product.Id)
	assert.Equal(t, input.Name, product.Name)
	assert.Equal(t, input.Price, product.Price)
	assert.Equal(t, input.Description, product.Description)
	assert.Nil(t, product.Image)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProduct_FreshIds(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	input := models.ProductInput{Name: "Pen", Price: 10, Description: "Blue pen"}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO product`)).
		WithArgs(sqlmock.AnyArg(), input.Name, input.Price, input.Description, input.Image).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO product`)).
		WithArgs(sqlmock.AnyArg(), input.Name, input.Price, input.Description, input.Image).
		WillReturnResult(sqlmock.NewResult(0, 1))

	first, err := storage.CreateProduct(ctx, input)
	assert.NoError(t, err)
	second, err := storage.CreateProduct(ctx, input)
	assert.NoError(t, err)

	assert.NotEqual(t, first.Id, second.Id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProduct_InsertFail(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	input := models.ProductInput{Name: "Pen", Price: 10, Description: "Blue pen"}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO product`)).
		WithArgs(sqlmock.AnyArg(), input.Name, input.Price, input.Description, input.Image).
		WillReturnError(errors.New("insert error"))

	product, err := storage.CreateProduct(ctx, input)
	assert.Error(t, err)
	assert.Equal(t, models.Product{}, product)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProduct_Success(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id := "id-1"
	input := models.ProductInput{
		Name:        "Pen v2",
		Price:       12,
		Description: "Black pen",
		Image:       strPtr("https://example.com/pen.jpg"),
	}

	rows := sqlmock.NewRows([]string{"id", "name", "price", "description", "image"}).
		AddRow(id, input.Name, input.Price, input.Description, *input.Image)
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE product SET name=$1, price=$2, description=$3, image=$4 WHERE id=$5 RETURNING id, name, price, description, image;`)).
		WithArgs(input.Name, input.Price, input.Description, input.Image, id).
		WillReturnRows(rows)

	updated, err := storage.UpdateProduct(ctx, id, input)
	assert.NoError(t, err)
	assert.Equal(t, id, updated.Id)
	assert.Equal(t, input.Name, updated.Name)
	assert.Equal(t, input.Price, updated.Price)
	assert.NotNil(t, updated.Image)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProduct_NotFound(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id := "missing"
	input := models.ProductInput{Name: "Pen", Price: 10, Description: "Blue pen"}

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE product`)).
		WithArgs(input.Name, input.Price, input.Description, input.Image, id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "description", "image"}))

	_, err := storage.UpdateProduct(ctx, id, input)
	assert.ErrorIs(t, err, databaseerrors.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProduct_ContextCanceled(t *testing.T) {
	storage, _, cleanup := newTestStorage(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := storage.UpdateProduct(ctx, "id-1", models.ProductInput{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestUpdateProduct_QueryError(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id := "id-1"
	input := models.ProductInput{Name: "Pen", Price: 10, Description: "Blue pen"}

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE product`)).
		WithArgs(input.Name, input.Price, input.Description, input.Image, id).
		WillReturnError(errors.New("update error"))

	_, err := storage.UpdateProduct(ctx, id, input)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, databaseerrors.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProduct_Success(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id := "id-1"
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM product WHERE id=$1;`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := storage.DeleteProduct(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %s", err)
	}
}

func TestDeleteProduct_NotFound(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id := "missing"
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM product WHERE id=$1;`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := storage.DeleteProduct(ctx, id)
	if !errors.Is(err, databaseerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %s", err)
	}
}

func TestDeleteProduct_ExecError(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM product WHERE id=$1;`)).
		WithArgs("id-1").
		WillReturnError(errors.New("delete error"))

	err := storage.DeleteProduct(ctx, "id-1")
	if err == nil || err.Error() != "database.psql.DeleteProduct: delete error" {
		t.Fatalf("expected delete error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %s", err)
	}
}

func TestDeleteProduct_DeadlineExceeded(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*50)
	defer cancel()

	time.Sleep(time.Millisecond * 55)
	err := storage.DeleteProduct(ctx, "id-1")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

package database

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeserve/booking-backend/internal/models"
)

var serviceRows = []string{"id", "category", "name", "amount", "image_url"}

func TestServiceGetByCategory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewServiceRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM services WHERE category`).
			WithArgs(models.CategoryCleaning, "svc-1").
			WillReturnRows(sqlmock.NewRows(serviceRows).
				AddRow("svc-1", "cleaning", "Deep Cleaning", 100.0, nil))

		svc, err := repo.GetByCategory(models.CategoryCleaning, "svc-1")
		require.NoError(t, err)
		assert.Equal(t, "svc-1", svc.ID)
		assert.Equal(t, models.CategoryCleaning, svc.Category)
		assert.Equal(t, "Deep Cleaning", svc.Name)
		assert.Equal(t, 100.0, svc.Amount)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not In Category", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM services WHERE category`).
			WithArgs(models.CategoryCleaning, "svc-x").
			WillReturnError(sql.ErrNoRows)

		svc, err := repo.GetByCategory(models.CategoryCleaning, "svc-x")
		assert.Nil(t, svc)
		assert.ErrorIs(t, err, models.ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM services WHERE category`).
			WithArgs(models.CategoryCleaning, "svc-1").
			WillReturnError(fmt.Errorf("connection refused"))

		svc, err := repo.GetByCategory(models.CategoryCleaning, "svc-1")
		assert.Nil(t, svc)
		assert.ErrorIs(t, err, models.ErrStoreUnavailable)
		assert.NotErrorIs(t, err, models.ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestServiceResolve(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewServiceRepository(db)

	t.Run("Found In Later Category", func(t *testing.T) {
		// Probes run plumbing, cleaning, repairing, painting; the id only
		// exists under repairing.
		mock.ExpectQuery(`SELECT (.+) FROM services WHERE category`).
			WithArgs(models.CategoryPlumbing, "svc-9").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`SELECT (.+) FROM services WHERE category`).
			WithArgs(models.CategoryCleaning, "svc-9").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`SELECT (.+) FROM services WHERE category`).
			WithArgs(models.CategoryRepairing, "svc-9").
			WillReturnRows(sqlmock.NewRows(serviceRows).
				AddRow("svc-9", "repairing", "AC Repair", 250.0, nil))

		svc, err := repo.Resolve("svc-9")
		require.NoError(t, err)
		assert.Equal(t, "svc-9", svc.ID)
		assert.Equal(t, models.CategoryRepairing, svc.Category)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found Anywhere", func(t *testing.T) {
		for range models.CategoryProbeOrder {
			mock.ExpectQuery(`SELECT (.+) FROM services WHERE category`).
				WillReturnError(sql.ErrNoRows)
		}

		svc, err := repo.Resolve("svc-missing")
		assert.Nil(t, svc)
		assert.ErrorIs(t, err, models.ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Store Error Aborts Probing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM services WHERE category`).
			WithArgs(models.CategoryPlumbing, "svc-1").
			WillReturnError(fmt.Errorf("connection refused"))

		svc, err := repo.Resolve("svc-1")
		assert.Nil(t, svc)
		assert.ErrorIs(t, err, models.ErrStoreUnavailable)
		assert.NotErrorIs(t, err, models.ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestServiceListByCategory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewServiceRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM services WHERE category = \$1 ORDER BY name`).
			WithArgs(models.CategoryPainting).
			WillReturnRows(sqlmock.NewRows(serviceRows).
				AddRow("svc-5", "painting", "Exterior Painting", 500.0, nil).
				AddRow("svc-4", "painting", "Interior Painting", 400.0, nil))

		services, err := repo.ListByCategory(models.CategoryPainting)
		require.NoError(t, err)
		require.Len(t, services, 2)
		assert.Equal(t, "Exterior Painting", services[0].Name)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM services WHERE category = \$1 ORDER BY name`).
			WithArgs(models.CategoryPainting).
			WillReturnError(fmt.Errorf("connection refused"))

		services, err := repo.ListByCategory(models.CategoryPainting)
		assert.Nil(t, services)
		assert.ErrorIs(t, err, models.ErrStoreUnavailable)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestMetaRepository_Set(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO record_meta \(record_id, meta_key, meta_value\)`).
		WithArgs(int64(7), "position", "Engineer").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewMetaRepository(db)
	require.NoError(t, repo.Set(ctx, 7, "position", "Engineer"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMetaRepository_Delete(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Zero rows affected is still success: deleting an absent key is a no-op.
	mock.ExpectExec(`DELETE FROM record_meta WHERE record_id = \$1 AND meta_key = \$2`).
		WithArgs(int64(7), "organization").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewMetaRepository(db)
	require.NoError(t, repo.Delete(ctx, 7, "organization"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMetaRepository_GetAll(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    map[string]string
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT meta_key, meta_value FROM record_meta`).
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows([]string{"meta_key", "meta_value"}).
						AddRow("position", "Engineer").
						AddRow("talk_title", "Talk"))
			},
			want: map[string]string{"position": "Engineer", "talk_title": "Talk"},
		},
		{
			name: "no meta yields empty map",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT meta_key, meta_value FROM record_meta`).
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows([]string{"meta_key", "meta_value"}))
			},
			want: map[string]string{},
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT meta_key, meta_value FROM record_meta`).
					WithArgs(int64(7)).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewMetaRepository(db)
			got, err := repo.GetAll(ctx, 7)
			if tt.wantErr {
				require.Error(t, err)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

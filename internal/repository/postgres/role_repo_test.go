package postgres

import (
	"context"
	"database/sql"
	"testing"

	"speakeradmin/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestRoleRepository_ListByUserID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		mock      func(mock sqlmock.Sqlmock)
		wantCodes []string
		wantErr   bool
	}{
		{
			name: "user with roles",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT r.id, r.code`).
					WithArgs("u1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "code"}).
						AddRow("r1", domain.RoleAdmin).
						AddRow("r2", "editor"))
			},
			wantCodes: []string{domain.RoleAdmin, "editor"},
		},
		{
			name: "user without roles",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT r.id, r.code`).
					WithArgs("u1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "code"}))
			},
			wantCodes: nil,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT r.id, r.code`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)

			repo := NewRoleRepository(db)
			roles, err := repo.ListByUserID(ctx, "u1")

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			var codes []string
			for _, r := range roles {
				codes = append(codes, r.Code)
			}
			require.Equal(t, tt.wantCodes, codes)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

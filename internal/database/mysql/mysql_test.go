package mysql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/tablegen/internal/database/sqldb"
	"github.com/koustreak/tablegen/internal/errs"
	"github.com/koustreak/tablegen/internal/schema"
)

func TestDescribe_TypeNames(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	rows := mock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("id").OfType("UNSIGNED INT", uint32(0)),
		sqlmock.NewColumn("total").OfType("DECIMAL", "").WithPrecisionAndScale(12, 2),
		sqlmock.NewColumn("notes").OfType("MEDIUMTEXT", ""),
		sqlmock.NewColumn("created").OfType("DATETIME", ""),
		sqlmock.NewColumn("flag").OfType("TINYINT", int8(0)),
	)
	mock.ExpectQuery("SELECT * FROM `order-lines` WHERE 1>2").WillReturnRows(rows)

	d := sqldb.NewFromDB(db, Dialect, 0)
	ctx := context.Background()
	conn, err := d.Acquire(ctx)
	require.NoError(t, err)
	defer conn.Release()

	cols, err := conn.Describe(ctx, "order-lines")
	require.NoError(t, err)
	require.Len(t, cols, 5)

	want := []schema.Code{
		schema.CodeBigInt,
		schema.CodeDecimal,
		schema.CodeLongVarChar,
		schema.CodeTimestamp,
		schema.CodeTinyInt,
	}
	for i, c := range cols {
		assert.Equal(t, want[i], c.TypeCode, c.Name)
	}
	assert.Equal(t, 12, cols[1].Precision)
	assert.Equal(t, 2, cols[1].Scale)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.ErrKind
	}{
		{"deadline", context.DeadlineExceeded, errs.ErrKindTimeout},
		{"canceled", fmt.Errorf("query: %w", context.Canceled), errs.ErrKindInterrupted},
		{"no such table", &gomysql.MySQLError{Number: 1146, Message: "Table 'shop.ghost' doesn't exist"}, errs.ErrKindNotFound},
		{"access denied", &gomysql.MySQLError{Number: 1045, Message: "Access denied"}, errs.ErrKindPermissionDenied},
		{"unknown database", &gomysql.MySQLError{Number: 1049, Message: "Unknown database"}, errs.ErrKindConnectionFailed},
		{"syntax", &gomysql.MySQLError{Number: 1064, Message: "syntax error"}, errs.ErrKindQueryFailed},
		{"network", errors.New("dial tcp: connection refused"), errs.ErrKindConnectionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err, "describe failed")
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Kind)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	assert.Nil(t, mapError(nil, "unused"))
}

func TestMapError_IncludesServerMessage(t *testing.T) {
	err := mapError(&gomysql.MySQLError{Number: 1146, Message: "Table 'shop.ghost' doesn't exist"}, "metadata query on ghost failed")
	assert.Equal(t, "metadata query on ghost failed: Table 'shop.ghost' doesn't exist", err.Message)
}

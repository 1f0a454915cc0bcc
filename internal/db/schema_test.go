package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestEnsureSchemaAddsMissingGatewayColumns(t *testing.T) {
	database, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	for range schemaDDL {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	// payments predates the hosted-checkout columns: session id is absent,
	// payment ref already present.
	mock.ExpectQuery("FROM information_schema.tables").WithArgs("payments").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("payments"))
	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("payments", "gateway_session_id").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
	mock.ExpectExec("ALTER TABLE payments ADD COLUMN gateway_session_id").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("payments", "gateway_payment_ref").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("gateway_payment_ref"))

	if err := EnsureSchema(database); err != nil {
		t.Fatalf("ensure schema error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHasTableAndColumn(t *testing.T) {
	database, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	mock.ExpectQuery("FROM information_schema.tables").WithArgs("loans").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("loans"))
	if !HasTable(database, "loans") {
		t.Fatal("expected loans table to be reported present")
	}

	mock.ExpectQuery("FROM information_schema.columns").WithArgs("loans", "ghost").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
	if HasColumn(database, "loans", "ghost") {
		t.Fatal("expected missing column to be reported absent")
	}
}

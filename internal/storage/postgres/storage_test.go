package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/miccroten/quoteportal/internal/domain/errors"
	"github.com/miccroten/quoteportal/internal/domain/model"
)

func newMockStorage(t *testing.T) (*Storage, pgxmockv3.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmockv3.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	storage := &Storage{pool: mock, logger: logger}
	return storage, mock
}

func expectSchema(mock pgxmockv3.PgxPoolIface) {
	tableStatements := []string{
		"CREATE TABLE IF NOT EXISTS accounts",
		"CREATE TABLE IF NOT EXISTS profiles",
		"CREATE TABLE IF NOT EXISTS quotations",
		"CREATE TABLE IF NOT EXISTS contact_submissions",
		"CREATE TABLE IF NOT EXISTS checkout_sessions",
	}
	for _, stmt := range tableStatements {
		mock.ExpectExec(stmt).WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	}
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_quotations_user ON quotations").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_quotations_created ON quotations").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_checkout_sessions_state ON checkout_sessions").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
}

func TestInitSchema(t *testing.T) {
	storage, mock := newMockStorage(t)
	expectSchema(mock)

	if err := storage.initSchema(context.Background()); err != nil {
		t.Fatalf("init schema failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInitSchemaError(t *testing.T) {
	storage, mock := newMockStorage(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS accounts").WillReturnError(errors.New("boom"))

	if err := storage.initSchema(context.Background()); err == nil {
		t.Fatal("expected error from failed schema init")
	}
}

func TestAccountCreateDuplicate(t *testing.T) {
	storage, mock := newMockStorage(t)
	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs("a@b.c", "hash", "customer").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := storage.Accounts().Create(context.Background(), "a@b.c", "hash", model.RoleCustomer)
	if !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAccountGetByEmail(t *testing.T) {
	storage, mock := newMockStorage(t)
	created := time.Now()
	mock.ExpectQuery("SELECT id, email, password_hash, role, created_at FROM accounts WHERE email").
		WithArgs("a@b.c").
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "email", "password_hash", "role", "created_at"}).
			AddRow(int64(3), "a@b.c", "hash", "admin", created))

	account, err := storage.Accounts().GetByEmail(context.Background(), "a@b.c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.ID != 3 || account.Role != model.RoleAdmin {
		t.Fatalf("unexpected account: %+v", account)
	}
}

func TestAccountGetByIDNotFound(t *testing.T) {
	storage, mock := newMockStorage(t)
	mock.ExpectQuery("SELECT id, email, password_hash, role, created_at FROM accounts WHERE id").
		WithArgs(int64(9)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "email", "password_hash", "role", "created_at"}))

	if _, err := storage.Accounts().GetByID(context.Background(), 9); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func quotationRows() *pgxmockv3.Rows {
	return pgxmockv3.NewRows([]string{"id", "type", "status", "config", "additional_message", "user_id", "user_name", "file_path", "payment_id", "created_at", "updated_at"})
}

func TestQuotationGetByID(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Now()
	mock.ExpectQuery("SELECT id, type, status, config, .* FROM quotations WHERE id").
		WithArgs("q-1").
		WillReturnRows(quotationRows().AddRow(
			"q-1", "PCB", "Quoted", []byte(`{"total":150,"currency":"USD","layers":4}`),
			nil, int64(7), nil, nil, nil, now, now))

	q, err := storage.Quotations().GetByID(context.Background(), "q-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Status != model.StatusQuoted || q.Type != model.TypePCB {
		t.Fatalf("unexpected quotation: %+v", q)
	}
	if !q.Config.Priced() || *q.Config.Total != 150 || *q.Config.Currency != model.CurrencyUSD {
		t.Fatalf("unexpected config: %+v", q.Config)
	}
	if q.Config.Spec["layers"] != float64(4) {
		t.Fatalf("expected spec field to survive, got %v", q.Config.Spec)
	}
}

func TestQuotationSetQuoteConflict(t *testing.T) {
	storage, mock := newMockStorage(t)
	total := 99.5
	currency := model.CurrencyINR
	cfg := model.QuoteConfig{Total: &total, Currency: &currency}

	mock.ExpectExec("UPDATE quotations SET config").
		WithArgs(pgxmockv3.AnyArg(), "Quoted", "q-1", pgxmockv3.AnyArg()).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT 1 FROM quotations WHERE id").
		WithArgs("q-1").
		WillReturnRows(pgxmockv3.NewRows([]string{"one"}).AddRow(1))

	err := storage.Quotations().SetQuote(context.Background(), "q-1", cfg, model.StatusQuoted,
		[]model.Status{model.StatusPendingReview, model.StatusQuoted})
	if !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestQuotationSetQuoteNotFound(t *testing.T) {
	storage, mock := newMockStorage(t)
	total := 10.0
	currency := model.CurrencyUSD
	cfg := model.QuoteConfig{Total: &total, Currency: &currency}

	mock.ExpectExec("UPDATE quotations SET config").
		WithArgs(pgxmockv3.AnyArg(), "Quoted", "missing", pgxmockv3.AnyArg()).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT 1 FROM quotations WHERE id").
		WithArgs("missing").
		WillReturnRows(pgxmockv3.NewRows([]string{"one"}))

	err := storage.Quotations().SetQuote(context.Background(), "missing", cfg, model.StatusQuoted,
		[]model.Status{model.StatusPendingReview, model.StatusQuoted})
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestQuotationMarkPaid(t *testing.T) {
	storage, mock := newMockStorage(t)
	mock.ExpectExec("UPDATE quotations SET status").
		WithArgs("Paid", "pay_123", "q-1", "Quoted").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))

	if err := storage.Quotations().MarkPaid(context.Background(), "q-1", "pay_123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestQuotationMarkPaidLostRace(t *testing.T) {
	storage, mock := newMockStorage(t)
	mock.ExpectExec("UPDATE quotations SET status").
		WithArgs("Paid", "pay_123", "q-1", "Quoted").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT 1 FROM quotations WHERE id").
		WithArgs("q-1").
		WillReturnRows(pgxmockv3.NewRows([]string{"one"}).AddRow(1))

	if err := storage.Quotations().MarkPaid(context.Background(), "q-1", "pay_123"); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestQuotationAdvanceStatus(t *testing.T) {
	storage, mock := newMockStorage(t)
	mock.ExpectExec("UPDATE quotations SET status").
		WithArgs("Shipped", "q-1", "In Production").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))

	err := storage.Quotations().AdvanceStatus(context.Background(), "q-1", model.StatusShipped, model.StatusInProduction)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQuotationListByOwner(t *testing.T) {
	storage, mock := newMockStorage(t)
	newer := time.Now()
	older := newer.Add(-time.Hour)
	paymentID := "pay_9"
	mock.ExpectQuery("SELECT id, type, status, config, .* FROM quotations WHERE user_id").
		WithArgs(int64(7)).
		WillReturnRows(quotationRows().
			AddRow("q-2", "Assembly", "Pending Review", []byte(`{}`), nil, int64(7), nil, nil, nil, newer, newer).
			AddRow("q-1", "PCB", "Delivered", []byte(`{"total":80,"currency":"INR"}`), nil, int64(7), nil, nil, &paymentID, older, older))

	quotations, err := storage.Quotations().ListByOwner(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotations) != 2 {
		t.Fatalf("expected 2 quotations, got %d", len(quotations))
	}
	if quotations[0].ID != "q-2" || quotations[1].ID != "q-1" {
		t.Fatalf("expected newest-first ordering, got %s then %s", quotations[0].ID, quotations[1].ID)
	}
	if quotations[1].PaymentID == nil || *quotations[1].PaymentID != "pay_9" {
		t.Fatalf("expected payment id to be scanned, got %v", quotations[1].PaymentID)
	}
}

func TestCheckoutSessionListPending(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Now()
	mock.ExpectQuery("SELECT gateway_order_id, quotation_id, amount_minor, currency, state, created_at").
		WithArgs("created", 5).
		WillReturnRows(pgxmockv3.NewRows([]string{"gateway_order_id", "quotation_id", "amount_minor", "currency", "state", "created_at"}).
			AddRow("order_1", "q-1", int64(15000), "USD", "created", now))

	sessions, err := storage.CheckoutSessions().ListPending(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 1 || sessions[0].AmountMinor != 15000 || sessions[0].State != model.SessionCreated {
		t.Fatalf("unexpected sessions: %+v", sessions)
	}
}

func TestCheckoutSessionSetStateNotFound(t *testing.T) {
	storage, mock := newMockStorage(t)
	mock.ExpectExec("UPDATE checkout_sessions SET state").
		WithArgs("settled", "order_1").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))

	err := storage.CheckoutSessions().SetState(context.Background(), "order_1", model.SessionSettled)
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileUpsertAndGet(t *testing.T) {
	storage, mock := newMockStorage(t)
	name := "Asha"
	phone := "+911234567890"
	mock.ExpectExec("INSERT INTO profiles").
		WithArgs(int64(7), &name, &phone).
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectQuery("SELECT user_id, full_name, phone FROM profiles WHERE user_id").
		WithArgs(int64(7)).
		WillReturnRows(pgxmockv3.NewRows([]string{"user_id", "full_name", "phone"}).AddRow(int64(7), &name, &phone))

	if err := storage.Profiles().Upsert(context.Background(), model.Profile{UserID: 7, FullName: &name, Phone: &phone}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	profile, err := storage.Profiles().GetByUserID(context.Background(), 7)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if profile.FullName == nil || *profile.FullName != name {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestHealthCheck(t *testing.T) {
	storage, mock := newMockStorage(t)
	mock.ExpectPing()

	if err := storage.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

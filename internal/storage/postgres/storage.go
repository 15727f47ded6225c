package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/miccroten/quoteportal/internal/domain/errors"
	"github.com/miccroten/quoteportal/internal/domain/model"
	"github.com/miccroten/quoteportal/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage layer relies on.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type accountRepository struct {
	storage *Storage
}

type profileRepository struct {
	storage *Storage
}

type quotationRepository struct {
	storage *Storage
}

type contactRepository struct {
	storage *Storage
}

type checkoutSessionRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Accounts() repository.AccountRepository {
	return &accountRepository{storage: s}
}

func (s *Storage) Profiles() repository.ProfileRepository {
	return &profileRepository{storage: s}
}

func (s *Storage) Quotations() repository.QuotationRepository {
	return &quotationRepository{storage: s}
}

func (s *Storage) Contacts() repository.ContactRepository {
	return &contactRepository{storage: s}
}

func (s *Storage) CheckoutSessions() repository.CheckoutSessionRepository {
	return &checkoutSessionRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
            id SERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'customer',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS profiles (
            user_id BIGINT PRIMARY KEY REFERENCES accounts(id),
            full_name TEXT,
            phone TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS quotations (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            type TEXT NOT NULL,
            status TEXT NOT NULL,
            config JSONB NOT NULL DEFAULT '{}',
            additional_message TEXT,
            user_id BIGINT NOT NULL REFERENCES accounts(id),
            user_name TEXT,
            file_path TEXT,
            payment_id TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS contact_submissions (
            id SERIAL PRIMARY KEY,
            name TEXT,
            company TEXT,
            email TEXT,
            phone TEXT,
            service_type TEXT,
            message TEXT,
            file_path TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS checkout_sessions (
            gateway_order_id TEXT PRIMARY KEY,
            quotation_id UUID NOT NULL REFERENCES quotations(id),
            amount_minor BIGINT NOT NULL,
            currency TEXT NOT NULL,
            state TEXT NOT NULL DEFAULT 'created',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_quotations_user ON quotations(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_quotations_created ON quotations(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_checkout_sessions_state ON checkout_sessions(state, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- AccountRepository implementation ---

func (r *accountRepository) Create(ctx context.Context, email, passwordHash string, role model.Role) (*model.Account, error) {
	const query = `INSERT INTO accounts (email, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`
	var a model.Account
	err := r.storage.pool.QueryRow(ctx, query, email, passwordHash, string(role)).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	a.Email = email
	a.PasswordHash = passwordHash
	a.Role = role
	return &a, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	const query = `SELECT id, email, password_hash, role, created_at FROM accounts WHERE email=$1`
	return scanAccount(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	const query = `SELECT id, email, password_hash, role, created_at FROM accounts WHERE id=$1`
	return scanAccount(r.storage.pool.QueryRow(ctx, query, id))
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	var a model.Account
	var role string
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &role, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	a.Role = model.Role(role)
	return &a, nil
}

// --- ProfileRepository implementation ---

func (r *profileRepository) Upsert(ctx context.Context, p model.Profile) error {
	const query = `INSERT INTO profiles (user_id, full_name, phone) VALUES ($1, $2, $3)
                   ON CONFLICT (user_id) DO UPDATE SET full_name = EXCLUDED.full_name, phone = EXCLUDED.phone`
	_, err := r.storage.pool.Exec(ctx, query, p.UserID, p.FullName, p.Phone)
	return err
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	const query = `SELECT user_id, full_name, phone FROM profiles WHERE user_id=$1`
	var p model.Profile
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&p.UserID, &p.FullName, &p.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// --- QuotationRepository implementation ---

const quotationColumns = `id, type, status, config, additional_message, user_id, user_name, file_path, payment_id, created_at, updated_at`

func (r *quotationRepository) Create(ctx context.Context, q model.Quotation) (*model.Quotation, error) {
	const query = `INSERT INTO quotations (type, status, config, additional_message, user_id, user_name, file_path)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING id, created_at, updated_at`
	cfg, err := json.Marshal(q.Config)
	if err != nil {
		return nil, err
	}
	err = r.storage.pool.QueryRow(ctx, query,
		string(q.Type), string(q.Status), cfg, q.AdditionalMessage, q.UserID, q.UserName, q.FilePath,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *quotationRepository) GetByID(ctx context.Context, id string) (*model.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations WHERE id=$1`
	return scanQuotation(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *quotationRepository) GetByFilePath(ctx context.Context, filePath string) (*model.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations WHERE file_path=$1 LIMIT 1`
	return scanQuotation(r.storage.pool.QueryRow(ctx, query, filePath))
}

func (r *quotationRepository) ListAll(ctx context.Context) ([]model.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectQuotations(rows)
}

func (r *quotationRepository) ListByOwner(ctx context.Context, userID int64) ([]model.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return collectQuotations(rows)
}

// SetQuote writes pricing and status in one statement conditioned on the
// status the administrator last observed.
func (r *quotationRepository) SetQuote(ctx context.Context, id string, config model.QuoteConfig, status model.Status, expected []model.Status) error {
	const query = `UPDATE quotations SET config=$1, status=$2, updated_at=NOW() WHERE id=$3 AND status = ANY($4)`
	cfg, err := json.Marshal(config)
	if err != nil {
		return err
	}
	tag, err := r.storage.pool.Exec(ctx, query, cfg, string(status), id, statusStrings(expected))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.explainMissedUpdate(ctx, id)
	}
	return nil
}

// MarkPaid is the single write path for the Quoted to Paid transition. The
// payment_id guard keeps the column write-once even if two callbacks race.
func (r *quotationRepository) MarkPaid(ctx context.Context, id string, paymentID string) error {
	const query = `UPDATE quotations SET status=$1, payment_id=$2, updated_at=NOW()
                   WHERE id=$3 AND status=$4 AND payment_id IS NULL`
	tag, err := r.storage.pool.Exec(ctx, query, string(model.StatusPaid), paymentID, id, string(model.StatusQuoted))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.explainMissedUpdate(ctx, id)
	}
	return nil
}

func (r *quotationRepository) AdvanceStatus(ctx context.Context, id string, next, expected model.Status) error {
	const query = `UPDATE quotations SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, string(next), id, string(expected))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.explainMissedUpdate(ctx, id)
	}
	return nil
}

// explainMissedUpdate distinguishes an unknown id from a lost optimistic race.
func (r *quotationRepository) explainMissedUpdate(ctx context.Context, id string) error {
	const query = `SELECT 1 FROM quotations WHERE id=$1`
	var one int
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.ErrNotFound
	}
	if err != nil {
		return err
	}
	return domainErrors.ErrConflict
}

func scanQuotation(row pgx.Row) (*model.Quotation, error) {
	var q model.Quotation
	var qType, status string
	var cfg []byte
	err := row.Scan(&q.ID, &qType, &status, &cfg, &q.AdditionalMessage, &q.UserID, &q.UserName, &q.FilePath, &q.PaymentID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := fillQuotation(&q, qType, status, cfg); err != nil {
		return nil, err
	}
	return &q, nil
}

func collectQuotations(rows pgx.Rows) ([]model.Quotation, error) {
	defer rows.Close()

	var result []model.Quotation
	for rows.Next() {
		var q model.Quotation
		var qType, status string
		var cfg []byte
		if err := rows.Scan(&q.ID, &qType, &status, &cfg, &q.AdditionalMessage, &q.UserID, &q.UserName, &q.FilePath, &q.PaymentID, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		if err := fillQuotation(&q, qType, status, cfg); err != nil {
			return nil, err
		}
		result = append(result, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func fillQuotation(q *model.Quotation, qType, status string, cfg []byte) error {
	q.Type = model.QuotationType(qType)
	q.Status = model.Status(status)
	if len(cfg) > 0 {
		if err := json.Unmarshal(cfg, &q.Config); err != nil {
			return fmt.Errorf("decode quotation config: %w", err)
		}
	}
	return nil
}

func statusStrings(statuses []model.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

// --- ContactRepository implementation ---

func (r *contactRepository) Create(ctx context.Context, sub model.ContactSubmission) (*model.ContactSubmission, error) {
	const query = `INSERT INTO contact_submissions (name, company, email, phone, service_type, message, file_path)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		sub.Name, sub.Company, sub.Email, sub.Phone, sub.ServiceType, sub.Message, sub.FilePath,
	).Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *contactRepository) ListAll(ctx context.Context) ([]model.ContactSubmission, error) {
	const query = `SELECT id, name, company, email, phone, service_type, message, file_path, created_at
                   FROM contact_submissions ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ContactSubmission
	for rows.Next() {
		var c model.ContactSubmission
		if err := rows.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.ServiceType, &c.Message, &c.FilePath, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *contactRepository) GetByFilePath(ctx context.Context, path string) (*model.ContactSubmission, error) {
	const query = `SELECT id, name, company, email, phone, service_type, message, file_path, created_at
                   FROM contact_submissions WHERE file_path=$1 LIMIT 1`
	var c model.ContactSubmission
	err := r.storage.pool.QueryRow(ctx, query, path).Scan(
		&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.ServiceType, &c.Message, &c.FilePath, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// --- CheckoutSessionRepository implementation ---

func (r *checkoutSessionRepository) Create(ctx context.Context, s model.CheckoutSession) error {
	const query = `INSERT INTO checkout_sessions (gateway_order_id, quotation_id, amount_minor, currency, state)
                   VALUES ($1, $2, $3, $4, $5)`
	_, err := r.storage.pool.Exec(ctx, query,
		s.GatewayOrderID, s.QuotationID, s.AmountMinor, string(s.Currency), string(s.State))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *checkoutSessionRepository) Get(ctx context.Context, gatewayOrderID string) (*model.CheckoutSession, error) {
	const query = `SELECT gateway_order_id, quotation_id, amount_minor, currency, state, created_at
                   FROM checkout_sessions WHERE gateway_order_id=$1`
	var s model.CheckoutSession
	var currency, state string
	err := r.storage.pool.QueryRow(ctx, query, gatewayOrderID).Scan(
		&s.GatewayOrderID, &s.QuotationID, &s.AmountMinor, &currency, &state, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	s.Currency = model.Currency(currency)
	s.State = model.SessionState(state)
	return &s, nil
}

func (r *checkoutSessionRepository) ListPending(ctx context.Context, limit int) ([]model.CheckoutSession, error) {
	const query = `SELECT gateway_order_id, quotation_id, amount_minor, currency, state, created_at
                   FROM checkout_sessions WHERE state=$1 ORDER BY created_at LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, string(model.SessionCreated), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CheckoutSession
	for rows.Next() {
		var s model.CheckoutSession
		var currency, state string
		if err := rows.Scan(&s.GatewayOrderID, &s.QuotationID, &s.AmountMinor, &currency, &state, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Currency = model.Currency(currency)
		s.State = model.SessionState(state)
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *checkoutSessionRepository) SetState(ctx context.Context, gatewayOrderID string, state model.SessionState) error {
	const query = `UPDATE checkout_sessions SET state=$1 WHERE gateway_order_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, string(state), gatewayOrderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}

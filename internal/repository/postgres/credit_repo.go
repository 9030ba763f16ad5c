package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mockzen-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creditRepo serves both ledgers; the user and institution variants differ
// only in their backing tables.
type creditRepo struct {
	db           *pgxpool.Pool
	balanceTable string
	txnTable     string
	ownerCol     string
}

func NewUserCreditRepository(db *pgxpool.Pool) domain.CreditRepository {
	return &creditRepo{
		db:           db,
		balanceTable: "user_credits",
		txnTable:     "credit_transactions",
		ownerCol:     "user_id",
	}
}

func NewInstitutionCreditRepository(db *pgxpool.Pool) domain.CreditRepository {
	return &creditRepo{
		db:           db,
		balanceTable: "institution_credits",
		txnTable:     "institution_credit_transactions",
		ownerCol:     "institution_id",
	}
}

func (r *creditRepo) GetBalance(ctx context.Context, ownerID string) (int, bool, error) {
	query := fmt.Sprintf(`SELECT balance FROM %s WHERE %s = $1`, r.balanceTable, r.ownerCol)
	var balance int
	err := r.db.QueryRow(ctx, query, ownerID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return balance, true, nil
}

func (r *creditRepo) InsertBalance(ctx context.Context, ownerID string, balance int) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, balance, updated_at) VALUES ($1, $2, NOW())`,
		r.balanceTable, r.ownerCol)
	_, err := r.db.Exec(ctx, query, ownerID, balance)
	return err
}

func (r *creditRepo) SetBalance(ctx context.Context, ownerID string, balance int) error {
	query := fmt.Sprintf(`UPDATE %s SET balance = $2, updated_at = NOW() WHERE %s = $1`,
		r.balanceTable, r.ownerCol)
	tag, err := r.db.Exec(ctx, query, ownerID, balance)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *creditRepo) UpsertBalance(ctx context.Context, ownerID string, balance int) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, balance, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (%s) DO UPDATE SET balance = EXCLUDED.balance, updated_at = NOW()`,
		r.balanceTable, r.ownerCol, r.ownerCol)
	_, err := r.db.Exec(ctx, query, ownerID, balance)
	return err
}

func (r *creditRepo) AppendTransaction(ctx context.Context, txn *domain.CreditTransaction) error {
	metadata := []byte("{}")
	if txn.Metadata != nil {
		b, err := json.Marshal(txn.Metadata)
		if err != nil {
			return err
		}
		metadata = b
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, delta, reason, metadata, created_at)
		VALUES ($1, $2, $3, $4, NOW()) RETURNING id`, r.txnTable, r.ownerCol)
	return r.db.QueryRow(ctx, query, txn.OwnerID, txn.Delta, txn.Reason, metadata).Scan(&txn.ID)
}

func (r *creditRepo) ListTransactions(ctx context.Context, ownerID string, limit int) ([]domain.CreditTransaction, error) {
	query := fmt.Sprintf(`SELECT id, %s, delta, reason, metadata, created_at FROM %s
		WHERE %s = $1 ORDER BY created_at DESC LIMIT $2`, r.ownerCol, r.txnTable, r.ownerCol)

	rows, err := r.db.Query(ctx, query, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []domain.CreditTransaction
	for rows.Next() {
		var txn domain.CreditTransaction
		var metadata []byte
		if err := rows.Scan(&txn.ID, &txn.OwnerID, &txn.Delta, &txn.Reason, &metadata, &txn.CreatedAt); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			_ = json.Unmarshal(metadata, &txn.Metadata)
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

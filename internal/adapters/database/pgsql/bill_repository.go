package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trustnest/trustnest_backend/internal/apperrors"
	"github.com/trustnest/trustnest_backend/internal/core/domain"
	portsrepo "github.com/trustnest/trustnest_backend/internal/core/ports/repositories"
)

type billRepository struct {
	pool *pgxpool.Pool
}

// NewBillRepository creates a new repository for bill data. Split snapshots
// are stored as a JSONB column on the bill row; a bill and its splits are
// always read and written as one unit.
func NewBillRepository(pool *pgxpool.Pool) portsrepo.BillRepositoryFacade {
	return &billRepository{pool: pool}
}

var _ portsrepo.BillRepositoryFacade = (*billRepository)(nil)

const billColumns = `bill_id, pool_id, description, total_amount, paid_by_id, split_type, splits, category, receipt_url, bill_date, created_at, created_by, last_updated_at, last_updated_by`

func scanBill(row pgx.Row) (*domain.Bill, error) {
	var b domain.Bill
	var splitsJSON []byte
	err := row.Scan(
		&b.BillID,
		&b.PoolID,
		&b.Description,
		&b.TotalAmount,
		&b.PaidByID,
		&b.SplitType,
		&splitsJSON,
		&b.Category,
		&b.ReceiptURL,
		&b.Date,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(splitsJSON, &b.Splits); err != nil {
		return nil, fmt.Errorf("failed to decode splits of bill %s: %w", b.BillID, err)
	}
	return &b, nil
}

// SaveBill inserts the bill and bumps the owning pool's last-updated
// timestamp within one transaction.
func (r *billRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	splitsJSON, err := json.Marshal(bill.Splits)
	if err != nil {
		return fmt.Errorf("failed to encode splits of bill %s: %w", bill.BillID, err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, query,
		bill.BillID,
		bill.PoolID,
		bill.Description,
		bill.TotalAmount,
		bill.PaidByID,
		bill.SplitType,
		splitsJSON,
		bill.Category,
		bill.ReceiptURL,
		bill.Date,
		bill.CreatedAt,
		bill.CreatedBy,
		bill.LastUpdatedAt,
		bill.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save bill %s: %w", bill.BillID, err)
	}

	poolQuery := `UPDATE pools SET last_updated_at = $2, last_updated_by = $3 WHERE pool_id = $1;`
	tag, err := tx.Exec(ctx, poolQuery, bill.PoolID, bill.LastUpdatedAt, bill.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to touch pool %s for bill %s: %w", bill.PoolID, bill.BillID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit bill %s: %w", bill.BillID, err)
	}
	return nil
}

// FindBillByID retrieves a bill with its split snapshot.
func (r *billRepository) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE bill_id = $1;`
	b, err := scanBill(r.pool.QueryRow(ctx, query, billID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bill by ID %s: %w", billID, err)
	}
	return b, nil
}

// ListBillsByPoolID retrieves all bills of a pool, most recent date first.
func (r *billRepository) ListBillsByPoolID(ctx context.Context, poolID string) ([]domain.Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE pool_id = $1
		ORDER BY bill_date DESC, created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills for pool %s: %w", poolID, err)
	}
	defer rows.Close()

	var bills []domain.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill row: %w", err)
		}
		bills = append(bills, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading bill rows: %w", err)
	}
	return bills, nil
}

// UpdateSplitPaid flips the paid flag of userID's split to true. The row is
// locked while the split snapshot is rewritten so concurrent payments on the
// same bill cannot lose updates.
func (r *billRepository) UpdateSplitPaid(ctx context.Context, billID, userID string, updatedBy string, at time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `SELECT ` + billColumns + ` FROM bills WHERE bill_id = $1 FOR UPDATE;`
	b, err := scanBill(tx.QueryRow(ctx, query, billID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock bill %s: %w", billID, err)
	}

	split := b.SplitFor(userID)
	if split == nil {
		return apperrors.ErrNotFound
	}
	if split.Paid {
		return tx.Commit(ctx)
	}
	split.Paid = true

	splitsJSON, err := json.Marshal(b.Splits)
	if err != nil {
		return fmt.Errorf("failed to encode splits of bill %s: %w", billID, err)
	}

	updateQuery := `
		UPDATE bills
		SET splits = $2, last_updated_at = $3, last_updated_by = $4
		WHERE bill_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, billID, splitsJSON, at, updatedBy); err != nil {
		return fmt.Errorf("failed to update splits of bill %s: %w", billID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit split payment on bill %s: %w", billID, err)
	}
	return nil
}

// DeleteBill removes the bill so it no longer contributes to balances.
func (r *billRepository) DeleteBill(ctx context.Context, billID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bills WHERE bill_id = $1;`, billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill %s: %w", billID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

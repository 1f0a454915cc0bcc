package repositories

import (
	"database/sql"
	"time"

	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain"
	"github.com/amanshrivastava21/UTS-Mobile-Ticketing-Website/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB { return fallbackDB(r.DB) }

const paymentColumns = `id, user_id, loan_id, amount, payment_type, payment_method, status,
       description, transaction_id, due_date, paid_date, gateway_session_id, gateway_payment_ref`

func scanPayment(row interface{ Scan(...any) error }) (models.Payment, error) {
	var p models.Payment
	var loanID sql.NullInt64
	var due, paid sql.NullTime
	err := row.Scan(&p.ID, &p.UserID, &loanID, &p.Amount, &p.PaymentType, &p.PaymentMethod,
		&p.Status, &p.Description, &p.TransactionID, &due, &paid, &p.GatewaySessionID, &p.GatewayPaymentRef)
	if err != nil {
		return models.Payment{}, err
	}
	if loanID.Valid {
		v := loanID.Int64
		p.LoanID = &v
	}
	if due.Valid {
		t := due.Time
		p.DueDate = &t
	}
	if paid.Valid {
		t := paid.Time
		p.PaidDate = &t
	}
	return p, nil
}

// Insert records a new obligation. Payments always start pending or waived,
// never completed.
func (r PaymentRepository) Insert(ex Execer, p models.Payment) (int64, error) {
	var loanID any
	if p.LoanID != nil {
		loanID = *p.LoanID
	}
	res, err := ex.Exec(`
		INSERT INTO payments (user_id, loan_id, amount, payment_type, payment_method, status,
		                      description, transaction_id, due_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, loanID, p.Amount, p.PaymentType, p.PaymentMethod, p.Status,
		p.Description, p.TransactionID, p.DueDate)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return res.LastInsertId()
}

func (r PaymentRepository) GetByID(ex Execer, id int64) (models.Payment, error) {
	p, err := scanPayment(ex.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE id = ? LIMIT 1`, id))
	if err == sql.ErrNoRows {
		return models.Payment{}, domain.NotFoundError{Resource: "payment"}
	}
	if err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}
	return p, nil
}

// GetBySessionID resolves a payment from its gateway checkout session.
func (r PaymentRepository) GetBySessionID(ex Execer, sessionID string) (models.Payment, error) {
	p, err := scanPayment(ex.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE gateway_session_id = ? LIMIT 1`, sessionID))
	if err == sql.ErrNoRows {
		return models.Payment{}, domain.NotFoundError{Resource: "payment"}
	}
	if err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}
	return p, nil
}

// MarkCompleted settles a pending payment. The terminal-state guard is the
// conditional WHERE: a payment already completed touches no row, which makes
// the gateway webhook and the user verification path safe to race.
func (r PaymentRepository) MarkCompleted(ex Execer, id int64, method string, paidDate time.Time, gatewayRef string) (bool, error) {
	res, err := ex.Exec(`
		UPDATE payments
		SET status = ?, payment_method = ?, paid_date = ?,
		    gateway_payment_ref = CASE WHEN ? <> '' THEN ? ELSE gateway_payment_ref END
		WHERE id = ? AND status <> ?`,
		models.PaymentCompleted, method, paidDate, gatewayRef, gatewayRef, id, models.PaymentCompleted)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

// MarkWaived forgives a pending payment.
func (r PaymentRepository) MarkWaived(ex Execer, id int64) (bool, error) {
	res, err := ex.Exec(`UPDATE payments SET status = ? WHERE id = ? AND status = ?`,
		models.PaymentWaived, id, models.PaymentPending)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

// SetGatewaySession stores the hosted-checkout session id on the payment.
func (r PaymentRepository) SetGatewaySession(ex Execer, id int64, sessionID string) error {
	if _, err := ex.Exec(`UPDATE payments SET gateway_session_id = ? WHERE id = ?`, sessionID, id); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r PaymentRepository) ListAll(onlyPending bool) ([]models.Payment, error) {
	q := `
		SELECT p.id, p.user_id, p.loan_id, p.amount, p.payment_type, p.payment_method, p.status,
		       p.description, p.transaction_id, p.due_date, p.paid_date, p.gateway_session_id, p.gateway_payment_ref,
		       u.name, u.email
		FROM payments p
		JOIN users u ON u.id = p.user_id`
	args := []any{}
	if onlyPending {
		q += ` WHERE p.status = ?`
		args = append(args, models.PaymentPending)
	}
	q += ` ORDER BY p.created_at DESC`

	rows, err := r.db().Query(q, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		var loanID sql.NullInt64
		var due, paid sql.NullTime
		if err := rows.Scan(&p.ID, &p.UserID, &loanID, &p.Amount, &p.PaymentType, &p.PaymentMethod,
			&p.Status, &p.Description, &p.TransactionID, &due, &paid,
			&p.GatewaySessionID, &p.GatewayPaymentRef, &p.UserName, &p.UserEmail); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		if loanID.Valid {
			v := loanID.Int64
			p.LoanID = &v
		}
		if due.Valid {
			t := due.Time
			p.DueDate = &t
		}
		if paid.Valid {
			t := paid.Time
			p.PaidDate = &t
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PaymentRepository) ListByUser(userID int64, onlyPending bool) ([]models.Payment, error) {
	q := `SELECT ` + paymentColumns + ` FROM payments WHERE user_id = ?`
	args := []any{userID}
	if onlyPending {
		q += ` AND status = ?`
		args = append(args, models.PaymentPending)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db().Query(q, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

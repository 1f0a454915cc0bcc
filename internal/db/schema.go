package db

import (
	"database/sql"
	"fmt"
	"log"
)

// schemaDDL holds every table the service needs. Statements are idempotent
// so the bootstrap can run on every startup.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'user',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS trains (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		number VARCHAR(50) NOT NULL,
		type VARCHAR(20) NOT NULL DEFAULT 'train',
		total_seats INT NOT NULL DEFAULT 50,
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_trains_number (number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS routes (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		train_id BIGINT NOT NULL,
		source VARCHAR(255) NOT NULL,
		destination VARCHAR(255) NOT NULL,
		departure_time VARCHAR(20) NOT NULL,
		arrival_time VARCHAR(20) NOT NULL,
		duration VARCHAR(50) NOT NULL DEFAULT '',
		fare BIGINT NOT NULL,
		available_seats INT NOT NULL,
		days_of_operation VARCHAR(255) NOT NULL DEFAULT '',
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		KEY idx_routes_search (source, destination),
		KEY idx_routes_train (train_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS tickets (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		ticket_code VARCHAR(50) NOT NULL,
		user_id BIGINT NOT NULL,
		route_id BIGINT NOT NULL,
		passenger_name VARCHAR(255) NOT NULL,
		passenger_age INT NOT NULL,
		passenger_gender VARCHAR(10) NOT NULL,
		travel_date DATE NOT NULL,
		number_of_seats INT NOT NULL DEFAULT 1,
		total_fare BIGINT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'booked',
		booking_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_tickets_code (ticket_code),
		KEY idx_tickets_user (user_id),
		KEY idx_tickets_route (route_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS books (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		author VARCHAR(255) NOT NULL,
		genre VARCHAR(100) NOT NULL DEFAULT '',
		isbn VARCHAR(50) NOT NULL,
		published_year INT NOT NULL DEFAULT 0,
		total_copies INT NOT NULL,
		available_copies INT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_books_isbn (isbn)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS loans (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		loan_code VARCHAR(50) NOT NULL,
		user_id BIGINT NOT NULL,
		book_id BIGINT NOT NULL,
		borrow_date DATETIME NOT NULL,
		due_date DATETIME NOT NULL,
		return_date DATETIME NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'borrowed',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_loans_code (loan_code),
		KEY idx_loans_user (user_id),
		KEY idx_loans_book (book_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS payments (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		loan_id BIGINT NULL,
		amount BIGINT NOT NULL,
		payment_type VARCHAR(20) NOT NULL DEFAULT 'late_fee',
		payment_method VARCHAR(20) NOT NULL DEFAULT 'cash',
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		description VARCHAR(255) NOT NULL DEFAULT '',
		transaction_id VARCHAR(64) NOT NULL,
		due_date DATETIME NULL,
		paid_date DATETIME NULL,
		gateway_session_id VARCHAR(128) NOT NULL DEFAULT '',
		gateway_payment_ref VARCHAR(128) NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_payments_txn (transaction_id),
		KEY idx_payments_user (user_id),
		KEY idx_payments_status (status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS feedback (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		subject VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		KEY idx_feedback_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}

// Columns added after the first release. CREATE TABLE IF NOT EXISTS never
// alters an existing table, so databases created before the hosted-checkout
// integration pick these up here.
var paymentUpgrades = []struct {
	column string
	ddl    string
}{
	{"gateway_session_id", `ALTER TABLE payments ADD COLUMN gateway_session_id VARCHAR(128) NOT NULL DEFAULT ''`},
	{"gateway_payment_ref", `ALTER TABLE payments ADD COLUMN gateway_payment_ref VARCHAR(128) NOT NULL DEFAULT ''`},
}

// EnsureSchema creates any missing table and applies additive column
// upgrades. Safe to run on every startup.
func EnsureSchema(database *sql.DB) error {
	if database == nil {
		return fmt.Errorf("db not available")
	}
	for _, ddl := range schemaDDL {
		if _, err := database.Exec(ddl); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	if err := upgradePayments(database); err != nil {
		return err
	}
	log.Println("database schema verified")
	return nil
}

func upgradePayments(database *sql.DB) error {
	if !HasTable(database, "payments") {
		return nil
	}
	for _, up := range paymentUpgrades {
		if HasColumn(database, "payments", up.column) {
			continue
		}
		if _, err := database.Exec(up.ddl); err != nil {
			return fmt.Errorf("upgrade payments.%s: %w", up.column, err)
		}
		log.Printf("added column payments.%s", up.column)
	}
	return nil
}

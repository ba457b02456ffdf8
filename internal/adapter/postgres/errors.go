package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/hangyeol/internal/domain"
)

// SQLSTATE codes the lexicon tables can raise.
const (
	codeUniqueViolation  = "23505"
	codeNotNullViolation = "23502"
	codeCheckViolation   = "23514"
	codeStringTooLong    = "22001"
	codeUndefinedTable   = "42P01"
)

// mapError prefixes err with the table name and attaches the matching domain
// sentinel. The original error stays in the chain, so context errors and
// *pgconn.PgError remain visible to errors.Is / errors.As.
func mapError(err error, table string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", table, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", table, err)
	}

	switch pgErr.Code {
	case codeUndefinedTable:
		// An unmigrated database has no lexicon to serve.
		return fmt.Errorf("%s: run lexicon-import first: %w: %w", table, domain.ErrNotReady, err)
	case codeUniqueViolation:
		return fmt.Errorf("%s: duplicate row: %w: %w", table, domain.ErrAlreadyExists, err)
	case codeNotNullViolation, codeCheckViolation, codeStringTooLong:
		return fmt.Errorf("%s: bad row: %w: %w", table, domain.ErrValidation, err)
	}
	return fmt.Errorf("%s: %w", table, err)
}

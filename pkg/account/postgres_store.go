package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/authgate/pkg/pg"
)

const (
	selectAccountColumns = `SELECT id, username, email, created_at, roles, verification_token FROM accounts`

	queryAccountByID       = selectAccountColumns + ` WHERE id = $1`
	queryAccountByUsername = selectAccountColumns + ` WHERE username = $1`
	queryAccountByEmail    = selectAccountColumns + ` WHERE email = $1`

	queryUsernameExists = `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`
	queryEmailExists    = `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`

	queryInsertAccount = `INSERT INTO accounts (id, username, email, created_at, roles, verification_token)
		VALUES ($1, $2, $3, $4, $5, $6)`
	queryInsertMethod = `INSERT INTO account_authentication_methods (account_id, tag, value) VALUES ($1, $2, $3)`
	queryUpsertMethod = `INSERT INTO account_authentication_methods (account_id, tag, value) VALUES ($1, $2, $3)
		ON CONFLICT (account_id, tag) DO UPDATE SET value = EXCLUDED.value`
	queryDeleteMethod = `DELETE FROM account_authentication_methods WHERE account_id = $1 AND tag = $2`

	queryMethods       = `SELECT tag, value FROM account_authentication_methods WHERE account_id = $1 ORDER BY tag`
	queryMethodTags    = `SELECT tag FROM account_authentication_methods WHERE account_id = $1 ORDER BY tag`
	queryLockAccount   = `SELECT id FROM accounts WHERE id = $1 FOR UPDATE`
	queryAccountExists = `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`

	queryDeleteAccount = `DELETE FROM accounts WHERE id = $1`
	queryVerifyAccount = `UPDATE accounts SET verification_token = NULL WHERE id = $1`
)

// PostgresStore implements Store on PostgreSQL.
//
// pgx prepares and caches every statement on first use, so repeated calls
// run as prepared parameterized queries.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store on an open pool. The schema from
// Migrations must already be applied.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Register(ctx context.Context, acc *Account) error {
	if err := acc.Methods.validate(); err != nil {
		return err
	}

	return s.inTx(ctx, func(tx pgx.Tx) error {
		for _, check := range []struct{ query, value string }{
			{queryUsernameExists, acc.Username},
			{queryEmailExists, acc.Email},
		} {
			var exists bool
			if err := tx.QueryRow(ctx, check.query, check.value).Scan(&exists); err != nil {
				return errors.Join(ErrStorage, err)
			}
			if exists {
				return ErrDuplicateAccount
			}
		}

		if _, err := tx.Exec(ctx, queryInsertAccount,
			acc.ID, acc.Username, acc.Email, acc.CreatedAt, int64(acc.Roles), acc.VerificationToken,
		); err != nil {
			if pg.IsDuplicateKeyError(err) {
				return ErrDuplicateAccount
			}
			return errors.Join(ErrStorage, err)
		}

		for _, tag := range acc.Methods.Tags() {
			if _, err := tx.Exec(ctx, queryInsertMethod, acc.ID, int16(tag), acc.Methods[tag]); err != nil {
				return errors.Join(ErrStorage, err)
			}
		}

		return nil
	})
}

func (s *PostgresStore) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.getAccount(ctx, queryAccountByID, id)
}

func (s *PostgresStore) GetByUsername(ctx context.Context, username string) (*Account, error) {
	return s.getAccount(ctx, queryAccountByUsername, username)
}

func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (*Account, error) {
	return s.getAccount(ctx, queryAccountByEmail, email)
}

func (s *PostgresStore) getAccount(ctx context.Context, query string, arg any) (*Account, error) {
	var (
		acc   Account
		roles int64
	)
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&acc.ID, &acc.Username, &acc.Email, &acc.CreatedAt, &roles, &acc.VerificationToken,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrAccountNotFound
		}
		return nil, errors.Join(ErrStorage, err)
	}
	acc.Roles = uint64(roles)
	acc.CreatedAt = acc.CreatedAt.UTC()

	rows, err := s.pool.Query(ctx, queryMethods, acc.ID)
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	defer rows.Close()

	acc.Methods = make(Methods)
	for rows.Next() {
		var (
			tag   int16
			value string
		)
		if err := rows.Scan(&tag, &value); err != nil {
			return nil, errors.Join(ErrStorage, err)
		}
		acc.Methods[Tag(tag)] = value
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrStorage, err)
	}

	return &acc, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.execAffecting(ctx, queryDeleteAccount, id)
}

func (s *PostgresStore) Verify(ctx context.Context, id uuid.UUID) error {
	return s.execAffecting(ctx, queryVerifyAccount, id)
}

func (s *PostgresStore) AuthenticationMethods(ctx context.Context, id uuid.UUID) ([]Tag, error) {
	tags, err := s.methodTags(ctx, s.pool, id)
	if err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		return tags, nil
	}

	// Persisted accounts always hold a method, so no rows means no account.
	var exists bool
	if err := s.pool.QueryRow(ctx, queryAccountExists, id).Scan(&exists); err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	if !exists {
		return nil, ErrAccountNotFound
	}
	return tags, nil
}

func (s *PostgresStore) UpdateAuthenticationMethod(ctx context.Context, id uuid.UUID, tag Tag, value string) error {
	if !tag.Valid() {
		return ErrInvalidTag
	}

	return s.inTx(ctx, func(tx pgx.Tx) error {
		if err := lockAccount(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, queryUpsertMethod, id, int16(tag), value); err != nil {
			return errors.Join(ErrStorage, err)
		}
		return nil
	})
}

// RemoveAuthenticationMethod locks the account row so concurrent removals
// cannot both pass the last-method check.
func (s *PostgresStore) RemoveAuthenticationMethod(ctx context.Context, id uuid.UUID, tag Tag) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		if err := lockAccount(ctx, tx, id); err != nil {
			return err
		}

		tags, err := s.methodTags(ctx, tx, id)
		if err != nil {
			return err
		}
		if len(tags) <= 1 {
			return ErrLastMethod
		}

		ct, err := tx.Exec(ctx, queryDeleteMethod, id, int16(tag))
		if err != nil {
			return errors.Join(ErrStorage, err)
		}
		if ct.RowsAffected() == 0 {
			return ErrMethodNotFound
		}
		return nil
	})
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (s *PostgresStore) methodTags(ctx context.Context, q querier, id uuid.UUID) ([]Tag, error) {
	rows, err := q.Query(ctx, queryMethodTags, id)
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}

	raw, err := pgx.CollectRows(rows, pgx.RowTo[int16])
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}

	tags := make([]Tag, 0, len(raw))
	for _, t := range raw {
		tags = append(tags, Tag(t))
	}
	return tags, nil
}

func (s *PostgresStore) execAffecting(ctx context.Context, query string, id uuid.UUID) error {
	ct, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	if ct.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func lockAccount(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	var locked uuid.UUID
	if err := tx.QueryRow(ctx, queryLockAccount, id).Scan(&locked); err != nil {
		if pg.IsNotFoundError(err) {
			return ErrAccountNotFound
		}
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (s *PostgresStore) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	err := pgx.BeginFunc(ctx, s.pool, fn)
	if err == nil {
		return nil
	}

	// Keep domain errors unwrapped; anything else is a storage failure.
	for _, domain := range []error{ErrDuplicateAccount, ErrAccountNotFound, ErrLastMethod, ErrMethodNotFound, ErrStorage} {
		if errors.Is(err, domain) {
			return err
		}
	}
	if pg.IsDuplicateKeyError(err) {
		return ErrDuplicateAccount
	}
	return errors.Join(ErrStorage, err)
}

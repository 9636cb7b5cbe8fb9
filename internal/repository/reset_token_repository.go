package repository

import (
	"context"

	"document-management-server/config"
	"document-management-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type ResetTokenRepository struct {
	*config.Database
}

func NewResetTokenRepository(database *config.Database) *ResetTokenRepository {
	return &ResetTokenRepository{database}
}

// Create : only the hash of the secret is persisted. A user holds a single
// row, so a new token replaces the earlier one in the same statement.
func (r *ResetTokenRepository) Create(ctx context.Context, exec sqlx.ExtContext, token *model.PasswordResetToken) error {
	query := `
		INSERT INTO password_reset_tokens (user_id, token_hash, expires_at, used)
		VALUES ($1, $2, $3, FALSE)
		ON CONFLICT (user_id) DO UPDATE
		SET token_hash = EXCLUDED.token_hash,
		    expires_at = EXCLUDED.expires_at,
		    used = FALSE,
		    created_at = NOW()
		RETURNING id, created_at
	`
	err := exec.QueryRowxContext(ctx, query, token.UserID, token.TokenHash, token.ExpiresAt).
		Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return translate("[ResetTokenRepo] insert token", err)
	}
	return nil
}

func (r *ResetTokenRepository) FindByHash(ctx context.Context, exec sqlx.ExtContext, tokenHash string) (*model.PasswordResetToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, used, created_at
		FROM password_reset_tokens
		WHERE token_hash = $1
	`
	var token model.PasswordResetToken
	if err := sqlx.GetContext(ctx, exec, &token, query, tokenHash); err != nil {
		return nil, translate("[ResetTokenRepo] find token", err)
	}
	return &token, nil
}

// MarkUsed : conditional on the token still being unused; false means another
// request consumed it first
func (r *ResetTokenRepository) MarkUsed(ctx context.Context, exec sqlx.ExtContext, id int64) (bool, error) {
	res, err := exec.ExecContext(ctx, `UPDATE password_reset_tokens SET used = TRUE WHERE id = $1 AND used = FALSE`, id)
	if err != nil {
		return false, translate("[ResetTokenRepo] mark token used", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, translate("[ResetTokenRepo] mark token used", err)
	}
	return n > 0, nil
}

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mrevanzak/memovox/models"
)

// FindSenderMapping retrieves the saved mapping for a chat display name,
// scoped to the importing account
func (s *db) FindSenderMapping(ctx context.Context, accountID, externalName string) (*models.SenderMapping, error) {
	mapping := &models.SenderMapping{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, account_id, external_name, target_user_id, updated_at
		FROM sender_mappings WHERE account_id = ? AND external_name = ?`,
		accountID, externalName,
	).Scan(&mapping.ID, &mapping.AccountID, &mapping.ExternalName, &mapping.TargetUserID, &mapping.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapping, nil
}

// UpsertSenderMapping saves a mapping, replacing the target user if one
// already exists for the same (account, name) pair
func (s *db) UpsertSenderMapping(ctx context.Context, mapping models.SenderMapping) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sender_mappings (id, account_id, external_name, target_user_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(account_id, external_name) DO UPDATE SET
			target_user_id = excluded.target_user_id,
			updated_at = CURRENT_TIMESTAMP`,
		mapping.ID, mapping.AccountID, mapping.ExternalName, mapping.TargetUserID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert sender mapping: %v", err)
	}
	return nil
}

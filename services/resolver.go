package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/mrevanzak/memovox/db"
	"github.com/mrevanzak/memovox/models"
)

// shadowDomain is the placeholder domain for accounts auto-created from chat
// sender names. If a real account later signs up with the matching email, it
// takes over the shadow user's identity.
const shadowDomain = "import.placeholder"

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]`)
var whitespace = regexp.MustCompile(`\s+`)

// senderResolver maps chat display names to user IDs for the duration of one
// import. The cache and the saved-mapping set are scoped to a single call;
// they are never shared across imports.
type senderResolver struct {
	db        db.DB
	accountID string
	explicit  map[string]string
	save      bool
	cache     map[string]string
	saved     map[string]bool
}

func newSenderResolver(database db.DB, accountID string, opts models.ImportOptions) *senderResolver {
	return &senderResolver{
		db:        database,
		accountID: accountID,
		explicit:  opts.SenderMappings,
		save:      opts.SaveMappings,
		cache:     make(map[string]string),
		saved:     make(map[string]bool),
	}
}

// Resolve returns the user id for a chat display name, trying in order: the
// caller's explicit mapping, a previously saved mapping, an exact display
// name match, and finally a just-in-time shadow user.
func (r *senderResolver) Resolve(ctx context.Context, externalName string) (string, error) {
	if id, ok := r.cache[externalName]; ok {
		return id, nil
	}

	userID, viaExplicit, err := r.lookup(ctx, externalName)
	if err != nil {
		return "", err
	}

	// Persist the caller's choice at most once per name per import.
	if r.save && viaExplicit && !r.saved[externalName] {
		mapping := models.SenderMapping{
			ID:           uuid.NewString(),
			AccountID:    r.accountID,
			ExternalName: externalName,
			TargetUserID: userID,
		}
		if err := r.db.UpsertSenderMapping(ctx, mapping); err != nil {
			return "", fmt.Errorf("failed to save sender mapping: %v", err)
		}
		r.saved[externalName] = true
	}

	r.cache[externalName] = userID

	return userID, nil
}

func (r *senderResolver) lookup(ctx context.Context, externalName string) (string, bool, error) {
	if id, ok := r.explicit[externalName]; ok {
		return id, true, nil
	}

	mapping, err := r.db.FindSenderMapping(ctx, r.accountID, externalName)
	if err != nil {
		return "", false, fmt.Errorf("failed to look up sender mapping: %v", err)
	}
	if mapping != nil {
		return mapping.TargetUserID, false, nil
	}

	user, err := r.db.FindUserByDisplayName(ctx, externalName)
	if err != nil {
		return "", false, fmt.Errorf("failed to look up user by name: %v", err)
	}
	if user != nil {
		return user.ID, false, nil
	}

	id, err := r.createShadowUser(ctx, externalName)
	if err != nil {
		return "", false, err
	}

	return id, false, nil
}

// createShadowUser makes a placeholder account for a sender name never seen
// before. The synthetic email keeps the account mergeable if the person
// signs up for real later.
func (r *senderResolver) createShadowUser(ctx context.Context, externalName string) (string, error) {
	email := ShadowEmail(externalName)

	// A previous import may have created this shadow user under a slightly
	// different display name that slugs to the same email.
	existing, err := r.db.FindUserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to look up user by email: %v", err)
	}
	if existing != nil {
		return existing.ID, nil
	}

	user := models.User{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: externalName,
		IsShadow:    true,
	}
	if err := r.db.InsertUser(ctx, user); err != nil {
		return "", fmt.Errorf("failed to create shadow user: %v", err)
	}

	return user.ID, nil
}

// ShadowEmail derives the synthetic email for a chat sender name: lowercased,
// whitespace replaced by hyphens, everything else non-alphanumeric stripped.
func ShadowEmail(externalName string) string {
	slug := strings.ToLower(externalName)
	slug = whitespace.ReplaceAllString(slug, "-")
	slug = nonAlphanumeric.ReplaceAllString(slug, "")

	return slug + "@" + shadowDomain
}

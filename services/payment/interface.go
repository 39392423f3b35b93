package payment

import (
	"context"

	"mediq/models"
)

// Bridge is the hosted-checkout collaborator. The booking flow consumes
// RetrieveSession as a precondition check only; session creation is a
// separate patient-facing endpoint.
type Bridge interface {
	// CreateSession opens a hosted checkout session for the given amount in
	// the smallest currency unit and returns its id plus the redirect URL.
	CreateSession(ctx context.Context, amount int64, currency, description string, metadata map[string]string) (*models.CheckoutSession, error)
	// RetrieveSession resolves a session id to its paid status.
	RetrieveSession(ctx context.Context, sessionID string) (*models.SessionStatus, error)
}

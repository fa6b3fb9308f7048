// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/nabinkhair42/pocket-due/internal/models"
)

// ErrNotFound indicates a record does not exist or is not visible to the caller.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// Store captures the persistence operations needed by the services.
// Every payment query is scoped by {id, userID} inside the implementation,
// so cross-user access is impossible by construction.
type Store interface {
	// CreateUser inserts a new user. ID and timestamps are assigned by the
	// store when unset. Returns ErrAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// UpdateUser persists name/email edits. Returns ErrAlreadyExists when the
	// new email is taken and ErrNotFound when the user vanished.
	UpdateUser(ctx context.Context, user *models.User) error
	UpdateUserPassword(ctx context.Context, userID, passwordHash string) error
	// DeleteUser removes the user and, via foreign key cascade, every payment
	// they own.
	DeleteUser(ctx context.Context, userID string) error

	// CreatePayment inserts a new payment. ID and timestamps are assigned by
	// the store when unset.
	CreatePayment(ctx context.Context, payment *models.Payment) error
	// ListPayments returns the user's payments newest-created-first,
	// optionally filtered by type (empty means all).
	ListPayments(ctx context.Context, userID string, typ models.PaymentType) ([]models.Payment, error)
	GetPayment(ctx context.Context, userID, paymentID string) (*models.Payment, error)
	UpdatePayment(ctx context.Context, payment *models.Payment) error
	DeletePayment(ctx context.Context, userID, paymentID string) error

	Close() error
}

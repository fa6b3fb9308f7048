package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/nabinkhair42/pocket-due/internal/models"
	"github.com/nabinkhair42/pocket-due/internal/models/dto"
	"github.com/nabinkhair42/pocket-due/internal/storage"
	"github.com/nabinkhair42/pocket-due/internal/validate"
)

// PaymentService implements payment CRUD, the status toggle, and the derived
// aggregations. Every operation is scoped to the authenticated user; a
// payment that exists but belongs to someone else is indistinguishable from
// one that does not exist.
//
// Toggle policy: a payment toggled into its settled status is persisted, not
// deleted. History stays queryable; the explicit delete endpoint archives.
type PaymentService struct {
	store storage.Store
}

// NewPaymentService constructs the service.
func NewPaymentService(store storage.Store) *PaymentService {
	return &PaymentService{store: store}
}

// Create persists a new payment with the default status for its type.
func (s *PaymentService) Create(ctx context.Context, userID string, req dto.CreatePaymentRequest) (*models.Payment, error) {
	dueDate, err := validate.ParseDate(req.DueDate)
	if err != nil {
		return nil, BadRequest("dueDate must be a valid date")
	}

	typ := models.PaymentType(req.Type)
	payment := &models.Payment{
		UserID:      userID,
		Type:        typ,
		PersonName:  strings.TrimSpace(req.PersonName),
		Amount:      req.Amount,
		DueDate:     dueDate,
		Description: strings.TrimSpace(req.Description),
		Status:      models.DefaultStatus(typ),
	}

	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("Failed to create payment", "error", err, "user_id", userID)
		return nil, Internal("failed to create payment")
	}

	slog.Info("Payment created", "payment_id", payment.ID, "user_id", userID)
	return payment, nil
}

// List returns the user's payments newest-created-first, optionally filtered
// by type.
func (s *PaymentService) List(ctx context.Context, userID string, typ models.PaymentType) ([]models.Payment, error) {
	payments, err := s.store.ListPayments(ctx, userID, typ)
	if err != nil {
		slog.Error("Failed to list payments", "error", err, "user_id", userID)
		return nil, Internal("failed to list payments")
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return payments, nil
}

// Update merges the provided fields into an existing payment. When a type
// change leaves the current status outside the new type's family, the status
// resets to the new type's default; a wrong-family status is a data-integrity
// bug, not state worth keeping.
func (s *PaymentService) Update(ctx context.Context, userID, paymentID string, req dto.UpdatePaymentRequest) (*models.Payment, error) {
	payment, err := s.get(ctx, userID, paymentID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		payment.Type = models.PaymentType(*req.Type)
	}
	if req.PersonName != nil {
		payment.PersonName = strings.TrimSpace(*req.PersonName)
	}
	if req.Amount != nil {
		payment.Amount = *req.Amount
	}
	if req.DueDate != nil {
		dueDate, err := validate.ParseDate(*req.DueDate)
		if err != nil {
			return nil, BadRequest("dueDate must be a valid date")
		}
		payment.DueDate = dueDate
	}
	if req.Description != nil {
		payment.Description = strings.TrimSpace(*req.Description)
	}
	if !models.ValidStatusFor(payment.Type, payment.Status) {
		payment.Status = models.DefaultStatus(payment.Type)
	}

	if err := s.store.UpdatePayment(ctx, payment); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, NotFound("Payment not found")
		}
		slog.Error("Failed to update payment", "error", err, "payment_id", paymentID, "user_id", userID)
		return nil, Internal("failed to update payment")
	}

	slog.Info("Payment updated", "payment_id", paymentID, "user_id", userID)
	return payment, nil
}

// ToggleStatus flips the payment between the two statuses of its type and
// persists the result.
func (s *PaymentService) ToggleStatus(ctx context.Context, userID, paymentID string) (*dto.ToggleResponse, error) {
	payment, err := s.get(ctx, userID, paymentID)
	if err != nil {
		return nil, err
	}

	payment.Toggle()

	if err := s.store.UpdatePayment(ctx, payment); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, NotFound("Payment not found")
		}
		slog.Error("Failed to toggle payment", "error", err, "payment_id", paymentID, "user_id", userID)
		return nil, Internal("failed to toggle payment status")
	}

	slog.Info("Payment status toggled", "payment_id", paymentID, "user_id", userID, "new_status", payment.Status)
	return &dto.ToggleResponse{Payment: payment, Deleted: false}, nil
}

// Delete removes a payment and returns the deleted record.
func (s *PaymentService) Delete(ctx context.Context, userID, paymentID string) (*models.Payment, error) {
	payment, err := s.get(ctx, userID, paymentID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeletePayment(ctx, userID, paymentID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, NotFound("Payment not found")
		}
		slog.Error("Failed to delete payment", "error", err, "payment_id", paymentID, "user_id", userID)
		return nil, Internal("failed to delete payment")
	}

	slog.Info("Payment deleted", "payment_id", paymentID, "user_id", userID)
	return payment, nil
}

// Stats aggregates counts over all of the user's payments. Overdue compares
// the due date against the current instant, matching client display.
func (s *PaymentService) Stats(ctx context.Context, userID string) (*models.PaymentStats, error) {
	payments, err := s.List(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stats := &models.PaymentStats{TotalPayments: len(payments)}
	for i := range payments {
		p := &payments[i]
		stats.TotalAmount += p.Amount
		if p.Resolved() {
			stats.PaidPayments++
		} else {
			stats.UnpaidPayments++
		}
		if p.Overdue(now) {
			stats.OverduePayments++
		}
	}
	return stats, nil
}

// PreviousPersonNames returns the distinct, sorted person names the user has
// recorded payments against, for input-assist autocomplete.
func (s *PaymentService) PreviousPersonNames(ctx context.Context, userID string) ([]string, error) {
	payments, err := s.List(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(payments))
	names := []string{}
	for i := range payments {
		name := payments[i].PersonName
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Summaries groups all payments by exact personName and computes the net
// balance per group, sorted by descending absolute imbalance. The result is
// recomputed on every call and never cached.
func (s *PaymentService) Summaries(ctx context.Context, userID string) ([]models.PaymentSummary, error) {
	payments, err := s.List(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*models.PaymentSummary)
	var order []string
	for i := range payments {
		p := &payments[i]
		summary, ok := groups[p.PersonName]
		if !ok {
			summary = &models.PaymentSummary{PersonName: p.PersonName}
			groups[p.PersonName] = summary
			order = append(order, p.PersonName)
		}

		if p.Type == models.TypeToReceive {
			summary.ToReceive += p.Amount
		} else {
			summary.ToPay += p.Amount
		}
		summary.Payments = append(summary.Payments, models.SummaryPayment{
			ID:          p.ID,
			Type:        p.Type,
			Amount:      p.Amount,
			Description: p.Description,
			DueDate:     p.DueDate,
			Status:      p.Status,
			CreatedAt:   p.CreatedAt,
		})
	}

	summaries := make([]models.PaymentSummary, 0, len(order))
	for _, name := range order {
		summary := groups[name]
		summary.NetTotal = summary.ToReceive - summary.ToPay
		summaries = append(summaries, *summary)
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return math.Abs(summaries[i].NetTotal) > math.Abs(summaries[j].NetTotal)
	})
	return summaries, nil
}

func (s *PaymentService) get(ctx context.Context, userID, paymentID string) (*models.Payment, error) {
	payment, err := s.store.GetPayment(ctx, userID, paymentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, NotFound("Payment not found")
		}
		slog.Error("Failed to get payment", "error", err, "payment_id", paymentID, "user_id", userID)
		return nil, Internal("failed to get payment")
	}
	return payment, nil
}

package service

import (
	"context"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nabinkhair42/pocket-due/internal/models"
	"github.com/nabinkhair42/pocket-due/internal/models/dto"
	"github.com/nabinkhair42/pocket-due/internal/storage"
	"github.com/nabinkhair42/pocket-due/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "pocketdue-svc-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedUser(t *testing.T, store storage.Store, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Test User", Email: email, PasswordHash: "hash"}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func createPayment(t *testing.T, svc *PaymentService, userID string, req dto.CreatePaymentRequest) *models.Payment {
	t.Helper()
	payment, err := svc.Create(context.Background(), userID, req)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return payment
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	svcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *service.Error, got %T: %v", err, err)
	}
	return svcErr.Status
}

func TestCreateAssignsDefaultStatus(t *testing.T) {
	store := newTestStore(t)
	svc := NewPaymentService(store)
	user := seedUser(t, store, "alice@example.com")

	t.Run("to_pay defaults to unpaid", func(t *testing.T) {
		p := createPayment(t, svc, user.ID, dto.CreatePaymentRequest{
			Type: "to_pay", PersonName: "Bob", Amount: 50, DueDate: "2025-01-01",
		})
		if p.Status != models.StatusUnpaid {
			t.Errorf("status = %s, want unpaid", p.Status)
		}
	})

	t.Run("to_receive defaults to pending", func(t *testing.T) {
		p := createPayment(t, svc, user.ID, dto.CreatePaymentRequest{
			Type: "to_receive", PersonName: "Bob", Amount: 50, DueDate: "2025-01-01",
		})
		if p.Status != models.StatusPending {
			t.Errorf("status = %s, want pending", p.Status)
		}
	})
}

func TestToggleStatusPersists(t *testing.T) {
	store := newTestStore(t)
	svc := NewPaymentService(store)
	user := seedUser(t, store, "alice@example.com")
	ctx := context.Background()

	p := createPayment(t, svc, user.ID, dto.CreatePaymentRequest{
		Type: "to_pay", PersonName: "Bob", Amount: 100, DueDate: "2025-01-01",
	})

	result, err := svc.ToggleStatus(ctx, user.ID, p.ID)
	if err != nil {
		t.Fatalf("ToggleStatus failed: %v", err)
	}
	if result.Deleted {
		t.Error("persist policy must never report deleted")
	}
	if result.Payment.Status != models.StatusPaid {
		t.Errorf("status = %s, want paid", result.Payment.Status)
	}

	// The settled record stays listed.
	payments, err := svc.List(ctx, user.ID, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("settled payment vanished from list")
	}

	// Toggling twice returns to the original status.
	result, err = svc.ToggleStatus(ctx, user.ID, p.ID)
	if err != nil {
		t.Fatalf("second ToggleStatus failed: %v", err)
	}
	if result.Payment.Status != models.StatusUnpaid {
		t.Errorf("double toggle ended at %s, want unpaid", result.Payment.Status)
	}
}

func TestUpdateMergesPartialFields(t *testing.T) {
	store := newTestStore(t)
	svc := NewPaymentService(store)
	user := seedUser(t, store, "alice@example.com")
	ctx := context.Background()

	p := createPayment(t, svc, user.ID, dto.CreatePaymentRequest{
		Type: "to_pay", PersonName: "Bob", Amount: 100, DueDate: "2025-01-01",
	})

	amount := 250.0
	updated, err := svc.Update(ctx, user.ID, p.ID, dto.UpdatePaymentRequest{Amount: &amount})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Amount != 250 {
		t.Errorf("amount = %v, want 250", updated.Amount)
	}
	if updated.PersonName != "Bob" || updated.Type != models.TypeToPay {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateTypeChangeResetsInvalidStatus(t *testing.T) {
	store := newTestStore(t)
	svc := NewPaymentService(store)
	user := seedUser(t, store, "alice@example.com")
	ctx := context.Background()

	p := createPayment(t, svc, user.ID, dto.CreatePaymentRequest{
		Type: "to_pay", PersonName: "Bob", Amount: 100, DueDate: "2025-01-01",
	})

	typ := "to_receive"
	updated, err := svc.Update(ctx, user.ID, p.ID, dto.UpdatePaymentRequest{Type: &typ})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Status != models.StatusPending {
		t.Errorf("status after type change = %s, want pending", updated.Status)
	}
}

func TestCrossUserIsolation(t *testing.T) {
	store := newTestStore(t)
	svc := NewPaymentService(store)
	alice := seedUser(t, store, "alice@example.com")
	mallory := seedUser(t, store, "mallory@example.com")
	ctx := context.Background()

	p := createPayment(t, svc, alice.ID, dto.CreatePaymentRequest{
		Type: "to_pay", PersonName: "Bob", Amount: 100, DueDate: "2025-01-01",
	})

	if _, err := svc.Update(ctx, mallory.ID, p.ID, dto.UpdatePaymentRequest{}); statusOf(t, err) != http.StatusNotFound {
		t.Error("update by another user must be NotFound")
	}
	if _, err := svc.ToggleStatus(ctx, mallory.ID, p.ID); statusOf(t, err) != http.StatusNotFound {
		t.Error("toggle by another user must be NotFound")
	}
	if _, err := svc.Delete(ctx, mallory.ID, p.ID); statusOf(t, err) != http.StatusNotFound {
		t.Error("delete by another user must be NotFound")
	}

	// Alice's payment is untouched.
	payments, err := svc.List(ctx, alice.ID, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(payments) != 1 || payments[0].Status != models.StatusUnpaid {
		t.Errorf("payment mutated across users: %+v", payments)
	}
}

func TestStats(t *testing.T) {
	store := newTestStore(t)
	svc := NewPaymentService(store)
	user := seedUser(t, store, "alice@example.com")
	ctx := context.Background()

	yesterday := time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)
	tomorrow := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)

	createPayment(t, svc, user.ID, dto.CreatePaymentRequest{
		Type: "to_pay", PersonName: "Bob", Amount: 100, DueDate: yesterday,
	})
	createPayment(t, svc, user.ID, dto.CreatePaymentRequest{
		Type: "to_receive", PersonName: "Carol", Amount: 40, DueDate: tomorrow,
	})
	settled := createPayment(t, svc, user.ID, dto.CreatePaymentRequest{
		Type: "to_pay", PersonName: "Dave", Amount: 10, DueDate: yesterday,
	})
	if _, err := svc.ToggleStatus(ctx, user.ID, settled.ID); err != nil {
		t.Fatalf("ToggleStatus failed: %v", err)
	}

	stats, err := svc.Stats(ctx, user.ID)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalPayments != 3 {
		t.Errorf("totalPayments = %d, want 3", stats.TotalPayments)
	}
	if stats.TotalAmount != 150 {
		t.Errorf("totalAmount = %v, want 150", stats.TotalAmount)
	}
	if stats.PaidPayments != 1 {
		t.Errorf("paidPayments = %d, want 1", stats.PaidPayments)
	}
	if stats.UnpaidPayments != 2 {
		t.Errorf("unpaidPayments = %d, want 2", stats.UnpaidPayments)
	}
	// Only the unresolved past-due payment counts; the settled one does not.
	if stats.OverduePayments != 1 {
		t.Errorf("overduePayments = %d, want 1", stats.OverduePayments)
	}
}

func TestPreviousPersonNames(t *testing.T) {
	store := newTestStore(t)
	svc := NewPaymentService(store)
	user := seedUser(t, store, "alice@example.com")
	ctx := context.Background()

	for _, name := range []string{"Zed", "Alice", "Zed", "bob"} {
		createPayment(t, svc, user.ID, dto.CreatePaymentRequest{
			Type: "to_pay", PersonName: name, Amount: 1, DueDate: "2025-01-01",
		})
	}

	names, err := svc.PreviousPersonNames(ctx, user.ID)
	if err != nil {
		t.Fatalf("PreviousPersonNames failed: %v", err)
	}
	want := []string{"Alice", "Zed", "bob"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}

func TestSummaries(t *testing.T) {
	store := newTestStore(t)
	svc := NewPaymentService(store)
	user := seedUser(t, store, "alice@example.com")
	ctx := context.Background()

	// Alice: 100 to pay, 40 to receive => net -60.
	createPayment(t, svc, user.ID, dto.CreatePaymentRequest{
		Type: "to_pay", PersonName: "Alice", Amount: 100, DueDate: "2025-01-01",
	})
	createPayment(t, svc, user.ID, dto.CreatePaymentRequest{
		Type: "to_receive", PersonName: "Alice", Amount: 40, DueDate: "2025-01-01",
	})
	// Bob: 20 to receive => net +20.
	createPayment(t, svc, user.ID, dto.CreatePaymentRequest{
		Type: "to_receive", PersonName: "Bob", Amount: 20, DueDate: "2025-01-01",
	})
	// Case-sensitive grouping: "alice" is a separate group.
	createPayment(t, svc, user.ID, dto.CreatePaymentRequest{
		Type: "to_pay", PersonName: "alice", Amount: 5, DueDate: "2025-01-01",
	})

	summaries, err := svc.Summaries(ctx, user.ID)
	if err != nil {
		t.Fatalf("Summaries failed: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(summaries))
	}

	t.Run("arithmetic per group", func(t *testing.T) {
		for _, s := range summaries {
			if s.NetTotal != s.ToReceive-s.ToPay {
				t.Errorf("%s: netTotal %v != toReceive %v - toPay %v",
					s.PersonName, s.NetTotal, s.ToReceive, s.ToPay)
			}
		}
	})

	t.Run("Alice group totals", func(t *testing.T) {
		var alice *models.PaymentSummary
		for i := range summaries {
			if summaries[i].PersonName == "Alice" {
				alice = &summaries[i]
			}
		}
		if alice == nil {
			t.Fatal("no Alice group")
		}
		if alice.ToPay != 100 || alice.ToReceive != 40 || alice.NetTotal != -60 {
			t.Errorf("Alice group = %+v", alice)
		}
		if len(alice.Payments) != 2 {
			t.Errorf("Alice group has %d payments, want 2", len(alice.Payments))
		}
	})

	t.Run("sorted by descending absolute net total", func(t *testing.T) {
		for i := 1; i < len(summaries); i++ {
			if math.Abs(summaries[i-1].NetTotal) < math.Abs(summaries[i].NetTotal) {
				t.Errorf("groups out of order: |%v| before |%v|",
					summaries[i-1].NetTotal, summaries[i].NetTotal)
			}
		}
		if summaries[0].PersonName != "Alice" {
			t.Errorf("largest imbalance first, got %s", summaries[0].PersonName)
		}
	})
}

func TestDeleteReturnsPayment(t *testing.T) {
	store := newTestStore(t)
	svc := NewPaymentService(store)
	user := seedUser(t, store, "alice@example.com")
	ctx := context.Background()

	p := createPayment(t, svc, user.ID, dto.CreatePaymentRequest{
		Type: "to_pay", PersonName: "Bob", Amount: 100, DueDate: "2025-01-01",
	})

	deleted, err := svc.Delete(ctx, user.ID, p.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted.ID != p.ID {
		t.Errorf("deleted wrong payment: %s", deleted.ID)
	}

	if _, err := svc.Delete(ctx, user.ID, p.ID); statusOf(t, err) != http.StatusNotFound {
		t.Error("second delete must be NotFound")
	}
}

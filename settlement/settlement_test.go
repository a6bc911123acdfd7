package settlement

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Naveen-512/StoreLoop/models"
	"github.com/Naveen-512/StoreLoop/pricing"
)

func setup(t *testing.T) (*MemoryStore, *Engine) {
	t.Helper()
	store := NewMemoryStore()
	engine := NewEngine(store)
	return store, engine
}

func proof(id string, amountPaise int64) PaymentProof {
	return PaymentProof{
		PaymentID:     id,
		RemoteOrderID: "rzp_" + id,
		Method:        "RAZORPAY",
		AmountPaise:   amountPaise,
	}
}

func TestSettleHappyPath(t *testing.T) {
	ctx := context.Background()
	store, engine := setup(t)

	p := store.AddProduct(models.Product{Name: "Mug", Price: 249.50, Stock: 5, IsActive: true, ImageURL: "mug.png"})
	store.AddCartLine(1, p.ID, 2)

	res, err := engine.Settle(ctx, 1, 10, proof("pay_1", pricing.Paise(499)))
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if res.Replayed {
		t.Fatalf("fresh settlement marked replayed")
	}
	if res.Order.Number != 1 {
		t.Fatalf("expected order number 1, got %d", res.Order.Number)
	}
	if res.Order.Subtotal != 499 || res.Order.Total != 499 {
		t.Fatalf("unexpected totals: subtotal=%v total=%v", res.Order.Subtotal, res.Order.Total)
	}
	if res.Order.Status != models.OrderStatusProcessing {
		t.Fatalf("expected Processing status, got %s", res.Order.Status)
	}
	if len(res.Order.OrderItems) != 1 || res.Order.OrderItems[0].Name != "Mug" || res.Order.OrderItems[0].Price != 249.50 {
		t.Fatalf("item snapshot not captured: %+v", res.Order.OrderItems)
	}
	if res.RewardCode != nil {
		t.Fatalf("order 1 should not mint a reward with interval 5")
	}
	if got := store.Product(p.ID).Stock; got != 3 {
		t.Fatalf("stock not decremented, got %d", got)
	}
	if store.CartCount(1) != 0 {
		t.Fatalf("cart not cleared")
	}
}

func TestSettleSkipsInactiveProducts(t *testing.T) {
	ctx := context.Background()
	store, engine := setup(t)

	p := store.AddProduct(models.Product{Name: "Gone", Price: 100, Stock: 5, IsActive: false})
	store.AddCartLine(1, p.ID, 1)

	_, err := engine.Settle(ctx, 1, 10, proof("pay_1", 10000))
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestSettleAmountMismatch(t *testing.T) {
	ctx := context.Background()
	store, engine := setup(t)

	p := store.AddProduct(models.Product{Name: "Pen", Price: 100, Stock: 5, IsActive: true})
	store.AddCartLine(1, p.ID, 1)

	_, err := engine.Settle(ctx, 1, 10, proof("pay_1", 9999))
	if !errors.Is(err, ErrAmountMismatch) {
		t.Fatalf("expected ErrAmountMismatch, got %v", err)
	}
	if got := store.Product(p.ID).Stock; got != 5 {
		t.Fatalf("stock changed on rejected settlement: %d", got)
	}
	if len(store.Orders()) != 0 {
		t.Fatalf("order persisted on rejected settlement")
	}
}

func TestSettleWithDiscountCode(t *testing.T) {
	ctx := context.Background()
	store, engine := setup(t)

	p := store.AddProduct(models.Product{Name: "Book", Price: 333, Stock: 3, IsActive: true})
	store.AddCartLine(1, p.ID, 1)
	code := store.AddCode(models.DiscountCode{Code: "SAVE-AAAA-1111", Percent: 10, Active: true})
	store.HoldCode(1, code.ID)

	// 333 - 33.30 = 299.70
	res, err := engine.Settle(ctx, 1, 10, proof("pay_1", 29970))
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if res.Order.DiscountAmount != 33.3 || res.Order.Total != 299.7 {
		t.Fatalf("unexpected discount math: amount=%v total=%v", res.Order.DiscountAmount, res.Order.Total)
	}
	if res.Order.DiscountCode != "SAVE-AAAA-1111" || res.Order.DiscountPercent != 10 {
		t.Fatalf("discount not recorded on order: %+v", res.Order)
	}

	redeemed := store.Code(code.ID)
	if !redeemed.Used || redeemed.UsedByID == nil || *redeemed.UsedByID != 1 {
		t.Fatalf("code not redeemed: %+v", redeemed)
	}
	if redeemed.UsedOrderNumber != res.Order.Number {
		t.Fatalf("code not tied to redeeming order")
	}
}

func TestSettleExpiredCodeRejected(t *testing.T) {
	ctx := context.Background()
	store, engine := setup(t)

	p := store.AddProduct(models.Product{Name: "Book", Price: 100, Stock: 3, IsActive: true})
	store.AddCartLine(1, p.ID, 1)
	past := time.Now().Add(-time.Hour)
	code := store.AddCode(models.DiscountCode{Code: "SAVE-OLDD-0000", Percent: 10, Active: true, ExpiresAt: &past})
	store.HoldCode(1, code.ID)

	_, err := engine.Settle(ctx, 1, 10, proof("pay_1", 9000))
	if !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expected ErrCodeExpired, got %v", err)
	}
	if len(store.Orders()) != 0 {
		t.Fatalf("order persisted despite expired code")
	}
}

func TestRewardMintedEveryNthOrder(t *testing.T) {
	ctx := context.Background()
	store, engine := setup(t)
	store.SetSettings(models.StoreSettings{RewardInterval: 3, RewardPercent: 15, CodeExpiryDays: 30})

	p := store.AddProduct(models.Product{Name: "Cap", Price: 50, Stock: 100, IsActive: true})

	for i := 1; i <= 6; i++ {
		userID := uint(i)
		store.AddCartLine(userID, p.ID, 1)
		res, err := engine.Settle(ctx, userID, 10, proof(fmt.Sprintf("pay_%d", i), 5000))
		if err != nil {
			t.Fatalf("settle %d: %v", i, err)
		}
		if res.Order.Number != int64(i) {
			t.Fatalf("expected order number %d, got %d", i, res.Order.Number)
		}
		minted := res.RewardCode != nil
		if wantMint := i%3 == 0; minted != wantMint {
			t.Fatalf("order %d: minted=%v, want %v", i, minted, wantMint)
		}
		if minted {
			if res.RewardCode.Percent != 15 {
				t.Fatalf("reward percent %d, want 15", res.RewardCode.Percent)
			}
			if res.RewardCode.SourceOrderNumber != int64(i) {
				t.Fatalf("reward not tagged with generating order")
			}
			if res.RewardCode.ExpiresAt == nil {
				t.Fatalf("reward expiry not set despite configured expiry days")
			}
		}
	}
	if got := len(store.Codes()); got != 2 {
		t.Fatalf("expected 2 minted codes, got %d", got)
	}
}

func TestDuplicatePaymentProofSettlesOnce(t *testing.T) {
	ctx := context.Background()
	store, engine := setup(t)
	store.SetSettings(models.StoreSettings{RewardInterval: 1, RewardPercent: 10})

	p := store.AddProduct(models.Product{Name: "Mug", Price: 100, Stock: 5, IsActive: true})
	store.AddCartLine(1, p.ID, 1)

	first, err := engine.Settle(ctx, 1, 10, proof("pay_dup", 10000))
	if err != nil {
		t.Fatalf("first settle: %v", err)
	}
	second, err := engine.Settle(ctx, 1, 10, proof("pay_dup", 10000))
	if err != nil {
		t.Fatalf("replay settle: %v", err)
	}
	if !second.Replayed {
		t.Fatalf("replay not detected")
	}
	if second.Order.Number != first.Order.Number {
		t.Fatalf("replay returned a different order")
	}
	if len(store.Orders()) != 1 {
		t.Fatalf("duplicate proof created %d orders", len(store.Orders()))
	}
	if got := store.Product(p.ID).Stock; got != 4 {
		t.Fatalf("stock decremented twice: %d", got)
	}
	if got := len(store.Codes()); got != 1 {
		t.Fatalf("reward minted more than once: %d", got)
	}
}

func TestConcurrentSettlementsSingleUnitOfStock(t *testing.T) {
	ctx := context.Background()
	store, engine := setup(t)

	p := store.AddProduct(models.Product{Name: "Last One", Price: 100, Stock: 1, IsActive: true})
	store.AddCartLine(1, p.ID, 1)
	store.AddCartLine(2, p.ID, 1)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.Settle(ctx, uint(i+1), 10, proof(fmt.Sprintf("pay_%d", i), 10000))
		}(i)
	}
	wg.Wait()

	var ok, conflict int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrInsufficientStock):
			conflict++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflict != 1 {
		t.Fatalf("expected exactly one winner, got ok=%d conflict=%d", ok, conflict)
	}
	if got := store.Product(p.ID).Stock; got != 0 {
		t.Fatalf("final stock %d, want 0", got)
	}
	if len(store.Orders()) != 1 {
		t.Fatalf("expected one order, got %d", len(store.Orders()))
	}
}

func TestConcurrentRedemptionsOfSameCode(t *testing.T) {
	ctx := context.Background()
	store, engine := setup(t)

	p := store.AddProduct(models.Product{Name: "Book", Price: 100, Stock: 10, IsActive: true})
	store.AddCartLine(1, p.ID, 1)
	store.AddCartLine(2, p.ID, 1)
	code := store.AddCode(models.DiscountCode{Code: "SAVE-RACE-0001", Percent: 10, Active: true})
	store.HoldCode(1, code.ID)
	store.HoldCode(2, code.ID)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.Settle(ctx, uint(i+1), 10, proof(fmt.Sprintf("pay_%d", i), 9000))
		}(i)
	}
	wg.Wait()

	var ok, conflict int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrCodeRedeemed):
			conflict++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflict != 1 {
		t.Fatalf("expected exactly one redemption, got ok=%d conflict=%d", ok, conflict)
	}
	if !store.Code(code.ID).Used {
		t.Fatalf("code not redeemed")
	}
	// The loser's rollback must undo its stock decrement.
	if got := store.Product(p.ID).Stock; got != 9 {
		t.Fatalf("final stock %d, want 9", got)
	}
}

func TestConcurrentOrderNumbersAreUnique(t *testing.T) {
	ctx := context.Background()
	store, engine := setup(t)

	const n = 20
	p := store.AddProduct(models.Product{Name: "Bulk", Price: 10, Stock: n, IsActive: true})
	for i := 1; i <= n; i++ {
		store.AddCartLine(uint(i), p.ID, 1)
	}

	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := engine.Settle(ctx, uint(i), 10, proof(fmt.Sprintf("pay_%d", i), 1000)); err != nil {
				t.Errorf("settle %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for _, order := range store.Orders() {
		if seen[order.Number] {
			t.Fatalf("order number %d issued twice", order.Number)
		}
		seen[order.Number] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d distinct numbers, got %d", n, len(seen))
	}
	for i := int64(1); i <= n; i++ {
		if !seen[i] {
			t.Fatalf("order numbers not gap-free, missing %d", i)
		}
	}
}

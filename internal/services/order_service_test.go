package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"roboadvisor/internal/calendar"
	"roboadvisor/internal/logger"
	"roboadvisor/internal/models"
	"roboadvisor/internal/pagination"
	"roboadvisor/internal/settings"
	"roboadvisor/internal/store"
	"roboadvisor/internal/testutil"
)

func init() {
	logger.Init("test", "")
}

type testEnv struct {
	svc       OrderServicer
	ledger    store.Ledger
	precision *settings.Precision
}

// ledgers runs fn against an order service over every ledger backend.
func ledgers(t *testing.T, now time.Time, fn func(t *testing.T, env testEnv)) {
	for _, backend := range []string{"memory", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			var ledger store.Ledger = store.NewMemoryLedger()
			if backend == "sqlite" {
				ledger = store.NewSQLLedger(testutil.SetupTestDB(t))
			}
			precision, err := settings.NewPrecision(settings.DefaultDecimals)
			testutil.AssertNoError(t, err)
			svc := NewOrderService(ledger, precision, calendar.NewPolicy(nil), OrderOptions{
				Clock: testutil.FixedClock(now),
			})
			fn(t, testEnv{svc: svc, ledger: ledger, precision: precision})
		})
	}
}

func validRequest(key string) OrderRequest {
	return OrderRequest{
		Type:           "buy",
		Amount:         1000,
		IdempotencyKey: key,
		Portfolio: []models.PortfolioStock{
			testutil.Stock("A", 60, 10),
			testutil.Stock("B", 40, 20),
		},
	}
}

func ledgerSize(t *testing.T, l store.Ledger) int64 {
	t.Helper()
	total, _, err := l.ListOrders(store.OrderFilter{})
	testutil.AssertNoError(t, err)
	return total
}

func TestSubmitOrder(t *testing.T) {
	ledgers(t, testutil.Monday, func(t *testing.T, env testEnv) {
		req := validRequest("k1")
		req.UserID = "alice"

		resp, err := env.svc.SubmitOrder(req)
		testutil.AssertNoError(t, err)

		if resp.OrderID != 1 {
			t.Errorf("expected order id 1, got %d", resp.OrderID)
		}
		if resp.Status != calendar.StatusExecuted || resp.ExecutionDate != "2026-02-02" {
			t.Errorf("unexpected schedule %s/%s", resp.Status, resp.ExecutionDate)
		}
		if resp.UserID != "alice" || resp.IdempotencyKey != "k1" {
			t.Errorf("unexpected identity %+v", resp)
		}
		if len(resp.Orders) != 2 {
			t.Fatalf("expected 2 line items, got %d", len(resp.Orders))
		}
		testutil.AssertFloat(t, "A amount", resp.Orders[0].Amount, 600)
		testutil.AssertFloat(t, "A shares", resp.Orders[0].Shares, 60)
		testutil.AssertFloat(t, "B amount", resp.Orders[1].Amount, 400)
		testutil.AssertFloat(t, "B shares", resp.Orders[1].Shares, 20)

		_, stored, err := env.ledger.ListOrders(store.OrderFilter{IdempotencyKey: "k1"})
		testutil.AssertNoError(t, err)
		if len(stored) != 2 {
			t.Fatalf("expected 2 ledger entries, got %d", len(stored))
		}
		for _, o := range stored {
			if o.OrderID != 1 || o.Status != calendar.StatusExecuted || o.UserID != "alice" || o.Type != "buy" {
				t.Errorf("unexpected ledger entry %+v", o)
			}
		}
	})
}

func TestSubmitOrder_Weekend(t *testing.T) {
	for name, now := range map[string]time.Time{"saturday": testutil.Saturday, "sunday": testutil.Sunday} {
		t.Run(name, func(t *testing.T) {
			ledgers(t, now, func(t *testing.T, env testEnv) {
				resp, err := env.svc.SubmitOrder(validRequest("k"))
				testutil.AssertNoError(t, err)
				if resp.Status != calendar.StatusAccepted {
					t.Errorf("expected accepted, got %s", resp.Status)
				}
				if resp.ExecutionDate != "2026-02-02" {
					t.Errorf("expected execution on Monday 2026-02-02, got %s", resp.ExecutionDate)
				}
			})
		})
	}
}

func TestSubmitOrder_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r *OrderRequest)
		wantCode string
	}{
		{"missing type", func(r *OrderRequest) { r.Type = "" }, "INVALID_ORDER_TYPE"},
		{"unknown type", func(r *OrderRequest) { r.Type = "hold" }, "INVALID_ORDER_TYPE"},
		{"zero amount", func(r *OrderRequest) { r.Amount = 0 }, "INVALID_AMOUNT"},
		{"negative amount", func(r *OrderRequest) { r.Amount = -5 }, "INVALID_AMOUNT"},
		{"empty portfolio", func(r *OrderRequest) { r.Portfolio = []models.PortfolioStock{} }, "INVALID_PORTFOLIO"},
		{"missing portfolio", func(r *OrderRequest) { r.Portfolio = nil }, "INVALID_PORTFOLIO"},
		{"missing key", func(r *OrderRequest) { r.IdempotencyKey = "" }, "INVALID_IDEMPOTENCY_KEY"},
		{"weights off", func(r *OrderRequest) { r.Portfolio[1].Weight = testutil.Float(30) }, "INVALID_WEIGHTS"},
		{"bad entry", func(r *OrderRequest) { r.Portfolio[0].Stock = " " }, "INVALID_PORTFOLIO_ENTRY"},
		// Checks run in order: the first failing one wins.
		{"type before amount", func(r *OrderRequest) { r.Type = ""; r.Amount = 0 }, "INVALID_ORDER_TYPE"},
		{"amount before portfolio", func(r *OrderRequest) { r.Amount = 0; r.Portfolio = nil }, "INVALID_AMOUNT"},
		{"portfolio before key", func(r *OrderRequest) { r.Portfolio = nil; r.IdempotencyKey = "" }, "INVALID_PORTFOLIO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledgers(t, testutil.Monday, func(t *testing.T, env testEnv) {
				req := validRequest("k1")
				tt.mutate(&req)

				_, err := env.svc.SubmitOrder(req)
				testutil.AssertAppError(t, err, tt.wantCode)

				if n := ledgerSize(t, env.ledger); n != 0 {
					t.Errorf("rejection wrote %d ledger entries", n)
				}
				if _, ok, _ := env.ledger.LookupResponse("k1"); ok {
					t.Error("rejection stored an idempotency entry")
				}
			})
		})
	}
}

func TestSubmitOrder_MixedCaseType(t *testing.T) {
	ledgers(t, testutil.Monday, func(t *testing.T, env testEnv) {
		req := validRequest("k1")
		req.Type = "SELL"
		_, err := env.svc.SubmitOrder(req)
		testutil.AssertNoError(t, err)

		_, stored, _ := env.ledger.ListOrders(store.OrderFilter{})
		if stored[0].Type != "SELL" {
			t.Errorf("expected type stored as given, got %q", stored[0].Type)
		}
	})
}

func TestSubmitOrder_IdempotentReplay(t *testing.T) {
	ledgers(t, testutil.Monday, func(t *testing.T, env testEnv) {
		first, err := env.svc.SubmitOrder(validRequest("k1"))
		testutil.AssertNoError(t, err)

		// A different payload with broken weights and entries under the same key.
		replay := validRequest("k1")
		replay.Type = "sell"
		replay.Amount = 5
		replay.Portfolio = []models.PortfolioStock{{Stock: "Z"}}

		second, err := env.svc.SubmitOrder(replay)
		testutil.AssertNoError(t, err)

		a, _ := json.Marshal(first)
		b, _ := json.Marshal(second)
		if !bytes.Equal(a, b) {
			t.Errorf("replay differs:\nfirst:  %s\nsecond: %s", a, b)
		}
		if n := ledgerSize(t, env.ledger); n != 2 {
			t.Errorf("expected one batch of 2 entries, got %d", n)
		}

		next, _ := env.ledger.NextOrderID()
		if next != 2 {
			t.Errorf("replay consumed an order id: next=%d", next)
		}
	})
}

func TestSubmitOrder_ReplayStillChecksShape(t *testing.T) {
	ledgers(t, testutil.Monday, func(t *testing.T, env testEnv) {
		_, err := env.svc.SubmitOrder(validRequest("k1"))
		testutil.AssertNoError(t, err)

		req := validRequest("k1")
		req.Amount = 0
		_, err = env.svc.SubmitOrder(req)
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})
}

func TestSubmitOrder_MonotonicIDs(t *testing.T) {
	ledgers(t, testutil.Monday, func(t *testing.T, env testEnv) {
		var ids []int64
		for i := 0; i < 6; i++ {
			// Interleave rejected submissions; they must not consume ids.
			bad := validRequest(fmt.Sprintf("bad-%d", i))
			bad.Portfolio[0].Weight = testutil.Float(1)
			_, err := env.svc.SubmitOrder(bad)
			testutil.AssertAppError(t, err, "INVALID_WEIGHTS")

			resp, err := env.svc.SubmitOrder(validRequest(fmt.Sprintf("good-%d", i)))
			testutil.AssertNoError(t, err)
			ids = append(ids, resp.OrderID)
		}

		for i, id := range ids {
			if id != int64(i+1) {
				t.Errorf("submission %d got order id %d, want %d", i, id, i+1)
			}
		}
	})
}

func TestSubmitOrder_UniqueItemIDs(t *testing.T) {
	ledgers(t, testutil.Monday, func(t *testing.T, env testEnv) {
		for i := 0; i < 5; i++ {
			_, err := env.svc.SubmitOrder(validRequest(testutil.UniqueKey()))
			testutil.AssertNoError(t, err)
		}
		_, all, _ := env.ledger.ListOrders(store.OrderFilter{})
		seen := make(map[string]bool)
		for _, o := range all {
			if seen[o.ItemID] {
				t.Fatalf("duplicate item id %s", o.ItemID)
			}
			seen[o.ItemID] = true
		}
	})
}

func TestSubmitOrder_ConcurrentSameKey(t *testing.T) {
	ledgers(t, testutil.Monday, func(t *testing.T, env testEnv) {
		const workers = 16
		responses := make([]*models.OrderResponse, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				resp, err := env.svc.SubmitOrder(validRequest("shared"))
				if err != nil {
					t.Errorf("worker %d: %v", i, err)
					return
				}
				responses[i] = resp
			}(i)
		}
		wg.Wait()

		want, _ := json.Marshal(responses[0])
		for i, r := range responses[1:] {
			got, _ := json.Marshal(r)
			if !bytes.Equal(got, want) {
				t.Errorf("worker %d saw a different response", i+1)
			}
		}
		if n := ledgerSize(t, env.ledger); n != 2 {
			t.Errorf("expected exactly one batch, ledger has %d entries", n)
		}
	})
}

func TestSubmitOrder_ConcurrentDistinctKeys(t *testing.T) {
	ledgers(t, testutil.Monday, func(t *testing.T, env testEnv) {
		const workers = 12
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if _, err := env.svc.SubmitOrder(validRequest(fmt.Sprintf("k-%d", i))); err != nil {
					t.Errorf("worker %d: %v", i, err)
				}
			}(i)
		}
		wg.Wait()

		_, all, _ := env.ledger.ListOrders(store.OrderFilter{})
		seen := make(map[int64]int)
		for _, o := range all {
			seen[o.OrderID]++
		}
		if len(seen) != workers {
			t.Errorf("expected %d distinct order ids, got %d", workers, len(seen))
		}
		for id, lines := range seen {
			if lines != 2 || id < 1 || id > workers {
				t.Errorf("order %d has %d lines", id, lines)
			}
		}
	})
}

func TestSubmitOrder_PrecisionChange(t *testing.T) {
	ledgers(t, testutil.Monday, func(t *testing.T, env testEnv) {
		req := validRequest("p1")
		req.Amount = 100
		req.Portfolio = []models.PortfolioStock{testutil.Stock("A", 100, 3)}

		resp, err := env.svc.SubmitOrder(req)
		testutil.AssertNoError(t, err)
		testutil.AssertFloat(t, "shares at 3 decimals", resp.Orders[0].Shares, 33.333)

		testutil.AssertNoError(t, env.precision.Set(1))
		req.IdempotencyKey = "p2"
		resp, err = env.svc.SubmitOrder(req)
		testutil.AssertNoError(t, err)
		testutil.AssertFloat(t, "shares at 1 decimal", resp.Orders[0].Shares, 33.3)
	})
}

func TestListOrders(t *testing.T) {
	ledgers(t, testutil.Monday, func(t *testing.T, env testEnv) {
		for i, user := range []string{"alice", "bob", "alice"} {
			req := validRequest(fmt.Sprintf("k%d", i+1))
			req.UserID = user
			_, err := env.svc.SubmitOrder(req)
			testutil.AssertNoError(t, err)
		}

		t.Run("and filters", func(t *testing.T) {
			res, err := env.svc.ListOrders(store.OrderFilter{Stock: "A", UserID: "alice"}, pagination.PageRequest{})
			testutil.AssertNoError(t, err)
			if res.TotalCount != 6 || res.ResultCount != 2 || len(res.Result) != 2 {
				t.Errorf("unexpected counts total=%d result=%d len=%d", res.TotalCount, res.ResultCount, len(res.Result))
			}
			if res.Result[0].OrderID != 1 || res.Result[1].OrderID != 3 {
				t.Errorf("expected creation order, got %d then %d", res.Result[0].OrderID, res.Result[1].OrderID)
			}
		})

		t.Run("order id", func(t *testing.T) {
			id := int64(2)
			res, err := env.svc.ListOrders(store.OrderFilter{OrderID: &id}, pagination.PageRequest{})
			testutil.AssertNoError(t, err)
			if res.ResultCount != 2 || res.Result[0].UserID != "bob" {
				t.Errorf("unexpected result %+v", res)
			}
		})

		t.Run("no match keeps total", func(t *testing.T) {
			res, err := env.svc.ListOrders(store.OrderFilter{Status: calendar.StatusAccepted}, pagination.PageRequest{})
			testutil.AssertNoError(t, err)
			if res.TotalCount != 6 || res.ResultCount != 0 || res.Result == nil || len(res.Result) != 0 {
				t.Errorf("unexpected result %+v", res)
			}
		})

		t.Run("paged", func(t *testing.T) {
			res, err := env.svc.ListOrders(store.OrderFilter{}, pagination.PageRequest{Page: 2, PageSize: 4})
			testutil.AssertNoError(t, err)
			if res.ResultCount != 6 || len(res.Result) != 2 || res.Page != 2 || res.PageSize != 4 {
				t.Errorf("unexpected page %+v", res)
			}
		})
	})
}

package cart

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"restaurant-service/internal/entity"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type recordedToast struct {
	Kind    Kind
	Message string
	Opts    NotifyOptions
}

type recorder struct {
	mu     sync.Mutex
	toasts []recordedToast
}

func (r *recorder) Notify(_ context.Context, kind Kind, message string, opts NotifyOptions) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, recordedToast{Kind: kind, Message: message, Opts: opts})
}

func (r *recorder) All() []recordedToast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedToast(nil), r.toasts...)
}

type failingStorage struct{}

func (failingStorage) Load(context.Context, string) (*entity.CartSnapshot, error) {
	return nil, errors.New("storage unavailable")
}

func (failingStorage) Save(context.Context, string, entity.CartSnapshot) error {
	return errors.New("storage unavailable")
}

var margherita = entity.Food{
	ID:          "5",
	Name:        "Margherita",
	Price:       24.99,
	Image:       "https://example.com/margherita.jpg",
	Description: "Tomato, mozzarella, basil",
	Allergens:   []string{"Gluten", "Milk"},
	Category:    "pizza",
}

var lemonade = entity.Food{ID: "12", Name: "Lemonade", Price: 4.5, Category: "drinks"}

func newTestStore(t *testing.T, opts ...Option) (*Store, *fakeClock, *recorder, *MemoryStorage) {
	t.Helper()
	clock := newFakeClock()
	rec := &recorder{}
	storage := NewMemoryStorage()
	opts = append([]Option{WithClock(clock.Now), WithDrawerAutoClose(0)}, opts...)
	s := New(context.Background(), StorageKey, storage, rec, opts...)
	t.Cleanup(s.Close)
	return s, clock, rec, storage
}

func TestStore_ExampleScenario(t *testing.T) {
	ctx := context.Background()
	s, _, _, _ := newTestStore(t)

	s.AddItem(ctx, margherita, 2, "no onions")
	assert.Equal(t, 2, s.TotalItems())
	assert.InDelta(t, 49.98, s.TotalPrice(), 1e-9)

	s.AddItem(ctx, margherita, 1, "no onions")
	state := s.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, 3, state.Items[0].Quantity)
	assert.InDelta(t, 74.97, s.TotalPrice(), 1e-9)

	s.AddItem(ctx, margherita, 1, "")
	assert.Len(t, s.State().Items, 2)
	assert.Equal(t, 4, s.TotalItems())
}

func TestStore_AddItemMergesSameNotes(t *testing.T) {
	ctx := context.Background()
	s, _, rec, _ := newTestStore(t)

	s.AddItem(ctx, margherita, 4, "Extra  Spicy")
	s.AddItem(ctx, margherita, 3, "  extra spicy ")

	state := s.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, "5-extra-spicy", state.Items[0].ID)
	assert.Equal(t, 7, state.Items[0].Quantity)
	assert.Equal(t, "Extra  Spicy", state.Items[0].ProductNotes, "notes of the first add are kept")

	// merging clamps at the same limit UpdateQuantity uses
	s.AddItem(ctx, margherita, 5, "extra spicy")
	assert.Equal(t, MaxQuantity, s.ItemCount("5", "extra spicy"))

	toasts := rec.All()
	require.Len(t, toasts, 3)
	assert.Equal(t, KindSuccess, toasts[0].Kind)
	assert.Equal(t, "4x Margherita added to cart", toasts[0].Message)
	assert.Equal(t, DefaultPosition, toasts[0].Opts.Position)
	assert.Equal(t, StorageKey, toasts[0].Opts.Key)
}

func TestStore_AddItemDistinctNotes(t *testing.T) {
	ctx := context.Background()
	s, _, _, _ := newTestStore(t)

	s.AddItem(ctx, margherita, 1, "extra spicy")
	s.AddItem(ctx, margherita, 1, "")

	state := s.State()
	require.Len(t, state.Items, 2)
	assert.NotEqual(t, state.Items[0].ID, state.Items[1].ID)
	assert.Equal(t, 1, s.ItemCount("5", "extra spicy"))
	assert.Equal(t, 1, s.ItemCount("5", ""))
	assert.Equal(t, 0, s.ItemCount("5", "mild"))
}

func TestStore_AddItemNormalizesQuantity(t *testing.T) {
	ctx := context.Background()
	s, _, _, _ := newTestStore(t)

	s.AddItem(ctx, lemonade, 0, "")
	assert.Equal(t, 1, s.ItemCount("12", ""))

	s.AddItem(ctx, margherita, 25, "")
	assert.Equal(t, MaxQuantity, s.ItemCount("5", ""))
}

func TestStore_AddItemSnapshotsFood(t *testing.T) {
	ctx := context.Background()
	s, clock, _, _ := newTestStore(t)

	food := margherita
	food.Allergens = []string{"Gluten"}
	s.AddItem(ctx, food, 1, "")
	food.Allergens[0] = "changed"
	food.Price = 99

	item, ok := s.Item(DeriveItemID("5", ""))
	require.True(t, ok)
	assert.Equal(t, []string{"Gluten"}, item.Food.Allergens)
	assert.Equal(t, 24.99, item.Food.Price)
	assert.True(t, item.AddedAt.Equal(clock.Now()))
}

func TestStore_UpdateQuantityBounds(t *testing.T) {
	ctx := context.Background()
	s, _, _, _ := newTestStore(t)

	s.AddItem(ctx, margherita, 2, "")
	s.AddItem(ctx, lemonade, 2, "")
	pizzaID := DeriveItemID("5", "")
	lemonadeID := DeriveItemID("12", "")

	s.UpdateQuantity(ctx, pizzaID, 15)
	assert.Equal(t, 10, s.ItemCount("5", ""))

	s.UpdateQuantity(ctx, pizzaID, 0)
	_, ok := s.Item(pizzaID)
	assert.False(t, ok)

	s.UpdateQuantity(ctx, lemonadeID, -3)
	assert.Empty(t, s.State().Items)

	s.UpdateQuantity(ctx, "missing", 4)
	assert.Empty(t, s.State().Items)
}

func TestStore_RemoveItem(t *testing.T) {
	ctx := context.Background()
	s, _, _, _ := newTestStore(t)

	s.AddItem(ctx, margherita, 1, "")
	s.AddItem(ctx, lemonade, 1, "")

	s.RemoveItem(ctx, "does-not-exist")
	assert.Len(t, s.State().Items, 2)

	s.RemoveItem(ctx, DeriveItemID("5", ""))
	state := s.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, "12", state.Items[0].Food.ID)
}

func TestStore_UpdateProductNotesKeepsID(t *testing.T) {
	ctx := context.Background()
	s, _, _, _ := newTestStore(t)

	s.AddItem(ctx, margherita, 1, "no onions")
	s.AddItem(ctx, margherita, 1, "")
	originalID := DeriveItemID("5", "")

	s.UpdateProductNotes(ctx, originalID, "  no onions  ")

	item, ok := s.Item(originalID)
	require.True(t, ok)
	assert.Equal(t, "no onions", item.ProductNotes)

	// both lines now carry the same notes but stay separate
	assert.Len(t, s.State().Items, 2)

	// a fresh add merges into the line whose id matches, not the edited one
	s.AddItem(ctx, margherita, 1, "no onions")
	assert.Equal(t, 2, s.ItemCount("5", "no onions"))
	assert.Equal(t, 1, s.ItemCount("5", ""))
}

func TestStore_UpdateOrderNotes(t *testing.T) {
	ctx := context.Background()
	s, _, _, _ := newTestStore(t)

	s.UpdateOrderNotes(ctx, "  ring the bell  ")
	assert.Equal(t, "ring the bell", s.State().OrderNotes)

	s.UpdateOrderNotes(ctx, strings.Repeat("ş", 150))
	assert.Len(t, []rune(s.State().OrderNotes), MaxOrderNotes)
}

func TestStore_SetTableNumber(t *testing.T) {
	ctx := context.Background()
	s, _, rec, _ := newTestStore(t)

	s.SetTableNumber(ctx, "7")
	s.SetTableNumber(ctx, " 12 ")

	state := s.State()
	require.NotNil(t, state.TableNumber)
	assert.Equal(t, "12", *state.TableNumber)

	toasts := rec.All()
	require.Len(t, toasts, 2)
	assert.Equal(t, "Table 12 selected", toasts[1].Message)

	s.SetTableNumber(ctx, "")
	state = s.State()
	require.NotNil(t, state.TableNumber)
	assert.Empty(t, *state.TableNumber)
	assert.Len(t, rec.All(), 3)
}

func TestStore_ClearCart(t *testing.T) {
	ctx := context.Background()
	s, clock, _, _ := newTestStore(t)

	s.AddItem(ctx, margherita, 1, "")
	s.UpdateOrderNotes(ctx, "fast please")
	s.SetTableNumber(ctx, "3")
	clock.Advance(10 * time.Minute)

	s.ClearCart(ctx)

	state := s.State()
	assert.Empty(t, state.Items)
	assert.Empty(t, state.OrderNotes)
	assert.Nil(t, state.TableNumber)
	assert.Equal(t, clock.Now().Add(CacheDuration), state.ExpiresAt)
}

func TestStore_TotalsMatchItems(t *testing.T) {
	ctx := context.Background()
	s, _, _, _ := newTestStore(t)

	foods := []entity.Food{margherita, lemonade, {ID: "31", Name: "Tiramisu", Price: 7.25}}
	notes := []string{"", "no ice", "extra cheese"}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 300; i++ {
		food := foods[rng.Intn(len(foods))]
		note := notes[rng.Intn(len(notes))]
		id := DeriveItemID(food.ID, note)

		switch rng.Intn(4) {
		case 0, 1:
			s.AddItem(ctx, food, rng.Intn(4)+1, note)
		case 2:
			s.UpdateQuantity(ctx, id, rng.Intn(14)-2)
		case 3:
			s.RemoveItem(ctx, id)
		}

		state := s.State()
		wantItems, wantPrice := 0, 0.0
		seen := map[string]bool{}
		for _, item := range state.Items {
			require.False(t, seen[item.ID], "duplicate line %s", item.ID)
			seen[item.ID] = true
			require.GreaterOrEqual(t, item.Quantity, 1)
			require.LessOrEqual(t, item.Quantity, MaxQuantity)
			wantItems += item.Quantity
			wantPrice += item.Food.Price * float64(item.Quantity)
		}
		require.Equal(t, wantItems, s.TotalItems())
		require.Equal(t, wantPrice, s.TotalPrice())
	}
}

func TestStore_CheckExpiration(t *testing.T) {
	ctx := context.Background()
	s, clock, rec, storage := newTestStore(t)

	s.AddItem(ctx, margherita, 2, "")
	s.UpdateOrderNotes(ctx, "birthday")
	s.SetTableNumber(ctx, "4")

	clock.Advance(59 * time.Minute)
	assert.False(t, s.CheckExpiration(ctx))
	assert.Len(t, s.State().Items, 1)

	clock.Advance(CacheDuration)
	assert.True(t, s.CheckExpiration(ctx))

	state := s.State()
	assert.Empty(t, state.Items)
	assert.Empty(t, state.OrderNotes)
	assert.Nil(t, state.TableNumber)

	toasts := rec.All()
	last := toasts[len(toasts)-1]
	assert.Equal(t, KindInfo, last.Kind)
	assert.Equal(t, expiredMessage, last.Message)

	persisted, err := storage.Load(ctx, StorageKey)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Empty(t, persisted.Items)
	assert.Nil(t, persisted.TableNumber)
}

func TestStore_CheckExpirationIgnoresEmptyCart(t *testing.T) {
	ctx := context.Background()
	s, clock, rec, _ := newTestStore(t)

	s.UpdateOrderNotes(ctx, "keep me")
	clock.Advance(2 * CacheDuration)

	assert.False(t, s.CheckExpiration(ctx))
	assert.Equal(t, "keep me", s.State().OrderNotes)
	assert.Empty(t, rec.All())
}

func TestStore_AddItemAfterExpiry(t *testing.T) {
	ctx := context.Background()
	s, clock, rec, _ := newTestStore(t)

	s.AddItem(ctx, margherita, 3, "")
	s.SetTableNumber(ctx, "9")
	clock.Advance(CacheDuration + time.Second)

	s.AddItem(ctx, lemonade, 1, "")

	state := s.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, "12", state.Items[0].Food.ID)
	assert.Nil(t, state.TableNumber)

	toasts := rec.All()
	require.Len(t, toasts, 4)
	assert.Equal(t, expiredMessage, toasts[2].Message)
	assert.Equal(t, "1x Lemonade added to cart", toasts[3].Message)
}

func TestStore_OpenCartChecksExpiration(t *testing.T) {
	ctx := context.Background()
	s, clock, _, _ := newTestStore(t)

	s.AddItem(ctx, margherita, 1, "")
	clock.Advance(CacheDuration + time.Minute)

	s.OpenCart(ctx)
	assert.True(t, s.IsCartOpen())
	assert.Empty(t, s.State().Items)
}

func TestStore_ToggleCartChecksExpiration(t *testing.T) {
	ctx := context.Background()
	s, clock, rec, _ := newTestStore(t)

	s.AddItem(ctx, margherita, 1, "")
	s.SetTableNumber(ctx, "9")
	clock.Advance(CacheDuration + time.Second)

	s.ToggleCart(ctx)

	assert.True(t, s.IsCartOpen())
	state := s.State()
	assert.Empty(t, state.Items)
	assert.Nil(t, state.TableNumber)

	toasts := rec.All()
	require.Len(t, toasts, 3)
	assert.Equal(t, KindInfo, toasts[2].Kind)
	assert.Equal(t, expiredMessage, toasts[2].Message)
}

func TestStore_ClearCartClosesPanels(t *testing.T) {
	ctx := context.Background()
	s, _, _, _ := newTestStore(t, WithDrawerAutoClose(time.Hour))

	s.OpenCart(ctx)
	s.AddItem(ctx, margherita, 2, "")
	require.True(t, s.IsDrawerOpen())
	require.True(t, s.IsCartOpen())

	s.ClearCart(ctx)

	assert.False(t, s.IsDrawerOpen())
	assert.False(t, s.IsCartOpen())
	assert.Empty(t, s.State().Items)
}

func TestState_TotalsFromOneCopy(t *testing.T) {
	ctx := context.Background()
	s, _, _, _ := newTestStore(t)

	s.AddItem(ctx, margherita, 2, "")
	s.AddItem(ctx, lemonade, 3, "no ice")

	state := s.State()
	assert.Equal(t, 5, state.TotalItems())
	assert.InDelta(t, 2*24.99+3*4.5, state.TotalPrice(), 1e-9)

	s.ClearCart(ctx)
	assert.Equal(t, 5, state.TotalItems(), "copy is detached from the store")
	assert.Equal(t, 0, s.State().TotalItems())
}

func TestStore_SlidingWindow(t *testing.T) {
	ctx := context.Background()
	s, clock, rec, _ := newTestStore(t)

	s.AddItem(ctx, margherita, 1, "")
	for i := 0; i < 12; i++ {
		clock.Advance(30 * time.Minute)
		s.UpdateOrderNotes(ctx, "still here")
		assert.Equal(t, clock.Now().Add(CacheDuration), s.ExpiresAt())
		assert.False(t, s.CheckExpiration(ctx))
	}

	clock.Advance(30 * time.Minute)
	s.OpenCart(ctx)
	assert.Equal(t, 1, s.TotalItems())
	assert.Len(t, rec.All(), 1)
}

func TestStore_EveryMutationSlidesWindow(t *testing.T) {
	ctx := context.Background()
	s, clock, _, _ := newTestStore(t)
	s.AddItem(ctx, margherita, 1, "")
	id := DeriveItemID("5", "")

	mutations := map[string]func(){
		"add":           func() { s.AddItem(ctx, lemonade, 1, "") },
		"remove":        func() { s.RemoveItem(ctx, DeriveItemID("12", "")) },
		"quantity":      func() { s.UpdateQuantity(ctx, id, 2) },
		"product notes": func() { s.UpdateProductNotes(ctx, id, "x") },
		"order notes":   func() { s.UpdateOrderNotes(ctx, "y") },
		"table":         func() { s.SetTableNumber(ctx, "1") },
		"open cart":     func() { s.OpenCart(ctx) },
		"toggle cart":   func() { s.ToggleCart(ctx) },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			clock.Advance(time.Minute)
			mutate()
			assert.Equal(t, clock.Now().Add(CacheDuration), s.ExpiresAt())
		})
	}
}

func TestStore_CartVisibility(t *testing.T) {
	ctx := context.Background()
	s, _, _, _ := newTestStore(t)

	assert.False(t, s.IsCartOpen())
	s.ToggleCart(ctx)
	assert.True(t, s.IsCartOpen())
	s.ToggleCart(ctx)
	assert.False(t, s.IsCartOpen())
	s.OpenCart(ctx)
	assert.True(t, s.IsCartOpen())
	s.CloseCart()
	assert.False(t, s.IsCartOpen())
}

func TestStore_RehydrationDiscardsExpiredSnapshot(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	storage := NewMemoryStorage()
	table := "8"
	require.NoError(t, storage.Save(ctx, StorageKey, entity.CartSnapshot{
		Items:       []entity.CartItem{{ID: "5-no-notes", Food: margherita, Quantity: 2}},
		OrderNotes:  "old",
		TableNumber: &table,
		LastUpdated: clock.Now().Add(-2 * CacheDuration).UnixMilli(),
		ExpiresAt:   clock.Now().Add(-CacheDuration).UnixMilli(),
	}))

	rec := &recorder{}
	s := New(ctx, StorageKey, storage, rec, WithClock(clock.Now))
	defer s.Close()

	state := s.State()
	assert.Empty(t, state.Items)
	assert.Empty(t, state.OrderNotes)
	assert.Nil(t, state.TableNumber)
	assert.Equal(t, clock.Now().Add(CacheDuration), state.ExpiresAt)

	toasts := rec.All()
	require.Len(t, toasts, 1)
	assert.Equal(t, KindInfo, toasts[0].Kind)

	persisted, err := storage.Load(ctx, StorageKey)
	require.NoError(t, err)
	assert.Empty(t, persisted.Items)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	storage := NewMemoryStorage()

	first := New(ctx, StorageKey, storage, nil, WithClock(clock.Now), WithDrawerAutoClose(0))
	first.AddItem(ctx, margherita, 2, "no onions")
	first.AddItem(ctx, lemonade, 1, "")
	first.UpdateOrderNotes(ctx, "window seat")
	first.SetTableNumber(ctx, "14")
	first.OpenCart(ctx)
	require.True(t, first.IsCartOpen())
	before := first.State()
	first.Close()

	clock.Advance(20 * time.Minute)
	second := New(ctx, StorageKey, storage, nil, WithClock(clock.Now))
	defer second.Close()
	after := second.State()

	require.Len(t, after.Items, len(before.Items))
	for i := range before.Items {
		assert.True(t, before.Items[i].AddedAt.Equal(after.Items[i].AddedAt))
		before.Items[i].AddedAt, after.Items[i].AddedAt = time.Time{}, time.Time{}
	}
	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, before.OrderNotes, after.OrderNotes)
	assert.Equal(t, before.TableNumber, after.TableNumber)
	assert.False(t, after.IsCartOpen)
	assert.False(t, after.IsDrawerOpen)
}

func TestStore_SnapshotLayout(t *testing.T) {
	ctx := context.Background()
	s, clock, _, storage := newTestStore(t)

	s.AddItem(ctx, lemonade, 1, "")
	s.OpenCart(ctx)

	raw, ok := storage.Raw(StorageKey)
	require.True(t, ok)
	body := string(raw)
	assert.Contains(t, body, `"tableNumber":null`)
	assert.Contains(t, body, `"productNotes":""`)
	assert.NotContains(t, body, "isCartOpen")
	assert.NotContains(t, body, "isDrawerOpen")

	snapshot := s.ToSnapshot()
	assert.Equal(t, clock.Now().UnixMilli(), snapshot.LastUpdated)
	assert.Equal(t, clock.Now().Add(CacheDuration).UnixMilli(), snapshot.ExpiresAt)
}

func TestStore_FromSnapshotRepairs(t *testing.T) {
	ctx := context.Background()
	s, clock, _, _ := newTestStore(t)
	blank := "  "

	s.FromSnapshot(ctx, entity.CartSnapshot{
		Items: []entity.CartItem{
			{ID: "5-no-notes", Food: margherita, Quantity: 15, ProductNotes: " "},
			{ID: "12-no-notes", Food: lemonade, Quantity: 0},
			{ID: "", Food: lemonade, Quantity: 1},
			{ID: "5-no-notes", Food: margherita, Quantity: 2},
		},
		OrderNotes:  "  " + strings.Repeat("a", 120),
		TableNumber: &blank,
	})

	state := s.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, MaxQuantity, state.Items[0].Quantity)
	assert.Empty(t, state.Items[0].ProductNotes)
	assert.Len(t, state.OrderNotes, MaxOrderNotes)
	assert.Nil(t, state.TableNumber)
	// snapshots without timestamps get a fresh window
	assert.Equal(t, clock.Now().Add(CacheDuration), state.ExpiresAt)
}

func TestStore_SharedKeyLastWriterWins(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	storage := NewMemoryStorage()

	tabA := New(ctx, StorageKey, storage, nil, WithClock(clock.Now), WithDrawerAutoClose(0))
	tabB := New(ctx, StorageKey, storage, nil, WithClock(clock.Now), WithDrawerAutoClose(0))
	defer tabA.Close()
	defer tabB.Close()

	tabA.AddItem(ctx, margherita, 1, "")
	tabB.AddItem(ctx, lemonade, 1, "")

	reloaded := New(ctx, StorageKey, storage, nil, WithClock(clock.Now))
	defer reloaded.Close()
	state := reloaded.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, "12", state.Items[0].Food.ID)
}

func TestStore_StorageFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()

	s := New(ctx, StorageKey, failingStorage{}, nil, WithClock(clock.Now), WithDrawerAutoClose(0))
	defer s.Close()

	s.AddItem(ctx, margherita, 1, "")
	s.ClearCart(ctx)
	s.AddItem(ctx, lemonade, 2, "")
	assert.Equal(t, 2, s.TotalItems())
}

func TestStore_DrawerAutoCloses(t *testing.T) {
	ctx := context.Background()
	s, _, _, _ := newTestStore(t, WithDrawerAutoClose(20*time.Millisecond))

	s.AddItem(ctx, margherita, 1, "")
	assert.True(t, s.IsDrawerOpen())
	require.Eventually(t, func() bool { return !s.IsDrawerOpen() }, time.Second, 5*time.Millisecond)
}

func TestStore_DrawerTimerCancelledOnClose(t *testing.T) {
	s, _, _, _ := newTestStore(t, WithDrawerAutoClose(time.Hour))

	s.OpenDrawer()
	assert.True(t, s.IsDrawerOpen())
	s.CloseDrawer()
	assert.False(t, s.IsDrawerOpen())

	s.ToggleDrawer()
	assert.True(t, s.IsDrawerOpen())
	s.ToggleDrawer()
	assert.False(t, s.IsDrawerOpen())

	s.mu.Lock()
	assert.Nil(t, s.drawerTimer)
	s.mu.Unlock()
}

func TestStore_OpenCartClosesDrawer(t *testing.T) {
	ctx := context.Background()
	s, _, _, _ := newTestStore(t, WithDrawerAutoClose(time.Hour))

	s.AddItem(ctx, margherita, 1, "")
	require.True(t, s.IsDrawerOpen())

	s.OpenCart(ctx)
	assert.False(t, s.IsDrawerOpen())
	assert.True(t, s.IsCartOpen())
}

func TestStore_StateIsACopy(t *testing.T) {
	ctx := context.Background()
	s, _, _, _ := newTestStore(t)
	s.AddItem(ctx, margherita, 1, "")
	s.SetTableNumber(ctx, "2")

	state := s.State()
	state.Items[0].Quantity = 9
	state.Items[0].Food.Allergens[0] = "none"
	*state.TableNumber = "99"

	fresh := s.State()
	assert.Equal(t, 1, fresh.Items[0].Quantity)
	assert.Equal(t, "Gluten", fresh.Items[0].Food.Allergens[0])
	assert.Equal(t, "2", *fresh.TableNumber)
}

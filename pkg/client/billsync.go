package client

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a pending edit is sent.
const DefaultDebounce = 800 * time.Millisecond

// ItemKey identifies one bill line; at most one line exists per key.
type ItemKey struct {
	ProductID uint
	Color     string
}

// ItemEdit is a partial edit; nil fields are left unchanged.
type ItemEdit struct {
	Quantity        *int
	DiscountPercent *float64
}

type lineState struct {
	confirmed   BillItem // last value acknowledged by the server
	pendingQty  int
	pendingDisc float64
	timer       *time.Timer
	seq         uint64 // guards against stale in-flight responses
}

// BillSync keeps a local shadow of the server-held bill. Edits land in
// the shadow immediately and are reconciled after a per-key debounce;
// a failed reconcile rolls that key back to the last confirmed value
// and leaves every other key alone.
type BillSync struct {
	client   *Client
	debounce time.Duration

	mu    sync.Mutex
	lines map[ItemKey]*lineState
	order []ItemKey

	onError  func(key ItemKey, err error)
	onChange func()
}

type BillSyncOption func(*BillSync)

func WithDebounce(d time.Duration) BillSyncOption {
	return func(s *BillSync) { s.debounce = d }
}

// WithErrorHandler receives reconcile failures after rollback; the UI
// surfaces them as toasts.
func WithErrorHandler(fn func(key ItemKey, err error)) BillSyncOption {
	return func(s *BillSync) { s.onError = fn }
}

// WithChangeHandler is called whenever the shadow changes.
func WithChangeHandler(fn func()) BillSyncOption {
	return func(s *BillSync) { s.onChange = fn }
}

func NewBillSync(client *Client, opts ...BillSyncOption) *BillSync {
	s := &BillSync{
		client:   client,
		debounce: DefaultDebounce,
		lines:    make(map[ItemKey]*lineState),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh replaces the shadow with the authoritative server bill.
func (s *BillSync) Refresh(ctx context.Context) error {
	bill, err := s.client.GetBill(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.resetLocked(bill.Items)
	s.mu.Unlock()
	s.notifyChange()
	return nil
}

// resetLocked rebuilds line state from server items; pending timers
// for vanished lines are dropped.
func (s *BillSync) resetLocked(items []BillItem) {
	for _, st := range s.lines {
		if st.timer != nil {
			st.timer.Stop()
		}
	}
	s.lines = make(map[ItemKey]*lineState, len(items))
	s.order = s.order[:0]
	for _, item := range items {
		key := ItemKey{ProductID: item.ProductID, Color: item.Color}
		s.lines[key] = &lineState{
			confirmed:   item,
			pendingQty:  item.Quantity,
			pendingDisc: item.DiscountPercent,
		}
		s.order = append(s.order, key)
	}
}

// Items returns the lines as the UI should render them: pending edits
// applied, server order preserved.
func (s *BillSync) Items() []BillItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]BillItem, 0, len(s.order))
	for _, key := range s.order {
		st, ok := s.lines[key]
		if !ok {
			continue
		}
		item := st.confirmed
		item.Quantity = st.pendingQty
		item.DiscountPercent = st.pendingDisc
		items = append(items, item)
	}
	return items
}

// TotalAmount is the running total over the rendered (pending) lines.
func (s *BillSync) TotalAmount() float64 {
	total := 0.0
	for _, item := range s.Items() {
		total += item.FinalPrice()
	}
	return total
}

// UpdateItem applies the edit locally at once and (re)arms the key's
// debounce timer. Overlapping edits to the same key before the timer
// fires replace the pending value; last write wins.
func (s *BillSync) UpdateItem(key ItemKey, edit ItemEdit) {
	s.mu.Lock()
	st, ok := s.lines[key]
	if !ok {
		s.mu.Unlock()
		return
	}
	if edit.Quantity != nil {
		st.pendingQty = *edit.Quantity
	}
	if edit.DiscountPercent != nil {
		st.pendingDisc = *edit.DiscountPercent
	}
	// Any PATCH already in flight is now stale; its response must not
	// overwrite this edit.
	st.seq++
	if st.timer != nil {
		st.timer.Stop()
	}
	st.timer = time.AfterFunc(s.debounce, func() { s.flush(key) })
	s.mu.Unlock()
	s.notifyChange()
}

// Flush fires any armed timers immediately instead of waiting out the
// debounce. Used on checkout and in tests.
func (s *BillSync) Flush() {
	s.mu.Lock()
	keys := make([]ItemKey, 0, len(s.lines))
	for key, st := range s.lines {
		if st.timer != nil && st.timer.Stop() {
			keys = append(keys, key)
		}
	}
	s.mu.Unlock()

	for _, key := range keys {
		s.flush(key)
	}
}

// flush reconciles one key against the server. The PATCH is skipped
// entirely when the pending value has drifted back to the confirmed
// one; a response that lost the race to a newer edit never touches
// the pending value.
func (s *BillSync) flush(key ItemKey) {
	s.mu.Lock()
	st, ok := s.lines[key]
	if !ok {
		s.mu.Unlock()
		return
	}
	if st.pendingQty == st.confirmed.Quantity && st.pendingDisc == st.confirmed.DiscountPercent {
		s.mu.Unlock()
		return
	}
	st.seq++
	seq := st.seq
	qty := st.pendingQty
	disc := st.pendingDisc
	s.mu.Unlock()

	item, err := s.client.UpdateBillItem(context.Background(), key.ProductID, key.Color, &qty, &disc)

	s.mu.Lock()
	if cur, live := s.lines[key]; !live || cur != st {
		// The line vanished or the shadow was rebuilt by a refresh;
		// nothing left for this response to reconcile.
		s.mu.Unlock()
		return
	}
	if st.seq != seq {
		// A newer edit landed while this PATCH was in flight. The
		// server did apply the sent value, so record it as confirmed,
		// but leave the pending edit for its own armed timer.
		if err == nil {
			st.confirmed = *item
		}
		s.mu.Unlock()
		return
	}
	if err != nil {
		// Roll just this key back to the last confirmed value.
		st.pendingQty = st.confirmed.Quantity
		st.pendingDisc = st.confirmed.DiscountPercent
		s.mu.Unlock()
		if s.onError != nil {
			s.onError(key, err)
		}
		s.notifyChange()
		return
	}
	st.confirmed = *item
	st.pendingQty = item.Quantity
	st.pendingDisc = item.DiscountPercent
	s.mu.Unlock()
	s.notifyChange()
}

// RemoveItem deletes a line. On failure the authoritative bill is
// refetched so the shadow cannot keep lying.
func (s *BillSync) RemoveItem(ctx context.Context, key ItemKey) error {
	err := s.client.RemoveBillItem(ctx, key.ProductID, key.Color)
	if err != nil {
		if s.onError != nil {
			s.onError(key, err)
		}
		if refreshErr := s.Refresh(ctx); refreshErr != nil && s.onError != nil {
			s.onError(key, refreshErr)
		}
		return err
	}

	s.mu.Lock()
	if st, ok := s.lines[key]; ok {
		if st.timer != nil {
			st.timer.Stop()
		}
		delete(s.lines, key)
		for i, k := range s.order {
			if k == key {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()
	s.notifyChange()
	return nil
}

// Clear empties the bill; on failure the shadow is refetched.
func (s *BillSync) Clear(ctx context.Context) error {
	if err := s.client.ClearBill(ctx); err != nil {
		s.Refresh(ctx)
		return err
	}

	s.mu.Lock()
	s.resetLocked(nil)
	s.mu.Unlock()
	s.notifyChange()
	return nil
}

// Close drops all armed timers.
func (s *BillSync) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.lines {
		if st.timer != nil {
			st.timer.Stop()
		}
	}
}

func (s *BillSync) notifyChange() {
	if s.onChange != nil {
		s.onChange()
	}
}

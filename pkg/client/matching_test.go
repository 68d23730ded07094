package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matchServer holds one incoming order and recomputes the match
// percentage the way the real service does: from the lines alone, the
// override never folded in.
type matchServer struct {
	mu    sync.Mutex
	order IncomingOrder
}

func (s *matchServer) percentage() float64 {
	totalQty, totalMatched := 0, 0
	for _, line := range s.order.ProductDetails {
		totalQty += line.Quantity
		totalMatched += line.MatchedQuantity
	}
	if totalQty == 0 {
		return 0
	}
	return float64(totalMatched) / float64(totalQty) * 100
}

func (s *matchServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/incoming-orders/", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
		case http.MethodPatch:
			var patch incomingOrderPatch
			json.NewDecoder(r.Body).Decode(&patch)
			if patch.ProductDetails != nil {
				// Server-side clamp: the API never trusts the client.
				for i := range patch.ProductDetails {
					patch.ProductDetails[i].MatchedQuantity = clampMatched(
						patch.ProductDetails[i].MatchedQuantity, patch.ProductDetails[i].Quantity)
				}
				s.order.ProductDetails = patch.ProductDetails
			}
			if patch.MatchOverride != nil {
				s.order.MatchOverride = patch.MatchOverride
			}
		default:
			writeEnvelope(w, http.StatusMethodNotAllowed, nil, "method not allowed")
			return
		}
		writeEnvelope(w, http.StatusOK, incomingOrderResponse{Order: s.order, MatchPercentage: s.percentage()}, "")
	})
	return mux
}

func newTestMatchEditor(t *testing.T) (*MatchEditor, *matchServer) {
	srv := &matchServer{order: IncomingOrder{
		ID:       3,
		VendorID: 12,
		Status:   "pending",
		ProductDetails: []IncomingOrderLine{
			{ProductID: 1, ProductName: "Oxford Shirt", Quantity: 10, MatchedQuantity: 0},
			{ProductID: 2, ProductName: "Chinos", Quantity: 4, MatchedQuantity: 2},
		},
	}}
	ts := httptest.NewServer(srv.handler())
	t.Cleanup(ts.Close)

	editor, err := NewMatchEditor(context.Background(), New(ts.URL), 3)
	require.NoError(t, err)
	return editor, srv
}

func TestMatchEditorClampsEdits(t *testing.T) {
	editor, _ := newTestMatchEditor(t)

	require.NoError(t, editor.SetMatchedQuantity(0, 25))
	assert.Equal(t, 10, editor.Lines()[0].MatchedQuantity, "over quantity clamps down")

	require.NoError(t, editor.SetMatchedQuantity(0, -3))
	assert.Equal(t, 0, editor.Lines()[0].MatchedQuantity, "negative clamps to zero")

	assert.ErrorIs(t, editor.SetMatchedQuantity(5, 1), ErrLineOutOfRange)
}

func TestMatchEditorFillMatchedLine(t *testing.T) {
	editor, _ := newTestMatchEditor(t)

	require.NoError(t, editor.FillMatched(0))
	assert.Equal(t, 10, editor.Lines()[0].MatchedQuantity)
	assert.InDelta(t, 12.0/14*100, editor.MatchPercentage(), 0.001)
	assert.ErrorIs(t, editor.FillMatched(9), ErrLineOutOfRange)
}

func TestMatchEditorFillAllMatched(t *testing.T) {
	editor, srv := newTestMatchEditor(t)

	editor.FillAllMatched()
	assert.Equal(t, 10, editor.Lines()[0].MatchedQuantity)
	assert.Equal(t, 4, editor.Lines()[1].MatchedQuantity)
	assert.InDelta(t, 100.0, editor.MatchPercentage(), 0.001)

	require.NoError(t, editor.Save(context.Background()))
	assert.InDelta(t, 100.0, editor.MatchPercentage(), 0.001)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, 10, srv.order.ProductDetails[0].MatchedQuantity)
	assert.Equal(t, 4, srv.order.ProductDetails[1].MatchedQuantity)
}

func TestMatchEditorLocalPercentage(t *testing.T) {
	editor, _ := newTestMatchEditor(t)

	// 2 of 14 matched initially.
	assert.InDelta(t, 2.0/14*100, editor.MatchPercentage(), 0.001)

	require.NoError(t, editor.SetMatchedQuantity(0, 5))
	assert.InDelta(t, 7.0/14*100, editor.MatchPercentage(), 0.001)
}

func TestMatchEditorOverride(t *testing.T) {
	editor, _ := newTestMatchEditor(t)

	assert.ErrorIs(t, editor.SetOverride(context.Background(), 120), ErrOverrideRange)
	assert.ErrorIs(t, editor.SetOverride(context.Background(), -1), ErrOverrideRange)

	require.NoError(t, editor.SetOverride(context.Background(), 85))
	assert.InDelta(t, 85.0, editor.DisplayPercentage(), 0.001)
	require.NotNil(t, editor.Override())
	assert.InDelta(t, 85.0, *editor.Override(), 0.001)

	// The badge shows the override, but the computed percentage keeps
	// tracking the lines underneath.
	assert.InDelta(t, 2.0/14*100, editor.MatchPercentage(), 0.001)
	editor.FillAllMatched()
	assert.InDelta(t, 100.0, editor.MatchPercentage(), 0.001)
	assert.InDelta(t, 85.0, editor.DisplayPercentage(), 0.001)
}

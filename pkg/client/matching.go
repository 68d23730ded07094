package client

import (
	"context"
	"errors"
)

var (
	ErrLineOutOfRange = errors.New("line index out of range")
	ErrOverrideRange  = errors.New("match override must be between 0 and 100")
)

// MatchEditor edits the matched quantities of one incoming vendor
// order. Line edits apply locally with clamping and are saved as a
// whole; the server recomputes the match percentage on every save.
type MatchEditor struct {
	client *Client
	order  *IncomingOrder
	pct    float64
}

func NewMatchEditor(ctx context.Context, client *Client, orderID uint) (*MatchEditor, error) {
	order, pct, err := client.GetIncomingOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &MatchEditor{client: client, order: order, pct: pct}, nil
}

func (e *MatchEditor) Order() *IncomingOrder { return e.order }

// MatchPercentage is always the value computed from the current lines;
// an override never leaks into it.
func (e *MatchEditor) MatchPercentage() float64 { return e.pct }

// Override returns the pinned display percentage, or nil.
func (e *MatchEditor) Override() *float64 { return e.order.MatchOverride }

// DisplayPercentage is what the badge shows: the override when one is
// pinned, otherwise the computed percentage.
func (e *MatchEditor) DisplayPercentage() float64 {
	if e.order.MatchOverride != nil {
		return *e.order.MatchOverride
	}
	return e.pct
}

// Lines returns the editable lines, local edits included.
func (e *MatchEditor) Lines() []IncomingOrderLine {
	lines := make([]IncomingOrderLine, len(e.order.ProductDetails))
	copy(lines, e.order.ProductDetails)
	return lines
}

// clampMatched keeps a matched quantity inside [0, quantity].
func clampMatched(matched, quantity int) int {
	if matched < 0 {
		return 0
	}
	if matched > quantity {
		return quantity
	}
	return matched
}

// SetMatchedQuantity edits one line locally. Values outside
// [0, quantity] are clamped, never rejected.
func (e *MatchEditor) SetMatchedQuantity(index, matched int) error {
	if index < 0 || index >= len(e.order.ProductDetails) {
		return ErrLineOutOfRange
	}
	line := &e.order.ProductDetails[index]
	line.MatchedQuantity = clampMatched(matched, line.Quantity)
	e.pct = e.localPercentage()
	return nil
}

// FillMatched marks one line as fully received.
func (e *MatchEditor) FillMatched(index int) error {
	if index < 0 || index >= len(e.order.ProductDetails) {
		return ErrLineOutOfRange
	}
	line := &e.order.ProductDetails[index]
	line.MatchedQuantity = line.Quantity
	e.pct = e.localPercentage()
	return nil
}

// FillAllMatched marks every line as fully received.
func (e *MatchEditor) FillAllMatched() {
	for i := range e.order.ProductDetails {
		e.order.ProductDetails[i].MatchedQuantity = e.order.ProductDetails[i].Quantity
	}
	e.pct = e.localPercentage()
}

// localPercentage mirrors the server computation so the UI updates
// without waiting for the save round-trip.
func (e *MatchEditor) localPercentage() float64 {
	totalQty, totalMatched := 0, 0
	for _, line := range e.order.ProductDetails {
		totalQty += line.Quantity
		totalMatched += line.MatchedQuantity
	}
	if totalQty == 0 {
		return 0
	}
	return float64(totalMatched) / float64(totalQty) * 100
}

// Save sends the edited lines and adopts the server's authoritative
// copy, percentage included.
func (e *MatchEditor) Save(ctx context.Context) error {
	order, err := e.client.PatchIncomingOrderLines(ctx, e.order.ID, e.order.ProductDetails)
	if err != nil {
		return err
	}
	e.order = order
	e.pct = e.localPercentage()
	return nil
}

// SetOverride pins the displayed percentage independently of the
// computed value. The computed value is untouched underneath.
func (e *MatchEditor) SetOverride(ctx context.Context, override float64) error {
	if override < 0 || override > 100 {
		return ErrOverrideRange
	}
	order, err := e.client.SetIncomingOrderOverride(ctx, e.order.ID, override)
	if err != nil {
		return err
	}
	e.order = order
	e.pct = e.localPercentage()
	return nil
}

// AddComment appends a note to the order's discussion thread.
func (e *MatchEditor) AddComment(ctx context.Context, text string) (*Comment, error) {
	return e.client.AddIncomingOrderComment(ctx, e.order.ID, text)
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []OrderStatus{
	OrderPending, OrderConfirmed, OrderProcessing,
	OrderShipped, OrderDelivered, OrderCancelled, OrderReturned,
}

func TestCanTransition_AllowedEdges(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
	}{
		{OrderPending, OrderConfirmed},
		{OrderPending, OrderCancelled},
		{OrderConfirmed, OrderProcessing},
		{OrderConfirmed, OrderCancelled},
		{OrderProcessing, OrderShipped},
		{OrderProcessing, OrderCancelled},
		{OrderShipped, OrderDelivered},
		{OrderShipped, OrderReturned},
	}
	for _, tc := range cases {
		assert.True(t, CanTransition(tc.from, tc.to), "%s → %s should be allowed", tc.from, tc.to)
	}
}

func TestCanTransition_NoOpAlwaysAllowed(t *testing.T) {
	for _, s := range allStatuses {
		assert.True(t, CanTransition(s, s), "%s → %s (no-op) should be allowed", s, s)
	}
}

func TestCanTransition_ExhaustivePairs(t *testing.T) {
	// For every (current, requested) pair, CanTransition is true iff requested
	// is in the successor set of current or the pair is a no-op.
	for _, from := range allStatuses {
		successors := NextStatuses(from)
		inFlow := func(to OrderStatus) bool {
			for _, n := range successors {
				if n == to {
					return true
				}
			}
			return false
		}
		for _, to := range allStatuses {
			want := from == to || inFlow(to)
			assert.Equal(t, want, CanTransition(from, to), "%s → %s", from, to)
		}
	}
}

func TestCanTransition_TerminalStatusesHaveNoExits(t *testing.T) {
	for _, terminal := range []OrderStatus{OrderDelivered, OrderCancelled, OrderReturned} {
		assert.True(t, terminal.IsTerminal())
		for _, to := range allStatuses {
			if to == terminal {
				continue
			}
			assert.False(t, CanTransition(terminal, to), "%s → %s should be rejected", terminal, to)
		}
	}
}

func TestCanTransition_SkippingStagesRejected(t *testing.T) {
	assert.False(t, CanTransition(OrderPending, OrderShipped))
	assert.False(t, CanTransition(OrderPending, OrderDelivered))
	assert.False(t, CanTransition(OrderConfirmed, OrderDelivered))
	// Backward moves are not in the graph either
	assert.False(t, CanTransition(OrderShipped, OrderConfirmed))
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range allStatuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, OrderStatus("SHIPPED_MAYBE").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestPaymentStatusValid(t *testing.T) {
	for _, p := range []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded} {
		assert.True(t, p.Valid())
	}
	assert.False(t, PaymentStatus("CHARGEBACK").Valid())
}

func TestNextStatusesReturnsCopy(t *testing.T) {
	next := NextStatuses(OrderPending)
	next[0] = OrderDelivered
	// Mutating the returned slice must not corrupt the flow table.
	assert.True(t, CanTransition(OrderPending, OrderConfirmed))
	assert.False(t, CanTransition(OrderPending, OrderDelivered))
}

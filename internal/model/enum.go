package model

import "strconv"

// OrderType buy, sell
type OrderType uint8

const (
	_order_type_beg OrderType = iota
	OrderTypeBuy
	OrderTypeSell
	_order_type_end
)

func (t OrderType) IsAvailable() bool {
	return t > _order_type_beg && t < _order_type_end
}

func (t OrderType) String() string {
	switch t {
	case OrderTypeBuy:
		return "buy"
	case OrderTypeSell:
		return "sell"
	default:
		return "unknown"
	}
}

func (t OrderType) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

// OrderStatus open, closed, cancelled, completed
//
// completed marks a closed order that has already been reported to its owner.
type OrderStatus uint8

const (
	_order_status_beg OrderStatus = iota
	OrderStatusOpen
	OrderStatusClosed
	OrderStatusCancelled
	OrderStatusCompleted
	_order_status_end
)

func (s OrderStatus) IsAvailable() bool {
	return s > _order_status_beg && s < _order_status_end
}

// IsTerminal reports whether the order carries a completion date.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusClosed, OrderStatusCancelled, OrderStatusCompleted:
		return true
	default:
		return false
	}
}

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusOpen:
		return "open"
	case OrderStatusClosed:
		return "closed"
	case OrderStatusCancelled:
		return "cancelled"
	case OrderStatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(s.String())), nil
}

// HoldingState available, selling
type HoldingState uint8

const (
	_holding_state_beg HoldingState = iota
	HoldingStateAvailable
	HoldingStateSelling
	_holding_state_end
)

func (s HoldingState) IsAvailable() bool {
	return s > _holding_state_beg && s < _holding_state_end
}

func (s HoldingState) String() string {
	switch s {
	case HoldingStateAvailable:
		return "available"
	case HoldingStateSelling:
		return "selling"
	default:
		return "unknown"
	}
}

func (s HoldingState) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(s.String())), nil
}

package models

import "strings"

// OrderStatus is the fixed order-lifecycle vocabulary. There is no
// transition graph: the shopkeeper moves an order to any status from the
// admin panel.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// Statuses in display order.
var Statuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// ParseStatus normalises s into a known status. ok is false when s is not
// in the vocabulary.
func ParseStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Statuses {
		if st == known {
			return st, true
		}
	}
	return "", false
}

// StatusInfo is the badge presentation for a status.
type StatusInfo struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Text  string `json:"text"`
}

var statusInfo = map[OrderStatus]StatusInfo{
	StatusPending:   {Label: "Pending", Icon: "clock", Text: "Order mila hai, confirm hone wala hai ⏳"},
	StatusConfirmed: {Label: "Confirmed", Icon: "check-circle", Text: "Order confirm ho gaya ✅"},
	StatusShipped:   {Label: "Shipped", Icon: "truck", Text: "Order delivery ke liye nikal gaya 🚚"},
	StatusDelivered: {Label: "Delivered", Icon: "check-circle", Text: "Order deliver ho gaya 🎉"},
	StatusCancelled: {Label: "Cancelled", Icon: "x-circle", Text: "Order cancel ho gaya ❌"},
}

// Info returns the badge presentation for s. Unknown or empty statuses
// render as pending.
func (s OrderStatus) Info() StatusInfo {
	if info, ok := statusInfo[OrderStatus(strings.ToLower(string(s)))]; ok {
		return info
	}
	return statusInfo[StatusPending]
}

package client

import "encoding/json"

// PaymentTerm is one payment instruction attached to an order.
// Both fields may be absent in the remote payload.
type PaymentTerm struct {
	BankName  string `json:"bankName"`
	AccountNo string `json:"accountNo"`
}

// OrderDetail is the normalized, fully-fetched representation of one order.
// PaymentTermList is always a slice, never nil: consumers (table rendering,
// CSV export) may range over it without a nil check.
type OrderDetail struct {
	ID              string        `json:"id"`
	Amount          float64       `json:"amount"`
	Status          string        `json:"status,omitempty"`
	Side            string        `json:"side,omitempty"`
	Currency        string        `json:"currency,omitempty"`
	PaymentTermList []PaymentTerm `json:"paymentTermList"`
}

// RawOrderDetail mirrors the wire shape of the per-order detail endpoint.
// PaymentTermList is kept raw because the remote is known to omit it or emit
// it with a non-array type.
type RawOrderDetail struct {
	ID              string          `json:"id"`
	Amount          float64         `json:"amount"`
	Status          string          `json:"status"`
	Side            string          `json:"side"`
	Currency        string          `json:"currency"`
	PaymentTermList json.RawMessage `json:"paymentTermList"`
}

// Normalize converts the raw payload into an OrderDetail, coercing a missing
// or malformed paymentTermList to an empty slice. This is the only place that
// normalization happens; callers receive records already holding the
// invariant. Normalizing an already-normal record is a no-op.
func (r RawOrderDetail) Normalize() OrderDetail {
	return OrderDetail{
		ID:              r.ID,
		Amount:          r.Amount,
		Status:          r.Status,
		Side:            r.Side,
		Currency:        r.Currency,
		PaymentTermList: normalizeTerms(r.PaymentTermList),
	}
}

// normalizeTerms decodes a raw paymentTermList value, returning an empty
// slice when the field is absent, null, or not a JSON array.
func normalizeTerms(raw json.RawMessage) []PaymentTerm {
	if len(raw) == 0 {
		return []PaymentTerm{}
	}

	var terms []PaymentTerm
	if err := json.Unmarshal(raw, &terms); err != nil || terms == nil {
		return []PaymentTerm{}
	}
	return terms
}

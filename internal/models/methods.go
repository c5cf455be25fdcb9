package models

import "encoding/json"

// PaymentMethodType identifies a funding source
type PaymentMethodType string

const (
	MethodCard           PaymentMethodType = "card"
	MethodCertificate    PaymentMethodType = "certificate"
	MethodSeasonPass     PaymentMethodType = "season_ticket_pass"
	MethodLoyaltyBalance PaymentMethodType = "loyalty_balance"
)

// PaymentMethodRequest describes one funding source applied to a purchase.
// Fixed-value methods (certificate, loyalty balance) carry the amount they
// contribute; the card method covers whatever remains.
type PaymentMethodRequest struct {
	Type          PaymentMethodType `json:"type"`
	CertificateID string            `json:"certificate_id,omitempty"`
	PassID        string            `json:"pass_id,omitempty"`
	AmountMinor   int64             `json:"amount_minor,omitempty"`
}

// PaymentMethodsRequest is the method-or-composite payload sent to the
// payment endpoints: a single funding source serializes as that method
// alone, several as an ordered composite. The order is advisory; the
// server decides the actual settlement order.
type PaymentMethodsRequest struct {
	Methods []PaymentMethodRequest
}

// Single wraps one method into a request
func Single(m PaymentMethodRequest) PaymentMethodsRequest {
	return PaymentMethodsRequest{Methods: []PaymentMethodRequest{m}}
}

// IsComposite reports whether more than one funding source is applied
func (r PaymentMethodsRequest) IsComposite() bool {
	return len(r.Methods) > 1
}

// FixedTotal returns the summed contribution of all fixed-value methods
func (r PaymentMethodsRequest) FixedTotal() int64 {
	var total int64
	for _, m := range r.Methods {
		total += m.AmountMinor
	}
	return total
}

func (r PaymentMethodsRequest) MarshalJSON() ([]byte, error) {
	if len(r.Methods) == 1 {
		return json.Marshal(r.Methods[0])
	}
	return json.Marshal(struct {
		Methods []PaymentMethodRequest `json:"methods"`
	}{Methods: r.Methods})
}

func (r *PaymentMethodsRequest) UnmarshalJSON(data []byte) error {
	var composite struct {
		Methods []PaymentMethodRequest `json:"methods"`
	}
	if err := json.Unmarshal(data, &composite); err == nil && len(composite.Methods) > 0 {
		r.Methods = composite.Methods
		return nil
	}
	var single PaymentMethodRequest
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	r.Methods = []PaymentMethodRequest{single}
	return nil
}

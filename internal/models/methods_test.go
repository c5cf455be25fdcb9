package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethodsRequest_SingleSerializesBare(t *testing.T) {
	req := Single(PaymentMethodRequest{Type: MethodCard})

	data, err := json.Marshal(req)

	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"card"}`, string(data))
}

func TestPaymentMethodsRequest_CompositeSerializesAsList(t *testing.T) {
	req := PaymentMethodsRequest{Methods: []PaymentMethodRequest{
		{Type: MethodCertificate, CertificateID: "cert-1", AmountMinor: 300000},
		{Type: MethodLoyaltyBalance, AmountMinor: 50000},
		{Type: MethodCard},
	}}

	data, err := json.Marshal(req)

	require.NoError(t, err)
	assert.JSONEq(t, `{"methods":[
		{"type":"certificate","certificate_id":"cert-1","amount_minor":300000},
		{"type":"loyalty_balance","amount_minor":50000},
		{"type":"card"}
	]}`, string(data))
}

func TestPaymentMethodsRequest_UnmarshalAcceptsBothShapes(t *testing.T) {
	var single PaymentMethodsRequest
	require.NoError(t, json.Unmarshal([]byte(`{"type":"season_ticket_pass","pass_id":"pass-1"}`), &single))
	require.Len(t, single.Methods, 1)
	assert.Equal(t, MethodSeasonPass, single.Methods[0].Type)
	assert.Equal(t, "pass-1", single.Methods[0].PassID)

	var composite PaymentMethodsRequest
	require.NoError(t, json.Unmarshal([]byte(`{"methods":[{"type":"loyalty_balance","amount_minor":100},{"type":"card"}]}`), &composite))
	require.Len(t, composite.Methods, 2)
	assert.True(t, composite.IsComposite())
}

func TestPaymentMethodsRequest_FixedTotal(t *testing.T) {
	req := PaymentMethodsRequest{Methods: []PaymentMethodRequest{
		{Type: MethodCertificate, AmountMinor: 300000},
		{Type: MethodLoyaltyBalance, AmountMinor: 50000},
		{Type: MethodCard},
	}}
	assert.Equal(t, int64(350000), req.FixedTotal())
}

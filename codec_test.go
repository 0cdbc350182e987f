package stax

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_Camelize(t *testing.T) {
	tests := []struct {
		in       interface{}
		expected interface{}
	}{
		{
			Params{"per_page": 10, "address_state": "FL"},
			Params{"perPage": 10, "addressState": "FL"},
		},
		{
			Params{
				"meta": Params{
					"line_items": []Params{
						{"unit_price": 5},
					},
				},
			},
			Params{
				"meta": Params{
					"lineItems": []Params{
						{"unitPrice": 5},
					},
				},
			},
		},
		{
			map[string]interface{}{
				"cc_emails": []interface{}{"a@example.com"},
				"funding": []interface{}{
					map[string]interface{}{"account_id": "1"},
				},
			},
			map[string]interface{}{
				"ccEmails": []interface{}{"a@example.com"},
				"funding": []interface{}{
					map[string]interface{}{"accountId": "1"},
				},
			},
		},
		{"customer_id", "customer_id"},
		{nil, nil},
	}

	for i, test := range tests {
		if diff := cmp.Diff(test.expected, Camelize(test.in)); diff != "" {
			t.Errorf("tests[%d] - unexpected result (-want +got):\n%s", i, diff)
		}
	}
}

func Test_Snakeize(t *testing.T) {
	tests := []struct {
		in       interface{}
		expected interface{}
	}{
		{
			map[string]interface{}{
				"nextPageUrl": "https://example.com",
				"total_paid":  "10",
			},
			map[string]interface{}{
				"next_page_url": "https://example.com",
				"total_paid":    "10",
			},
		},
		{
			[]interface{}{
				map[string]interface{}{
					"paymentMethod": map[string]interface{}{"cardLastFour": "4242"},
				},
			},
			[]interface{}{
				map[string]interface{}{
					"payment_method": map[string]interface{}{"card_last_four": "4242"},
				},
			},
		},
		{
			Object{"lastFour": "1111"},
			Object{"last_four": "1111"},
		},
	}

	for i, test := range tests {
		if diff := cmp.Diff(test.expected, Snakeize(test.in)); diff != "" {
			t.Errorf("tests[%d] - unexpected result (-want +got):\n%s", i, diff)
		}
	}
}

func Test_CodecRoundTrip(t *testing.T) {
	p := Params{
		"address_state":  "FL",
		"customer_id":    "abc",
		"allow_invoices": true,
		"meta": Params{
			"transaction_initiation_type": "CIT",
		},
	}

	if diff := cmp.Diff(p, p.Camelize().Snakeize()); diff != "" {
		t.Errorf("round trip changed params (-want +got):\n%s", diff)
	}

	// Snakeizing snake cased keys is a no-op.
	if diff := cmp.Diff(p, p.Snakeize()); diff != "" {
		t.Errorf("snakeize changed snake cased params (-want +got):\n%s", diff)
	}

	if _, ok := p["addressState"]; ok {
		t.Error("camelize modified the original params")
	}
}

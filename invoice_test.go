package stax

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
)

func Test_InvoicePay(t *testing.T) {
	c, api := newTestAPI(t, respond(http.StatusOK, Object{
		"id":         "inv_1",
		"status":     "SENT",
		"total":      100,
		"totalPaid":  "40.00",
		"balanceDue": 60,
		"meta": Object{
			"isPartialPaymentEnabled": true,
			"memo":                    " Thanks ",
			"lineItems": []Object{
				{"id": 1, "item": "Widget", "quantity": 2, "price": 50},
			},
		},
		"customer": Object{"firstname": "John", "lastname": "Smith"},
		"childTransactions": []Object{
			{"id": "txn_1", "type": "charge", "success": true, "amount": 4000},
		},
	}))

	ctx := context.Background()

	inv := &Invoice{ID: "inv_1"}

	key := NewIdempotencyKey()

	err := inv.Pay(ctx, c, Params{
		"payment_method_id": "pm_1",
		"apply_balance":     40,
		"idempotency_id":    key,
	})

	if err != nil {
		t.Fatal(err)
	}

	req := api.last()

	if req.Method != http.MethodPost || req.Path != "/invoice/inv_1/pay" {
		t.Errorf("unexpected request %s %s\n", req.Method, req.Path)
	}

	if req.Body["idempotency_id"] != key {
		t.Errorf("unexpected idempotency_id %v\n", req.Body["idempotency_id"])
	}

	if !inv.PartiallyPaid() || inv.Paid() {
		t.Errorf("expected partially paid invoice, status=%s\n", inv.Status)
	}

	if !inv.BalanceDueInDollars().Equal(decimal.NewFromInt(60)) {
		t.Errorf("unexpected balance due %s\n", inv.BalanceDueInDollars())
	}

	if !inv.PartialPaymentEnabled() {
		t.Error("expected partial payments to be enabled")
	}

	if inv.CustomerName() != "John Smith" || inv.Memo() != "Thanks" {
		t.Errorf("unexpected customer name %q or memo %q\n", inv.CustomerName(), inv.Memo())
	}

	if items := inv.LineItems(); len(items) != 1 || items[0].ID != "1" || items[0].Item != "Widget" {
		t.Errorf("unexpected line items %+v\n", items)
	}

	if len(inv.ChildTransactions) != 1 || !inv.ChildTransactions[0].IsCharge() {
		t.Fatalf("unexpected child transactions %+v\n", inv.ChildTransactions)
	}

	if amount, ok := inv.ChildTransactions[0].AmountInDollars(); !ok || !amount.Equal(decimal.NewFromInt(40)) {
		t.Errorf("unexpected child transaction amount %s\n", amount)
	}
}

func Test_InvoicePayValidation(t *testing.T) {
	c, api := newTestAPI(t, respond(http.StatusOK, Object{}))

	ctx := context.Background()

	tests := []struct {
		inv    *Invoice
		params Params
		field  string
	}{
		{&Invoice{}, Params{"payment_method_id": "pm_1"}, "id"},
		{&Invoice{ID: "inv_1"}, Params{}, "payment_method_id"},
		{&Invoice{ID: "inv_1"}, Params{"payment_method_id": "pm_1", "apply_balance": -1}, "apply_balance"},
		{&Invoice{ID: "inv_1"}, Params{"payment_method_id": "pm_1", "email_receipt": "yes"}, "email_receipt"},
		{&Invoice{ID: "inv_1"}, Params{"payment_method_id": "pm_1", "meta": []string{}}, "meta"},
	}

	for i, test := range tests {
		err := test.inv.Pay(ctx, c, test.params)

		var staxerr *Error

		if !errors.As(err, &staxerr) {
			t.Fatalf("tests[%d] - expected *Error, got %T\n", i, err)
		}

		if staxerr.Field != test.field {
			t.Errorf("tests[%d] - unexpected field, expected=%q, got=%q\n", i, test.field, staxerr.Field)
		}
	}

	if api.count() != 0 {
		t.Errorf("expected no requests, got %d\n", api.count())
	}
}

func Test_CreateInvoice(t *testing.T) {
	c, api := newTestAPI(t, respond(http.StatusOK, Object{
		"id":     "inv_2",
		"status": "DRAFT",
		"total":  10,
		"meta":   []interface{}{},
	}))

	ctx := context.Background()

	tests := []struct {
		params Params
		field  string
	}{
		{Params{"total": 10, "meta": Params{"subtotal": 10}}, "customer_id"},
		{Params{"customer_id": "cus_1", "total": 0, "meta": Params{"subtotal": 10}}, "total"},
		{Params{"customer_id": "cus_1", "total": 10, "meta": "memo"}, "meta"},
		{Params{"customer_id": "cus_1", "total": 10, "meta": Params{"line_items": "one"}}, "meta.line_items"},
		{Params{"customer_id": "cus_1", "total": 10, "meta": Params{"subtotal": 10}, "status": "OPEN"}, "status"},
	}

	for i, test := range tests {
		_, err := CreateInvoice(ctx, c, test.params)

		var staxerr *Error

		if !errors.As(err, &staxerr) {
			t.Fatalf("tests[%d] - expected *Error, got %T\n", i, err)
		}

		if staxerr.Field != test.field {
			t.Errorf("tests[%d] - unexpected field, expected=%q, got=%q\n", i, test.field, staxerr.Field)
		}
	}

	if api.count() != 0 {
		t.Fatalf("expected no requests, got %d\n", api.count())
	}

	inv, err := CreateInvoice(ctx, c, Params{
		"customer_id": "cus_1",
		"total":       10,
		"meta": Params{
			"subtotal":   10,
			"line_items": []Params{{"item": "Demo", "quantity": 1, "price": 10}},
		},
	})

	if err != nil {
		t.Fatal(err)
	}

	if !inv.Draft() || len(inv.LineItems()) != 0 {
		t.Errorf("unexpected invoice %+v\n", inv)
	}

	if !inv.TotalInDollars().Equal(decimal.NewFromInt(10)) {
		t.Errorf("unexpected total %s\n", inv.TotalInDollars())
	}
}

func Test_InvoiceSend(t *testing.T) {
	c, api := newTestAPI(t, respond(http.StatusOK, Object{"id": "inv_1", "status": "SENT"}))

	ctx := context.Background()

	inv := &Invoice{ID: "inv_1", Status: InvoiceDraft}

	if err := inv.SendEmail(ctx, c, Params{"cc_emails": []string{"a@example.com"}}); err != nil {
		t.Fatal(err)
	}

	if !inv.Sent() {
		t.Errorf("expected invoice to be sent, got status %s\n", inv.Status)
	}

	if req := api.last(); req.Path != "/invoice/inv_1/send/email" {
		t.Errorf("unexpected path %q\n", req.Path)
	}

	if err := inv.SendSMS(ctx, c, Params{}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v\n", err)
	}

	if err := inv.SendSMS(ctx, c, Params{"phone": "5555550100"}); err != nil {
		t.Fatal(err)
	}

	if req := api.last(); req.Path != "/invoice/inv_1/send/sms" {
		t.Errorf("unexpected path %q\n", req.Path)
	}
}

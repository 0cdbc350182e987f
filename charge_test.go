package stax

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func Test_Charge(t *testing.T) {
	c, api := newTestAPI(t, respond(http.StatusOK, Object{
		"id":      "txn_1",
		"type":    "charge",
		"success": true,
		"total":   10,
	}))

	ctx := context.Background()

	valid := func() Params {
		return Params{
			"payment_method_id": "pm_1",
			"total":             10,
			"meta": Params{
				"transaction_initiation_type": "CIT",
				"transaction_schedule_type":   "unscheduled",
			},
		}
	}

	txn, err := Charge(ctx, c, valid())

	if err != nil {
		t.Fatal(err)
	}

	if !txn.IsCharge() || !txn.Successful() {
		t.Errorf("unexpected transaction %+v\n", txn)
	}

	req := api.last()

	if req.Path != "/charge" {
		t.Errorf("unexpected path %q\n", req.Path)
	}

	meta, _ := req.Body["meta"].(map[string]interface{})

	if meta["transaction_initiation_type"] != "CIT" {
		t.Errorf("unexpected meta %v\n", req.Body["meta"])
	}

	tests := []struct {
		modify func(Params)
		field  string
	}{
		{func(p Params) { delete(p, "payment_method_id") }, "payment_method_id"},
		{func(p Params) { p["total"] = 0 }, "total"},
		{func(p Params) { delete(p, "meta") }, "meta"},
		{func(p Params) { p["pre_auth"] = 2 }, "pre_auth"},
		{func(p Params) { p["pre_auth"] = "true" }, "pre_auth"},
		{func(p Params) { p["currency"] = "EUR" }, "currency"},
		{func(p Params) { p["funding"] = []Params{{"amount": 10}} }, "funding"},
		{func(p Params) { p["meta"].(Params)["transaction_initiation_type"] = "XIT" }, "meta.transaction_initiation_type"},
		{func(p Params) { p["meta"].(Params)["transaction_schedule_type"] = "often" }, "meta.transaction_schedule_type"},
	}

	n := api.count()

	for i, test := range tests {
		p := valid()
		test.modify(p)

		_, err := Charge(ctx, c, p)

		var staxerr *Error

		if !errors.As(err, &staxerr) {
			t.Fatalf("tests[%d] - expected *Error, got %T\n", i, err)
		}

		if staxerr.Field != test.field {
			t.Errorf("tests[%d] - unexpected field, expected=%q, got=%q\n", i, test.field, staxerr.Field)
		}
	}

	if api.count() != n {
		t.Errorf("expected no requests for invalid params, got %d\n", api.count()-n)
	}

	for i, preAuth := range []interface{}{true, false, 0, 1} {
		p := valid()
		p["pre_auth"] = preAuth

		if _, err := Charge(ctx, c, p); err != nil {
			t.Errorf("tests[%d] - unexpected error for pre_auth=%v: %s\n", i, preAuth, err)
		}
	}
}

func Test_Verify(t *testing.T) {
	c, api := newTestAPI(t, respond(http.StatusOK, Object{"id": "txn_2", "type": "authorization", "preAuth": 1}))

	params := Params{
		"payment_method_id": "pm_1",
		"total":             1,
		"meta":              Params{"reference": "verify"},
	}

	txn, err := Verify(context.Background(), c, params)

	if err != nil {
		t.Fatal(err)
	}

	if !txn.IsAuthorization() || !bool(txn.PreAuth) {
		t.Errorf("unexpected transaction %+v\n", txn)
	}

	req := api.last()

	if req.Path != "/verify" || req.Body["pre_auth"] != true {
		t.Errorf("unexpected request %s %v\n", req.Path, req.Body)
	}

	if _, ok := params["pre_auth"]; ok {
		t.Error("verify modified the given params")
	}
}

func Test_Credit(t *testing.T) {
	c, api := newTestAPI(t, respond(http.StatusOK, Object{"id": "txn_3", "type": "refund"}))

	if _, err := Credit(context.Background(), c, Params{"payment_method_id": "pm_1", "total": 5}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for missing meta, got %v\n", err)
	}

	txn, err := Credit(context.Background(), c, Params{"payment_method_id": "pm_1", "total": 5, "meta": Params{"reference": "credit"}})

	if err != nil {
		t.Fatal(err)
	}

	if !txn.IsRefund() {
		t.Errorf("unexpected transaction type %q\n", txn.Type)
	}

	if req := api.last(); req.Path != "/creditRequest" {
		t.Errorf("unexpected path %q\n", req.Path)
	}
}

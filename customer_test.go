package stax

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_CreateCustomer(t *testing.T) {
	c, api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Object{
			"id":         "cus_1",
			"email":      "a@b.com",
			"ccEmails":   []string{},
			"createdAt":  "2023-01-02 03:04:05",
			"deleted_at": nil,
		})
	})

	ctx := context.Background()

	cu, err := CreateCustomer(ctx, c, Params{"email": "a@b.com"})

	if err != nil {
		t.Fatal(err)
	}

	if cu.ID != "cus_1" || cu.Email != "a@b.com" {
		t.Errorf("unexpected customer %+v\n", cu)
	}

	if !cu.CreatedAt.Valid() || cu.Deleted() {
		t.Errorf("unexpected timestamps, created=%s, deleted=%v\n", cu.CreatedAt, cu.Deleted())
	}

	req := api.last()

	if req.Method != http.MethodPost || req.Path != "/customer" {
		t.Errorf("unexpected request %s %s\n", req.Method, req.Path)
	}

	tests := []struct {
		params Params
		field  string
	}{
		{Params{"notes": "no identity"}, "firstname"},
		{Params{"firstname": "John", "email": "nope"}, "email"},
		{Params{"firstname": "John", "cc_emails": []string{"a@b.com", "nope"}}, "cc_emails"},
		{Params{"firstname": "John", "address_state": "Florida"}, "address_state"},
		{Params{"firstname": "John", "address_country": "US"}, "address_country"},
		{Params{"firstname": "John", "phone": "call me"}, "phone"},
	}

	n := api.count()

	for i, test := range tests {
		_, err := CreateCustomer(ctx, c, test.params)

		var staxerr *Error

		if !errors.As(err, &staxerr) {
			t.Fatalf("tests[%d] - expected *Error, got %T\n", i, err)
		}

		if staxerr.StatusCode != 0 {
			t.Errorf("tests[%d] - expected validation error, got status %d\n", i, staxerr.StatusCode)
		}

		if staxerr.Field != test.field {
			t.Errorf("tests[%d] - unexpected field, expected=%q, got=%q\n", i, test.field, staxerr.Field)
		}
	}

	if api.count() != n {
		t.Errorf("expected no requests for invalid params, got %d\n", api.count()-n)
	}
}

func Test_RetrieveCustomerNotFound(t *testing.T) {
	c, _ := newTestAPI(t, respond(http.StatusNotFound, Object{"message": "No query results"}))

	_, err := RetrieveCustomer(context.Background(), c, "missing")

	var staxerr *Error

	if !errors.As(err, &staxerr) {
		t.Fatalf("expected *Error, got %T\n", err)
	}

	if staxerr.StatusCode != http.StatusNotFound {
		t.Errorf("unexpected status, expected=%d, got=%d\n", http.StatusNotFound, staxerr.StatusCode)
	}

	if staxerr.Message != "Customer not found: missing" {
		t.Errorf("unexpected message %q\n", staxerr.Message)
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("expected error to be ErrNotFound")
	}
}

func Test_RetrieveCustomerRequiresID(t *testing.T) {
	c, api := newTestAPI(t, respond(http.StatusOK, Object{}))

	if _, err := RetrieveCustomer(context.Background(), c, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("unexpected error, expected=%v, got=%v\n", ErrValidation, err)
	}

	if api.count() != 0 {
		t.Errorf("expected no requests, got %d\n", api.count())
	}
}

func Test_ListCustomers(t *testing.T) {
	c, api := newTestAPI(t, respond(http.StatusOK, Object{
		"total":       25,
		"perPage":     2,
		"currentPage": 1,
		"lastPage":    13,
		"nextPageUrl": "https://apiprod.fattlabs.com/customer?page=2",
		"data": []Object{
			{"id": "1", "firstname": "John", "lastname": "Smith"},
			{"id": "2", "company": "Acme", "addressZip": 32801},
		},
	}))

	cc, p, err := ListCustomers(context.Background(), c, Params{"per_page": 2, "keywords": []string{"smith"}})

	if err != nil {
		t.Fatal(err)
	}

	if len(cc) != 2 {
		t.Fatalf("unexpected number of customers, expected=%d, got=%d\n", 2, len(cc))
	}

	if p.Total != 25 || p.LastPage != 13 || !p.HasNext() {
		t.Errorf("unexpected pagination %+v\n", p)
	}

	if cc[0].FullName() != "John Smith" {
		t.Errorf("unexpected full name %q\n", cc[0].FullName())
	}

	if cc[1].AddressZip != "32801" {
		t.Errorf("unexpected zip %q\n", cc[1].AddressZip)
	}

	q := api.last().Query

	if q.Get("perPage") != "2" || q.Get("keywords[0]") != "smith" {
		t.Errorf("unexpected query %v\n", q)
	}

	if _, _, err := ListCustomers(context.Background(), c, Params{"per_page": 0}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for per_page, got %v\n", err)
	}
}

func Test_CustomerUpdateAndDelete(t *testing.T) {
	c, api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			writeJSON(w, http.StatusOK, Object{"id": "cus_1", "firstname": "Jane"})
		case http.MethodDelete:
			writeJSON(w, http.StatusOK, Object{"id": "cus_1", "deletedAt": "2024-02-01 00:00:00"})
		}
	})

	ctx := context.Background()

	cu := &Customer{ID: "cus_1", Firstname: "John"}

	if err := cu.Update(ctx, c, Params{"firstname": "Jane"}); err != nil {
		t.Fatal(err)
	}

	if cu.Firstname != "Jane" {
		t.Errorf("unexpected firstname %q\n", cu.Firstname)
	}

	if req := api.last(); req.Path != "/customer/cus_1" || req.Body["firstname"] != "Jane" {
		t.Errorf("unexpected request %s %v\n", req.Path, req.Body)
	}

	if err := cu.Delete(ctx, c); err != nil {
		t.Fatal(err)
	}

	if !cu.Deleted() {
		t.Error("expected customer to be deleted")
	}
}

func Test_CustomerAddress(t *testing.T) {
	tests := []struct {
		cu        Customer
		missing   []string
		formatted string
	}{
		{
			Customer{
				Address1:     "1 Main St",
				AddressCity:  "Orlando",
				AddressState: "FL",
				AddressZip:   "32801",
			},
			[]string{},
			"1 Main St, Orlando, FL 32801",
		},
		{
			Customer{
				AddressCity:    "Orlando",
				AddressCountry: "USA",
			},
			[]string{"address_1", "address_state", "address_zip"},
			"Orlando, USA",
		},
		{
			Customer{},
			[]string{"address_1", "address_city", "address_state", "address_zip"},
			"",
		},
	}

	for i, test := range tests {
		if diff := cmp.Diff(test.missing, test.cu.MissingAddressComponents()); diff != "" {
			t.Errorf("tests[%d] - unexpected missing components (-want +got):\n%s", i, diff)
		}

		if test.cu.HasCompleteAddress() != (len(test.missing) == 0) {
			t.Errorf("tests[%d] - unexpected HasCompleteAddress %v\n", i, test.cu.HasCompleteAddress())
		}

		if s := test.cu.FormattedAddress(); s != test.formatted {
			t.Errorf("tests[%d] - unexpected address, expected=%q, got=%q\n", i, test.formatted, s)
		}
	}
}

func Test_RetrieveCustomerUnknownTimestamp(t *testing.T) {
	c, _ := newTestAPI(t, respond(http.StatusOK, Object{
		"id":        "cus_1",
		"firstname": "John",
		"createdAt": "Mon Jan 2",
	}))

	cu, err := RetrieveCustomer(context.Background(), c, "cus_1")

	if err != nil {
		t.Fatal(err)
	}

	if cu.CreatedAt.Valid() || cu.Firstname != "John" {
		t.Errorf("unexpected customer %+v\n", cu)
	}

	if cu.Get("created_at") != "Mon Jan 2" {
		t.Errorf("unexpected raw created_at %v\n", cu.Get("created_at"))
	}
}

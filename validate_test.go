package stax

import (
	"errors"
	"testing"
)

func Test_Check(t *testing.T) {
	tests := []struct {
		params  Params
		rules   []rule
		field   string
		message string
	}{
		{
			Params{"firstname": "John"},
			[]rule{required("firstname")},
			"",
			"",
		},
		{
			Params{"firstname": "  "},
			[]rule{required("firstname")},
			"firstname",
			"The firstname field is required",
		},
		{
			Params{},
			[]rule{requireOne("firstname", "lastname", "company", "email")},
			"firstname",
			"At least one of firstname, lastname, company, email is required",
		},
		{
			Params{"email": "not-an-email"},
			[]rule{email("email")},
			"email",
			"The email must be a valid email address",
		},
		{
			Params{"cc_emails": []string{"a@example.com", "nope"}},
			[]rule{emails("cc_emails")},
			"cc_emails",
			"The cc_emails.1 must be a valid email address",
		},
		{
			Params{"phone": "+1 (555) 010-9999"},
			[]rule{phone("phone")},
			"",
			"",
		},
		{
			Params{"phone": "12ab"},
			[]rule{phone("phone")},
			"phone",
			"The phone must be a valid phone number",
		},
		{
			Params{"address_state": "Florida"},
			[]rule{length("address_state", 2)},
			"address_state",
			"The address_state must be 2 characters",
		},
		{
			Params{"card_exp": 1230},
			[]rule{digits("card_exp", 4, 4)},
			"",
			"",
		},
		{
			Params{"card_exp": "12/30"},
			[]rule{digits("card_exp", 4, 4)},
			"card_exp",
			"The card_exp must be 4 digits",
		},
		{
			Params{"total": "0"},
			[]rule{positive("total")},
			"total",
			"The total must be greater than 0",
		},
		{
			Params{"total": "ten"},
			[]rule{positive("total")},
			"total",
			"The total must be a number",
		},
		{
			Params{"per_page": 500},
			[]rule{between("per_page", 1, 200)},
			"per_page",
			"The per_page must be between 1 and 200",
		},
		{
			Params{"method": "cash"},
			[]rule{oneOf("method", "card", "bank")},
			"method",
			"The method must be one of: card, bank",
		},
		{
			Params{"meta": "memo"},
			[]rule{object("meta")},
			"meta",
			"The meta field must be an object",
		},
		{
			Params{"meta": Params{"transaction_schedule_type": "sometimes"}},
			[]rule{oneOf("meta.transaction_schedule_type", "scheduled", "unscheduled")},
			"meta.transaction_schedule_type",
			"The meta.transaction_schedule_type must be one of: scheduled, unscheduled",
		},
		{
			Params{"person_name": "Cher"},
			[]rule{fullName("person_name")},
			"person_name",
			"The person_name must contain a first and last name",
		},
		{
			Params{"funding": []Params{{"account_id": "a", "amount": 1}, {"amount": 2}}},
			[]rule{funding("funding")},
			"funding",
			"The funding.1.account_id field is required",
		},
		{
			Params{"method": "bank"},
			[]rule{when(equals("method", "card"), required("card_number"))},
			"",
			"",
		},
		{
			Params{"method": "card"},
			[]rule{when(equals("method", "card"), required("card_number"))},
			"card_number",
			"The card_number field is required",
		},
		{
			Params{"is_default": 1},
			[]rule{boolean("is_default")},
			"is_default",
			"The is_default field must be true or false",
		},
		{
			Params{"pre_auth": 1},
			[]rule{flag("pre_auth")},
			"",
			"",
		},
		{
			Params{"pre_auth": false},
			[]rule{flag("pre_auth")},
			"",
			"",
		},
		{
			Params{"pre_auth": 2},
			[]rule{flag("pre_auth")},
			"pre_auth",
			"The pre_auth field must be true, false, 0, or 1",
		},
		{
			Params{"pre_auth": "1"},
			[]rule{flag("pre_auth")},
			"pre_auth",
			"The pre_auth field must be true, false, 0, or 1",
		},
		{
			Params{"au_last_event_start_at": "2023-01-01 09:30:00"},
			[]rule{datetime("au_last_event_start_at")},
			"",
			"",
		},
		{
			Params{"au_last_event_start_at": "2023-01-01"},
			[]rule{datetime("au_last_event_start_at")},
			"au_last_event_start_at",
			"The au_last_event_start_at must be in the format YYYY-MM-DD HH:MM:SS",
		},
		{
			Params{"url": "https://example.com/hook"},
			[]rule{link("url")},
			"",
			"",
		},
	}

	for i, test := range tests {
		err := check(test.params, test.rules...)

		if test.message == "" {
			if err != nil {
				t.Errorf("tests[%d] - unexpected error %s\n", i, err)
			}
			continue
		}

		var staxerr *Error

		if !errors.As(err, &staxerr) {
			t.Fatalf("tests[%d] - expected *Error, got %T\n", i, err)
		}

		if !errors.Is(err, ErrValidation) {
			t.Errorf("tests[%d] - expected error to be ErrValidation\n", i)
		}

		if staxerr.Field != test.field {
			t.Errorf("tests[%d] - unexpected field, expected=%q, got=%q\n", i, test.field, staxerr.Field)
		}

		if staxerr.Message != test.message {
			t.Errorf("tests[%d] - unexpected message, expected=%q, got=%q\n", i, test.message, staxerr.Message)
		}
	}
}

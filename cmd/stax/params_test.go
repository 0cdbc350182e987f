package main

import (
	"testing"

	"github.com/andrewpillar/stax"
	"github.com/google/go-cmp/cmp"
)

func Test_parseParams(t *testing.T) {
	tests := []struct {
		pairs    []string
		expected stax.Params
	}{
		{
			[]string{"email=a@example.com", "per_page=25"},
			stax.Params{"email": "a@example.com", "per_page": int64(25)},
		},
		{
			[]string{"meta.memo=thanks", "meta.subtotal=10.50", "pre_auth=true"},
			stax.Params{
				"meta": stax.Params{
					"memo":     "thanks",
					"subtotal": 10.5,
				},
				"pre_auth": true,
			},
		},
		{
			[]string{"keywords[]=john", "keywords[]=smith", "card_exp=0427", "note=a=b"},
			stax.Params{
				"keywords": []interface{}{"john", "smith"},
				"card_exp": "0427",
				"note":     "a=b",
			},
		},
		{
			[]string{"firstname=Nan", "total=0.5"},
			stax.Params{"firstname": "Nan", "total": 0.5},
		},
		{
			[]string{"perPage=2", "meta.lineItems[]=widget", "paymentMethodId=pm_1"},
			stax.Params{
				"per_page":          int64(2),
				"meta":              stax.Params{"line_items": []interface{}{"widget"}},
				"payment_method_id": "pm_1",
			},
		},
	}

	for i, test := range tests {
		p, err := parseParams(test.pairs)

		if err != nil {
			t.Fatalf("tests[%d] - %s\n", i, err)
		}

		if diff := cmp.Diff(test.expected, p); diff != "" {
			t.Errorf("tests[%d] - unexpected params (-want +got):\n%s", i, diff)
		}
	}

	for i, pairs := range [][]string{{"email"}, {"=x"}, {"meta=x", "meta.memo=y"}} {
		if _, err := parseParams(pairs); err == nil {
			t.Errorf("tests[%d] - expected error for %v, got nil\n", i, pairs)
		}
	}
}

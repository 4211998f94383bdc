package configschema

import (
	"strings"
	"testing"
)

const validCatalog = `{
    "categories": [
        {"name": "Chupetes", "emoji": "🍼", "query": "/s?k=chupetes", "check_titles": true, "weekly_limit": true},
        {"name": "Toallitas", "query": "/s?k=toallitas", "class": "higiene"}
    ],
    "priority_brands": ["dodot"],
    "repeat_exempt": ["Toallitas"],
    "class_cooldown_hours": {"higiene": 6},
    "global_cooldown_hours": 3
}`

func TestValidateCatalogPayloadValid(t *testing.T) {
	t.Parallel()

	if err := ValidateCatalogPayload([]byte(validCatalog)); err != nil {
		t.Fatalf("valid catalog rejected: %v", err)
	}
}

func TestValidateCatalogPayloadRejectsBadDocuments(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		payload string
		wantErr string
	}{
		{
			name:    "empty payload",
			payload: "   ",
			wantErr: "empty",
		},
		{
			name:    "trailing content",
			payload: `{"categories": [{"name": "A", "query": "/s?k=a"}]} {}`,
			wantErr: "trailing",
		},
		{
			name:    "missing categories",
			payload: `{"priority_brands": ["dodot"]}`,
			wantErr: "schema validation",
		},
		{
			name:    "empty categories",
			payload: `{"categories": []}`,
			wantErr: "schema validation",
		},
		{
			name:    "category without query",
			payload: `{"categories": [{"name": "Chupetes"}]}`,
			wantErr: "schema validation",
		},
		{
			name:    "unknown top-level property",
			payload: `{"categories": [{"name": "A", "query": "/s?k=a"}], "extra": true}`,
			wantErr: "schema validation",
		},
		{
			name:    "zero class cooldown",
			payload: `{"categories": [{"name": "A", "query": "/s?k=a", "class": "c"}], "class_cooldown_hours": {"c": 0}}`,
			wantErr: "schema validation",
		},
		{
			name:    "duplicate category names",
			payload: `{"categories": [{"name": "A", "query": "/s?k=a"}, {"name": "A", "query": "/s?k=b"}]}`,
			wantErr: "duplicate category name",
		},
		{
			name:    "blank category name",
			payload: `{"categories": [{"name": "  ", "query": "/s?k=a"}]}`,
			wantErr: "must not be blank",
		},
		{
			name:    "cooldown for unused class",
			payload: `{"categories": [{"name": "A", "query": "/s?k=a"}], "class_cooldown_hours": {"ghost": 6}}`,
			wantErr: "unused class",
		},
		{
			name:    "exempt references unknown category",
			payload: `{"categories": [{"name": "A", "query": "/s?k=a"}], "repeat_exempt": ["B"]}`,
			wantErr: "unknown category",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateCatalogPayload([]byte(tc.payload))
			if err == nil {
				t.Fatalf("expected an error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

package routeopt

import (
	"errors"
	"reflect"
	"testing"
)

func TestExtractRoute(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{
			name:  "bare json",
			reply: `{"optimizedRoute": ["B", "A"]}`,
			want:  []string{"B", "A"},
		},
		{
			name:  "json wrapped in prose",
			reply: "Here is the optimized route:\n```json\n{\"optimizedRoute\": [\"B\", \"A\"]}\n```\nSafe travels!",
			want:  []string{"B", "A"},
		},
		{
			name:  "route field fallback",
			reply: `{"route": ["C", "A", "B"]}`,
			want:  []string{"C", "A", "B"},
		},
		{
			name:  "optimizedRoute wins over route",
			reply: `{"optimizedRoute": ["B", "A"], "route": ["A", "B"]}`,
			want:  []string{"B", "A"},
		},
		{
			name:  "empty list is still present",
			reply: `{"optimizedRoute": []}`,
			want:  []string{},
		},
	}
	for _, tt := range tests {
		got, err := extractRoute(tt.reply)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestExtractRouteErrors(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		wantErr error
	}{
		{"no braces", "I could not produce a route, sorry.", errNoJSON},
		{"empty reply", "", errNoJSON},
		{"invalid json", "{not json at all}", errBadJSON},
		{"wrong field type", `{"optimizedRoute": "B, A"}`, errBadJSON},
		{"no route field", `{"result": ["B", "A"]}`, errNoRouteField},
		{"empty object", `{}`, errNoRouteField},
	}
	for _, tt := range tests {
		_, err := extractRoute(tt.reply)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: error = %v, want %v", tt.name, err, tt.wantErr)
		}
	}
}

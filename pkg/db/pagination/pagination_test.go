package pagination

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Pagination
		want Pagination
	}{
		{"zero value gets defaults", Pagination{}, Pagination{Limit: DefaultLimit, Offset: 0}},
		{"negative values reset", Pagination{Limit: -1, Offset: -10}, Pagination{Limit: DefaultLimit, Offset: 0}},
		{"limit is capped", Pagination{Limit: 10000, Offset: 20}, Pagination{Limit: MaxLimit, Offset: 20}},
		{"valid page passes through", Pagination{Limit: 25, Offset: 50}, Pagination{Limit: 25, Offset: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Fatalf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

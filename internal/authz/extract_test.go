package authz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type typedCall struct {
	principal string
}

func (c typedCall) PrincipalID() string {
	return c.principal
}

func TestPrincipalFromArgs(t *testing.T) {
	cases := []struct {
		name string
		args []any
		want string
		ok   bool
	}{
		{"bare identifier", []any{"u1"}, "u1", true},
		{"userId field", []any{map[string]any{"userId": "u1"}}, "u1", true},
		{"nested data.userId", []any{map[string]any{"data": map[string]any{"userId": "u1"}}}, "u1", true},
		{"typed carrier", []any{typedCall{principal: "u9"}}, "u9", true},
		{"extra trailing args ignored", []any{"u1", map[string]any{"sku": "A-100"}}, "u1", true},
		{"empty object", []any{map[string]any{}}, "", false},
		{"empty list", nil, "", false},
		{"empty identifier", []any{""}, "", false},
		{"wrong field type", []any{map[string]any{"userId": 42}}, "", false},
		{"identifier not first", []any{map[string]any{"sku": "A-100"}, "u1"}, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := PrincipalFromArgs(tc.args)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

package shared_test

import (
	"rental/shared"
	"rental/shared/constant"
	"rental/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		input    string
		expected *bool
	}{
		{input: "", expected: nil},
		{input: "true", expected: boolPtr(true)},
		{input: "1", expected: boolPtr(true)},
		{input: "F", expected: boolPtr(false)},
		{input: "owner", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "no rows", total: 0, limit: 10, want: 1},
		{name: "zero limit", total: 25, limit: 0, want: 1},
		{name: "exact", total: 20, limit: 10, want: 2},
		{name: "remainder", total: 21, limit: 10, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type unitPatch struct {
		Name     string  `db:"name"`
		Capacity int     `db:"capacity"`
		Address  *string `db:"address"`
		Internal string
	}

	t.Run("skips zero and untagged fields", func(t *testing.T) {
		result := shared.TransformFields(unitPatch{Name: "Villa Mawar", Internal: "x"}, "admin-1")

		assert.Equal(t, "Villa Mawar", result["name"])
		assert.NotContains(t, result, "capacity")
		assert.NotContains(t, result, "address")
		assert.Equal(t, "admin-1", result[constant.FieldModifiedBy])
		assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
		assert.Len(t, result, 3)
	})

	t.Run("keeps pointers to empty values", func(t *testing.T) {
		empty := ""
		result := shared.TransformFields(unitPatch{Address: &empty}, "admin-1")

		assert.Equal(t, &empty, result["address"])
	})
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("unit-1", "id", "units")

	require.Len(t, group.Filters, 1)
	assert.Equal(t, dto.Filter{
		Field:    "id",
		Value:    "unit-1",
		Operator: dto.FilterOperatorEq,
		Table:    "units",
	}, group.Filters[0])

	where, args := group.GetWhereClause()
	assert.Equal(t, "(units.id = :id)", where)
	assert.Equal(t, "unit-1", args["id"])
}

func boolPtr(b bool) *bool {
	return &b
}

func TestLike(t *testing.T) {
	filter := shared.Like("users", "email", "mona")

	assert.Equal(t, dto.FilterOperatorLike, filter.Operator)
	assert.Equal(t, "users", filter.Table)
	assert.Equal(t, "email", filter.Field)
	assert.Equal(t, "mona", filter.Value)
}

package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lakeside/shared/constant"
	"lakeside/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  *bool
	}{
		{name: "true", value: "true", want: ptr(true)},
		{name: "false", value: "false", want: ptr(false)},
		{name: "empty", value: "", want: nil},
		{name: "invalid", value: "yes please", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertStringToBool(tt.value)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				assert.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
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
		{name: "exact division", total: 20, limit: 10, want: 2},
		{name: "with remainder", total: 21, limit: 10, want: 3},
		{name: "zero total", total: 0, limit: 10, want: 1},
		{name: "zero limit", total: 10, limit: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type update struct {
		Name     string `db:"name"`
		Capacity int    `db:"capacity"`
		Skipped  string
	}

	fields := TransformFields(update{Name: "Lakeview Suite", Capacity: 3}, "admin")

	assert.Equal(t, "Lakeview Suite", fields["name"])
	assert.Equal(t, 3, fields["capacity"])
	assert.Contains(t, fields, constant.FieldModifiedAt)
	assert.Equal(t, "admin", fields[constant.FieldModifiedBy])
	assert.NotContains(t, fields, "Skipped")
}

func TestFilterByID(t *testing.T) {
	group := FilterByID("abc", "id", "rooms")

	where, args := group.GetWhereClause()
	assert.Equal(t, "(rooms.id = :id)", where)
	assert.Equal(t, "abc", args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "rooms:list:all", BuildCacheKey("rooms", "list", "all"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 2, Limit: 10, SortBy: "created_at", SortDir: "desc"}
	group := FilterByID("abc", "id", "rooms")

	first := BuildCacheKeyWithQuery("rooms", params, group)
	second := BuildCacheKeyWithQuery("rooms", params, group)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "rooms:2:10:created_at:desc")
}

func ptr[T any](v T) *T {
	return &v
}

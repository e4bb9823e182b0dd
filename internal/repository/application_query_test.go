package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/insurance-service/internal/domain"
)

func TestNormalizeFilter(t *testing.T) {
	cases := []struct {
		name   string
		in     ApplicationFilter
		limit  int
		offset int
		sort   domain.SortOrder
	}{
		{"defaults", ApplicationFilter{}, 50, 0, domain.SortDesc},
		{"caps limit", ApplicationFilter{Limit: 1000}, 200, 0, domain.SortDesc},
		{"negative offset", ApplicationFilter{Limit: 10, Offset: -5}, 10, 0, domain.SortDesc},
		{"ascending kept", ApplicationFilter{Sort: domain.SortAsc}, 50, 0, domain.SortAsc},
		{"unknown sort", ApplicationFilter{Sort: "sideways"}, 50, 0, domain.SortDesc},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeFilter(tc.in)
			assert.Equal(t, tc.limit, got.Limit)
			assert.Equal(t, tc.offset, got.Offset)
			assert.Equal(t, tc.sort, got.Sort)
		})
	}
}

func TestApplicationSearchSQL(t *testing.T) {
	id := "4b1f7c3e-8d2a-4a51-9f7e-2d6c0b9a1e55"
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	query, args, err := applicationSearchSQL(ApplicationFilter{
		InsuranceID: &id,
		CreatedFrom: &from,
		CreatedTo:   &to,
		Sort:        domain.SortAsc,
		Limit:       20,
		Offset:      40,
	})
	require.NoError(t, err)

	assert.Contains(t, query, `FROM "applications"`)
	assert.Contains(t, query, `"insurance_id" = $1`)
	assert.Contains(t, query, `"created_at" >= $2`)
	assert.Contains(t, query, `"created_at" < $3`)
	assert.Contains(t, query, `ORDER BY "created_at" ASC, "id" ASC`)
	assert.Contains(t, query, "LIMIT")
	assert.Contains(t, query, "OFFSET")
	require.GreaterOrEqual(t, len(args), 3)
	assert.Equal(t, id, args[0])
	assert.Equal(t, from, args[1])
	assert.Equal(t, to, args[2])
}

func TestApplicationSearchSQLDefaultsToNewestFirst(t *testing.T) {
	query, _, err := applicationSearchSQL(ApplicationFilter{})
	require.NoError(t, err)

	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, `ORDER BY "created_at" DESC, "id" DESC`)
}

func TestApplicationCountSQL(t *testing.T) {
	id := "4b1f7c3e-8d2a-4a51-9f7e-2d6c0b9a1e55"
	query, args, err := applicationCountSQL(ApplicationFilter{InsuranceID: &id})
	require.NoError(t, err)

	assert.Contains(t, query, "COUNT(*)")
	assert.Contains(t, query, `"insurance_id" = $1`)
	assert.NotContains(t, query, "LIMIT")
	assert.Equal(t, []any{id}, args)
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("4b1f7c3e-8d2a-4a51-9f7e-2d6c0b9a1e55"))
	assert.False(t, validID("42"))
	assert.False(t, validID(""))
}

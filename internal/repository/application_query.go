package repository

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/spec-kit/insurance-service/internal/domain"
)

const defaultSearchLimit = 50

// MaxSearchLimit caps the rows returned by one search.
const MaxSearchLimit = 200

var pgDialect = goqu.Dialect("postgres")

// NormalizeFilter clamps paging and sort values to supported ranges.
func NormalizeFilter(filter ApplicationFilter) ApplicationFilter {
	if filter.Limit <= 0 {
		filter.Limit = defaultSearchLimit
	}
	if filter.Limit > MaxSearchLimit {
		filter.Limit = MaxSearchLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Sort != domain.SortAsc {
		filter.Sort = domain.SortDesc
	}
	return filter
}

func applicationConditions(filter ApplicationFilter) []exp.Expression {
	conds := []exp.Expression{}
	if filter.InsuranceID != nil {
		conds = append(conds, goqu.C("insurance_id").Eq(*filter.InsuranceID))
	}
	if filter.CreatedFrom != nil {
		conds = append(conds, goqu.C("created_at").Gte(*filter.CreatedFrom))
	}
	if filter.CreatedTo != nil {
		conds = append(conds, goqu.C("created_at").Lt(*filter.CreatedTo))
	}
	return conds
}

func applicationSearchSQL(filter ApplicationFilter) (string, []any, error) {
	filter = NormalizeFilter(filter)

	var order []exp.OrderedExpression
	if filter.Sort == domain.SortAsc {
		order = []exp.OrderedExpression{goqu.C("created_at").Asc(), goqu.C("id").Asc()}
	} else {
		order = []exp.OrderedExpression{goqu.C("created_at").Desc(), goqu.C("id").Desc()}
	}

	return pgDialect.From("applications").
		Select("id", "insurance_id", "selected_date", "phone", "created_at").
		Where(applicationConditions(filter)...).
		Order(order...).
		Limit(uint(filter.Limit)).
		Offset(uint(filter.Offset)).
		Prepared(true).
		ToSQL()
}

func applicationCountSQL(filter ApplicationFilter) (string, []any, error) {
	return pgDialect.From("applications").
		Select(goqu.COUNT(goqu.Star())).
		Where(applicationConditions(filter)...).
		Prepared(true).
		ToSQL()
}

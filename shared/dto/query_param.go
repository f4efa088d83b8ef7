package dto

import (
	"net/http"
	"rental/shared/constant"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest populates QueryParams from the HTTP request.
// sort_by is honoured only when it names one of sortable, given as "table.column"; the bare
// column name is accepted too and the qualified form is kept so joined queries stay unambiguous.
// A recognised sort without a direction sorts ascending.
// With defaultRequest set, missing page and limit fall back to the defaults.
//
//	q := &dto.QueryParams{}
//	q.FromRequest(req, true, "units.name", "units.created_at")
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool, sortable ...string) {
	queryParams := r.URL.Query()

	if page, ok := positive(queryParams.Get(constant.RequestParamPage)); ok {
		q.Page = page
	}

	if limit, ok := positive(queryParams.Get(constant.RequestParamLimit)); ok {
		q.Limit = min(limit, constant.MaxValueLimit)
	}

	if column, ok := matchSortable(queryParams.Get(constant.RequestParamSortBy), sortable); ok {
		q.SortBy = column
		q.SortDir = SortDirAsc
	}

	if sortDir := strings.ToUpper(queryParams.Get(constant.RequestParamSortDir)); q.SortBy != "" && (sortDir == SortDirAsc || sortDir == SortDirDesc) {
		q.SortDir = sortDir
	}

	if !defaultRequest {
		return
	}

	q.Page = max(q.Page, constant.DefaultValuePage)

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

func positive(raw string) (int, bool) {
	value, err := strconv.Atoi(raw)

	return value, err == nil && value > 0
}

func matchSortable(sortBy string, sortable []string) (string, bool) {
	if sortBy == "" {
		return "", false
	}

	for _, column := range sortable {
		if column == sortBy {
			return column, true
		}

		if _, name, ok := strings.Cut(column, "."); ok && name == sortBy {
			return column, true
		}
	}

	return "", false
}

// Package query translates client-supplied list parameters into the filter,
// projection, sort and pagination directives understood by the storage layer.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/devcampr/devcampr/internal/pkg/apperrors"
)

const (
	// DefaultPage is the page served when the client does not ask for one.
	DefaultPage = 1
	// DefaultLimit is the page size served when the client does not ask for one.
	DefaultLimit = 25
)

// Comparison operators accepted in bracketed query keys, e.g.
// ?averageCost[lte]=1000 or ?careers[in]=Business. Anything else is rejected
// instead of being passed through to the database.
var allowedOperators = map[string]string{
	"gt":  "$gt",
	"gte": "$gte",
	"lt":  "$lt",
	"lte": "$lte",
	"in":  "$in",
}

// Reserved keys are extracted before filter construction.
var reservedKeys = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

// ListQuery holds the parsed directives for a list endpoint.
type ListQuery struct {
	Filter bson.M
	Select []string
	Sort   bson.D
	Page   int
	Limit  int
}

// Parse translates a flat query-string mapping into a ListQuery.
// Remaining keys become equality filters unless they carry a bracketed
// comparison operator; values are coerced to bool/number where they parse
// as such, since the query string carries everything as text.
func Parse(values url.Values) (*ListQuery, error) {
	q := &ListQuery{
		Filter: bson.M{},
		Sort:   bson.D{{Key: "createdAt", Value: -1}},
		Page:   DefaultPage,
		Limit:  DefaultLimit,
	}

	for key, vals := range values {
		if len(vals) == 0 || reservedKeys[key] {
			continue
		}
		raw := vals[0]

		field, op, bracketed := splitOperatorKey(key)
		if !bracketed {
			q.Filter[key] = coerceValue(raw)
			continue
		}

		mongoOp, ok := allowedOperators[op]
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported query operator %q on field %q", op, field))
		}

		var value interface{}
		if op == "in" {
			parts := strings.Split(raw, ",")
			in := make([]interface{}, 0, len(parts))
			for _, p := range parts {
				in = append(in, coerceValue(p))
			}
			value = in
		} else {
			value = coerceValue(raw)
		}

		// Merge so ?tuition[gte]=1&tuition[lte]=9 lands on one field expression.
		if existing, ok := q.Filter[field].(bson.M); ok {
			existing[mongoOp] = value
		} else {
			q.Filter[field] = bson.M{mongoOp: value}
		}
	}

	if sel := values.Get("select"); sel != "" {
		q.Select = splitAndTrim(sel)
	}

	if sort := values.Get("sort"); sort != "" {
		q.Sort = parseSort(sort)
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page >= 1 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit >= 1 {
		q.Limit = limit
	}

	return q, nil
}

// splitOperatorKey splits "averageCost[lte]" into ("averageCost", "lte", true).
func splitOperatorKey(key string) (field, op string, ok bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, "", false
	}
	return key[:open], key[open+1 : len(key)-1], true
}

// parseSort turns "name,-averageCost" into a sort document, minus prefix
// meaning descending.
func parseSort(sort string) bson.D {
	doc := bson.D{}
	for _, field := range splitAndTrim(sort) {
		if strings.HasPrefix(field, "-") {
			doc = append(doc, bson.E{Key: strings.TrimPrefix(field, "-"), Value: -1})
		} else {
			doc = append(doc, bson.E{Key: field, Value: 1})
		}
	}
	if len(doc) == 0 {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	return doc
}

// Projection builds the field-selection document for the storage layer.
func (q *ListQuery) Projection() bson.D {
	doc := bson.D{}
	for _, field := range q.Select {
		doc = append(doc, bson.E{Key: field, Value: 1})
	}
	return doc
}

// Skip returns the number of records to skip for the requested page.
func (q *ListQuery) Skip() int64 {
	return int64(q.Page-1) * int64(q.Limit)
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// coerceValue maps query-string text onto the type the filter most likely
// targets: bool, integer, float, then plain string.
func coerceValue(s string) interface{} {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

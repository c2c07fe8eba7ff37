// Package controllers holds the HTTP handlers. Controllers bind and
// validate input, call the services, and shape the uniform response
// envelope; every failure goes through the central error translator.
package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/devcampr/devcampr/internal/app/models/dto"
	"github.com/devcampr/devcampr/internal/middleware"
	"github.com/devcampr/devcampr/internal/pkg/query"
)

// parseListQuery translates the request's query string into list directives.
// A translation failure answers the request; the caller just returns.
func parseListQuery(c *gin.Context) (*query.ListQuery, bool) {
	q, err := query.Parse(c.Request.URL.Query())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return nil, false
	}
	return q, true
}

// listResponse assembles the list envelope with count and pagination.
func listResponse(data interface{}, count int64, q *query.ListQuery) dto.APIResponse {
	return dto.List(data, int(count), query.Paginate(count, q.Page, q.Limit))
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Fawaz-asif/Email-spam-detector/internal/usecase"
)

// PaginationParams holds pagination parameters
type PaginationParams struct {
	Limit  int
	Offset int
}

// Default pagination values, shared with the usecase
const (
	DefaultLimit  = usecase.DefaultHistoryLimit
	MaxLimit      = usecase.MaxHistoryLimit
	DefaultOffset = 0
)

// ParsePagination reads limit and offset from the query string. Missing or
// malformed values fall back to the defaults before the usecase bounds apply.
func ParsePagination(c *gin.Context) *PaginationParams {
	limit, offset := usecase.ClampPage(
		queryInt(c, "limit", DefaultLimit),
		queryInt(c, "offset", DefaultOffset),
	)
	return &PaginationParams{Limit: limit, Offset: offset}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw, ok := c.GetQuery(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

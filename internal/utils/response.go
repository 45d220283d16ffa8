// Package utils holds the JSON envelope every pantry admin endpoint replies with.
package utils

import "github.com/gofiber/fiber/v2"

const (
	statusSuccess = "success"
	// statusError marks a rejected request, statusFail a server side problem.
	statusError = "error"
	statusFail  = "fail"
)

// StandardResponse is the envelope around every response body.
type StandardResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Meta    any    `json:"meta,omitempty"`
}

// PaginationMeta describes one page of a food item listing.
type PaginationMeta struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// RuleViolation is the data of a response rejecting a category or food item
// name. Rule is the machine readable name of the broken rule, such as
// "too_short" or "duplicate_name".
type RuleViolation struct {
	Rule string `json:"rule"`
}

func send(c *fiber.Ctx, code int, body StandardResponse) error {
	body.Code = code
	if body.Status == "" {
		body.Status = statusError
		if code >= fiber.StatusInternalServerError {
			body.Status = statusFail
		}
	}
	return c.Status(code).JSON(body)
}

func SuccessResponse(c *fiber.Ctx, code int, message string, data any) error {
	return send(c, code, StandardResponse{Status: statusSuccess, Message: message, Data: data})
}

// SuccessWithMetaResponse adds listing metadata, e.g. PaginationMeta.
func SuccessWithMetaResponse(c *fiber.Ctx, code int, message string, data, meta any) error {
	return send(c, code, StandardResponse{Status: statusSuccess, Message: message, Data: data, Meta: meta})
}

func ErrorResponse(c *fiber.Ctx, code int, message string) error {
	return send(c, code, StandardResponse{Message: message})
}

// RuleErrorResponse rejects a name, telling the client which rule it broke.
func RuleErrorResponse(c *fiber.Ctx, code int, message, rule string) error {
	return send(c, code, StandardResponse{Message: message, Data: RuleViolation{Rule: rule}})
}

// CreatePaginationMeta always reports at least one page. A non-positive limit
// is treated as a single page holding everything.
func CreatePaginationMeta(page, limit int, total int64) PaginationMeta {
	totalPages := 1
	if limit > 0 && total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginationMeta{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

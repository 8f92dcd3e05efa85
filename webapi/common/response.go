// Package common holds the response envelope, RFC 9457 problem details and
// request validation shared by every handler package.
package common

import (
	"github.com/gofiber/fiber/v2"
)

// MIMEProblemJSON is the RFC 9457 media type.
const MIMEProblemJSON = "application/problem+json"

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// SuccessResponseJSON writes data wrapped in a Response.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	if status == fiber.StatusNoContent {
		return c.SendStatus(status)
	}
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// ProblemDetailsJSON writes an application/problem+json response.
//
// The optional args are read by type: a string becomes the detail, an int
// the status, and anything else is reported under "errors". Without an
// explicit status it is derived from err with ErrorToStatusCode. Server
// errors never expose err's text.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, args ...any) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   fiber.StatusInternalServerError,
		Instance: c.OriginalURL(),
	}
	if err != nil {
		pd.Status = ErrorToStatusCode(err)
	}
	statusSet := false
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			pd.Detail = v
		case int:
			pd.Status = v
			statusSet = true
		case nil:
		default:
			pd.Errors = v
		}
	}
	if err == nil && !statusSet {
		pd.Status = fiber.StatusBadRequest
	}
	if pd.Detail == "" && err != nil && pd.Status < fiber.StatusInternalServerError {
		pd.Detail = err.Error()
	}
	return c.Status(pd.Status).JSON(pd, MIMEProblemJSON)
}

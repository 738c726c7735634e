package shared

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

// Response is the envelope every API endpoint answers with. Success responses
// omit error, error responses omit data.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

var jsonAPI = sonic.Config{
	UseNumber:            true,
	EscapeHTML:           false,
	SortMapKeys:          false,
	CompactMarshaler:     true,
	NoQuoteTextMarshaler: true,
	NoNullSliceOrMap:     true,
}.Froze()

var (
	badRequestResponse      = mustMarshal(Response{Success: false, Error: "Bad request"})
	unauthorizedResponse    = mustMarshal(Response{Success: false, Error: "Unauthorized"})
	forbiddenResponse       = mustMarshal(Response{Success: false, Error: "Forbidden"})
	notFoundResponse        = mustMarshal(Response{Success: false, Error: "Resource not found"})
	tooManyRequestsResponse = mustMarshal(Response{Success: false, Error: "Too many requests"})
	internalErrorResponse   = mustMarshal(Response{Success: false, Error: "Internal server error"})
)

func mustMarshal(v interface{}) []byte {
	b, _ := jsonAPI.Marshal(v)
	return b
}

func writeJSON(c *fiber.Ctx, httpCode int, v interface{}) error {
	body, err := jsonAPI.Marshal(v)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/json; charset=utf-8")
	return c.Status(httpCode).Send(body)
}

func ResponseSuccess(c *fiber.Ctx, httpCode int, message string, data interface{}) error {
	return writeJSON(c, httpCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ResponseError(c *fiber.Ctx, httpCode int, errMsg string) error {
	if errMsg == "" {
		var canned []byte
		switch httpCode {
		case http.StatusBadRequest:
			canned = badRequestResponse
		case http.StatusUnauthorized:
			canned = unauthorizedResponse
		case http.StatusForbidden:
			canned = forbiddenResponse
		case http.StatusNotFound:
			canned = notFoundResponse
		case http.StatusTooManyRequests:
			canned = tooManyRequestsResponse
		default:
			canned = internalErrorResponse
		}
		c.Set(fiber.HeaderContentType, "application/json; charset=utf-8")
		return c.Status(httpCode).Send(canned)
	}

	return writeJSON(c, httpCode, Response{
		Success: false,
		Error:   errMsg,
	})
}

func ResponseOK(c *fiber.Ctx, data interface{}) error {
	return ResponseSuccess(c, http.StatusOK, "", data)
}

func ResponseOKMessage(c *fiber.Ctx, message string, data interface{}) error {
	return ResponseSuccess(c, http.StatusOK, message, data)
}

func ResponseCreated(c *fiber.Ctx, message string, data interface{}) error {
	return ResponseSuccess(c, http.StatusCreated, message, data)
}

func ResponseBadRequest(c *fiber.Ctx, message string) error {
	return ResponseError(c, http.StatusBadRequest, message)
}

func ResponseNotFound(c *fiber.Ctx, message string) error {
	return ResponseError(c, http.StatusNotFound, message)
}

func ResponseTooManyRequests(c *fiber.Ctx, message string) error {
	return ResponseError(c, http.StatusTooManyRequests, message)
}

func ResponseInternalError(c *fiber.Ctx) error {
	return ResponseError(c, http.StatusInternalServerError, "")
}

package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Business codes carried in the envelope. HTTP status is 200 for every
// non-framework-fatal outcome so clients always parse JSON; the code field is
// the real signal.
const (
	CodeOK = 0

	// CodeError is the generic application error. Domain errors surface their
	// message here without a dedicated code.
	CodeError = 1

	// CodeLoginExpired tells the client to purge its token and re-login.
	CodeLoginExpired = 99
)

// MsgLoginExpired is the fixed message paired with CodeLoginExpired.
const MsgLoginExpired = "login expired"

// Status is the code/message pair of the envelope.
type Status struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// Envelope is the uniform response body. Data is always a JSON array, even
// for single-object results.
type Envelope struct {
	Status   Status         `json:"status"`
	Data     any            `json:"data"`
	Property map[string]any `json:"property"`
}

// Success writes a success envelope wrapping the given items.
func Success(c *gin.Context, items ...any) {
	if items == nil {
		items = []any{}
	}
	c.JSON(http.StatusOK, Envelope{
		Status:   Status{Code: CodeOK, Msg: "success"},
		Data:     items,
		Property: map[string]any{},
	})
}

// SuccessList writes a success envelope whose data is the given slice.
func SuccessList[T any](c *gin.Context, list []T) {
	if list == nil {
		list = []T{}
	}
	c.JSON(http.StatusOK, Envelope{
		Status:   Status{Code: CodeOK, Msg: "success"},
		Data:     list,
		Property: map[string]any{},
	})
}

// SuccessPage writes a paginated list envelope with the pagination metadata
// in the property map.
func SuccessPage[T any](c *gin.Context, list []T, total int64, page, pageSize int) {
	if list == nil {
		list = []T{}
	}
	c.JSON(http.StatusOK, Envelope{
		Status: Status{Code: CodeOK, Msg: "success"},
		Data:   list,
		Property: map[string]any{
			"total":       total,
			"pageSize":    pageSize,
			"currentPage": page,
		},
	})
}

// Error writes a generic application error envelope.
func Error(c *gin.Context, msg string) {
	ErrorWithCode(c, CodeError, msg)
}

// ErrorWithCode writes an error envelope with an explicit business code.
func ErrorWithCode(c *gin.Context, code int, msg string) {
	c.JSON(http.StatusOK, Envelope{
		Status:   Status{Code: code, Msg: msg},
		Data:     []any{},
		Property: map[string]any{},
	})
}

// LoginExpired writes the auth-failure envelope that forces client logout.
func LoginExpired(c *gin.Context) {
	ErrorWithCode(c, CodeLoginExpired, MsgLoginExpired)
}

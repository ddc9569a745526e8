package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi/proxyutil"
)

// apiError carries a stable numeric code next to the human-readable message
// so clients can branch without parsing text. proxyutil picks the code up
// through the Code() accessor when building the failure envelope.
type apiError struct {
	code    uint32
	message string
}

func (e apiError) Error() string {
	return e.message
}

func (e apiError) Code() uint32 {
	return e.code
}

func NewAPIError(code int, message string) error {
	return apiError{code: uint32(code), message: message}
}

// Success writes the standard success envelope around data.
func Success(c *gin.Context, data interface{}) {
	proxyutil.SuccessJson(c, data)
}

// Error writes the failure envelope. The HTTP status stays 200; the error
// code inside the envelope is the contract.
func Error(c *gin.Context, code int, message string) {
	proxyutil.FailJson(c, http.StatusOK, NewAPIError(code, message))
}

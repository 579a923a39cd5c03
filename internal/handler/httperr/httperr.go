package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the error envelope every non-2xx API response uses.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func New(status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	return resp
}

// AbortWithError writes the envelope and records err on the gin context so the
// request logger can report the cause. err must not be nil.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := New(status, msg, detail)
	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort writes the envelope for rejections that have no underlying error, such as
// missing credentials.
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, New(status, msg, nil))
}

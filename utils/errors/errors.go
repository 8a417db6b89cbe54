package errors

import (
	"fmt"

	"github.com/emmaeryne/amjednamoussa/constant"
)

type CustomError struct {
	errType constant.ErrorType
	message string
}

func (c CustomError) Error() string {
	if c.message != "" {
		return c.message
	}
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// SetCustomErrorf keeps errorType's business code and HTTP status but surfaces
// a formatted message, for rejections that must carry a value the client needs
// to show the customer.
func SetCustomErrorf(errorType constant.ErrorType, format string, args ...interface{}) CustomError {
	return CustomError{
		errType: errorType,
		message: fmt.Sprintf(format, args...),
	}
}

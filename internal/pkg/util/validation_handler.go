package util

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			msg := fmt.Sprintf("字段 [%s] 校验失败，规则 [%s]",
				firstError.Field(),
				firstError.Tag())
			return errors.New(msg)
		}
	}
	return nil
}

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidUsernameFormat 用户名仅允许字母、数字、下划线和连字符
func ValidUsernameFormat(username string) bool {
	return usernameRegex.MatchString(username)
}

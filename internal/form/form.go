package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var setupOnce sync.Once

// setup 注册自定义校验规则，并让错误里的字段名使用 form 标签
func setup() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
}

// Errors 字段名 -> 错误提示
type Errors map[string]string

// Add 记录字段错误，同一字段只保留第一条
func (e Errors) Add(field, message string) Errors {
	if e == nil {
		e = Errors{}
	}
	if _, exists := e[field]; !exists {
		e[field] = message
	}
	return e
}

// FieldError 单个字段的校验错误
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Bind 绑定并校验 POST 表单，校验失败返回字段错误，不会返回 error
func Bind(c *gin.Context, obj interface{}) Errors {
	setupOnce.Do(setup)
	if err := c.ShouldBind(obj); err != nil {
		return translate(err)
	}
	return nil
}

func translate(err error) Errors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{}.Add("_form", "Invalid form submission.")
	}
	var out Errors
	for _, fe := range verrs {
		out = out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	default:
		return "Invalid value."
	}
}

// Package validation はリクエストの入力検証を行い、失敗をフィールド単位のエラーにまとめます。
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError は1つのフィールドの制約違反です。
type FieldError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

// Error は検証エラーです。ストアに到達する前に返されます。
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

var setupOnce sync.Once

// Setup はGinのバインディングを設定します。
// 未知のフィールドを拒否し、検証エラーのフィールド名をJSONタグ名にします。
func Setup() {
	setupOnce.Do(func() {
		binding.EnableDecoderDisallowUnknownFields = true
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				return name
			})
		}
	})
}

// BindJSON はリクエストボディを obj にデコードして検証します。
// 失敗した場合は *Error を返します。
func BindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return FromBindError(err)
	}
	return nil
}

// PathIDs は指定されたパスパラメータを正の整数として読み取ります。
func PathIDs(c *gin.Context, names ...string) ([]int, error) {
	ids := make([]int, len(names))
	var fields []FieldError
	for i, name := range names {
		id, fe := parseID(name, c.Param(name))
		if fe != nil {
			fields = append(fields, *fe)
			continue
		}
		ids[i] = id
	}
	if len(fields) > 0 {
		return nil, &Error{Fields: fields}
	}
	return ids, nil
}

func parseID(name, raw string) (int, *FieldError) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &FieldError{Field: name, Constraint: "int", Message: fmt.Sprintf("%s must be an integer number", name)}
	}
	if id <= 0 {
		return 0, &FieldError{Field: name, Constraint: "positive", Message: fmt.Sprintf("%s must be a positive number", name)}
	}
	return id, nil
}

// FromBindError はGinのバインドエラーを *Error に変換します。
func FromBindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fromFieldError(fe))
		}
		return &Error{Fields: fields}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			return single("body", "type", "request body must be a JSON object")
		}
		return single(field, "type", fmt.Sprintf("%s must be a %s", field, kindName(typeErr.Type)))
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return single("body", "json", "request body must be valid JSON")
	}

	// encoding/json は未知のフィールドを専用の型ではなく文字列で返す
	if msg := err.Error(); strings.HasPrefix(msg, "json: unknown field ") {
		field := strings.Trim(strings.TrimPrefix(msg, "json: unknown field "), `"`)
		return single(field, "unknown", fmt.Sprintf("property %s should not exist", field))
	}

	return single("body", "invalid", err.Error())
}

func single(field, constraint, message string) *Error {
	return &Error{Fields: []FieldError{{Field: field, Constraint: constraint, Message: message}}}
}

func fromFieldError(fe validator.FieldError) FieldError {
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s should not be empty", fe.Field())
	case "min":
		msg = fmt.Sprintf("%s must be longer than or equal to %s characters", fe.Field(), fe.Param())
	case "max":
		msg = fmt.Sprintf("%s must be shorter than or equal to %s characters", fe.Field(), fe.Param())
	default:
		msg = fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag())
	}
	return FieldError{Field: fe.Field(), Constraint: fe.Tag(), Message: msg}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "valid value"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean value"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer number"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return t.Kind().String()
	}
}

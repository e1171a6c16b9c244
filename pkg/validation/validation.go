package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ErrEngineUnavailable gin 的校验引擎不是 go-playground/validator
var ErrEngineUnavailable = errors.New("validation: gin validator engine is not *validator.Validate")

// enumParams 记录自定义枚举标签的取值，用于生成错误信息
var enumParams = map[string][]string{}

// Setup 将 JSON 字段名与自定义枚举标签注册到 gin 的校验引擎
func Setup(enums map[string][]string) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return ErrEngineUnavailable
	}
	return Register(v, enums)
}

// Register 在指定的 validator 实例上注册字段名函数与枚举标签
func Register(v *validator.Validate, enums map[string][]string) error {
	v.RegisterTagNameFunc(jsonFieldName)

	tags := make([]string, 0, len(enums))
	for tag := range enums {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		values := enums[tag]
		allowed := make(map[string]struct{}, len(values))
		for _, val := range values {
			allowed[val] = struct{}{}
		}
		fn := func(fl validator.FieldLevel) bool {
			field := fl.Field()
			if field.Kind() != reflect.String {
				return false
			}
			_, ok := allowed[field.String()]
			return ok
		}
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("注册校验标签 %s 失败: %w", tag, err)
		}
		enumParams[tag] = values
	}
	return nil
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		name = fld.Tag.Get("form")
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// ── 错误信息 ──

// Messages 将绑定/校验错误转换为逐字段的可读信息
func Messages(err error) []string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return msgs
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []string{fmt.Sprintf("%s must be %s", field, typeName(typeErr.Type))}
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return []string{fmt.Sprintf("request body must not exceed %d bytes", maxErr.Limit)}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return []string{"request body must be valid JSON"}
	}
	if errors.Is(err, io.EOF) {
		return []string{"request body is required"}
	}

	return []string{err.Error()}
}

// typeName 将 Go 类型转换为面向调用方的描述
func typeName(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "a list"
	case reflect.Struct, reflect.Map:
		return "an object"
	default:
		return "a valid " + t.String()
	}
}

// fieldName 去掉命名空间中的根类型名与匿名嵌入结构体，保留 JSON 路径
// 嵌入结构体没有 json 标签，其 JSON 段与 Go 段同名；最后一段始终保留
func fieldName(fe validator.FieldError) string {
	ns := strings.Split(fe.Namespace(), ".")
	sns := strings.Split(fe.StructNamespace(), ".")
	if len(ns) <= 1 {
		return fe.Field()
	}

	kept := make([]string, 0, len(ns)-1)
	last := len(ns) - 1
	for i := 1; i < len(ns); i++ {
		if ns[i] == "" {
			continue
		}
		if i < last && len(sns) == len(ns) && ns[i] == sns[i] {
			continue
		}
		kept = append(kept, ns[i])
	}
	if len(kept) == 0 {
		return fe.Field()
	}
	return strings.Join(kept, ".")
}

func fieldMessage(fe validator.FieldError) string {
	field := fieldName(fe)
	param := fe.Param()

	if values, ok := enumParams[fe.Tag()]; ok {
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(values, ", "))
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "http_url", "url":
		return field + " must be a valid URL starting with http:// or https://"
	case "uuid", "uuid4":
		return field + " must be a valid id"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "numeric":
		return field + " must contain only digits"
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	case "min", "gte":
		return boundMessage(fe, field, "at least", param)
	case "max", "lte":
		return boundMessage(fe, field, "at most", param)
	case "len":
		return boundMessage(fe, field, "exactly", param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func boundMessage(fe validator.FieldError, field, rel, param string) string {
	switch fe.Kind() {
	case reflect.String:
		return fmt.Sprintf("%s must be %s %s characters long", field, rel, param)
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("%s must contain %s %s item(s)", field, rel, param)
	default:
		return fmt.Sprintf("%s must be %s %s", field, rel, param)
	}
}

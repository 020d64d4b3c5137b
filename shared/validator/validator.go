package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"litrato/shared/constant"
	"litrato/shared/failure"

	val "github.com/go-playground/validator/v10"
)

const megabyte = 1 << 20

var validate *val.Validate

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(jsonName)

	for tag, fn := range map[string]val.Func{
		"mimetypes":   mimeTypes,
		"maxfilesize": maxFileSize,
	} {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// jsonName reports fields the way clients spell them.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}

	return name
}

// mimeTypes checks the Content-Type of an uploaded part against a space
// separated list, e.g. mimetypes=image/png image/jpeg.
func mimeTypes(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	return slices.Contains(strings.Fields(field.Param()), file.Header.Get(constant.RequestHeaderContentType))
}

// maxFileSize takes its limit in megabytes.
func maxFileSize(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	limit, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return float64(file.Size) <= limit*megabyte
}

// Validate decodes a JSON body into data and validates it. Both failures
// come back as 400s.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err))
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err))
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err))
	}

	return nil
}

package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"rental/shared/constant"
	"rental/shared/failure"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	val "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate *val.Validate

// registerMimetypeValidation sniffs the uploaded bytes; the client supplied Content-Type is not trusted.
func registerMimetypeValidation(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	detected, err := detectMimetype(&file)
	if err != nil {
		return false
	}

	for _, allowed := range strings.Fields(field.Param()) {
		if detected.Is(allowed) {
			return true
		}
	}

	return false
}

func detectMimetype(file *multipart.FileHeader) (*mimetype.MIME, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer reader.Close()

	detected, err := mimetype.DetectReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to detect upload type: %w", err)
	}

	return detected, nil
}

func registerFileSizeValidation(field val.FieldLevel) bool {
	fileSize := 0
	if file, ok := field.Field().Interface().(multipart.FileHeader); ok {
		fileSize = int(file.Size)
	} else if str, ok := field.Field().Interface().(string); ok {
		fileSize = len(str)
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	bytesConversion := 1024.0
	maxSizeBytes := int(maxSizeMB * bytesConversion * bytesConversion)

	return fileSize <= maxSizeBytes
}

// registerDateValidation accepts YYYY-MM-DD strings.
func registerDateValidation(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(constant.DateOnlyFormat, str)

	return err == nil
}

// Amounts are stored as NUMERIC(12,2): at most ten integer digits and two decimals.
const decimalScale = 2

var decimalCeiling = decimal.New(1, 12-decimalScale)

// registerDecimalValidation accepts non-negative decimal strings that fit an amount column without rounding.
func registerDecimalValidation(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	amount, err := decimal.NewFromString(str)
	if err != nil {
		return false
	}

	return !amount.IsNegative() && amount.LessThan(decimalCeiling) && amount.Equal(amount.Round(decimalScale))
}

// fieldName reports fields by their json or form key so messages match the request the client sent.
func fieldName(field reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(field.Tag.Get(key), ",")
		if name == "-" {
			return constant.Empty
		}

		if name != constant.Empty {
			return name
		}
	}

	return field.Name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(fieldName)

	validations := map[string]val.Func{
		"empty": func(fl val.FieldLevel) bool {
			return fl.Field().IsZero()
		},
		"mimetypes":   registerMimetypeValidation,
		"maxfilesize": registerFileSizeValidation,
		"date":        registerDateValidation,
		"decimal":     registerDecimalValidation,
	}

	for tag, fn := range validations {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate decodes a JSON body into data and validates it. Both failures are 400s.
func Validate[T any](r io.Reader, data *T) error {
	if err := Decode(r, data); err != nil {
		return err
	}

	return ValidateStruct(data)
}

// Decode only reads the JSON body, leaving validation to a later ValidateStruct call.
func Decode[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateStruct[T any](data *T) error {
	return badRequest(validate.Struct(data), constant.Empty)
}

// ValidateVar checks a single value, such as a query parameter, reported under name.
func ValidateVar(name string, value any, tag string) error {
	return badRequest(validate.Var(value, tag), name)
}

func badRequest(err error, name string) error {
	if err == nil {
		return nil
	}

	return failure.BadRequestFromString(message(err, name)) //nolint:wrapcheck
}

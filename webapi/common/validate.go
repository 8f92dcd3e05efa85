package common

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Field names in errors are the
// json tag names.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

var fieldLabels = map[string]string{
	"identity":          "El correo o usuario",
	"email":             "El correo",
	"password":          "La contraseña",
	"confirm_password":  "La confirmación de contraseña",
	"username":          "El nombre de usuario",
	"name":              "El nombre",
	"type":              "El tipo",
	"initial_balance":   "El saldo inicial",
	"limit_amount":      "El límite",
	"current_spent":     "El monto gastado",
	"billing_cycle_day": "El día de corte",
	"target_type":       "El tipo de cuenta",
	"target_id":         "La cuenta",
	"category_id":       "La categoría",
	"amount":            "El monto",
	"date":              "La fecha",
	"description":       "La descripción",
	"currency":          "La moneda",
	"avatar_url":        "La URL del avatar",
}

// fieldMessages overrides the generated text for specific field/tag pairs.
var fieldMessages = map[string]string{
	"password.min":             MsgWeakPassword,
	"password.max":             MsgPasswordTooLong,
	"email.email":              MsgInvalidEmail,
	"confirm_password.eqfield": MsgPasswordMismatch,
	"billing_cycle_day.min":    "El día de corte debe estar entre 1 y 31",
	"billing_cycle_day.max":    "El día de corte debe estar entre 1 y 31",
}

// FieldMessage renders one validation failure in Spanish.
func FieldMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = "El campo " + fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " es requerido"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s debe tener al menos %s caracteres", label, fe.Param())
		}
		return fmt.Sprintf("%s debe ser al menos %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s no puede tener más de %s caracteres", label, fe.Param())
		}
		return fmt.Sprintf("%s no puede ser mayor que %s", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "uuid", "uuid4":
		return label + " no es un identificador válido"
	case "url", "http_url":
		return label + " debe ser una URL válida"
	case "datetime":
		return label + " debe tener el formato AAAA-MM-DD"
	case "gt":
		return fmt.Sprintf("%s debe ser mayor que %s", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s debe ser mayor o igual que %s", label, fe.Param())
	default:
		return label + " no es válido"
	}
}

// ValidationErrors converts err into field → message pairs. It returns
// nil when err is not a validator.ValidationErrors.
func ValidationErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = FieldMessage(fe)
		}
	}
	return out
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns a pointer to the struct (populated), or writes an error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", nil, "El cuerpo de la solicitud no es válido", fiber.StatusBadRequest)
	}
	if err := Validator().Struct(input); err != nil {
		fields := ValidationErrors(err)
		if fields == nil {
			return nil, ProblemDetailsJSON(c, "Validation failed", nil, MsgUnexpected, fiber.StatusBadRequest)
		}
		return nil, ProblemDetailsJSON(c, "Validation failed", nil, firstMessage(err, fields), fiber.StatusBadRequest, fields)
	}
	return &input, nil
}

func firstMessage(err error, fields map[string]string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if verrs[0].Tag() == "required" {
			return MsgMissingFields
		}
		return fields[verrs[0].Field()]
	}
	return MsgUnexpected
}

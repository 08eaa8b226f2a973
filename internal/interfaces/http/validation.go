package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "query"} {
			if tag := strings.SplitN(f.Tag.Get(key), ",", 2)[0]; tag != "" && tag != "-" {
				return tag
			}
		}
		return f.Name
	})
	return v
}

// bindJSON parsea el cuerpo y valida los tags. Si falla ya escribió la respuesta 400 y devuelve false.
func bindJSON(c *fiber.Ctx, dest interface{}) (bool, error) {
	if err := c.BodyParser(dest); err != nil {
		return false, fail(c, fiber.StatusBadRequest, "INVALID_BODY", "Cuerpo de la solicitud inválido")
	}
	return validateStruct(c, dest)
}

// bindQuery igual que bindJSON para parámetros de consulta.
func bindQuery(c *fiber.Ctx, dest interface{}) (bool, error) {
	if err := c.QueryParser(dest); err != nil {
		return false, fail(c, fiber.StatusBadRequest, "INVALID_QUERY", "Parámetros de consulta inválidos")
	}
	return validateStruct(c, dest)
}

func validateStruct(c *fiber.Ctx, dest interface{}) (bool, error) {
	if err := validate.Struct(dest); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Mensaje:  "Datos de entrada inválidos",
			Codigo:   "VALIDATION_ERROR",
			Detalles: validationDetails(err),
		})
	}
	return true, nil
}

func validationDetails(err error) map[string]string {
	details := map[string]string{}
	errs, isValidation := err.(validator.ValidationErrors)
	if !isValidation {
		details["_"] = err.Error()
		return details
	}
	for _, fe := range errs {
		details[fe.Field()] = validationMessage(fe)
	}
	return details
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "min":
		return fmt.Sprintf("debe ser al menos %s", fe.Param())
	case "max":
		return fmt.Sprintf("debe ser como máximo %s", fe.Param())
	case "email":
		return "debe ser un email válido"
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", fe.Param())
	}
	return "es inválido"
}

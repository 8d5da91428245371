package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/humble-crm/internal/domain/entity"
)

var validate = newValidator()

// newValidator registra los nombres JSON y las reglas propias de los DTOs.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("appointment_type", func(fl validator.FieldLevel) bool {
		return entity.IsValidAppointmentType(fl.Field().String())
	}); err != nil {
		panic("registrar validaciones: " + err.Error())
	}
	return v
}

// bind parsea el cuerpo JSON en out y valida sus tags.
func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return invalidBody()
	}
	return validateStruct(out)
}

func validateStruct(out any) error {
	err := validate.Struct(out)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return invalidParam(err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return invalidParam(strings.Join(msgs, "; "))
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return fe.Field() + " es requerido"
	case "email":
		return fe.Field() + " debe ser un email válido"
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", fe.Field(), fe.Param())
	case "appointment_type":
		return fmt.Sprintf("%s debe ser uno de: %s", fe.Field(), strings.Join(entity.AppointmentTypes(), ", "))
	case "max", "min":
		return fmt.Sprintf("%s fuera de rango (%s %s)", fe.Field(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s inválido (%s)", fe.Field(), fe.Tag())
	}
}

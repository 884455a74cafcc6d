package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"tienda_api/internal/common"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name so messages can be keyed "field.tag".
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// messages maps "field.tag" to the text shown to the client.
type messages map[string]string

var idMessages = messages{
	"id.required": "El ID es obligatorio para eliminar",
	"id.min":      "El ID debe ser un número entero positivo",
}

type idRequest struct {
	ID int64 `json:"id" validate:"required,min=1"`
}

func decodeAndValidate(r *http.Request, dst any, msgs messages) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.NewValidationError("El cuerpo de la solicitud no es válido")
	}
	return validateStruct(dst, msgs)
}

func validateStruct(s any, msgs messages) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if m, ok := msgs[fe.Field()+"."+fe.Tag()]; ok {
			out = append(out, m)
			continue
		}
		out = append(out, fmt.Sprintf("El campo %s no es válido", fe.Field()))
	}
	return common.NewValidationError(out...)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 0 {
		return 0, common.NewValidationError("El ID debe ser un número entero positivo")
	}
	return id, nil
}

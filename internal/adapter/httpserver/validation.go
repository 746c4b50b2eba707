package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

// getValidator returns the shared validator. Field errors are reported by
// their JSON names.
func getValidator() *validator.Validate {
	vldOnce.Do(func() {
		vld = validator.New(validator.WithRequiredStructEnabled())
		_ = vld.RegisterValidation("notblank", validators.NotBlank)
		vld.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return vld
}

// acceptsJSON reports whether the client accepts a JSON response.
func acceptsJSON(r *http.Request) bool {
	a := r.Header.Get("Accept")
	return a == "" || strings.Contains(a, "*/*") || strings.Contains(a, "application/json") || strings.Contains(a, "application/*")
}

// decodeJSON reads a capped JSON body into dst and validates it. The
// returned details map field names to the failed rule.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, fmt.Errorf("%w: request body exceeds %d bytes", domain.ErrInvalidArgument, maxBodyBytes)
		}
		if errors.Is(err, domain.ErrInvalidArgument) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument)
	}
	if err := getValidator().Struct(dst); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
		}
		details := make(map[string]string, len(ve))
		fields := make([]string, 0, len(ve))
		for _, fe := range ve {
			field := fieldPath(fe)
			details[field] = fe.Tag()
			fields = append(fields, field)
		}
		return details, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, validationMessage(fields))
	}
	return nil, nil
}

// fieldPath strips the top-level struct name: "chatAssessRequest.course" → "course".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fields []string) string {
	if len(fields) == 1 {
		return fields[0] + " is required or invalid"
	}
	return strings.Join(fields, ", ") + " are required or invalid"
}

package http

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/km-arc/go-nestforge/framework/container"
	"github.com/km-arc/go-nestforge/framework/http/validation"
)

// ── Extractors ───────────────────────────────────────────────────────────────

// ParamType lists the types a route parameter can be parsed into.
type ParamType interface {
	~string | ~int | ~int64 | ~uint | ~uint64 | ~bool
}

// Param parses the route parameter name into T. A missing or malformed
// value is a 400.
//
//	id, err := gohttp.Param[uint64](req, "id")
func Param[T ParamType](req *Request, name string) (T, error) {
	var out T
	raw := req.RouteParam(name)
	if raw == "" {
		return out, BadRequest("Invalid route parameter")
	}

	var err error
	switch p := any(&out).(type) {
	case *string:
		*p = raw
	case *int:
		*p, err = strconv.Atoi(raw)
	case *int64:
		*p, err = strconv.ParseInt(raw, 10, 64)
	case *uint:
		var n uint64
		n, err = strconv.ParseUint(raw, 10, 0)
		*p = uint(n)
	case *uint64:
		*p, err = strconv.ParseUint(raw, 10, 64)
	case *bool:
		*p, err = strconv.ParseBool(raw)
	default:
		err = parseNamed(raw, &out)
	}
	if err != nil {
		return out, BadRequest("Invalid route parameter")
	}
	return out, nil
}

// Body decodes the JSON request body into T. A malformed body is a 400.
func Body[T any](req *Request) (T, error) {
	var out T
	if req.raw.Body == nil {
		return out, BadRequest("Invalid JSON body")
	}
	defer req.raw.Body.Close()
	if err := json.NewDecoder(req.raw.Body).Decode(&out); err != nil {
		return out, BadRequest("Invalid JSON body")
	}
	return out, nil
}

// Validatable is implemented by DTOs that check themselves.
type Validatable interface {
	Validate() error
}

// ValidatedBody decodes the JSON body into T and runs T.Validate. A
// *validation.Errors from Validate is rendered under "errors".
//
//	func (d CreateUserDTO) Validate() error {
//	    return validation.Make(map[string]string{"name": d.Name}, validation.Rules{"name": "required"}).Validate()
//	}
func ValidatedBody[T Validatable](req *Request) (T, error) {
	out, err := Body[T](req)
	if err != nil {
		return out, err
	}
	if err := out.Validate(); err != nil {
		var bag *validation.Errors
		if errors.As(err, &bag) {
			return out, BadRequest("Validation failed").WithDetails(bag.Bag)
		}
		return out, BadRequest(err.Error())
	}
	return out, nil
}

// Inject resolves T from the request's container on behalf of the route's
// module. A missing service is a 500, never a panic.
//
//	users, err := gohttp.Inject[*UsersService](req)
func Inject[T any](req *Request) (T, error) {
	var zero T
	if req.container == nil {
		return zero, InternalServerError("no container attached to request")
	}
	v, err := container.ResolveInModule[T](req.container, req.module)
	if err != nil {
		return zero, InternalServerError(err.Error())
	}
	return v, nil
}

// parseNamed handles named types such as `type UserID uint64`. Numbers and
// booleans decode unquoted; string kinds need the quoted form.
func parseNamed[T ParamType](raw string, out *T) error {
	if err := json.Unmarshal([]byte(raw), out); err == nil {
		return nil
	}
	return json.Unmarshal([]byte(strconv.Quote(raw)), out)
}

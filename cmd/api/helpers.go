package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"kutuphanem/proj/internal/domain/fields"
	"kutuphanem/proj/internal/domain/filters"
	"kutuphanem/proj/internal/lib/validator"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

// extractIDParam parses a positive integer URL parameter, answering 400 when
// it is malformed.
func (app *Application) extractIDParam(w http.ResponseWriter, r *http.Request, name string) (id int64, extracted bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		app.Http.BadRequest(w, r, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	if id < 1 {
		app.Http.BadRequest(w, r, fmt.Sprintf("%s must be greater than zero", name))
		return 0, false
	}
	return id, true
}

func (app *Application) extractContentType(w http.ResponseWriter, r *http.Request) (fields.ContentType, bool) {
	ct, err := fields.ParseContentType(chi.URLParam(r, "contentType"))
	if err != nil {
		app.Http.BadRequest(w, r, "content type must be movie or book")
		return "", false
	}
	return ct, true
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	src := http.MaxBytesReader(w, r.Body, int64(maxBytes))
	defer io.Copy(io.Discard, src)
	dec := json.NewDecoder(src)
	err := dec.Decode(dst)
	if err != nil {
		return handleJsonErr(err)
	}
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func handleJsonErr(err error) error {
	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var invalidUnmarshalError *json.InvalidUnmarshalError
	var maxBytesError *http.MaxBytesError
	switch {
	case errors.As(err, &syntaxError):
		return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("body contains badly-formed JSON")

	case errors.As(err, &unmarshalTypeError):
		if unmarshalTypeError.Field != "" {
			return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
		}
		return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

	case errors.Is(err, io.EOF):
		return errors.New("body must not be empty")

	case errors.As(err, &maxBytesError):
		return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)

	case errors.As(err, &invalidUnmarshalError):
		panic(err)
	default:
		return err
	}
}

// decodeAndValidate reads a JSON body into dst and validates it. It writes
// the error response itself and reports whether the handler may continue.
func (app *Application) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := app.readJSON(w, r, dst); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return false
	}
	if errs := validator.ValidateStruct(app.validator, dst); errs != nil {
		app.Http.FailedValidation(w, r, errs)
		return false
	}
	return true
}

func (app *Application) readQuery(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := app.queryDecoder.Decode(dst, r.URL.Query()); err != nil {
		app.Http.BadRequest(w, r, "invalid query parameters: "+err.Error())
		return false
	}
	return true
}

// readFilters decodes page and limit and clamps the limit to [1, MaxPageSize].
// Pages past the offset bound are rejected.
func (app *Application) readFilters(w http.ResponseWriter, r *http.Request, defaultSize int) (filters.Filters, bool) {
	var f filters.Filters
	if !app.readQuery(w, r, &f) {
		return f, false
	}
	requested := f.Page
	f = f.Clamp(defaultSize, filters.MaxPageSize)
	if requested > f.Page {
		app.Http.FailedValidation(w, r, map[string]string{
			"page": fmt.Sprintf("The maximum value is %d", f.LastPage()),
		})
		return f, false
	}
	return f, true
}

func pageEnvelop(key string, items any, f filters.Filters, total int64) envelop {
	return envelop{key: items, "page": f.Page, "limit": f.Limit(), "total": total}
}

// contentRef accepts a content id sent either as a JSON string or a number.
type contentRef string

func (c *contentRef) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = contentRef(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("content_id must be a string or a number")
	}
	*c = contentRef(n.String())
	return nil
}

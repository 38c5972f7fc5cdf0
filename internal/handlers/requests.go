package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/pt"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	es_translations "github.com/go-playground/validator/v10/translations/es"
	pt_translations "github.com/go-playground/validator/v10/translations/pt"
	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"

	"github.com/irrigo/dashboard/internal/domain"
	"github.com/irrigo/dashboard/internal/middleware"
	"github.com/irrigo/dashboard/internal/view"
)

// cronMessages covers the "cron" tag, which the validator translation
// packages do not know.
var cronMessages = map[string]string{
	"en": "{0} must be a valid cron schedule",
	"es": "{0} debe ser una programación cron válida",
	"pt": "{0} deve ser um agendamento cron válido",
}

// CustomValidator wraps the go-playground/validator library to implement
// Echo's Validator interface and translates its errors into the request
// language.
type CustomValidator struct {
	validator *validator.Validate
	uni       *ut.UniversalTranslator
}

// NewValidator creates a validator with en, es and pt messages.
func NewValidator() *CustomValidator {
	v := validator.New()

	// Report form field names instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// The built-in "cron" tag only matches the shape of the string.
	_ = v.RegisterValidation("cron", validCron)

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, es.New(), pt.New())

	register := map[string]func(*validator.Validate, ut.Translator) error{
		"en": en_translations.RegisterDefaultTranslations,
		"es": es_translations.RegisterDefaultTranslations,
		"pt": pt_translations.RegisterDefaultTranslations,
	}
	for lang, fn := range register {
		trans, _ := uni.GetTranslator(lang)
		_ = fn(v, trans)
		registerCustomTranslation(v, trans, "cron", cronMessages[lang])
	}

	return &CustomValidator{validator: v, uni: uni}
}

// validCron accepts standard five-field schedules and @descriptors.
func validCron(fl validator.FieldLevel) bool {
	_, err := cron.ParseStandard(fl.Field().String())
	return err == nil
}

func registerCustomTranslation(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(
		tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// FieldErrors turns validation errors into per-field messages in lang.
// Errors that are not validation errors yield nil.
func (cv *CustomValidator) FieldErrors(err error, lang string) view.FieldErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	trans, _ := cv.uni.GetTranslator(lang)
	out := make(view.FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = fe.Translate(trans)
		}
	}
	return out
}

// BindForm binds the request into dst and validates it. Validation
// failures come back as localized field errors with a nil error; a
// malformed request is a 400.
func BindForm(c echo.Context, dst interface{}) (view.FieldErrors, error) {
	if err := c.Bind(dst); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "malformed form data").SetInternal(err)
	}
	err := c.Validate(dst)
	if err == nil {
		return nil, nil
	}
	cv, ok := c.Echo().Validator.(*CustomValidator)
	if !ok {
		return nil, err
	}
	if errs := cv.FieldErrors(err, middleware.Localizer(c).Lang()); errs != nil {
		return errs, nil
	}
	return nil, err
}

// listParams is the query string shared by the list views.
type listParams struct {
	Search    string `query:"q"`
	Status    string `query:"status"`
	Kind      string `query:"kind"`
	Favorites bool   `query:"favorites"`
	Sort      string `query:"sort"`
	Page      int    `query:"page"`
}

// BindListQuery reads search, filters, sort and page from the query string.
// The favorites filter needs a signed-in viewer and is dropped otherwise.
func BindListQuery(c echo.Context) (domain.ListQuery, error) {
	var p listParams
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &p); err != nil {
		return domain.ListQuery{}, echo.NewHTTPError(http.StatusBadRequest, "malformed query").SetInternal(err)
	}
	q := domain.ListQuery{
		Search:    strings.TrimSpace(p.Search),
		Status:    p.Status,
		Kind:      p.Kind,
		Favorites: p.Favorites && middleware.CurrentIdentity(c).Present(),
		Sort:      p.Sort,
		Page:      p.Page,
	}
	return q.Normalize(), nil
}

// FilterValues encodes the user-facing filters of q for links that keep
// them, such as pagination. Paging itself is left out.
func FilterValues(q domain.ListQuery) url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Kind != "" {
		v.Set("kind", q.Kind)
	}
	if q.Favorites {
		v.Set("favorites", "true")
	}
	if q.Sort != "" && q.Sort != domain.SortName {
		v.Set("sort", q.Sort)
	}
	return v
}

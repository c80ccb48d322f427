package importer

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// ValidationError lists every problem found in one file.
type ValidationError struct {
	Problems []error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  - ")
		b.WriteString(p.Error())
	}
	return b.String()
}

func (e *ValidationError) Unwrap() []error {
	return e.Problems
}

// AsError returns nil for an empty problem list and a *ValidationError
// otherwise.
func AsError(problems []error) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

// ValidatePlanFile checks syntax only: numeric values out of range are left
// for the planner to degrade. baseDir resolves relative material paths.
func ValidatePlanFile(f *PlanFile, baseDir string) []error {
	errs := structErrors(f, "PlanFile.")

	if f.Profile != nil && f.ProfileName != "" {
		errs = append(errs, fmt.Errorf("profile and profile_name are mutually exclusive"))
	}
	if f.Profile != nil {
		errs = append(errs, weightErrors(f.Profile, "profile.")...)
	}

	names := make(map[string]bool, len(f.Materials))
	for i, m := range f.Materials {
		prefix := fmt.Sprintf("materials[%d]", i)
		key := strings.ToLower(strings.TrimSpace(m.Name))
		if key != "" {
			if names[key] {
				errs = append(errs, fmt.Errorf("%s.name: duplicate name %q", prefix, m.Name))
			}
			names[key] = true
		}
		if m.Path != "" && m.Size == nil {
			if err := checkReadable(resolvePath(baseDir, m.Path)); err != nil {
				errs = append(errs, fmt.Errorf("%s.path: %w", prefix, err))
			}
		}
	}
	return errs
}

// ValidateProfileFile checks a standalone profile file, which must be named.
func ValidateProfileFile(f *ProfileFile) []error {
	var errs []error
	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, fmt.Errorf("name is required"))
	}
	errs = append(errs, structErrors(f, "ProfileFile.")...)
	return append(errs, weightErrors(f, "")...)
}

// weightErrors rejects NaN and infinite weights, which YAML can spell as
// .nan and .inf. Negative weights are left for the simulator to ignore.
func weightErrors(f *ProfileFile, prefix string) []error {
	var errs []error
	for _, w := range []struct {
		key   string
		value *float64
	}{
		{"oral_weight", f.OralWeight},
		{"written_weight", f.WrittenWeight},
		{"practical_weight", f.PracticalWeight},
	} {
		if w.value != nil && (math.IsNaN(*w.value) || math.IsInf(*w.value, 0)) {
			errs = append(errs, fmt.Errorf("%s%s: must be a finite number", prefix, w.key))
		}
	}
	return errs
}

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	var err error
	validate, translator, err = newValidator()
	if err != nil {
		panic(err)
	}
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	v := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("material_kind", func(fl validator.FieldLevel) bool {
		return domain.ValidMaterialKinds[fl.Field().String()]
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register material_kind validation: %w", err)
	}
	if err := v.RegisterTranslation("material_kind", trans, func(ut ut.Translator) error {
		return ut.Add("material_kind", "{0}: invalid value {1}", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("material_kind", fe.Field(), fmt.Sprintf("%q", fe.Value()))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register material_kind translation: %w", err)
	}
	if err := v.RegisterTranslation("datetime", trans, func(ut ut.Translator) error {
		return ut.Add("datetime", "{0}: invalid date format {1} (expected YYYY-MM-DD)", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("datetime", fe.Field(), fmt.Sprintf("%q", fe.Value()))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register datetime translation: %w", err)
	}

	return v, trans, nil
}

// structErrors runs the tag validation and reports each failure prefixed
// with its path inside the file, e.g. "materials[1].kind".
func structErrors(s any, rootPrefix string) []error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []error{err}
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := strings.TrimPrefix(fe.Namespace(), rootPrefix)
		msg := fe.Translate(translator)
		if parent, _, ok := cutLast(path, "."); ok {
			msg = parent + "." + msg
		}
		errs = append(errs, errors.New(msg))
	}
	return errs
}

func cutLast(s, sep string) (before, after string, found bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

func checkReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file %q not found", path)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%q is a directory", path)
	}
	return nil
}

package schedule

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/model"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	requiredText = "this field is required"

	// custom validation tags
	kindTag        = "kind"
	categoryTag    = "category"
	priorityTag    = "priority"
	statusTag      = "status"
	patternTag     = "pattern"
	offsetTag      = "offset"
	isoDateTag     = "isodate"
	clockTag       = "clock"
	endAfterTag    = "endafterstart"
	needPatternTag = "recurrence_pattern"
	needOffsetTag  = "reminder_offset"
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// A zero Date counts as missing for "required".
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		d, ok := v.Interface().(model.Date)
		if !ok || d.IsZero() {
			return nil
		}
		return d.String()
	}, model.Date{})

	registerEnum(kindTag, "unknown event kind", func(s string) bool { return model.Kind(s).Valid() })
	registerEnum(categoryTag, "unknown category", func(s string) bool { return model.Category(s).Valid() })
	registerEnum(priorityTag, "priority must be one of high, medium, low", func(s string) bool { return model.Priority(s).Valid() })
	registerEnum(statusTag, "unknown status", func(s string) bool { return model.Status(s).Valid() })
	registerEnum(patternTag, "recurrence pattern must be one of daily, weekly, monthly", func(s string) bool {
		return model.RecurrencePattern(s).Valid()
	})
	registerEnum(offsetTag, "reminder offset must be one of 5min, 15min, 30min, 1hour, 1day", func(s string) bool {
		return model.ReminderOffset(s).Valid()
	})
	registerEnum(isoDateTag, "date must be formatted as YYYY-MM-DD", func(s string) bool {
		_, err := model.ParseDate(s)
		return err == nil
	})
	registerEnum(clockTag, "time must be formatted as HH:MM", func(s string) bool {
		_, err := model.ParseTimeOfDay(s)
		return err == nil
	})

	validate.RegisterStructValidation(candidateStructValidation, Candidate{})
	validate.RegisterStructValidation(eventStructValidation, model.Event{})

	registerTranslation("required", requiredText, true)
	registerTranslation("gtefield", "end time must not be before start time", true)
	registerTranslation(endAfterTag, "end time must not be before start time")
	registerTranslation(needPatternTag, "a recurring event needs a recurrence pattern")
	registerTranslation(needOffsetTag, "a reminder needs an offset")
}

func registerEnum(tag, text string, ok func(string) bool) {
	_ = validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return ok(fl.Field().String())
	})
	registerTranslation(tag, text)
}

// registerTranslation registers a custom translation for the specified validation tag.
func registerTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// candidateStructValidation checks the cross-field rules of form input.
func candidateStructValidation(sl validator.StructLevel) {
	c := sl.Current().Interface().(Candidate)
	if c.Recurring && c.RecurrencePattern == "" {
		sl.ReportError(c.RecurrencePattern, "recurrencePattern", "RecurrencePattern", needPatternTag, "")
	}
	if c.Reminder && c.ReminderOffset == "" {
		sl.ReportError(c.ReminderOffset, "reminderOffset", "ReminderOffset", needOffsetTag, "")
	}
	start, serr := model.ParseTimeOfDay(c.StartTime)
	end, eerr := model.ParseTimeOfDay(c.EndTime)
	if serr == nil && eerr == nil && end < start {
		sl.ReportError(c.EndTime, "endTime", "EndTime", endAfterTag, "")
	}
}

func eventStructValidation(sl validator.StructLevel) {
	ev := sl.Current().Interface().(model.Event)
	if ev.Recurring && ev.RecurrencePattern == "" {
		sl.ReportError(ev.RecurrencePattern, "recurrencePattern", "RecurrencePattern", needPatternTag, "")
	}
	if ev.Reminder && ev.ReminderOffset == "" {
		sl.ReportError(ev.ReminderOffset, "reminderOffset", "ReminderOffset", needOffsetTag, "")
	}
}

// check runs the validator and converts its output into a *ValidationError.
func check(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	flds := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		flds = append(flds, FieldError{Field: fe.Field(), Error: fe.Translate(translator)})
	}
	return newValidationError(flds...)
}

// Validate reports whether ev is well formed: mandatory fields present,
// enumerations valid, end not before start, and the recurrence/reminder
// settings complete.
func Validate(ev model.Event) error {
	return check(ev)
}

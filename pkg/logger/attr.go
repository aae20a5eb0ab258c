package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Field records the validated field under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Property records a referenced sibling field under the key "property".
// If name is empty, it returns an empty Attr.
func Property(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("property", name)
}

// Reason records a validation reason code under the key "reason".
func Reason(code string) slog.Attr {
	return slog.String("reason", code)
}

// Fields records the referenced field names under the key "fields".
func Fields(names []string) slog.Attr {
	return slog.Any("fields", names)
}

// Comparison groups the compared target value and sum under "comparison".
func Comparison(value, sum int64) slog.Attr {
	return Group("comparison", slog.Int64("value", value), slog.Int64("sum", sum))
}

// Subject records the subject identifier (file name, record id) under "subject".
// If id is nil, it returns an empty Attr.
func Subject(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("subject", id)
}

// Locale records the message locale under the key "locale".
func Locale(lang string) slog.Attr {
	return slog.String("locale", lang)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

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

// Errors groups non-nil errors under "errors". All-nil input yields an empty Attr.
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

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func RunID(id string) slog.Attr {
	return slog.String("run_id", id)
}

func Policy(name string) slog.Attr {
	return slog.String("policy", name)
}

func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// RecordIndex records the zero-based position of a record in its input.
func RecordIndex(i int) slog.Attr {
	return slog.Int("record_index", i)
}

func Field(name string) slog.Attr {
	return slog.String("field", name)
}

func Reason(reason string) slog.Attr {
	return slog.String("reason", reason)
}

func Records(n int) slog.Attr {
	return slog.Int("records", n)
}

func Sink(name string) slog.Attr {
	return slog.String("sink", name)
}

func Target(name string) slog.Attr {
	return slog.String("target", name)
}

func Stage(name string) slog.Attr {
	return slog.String("stage", name)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

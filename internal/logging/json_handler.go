package logging

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"time"
)

// ratioPrecision bounds the decimals kept for float attributes such as
// presenter overlap and coverage so log lines stay diffable between runs.
const ratioPrecision = 4

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:       lvl,
		AddSource:   addSource,
		ReplaceAttr: replaceJSONAttr,
	}
	return slog.NewJSONHandler(w, &opts)
}

func replaceJSONAttr(_ []string, attr slog.Attr) slog.Attr {
	switch attr.Key {
	case slog.TimeKey:
		attr.Key = "ts"
		if attr.Value.Kind() == slog.KindTime {
			attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
		}
		return attr
	case slog.LevelKey:
		attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
		return attr
	case slog.SourceKey:
		attr.Key = "caller"
		if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
			attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
		}
		return attr
	}

	switch attr.Value.Kind() {
	case slog.KindFloat64:
		attr.Value = slog.Float64Value(roundRatio(attr.Value.Float64()))
	case slog.KindString:
		// Decision fields are optional; an empty talk or video id is noise.
		if attr.Value.String() == "" && isDecisionKey(attr.Key) {
			return slog.Attr{}
		}
	}
	return attr
}

func roundRatio(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow(10, ratioPrecision)
	return math.Round(v*scale) / scale
}

func isDecisionKey(key string) bool {
	switch key {
	case FieldTalkID, FieldVideoURI, FieldSlideSlug:
		return true
	}
	return false
}

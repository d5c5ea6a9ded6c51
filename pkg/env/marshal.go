package env

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// MarshalEnv renders a config struct as .env lines, driven by the same `env`
// tags caarlos0/env parses. Zero-valued fields are omitted so the output only
// pins what is actually set.
func MarshalEnv(c any) (string, error) {
	v := reflect.ValueOf(c)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return "", fmt.Errorf("expected a non-nil struct pointer, got %T", c)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return "", fmt.Errorf("expected a struct pointer, got %T", c)
	}
	t := v.Type()

	var lines []string
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("env")
		if tag == "" || !field.IsExported() {
			continue
		}

		// Tag may carry options: "KEY,required" etc.
		key := strings.Split(tag, ",")[0]
		if key == "" {
			continue
		}

		val := v.Field(i)
		if val.IsZero() {
			continue
		}

		lines = append(lines, key+"="+formatValue(val))
	}

	out := strings.Join(lines, "\n")
	if out != "" {
		out += "\n"
	}
	return out, nil
}

// Section pairs a config struct with the comment header written above its
// lines.
type Section struct {
	Name   string
	Config any
}

// MarshalSections concatenates several config structs into one .env document
// in the given order.
func MarshalSections(sections []Section) (string, error) {
	var b strings.Builder
	for _, s := range sections {
		content, err := MarshalEnv(s.Config)
		if err != nil {
			return "", fmt.Errorf("marshal %s config: %w", s.Name, err)
		}
		if content == "" {
			continue
		}
		fmt.Fprintf(&b, "# %s\n%s\n", s.Name, content)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// formatValue writes a field the way caarlos0/env reads it back. Durations
// serialize as "45s", not nanosecond counts.
func formatValue(v reflect.Value) string {
	if d, ok := v.Interface().(time.Duration); ok {
		return d.String()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

package config

import (
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// trimmedSliceHookFunc splits strings into slices like
// mapstructure.StringToSliceHookFunc, trimming blanks around items so
// "curl, git" and "" both decode as expected
func trimmedSliceHookFunc(sep string) mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Slice {
			return data, nil
		}
		raw := strings.TrimSpace(data.(string))
		if raw == "" {
			return []string{}, nil
		}
		parts := strings.Split(raw, sep)
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	}
}

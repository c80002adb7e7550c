package middleware

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type configGetter interface {
	Get(key string) string
}

// GetConfigs reads the ACCESS_CONTROL_* keys and returns them as CORS header overrides, e.g.
// ACCESS_CONTROL_ALLOW_ORIGIN becomes Access-Control-Allow-Origin.
func GetConfigs(c configGetter) map[string]string {
	middlewareConfigs := make(map[string]string)

	allowedCORSHeaders := []string{
		"ACCESS_CONTROL_ALLOW_ORIGIN",
		"ACCESS_CONTROL_ALLOW_HEADERS",
		"ACCESS_CONTROL_ALLOW_CREDENTIALS",
		"ACCESS_CONTROL_EXPOSE_HEADERS",
		"ACCESS_CONTROL_MAX_AGE",
	}

	for _, v := range allowedCORSHeaders {
		if val := c.Get(v); val != "" {
			middlewareConfigs[convertHeaderNames(v)] = val
		}
	}

	return middlewareConfigs
}

func convertHeaderNames(header string) string {
	words := strings.Split(header, "_")
	titleCaser := cases.Title(language.Und)

	for i, v := range words {
		words[i] = titleCaser.String(strings.ToLower(v))
	}

	return strings.Join(words, "-")
}

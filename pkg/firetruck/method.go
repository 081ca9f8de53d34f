package firetruck

import (
	"fmt"
	"net/http"
	"strings"
)

// validMethods lists the supported verbs in the order they are reported to callers.
var validMethods = []string{
	http.MethodDelete,
	http.MethodGet,
	http.MethodPatch,
	http.MethodPost,
	http.MethodPut,
}

// ValidMethods returns the HTTP methods the API accepts.
func ValidMethods() []string {
	out := make([]string, len(validMethods))
	copy(out, validMethods)
	return out
}

// IsValidMethod reports whether method is supported. Matching is case-sensitive.
func IsValidMethod(method string) bool {
	for _, m := range validMethods {
		if m == method {
			return true
		}
	}
	return false
}

// BodyAllowed reports whether a JSON body is attached for method.
func BodyAllowed(method string) bool {
	switch method {
	case http.MethodPatch, http.MethodPost, http.MethodPut:
		return true
	default:
		return false
	}
}

func checkMethod(method string) error {
	if IsValidMethod(method) {
		return nil
	}
	return invalidArgument("Do", fmt.Sprintf("%q is not a valid HTTP method: available methods are %s",
		method, strings.Join(validMethods, ", ")))
}

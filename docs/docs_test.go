package docs

import (
	"strings"
	"testing"
)

func TestSwaggerInfoBasic(t *testing.T) {
	if SwaggerInfo == nil {
		t.Fatalf("SwaggerInfo unexpectedly nil")
	}
	if SwaggerInfo.Title == "" {
		t.Fatalf("expected non-empty Title in SwaggerInfo")
	}
	if !strings.Contains(SwaggerInfo.SwaggerTemplate, "paths") {
		t.Fatalf("expected SwaggerTemplate to contain 'paths'")
	}
	for _, route := range []string{"/hospitals/register", "/doctors/login", "/users/{id}"} {
		if !strings.Contains(SwaggerInfo.SwaggerTemplate, route) {
			t.Fatalf("expected SwaggerTemplate to document %s", route)
		}
	}
}

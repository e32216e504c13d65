package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDoc_DescribesAPI(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}

	var spec struct {
		Paths map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(doc), &spec); err != nil {
		t.Fatalf("spec is not valid JSON: %v", err)
	}
	if len(spec.Paths) == 0 {
		t.Fatal("spec has no paths")
	}

	for _, route := range []string{"/auth/signup", "/sellers", "/quotations", "/users/{userId}"} {
		if _, ok := spec.Paths[route]; !ok {
			t.Errorf("path %s missing from spec", route)
		}
	}
}

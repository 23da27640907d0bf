package docs

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDocIsRegistered(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}

	var spec map[string]any
	if err := json.Unmarshal([]byte(doc), &spec); err != nil {
		t.Fatalf("rendered doc is not valid JSON: %v", err)
	}
	if spec["basePath"] != "/api/v1" {
		t.Fatalf("basePath = %v, want /api/v1", spec["basePath"])
	}
	if !strings.Contains(doc, "/lessons/{id}/complete") {
		t.Fatalf("doc is missing lesson completion path")
	}
}

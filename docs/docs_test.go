package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwagger_RegistradoYValido(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var swagger struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &swagger))
	assert.Equal(t, "2.0", swagger.Swagger)
	assert.Contains(t, swagger.Paths, "/api/session")
	assert.Contains(t, swagger.Paths["/api/warehouses/{id}/supervisors/bulk"], "post")
}

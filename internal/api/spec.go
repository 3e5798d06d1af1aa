package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPIDocument []byte

var (
	loadOnce sync.Once
	swagger  *openapi3.T
	loadErr  error

	registerOnce sync.Once
	registerErr  error
)

// SwaggerInfo is the swag registry entry behind GET /openapi.json.
var SwaggerInfo = &swag.Spec{
	InfoInstanceName: swag.Name,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

// GetSwagger returns the parsed and validated document. It is shared; do not
// modify it.
func GetSwagger() (*openapi3.T, error) {
	loadOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(openAPIDocument)
		if err != nil {
			loadErr = fmt.Errorf("parse openapi document: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			loadErr = fmt.Errorf("invalid openapi document: %w", err)
			return
		}
		swagger = doc
	})
	return swagger, loadErr
}

// RegisterDocsRoutes serves the API document as JSON at GET /openapi.json.
func RegisterDocsRoutes(m ServeMux) error {
	registerOnce.Do(func() {
		doc, err := GetSwagger()
		if err != nil {
			registerErr = err
			return
		}

		tmpl, err := docTemplate(doc)
		if err != nil {
			registerErr = err
			return
		}

		SwaggerInfo.Title = doc.Info.Title
		SwaggerInfo.Version = doc.Info.Version
		SwaggerInfo.SwaggerTemplate = tmpl
		swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
	})
	if registerErr != nil {
		return registerErr
	}

	m.HandleFunc("GET /openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	})
	return nil
}

// docTemplate renders doc as JSON with the info title and version left as
// swag template fields.
func docTemplate(doc *openapi3.T) (string, error) {
	info := *doc.Info
	info.Title = "{{.Title}}"
	info.Version = "{{.Version}}"

	tmpl := *doc
	tmpl.Info = &info

	b, err := json.Marshal(&tmpl)
	if err != nil {
		return "", fmt.Errorf("render openapi document: %w", err)
	}
	return string(b), nil
}

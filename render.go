package swagger

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
)

var (
	scalarTmpl    = template.Must(template.New("scalar").Parse(scalarHTML))
	swaggerUITmpl = template.Must(template.New("swagger-ui").Parse(swaggerUIHTML))
)

// renderPage renders the documentation page for the configured provider.
// An unrecognized provider or a non-serializable option value returns an
// error rather than a broken page.
func (c Config) renderPage() (string, error) {
	switch c.Provider {
	case ProviderScalar:
		return c.renderScalar()
	case ProviderSwaggerUI:
		return c.renderSwaggerUI()
	default:
		return "", fmt.Errorf("unknown provider %q", c.Provider)
	}
}

type scalarPage struct {
	Title         string
	Description   string
	SpecURL       string
	Configuration string
	ScriptURL     string
}

func (c Config) renderScalar() (string, error) {
	cfg := c.ScalarConfig
	if cfg == nil {
		cfg = map[string]any{}
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("serialize scalar configuration: %w", err)
	}

	info := c.mergedInfo()

	var sb strings.Builder
	err = scalarTmpl.Execute(&sb, scalarPage{
		Title:         info.Title,
		Description:   info.Description,
		SpecURL:       c.SpecPath,
		Configuration: string(raw),
		ScriptURL:     c.scalarScriptURL(),
	})
	if err != nil {
		return "", fmt.Errorf("render scalar page: %w", err)
	}
	return sb.String(), nil
}

func (c Config) scalarScriptURL() string {
	if c.ScalarCDN != "" {
		return c.ScalarCDN
	}
	return "https://cdn.jsdelivr.net/npm/@scalar/api-reference@" + c.ScalarVersion + "/dist/browser/standalone.min.js"
}

type swaggerUIPage struct {
	Title        string
	Description  string
	Stylesheet   string
	AutoDarkMode bool
	BundleURL    string
	Options      template.JS
}

func (c Config) renderSwaggerUI() (string, error) {
	opts := map[string]any{
		"dom_id": "#swagger-ui",
		"url":    c.SpecPath,
	}
	for k, v := range c.SwaggerOptions {
		opts[k] = v
	}
	raw, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("serialize swagger-ui options: %w", err)
	}

	info := c.mergedInfo()

	var sb strings.Builder
	err = swaggerUITmpl.Execute(&sb, swaggerUIPage{
		Title:        info.Title,
		Description:  info.Description,
		Stylesheet:   c.Theme,
		AutoDarkMode: c.AutoDarkMode,
		BundleURL:    "https://unpkg.com/swagger-ui-dist@" + c.Version + "/swagger-ui-bundle.js",
		//nolint:gosec // marshaled above with HTML escaping intact
		Options: template.JS(raw),
	})
	if err != nil {
		return "", fmt.Errorf("render swagger-ui page: %w", err)
	}
	return sb.String(), nil
}

const scalarHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <meta name="description" content="{{.Description}}">
  <style>
    body { margin: 0; }
  </style>
</head>
<body>
  <script id="api-reference" data-url="{{.SpecURL}}" data-configuration="{{.Configuration}}"></script>
  <script src="{{.ScriptURL}}"></script>
</body>
</html>`

const swaggerUIHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <meta name="description" content="{{.Description}}">
  <link rel="stylesheet" href="{{.Stylesheet}}">
{{- if .AutoDarkMode}}
  <style>
    @media (prefers-color-scheme: dark) {
      body { background-color: #222; }
      .swagger-ui { filter: invert(88%) hue-rotate(180deg); }
      .swagger-ui .microlight { filter: invert(100%) hue-rotate(180deg); }
    }
  </style>
{{- end}}
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="{{.BundleURL}}"></script>
  <script>
    window.onload = () => {
      window.ui = SwaggerUIBundle({{.Options}});
    };
  </script>
</body>
</html>`

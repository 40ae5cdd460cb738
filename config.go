package swagger

import "strings"

// Provider selects which viewer the documentation page embeds.
type Provider string

// Supported viewers.
const (
	// ProviderScalar embeds the Scalar API reference viewer.
	ProviderScalar Provider = "scalar"
	// ProviderSwaggerUI embeds the classic Swagger UI viewer.
	ProviderSwaggerUI Provider = "swagger-ui"
)

// Config configures the documentation middleware. Every field is optional;
// zero values fall back to the documented defaults. The configuration is
// resolved once at construction time and never mutated afterwards, so
// separate middleware instances are fully independent.
type Config struct {
	// Provider selects the viewer rendered at Path. Default: ProviderScalar.
	Provider Provider

	// Path serves the documentation page. Default: "/swagger". A missing
	// leading slash is added.
	Path string

	// SpecPath serves the OpenAPI document as JSON. Default: Path + "/json".
	SpecPath string

	// YAMLPath, when set, additionally serves the document as YAML.
	// Empty disables the YAML endpoint.
	YAMLPath string

	// Documentation is the OpenAPI fragment merged with defaults into the
	// served document. Paths are taken verbatim; routes registered on the
	// host server are not discovered.
	Documentation Documentation

	// Version is the swagger-ui-dist release loaded from unpkg.
	// Default: "5.9.0". Ignored by the scalar provider.
	Version string

	// Theme overrides the swagger-ui stylesheet URL. Default: the
	// version-matched swagger-ui.css. Ignored by the scalar provider.
	Theme string

	// AutoDarkMode darkens the swagger-ui page when the browser prefers a
	// dark color scheme. Ignored by the scalar provider.
	AutoDarkMode bool

	// SwaggerOptions are extra SwaggerUIBundle options embedded in the page
	// as JSON. Keys here override the generated url and dom_id. Values must
	// be JSON-serializable; anything else fails the page render with a 500.
	SwaggerOptions map[string]any

	// ScalarVersion is the @scalar/api-reference release loaded from
	// jsdelivr. Default: "latest". Ignored by the swagger-ui provider.
	ScalarVersion string

	// ScalarCDN overrides the full scalar script URL. Ignored by the
	// swagger-ui provider.
	ScalarCDN string

	// ScalarConfig is serialized into the viewer's data-configuration
	// attribute. Values must be JSON-serializable; anything else fails the
	// page render with a 500. Ignored by the swagger-ui provider.
	ScalarConfig map[string]any

	// ExcludePaths removes the listed paths from the served document.
	ExcludePaths []string

	// ExcludeMethods removes the listed HTTP methods from every path in the
	// served document. Matching is case-insensitive.
	ExcludeMethods []string

	// ExcludeTags removes operations carrying any of the listed tags, and
	// the matching document-level tag entries.
	ExcludeTags []string

	// ExcludeStaticFiles removes paths whose final segment names a file,
	// such as "/assets/app.js".
	ExcludeStaticFiles bool
}

// Viewer asset defaults.
const (
	defaultPath             = "/swagger"
	defaultSwaggerUIVersion = "5.9.0"
	defaultScalarVersion    = "latest"
)

// resolve merges the optional user config with defaults and normalizes the
// intercepted paths. The result is captured by value; nothing mutates it
// after construction.
func resolve(cfg []Config) Config {
	c := Config{
		Provider:      ProviderScalar,
		Path:          defaultPath,
		Version:       defaultSwaggerUIVersion,
		ScalarVersion: defaultScalarVersion,
	}
	if len(cfg) > 0 {
		if cfg[0].Provider != "" {
			c.Provider = cfg[0].Provider
		}
		if cfg[0].Path != "" {
			c.Path = cfg[0].Path
		}
		c.SpecPath = cfg[0].SpecPath
		c.YAMLPath = cfg[0].YAMLPath
		c.Documentation = cfg[0].Documentation
		if cfg[0].Version != "" {
			c.Version = cfg[0].Version
		}
		c.Theme = cfg[0].Theme
		c.AutoDarkMode = cfg[0].AutoDarkMode
		c.SwaggerOptions = cfg[0].SwaggerOptions
		if cfg[0].ScalarVersion != "" {
			c.ScalarVersion = cfg[0].ScalarVersion
		}
		c.ScalarCDN = cfg[0].ScalarCDN
		c.ScalarConfig = cfg[0].ScalarConfig
		c.ExcludePaths = cfg[0].ExcludePaths
		c.ExcludeMethods = cfg[0].ExcludeMethods
		c.ExcludeTags = cfg[0].ExcludeTags
		c.ExcludeStaticFiles = cfg[0].ExcludeStaticFiles
	}

	c.Path = leadingSlash(c.Path)
	if c.SpecPath == "" {
		c.SpecPath = c.Path + "/json"
	}
	c.SpecPath = leadingSlash(c.SpecPath)
	if c.YAMLPath != "" {
		c.YAMLPath = leadingSlash(c.YAMLPath)
	}
	if c.Theme == "" {
		c.Theme = "https://unpkg.com/swagger-ui-dist@" + c.Version + "/swagger-ui.css"
	}

	return c
}

func leadingSlash(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

package swagger

// Test-only exports for internal functions.
var (
	IsStaticFile = isStaticFile
	LeadingSlash = leadingSlash
)

// Resolve exposes config resolution for tests.
func Resolve(cfg ...Config) Config { return resolve(cfg) }

// RenderPage exposes the page renderer for tests. It expects a resolved
// config.
func RenderPage(c Config) (string, error) { return c.renderPage() }

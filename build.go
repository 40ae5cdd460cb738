package swagger

import "strings"

// Defaults applied to the info section of the generated document.
const (
	defaultTitle       = "API Documentation"
	defaultDescription = "Development documentation"
	defaultInfoVersion = "1.0.0"
)

// openAPIVersion is the OpenAPI release the generated document declares.
const openAPIVersion = "3.0.3"

// Spec builds the OpenAPI document the middleware serves at the spec path.
// It is pure: the same configuration always yields a structurally equal
// document, and the caller's Documentation fragment is never mutated.
func Spec(cfg ...Config) Document {
	return resolve(cfg).document()
}

// document merges the configured fragment with defaults and applies the
// exclusion rules. Called once per spec request; nothing is cached.
func (c Config) document() Document {
	return Document{
		OpenAPI:    openAPIVersion,
		Info:       c.mergedInfo(),
		Paths:      c.filteredPaths(),
		Components: c.Documentation.Components,
		Tags:       c.filteredTags(),
	}
}

// mergedInfo fills the defaulted info fields the fragment left empty.
func (c Config) mergedInfo() Info {
	info := c.Documentation.Info
	if info.Title == "" {
		info.Title = defaultTitle
	}
	if info.Description == "" {
		info.Description = defaultDescription
	}
	if info.Version == "" {
		info.Version = defaultInfoVersion
	}
	return info
}

// filteredPaths copies the fragment's paths, dropping everything the
// exclusion rules name. The fragment's own maps are left untouched. A path
// item emptied by method or tag exclusion is dropped entirely; an item the
// caller supplied empty survives as-is.
func (c Config) filteredPaths() Paths {
	paths := make(Paths, len(c.Documentation.Paths))
	for path, item := range c.Documentation.Paths {
		if c.excludePath(path) {
			continue
		}

		kept := make(PathItem, len(item))
		for method, op := range item {
			if c.excludeMethod(method) || c.excludeOperation(op) {
				continue
			}
			kept[method] = op
		}

		if len(kept) == 0 && len(item) > 0 {
			continue
		}
		paths[path] = kept
	}
	return paths
}

// filteredTags returns the fragment's tag list minus the excluded names.
func (c Config) filteredTags() []Tag {
	tags := make([]Tag, 0, len(c.Documentation.Tags))
	for _, tag := range c.Documentation.Tags {
		if !c.excludeTag(tag.Name) {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (c Config) excludePath(path string) bool {
	for _, p := range c.ExcludePaths {
		if p == path {
			return true
		}
	}
	return c.ExcludeStaticFiles && isStaticFile(path)
}

func (c Config) excludeMethod(method string) bool {
	for _, m := range c.ExcludeMethods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}

func (c Config) excludeOperation(op Operation) bool {
	for _, tag := range op.Tags {
		if c.excludeTag(tag) {
			return true
		}
	}
	return false
}

func (c Config) excludeTag(name string) bool {
	for _, t := range c.ExcludeTags {
		if t == name {
			return true
		}
	}
	return false
}

// isStaticFile reports whether the final path segment names a file,
// e.g. "/assets/app.js".
func isStaticFile(path string) bool {
	last := path[strings.LastIndex(path, "/")+1:]
	return strings.Contains(last, ".")
}

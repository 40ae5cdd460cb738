package swagger

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteSpec writes the OpenAPI document as indented JSON to w. Useful for
// exporting the document at build time instead of over HTTP.
func WriteSpec(w io.Writer, cfg ...Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Spec(cfg...))
}

// WriteSpecYAML writes the OpenAPI document as YAML to w. The document is
// marshaled in full before any byte is written, so a failed marshal leaves
// w untouched.
func WriteSpecYAML(w io.Writer, cfg ...Config) error {
	body, err := marshalYAML(Spec(cfg...))
	if err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

// marshalYAML wraps yaml.Marshal, recovering the panic yaml.v3 raises for
// unmarshalable values (channels, functions) into a returned error.
// encoding/json reports those values as errors; yaml.v3 does not.
func marshalYAML(v any) (out []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("marshal yaml: %v", rec)
		}
	}()
	return yaml.Marshal(v)
}

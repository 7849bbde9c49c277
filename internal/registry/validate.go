package registry

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/starui-dev/star/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("component", func(fl validator.FieldLevel) bool {
		return componentPattern.MatchString(fl.Field().String())
	})
	return v
}

// ParseManifest decodes and validates a manifest document. Component names
// are taken from the map keys.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.New("E248").
			WithDetail("Could not decode manifest: " + err.Error()).
			Wrap(err)
	}
	if m.Components == nil {
		m.Components = map[string]Component{}
	}
	for name, c := range m.Components {
		c.Name = name
		m.Components[name] = c
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest and every component against the naming and
// category rules.
func (m *Manifest) Validate() error {
	if err := validate.Struct(m); err != nil {
		return errors.New("E248").WithDetail(err.Error()).Wrap(err)
	}
	for _, name := range m.Names() {
		c := m.Components[name]
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single component's metadata.
func (c *Component) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.New("E248").
			WithDetail(fmt.Sprintf("Component %q: %v", c.Name, err)).
			Wrap(err)
	}
	return nil
}

// SPDX-License-Identifier: MIT
package validate

import "github.com/chidev/nestx/internal/model"

// MediaRules tunes the boundary checks applied to decoded Media records.
type MediaRules struct {
	// ExtNullable permits "ext": null. The schema lists ext as required but
	// the generated model defaults it to nil, so null is accepted by default.
	ExtNullable bool
	// URLSchemes restricts the url field; empty allows any scheme.
	URLSchemes []string
}

// DefaultMediaRules returns the rules used when nothing is configured.
func DefaultMediaRules() MediaRules {
	return MediaRules{
		ExtNullable: true,
		URLSchemes:  []string{"http", "https"},
	}
}

// Media enforces the required, non-empty contract on a record. The model
// itself never validates; call this at the edge where records enter.
func Media(m *model.Media, rules MediaRules) error {
	v := New()
	if m == nil {
		v.Required("$", false)
		return v.Err()
	}

	v.NotEmpty("id", m.ID)
	v.NotEmpty("name", m.Name)
	v.NotEmpty("caption", m.Caption)
	v.NotEmpty("description", m.Description)
	if !rules.ExtNullable {
		v.NotNull("ext", m.Ext)
	}
	v.URL("url", m.URL, rules.URLSchemes)
	v.NotEmpty("uri", m.URI)

	return v.Err()
}

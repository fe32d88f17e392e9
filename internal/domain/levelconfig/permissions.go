package levelconfig

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/atelier-community/atelier/internal/domain/entitlement"
)

// Permissions is the decoded feature -> status map of one level. Stored
// values that are not a valid status are kept aside so that a lookup of that
// feature reports the row as malformed instead of silently dropping it.
type Permissions struct {
	statuses map[entitlement.Feature]entitlement.Status
	invalid  map[entitlement.Feature]string
}

// NewPermissions builds a permission map from typed values.
func NewPermissions(statuses map[entitlement.Feature]entitlement.Status) (Permissions, error) {
	p := Permissions{statuses: make(map[entitlement.Feature]entitlement.Status, len(statuses))}
	for f, s := range statuses {
		if !f.IsValid() {
			return Permissions{}, fmt.Errorf("%w: %s", entitlement.ErrUnknownFeature, f)
		}
		if !s.IsValid() {
			return Permissions{}, fmt.Errorf("%w: invalid status %q for %s", entitlement.ErrMalformedConfig, s, f)
		}
		p.statuses[f] = s
	}
	return p, nil
}

// DecodePermissions parses the stored JSON object. Unknown feature keys are
// ignored; unknown status values are remembered as invalid.
func DecodePermissions(data []byte) (Permissions, error) {
	p := Permissions{statuses: map[entitlement.Feature]entitlement.Status{}}
	if len(data) == 0 {
		return p, nil
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return Permissions{}, fmt.Errorf("%w: %v", entitlement.ErrMalformedConfig, err)
	}

	for k, v := range raw {
		f := entitlement.Feature(k)
		if !f.IsValid() {
			continue
		}
		s := entitlement.Status(v)
		if !s.IsValid() {
			if p.invalid == nil {
				p.invalid = map[entitlement.Feature]string{}
			}
			p.invalid[f] = v
			continue
		}
		p.statuses[f] = s
	}
	return p, nil
}

// Encode serialises the entries for storage. Invalid values are written back
// verbatim so a decoded copy still reports the row as malformed.
func (p Permissions) Encode() ([]byte, error) {
	raw := make(map[string]string, len(p.statuses)+len(p.invalid))
	for f, v := range p.invalid {
		raw[string(f)] = v
	}
	for f, s := range p.statuses {
		raw[string(f)] = string(s)
	}
	return json.Marshal(raw)
}

// Lookup returns the stored status for f. ok is false when the row does not
// configure f; err is set when the stored value is not a valid status.
func (p Permissions) Lookup(f entitlement.Feature) (status entitlement.Status, ok bool, err error) {
	if v, bad := p.invalid[f]; bad {
		return "", true, fmt.Errorf("%w: invalid status %q for %s", entitlement.ErrMalformedConfig, v, f)
	}
	s, ok := p.statuses[f]
	return s, ok, nil
}

// IsComplete reports whether every feature has a valid status.
func (p Permissions) IsComplete() bool {
	return len(p.Missing()) == 0 && len(p.invalid) == 0
}

// Missing lists the features without a valid status, sorted by name.
func (p Permissions) Missing() []entitlement.Feature {
	var out []entitlement.Feature
	for _, f := range entitlement.AllFeatures() {
		if _, ok := p.statuses[f]; !ok {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Map returns a copy of the valid entries.
func (p Permissions) Map() map[entitlement.Feature]entitlement.Status {
	out := make(map[entitlement.Feature]entitlement.Status, len(p.statuses))
	for f, s := range p.statuses {
		out[f] = s
	}
	return out
}

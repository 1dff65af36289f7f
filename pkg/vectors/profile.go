package vectors

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile describes one named channel configuration a vector batch was
// captured under.
type Profile struct {
	Name string `yaml:"name"`
	SF   int    `yaml:"sf"`
	BW   int    `yaml:"bw"`
	CR   string `yaml:"cr"`
	Dir  string `yaml:"dir"`
}

// crIndex maps the coding-rate label ("4/5".."4/8") to its numeric index
// (5..8), matching the cr_idx carried in a container record header.
func (p Profile) crIndex() int {
	parts := strings.SplitN(p.CR, "/", 2)
	if len(parts) != 2 {
		return 0
	}
	idx, _ := strconv.Atoi(parts[1])
	return idx
}

// ParseProfiles reads the line-oriented profile list format: list items
// beginning with "-" start a new profile, and subsequent "key: value"
// lines (indentation ignored) set its fields until the next "-" line.
func ParseProfiles(r io.Reader) ([]Profile, error) {
	sc := bufio.NewScanner(r)
	var profiles []Profile
	var cur *Profile

	flush := func() {
		if cur != nil {
			profiles = append(profiles, *cur)
			cur = nil
		}
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "-") {
			flush()
			cur = &Profile{}
			line = strings.TrimSpace(strings.TrimPrefix(line, "-"))
			if line == "" {
				continue
			}
		}
		if cur == nil {
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.Trim(strings.TrimSpace(val), `"'`)

		switch key {
		case "name":
			cur.Name = val
		case "sf":
			cur.SF, _ = strconv.Atoi(val)
		case "bw":
			cur.BW, _ = strconv.Atoi(val)
		case "cr":
			cur.CR = val
		case "dir":
			cur.Dir = val
		}
	}
	flush()

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("vectors: parsing profiles: %w", err)
	}
	return profiles, nil
}

// ToYAML renders profiles as a standard YAML sequence, letting tooling
// round-trip a parsed line-oriented profile list through a conventional
// YAML document.
func ToYAML(profiles []Profile) ([]byte, error) {
	return yaml.Marshal(profiles)
}

// FromYAML is the inverse of ToYAML.
func FromYAML(data []byte) ([]Profile, error) {
	var profiles []Profile
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

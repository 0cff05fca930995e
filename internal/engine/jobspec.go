package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// JobSpec is the posting a candidate is evaluated against.
type JobSpec struct {
	Title          string   `mapstructure:"title" json:"title"`
	Description    string   `mapstructure:"description" json:"description"`
	RequiredSkills []string `mapstructure:"required-skills" json:"required_skills"`
	NiceToHave     []string `mapstructure:"nice-to-have" json:"nice_to_have,omitempty"`
}

// JobSpecFromMap decodes a configuration map into a JobSpec. Unknown keys are
// an error so a typo in the config fails loudly instead of silently relaxing
// the posting.
func JobSpecFromMap(raw map[string]any) (*JobSpec, error) {
	spec := &JobSpec{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      spec,
	})
	if err != nil {
		return nil, fmt.Errorf("build job spec decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode job spec: %w", err)
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// AllSkills returns the required skills followed by the nice-to-have ones.
// Both are rated for proficiency; only required skills count as matches.
func (j *JobSpec) AllSkills() []string {
	return append(append([]string{}, j.RequiredSkills...), j.NiceToHave...)
}

func (j *JobSpec) Validate() error {
	if strings.TrimSpace(j.Description) == "" && len(j.RequiredSkills) == 0 {
		return errors.New("job spec needs a description or required skills")
	}
	return nil
}

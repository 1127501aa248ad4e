package utils

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/newsroom/mono-repo/backend/shared/go-utils"
	"gopkg.in/yaml.v3"
)

//go:embed image_versions.yaml
var defaultImageVersions []byte

// Choice is one (key, label) option of a select field.
type Choice struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type imageVersion struct {
	VerboseName string `yaml:"verbose_name"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
}

type imageVersionsFile struct {
	Versions      map[string]imageVersion `yaml:"versions"`
	AdminVersions []string                `yaml:"admin_versions"`
}

// ImageSizes holds the image-size choices offered for article images.
type ImageSizes struct {
	choices []Choice
	valid   map[string]struct{}
}

// LoadImageSizes reads the version registry at path, or the built-in one
// when path is empty.
func LoadImageSizes(path string) (*ImageSizes, error) {
	if path == "" {
		return ParseImageSizes(defaultImageVersions)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image versions: %w", err)
	}
	return ParseImageSizes(data)
}

// ParseImageSizes builds the choices from admin_versions order, labelled by
// verbose_name, and appends the LEAVE option.
func ParseImageSizes(data []byte) (*ImageSizes, error) {
	var f imageVersionsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse image versions: %w", err)
	}

	s := &ImageSizes{valid: make(map[string]struct{}, len(f.AdminVersions)+1)}
	for _, key := range f.AdminVersions {
		v, ok := f.Versions[key]
		if !ok {
			return nil, fmt.Errorf("admin version %q is not defined under versions", key)
		}
		if _, dup := s.valid[key]; dup {
			continue
		}
		s.choices = append(s.choices, Choice{Key: key, Label: utils.FirstNonEmpty(v.VerboseName, key)})
		s.valid[key] = struct{}{}
	}
	s.choices = append(s.choices, Choice{Key: utils.LeaveImageSize, Label: utils.LeaveImageSize})
	s.valid[utils.LeaveImageSize] = struct{}{}
	return s, nil
}

// Choices returns a copy of the ordered choice list.
func (s *ImageSizes) Choices() []Choice {
	return append([]Choice(nil), s.choices...)
}

func (s *ImageSizes) Valid(key string) bool {
	_, ok := s.valid[key]
	return ok
}

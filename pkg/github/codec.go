package github

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the on-disk encoding of a label list
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks a label file format from the file extension.
// Unknown extensions and the empty path (stdin/stdout) use JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// labelRecord mirrors Label with optional fields so missing values can be told
// apart from zero values while decoding.
type labelRecord struct {
	Name        *string `json:"name" yaml:"name"`
	Description *string `json:"description" yaml:"description"`
	Color       *Color  `json:"color" yaml:"color"`
}

// tomlRecord keeps the color as text. go-toml reports UnmarshalText failures
// as plain decode errors, so colors are parsed after decoding.
type tomlRecord struct {
	Name        *string `toml:"name"`
	Description *string `toml:"description"`
	Color       *string `toml:"color"`
}

// tomlDocument wraps the label list since TOML has no top-level arrays
type tomlDocument struct {
	Labels []tomlRecord `toml:"labels"`
}

type tomlOutput struct {
	Labels []Label `toml:"labels"`
}

// DecodeLabels reads a label list. Any malformed element fails the whole
// document with a LabelDataError.
func DecodeLabels(r io.Reader, format Format) ([]Label, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read label data: %w", err)
	}

	var records []labelRecord
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &records)
	case FormatTOML:
		records, err = decodeTOML(data)
	case FormatJSON, "":
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, &LabelDataError{Source: string(FormatJSON), Cause: io.ErrUnexpectedEOF}
		}
		err = json.Unmarshal(data, &records)
	default:
		return nil, fmt.Errorf("unsupported label format: %s", format)
	}
	if err != nil {
		return nil, &LabelDataError{Source: string(format), Cause: err}
	}
	// A null or empty document is not a label list; an explicit empty list is
	if records == nil {
		return nil, &LabelDataError{Source: string(format), Cause: ErrNoLabelList}
	}

	labels, verrs := labelsFromRecords(records)
	if verrs.HasErrors() {
		return nil, &LabelDataError{Source: string(format), Cause: verrs}
	}
	return labels, nil
}

func decodeTOML(data []byte) ([]labelRecord, error) {
	var doc tomlDocument
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc.Labels == nil {
		return nil, nil
	}

	records := make([]labelRecord, 0, len(doc.Labels))
	for _, rec := range doc.Labels {
		record := labelRecord{Name: rec.Name, Description: rec.Description}
		if rec.Color != nil {
			color, err := ParseColor(*rec.Color)
			if err != nil {
				return nil, err
			}
			record.Color = &color
		}
		records = append(records, record)
	}
	return records, nil
}

func labelsFromRecords(records []labelRecord) ([]Label, ValidationErrors) {
	var verrs ValidationErrors
	labels := make([]Label, 0, len(records))

	for i, rec := range records {
		label := Label{}
		if rec.Name == nil || strings.TrimSpace(*rec.Name) == "" {
			verrs.Add(fmt.Sprintf("[%d].name", i), "", "label name is required")
		} else {
			label.Name = *rec.Name
		}
		if rec.Description != nil {
			label.Description = *rec.Description
		}
		if rec.Color == nil {
			verrs.Add(fmt.Sprintf("[%d].color", i), label.Name, "label color is required")
		} else {
			label.Color = *rec.Color
		}
		labels = append(labels, label)
	}

	verrs = append(verrs, ValidateLabels(labels)...)
	return labels, verrs
}

// ValidateLabels checks that label names are unique under case-insensitive
// comparison, which is how GitHub identifies labels within a repository.
func ValidateLabels(labels []Label) ValidationErrors {
	var verrs ValidationErrors
	seen := make(map[string]string, len(labels))

	for _, label := range labels {
		if label.Name == "" {
			continue
		}
		key := NormalizeName(label.Name)
		if first, ok := seen[key]; ok {
			verrs.Add("name", label.Name, fmt.Sprintf("duplicates label %q", first))
			continue
		}
		seen[key] = label.Name
	}

	return verrs
}

// EncodeLabels writes a label list in the given format. JSON output is
// indented with two spaces.
func EncodeLabels(w io.Writer, labels []Label, format Format) error {
	if labels == nil {
		labels = []Label{}
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(labels); err != nil {
			return fmt.Errorf("failed to encode labels as YAML: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(tomlOutput{Labels: labels}); err != nil {
			return fmt.Errorf("failed to encode labels as TOML: %w", err)
		}
		return nil
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(labels); err != nil {
			return fmt.Errorf("failed to encode labels as JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported label format: %s", format)
	}
}

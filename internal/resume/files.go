package resume

import (
	"bytes"
	"os"
	"path/filepath"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadYAML decodes the YAML file at path into out.
func LoadYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrFileNotFound, "%s", path)
		}
		return errors.Wrapf(err, "failed to read %s", path)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "failed to parse %s", path)
	}
	return nil
}

// SaveYAML encodes data with two-space indentation, creating parent
// directories as needed.
func SaveYAML(path string, data any) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return errors.Wrapf(err, "failed to encode %s", path)
	}
	if err := enc.Close(); err != nil {
		return errors.Wrapf(err, "failed to encode %s", path)
	}
	return WriteText(path, buf.String())
}

// ReadText returns the content of a text file.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(ErrFileNotFound, "%s", path)
		}
		return "", errors.Wrapf(err, "failed to read %s", path)
	}
	return string(data), nil
}

// WriteText writes content to path, creating parent directories as needed.
func WriteText(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// HTMLToText converts an HTML document (typically a saved job posting) to
// markdown text suitable for prompts.
func HTMLToText(html string) (string, error) {
	converter := md.NewConverter("", true, nil)
	text, err := converter.ConvertString(html)
	if err != nil {
		return "", errors.Wrap(err, "failed to convert html to markdown")
	}
	return text, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

package resume

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrSkillExists = errors.New("skill already exists")

// AddSkill appends a skill to common/skills.yml. The file is edited as a YAML
// node tree so existing comments and key order survive the rewrite.
func AddSkill(dataDir string, skill Skill) error {
	path := filepath.Join(dataDir, CommonDir, "skills.yml")
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to read %s", path)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return errors.Wrapf(err, "failed to parse %s", path)
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return errors.Errorf("%s: expected a mapping at the top level", path)
	}

	seq := mappingValue(root, "skills")
	if seq == nil {
		seq = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "skills"},
			seq,
		)
	}
	switch {
	case seq.Kind == yaml.ScalarNode && seq.ShortTag() == "!!null":
		// "skills:" with nothing after it
		*seq = yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	case seq.Kind != yaml.SequenceNode:
		return errors.Errorf("%s: skills must be a list", path)
	}

	for _, item := range seq.Content {
		if name := mappingValue(item, "name"); name != nil && strings.EqualFold(name.Value, skill.Name) {
			return errors.Wrapf(ErrSkillExists, "%s", skill.Name)
		}
	}

	var node yaml.Node
	if err := node.Encode(skill); err != nil {
		return errors.Wrap(err, "failed to encode skill")
	}
	seq.Content = append(seq.Content, &node)

	return SaveYAML(path, &doc)
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

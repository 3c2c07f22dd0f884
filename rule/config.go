package rule

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/scorekit/aggregate"
	"github.com/rushteam/scorekit/function"
)

// Config 是排序规则的配置结构（支持 YAML/JSON）。
//
//	rule:
//	  name: title_match
//	  mode: SUM
//	  terms:
//	    - field: title
//	      function: token_count
//	      config: {min_length: 2}
type Config struct {
	Rule struct {
		Name  string       `yaml:"name" json:"name"`
		Mode  string       `yaml:"mode" json:"mode"` // FIRST / AVG / MAX / SUM / MIN / MULTIPLY
		Terms []TermConfig `yaml:"terms" json:"terms"`
	} `yaml:"rule" json:"rule"`
}

// TermConfig 是单个 Term 的配置。
type TermConfig struct {
	Field    string         `yaml:"field" json:"field"`
	Function string         `yaml:"function" json:"function"` // token_count / numeric / recency / expression 等
	Config   map[string]any `yaml:"config" json:"config"`     // Function 特定配置
}

// LoadFromYAML 从 YAML 文件加载规则配置。
func LoadFromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML 解析 YAML 规则配置。
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}

// LoadFromJSON 从 JSON 文件加载规则配置。
func LoadFromJSON(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return &cfg, nil
}

// Build 根据配置构建 Rule，Function 通过 function 包的注册表构建。
func (c *Config) Build(deps function.Deps) (*Rule, error) {
	mode, err := aggregate.ParseJoinMode(c.Rule.Mode)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", c.Rule.Name, err)
	}
	terms := make([]Term, 0, len(c.Rule.Terms))
	for i, tc := range c.Rule.Terms {
		if tc.Field == "" {
			return nil, fmt.Errorf("term %d: field is required", i)
		}
		fn, err := function.Build(tc.Function, tc.Config, deps)
		if err != nil {
			return nil, fmt.Errorf("build term %d (%s): %w", i, tc.Field, err)
		}
		terms = append(terms, Term{Field: tc.Field, Function: fn})
	}
	return New(c.Rule.Name, mode, terms...), nil
}

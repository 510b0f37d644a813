package game

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// effectSpec is the YAML shape of an effect descriptor. The condition key is
// a mapping for conditionals and a filter name for grid manipulations, so it
// is decoded lazily.
type effectSpec struct {
	Type         string      `yaml:"type"`
	Target       string      `yaml:"target"`
	Value        int         `yaml:"value"`
	Scale        int         `yaml:"scale"`
	IgnoreBlock  bool        `yaml:"ignore_block"`
	MaxHPDivisor int         `yaml:"max_hp_divisor"`
	Subtype      string      `yaml:"subtype"`
	Condition    yaml.Node   `yaml:"condition"`
	Effect       *effectSpec `yaml:"effect"`
	Action       string      `yaml:"action"`
	Selector     string      `yaml:"target_selector"`
	Count        int         `yaml:"count"`
	ToType       string      `yaml:"to_type"`
}

type conditionSpec struct {
	Stat  string `yaml:"stat"`
	Op    string `yaml:"op"`
	Value int    `yaml:"value"`
	Ref   string `yaml:"ref"`
}

// effectTypeAliases maps every accepted type key to a canonical name.
// The Korean keys come from the card sheets.
var effectTypeAliases = map[string]string{
	"attack":            "attack",
	"damage":            "attack",
	"공격":                "attack",
	"block":             "block",
	"방어":                "block",
	"heal":              "heal",
	"회복":                "heal",
	"buff":              "buff",
	"버프":                "buff",
	"debuff":            "debuff",
	"디버프":               "debuff",
	"special":           "special",
	"특수":                "special",
	"conditional":       "conditional",
	"조건":                "conditional",
	"grid":              "grid",
	"grid_manipulation": "grid",
	"gridmanipulation":  "grid",
	"그리드":               "grid",
}

func (s *effectSpec) toEffect() (Effect, error) {
	canonical, ok := effectTypeAliases[strings.ToLower(strings.TrimSpace(s.Type))]
	if !ok {
		return UnknownEffect{Type: s.Type}, nil
	}

	switch canonical {
	case "attack":
		return Attack{Target: Target(s.Target), Value: s.Value, Scale: s.Scale, IgnoreBlock: s.IgnoreBlock}, nil
	case "block":
		return Block{Value: s.Value, Scale: s.Scale}, nil
	case "heal":
		return Heal{Value: s.Value, MaxHPDivisor: s.MaxHPDivisor}, nil
	case "buff":
		return Buff{Target: Target(s.Target), Subtype: s.Subtype, Value: s.Value}, nil
	case "debuff":
		return Debuff{Target: Target(s.Target), Subtype: s.Subtype, Value: s.Value}, nil
	case "special":
		return Special{Subtype: s.Subtype, Value: s.Value, Target: Target(s.Target)}, nil
	case "conditional":
		var cs conditionSpec
		if s.Condition.Kind != 0 {
			if err := s.Condition.Decode(&cs); err != nil {
				return nil, fmt.Errorf("line %d: conditional condition: %w", s.Condition.Line, err)
			}
		}
		if s.Effect == nil {
			return nil, fmt.Errorf("conditional effect on %q has no nested effect", cs.Stat)
		}
		inner, err := s.Effect.toEffect()
		if err != nil {
			return nil, err
		}
		return Conditional{
			Condition: Condition{Stat: cs.Stat, Op: cs.Op, Value: cs.Value, Ref: Target(cs.Ref)},
			Effect:    inner,
		}, nil
	case "grid":
		var filter string
		if s.Condition.Kind != 0 {
			if err := s.Condition.Decode(&filter); err != nil {
				return nil, fmt.Errorf("line %d: grid filter must be a name: %w", s.Condition.Line, err)
			}
		}
		return GridManipulation{
			Action: s.Action,
			Target: Selector(s.Selector),
			Count:  s.Count,
			ToType: s.ToType,
			Filter: GridFilter(filter),
		}, nil
	}
	return UnknownEffect{Type: s.Type}, nil
}

func decodeEffects(specs []effectSpec) ([]Effect, error) {
	var out []Effect
	for i := range specs {
		e, err := specs[i].toEffect()
		if err != nil {
			return nil, fmt.Errorf("effect %d: %w", i+1, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// ParseEffects decodes a YAML sequence of effect descriptors.
func ParseEffects(data []byte) ([]Effect, error) {
	var specs []effectSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parse effects YAML: %w", err)
	}
	return decodeEffects(specs)
}

type cardDefSpec struct {
	ID               string       `yaml:"id"`
	Name             string       `yaml:"name"`
	Element          Element      `yaml:"element"`
	Grade            string       `yaml:"grade"`
	Description      string       `yaml:"description"`
	BingoDescription string       `yaml:"bingo_description"`
	SingleEffects    []effectSpec `yaml:"single_effects"`
	BingoEffects     []effectSpec `yaml:"bingo_effects"`
}

func (d *CardDef) UnmarshalYAML(node *yaml.Node) error {
	var spec cardDefSpec
	if err := node.Decode(&spec); err != nil {
		return err
	}
	if spec.ID == "" {
		return fmt.Errorf("line %d: card definition has no id", node.Line)
	}
	if spec.Element == ElementNone {
		return fmt.Errorf("line %d: card %s has no element", node.Line, spec.ID)
	}
	single, err := decodeEffects(spec.SingleEffects)
	if err != nil {
		return fmt.Errorf("card %s single effects: %w", spec.ID, err)
	}
	bingo, err := decodeEffects(spec.BingoEffects)
	if err != nil {
		return fmt.Errorf("card %s bingo effects: %w", spec.ID, err)
	}
	name := spec.Name
	if name == "" {
		name = spec.ID
	}
	*d = CardDef{
		ID:               spec.ID,
		Name:             name,
		Element:          spec.Element,
		Grade:            spec.Grade,
		Description:      spec.Description,
		BingoDescription: spec.BingoDescription,
		SingleEffects:    single,
		BingoEffects:     bingo,
	}
	return nil
}

package targets

import (
	_ "embed"
	"errors"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"omibyte.io/stackguard/guard"
)

//go:embed targets.yaml
var rawTargets []byte

var targets Targets

var (
	ErrSeriesNotFound = errors.New("series not found")
	ErrChipNotFound   = errors.New("chip not found")
)

func All() Targets {
	return targets
}

type Targets []TargetInfo
type TargetInfo struct {
	Series       string   `yaml:"series"`
	Chips        []string `yaml:"chips"`
	Cpu          string   `yaml:"cpu"`
	Architecture string   `yaml:"architecture"`
	Triple       string   `yaml:"triple"`
	Tags         []string `yaml:"tags"`

	// StackSize is the number of bytes the linker script reserves for the
	// main stack (__stack_top - __stack_bottom).
	StackSize    uint64 `yaml:"stackSize"`
	BudgetWords  int    `yaml:"budgetWords"`
	SafetyMargin int    `yaml:"safetyMargin"`
	Sentinel     uint32 `yaml:"sentinel"`
}

// GuardConfig returns the stack guard layout for this target.
func (t TargetInfo) GuardConfig() guard.Config {
	return guard.Config{
		BudgetWords:  t.BudgetWords,
		SafetyMargin: t.SafetyMargin,
		Sentinel:     t.Sentinel,
	}
}

// Validate checks the guard layout against the reserved stack.
func (t TargetInfo) Validate() error {
	return t.GuardConfig().Validate(uintptr(t.StackSize))
}

func (t Targets) FindBySeries(name string) (TargetInfo, error) {
	for _, target := range t {
		if target.Series == strings.ToLower(name) {
			return target, nil
		}
	}
	return TargetInfo{}, ErrSeriesNotFound
}

func (t Targets) FindByChip(name string) (TargetInfo, error) {
	for _, target := range t {
		if slices.Contains(target.Chips, strings.ToLower(name)) {
			return target, nil
		}
	}
	return TargetInfo{}, ErrChipNotFound
}

// Find looks name up as a chip first and then as a series.
func (t Targets) Find(name string) (TargetInfo, error) {
	if target, err := t.FindByChip(name); err == nil {
		return target, nil
	}
	if target, err := t.FindBySeries(name); err == nil {
		return target, nil
	}
	return TargetInfo{}, errors.Join(ErrChipNotFound, ErrSeriesNotFound)
}

// Sorted returns a copy ordered by series name.
func (t Targets) Sorted() Targets {
	sorted := slices.Clone(t)
	slices.SortFunc(sorted, func(a, b TargetInfo) bool {
		return a.Series < b.Series
	})
	return sorted
}

// Load decodes a target table.
func Load(raw []byte) (Targets, error) {
	var t struct {
		Elements []TargetInfo `yaml:"targets"`
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	return t.Elements, nil
}

func init() {
	t, err := Load(rawTargets)
	if err != nil {
		panic(err)
	}
	targets = t
}

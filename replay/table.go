package replay

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/reflux/occultation"
)

// DefaultTolerance is used when a table does not set one.
const DefaultTolerance = 1e-12

var (
	// ErrInvalidTable is returned by Validate for malformed tables.
	ErrInvalidTable = errors.New("replay: invalid table")

	// ErrRecordedGeometry is returned by a case whose recorded classifier
	// outcome is an error.
	ErrRecordedGeometry = errors.New("replay: recorded geometry error")
)

// Table is a set of recorded observations for one surface-map degree.
type Table struct {
	YDeg      int     `yaml:"ydeg"`
	Tolerance float64 `yaml:"tolerance,omitempty"`
	Cases     []Case  `yaml:"cases"`
}

// Case is one recorded observation. It implements both
// occultation.Classifier[float64] and occultation.Integrals[float64] by
// replaying its recorded values.
type Case struct {
	Name   string             `yaml:"name"`
	B      float64            `yaml:"b"`
	Theta  float64            `yaml:"theta"`
	Bo     float64            `yaml:"bo"`
	Ro     float64            `yaml:"ro"`
	Status occultation.Status `yaml:"status"`
	Error  string             `yaml:"error,omitempty"`
	Kappa  []float64          `yaml:"kappa,flow,omitempty"`
	Lam    []float64          `yaml:"lam,flow,omitempty"`
	Xi     []float64          `yaml:"xi,flow,omitempty"`
	PInt   []float64          `yaml:"p,flow,omitempty"`
	QInt   []float64          `yaml:"q,flow,omitempty"`
	TInt   []float64          `yaml:"t,flow,omitempty"`
	Expect []float64          `yaml:"expect,flow,omitempty"`
}

// Load reads and validates a table from path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: reading %s: %w", path, err)
	}
	tbl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("replay: %s: %w", path, err)
	}

	return tbl, nil
}

// Parse decodes and validates a YAML table.
func Parse(data []byte) (*Table, error) {
	var tbl Table
	if err := yaml.Unmarshal(data, &tbl); err != nil {
		return nil, err
	}
	if err := tbl.Validate(); err != nil {
		return nil, err
	}

	return &tbl, nil
}

// Save writes the table to path as YAML.
func (t *Table) Save(path string) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("replay: encoding: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// Tol returns the comparison tolerance, falling back to DefaultTolerance.
func (t *Table) Tol() float64 {
	if t.Tolerance > 0 {
		return t.Tolerance
	}

	return DefaultTolerance
}

// Validate checks the degree and that no recorded vector is longer than the
// solver's N2 = (ydeg+2)² terms.
func (t *Table) Validate() error {
	if t.YDeg < 0 {
		return fmt.Errorf("%w: ydeg %d", ErrInvalidTable, t.YDeg)
	}
	if t.Tolerance < 0 {
		return fmt.Errorf("%w: negative tolerance", ErrInvalidTable)
	}
	n2 := (t.YDeg + 2) * (t.YDeg + 2)
	for i, c := range t.Cases {
		for name, v := range map[string][]float64{"p": c.PInt, "q": c.QInt, "t": c.TInt, "expect": c.Expect} {
			if len(v) > n2 {
				return fmt.Errorf("%w: case %d (%s): %s has %d terms, want <= %d", ErrInvalidTable, i, c.Name, name, len(v), n2)
			}
		}
	}

	return nil
}

// Observation returns the recorded (b, theta, bo, ro).
func (c *Case) Observation() occultation.Observation[float64] {
	return occultation.Observation[float64]{B: c.B, Theta: c.Theta, Bo: c.Bo, Ro: c.Ro}
}

// Classify replays the recorded geometry, ignoring its arguments.
func (c *Case) Classify(_, _, _, _ float64) (occultation.Geometry[float64], error) {
	if c.Error != "" {
		return occultation.Geometry[float64]{}, fmt.Errorf("%w: %s", ErrRecordedGeometry, c.Error)
	}

	return occultation.Geometry[float64]{
		Status: c.Status,
		Kappa:  c.Kappa,
		Lam:    c.Lam,
		Xi:     c.Xi,
	}, nil
}

// P replays the recorded occultor-boundary integrals, zero padded.
func (c *Case) P(dst []float64, _ int, _, _ float64, _ []float64) { replayInto(dst, c.PInt) }

// Q replays the recorded limb integrals, zero padded.
func (c *Case) Q(dst []float64, _ int, _ []float64) { replayInto(dst, c.QInt) }

// T replays the recorded terminator integrals, zero padded.
func (c *Case) T(dst []float64, _ int, _, _ float64, _ []float64) { replayInto(dst, c.TInt) }

func replayInto(dst, src []float64) {
	n := copy(dst, src)
	clear(dst[n:])
}

// Package catalogfile loads user-authored seed catalogs: YAML files
// declaring tracks and habits with stable ids, validated against an
// embedded CUE schema before anything reaches the definition store.
//
// Seed files exist so a whole habit protocol can be shared and
// imported in one step instead of a dozen add commands. Import is
// idempotent: definitions whose id already exists are skipped.
package catalogfile

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"

	"github.com/roach88/polymath/internal/habit"
)

//go:embed schema.cue
var schemaCUE string

// Seed is a parsed, schema-valid seed catalog.
type Seed struct {
	Tracks []habit.Track `json:"tracks"`
	Habits []habit.Habit `json:"habits"`
}

// LoadError represents a failure to load a seed file.
type LoadError struct {
	Code    string
	Message string
}

// Load error codes.
const (
	ErrCodeNotFound  = "SEED_NOT_FOUND"
	ErrCodeParse     = "SEED_PARSE_FAILED"
	ErrCodeSchema    = "SEED_SCHEMA_VIOLATION"
	ErrCodeReference = "SEED_DANGLING_TRACK"
)

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Load reads, validates, and decodes a seed catalog file.
//
// Validation is two-phase: the CUE schema enforces shape and required
// fields; a referential check then rejects habits whose trackId names
// a track the file does not declare (importing those would strand the
// habit in no visible section).
func Load(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("seed file not found: %s", path)}
		}
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading seed file: %v", err)}
	}

	ctx := cuecontext.New()

	file, err := yaml.Extract(path, data)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("parsing YAML: %v", err)}
	}
	value := ctx.BuildFile(file)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("building value: %v", err)}
	}

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		// The schema is embedded; failing to compile it is a bug, not
		// a user error.
		return nil, fmt.Errorf("compile embedded schema: %w", err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, &LoadError{Code: ErrCodeSchema, Message: err.Error()}
	}

	var seed Seed
	if err := unified.Decode(&seed); err != nil {
		return nil, &LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("decoding seed: %v", err)}
	}

	declared := make(map[string]bool, len(seed.Tracks))
	for _, t := range seed.Tracks {
		declared[t.ID] = true
	}
	for _, h := range seed.Habits {
		if !declared[h.TrackID] {
			return nil, &LoadError{
				Code:    ErrCodeReference,
				Message: fmt.Sprintf("habit %q references undeclared track %q", h.ID, h.TrackID),
			}
		}
	}

	return &seed, nil
}

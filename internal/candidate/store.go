package candidate

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

const unknownName = "Unknown"

// RecordError reports a malformed dataset record. The record is still loaded
// with defaulted fields so a single bad entry never loses the whole pool.
type RecordError struct {
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("candidate record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Load reads the candidate dataset from a JSON file. A missing file or a
// top-level shape that is not a list of records is a fatal error. Individual
// malformed records are defaulted and reported via the second return value so
// callers can audit data quality.
func Load(path string) (*Candidates, []*RecordError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading candidate dataset %q: %w", path, err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("candidate dataset %q is not a list of records: %w", path, err)
	}

	candidates := &Candidates{Items: make([]*Candidate, 0, len(raw))}
	var recordErrs []*RecordError

	for idx, record := range raw {
		item, err := decodeRecord(record)
		if err != nil {
			recordErrs = append(recordErrs, &RecordError{Index: idx, Err: err})
		}
		item.ID = uuid.NewString()
		candidates.Items = append(candidates.Items, item)
	}

	return candidates, recordErrs, nil
}

// decodeRecord converts one raw dataset map into a Candidate. It always
// returns a usable candidate: fields that fail to decode are left at their
// defaults and the error describes what was dropped.
func decodeRecord(record map[string]any) (*Candidate, error) {
	item := &Candidate{}

	cfg := &mapstructure.DecoderConfig{
		Result:           item,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return normalize(item), err
	}

	decodeErr := decoder.Decode(record)
	return normalize(item), decodeErr
}

func normalize(item *Candidate) *Candidate {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		item.Name = unknownName
	}
	if item.Skills == nil {
		item.Skills = []string{}
	}
	if item.Location == nil {
		item.Location = []string{}
	}
	return item
}

package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/rankwidth/pkg/errors"
)

// ReadJSON decodes a report from r.
//
// ReadJSON returns an INVALID_INPUT error if the JSON is malformed, has
// unknown fields, lacks the function name, or describes a non-trivial run
// without a decomposition. It does not close r.
func ReadJSON(r io.Reader) (*Report, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var rep Report
	if err := dec.Decode(&rep); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode report")
	}
	if rep.Function == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "report has no function")
	}
	if !rep.Trivial && rep.Decomposition == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "report has no decomposition")
	}
	return &rep, nil
}

// ImportJSON reads a report from the JSON file at path.
func ImportJSON(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "report %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

package io

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	bperrors "github.com/matzehuels/bpmnlayout/pkg/errors"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
)

// ImportGraph reads a BPMN graph file at path, decodes it with
// [bpmn.ReadJSON] and closes the file.
//
// A missing file is reported with code FILE_NOT_FOUND. Malformed or
// invalid graphs are GraphValidationErrors, as returned by bpmn.ReadJSON.
func ImportGraph(path string) (*bpmn.Graph, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return bpmn.ReadJSON(f)
}

// ReadRecords decodes a JSON array of render records from r.
//
// Elements with shape "bpmn-edge" become edge records, everything else a
// node record. ReadRecords returns an INVALID_FORMAT error when the JSON
// is malformed. It does not check ids or edge endpoints; the editor does.
// ReadRecords does not close r.
func ReadRecords(r io.Reader) (layout.Records, error) {
	var recs layout.Records
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, bperrors.Wrap(bperrors.ErrCodeInvalidFormat, err, "decode records")
	}
	return recs, nil
}

// ImportRecords reads a record list file at path.
func ImportRecords(path string) (layout.Records, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRecords(f)
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, bperrors.Wrap(bperrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, bperrors.Wrap(bperrors.ErrCodeInvalidPath, err, "open %s", path)
	}
	return f, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives the per-document stages over an input URL list
// and persists the resulting records.
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/manual-extractor/internal/extract"
	"github.com/pdiddy/manual-extractor/internal/fetch"
	"github.com/pdiddy/manual-extractor/internal/language"
	"github.com/pdiddy/manual-extractor/internal/normalize"
	"github.com/pdiddy/manual-extractor/pkg/types"
)

// maxLineLength bounds a single input line.
const maxLineLength = 1 << 20

// State is the position of a Pipeline in its run.
type State int

const (
	StateIdle State = iota
	StateReading
	StateSerializing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReading:
		return "reading"
	case StateSerializing:
		return "serializing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Fetcher returns a local path for a normalized document URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// RecordBuilder validates and assembles one record.
type RecordBuilder interface {
	Build(id int, url, text, language string) (types.DocumentRecord, error)
}

// Writer persists the full record collection in one go.
type Writer interface {
	Write(records []types.DocumentRecord) error
}

// Sink receives the records of a completed run after they are written.
type Sink interface {
	Save(ctx context.Context, input string, records []types.DocumentRecord) error
}

// Stages are the collaborators a Pipeline composes.
type Stages struct {
	Fetcher    Fetcher
	Extractor  extract.Extractor
	Classifier language.Classifier
	Builder    RecordBuilder
	Writer     Writer

	// Sinks are optional and run after Writer succeeds.
	Sinks []Sink
}

// Pipeline processes the lines of one input file in order. A Pipeline is
// meant for a single run.
type Pipeline struct {
	input  string
	stages Stages
	log    io.Writer
	state  State
}

// New returns an idle Pipeline reading URLs from input. Progress lines are
// written to w.
func New(input string, stages Stages, w io.Writer) *Pipeline {
	if w == nil {
		w = io.Discard
	}
	return &Pipeline{input: input, stages: stages, log: w}
}

// State reports where the pipeline is in its run.
func (p *Pipeline) State() State { return p.state }

// Run processes every input line and writes all records once at the end.
// The first failure in any stage aborts the run before anything is written;
// the returned error names the offending line.
func (p *Pipeline) Run(ctx context.Context) (_ []types.DocumentRecord, err error) {
	defer func() {
		if err != nil {
			p.state = StateFailed
		}
	}()

	p.state = StateReading
	f, err := os.Open(p.input)
	if err != nil {
		return nil, fmt.Errorf("%w: opening input: %w", types.ErrIO, err)
	}
	defer f.Close()

	records := []types.DocumentRecord{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for id := 0; scanner.Scan(); id++ {
		rec, err := p.processLine(ctx, id, scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", id+1, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading input: %w", types.ErrIO, err)
	}

	p.state = StateSerializing
	if err := p.stages.Writer.Write(records); err != nil {
		return nil, err
	}
	for _, sink := range p.stages.Sinks {
		if err := sink.Save(ctx, p.input, records); err != nil {
			return nil, err
		}
	}

	p.state = StateDone
	fmt.Fprintf(p.log, "\nRun summary: %d record(s) written\n", len(records))
	return records, nil
}

// processLine runs normalize, fetch, extract, classify and build for one line.
func (p *Pipeline) processLine(ctx context.Context, id int, line string) (types.DocumentRecord, error) {
	url, err := normalize.Normalize(line)
	if err != nil {
		return types.DocumentRecord{}, err
	}
	fmt.Fprintf(p.log, "processing: %d %s\n", id, url)

	path, err := p.stages.Fetcher.Fetch(ctx, url)
	if err != nil {
		return types.DocumentRecord{}, err
	}
	text, err := p.stages.Extractor.Extract(path)
	if err != nil {
		return types.DocumentRecord{}, err
	}
	lang, err := p.stages.Classifier.Classify(text)
	if err != nil {
		return types.DocumentRecord{}, err
	}
	rec, err := p.stages.Builder.Build(id, url, text, lang)
	if err != nil {
		return types.DocumentRecord{}, err
	}

	fmt.Fprintf(p.log, "record:     %d %s (%s, %d chars)\n", rec.ID, fetch.FileName(url), rec.Language, len(rec.Text))
	return rec, nil
}

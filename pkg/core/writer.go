package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// factsBatchSize bounds how many fact rows are buffered before being
// flushed to the streaming facts writer, so that a single company with
// an unusually large fact set does not blow the write buffer.
const factsBatchSize = 2000

// Accumulators holds the four small in-memory tables the driver
// builds up across the whole run, plus the streaming facts writer.
// All fields are mutated only by the driver; there is no concurrent
// access within a run (see the concurrency design note).
type Accumulators struct {
	entities []Entity
	concepts map[ConceptKey]Concept
	filings  map[FilingKey]struct{}
	rag      []RagRow

	factsWriter *factsWriter
}

// NewAccumulators opens the streaming facts writer at outputDir and
// returns a ready-to-use Accumulators. Callers must call Close exactly
// once, on every exit path.
func NewAccumulators(outputDir string) (*Accumulators, error) {
	fw, err := newFactsWriter(filepath.Join(outputDir, "processed", "sec", "facts.parquet"))
	if err != nil {
		return nil, err
	}
	return &Accumulators{
		concepts:    make(map[ConceptKey]Concept),
		filings:     make(map[FilingKey]struct{}),
		factsWriter: fw,
	}, nil
}

// AddCompany folds one company's extraction result into the run-wide
// accumulators: the entity row, concept dictionary upserts (last
// writer wins, acceptable since labels are canonical per taxonomy),
// filing set inserts, ranked facts flushed to the streaming writer,
// and RAG sentences for preferred Tier-1 facts.
func (a *Accumulators) AddCompany(res extractResult) error {
	a.entities = append(a.entities, res.entity)

	for k, v := range res.concept {
		a.concepts[k] = v
	}
	for k := range res.filings {
		a.filings[k] = struct{}{}
	}

	if err := a.factsWriter.writeBatch(res.facts); err != nil {
		return err
	}

	for _, f := range res.facts {
		if !f.IsPreferred || !isTier1(f.Concept) {
			continue
		}
		label := a.concepts[ConceptKey{Taxonomy: f.Taxonomy, Concept: f.Concept}].Label
		if label == "" {
			label = f.Concept
		}
		a.rag = append(a.rag, RagRow{
			CIK:             f.CIK,
			EntityName:      res.entity.EntityName,
			Taxonomy:        f.Taxonomy,
			Concept:         f.Concept,
			Label:           label,
			Unit:            f.Unit,
			Value:           f.Value,
			EndDate:         f.EndDate,
			StartDate:       f.StartDate,
			PeriodType:      f.PeriodType,
			PeriodKey:       f.PeriodKey,
			FY:              f.FY,
			FP:              f.FP,
			Form:            f.Form,
			FiledDate:       f.FiledDate,
			AccessionNumber: f.AccessionNumber,
			Sentence:        buildSentence(res.entity.EntityName, label, f),
		})
	}

	return nil
}

// Close flushes and closes the streaming facts writer. Safe to call
// once after any exit path.
func (a *Accumulators) Close() error {
	return a.factsWriter.close()
}

// FinalizeSmallTables sorts and writes the entity, concepts, filings,
// and RAG tables to outputDir. Called once at the very end of a run
// that was not aborted by fail-fast; an aborted run does not write
// these tables.
func FinalizeSmallTables(outputDir string, a *Accumulators) error {
	concepts := make([]Concept, 0, len(a.concepts))
	for _, c := range a.concepts {
		concepts = append(concepts, c)
	}
	sort.Slice(concepts, func(i, j int) bool {
		if concepts[i].Taxonomy != concepts[j].Taxonomy {
			return concepts[i].Taxonomy < concepts[j].Taxonomy
		}
		return concepts[i].Concept < concepts[j].Concept
	})

	filings := make([]Filing, 0, len(a.filings))
	for k := range a.filings {
		filings = append(filings, Filing{
			CIK: k.CIK, AccessionNumber: k.AccessionNumber,
			Form: k.Form, FiledDate: k.FiledDate,
		})
	}
	sort.Slice(filings, func(i, j int) bool {
		if filings[i].CIK != filings[j].CIK {
			return filings[i].CIK < filings[j].CIK
		}
		if filings[i].AccessionNumber != filings[j].AccessionNumber {
			return filings[i].AccessionNumber < filings[j].AccessionNumber
		}
		if filings[i].Form != filings[j].Form {
			return filings[i].Form < filings[j].Form
		}
		return filings[i].FiledDate < filings[j].FiledDate
	})

	secDir := filepath.Join(outputDir, "processed", "sec")
	if err := os.MkdirAll(secDir, 0o755); err != nil {
		return fmt.Errorf("finalize: %w", err)
	}

	if err := writeParquetTable(filepath.Join(secDir, "entity_master.parquet"), new(Entity), toAnySlice(a.entities)); err != nil {
		return fmt.Errorf("finalize entity_master: %w", err)
	}
	if err := writeParquetTable(filepath.Join(secDir, "concepts.parquet"), new(Concept), toAnySlice(concepts)); err != nil {
		return fmt.Errorf("finalize concepts: %w", err)
	}
	if err := writeParquetTable(filepath.Join(secDir, "filings.parquet"), new(Filing), toAnySlice(filings)); err != nil {
		return fmt.Errorf("finalize filings: %w", err)
	}

	ragDir := filepath.Join(outputDir, "rag")
	if err := os.MkdirAll(ragDir, 0o755); err != nil {
		return fmt.Errorf("finalize: %w", err)
	}
	if err := writeParquetTable(filepath.Join(ragDir, "sec_facts_index.parquet"), new(RagRow), toAnySlice(a.rag)); err != nil {
		return fmt.Errorf("finalize sec_facts_index: %w", err)
	}

	return nil
}

// toAnySlice upcasts a typed slice into the []interface{} shape the
// parquet writer's Write method expects per row.
func toAnySlice[T any](rows []T) []any {
	out := make([]any, len(rows))
	for i := range rows {
		out[i] = rows[i]
	}
	return out
}

// writeParquetTable writes a small, fully in-memory table as a single
// row group, snappy-compressed.
func writeParquetTable(path string, schema any, rows []any) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, schema, 4)
	if err != nil {
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			pw.WriteStop()
			return err
		}
	}
	return pw.WriteStop()
}

// factsWriter is the streaming, single-owner writer for the facts
// table: opened at run start, appended to once per company, closed on
// every exit path so a mid-run failure still leaves a readable
// truncated file.
type factsWriter struct {
	fsrc *local.LocalFile
	pw   *writer.ParquetWriter
}

func newFactsWriter(path string) (*factsWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("facts writer: %w", err)
	}
	fsrc, err := local.NewLocalFileWriter(path)
	if err != nil {
		return nil, fmt.Errorf("facts writer: %w", err)
	}
	pw, err := writer.NewParquetWriter(fsrc, new(Fact), 4)
	if err != nil {
		fsrc.Close()
		return nil, fmt.Errorf("facts writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	pw.RowGroupSize = 128 * 1024 * 1024

	return &factsWriter{fsrc: fsrc, pw: pw}, nil
}

func (w *factsWriter) writeBatch(facts []Fact) error {
	for start := 0; start < len(facts); start += factsBatchSize {
		end := start + factsBatchSize
		if end > len(facts) {
			end = len(facts)
		}
		for i := start; i < end; i++ {
			if err := w.pw.Write(facts[i]); err != nil {
				return fmt.Errorf("facts writer: %w", err)
			}
		}
		if err := w.pw.Flush(true); err != nil {
			return fmt.Errorf("facts writer: %w", err)
		}
	}
	return nil
}

func (w *factsWriter) close() error {
	if err := w.pw.WriteStop(); err != nil {
		w.fsrc.Close()
		return fmt.Errorf("facts writer: %w", err)
	}
	return w.fsrc.Close()
}

// writeManifest writes the run manifest as pretty-printed JSON.
func writeManifest(outputDir string, m Manifest) error {
	secDir := filepath.Join(outputDir, "processed", "sec")
	if err := os.MkdirAll(secDir, 0o755); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(secDir, "manifest.json"), b, 0o644)
}

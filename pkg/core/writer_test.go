package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAccumulatorsAddCompanyAndFinalize(t *testing.T) {
	dir := t.TempDir()

	accum, err := NewAccumulators(dir)
	if err != nil {
		t.Fatalf("NewAccumulators: %v", err)
	}

	fy := int32(2022)
	facts := []Fact{
		{
			CIK: "0000320193", Taxonomy: "us-gaap", Concept: "Assets", Unit: "USD",
			Value: 100, EndDate: "2022-09-24", FY: &fy, FP: "FY", Form: "10-K",
			FiledDate: "2022-10-28", AccessionNumber: "A1", PeriodType: "instant",
			PeriodKey: "2022-FY", RevisionRank: 1, IsPreferred: true,
		},
	}

	res := extractResult{
		entity: Entity{CIK: "0000320193", EntityName: "Apple Inc.", LastSeenFilingDate: "2022-10-28"},
		facts:  facts,
		concept: map[ConceptKey]Concept{
			{Taxonomy: "us-gaap", Concept: "Assets"}: {Taxonomy: "us-gaap", Concept: "Assets", Label: "Assets"},
		},
		filings: map[FilingKey]struct{}{
			{CIK: "0000320193", AccessionNumber: "A1", Form: "10-K", FiledDate: "2022-10-28"}: {},
		},
	}

	if err := accum.AddCompany(res); err != nil {
		t.Fatalf("AddCompany: %v", err)
	}
	if len(accum.rag) != 1 {
		t.Fatalf("expected 1 rag row for the preferred Tier-1 fact, got %d", len(accum.rag))
	}
	if accum.rag[0].Sentence == "" {
		t.Errorf("expected a rendered sentence on the rag row")
	}

	if err := accum.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := FinalizeSmallTables(dir, accum); err != nil {
		t.Fatalf("FinalizeSmallTables: %v", err)
	}

	for _, p := range []string{
		filepath.Join(dir, "processed", "sec", "facts.parquet"),
		filepath.Join(dir, "processed", "sec", "entity_master.parquet"),
		filepath.Join(dir, "processed", "sec", "concepts.parquet"),
		filepath.Join(dir, "processed", "sec", "filings.parquet"),
		filepath.Join(dir, "rag", "sec_facts_index.parquet"),
	} {
		if info, err := os.Stat(p); err != nil || info.Size() == 0 {
			t.Errorf("expected non-empty output file at %s: err=%v", p, err)
		}
	}
}

func TestAccumulatorsSkipsNonTier1ConceptsForRag(t *testing.T) {
	dir := t.TempDir()
	accum, err := NewAccumulators(dir)
	if err != nil {
		t.Fatalf("NewAccumulators: %v", err)
	}
	defer accum.Close()

	res := extractResult{
		entity:  Entity{CIK: "0000000001", EntityName: "X"},
		facts:   []Fact{{CIK: "0000000001", Concept: "SomeObscureConcept", IsPreferred: true}},
		concept: map[ConceptKey]Concept{},
		filings: map[FilingKey]struct{}{},
	}
	if err := accum.AddCompany(res); err != nil {
		t.Fatalf("AddCompany: %v", err)
	}
	if len(accum.rag) != 0 {
		t.Errorf("expected no rag rows for a non-Tier-1 concept, got %d", len(accum.rag))
	}
}

func TestAccumulatorsFallsBackToConceptNameForMissingLabel(t *testing.T) {
	dir := t.TempDir()
	accum, err := NewAccumulators(dir)
	if err != nil {
		t.Fatalf("NewAccumulators: %v", err)
	}
	defer accum.Close()

	res := extractResult{
		entity: Entity{CIK: "0000320193", EntityName: "Apple Inc."},
		facts: []Fact{
			{CIK: "0000320193", Taxonomy: "us-gaap", Concept: "Assets", IsPreferred: true},
		},
		concept: map[ConceptKey]Concept{
			{Taxonomy: "us-gaap", Concept: "Assets"}: {Taxonomy: "us-gaap", Concept: "Assets"},
		},
		filings: map[FilingKey]struct{}{},
	}
	if err := accum.AddCompany(res); err != nil {
		t.Fatalf("AddCompany: %v", err)
	}
	if len(accum.rag) != 1 {
		t.Fatalf("expected 1 rag row, got %d", len(accum.rag))
	}
	row := accum.rag[0]
	if row.Label != "Assets" {
		t.Errorf("expected RagRow.Label to fall back to concept name, got %q", row.Label)
	}
	if !strings.Contains(row.Sentence, "Assets") {
		t.Errorf("expected sentence to use the same fallback label, got %q", row.Sentence)
	}
}

func TestWriteManifestProducesReadableJSON(t *testing.T) {
	dir := t.TempDir()
	m := Manifest{TotalFiles: 5, ProcessedOK: 4, Errors: 1, FailedFiles: []FailedFile{{File: "CIK1.json", Error: "boom"}}}
	if err := writeManifest(dir, m); err != nil {
		t.Fatalf("writeManifest: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "processed", "sec", "manifest.json"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if len(b) == 0 {
		t.Errorf("expected non-empty manifest file")
	}
}

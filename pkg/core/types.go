package core

// RawDocument is the dynamic, schema-less tree a company-facts JSON
// file decodes into before validation projects it into typed records.
// Keeping the intermediate representation dynamic lets the repair and
// validation stages operate uniformly on partially-shaped trees. It is
// an *OrderedObject rather than a plain map so that the extractor can
// walk taxonomy/concept/unit/datapoint in the document's own order
// (see ordered.go) instead of Go's randomized map iteration order.
type RawDocument = *OrderedObject

// Entity is one row of the entity_master table: the per-company anchor
// record.
type Entity struct {
	CIK                string `json:"cik" parquet:"name=cik, type=BYTE_ARRAY, convertedtype=UTF8"`
	EntityName         string `json:"entity_name" parquet:"name=entity_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	LastSeenFilingDate string `json:"last_seen_filing_date" parquet:"name=last_seen_filing_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	SnapshotDate       string `json:"snapshot_date" parquet:"name=snapshot_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	Partial            bool   `json:"partial" parquet:"name=partial, type=BOOLEAN"`
}

// Concept is one row of the concepts dimension table, keyed on
// (Taxonomy, Concept).
type Concept struct {
	Taxonomy    string `json:"taxonomy" parquet:"name=taxonomy, type=BYTE_ARRAY, convertedtype=UTF8"`
	Concept     string `json:"concept" parquet:"name=concept, type=BYTE_ARRAY, convertedtype=UTF8"`
	Label       string `json:"label" parquet:"name=label, type=BYTE_ARRAY, convertedtype=UTF8"`
	Description string `json:"description" parquet:"name=description, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// ConceptKey identifies a concept within the dimension table.
type ConceptKey struct {
	Taxonomy string
	Concept  string
}

// Fact is one row of the facts event table: a single (concept, unit,
// period, value) observation, with derived period metadata and
// dedup-ranking fields filled in by the ranker.
type Fact struct {
	CIK              string `parquet:"name=cik, type=BYTE_ARRAY, convertedtype=UTF8"`
	Taxonomy         string `parquet:"name=taxonomy, type=BYTE_ARRAY, convertedtype=UTF8"`
	Concept          string `parquet:"name=concept, type=BYTE_ARRAY, convertedtype=UTF8"`
	Unit             string `parquet:"name=unit, type=BYTE_ARRAY, convertedtype=UTF8"`
	Value            float64 `parquet:"name=value, type=DOUBLE"`
	StartDate        string `parquet:"name=start_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	EndDate          string `parquet:"name=end_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	FY               *int32 `parquet:"name=fy, type=INT32"`
	FP               string `parquet:"name=fp, type=BYTE_ARRAY, convertedtype=UTF8"`
	Form             string `parquet:"name=form, type=BYTE_ARRAY, convertedtype=UTF8"`
	FiledDate        string `parquet:"name=filed_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	AccessionNumber  string `parquet:"name=accession_number, type=BYTE_ARRAY, convertedtype=UTF8"`
	Frame            string `parquet:"name=frame, type=BYTE_ARRAY, convertedtype=UTF8"`
	PeriodType       string `parquet:"name=period_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	PeriodKey        string `parquet:"name=period_key, type=BYTE_ARRAY, convertedtype=UTF8"`
	RevisionRank     int32  `parquet:"name=revision_rank, type=INT32"`
	IsPreferred      bool   `parquet:"name=is_preferred, type=BOOLEAN"`
}

// GroupKey identifies a set of logically-equivalent fact revisions
// within a single company, per spec.md section 4.4.
type GroupKey struct {
	Taxonomy  string
	Concept   string
	Unit      string
	StartDate string
	EndDate   string
	FY        int32
	FYSet     bool
	FP        string
}

func (f *Fact) groupKey() GroupKey {
	k := GroupKey{
		Taxonomy:  f.Taxonomy,
		Concept:   f.Concept,
		Unit:      f.Unit,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		FP:        f.FP,
	}
	if f.FY != nil {
		k.FY = *f.FY
		k.FYSet = true
	}
	return k
}

// Filing is one row of the filings table, keyed on (CIK, AccessionNumber).
type Filing struct {
	CIK             string `parquet:"name=cik, type=BYTE_ARRAY, convertedtype=UTF8"`
	AccessionNumber string `parquet:"name=accession_number, type=BYTE_ARRAY, convertedtype=UTF8"`
	Form            string `parquet:"name=form, type=BYTE_ARRAY, convertedtype=UTF8"`
	FiledDate       string `parquet:"name=filed_date, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// FilingKey identifies a unique filing.
type FilingKey struct {
	CIK             string
	AccessionNumber string
	Form            string
	FiledDate       string
}

// RagRow is one row of the sec_facts_index table: a preferred, Tier-1
// fact rendered as a natural-language sentence.
type RagRow struct {
	CIK             string `parquet:"name=cik, type=BYTE_ARRAY, convertedtype=UTF8"`
	EntityName      string `parquet:"name=entity_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Taxonomy        string `parquet:"name=taxonomy, type=BYTE_ARRAY, convertedtype=UTF8"`
	Concept         string `parquet:"name=concept, type=BYTE_ARRAY, convertedtype=UTF8"`
	Label           string `parquet:"name=label, type=BYTE_ARRAY, convertedtype=UTF8"`
	Unit            string `parquet:"name=unit, type=BYTE_ARRAY, convertedtype=UTF8"`
	Value           float64 `parquet:"name=value, type=DOUBLE"`
	EndDate         string `parquet:"name=end_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	StartDate       string `parquet:"name=start_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	PeriodType      string `parquet:"name=period_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	PeriodKey       string `parquet:"name=period_key, type=BYTE_ARRAY, convertedtype=UTF8"`
	FY              *int32 `parquet:"name=fy, type=INT32"`
	FP              string `parquet:"name=fp, type=BYTE_ARRAY, convertedtype=UTF8"`
	Form            string `parquet:"name=form, type=BYTE_ARRAY, convertedtype=UTF8"`
	FiledDate       string `parquet:"name=filed_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	AccessionNumber string `parquet:"name=accession_number, type=BYTE_ARRAY, convertedtype=UTF8"`
	Sentence        string `parquet:"name=sentence, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// FileOutcome classifies how a single input file was processed.
type FileOutcome int

const (
	// OutcomeOK means the file parsed strictly and extracted cleanly.
	OutcomeOK FileOutcome = iota
	// OutcomeRepaired means the file was truncated but recovered.
	OutcomeRepaired
	// OutcomeSkippedEmpty means the file was below the minimum size floor.
	OutcomeSkippedEmpty
	// OutcomeError means the file failed to load, validate, or extract.
	OutcomeError
)

// FailedFile records a single file's processing error for the manifest.
type FailedFile struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// Manifest summarizes a completed (or aborted) run.
type Manifest struct {
	TotalFiles        int          `json:"total_files"`
	ProcessedOK       int          `json:"processed_ok"`
	RepairedTruncated int          `json:"repaired_truncated"`
	SkippedEmpty      int          `json:"skipped_empty"`
	Errors            int          `json:"errors"`
	ElapsedSeconds    float64      `json:"elapsed_seconds"`
	Entities          int          `json:"entities"`
	UniqueConcepts    int          `json:"unique_concepts"`
	UniqueFilings     int          `json:"unique_filings"`
	RagSentences      int          `json:"rag_sentences"`
	FailedFiles       []FailedFile `json:"failed_files"`
}

package core

import "testing"

func TestValidateTopLevelCoercesIntCIK(t *testing.T) {
	doc := obj(
		"cik", float64(320193),
		"entityName", "Apple Inc.",
		"facts", obj(),
	)
	tl, err := validateTopLevel(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tl.cik != "0000320193" {
		t.Errorf("expected zero-padded cik, got %q", tl.cik)
	}
}

func TestValidateTopLevelCoercesStringCIK(t *testing.T) {
	doc := obj(
		"cik", "320193",
		"entityName", "Apple Inc.",
		"facts", obj(),
	)
	tl, err := validateTopLevel(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tl.cik != "0000320193" {
		t.Errorf("expected zero-padded cik, got %q", tl.cik)
	}
}

func TestValidateTopLevelMissingKey(t *testing.T) {
	doc := obj("entityName", "X", "facts", obj())
	if _, err := validateTopLevel(doc); err != ErrMissingTopLevelKey {
		t.Errorf("expected ErrMissingTopLevelKey, got %v", err)
	}
}

func TestValidateTopLevelInvalidCIK(t *testing.T) {
	doc := obj("cik", "not-a-number", "entityName", "X", "facts", obj())
	if _, err := validateTopLevel(doc); err != ErrInvalidCIK {
		t.Errorf("expected ErrInvalidCIK, got %v", err)
	}
}

func TestValidateTopLevelEmptyEntityName(t *testing.T) {
	doc := obj("cik", float64(1), "entityName", "", "facts", obj())
	if _, err := validateTopLevel(doc); err != ErrInvalidEntityName {
		t.Errorf("expected ErrInvalidEntityName, got %v", err)
	}
}

func TestValidateTopLevelFactsNotMapping(t *testing.T) {
	doc := obj("cik", float64(1), "entityName", "X", "facts", "nope")
	if _, err := validateTopLevel(doc); err != ErrInvalidFacts {
		t.Errorf("expected ErrInvalidFacts, got %v", err)
	}
}

func TestPadCIKTruncatesOversizedInput(t *testing.T) {
	if got := padCIK("12345678901"); got != "2345678901" {
		t.Errorf("expected last 10 digits kept, got %q", got)
	}
}

func TestValidateDatapointHappyPath(t *testing.T) {
	raw := obj(
		"end", "2022-09-24", "val", float64(100), "accn", "A1",
		"fy", float64(2022), "fp", "FY", "form", "10-K", "filed", "2022-10-28",
	)
	dp, err := validateDatapoint(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dp.fy == nil || *dp.fy != 2022 {
		t.Errorf("expected fy=2022, got %v", dp.fy)
	}
	if dp.val != 100 {
		t.Errorf("expected val=100, got %v", dp.val)
	}
}

func TestValidateDatapointNullFY(t *testing.T) {
	raw := obj(
		"end", "2021-12-31", "val", float64(1), "accn", "A1",
		"fy", nil, "fp", "", "form", "10-Q", "filed", "2021-11-01",
		"start", "2021-01-01",
	)
	dp, err := validateDatapoint(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dp.fy != nil {
		t.Errorf("expected nil fy, got %v", *dp.fy)
	}
	if dp.start != "2021-01-01" {
		t.Errorf("expected start carried through, got %q", dp.start)
	}
}

func TestValidateDatapointNonNumericValue(t *testing.T) {
	raw := obj(
		"end", "2022-01-01", "val", "not-a-number", "accn", "A1",
		"fy", float64(2022), "fp", "FY", "form", "10-K", "filed", "2022-01-01",
	)
	if _, err := validateDatapoint(raw); err != ErrNonNumericValue {
		t.Errorf("expected ErrNonNumericValue, got %v", err)
	}
}

func TestValidateDatapointMissingField(t *testing.T) {
	raw := obj(
		"end", "2022-01-01", "val", float64(1), "accn", "A1",
		"fy", float64(2022), "form", "10-K", "filed", "2022-01-01",
	)
	if _, err := validateDatapoint(raw); err != ErrMissingDatapointField {
		t.Errorf("expected ErrMissingDatapointField, got %v", err)
	}
}

// TestValidateDatapointCoercesNumericStringValue mirrors the original
// Python pipeline's use of float() on dp["val"], which accepts numeric
// strings as readily as JSON numbers.
func TestValidateDatapointCoercesNumericStringValue(t *testing.T) {
	raw := obj(
		"end", "2022-01-01", "val", "1234.5", "accn", "A1",
		"fy", float64(2022), "fp", "FY", "form", "10-K", "filed", "2022-01-01",
	)
	dp, err := validateDatapoint(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dp.val != 1234.5 {
		t.Errorf("expected val=1234.5, got %v", dp.val)
	}
}

// TestValidateDatapointCoercesNonStringFP mirrors the original's
// presence-only check on fp/form/etc.: a present-but-non-string value
// is coerced rather than rejected outright.
func TestValidateDatapointCoercesNonStringFP(t *testing.T) {
	raw := obj(
		"end", "2022-01-01", "val", float64(1), "accn", "A1",
		"fy", float64(2022), "fp", float64(2), "form", "10-K", "filed", "2022-01-01",
	)
	dp, err := validateDatapoint(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dp.fp != "2" {
		t.Errorf("expected fp coerced to \"2\", got %q", dp.fp)
	}
}

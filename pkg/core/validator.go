package core

import (
	"strconv"
	"strings"
)

// topLevel holds the validated, coerced top-level fields of an input
// document.
type topLevel struct {
	cik        string
	entityName string
	facts      *OrderedObject
}

// validateTopLevel checks presence and shape of cik, entityName, and
// facts, coercing cik into its zero-padded 10-character form. This
// check is unconditional regardless of strict/partial mode: a document
// failing it carries no usable identity and cannot be extracted at
// all.
func validateTopLevel(doc RawDocument) (topLevel, error) {
	cikRaw, ok := doc.Get("cik")
	if !ok {
		return topLevel{}, ErrMissingTopLevelKey
	}
	cik, ok := coerceCIK(cikRaw)
	if !ok {
		return topLevel{}, ErrInvalidCIK
	}

	nameRaw, ok := doc.Get("entityName")
	if !ok {
		return topLevel{}, ErrMissingTopLevelKey
	}
	name, ok := nameRaw.(string)
	if !ok || name == "" {
		return topLevel{}, ErrInvalidEntityName
	}

	factsRaw, ok := doc.Get("facts")
	if !ok {
		return topLevel{}, ErrMissingTopLevelKey
	}
	facts, ok := factsRaw.(*OrderedObject)
	if !ok {
		return topLevel{}, ErrInvalidFacts
	}

	return topLevel{cik: cik, entityName: name, facts: facts}, nil
}

// coerceCIK accepts either a JSON number (decoded as float64) or a
// numeric string and renders it zero-padded to 10 digits.
func coerceCIK(v any) (string, bool) {
	switch t := v.(type) {
	case float64:
		if t < 0 {
			return "", false
		}
		return padCIK(strconv.FormatInt(int64(t), 10)), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return "", false
		}
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			return "", false
		}
		return padCIK(s), true
	default:
		return "", false
	}
}

func padCIK(s string) string {
	if len(s) >= 10 {
		return s[len(s)-10:]
	}
	return strings.Repeat("0", 10-len(s)) + s
}

// datapointFields holds the seven required fields of a single
// datapoint plus the optional start and frame fields.
type datapointFields struct {
	end   string
	val   float64
	accn  string
	fy    *int32
	fp    string
	form  string
	filed string
	start string
	frame string
}

// validateDatapoint extracts the required fields of a single datapoint
// entry. Like the original extract_from_file/validate_datapoint in
// parse_company_facts.py, it only checks *presence* of the seven
// required fields and coerces rather than hard-fails on shape: val
// accepts a JSON number or a numeric string (mirroring Python's
// float()), and the string fields accept any JSON scalar, coerced to
// its string form. ErrNonNumericValue is reserved for a val that is
// present but cannot be coerced to a number at all, since that signals
// corruption rather than a merely differently-typed field.
func validateDatapoint(raw any) (datapointFields, error) {
	m, ok := raw.(*OrderedObject)
	if !ok {
		return datapointFields{}, ErrMissingDatapointField
	}

	end, ok := coerceRequiredString(m, "end")
	if !ok {
		return datapointFields{}, ErrMissingDatapointField
	}
	accn, ok := coerceRequiredString(m, "accn")
	if !ok {
		return datapointFields{}, ErrMissingDatapointField
	}
	fp, ok := coerceRequiredString(m, "fp")
	if !ok {
		return datapointFields{}, ErrMissingDatapointField
	}
	form, ok := coerceRequiredString(m, "form")
	if !ok {
		return datapointFields{}, ErrMissingDatapointField
	}
	filed, ok := coerceRequiredString(m, "filed")
	if !ok {
		return datapointFields{}, ErrMissingDatapointField
	}

	valRaw, hasVal := m.Get("val")
	if !hasVal {
		return datapointFields{}, ErrMissingDatapointField
	}
	val, ok := coerceFloat(valRaw)
	if !ok {
		return datapointFields{}, ErrNonNumericValue
	}

	fyRaw, hasFY := m.Get("fy")
	if !hasFY {
		return datapointFields{}, ErrMissingDatapointField
	}
	var fy *int32
	if fyRaw != nil {
		f, ok := coerceFloat(fyRaw)
		if !ok {
			return datapointFields{}, ErrMissingDatapointField
		}
		v := int32(f)
		fy = &v
	}

	start, _ := coerceRequiredString(m, "start")
	frame, _ := coerceRequiredString(m, "frame")

	return datapointFields{
		end: end, val: val, accn: accn, fy: fy, fp: fp,
		form: form, filed: filed, start: start, frame: frame,
	}, nil
}

// coerceRequiredString reports presence via set difference the way the
// original's `REQUIRED_DATAPOINT_FIELDS - dp.keys()` does: a missing
// key fails, but a present key of any scalar shape is coerced to a
// string rather than rejected. A present-but-null value coerces to "",
// matching the original's `isinstance(v, str) else ""` pattern for fp.
func coerceRequiredString(m *OrderedObject, key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	return coerceString(v), true
}

func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// coerceFloat accepts a JSON number or a numeric string, mirroring
// Python's permissive float() used on dp["val"] and dp["fy"].
func coerceFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

package core

import "fmt"

// extractResult holds everything pulled from a single company's
// document in one pass: the flat fact sequence (input-traversal
// order), the concept dictionary contributions, the filing set
// contributions, and the entity summary.
type extractResult struct {
	entity  Entity
	facts   []Fact
	concept map[ConceptKey]Concept
	filings map[FilingKey]struct{}
}

// extract walks taxonomy -> concept -> unit -> datapoint in input
// order, building facts, the concept dictionary, and the filing set.
// partial selects skip-on-shape-error semantics (Repair succeeded) vs
// strict fail-fast semantics.
//
// extract assumes top-level validation already passed. Shape errors
// encountered while walking taxonomies, concepts, units, and
// datapoints are skipped in partial mode and returned in strict mode,
// except ErrNonNumericValue which is always fatal.
//
// snapshotDate is the pipeline run date (not the filing date), stamped
// onto every entity row extracted during this run.
func extract(tl topLevel, partial bool, snapshotDate string) (extractResult, error) {
	res := extractResult{
		concept: make(map[ConceptKey]Concept),
		filings: make(map[FilingKey]struct{}),
	}

	var lastFiled string

	for _, taxonomy := range tl.facts.Keys() {
		taxRaw, _ := tl.facts.Get(taxonomy)
		taxMap, ok := taxRaw.(*OrderedObject)
		if !ok {
			if partial {
				continue
			}
			return extractResult{}, fmt.Errorf("taxonomy %q: %w", taxonomy, ErrInvalidFacts)
		}

		for _, concept := range taxMap.Keys() {
			conceptRaw, _ := taxMap.Get(concept)
			conceptMap, ok := conceptRaw.(*OrderedObject)
			if !ok {
				if partial {
					continue
				}
				return extractResult{}, fmt.Errorf("concept %q: %w", concept, ErrInvalidFacts)
			}

			labelRaw, _ := conceptMap.Get("label")
			label, _ := labelRaw.(string)
			descriptionRaw, _ := conceptMap.Get("description")
			description, _ := descriptionRaw.(string)
			key := ConceptKey{Taxonomy: taxonomy, Concept: concept}
			res.concept[key] = Concept{
				Taxonomy:    taxonomy,
				Concept:     concept,
				Label:       label,
				Description: description,
			}

			unitsRaw, ok := conceptMap.Get("units")
			if !ok {
				if partial {
					continue
				}
				return extractResult{}, fmt.Errorf("concept %q: %w", concept, ErrMissingDatapointField)
			}
			units, ok := unitsRaw.(*OrderedObject)
			if !ok {
				if partial {
					continue
				}
				return extractResult{}, fmt.Errorf("concept %q: %w", concept, ErrInvalidFacts)
			}

			for _, unit := range units.Keys() {
				pointsRaw, _ := units.Get(unit)
				points, ok := pointsRaw.([]any)
				if !ok {
					if partial {
						continue
					}
					return extractResult{}, fmt.Errorf("unit %q: %w", unit, ErrInvalidFacts)
				}

				for _, pointRaw := range points {
					dp, err := validateDatapoint(pointRaw)
					if err != nil {
						if partial && err != ErrNonNumericValue {
							continue
						}
						return extractResult{}, fmt.Errorf("%s.%s[%s]: %w", taxonomy, concept, unit, err)
					}

					periodType := "instant"
					if dp.start != "" {
						periodType = "duration"
					}

					fact := Fact{
						CIK:             tl.cik,
						Taxonomy:        taxonomy,
						Concept:         concept,
						Unit:            unit,
						Value:           dp.val,
						StartDate:       dp.start,
						EndDate:         dp.end,
						FY:              dp.fy,
						FP:              dp.fp,
						Form:            dp.form,
						FiledDate:       dp.filed,
						AccessionNumber: dp.accn,
						Frame:           dp.frame,
						PeriodType:      periodType,
						PeriodKey:       periodKey(dp.fy, dp.fp, dp.start, dp.end),
					}
					res.facts = append(res.facts, fact)

					res.filings[FilingKey{
						CIK:             tl.cik,
						AccessionNumber: dp.accn,
						Form:            dp.form,
						FiledDate:       dp.filed,
					}] = struct{}{}

					if dp.filed > lastFiled {
						lastFiled = dp.filed
					}
				}
			}
		}
	}

	res.entity = Entity{
		CIK:                tl.cik,
		EntityName:         tl.entityName,
		LastSeenFilingDate: lastFiled,
		SnapshotDate:       snapshotDate,
		Partial:            partial,
	}

	return res, nil
}

// periodKey derives a stable, human-readable period label: "{fy}-{fp}"
// when both are present, "{start}:{end}" when start is present,
// otherwise the bare end date.
func periodKey(fy *int32, fp, start, end string) string {
	if fy != nil && fp != "" {
		return fmt.Sprintf("%d-%s", *fy, fp)
	}
	if start != "" {
		return start + ":" + end
	}
	return end
}

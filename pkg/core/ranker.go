package core

import "sort"

// rank groups facts (already scoped to a single company) by logical
// identity and assigns revision_rank/is_preferred within each group.
// It mutates facts in place, preserving the original slice order and
// therefore the input-traversal output ordering invariant.
//
// Ties are broken with an explicit two-field comparison — filed_date
// descending, then form priority ascending — rather than mirroring the
// source's single reverse=true sort over a negated priority. Both
// produce the same ordering; the explicit form reads directly as the
// documented intent (see the ranker design note) instead of relying on
// a sign-flip trick.
func rank(facts []Fact) {
	groups := make(map[GroupKey][]int)
	for i := range facts {
		k := facts[i].groupKey()
		groups[k] = append(groups[k], i)
	}

	for _, idxs := range groups {
		sort.SliceStable(idxs, func(a, b int) bool {
			fa, fb := &facts[idxs[a]], &facts[idxs[b]]
			if fa.FiledDate != fb.FiledDate {
				return fa.FiledDate > fb.FiledDate
			}
			return formPriority(fa.Form) < formPriority(fb.Form)
		})

		for rankPos, idx := range idxs {
			facts[idx].RevisionRank = int32(rankPos + 1)
			facts[idx].IsPreferred = rankPos == 0
		}
	}
}

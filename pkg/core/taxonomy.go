package core

// DefaultFormPriority is the priority assigned to any filing form not
// present in FormPriority. Higher is worse.
const DefaultFormPriority = 99

// FormPriority ranks filing forms for dedup tie-breaking: lower value
// wins when two revisions of the same fact were filed on the same date.
var FormPriority = map[string]int{
	"10-K":   0,
	"10-K/A": 1,
	"20-F":   2,
	"20-F/A": 3,
	"10-Q":   4,
	"10-Q/A": 5,
	"8-K":    6,
	"8-K/A":  7,
}

func formPriority(form string) int {
	if p, ok := FormPriority[form]; ok {
		return p
	}
	return DefaultFormPriority
}

// Tier1Concepts is the curated subset of concepts materialized as RAG
// sentences: entity shares/float plus canonical balance-sheet,
// income-statement, and cash-flow line items.
var Tier1Concepts = map[string]struct{}{
	"EntityCommonStockSharesOutstanding":                  {},
	"EntityPublicFloat":                                   {},
	"Assets":                                              {},
	"AssetsCurrent":                                        {},
	"Liabilities":                                         {},
	"LiabilitiesCurrent":                                  {},
	"LiabilitiesAndStockholdersEquity":                    {},
	"StockholdersEquity":                                  {},
	"RetainedEarningsAccumulatedDeficit":                  {},
	"CashAndCashEquivalentsAtCarryingValue":               {},
	"PropertyPlantAndEquipmentNet":                        {},
	"Revenues":                                            {},
	"RevenueFromContractWithCustomerExcludingAssessedTax": {},
	"CostOfRevenue":                                       {},
	"CostOfGoodsAndServicesSold":                          {},
	"GrossProfit":                                         {},
	"OperatingIncomeLoss":                                 {},
	"NetIncomeLoss":                                       {},
	"IncomeTaxExpenseBenefit":                             {},
	"EarningsPerShareBasic":                               {},
	"EarningsPerShareDiluted":                             {},
	"NetCashProvidedByUsedInOperatingActivities":          {},
	"NetCashProvidedByUsedInInvestingActivities":          {},
	"NetCashProvidedByUsedInFinancingActivities":          {},
	"WeightedAverageNumberOfSharesOutstandingBasic":       {},
	"WeightedAverageNumberOfSharesOutstandingDiluted":     {},
	"CommonStockSharesOutstanding":                        {},
}

func isTier1(concept string) bool {
	_, ok := Tier1Concepts[concept]
	return ok
}

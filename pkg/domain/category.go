package domain

// ExpenseCategory is a domain value classifying what an expense paid for.
// The set is closed: unknown input parses to CategoryOther, which updates
// spending totals but drives no per-animal statistic.
type ExpenseCategory string

const (
	CategoryFood        ExpenseCategory = "Food"
	CategoryVaccination ExpenseCategory = "Vaccination"
	CategorySpaying     ExpenseCategory = "Spaying"
	CategoryNeutering   ExpenseCategory = "Neutering"
	CategoryTreatment   ExpenseCategory = "Treatment"
	CategoryMedicine    ExpenseCategory = "Medicine"
	CategoryOther       ExpenseCategory = "Other"
)

// categoryStatTags maps stat-bearing categories to the counter they increment.
// Categories absent from this map update totals only.
var categoryStatTags = map[ExpenseCategory]StatTag{
	CategoryFood:        StatFed,
	CategoryVaccination: StatVaccinated,
	CategorySpaying:     StatSpayed,
	CategoryNeutering:   StatNeutered,
	CategoryTreatment:   StatTreated,
}

// ParseExpenseCategory constructs an ExpenseCategory from external input.
// Unrecognized values collapse to CategoryOther rather than failing; an
// unclassified expense still updates spending totals.
func ParseExpenseCategory(s string) ExpenseCategory {
	switch c := ExpenseCategory(s); c {
	case CategoryFood, CategoryVaccination, CategorySpaying, CategoryNeutering,
		CategoryTreatment, CategoryMedicine:
		return c
	default:
		return CategoryOther
	}
}

// StatTag returns the statistics counter this category feeds, if any.
func (c ExpenseCategory) StatTag() (StatTag, bool) {
	tag, ok := categoryStatTags[c]
	return tag, ok
}

func (c ExpenseCategory) String() string {
	return string(c)
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseExpenseCategory(t *testing.T) {
	t.Run("known categories parse exactly", func(t *testing.T) {
		for _, c := range []ExpenseCategory{
			CategoryFood, CategoryVaccination, CategorySpaying,
			CategoryNeutering, CategoryTreatment, CategoryMedicine,
		} {
			require.Equal(t, c, ParseExpenseCategory(string(c)))
		}
	})

	t.Run("matching is case sensitive", func(t *testing.T) {
		require.Equal(t, CategoryOther, ParseExpenseCategory("food"))
	})

	t.Run("unknown input collapses to other", func(t *testing.T) {
		require.Equal(t, CategoryOther, ParseExpenseCategory("Transportation"))
		require.Equal(t, CategoryOther, ParseExpenseCategory(""))
	})
}

func TestCategoryStatTags(t *testing.T) {
	cases := map[ExpenseCategory]StatTag{
		CategoryFood:        StatFed,
		CategoryVaccination: StatVaccinated,
		CategorySpaying:     StatSpayed,
		CategoryNeutering:   StatNeutered,
		CategoryTreatment:   StatTreated,
	}
	for category, want := range cases {
		tag, ok := category.StatTag()
		require.True(t, ok, category)
		require.Equal(t, want, tag)
	}

	for _, category := range []ExpenseCategory{CategoryMedicine, CategoryOther} {
		_, ok := category.StatTag()
		require.False(t, ok, category)
	}
}

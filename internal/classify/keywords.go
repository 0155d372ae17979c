package classify

import "github.com/Rprog-06/Expense-Tracker/internal/model"

// keywordRule pairs a lowercase keyword with the category it implies.
type keywordRule struct {
	keyword  string
	category model.Category
}

// defaultKeywords is the built-in keyword table. It is a slice, not a map:
// the first keyword contained in a description wins, so iteration order is
// part of the classification contract. Extending the table is fine;
// reordering it changes results.
var defaultKeywords = []keywordRule{
	{"electricity", model.CategoryBills},
	{"bill", model.CategoryBills},
	{"internet", model.CategoryBills},
	{"water", model.CategoryBills},

	{"bus", model.CategoryTransport},
	{"uber", model.CategoryTransport},
	{"lyft", model.CategoryTransport},
	{"taxi", model.CategoryTransport},
	{"fuel", model.CategoryTransport},
	{"gas", model.CategoryTransport},
	{"ticket", model.CategoryTransport},

	{"shirt", model.CategoryShopping},
	{"t-shirt", model.CategoryShopping},
	{"jeans", model.CategoryShopping},
	{"store", model.CategoryShopping},
	{"mall", model.CategoryShopping},

	{"movie", model.CategoryEntertainment},
	{"netflix", model.CategoryEntertainment},
	{"concert", model.CategoryEntertainment},

	{"restaurant", model.CategoryFood},
	{"grocer", model.CategoryFood},
	{"dinner", model.CategoryFood},
	{"lunch", model.CategoryFood},
	{"coffee", model.CategoryFood},
	{"jalebi", model.CategoryFood},
	{"burger", model.CategoryFood},
}

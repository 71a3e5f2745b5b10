package core

// Category is reference data describing how one transaction category is
// displayed and which transaction type it belongs to. Names are unique.
type Category struct {
	Name  string          `json:"name"`
	Color string          `json:"color"`
	Icon  string          `json:"icon"`
	Type  TransactionType `json:"type"`
}

// CategorySet is a read-only lookup table over the category reference data.
// It is built once from the store and passed in wherever display metadata is
// needed, so the category list lives in exactly one place.
type CategorySet struct {
	byName  map[string]Category
	ordered []Category
}

// neutralCategory is returned for names absent from the reference set, so a
// stray record degrades to a neutral rendering instead of failing the view.
var neutralCategory = Category{Name: "Other", Color: "#64748B", Icon: "Tag", Type: Expense}

func NewCategorySet(categories []Category) CategorySet {
	s := CategorySet{
		byName:  make(map[string]Category, len(categories)),
		ordered: make([]Category, len(categories)),
	}
	copy(s.ordered, categories)
	for _, c := range categories {
		s.byName[c.Name] = c
	}
	return s
}

// Lookup returns the category for name, or a neutral default carrying the
// requested name when it is unknown.
func (s CategorySet) Lookup(name string) Category {
	if c, ok := s.byName[name]; ok {
		return c
	}
	c := neutralCategory
	if name != "" {
		c.Name = name
	}
	return c
}

// Known reports whether name is present in the reference set.
func (s CategorySet) Known(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// All returns the categories in their seed order.
func (s CategorySet) All() []Category {
	out := make([]Category, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// ByType returns the categories matching the given transaction type, in
// seed order.
func (s CategorySet) ByType(typ TransactionType) []Category {
	var out []Category
	for _, c := range s.ordered {
		if c.Type == typ {
			out = append(out, c)
		}
	}
	return out
}

// DefaultCategories is the seed category list.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Food & Dining", Color: "#EF4444", Icon: "UtensilsCrossed", Type: Expense},
		{Name: "Transportation", Color: "#F59E0B", Icon: "Car", Type: Expense},
		{Name: "Entertainment", Color: "#8B5CF6", Icon: "Gamepad2", Type: Expense},
		{Name: "Shopping", Color: "#EC4899", Icon: "ShoppingBag", Type: Expense},
		{Name: "Bills & Utilities", Color: "#06B6D4", Icon: "Receipt", Type: Expense},
		{Name: "Healthcare", Color: "#10B981", Icon: "Heart", Type: Expense},
		{Name: "Salary", Color: "#22C55E", Icon: "Briefcase", Type: Income},
		{Name: "Freelance", Color: "#3B82F6", Icon: "Laptop", Type: Income},
	}
}

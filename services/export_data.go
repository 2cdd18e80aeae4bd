package services

import "quotebuilder/quote"

// CategoryGroup is one category's block in the scope-of-work table: its
// items in entry order plus the category subtotal.
type CategoryGroup struct {
	Category quote.Category
	Items    []quote.LineItem
	Subtotal quote.Money
}

// GroupByCategory collects line items into category blocks. Categories
// appear in the order they are first used and items keep their entry order
// inside each block, so grouping never reorders what was typed into the
// quote.
func GroupByCategory(items []quote.LineItem) []CategoryGroup {
	index := make(map[quote.Category]int)
	var groups []CategoryGroup
	for _, li := range items {
		i, ok := index[li.Category]
		if !ok {
			i = len(groups)
			index[li.Category] = i
			groups = append(groups, CategoryGroup{Category: li.Category})
		}
		groups[i].Items = append(groups[i].Items, li)
		groups[i].Subtotal += li.Total()
	}
	return groups
}

// Package render places recipe records into a page container.
package render

import "recipes-app/core/domain"

// CardTag is the custom element that displays one recipe.
const CardTag = "recipe-card"

// Container is the fixed element recipe cards are appended to.
type Container interface {
	// Append creates an element with the given tag, attaches payload as its
	// data and appends it as the container's last child.
	Append(tag string, payload domain.Recipe) error
}

// AddRecipesToDocument appends one recipe card per record, in order.
// A nil collection is a no-op. Previously appended cards are left alone, so
// calling it twice with the same collection yields duplicates.
func AddRecipesToDocument(c Container, recipes domain.Collection) error {
	if recipes == nil {
		return nil
	}
	for _, recipe := range recipes {
		if err := c.Append(CardTag, recipe); err != nil {
			return err
		}
	}
	return nil
}

package search

// MoveDown advances the highlight toward the end of the list, saturating at
// the last entry. From the no-highlight position it lands on the first entry
// and re-shows a dismissed list.
func (c *Controller) MoveDown() []Effect {
	if len(c.suggestions) == 0 {
		return nil
	}
	if !c.visible {
		c.visible = true
	}
	if c.selection < len(c.suggestions)-1 {
		c.selection++
	}
	return nil
}

// MoveUp retreats the highlight toward the top. Moving up from the first
// entry returns to the no-highlight position; it never wraps.
func (c *Controller) MoveUp() []Effect {
	if len(c.suggestions) == 0 {
		return nil
	}
	if c.selection > -1 {
		c.selection--
	}
	return nil
}

// Dismiss hides the suggestion list immediately and cancels any pending
// hide-on-blur. Suggestions and highlight are retained for a later Focus.
func (c *Controller) Dismiss() []Effect {
	c.hideGen++
	c.visible = false
	return nil
}

// Blur schedules a delayed hide instead of hiding outright, so that a click
// on a suggestion (which blurs the input first) still lands on the list.
func (c *Controller) Blur() []Effect {
	if !c.visible {
		return nil
	}
	c.hideGen++
	return []Effect{StartHideGrace{Gen: c.hideGen, After: HideGrace}}
}

// HideGraceFired hides the list when the grace window elapses uncontested.
func (c *Controller) HideGraceFired(gen int) []Effect {
	if gen != c.hideGen {
		return nil
	}
	c.visible = false
	return nil
}

// Focus cancels any pending hide and re-shows retained suggestions.
func (c *Controller) Focus() []Effect {
	c.hideGen++
	if len(c.suggestions) > 0 {
		c.visible = true
	}
	return nil
}

package dropdown

// selectDown moves focus one item down from target. From the search bar it
// lands on the first result.
func (c *Controller) selectDown(target Target) {
	switch target.Kind {
	case TargetSearchBar:
		c.focus(0)
	case TargetResult:
		c.focus(target.Index + 1)
	}
}

// selectUp moves focus one item up. It never leaves the result list.
func (c *Controller) selectUp(target Target) {
	if target.Kind == TargetResult && target.Index > 0 {
		c.focus(target.Index - 1)
	}
}

func (c *Controller) focus(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.renderer == nil {
		return false
	}
	return c.renderer.Focus(index)
}

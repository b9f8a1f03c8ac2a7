package wheel

// Emphasis is how prominently an item is drawn.
type Emphasis struct {
	Scale   float32
	Opacity float32
}

// EmphasisFor returns the emphasis of an item distance items away from the
// selected one.
func EmphasisFor(distance int) Emphasis {
	if distance < 0 {
		distance = -distance
	}
	switch distance {
	case 0:
		return Emphasis{Scale: 1.3, Opacity: 1}
	case 1:
		return Emphasis{Scale: 1.1, Opacity: 0.6}
	default:
		return Emphasis{Scale: 0.9, Opacity: 0.25}
	}
}

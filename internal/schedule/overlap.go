package schedule

// Overlaps reports whether candidate a collides with existing booking b.
//
// b's occupied span is widened to [b.Start-bufferBefore, b.End+bufferAfter) and
// tested against a's half-open [a.Start, a.End). Buffers always belong to the
// existing booking. Intervals of different venues or dates never overlap.
func Overlaps(a, b Interval, bufferBefore, bufferAfter int) bool {
	if a.VenueID != b.VenueID || a.Date != b.Date {
		return false
	}
	start := int(b.Start) - bufferBefore
	end := int(b.End) + bufferAfter
	return int(a.Start) < end && int(a.End) > start
}

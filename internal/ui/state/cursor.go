package state

// MoveHome moves the cursor to the first envelope.
func (l *List) MoveHome() bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = 0
	return old != l.Cursor
}

// MoveEnd moves the cursor to the last envelope.
func (l *List) MoveEnd() bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = n - 1
	return old != l.Cursor
}

// Next moves down one row, wrapping from the last row to the first.
func (l *List) Next() bool {
	return l.wrapBy(1)
}

// Prev moves up one row, wrapping from the first row to the last.
func (l *List) Prev() bool {
	return l.wrapBy(-1)
}

func (l *List) wrapBy(delta int) bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	l.Cursor = ((l.Cursor+delta)%n + n) % n
	return old != l.Cursor
}

// PageUp moves the cursor up by the given page size.
func (l *List) PageUp(maxVisible int) bool {
	return l.moveBy(-l.pageSize(maxVisible))
}

// PageDown moves the cursor down by the given page size.
func (l *List) PageDown(maxVisible int) bool {
	return l.moveBy(l.pageSize(maxVisible))
}

func (l *List) moveBy(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	l.Cursor += delta
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	return l.Cursor != old
}

func (l *List) pageSize(maxVisible int) int {
	total := len(l.Items)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureVisible adjusts the viewport offset so the cursor stays visible.
func (l *List) EnsureVisible(maxVisible int) {
	l.ViewportOffset = VisibleOffset(l.Cursor, l.ViewportOffset, len(l.Items), maxVisible)
}

// VisibleOffset is the viewport offset nearest to offset that shows cursor.
func VisibleOffset(cursor, offset, total, maxVisible int) int {
	if total == 0 || maxVisible <= 0 {
		return 0
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= total {
		cursor = total - 1
	}
	maxOffset := total - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	if cursor < offset {
		offset = cursor
	}
	if cursor > offset+maxVisible-1 {
		offset = cursor - maxVisible + 1
	}
	return offset
}

package runner

// tailBuffer keeps the most recent lines of a command's output in a
// fixed-capacity ring.
type tailBuffer struct {
	buf   []string
	start int
	size  int
}

func newTailBuffer(capacity int) *tailBuffer {
	if capacity <= 0 {
		capacity = DefaultTailLines
	}
	return &tailBuffer{buf: make([]string, capacity)}
}

func (t *tailBuffer) add(line string) {
	if t.size < len(t.buf) {
		t.buf[(t.start+t.size)%len(t.buf)] = line
		t.size++
		return
	}
	t.buf[t.start] = line
	t.start = (t.start + 1) % len(t.buf)
}

// lines returns the retained lines, oldest first.
func (t *tailBuffer) lines() []string {
	out := make([]string, 0, t.size)
	for i := 0; i < t.size; i++ {
		out = append(out, t.buf[(t.start+i)%len(t.buf)])
	}
	return out
}

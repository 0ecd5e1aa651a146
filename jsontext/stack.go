package jsontext

// Frame is an open array or object.
type Frame struct {
	// Container is the opening character: '[' or '{'.
	Container rune

	// Count is the number of elements or members read so far.
	Count int

	// Keys holds the member names seen in an object when duplicates are
	// rejected.
	Keys map[string]struct{}
}

type Stack []*Frame

func (s *Stack) Push(f *Frame) {
	*s = append(*s, f)
}

func (s *Stack) Top() *Frame {
	if len(*s) == 0 {
		return nil
	}

	return (*s)[len(*s)-1]
}

func (s *Stack) Pop() (err error) {
	if s.Top() == nil {
		return Error.New("no frame on stack")
	}

	*s = (*s)[:len(*s)-1]

	return nil
}

// Count records one more element in the innermost container.
func (s *Stack) Count() {
	top := s.Top()
	if top == nil {
		return
	}

	top.Count++
}

// Depth is the number of open containers.
func (s Stack) Depth() int {
	return len(s)
}

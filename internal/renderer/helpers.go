package renderer

// Unwind collects cleanups and runs them in reverse order of registration.
type Unwind []func()

func (u *Unwind) Add(cleanup func()) {
	*u = append(*u, cleanup)
}

// Unwind runs every registered cleanup, last first, and empties the list.
func (u *Unwind) Unwind() {
	for i := len(*u) - 1; i >= 0; i-- {
		(*u)[i]()
	}
	*u = nil
}

// Discard drops the registered cleanups without running them.
func (u *Unwind) Discard() {
	*u = nil
}

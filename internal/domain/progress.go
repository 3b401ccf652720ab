package domain

// Progress derives a list's completion from its tasks: the task count and
// the percentage of CLOSED tasks on a 0-100 scale. A list with zero tasks
// is 0% complete, not an error. The input is never mutated.
func Progress(tasks []Task) (count int, percent float64) {
	count = len(tasks)
	if count == 0 {
		return 0, 0
	}
	closed := 0
	for _, t := range tasks {
		if t.Status == StatusClosed {
			closed++
		}
	}
	return count, float64(closed) * 100.0 / float64(count)
}

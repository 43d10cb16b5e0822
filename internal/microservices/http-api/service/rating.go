package service

// AverageScore is the arithmetic mean of scores, or nil when there are none.
func AverageScore(scores []int) *float64 {
	if len(scores) == 0 {
		return nil
	}

	sum := 0
	for _, s := range scores {
		sum += s
	}
	avg := float64(sum) / float64(len(scores))
	return &avg
}

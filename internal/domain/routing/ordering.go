package routing

import "container/heap"

// betterThan ranks a above b when a's profit per week, projected onto b's
// expected horizon, beats b's profit per week. It is a heuristic priority,
// not a total order: use it only to order the frontier and pick the best
// completed route. A nil b always loses.
func betterThan(a, b *Route) bool {
	if b == nil {
		return true
	}

	aWeeks, bWeeks := a.ProjectedWeeks(), b.ProjectedWeeks()
	if aWeeks == 0 || bWeeks == 0 {
		return a.ProfitPerWeek() > b.ProfitPerWeek()
	}

	factor := float64(aWeeks) / float64(bWeeks)
	return a.ProfitPerWeek() > b.ProfitPerWeek()*factor
}

// routeQueue is a max-priority frontier over betterThan
type routeQueue []*Route

func (q routeQueue) Len() int            { return len(q) }
func (q routeQueue) Less(i, j int) bool  { return betterThan(q[i], q[j]) }
func (q routeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *routeQueue) Push(x interface{}) { *q = append(*q, x.(*Route)) }

func (q *routeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

func (q *routeQueue) push(r *Route) {
	heap.Push(q, r)
}

func (q *routeQueue) pop() *Route {
	return heap.Pop(q).(*Route)
}

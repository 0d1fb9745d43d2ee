package network

// edgeBetweenness computes Brandes edge betweenness centrality over the
// deduplicated adjacency, accumulating per unordered pair. Shortest-path
// counts ignore parallel-edge multiplicity. Values are normalized by
// n*(n-1) over all nodes, isolated nodes included, so every pair on any
// shortest path lands in (0, 1].
func edgeBetweenness(n int, adj [][]int) map[Pair]float64 {
	bc := make(map[Pair]float64)
	sigma := make([]float64, n)
	dist := make([]int, n)
	delta := make([]float64, n)
	preds := make([][]int, n)
	queue := make([]int, 0, n)
	stack := make([]int, 0, n)

	for s := 0; s < n; s++ {
		for i := 0; i < n; i++ {
			sigma[i] = 0
			dist[i] = -1
			delta[i] = 0
			preds[i] = preds[i][:0]
		}
		sigma[s] = 1
		dist[s] = 0
		queue = append(queue[:0], s)
		stack = stack[:0]

		for head := 0; head < len(queue); head++ {
			v := queue[head]
			stack = append(stack, v)
			for _, w := range adj[v] {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					preds[w] = append(preds[w], v)
				}
			}
		}

		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			coeff := (1 + delta[w]) / sigma[w]
			for _, v := range preds[w] {
				c := sigma[v] * coeff
				bc[MakePair(v, w)] += c
				delta[v] += c
			}
		}
	}

	if n > 1 {
		scale := 1.0 / (float64(n) * float64(n-1))
		for pair := range bc {
			bc[pair] *= scale
		}
	}
	return bc
}

package graph

import "slices"

// DegreeCentrality returns deg(name)/(|V|-1), or 0 when |V| <= 1 or the
// concept is unknown.
func (g *Graph) DegreeCentrality(name string) float64 {
	i, ok := g.index[name]
	if !ok {
		return 0
	}
	return g.degreeCentrality(i)
}

func (g *Graph) degreeCentrality(i int) float64 {
	n := len(g.nodes)
	if n <= 1 {
		return 0
	}
	return float64(len(g.adj[i])) / float64(n-1)
}

// DegreeCentralities returns the degree centrality of every node.
func (g *Graph) DegreeCentralities() map[string]float64 {
	out := make(map[string]float64, len(g.nodes))
	for i, n := range g.nodes {
		out[n.Name] = g.degreeCentrality(i)
	}
	return out
}

// Clustering returns the local clustering coefficient of name: the fraction
// of neighbour pairs that are themselves adjacent. Nodes with fewer than two
// neighbours have coefficient 0.
func (g *Graph) Clustering(name string) float64 {
	i, ok := g.index[name]
	if !ok {
		return 0
	}
	return g.clustering(i)
}

func (g *Graph) clustering(i int) float64 {
	nbrs := g.adj[i]
	d := len(nbrs)
	if d < 2 {
		return 0
	}
	links := 0
	for a := 0; a < d; a++ {
		for b := a + 1; b < d; b++ {
			if g.connected(nbrs[a], nbrs[b]) {
				links++
			}
		}
	}
	return float64(2*links) / float64(d*(d-1))
}

// AverageClustering is the mean local clustering coefficient over all
// nodes, 0 for an empty graph.
func (g *Graph) AverageClustering() float64 {
	if len(g.nodes) == 0 {
		return 0
	}
	total := 0.0
	for i := range g.nodes {
		total += g.clustering(i)
	}
	return total / float64(len(g.nodes))
}

// Density returns 2|E|/(|V|(|V|-1)), 0 when |V| <= 1.
func (g *Graph) Density() float64 {
	return density(len(g.nodes), len(g.edges))
}

func density(nodes, edges int) float64 {
	if nodes <= 1 {
		return 0
	}
	return float64(2*edges) / float64(nodes*(nodes-1))
}

// Betweenness returns the normalised betweenness centrality of every node.
// Path lengths count edges; weights are ignored. Scores are scaled by
// 1/((n-1)(n-2)) over the double-counted undirected sums, so each lies in [0, 1].
func (g *Graph) Betweenness() map[string]float64 {
	scores := g.betweenness()
	out := make(map[string]float64, len(scores))
	for i, s := range scores {
		out[g.nodes[i].Name] = s
	}
	return out
}

// betweenness implements Brandes' algorithm with one BFS per source.
func (g *Graph) betweenness() []float64 {
	n := len(g.nodes)
	cb := make([]float64, n)
	if n <= 2 {
		return cb
	}

	sigma := make([]float64, n)
	dist := make([]int, n)
	delta := make([]float64, n)
	preds := make([][]int, n)
	stack := make([]int, 0, n)
	queue := make([]int, 0, n)

	for s := 0; s < n; s++ {
		for v := 0; v < n; v++ {
			sigma[v] = 0
			dist[v] = -1
			delta[v] = 0
			preds[v] = preds[v][:0]
		}
		sigma[s] = 1
		dist[s] = 0
		stack = stack[:0]
		queue = append(queue[:0], s)

		for head := 0; head < len(queue); head++ {
			v := queue[head]
			stack = append(stack, v)
			for _, w := range g.adj[v] {
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

		for k := len(stack) - 1; k >= 0; k-- {
			w := stack[k]
			for _, v := range preds[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				cb[w] += delta[w]
			}
		}
	}

	scale := 1 / float64((n-1)*(n-2))
	for i := range cb {
		cb[i] *= scale
	}
	return cb
}

// ConnectedComponents partitions the nodes into maximal connected sets.
// Components are ordered by their earliest discovered member and members
// are listed in discovery order.
func (g *Graph) ConnectedComponents() [][]string {
	comps := g.components()
	out := make([][]string, 0, len(comps))
	for _, comp := range comps {
		names := make([]string, 0, len(comp))
		for _, i := range comp {
			names = append(names, g.nodes[i].Name)
		}
		out = append(out, names)
	}
	return out
}

func (g *Graph) components() [][]int {
	n := len(g.nodes)
	seen := make([]bool, n)
	var comps [][]int

	for start := 0; start < n; start++ {
		if seen[start] {
			continue
		}
		seen[start] = true
		queue := []int{start}
		for head := 0; head < len(queue); head++ {
			for _, w := range g.adj[queue[head]] {
				if !seen[w] {
					seen[w] = true
					queue = append(queue, w)
				}
			}
		}
		slices.Sort(queue)
		comps = append(comps, queue)
	}
	return comps
}

// ShortestPath returns an unweighted shortest path from a to b, inclusive of
// both ends. The second result is false when either name is unknown or b is
// unreachable from a.
func (g *Graph) ShortestPath(a, b string) ([]string, bool) {
	src, ok := g.index[a]
	if !ok {
		return nil, false
	}
	dst, ok := g.index[b]
	if !ok {
		return nil, false
	}
	path := g.shortestPath(src, dst)
	if path == nil {
		return nil, false
	}
	out := make([]string, len(path))
	for k, i := range path {
		out[k] = g.nodes[i].Name
	}
	return out, true
}

func (g *Graph) shortestPath(src, dst int) []int {
	if src == dst {
		return []int{src}
	}

	parent := make([]int, len(g.nodes))
	for i := range parent {
		parent[i] = -1
	}
	parent[src] = src
	queue := []int{src}

	for head := 0; head < len(queue); head++ {
		v := queue[head]
		for _, w := range g.adj[v] {
			if parent[w] >= 0 {
				continue
			}
			parent[w] = v
			if w == dst {
				return walkBack(parent, src, dst)
			}
			queue = append(queue, w)
		}
	}
	return nil
}

func walkBack(parent []int, src, dst int) []int {
	var path []int
	for v := dst; v != src; v = parent[v] {
		path = append(path, v)
	}
	path = append(path, src)
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

// distances runs a BFS from src and returns the hop count to every node,
// -1 for unreachable ones. maxDepth < 0 means unbounded.
func (g *Graph) distances(src, maxDepth int) []int {
	dist := make([]int, len(g.nodes))
	for i := range dist {
		dist[i] = -1
	}
	dist[src] = 0
	queue := []int{src}
	for head := 0; head < len(queue); head++ {
		v := queue[head]
		if maxDepth >= 0 && dist[v] >= maxDepth {
			continue
		}
		for _, w := range g.adj[v] {
			if dist[w] < 0 {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
		}
	}
	return dist
}

// Distances returns the hop count from name to every concept reachable from
// it, the concept itself included at distance 0.
func (g *Graph) Distances(name string) (map[string]int, error) {
	canonical, ok := g.Resolve(name)
	if !ok {
		return nil, &ConceptNotFoundError{Name: name}
	}
	dist := g.distances(g.index[canonical], -1)
	out := make(map[string]int)
	for i, d := range dist {
		if d >= 0 {
			out[g.nodes[i].Name] = d
		}
	}
	return out, nil
}

package graph

import (
	"slices"
	"strings"

	"github.com/project-simone/simone/pkg/common"
)

// Node is a concept in the co-occurrence graph.
//
// OccurrenceCount always equals len(EpisodeIDs). An episode that lists the
// same concept twice contributes twice unless the graph was built with
// WithDedupePerEpisode.
type Node struct {
	Name            string   `json:"name"`
	OccurrenceCount int      `json:"occurrence_count"`
	EpisodeIDs      []string `json:"episode_ids"`
}

// Edge connects two distinct concepts that appeared in the same episode.
// Source and Target follow the order in which the pair was first seen; the
// edge itself is undirected.
type Edge struct {
	Source           string   `json:"source"`
	Target           string   `json:"target"`
	Weight           int      `json:"weight"`
	SharedEpisodeIDs []string `json:"shared_episode_ids"`
}

type pair struct {
	a, b int
}

func makePair(i, j int) pair {
	if i > j {
		i, j = j, i
	}
	return pair{a: i, b: j}
}

// Graph is an undirected, simple, weighted concept co-occurrence graph.
//
// A Graph is immutable once Build returns. All methods are safe for
// concurrent use by multiple readers.
type Graph struct {
	nodes []*Node
	index map[string]int

	// adj lists neighbours of each node in the order the edges were created.
	adj   [][]int
	edges []*Edge
	pairs map[pair]*Edge

	episodes map[string]common.Episode
}

func newGraph() *Graph {
	return &Graph{
		index:    make(map[string]int),
		pairs:    make(map[pair]*Edge),
		episodes: make(map[string]common.Episode),
	}
}

// NodeCount returns |V|.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns |E|.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// HasNode reports whether name is a node, matching case-sensitively.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Node returns a copy of the named node.
func (g *Graph) Node(name string) (Node, bool) {
	i, ok := g.index[name]
	if !ok {
		return Node{}, false
	}
	return copyNode(g.nodes[i]), true
}

// Nodes returns copies of all nodes in discovery order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, copyNode(n))
	}
	return out
}

// Edge returns a copy of the edge between a and b in either orientation.
func (g *Graph) Edge(a, b string) (Edge, bool) {
	i, ok := g.index[a]
	if !ok {
		return Edge{}, false
	}
	j, ok := g.index[b]
	if !ok {
		return Edge{}, false
	}
	e, ok := g.pairs[makePair(i, j)]
	if !ok {
		return Edge{}, false
	}
	return copyEdge(e), true
}

// Edges returns copies of all edges in discovery order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, copyEdge(e))
	}
	return out
}

// Neighbors returns the names adjacent to name in edge discovery order.
func (g *Graph) Neighbors(name string) []string {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(g.adj[i]))
	for _, j := range g.adj[i] {
		out = append(out, g.nodes[j].Name)
	}
	return out
}

// Degree returns the number of neighbours of name, or 0 if it is unknown.
func (g *Graph) Degree(name string) int {
	i, ok := g.index[name]
	if !ok {
		return 0
	}
	return len(g.adj[i])
}

// Resolve maps a user supplied name to a node name. An exact match wins;
// otherwise the first node in discovery order that matches case-insensitively
// is returned.
func (g *Graph) Resolve(name string) (string, bool) {
	if _, ok := g.index[name]; ok {
		return name, true
	}
	for _, n := range g.nodes {
		if strings.EqualFold(n.Name, name) {
			return n.Name, true
		}
	}
	return "", false
}

func (g *Graph) ensureNode(name string) int {
	if i, ok := g.index[name]; ok {
		return i
	}
	i := len(g.nodes)
	g.nodes = append(g.nodes, &Node{Name: name})
	g.index[name] = i
	g.adj = append(g.adj, nil)
	return i
}

func (g *Graph) addCooccurrence(i, j int, episodeID string) {
	key := makePair(i, j)
	if e, ok := g.pairs[key]; ok {
		e.Weight++
		e.SharedEpisodeIDs = append(e.SharedEpisodeIDs, episodeID)
		return
	}
	e := &Edge{
		Source:           g.nodes[i].Name,
		Target:           g.nodes[j].Name,
		Weight:           1,
		SharedEpisodeIDs: []string{episodeID},
	}
	g.pairs[key] = e
	g.edges = append(g.edges, e)
	g.adj[i] = append(g.adj[i], j)
	g.adj[j] = append(g.adj[j], i)
}

func (g *Graph) connected(i, j int) bool {
	_, ok := g.pairs[makePair(i, j)]
	return ok
}

func (g *Graph) edgeBetween(i, j int) *Edge {
	return g.pairs[makePair(i, j)]
}

func copyNode(n *Node) Node {
	return Node{
		Name:            n.Name,
		OccurrenceCount: n.OccurrenceCount,
		EpisodeIDs:      slices.Clone(n.EpisodeIDs),
	}
}

func copyEdge(e *Edge) Edge {
	return Edge{
		Source:           e.Source,
		Target:           e.Target,
		Weight:           e.Weight,
		SharedEpisodeIDs: slices.Clone(e.SharedEpisodeIDs),
	}
}

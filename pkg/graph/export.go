package graph

// VisualizationNode is a node as consumed by graph renderers.
type VisualizationNode struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Size     int    `json:"size"`
	Episodes int    `json:"episodes"`
}

// VisualizationEdge is an edge as consumed by graph renderers.
type VisualizationEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// VisualizationData is the renderer friendly form of the whole graph.
type VisualizationData struct {
	Nodes []VisualizationNode `json:"nodes"`
	Edges []VisualizationEdge `json:"edges"`
}

// ExportForVisualization lists every node and edge without filtering or
// layout. Size is the occurrence count and Episodes the number of
// contributing episode ids.
func (g *Graph) ExportForVisualization() VisualizationData {
	data := VisualizationData{
		Nodes: make([]VisualizationNode, 0, len(g.nodes)),
		Edges: make([]VisualizationEdge, 0, len(g.edges)),
	}
	for _, n := range g.nodes {
		data.Nodes = append(data.Nodes, VisualizationNode{
			ID:       n.Name,
			Label:    n.Name,
			Size:     n.OccurrenceCount,
			Episodes: len(n.EpisodeIDs),
		})
	}
	for _, e := range g.edges {
		data.Edges = append(data.Edges, VisualizationEdge{
			Source: e.Source,
			Target: e.Target,
			Weight: e.Weight,
		})
	}
	return data
}

// NeighborhoodNode is a node of a neighbourhood view with its hop distance
// from the centre.
type NeighborhoodNode struct {
	VisualizationNode
	Distance int `json:"distance"`
}

// Neighborhood is the subgraph induced by all concepts within a number of
// hops of a centre concept.
type Neighborhood struct {
	Center string              `json:"center"`
	Depth  int                 `json:"depth"`
	Nodes  []NeighborhoodNode  `json:"nodes"`
	Edges  []VisualizationEdge `json:"edges"`
}

// Neighborhood returns the concepts at most depth hops from name together
// with every edge among them. Depth below 1 is treated as 1.
func (g *Graph) Neighborhood(name string, depth int) (*Neighborhood, error) {
	canonical, ok := g.Resolve(name)
	if !ok {
		return nil, &ConceptNotFoundError{Name: name}
	}
	if depth < 1 {
		depth = 1
	}

	dist := g.distances(g.index[canonical], depth)

	out := &Neighborhood{
		Center: canonical,
		Depth:  depth,
		Nodes:  make([]NeighborhoodNode, 0),
		Edges:  make([]VisualizationEdge, 0),
	}
	for i, n := range g.nodes {
		if dist[i] < 0 {
			continue
		}
		out.Nodes = append(out.Nodes, NeighborhoodNode{
			VisualizationNode: VisualizationNode{
				ID:       n.Name,
				Label:    n.Name,
				Size:     n.OccurrenceCount,
				Episodes: len(n.EpisodeIDs),
			},
			Distance: dist[i],
		})
	}
	for _, e := range g.edges {
		if dist[g.index[e.Source]] < 0 || dist[g.index[e.Target]] < 0 {
			continue
		}
		out.Edges = append(out.Edges, VisualizationEdge{Source: e.Source, Target: e.Target, Weight: e.Weight})
	}
	return out, nil
}

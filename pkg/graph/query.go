package graph

import (
	"cmp"
	"slices"
	"strings"
)

const (
	relatedLimit      = 10
	topConceptsLimit  = 20
	clusterLimit      = 10
	strongLimit       = 20
	minClusterSize    = 3
	minClusterGraph   = 5
	strongEdgeMinimum = 3
)

// EpisodeMention is an episode in which a concept was discussed, with the
// definition and application recorded for the concept in that episode.
type EpisodeMention struct {
	EpisodeID   string `json:"episode_id"`
	Title       string `json:"title"`
	Definition  string `json:"definition"`
	Application string `json:"application"`
}

// RelatedConcept is a neighbour of a concept with the co-occurrence weight.
type RelatedConcept struct {
	Concept        string   `json:"concept"`
	Strength       int      `json:"strength"`
	SharedEpisodes []string `json:"shared_episodes"`
}

// ConceptDetail is the answer to MapSingleConcept.
type ConceptDetail struct {
	Concept               string           `json:"concept"`
	Occurrences           int              `json:"occurrences"`
	Episodes              []EpisodeMention `json:"episodes"`
	RelatedConcepts       []RelatedConcept `json:"related_concepts"`
	CentralityScore       float64          `json:"centrality_score"`
	ClusteringCoefficient float64          `json:"clustering_coefficient"`
}

// ConceptCount pairs a concept with its occurrence count.
type ConceptCount struct {
	Concept string `json:"concept"`
	Count   int    `json:"count"`
}

// ConceptScore pairs a concept with a centrality score.
type ConceptScore struct {
	Concept string  `json:"concept"`
	Score   float64 `json:"score"`
}

// Cluster is a connected component of at least three concepts.
type Cluster struct {
	Size           int      `json:"size"`
	Concepts       []string `json:"concepts"`
	CentralConcept string   `json:"central_concept"`
	Density        float64  `json:"density"`
}

// StrongConnection is an edge whose weight reached the strong threshold.
type StrongConnection struct {
	Concepts [2]string `json:"concepts"`
	Strength int       `json:"strength"`
	Episodes []string  `json:"episodes"`
}

// ConceptMapSummary is the answer to MapAllConcepts.
type ConceptMapSummary struct {
	TotalConcepts            int                `json:"total_concepts"`
	TotalRelationships       int                `json:"total_relationships"`
	TopConceptsByFrequency   []ConceptCount     `json:"top_concepts_by_frequency"`
	TopConceptsByCentrality  []ConceptScore     `json:"top_concepts_by_centrality"`
	TopConceptsByBetweenness []ConceptScore     `json:"top_concepts_by_betweenness"`
	ConceptClusters          []Cluster          `json:"concept_clusters"`
	StrongConnections        []StrongConnection `json:"strong_connections"`
	GraphDensity             float64            `json:"graph_density"`
	AverageClustering        float64            `json:"average_clustering"`
}

// PathStep is one hop of a concept path.
type PathStep struct {
	From           string   `json:"from"`
	To             string   `json:"to"`
	Strength       int      `json:"strength"`
	SharedEpisodes []string `json:"shared_episodes"`
}

// PathResult is the answer to FindConceptPath.
type PathResult struct {
	Concept1    string     `json:"concept1"`
	Concept2    string     `json:"concept2"`
	Path        []string   `json:"path"`
	PathLength  int        `json:"path_length"`
	PathDetails []PathStep `json:"path_details"`
}

// MapSingleConcept describes one concept: where it appears, its strongest
// neighbours and its local metrics. The name is matched exactly first and
// case-insensitively second; a miss returns a *ConceptNotFoundError.
func (g *Graph) MapSingleConcept(name string) (*ConceptDetail, error) {
	canonical, ok := g.Resolve(name)
	if !ok {
		return nil, &ConceptNotFoundError{Name: name}
	}
	i := g.index[canonical]
	node := g.nodes[i]

	related := make([]RelatedConcept, 0, len(g.adj[i]))
	for _, j := range g.adj[i] {
		e := g.edgeBetween(i, j)
		related = append(related, RelatedConcept{
			Concept:        g.nodes[j].Name,
			Strength:       e.Weight,
			SharedEpisodes: slices.Clone(e.SharedEpisodeIDs),
		})
	}
	slices.SortStableFunc(related, func(a, b RelatedConcept) int {
		return cmp.Compare(b.Strength, a.Strength)
	})
	if len(related) > relatedLimit {
		related = related[:relatedLimit]
	}

	mentions := make([]EpisodeMention, 0, len(node.EpisodeIDs))
	for _, id := range node.EpisodeIDs {
		ep, ok := g.episodes[id]
		if !ok {
			continue
		}
		mention := EpisodeMention{EpisodeID: id, Title: ep.Title}
		for _, entry := range ep.Concepts {
			if entry.Valid() && strings.EqualFold(entry.Concept, canonical) {
				mention.Definition = entry.Definition
				mention.Application = entry.Application
				break
			}
		}
		mentions = append(mentions, mention)
	}

	return &ConceptDetail{
		Concept:               canonical,
		Occurrences:           node.OccurrenceCount,
		Episodes:              mentions,
		RelatedConcepts:       related,
		CentralityScore:       g.degreeCentrality(i),
		ClusteringCoefficient: g.clustering(i),
	}, nil
}

// MapAllConcepts summarises the whole graph. Ties in every ranking keep
// node discovery order. An empty graph yields zero counts and empty lists.
func (g *Graph) MapAllConcepts() *ConceptMapSummary {
	n := len(g.nodes)

	byFrequency := make([]ConceptCount, n)
	byCentrality := make([]ConceptScore, n)
	byBetweenness := make([]ConceptScore, n)
	between := g.betweenness()
	for i, node := range g.nodes {
		byFrequency[i] = ConceptCount{Concept: node.Name, Count: node.OccurrenceCount}
		byCentrality[i] = ConceptScore{Concept: node.Name, Score: g.degreeCentrality(i)}
		byBetweenness[i] = ConceptScore{Concept: node.Name, Score: between[i]}
	}
	slices.SortStableFunc(byFrequency, func(a, b ConceptCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	byScore := func(a, b ConceptScore) int {
		return cmp.Compare(b.Score, a.Score)
	}
	slices.SortStableFunc(byCentrality, byScore)
	slices.SortStableFunc(byBetweenness, byScore)

	strong := make([]StrongConnection, 0)
	for _, e := range g.edges {
		if e.Weight < strongEdgeMinimum {
			continue
		}
		strong = append(strong, StrongConnection{
			Concepts: [2]string{e.Source, e.Target},
			Strength: e.Weight,
			Episodes: slices.Clone(e.SharedEpisodeIDs),
		})
	}
	slices.SortStableFunc(strong, func(a, b StrongConnection) int {
		return cmp.Compare(b.Strength, a.Strength)
	})

	return &ConceptMapSummary{
		TotalConcepts:            n,
		TotalRelationships:       len(g.edges),
		TopConceptsByFrequency:   truncate(byFrequency, topConceptsLimit),
		TopConceptsByCentrality:  truncate(byCentrality, topConceptsLimit),
		TopConceptsByBetweenness: truncate(byBetweenness, topConceptsLimit),
		ConceptClusters:          g.Clusters(),
		StrongConnections:        truncate(strong, strongLimit),
		GraphDensity:             g.Density(),
		AverageClustering:        g.AverageClustering(),
	}
}

// Clusters returns up to ten connected components with at least three
// members, largest first. Graphs with fewer than five concepts have no
// clusters.
func (g *Graph) Clusters() []Cluster {
	clusters := make([]Cluster, 0)
	if len(g.nodes) < minClusterGraph {
		return clusters
	}

	for _, comp := range g.components() {
		if len(comp) < minClusterSize {
			continue
		}

		// Components are maximal, so every neighbour lies inside and the
		// subgraph degree equals the full degree.
		central := comp[0]
		degreeSum := 0
		names := make([]string, 0, len(comp))
		for _, i := range comp {
			names = append(names, g.nodes[i].Name)
			degreeSum += len(g.adj[i])
			if len(g.adj[i]) > len(g.adj[central]) {
				central = i
			}
		}

		clusters = append(clusters, Cluster{
			Size:           len(comp),
			Concepts:       names,
			CentralConcept: g.nodes[central].Name,
			Density:        density(len(comp), degreeSum/2),
		})
	}

	slices.SortStableFunc(clusters, func(a, b Cluster) int {
		return cmp.Compare(b.Size, a.Size)
	})
	return truncate(clusters, clusterLimit)
}

// FindConceptPath finds a shortest chain of co-occurrences linking a and b.
// Both names resolve like MapSingleConcept. An unresolved name yields a
// *ConceptNotFoundError; concepts in different components yield a
// *NoPathError carrying the canonical names.
func (g *Graph) FindConceptPath(a, b string) (*PathResult, error) {
	from, ok := g.Resolve(a)
	if !ok {
		return nil, &ConceptNotFoundError{Name: a}
	}
	to, ok := g.Resolve(b)
	if !ok {
		return nil, &ConceptNotFoundError{Name: b}
	}

	path := g.shortestPath(g.index[from], g.index[to])
	if path == nil {
		return nil, &NoPathError{From: from, To: to}
	}

	names := make([]string, len(path))
	for k, i := range path {
		names[k] = g.nodes[i].Name
	}

	steps := make([]PathStep, 0, len(path)-1)
	for k := 0; k+1 < len(path); k++ {
		e := g.edgeBetween(path[k], path[k+1])
		steps = append(steps, PathStep{
			From:           names[k],
			To:             names[k+1],
			Strength:       e.Weight,
			SharedEpisodes: slices.Clone(e.SharedEpisodeIDs),
		})
	}

	return &PathResult{
		Concept1:    from,
		Concept2:    to,
		Path:        names,
		PathLength:  len(path) - 1,
		PathDetails: steps,
	}, nil
}

func truncate[T any](s []T, limit int) []T {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}

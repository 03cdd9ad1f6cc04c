package graph

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/project-simone/simone/pkg/common"
)

func episode(id string, concepts ...string) common.Episode {
	entries := make([]common.ConceptEntry, 0, len(concepts))
	for _, c := range concepts {
		entries = append(entries, common.ConceptEntry{
			Concept:    c,
			Definition: "def of " + c + " in " + id,
		})
	}
	return common.Episode{ID: id, Title: "Episode " + id, Concepts: entries}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuild_TwoEpisodeScenario(t *testing.T) {
	g := Build([]common.Episode{
		episode("E1", "A", "B"),
		episode("E2", "B", "C"),
	})

	if g.NodeCount() != 3 {
		t.Fatalf("NodeCount() = %d, want 3", g.NodeCount())
	}
	wantCounts := map[string]int{"A": 1, "B": 2, "C": 1}
	for name, want := range wantCounts {
		n, ok := g.Node(name)
		if !ok {
			t.Fatalf("Node(%q) missing", name)
		}
		if n.OccurrenceCount != want {
			t.Errorf("Node(%q).OccurrenceCount = %d, want %d", name, n.OccurrenceCount, want)
		}
	}

	for _, p := range [][2]string{{"A", "B"}, {"B", "C"}} {
		e, ok := g.Edge(p[0], p[1])
		if !ok {
			t.Fatalf("Edge(%q, %q) missing", p[0], p[1])
		}
		if e.Weight != 1 {
			t.Errorf("Edge(%q, %q).Weight = %d, want 1", p[0], p[1], e.Weight)
		}
	}
	if _, ok := g.Edge("A", "C"); ok {
		t.Errorf("Edge(A, C) should not exist")
	}

	summary := g.MapAllConcepts()
	if summary.TotalRelationships != 2 {
		t.Errorf("TotalRelationships = %d, want 2", summary.TotalRelationships)
	}
	if summary.TotalConcepts != 3 {
		t.Errorf("TotalConcepts = %d, want 3", summary.TotalConcepts)
	}
}

func TestFindConceptPath_Scenario(t *testing.T) {
	g := Build([]common.Episode{
		episode("E1", "A", "B"),
		episode("E2", "B", "C"),
	})

	res, err := g.FindConceptPath("A", "C")
	if err != nil {
		t.Fatalf("FindConceptPath() error = %v", err)
	}
	if !reflect.DeepEqual(res.Path, []string{"A", "B", "C"}) {
		t.Errorf("Path = %v, want [A B C]", res.Path)
	}
	if res.PathLength != 2 {
		t.Errorf("PathLength = %d, want 2", res.PathLength)
	}
	want := []PathStep{
		{From: "A", To: "B", Strength: 1, SharedEpisodes: []string{"E1"}},
		{From: "B", To: "C", Strength: 1, SharedEpisodes: []string{"E2"}},
	}
	if !reflect.DeepEqual(res.PathDetails, want) {
		t.Errorf("PathDetails = %#v, want %#v", res.PathDetails, want)
	}
}

func TestFindConceptPath_Errors(t *testing.T) {
	g := Build([]common.Episode{
		episode("E1", "Stoicism", "Virtue"),
		episode("E2", "Nihilism", "Absurdism"),
	})

	tests := []struct {
		name    string
		a, b    string
		wantErr error
	}{
		{name: "first unknown", a: "Missing", b: "Virtue", wantErr: ErrConceptNotFound},
		{name: "second unknown", a: "Virtue", b: "Missing", wantErr: ErrConceptNotFound},
		{name: "disconnected", a: "stoicism", b: "ABSURDISM", wantErr: ErrNoPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.FindConceptPath(tt.a, tt.b)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("FindConceptPath() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	_, err := g.FindConceptPath("stoicism", "absurdism")
	var noPath *NoPathError
	if !errors.As(err, &noPath) {
		t.Fatalf("expected *NoPathError, got %T", err)
	}
	if noPath.From != "Stoicism" || noPath.To != "Absurdism" {
		t.Errorf("NoPathError = %+v, want canonical names", noPath)
	}

	_, err = g.FindConceptPath("Virtue", "Missing")
	var notFound *ConceptNotFoundError
	if !errors.As(err, &notFound) || notFound.Name != "Missing" {
		t.Errorf("expected ConceptNotFoundError for Missing, got %v", err)
	}
}

func TestFindConceptPath_SameConcept(t *testing.T) {
	g := Build([]common.Episode{episode("E1", "A", "B")})

	res, err := g.FindConceptPath("a", "A")
	if err != nil {
		t.Fatalf("FindConceptPath() error = %v", err)
	}
	if res.PathLength != 0 || len(res.Path) != 1 || len(res.PathDetails) != 0 {
		t.Errorf("FindConceptPath(a, A) = %+v, want zero length path", res)
	}
}

func TestMapSingleConcept_NotFound(t *testing.T) {
	g := Build([]common.Episode{
		episode("E1", "A", "B"),
		episode("E2", "B", "C"),
	})

	_, err := g.MapSingleConcept("D")
	if !errors.Is(err, ErrConceptNotFound) {
		t.Fatalf("MapSingleConcept(D) error = %v, want ErrConceptNotFound", err)
	}
	var notFound *ConceptNotFoundError
	if !errors.As(err, &notFound) || notFound.Name != "D" {
		t.Errorf("error should carry requested name, got %v", err)
	}
}

func TestMapSingleConcept_CaseInsensitive(t *testing.T) {
	g := Build([]common.Episode{
		episode("E1", "Stoicism", "Virtue"),
		episode("E2", "Stoicism", "Fate"),
	})

	exact, err := g.MapSingleConcept("Stoicism")
	if err != nil {
		t.Fatalf("MapSingleConcept(Stoicism) error = %v", err)
	}
	folded, err := g.MapSingleConcept("STOICISM")
	if err != nil {
		t.Fatalf("MapSingleConcept(STOICISM) error = %v", err)
	}
	if !reflect.DeepEqual(exact, folded) {
		t.Errorf("case-insensitive lookup differs:\n%#v\n%#v", exact, folded)
	}
	if folded.Concept != "Stoicism" {
		t.Errorf("Concept = %q, want canonical Stoicism", folded.Concept)
	}
}

func TestMapSingleConcept_Detail(t *testing.T) {
	g := Build([]common.Episode{
		episode("E1", "A", "B", "C"),
		episode("E2", "A", "C"),
		episode("E3", "A", "C", "D"),
	})

	d, err := g.MapSingleConcept("A")
	if err != nil {
		t.Fatalf("MapSingleConcept(A) error = %v", err)
	}
	if d.Occurrences != 3 {
		t.Errorf("Occurrences = %d, want 3", d.Occurrences)
	}

	wantRelated := []RelatedConcept{
		{Concept: "C", Strength: 3, SharedEpisodes: []string{"E1", "E2", "E3"}},
		{Concept: "B", Strength: 1, SharedEpisodes: []string{"E1"}},
		{Concept: "D", Strength: 1, SharedEpisodes: []string{"E3"}},
	}
	if !reflect.DeepEqual(d.RelatedConcepts, wantRelated) {
		t.Errorf("RelatedConcepts = %#v, want %#v", d.RelatedConcepts, wantRelated)
	}

	if len(d.Episodes) != 3 {
		t.Fatalf("len(Episodes) = %d, want 3", len(d.Episodes))
	}
	first := d.Episodes[0]
	if first.EpisodeID != "E1" || first.Title != "Episode E1" || first.Definition != "def of A in E1" {
		t.Errorf("Episodes[0] = %+v", first)
	}

	if !almostEqual(d.CentralityScore, 1.0) {
		t.Errorf("CentralityScore = %v, want 1", d.CentralityScore)
	}
	// Neighbours B, C, D: B-C and C-D are linked, B-D is not.
	if !almostEqual(d.ClusteringCoefficient, 2.0/3.0) {
		t.Errorf("ClusteringCoefficient = %v, want 2/3", d.ClusteringCoefficient)
	}
}

func TestMapSingleConcept_RelatedLimit(t *testing.T) {
	names := []string{"Hub"}
	for _, c := range "ABCDEFGHIJKL" {
		names = append(names, string(c))
	}
	g := Build([]common.Episode{episode("E1", names...)})

	d, err := g.MapSingleConcept("Hub")
	if err != nil {
		t.Fatalf("MapSingleConcept(Hub) error = %v", err)
	}
	if len(d.RelatedConcepts) != 10 {
		t.Fatalf("len(RelatedConcepts) = %d, want 10", len(d.RelatedConcepts))
	}
	if d.RelatedConcepts[0].Concept != "A" || d.RelatedConcepts[9].Concept != "J" {
		t.Errorf("ties should keep discovery order, got %v..%v", d.RelatedConcepts[0].Concept, d.RelatedConcepts[9].Concept)
	}
}

func TestBuild_DuplicateConceptQuirk(t *testing.T) {
	g := Build([]common.Episode{
		episode("E1", "A", "B"),
		episode("E3", "A", "B", "A"),
	})

	a, _ := g.Node("A")
	if a.OccurrenceCount != 3 {
		t.Errorf("A.OccurrenceCount = %d, want 3 (1 + 2)", a.OccurrenceCount)
	}
	if !reflect.DeepEqual(a.EpisodeIDs, []string{"E1", "E3", "E3"}) {
		t.Errorf("A.EpisodeIDs = %v", a.EpisodeIDs)
	}
	e, _ := g.Edge("A", "B")
	if e.Weight != 3 {
		t.Errorf("Edge(A, B).Weight = %d, want 3 (1 + 2)", e.Weight)
	}
	if _, ok := g.Edge("A", "A"); ok {
		t.Errorf("self loop must not exist")
	}
}

func TestBuild_DedupePerEpisode(t *testing.T) {
	g := Build([]common.Episode{
		episode("E3", "A", "B", "A"),
	}, WithDedupePerEpisode(true))

	a, _ := g.Node("A")
	if a.OccurrenceCount != 1 {
		t.Errorf("A.OccurrenceCount = %d, want 1", a.OccurrenceCount)
	}
	e, _ := g.Edge("A", "B")
	if e.Weight != 1 {
		t.Errorf("Edge(A, B).Weight = %d, want 1", e.Weight)
	}
}

func TestBuild_CaseFolding(t *testing.T) {
	episodes := []common.Episode{
		episode("E1", "Stoicism", "Virtue"),
		episode("E2", "stoicism", "Fate"),
	}

	plain := Build(episodes)
	if plain.NodeCount() != 4 {
		t.Errorf("without folding NodeCount() = %d, want 4", plain.NodeCount())
	}
	resolved, _ := plain.Resolve("STOICISM")
	if resolved != "Stoicism" {
		t.Errorf("Resolve should pick first discovered variant, got %q", resolved)
	}

	folded := Build(episodes, WithCaseFolding(true))
	if folded.NodeCount() != 3 {
		t.Errorf("with folding NodeCount() = %d, want 3", folded.NodeCount())
	}
	n, ok := folded.Node("Stoicism")
	if !ok || n.OccurrenceCount != 2 {
		t.Errorf("folded Stoicism = %+v, want count 2", n)
	}
	if folded.HasNode("stoicism") {
		t.Errorf("later casing must not become a node")
	}
}

func TestBuild_SkipsMalformed(t *testing.T) {
	ep := common.Episode{
		ID:    "E1",
		Title: "Mixed",
		Concepts: []common.ConceptEntry{
			{Concept: "A"},
			{Concept: ""},
			{Err: errors.New("not an object")},
			{Concept: "B"},
		},
	}
	g := Build([]common.Episode{
		ep,
		{ID: "", Concepts: []common.ConceptEntry{{Concept: "Ghost"}}},
	})

	if g.NodeCount() != 2 {
		t.Fatalf("NodeCount() = %d, want 2", g.NodeCount())
	}
	if g.HasNode("Ghost") {
		t.Errorf("episode without id must be skipped")
	}
	if e, ok := g.Edge("A", "B"); !ok || e.Weight != 1 {
		t.Errorf("Edge(A, B) = %+v, %v", e, ok)
	}
}

func TestGraph_Invariants(t *testing.T) {
	g := Build([]common.Episode{
		episode("E1", "A", "B", "C"),
		episode("E2", "B", "C", "D"),
		episode("E3", "D", "E"),
		episode("E4", "A", "A", "F"),
		episode("E5", "G"),
	})

	for _, n := range g.Nodes() {
		if n.OccurrenceCount != len(n.EpisodeIDs) {
			t.Errorf("%s: OccurrenceCount %d != len(EpisodeIDs) %d", n.Name, n.OccurrenceCount, len(n.EpisodeIDs))
		}
	}

	for _, e := range g.Edges() {
		ab, ok1 := g.Edge(e.Source, e.Target)
		ba, ok2 := g.Edge(e.Target, e.Source)
		if !ok1 || !ok2 || ab.Weight != ba.Weight {
			t.Errorf("edge %s-%s not symmetric", e.Source, e.Target)
		}

		for _, pair := range [][2]string{{e.Source, e.Target}, {e.Target, e.Source}} {
			d, err := g.MapSingleConcept(pair[0])
			if err != nil {
				t.Fatalf("MapSingleConcept(%s) error = %v", pair[0], err)
			}
			found := false
			for _, r := range d.RelatedConcepts {
				if r.Concept == pair[1] {
					found = true
				}
			}
			if !found {
				t.Errorf("%s missing from related concepts of %s", pair[1], pair[0])
			}
		}
	}

	if d := g.Density(); d < 0 || d > 1 {
		t.Errorf("Density() = %v, out of [0, 1]", d)
	}
}

func TestGraph_PathOptimality(t *testing.T) {
	g := Build([]common.Episode{
		episode("E1", "A", "B"),
		episode("E2", "B", "C"),
		episode("E3", "C", "D"),
		episode("E4", "D", "E"),
		episode("E5", "A", "X"),
		episode("E6", "X", "E"),
	})

	for _, src := range g.Nodes() {
		dist := g.distances(g.index[src.Name], -1)
		for _, dst := range g.Nodes() {
			res, err := g.FindConceptPath(src.Name, dst.Name)
			if err != nil {
				t.Fatalf("FindConceptPath(%s, %s) error = %v", src.Name, dst.Name, err)
			}
			if res.PathLength != dist[g.index[dst.Name]] {
				t.Errorf("path %s->%s length %d, BFS distance %d", src.Name, dst.Name, res.PathLength, dist[g.index[dst.Name]])
			}
			for k := 0; k+1 < len(res.Path); k++ {
				if _, ok := g.Edge(res.Path[k], res.Path[k+1]); !ok {
					t.Errorf("path %v uses missing edge", res.Path)
				}
			}
		}
	}

	res, _ := g.FindConceptPath("A", "E")
	if res.PathLength != 2 {
		t.Errorf("A->E should go through X, got %v", res.Path)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	episodes := []common.Episode{
		episode("E1", "A", "B", "C"),
		episode("E2", "C", "D"),
		episode("E3", "A", "D", "A"),
	}
	g1 := Build(episodes)
	g2 := Build(episodes)

	if !reflect.DeepEqual(g1.Nodes(), g2.Nodes()) {
		t.Errorf("node sets differ between builds")
	}
	if !reflect.DeepEqual(g1.Edges(), g2.Edges()) {
		t.Errorf("edge sets differ between builds")
	}
}

func TestMetrics_EmptyAndSingleton(t *testing.T) {
	tests := []struct {
		name     string
		episodes []common.Episode
	}{
		{name: "empty", episodes: nil},
		{name: "single node", episodes: []common.Episode{episode("E1", "Solo")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Build(tt.episodes)
			if g.Density() != 0 {
				t.Errorf("Density() = %v, want 0", g.Density())
			}
			if g.AverageClustering() != 0 {
				t.Errorf("AverageClustering() = %v, want 0", g.AverageClustering())
			}
			s := g.MapAllConcepts()
			if s.TotalRelationships != 0 || len(s.ConceptClusters) != 0 || len(s.StrongConnections) != 0 {
				t.Errorf("MapAllConcepts() = %+v, want empty summary", s)
			}
			if s.TopConceptsByFrequency == nil || s.ConceptClusters == nil || s.StrongConnections == nil {
				t.Errorf("summary lists must be empty, not nil")
			}
			if _, err := g.MapSingleConcept("anything"); !errors.Is(err, ErrConceptNotFound) {
				t.Errorf("MapSingleConcept() error = %v, want ErrConceptNotFound", err)
			}
			if g.DegreeCentrality("Solo") != 0 {
				t.Errorf("DegreeCentrality(Solo) = %v, want 0", g.DegreeCentrality("Solo"))
			}
		})
	}
}

func TestBetweenness(t *testing.T) {
	tests := []struct {
		name     string
		episodes []common.Episode
		want     map[string]float64
	}{
		{
			name: "path",
			episodes: []common.Episode{
				episode("E1", "A", "B"),
				episode("E2", "B", "C"),
			},
			want: map[string]float64{"A": 0, "B": 1, "C": 0},
		},
		{
			name: "star",
			episodes: []common.Episode{
				episode("E1", "Hub", "A"),
				episode("E2", "Hub", "B"),
				episode("E3", "Hub", "C"),
				episode("E4", "Hub", "D"),
			},
			want: map[string]float64{"Hub": 1, "A": 0, "B": 0, "C": 0, "D": 0},
		},
		{
			name: "path of four",
			episodes: []common.Episode{
				episode("E1", "A", "B"),
				episode("E2", "B", "C"),
				episode("E3", "C", "D"),
			},
			// B lies on A-C and A-D: 2 of the 3 pairs not involving B.
			want: map[string]float64{"A": 0, "B": 2.0 / 3.0, "C": 2.0 / 3.0, "D": 0},
		},
		{
			name: "square splits paths",
			episodes: []common.Episode{
				episode("E1", "A", "B"),
				episode("E2", "B", "C"),
				episode("E3", "C", "D"),
				episode("E4", "D", "A"),
			},
			want: map[string]float64{"A": 1.0 / 6.0, "B": 1.0 / 6.0, "C": 1.0 / 6.0, "D": 1.0 / 6.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.episodes).Betweenness()
			for name, want := range tt.want {
				if !almostEqual(got[name], want) {
					t.Errorf("Betweenness()[%s] = %v, want %v", name, got[name], want)
				}
			}
		})
	}
}

func TestClustering(t *testing.T) {
	g := Build([]common.Episode{
		episode("E1", "A", "B", "C"),
		episode("E2", "C", "D"),
	})

	want := map[string]float64{"A": 1, "B": 1, "C": 1.0 / 3.0, "D": 0}
	for name, w := range want {
		if got := g.Clustering(name); !almostEqual(got, w) {
			t.Errorf("Clustering(%s) = %v, want %v", name, got, w)
		}
	}
	if got := g.AverageClustering(); !almostEqual(got, (1+1+1.0/3.0)/4) {
		t.Errorf("AverageClustering() = %v", got)
	}
	// 4 edges over 6 possible pairs.
	if got := g.Density(); !almostEqual(got, 4.0/6.0) {
		t.Errorf("Density() = %v, want 2/3", got)
	}
}

func TestMapAllConcepts_ClustersAndStrongConnections(t *testing.T) {
	g := Build([]common.Episode{
		episode("E1", "A", "B", "C"),
		episode("E2", "D", "E"),
		episode("E3", "E", "F"),
		episode("E4", "G", "H"),
		episode("E5", "G", "H"),
		episode("E6", "G", "H"),
	})

	s := g.MapAllConcepts()

	wantClusters := []Cluster{
		{Size: 3, Concepts: []string{"A", "B", "C"}, CentralConcept: "A", Density: 1},
		{Size: 3, Concepts: []string{"D", "E", "F"}, CentralConcept: "E", Density: 2.0 / 3.0},
	}
	if len(s.ConceptClusters) != len(wantClusters) {
		t.Fatalf("ConceptClusters = %+v", s.ConceptClusters)
	}
	for i, want := range wantClusters {
		got := s.ConceptClusters[i]
		if got.Size != want.Size || got.CentralConcept != want.CentralConcept ||
			!reflect.DeepEqual(got.Concepts, want.Concepts) || !almostEqual(got.Density, want.Density) {
			t.Errorf("ConceptClusters[%d] = %+v, want %+v", i, got, want)
		}
	}

	wantStrong := []StrongConnection{
		{Concepts: [2]string{"G", "H"}, Strength: 3, Episodes: []string{"E4", "E5", "E6"}},
	}
	if !reflect.DeepEqual(s.StrongConnections, wantStrong) {
		t.Errorf("StrongConnections = %#v, want %#v", s.StrongConnections, wantStrong)
	}

	if s.TopConceptsByFrequency[0] != (ConceptCount{Concept: "G", Count: 3}) {
		t.Errorf("TopConceptsByFrequency[0] = %+v", s.TopConceptsByFrequency[0])
	}
	if s.TopConceptsByBetweenness[0].Concept != "E" {
		t.Errorf("TopConceptsByBetweenness[0] = %+v, want E", s.TopConceptsByBetweenness[0])
	}
}

func TestClusters_SmallGraph(t *testing.T) {
	g := Build([]common.Episode{episode("E1", "A", "B", "C")})
	if got := g.Clusters(); len(got) != 0 {
		t.Errorf("Clusters() on 3 nodes = %+v, want none", got)
	}
}

func TestConnectedComponents(t *testing.T) {
	g := Build([]common.Episode{
		episode("E1", "A", "B"),
		episode("E2", "C", "D"),
		episode("E3", "B", "E"),
		episode("E4", "F"),
	})

	want := [][]string{{"A", "B", "E"}, {"C", "D"}, {"F"}}
	if got := g.ConnectedComponents(); !reflect.DeepEqual(got, want) {
		t.Errorf("ConnectedComponents() = %v, want %v", got, want)
	}
}

func TestDistances(t *testing.T) {
	g := Build([]common.Episode{
		episode("E1", "A", "B"),
		episode("E2", "B", "C"),
		episode("E3", "D", "E"),
	})

	got, err := g.Distances("a")
	if err != nil {
		t.Fatalf("Distances() error = %v", err)
	}
	want := map[string]int{"A": 0, "B": 1, "C": 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Distances() = %v, want %v", got, want)
	}

	if _, err := g.Distances("Z"); !errors.Is(err, ErrConceptNotFound) {
		t.Errorf("Distances(Z) error = %v, want ErrConceptNotFound", err)
	}
}

func TestExportForVisualization(t *testing.T) {
	g := Build([]common.Episode{
		episode("E1", "A", "B"),
		episode("E2", "B", "C"),
		episode("E3", "A", "B"),
	})

	data := g.ExportForVisualization()
	wantNodes := []VisualizationNode{
		{ID: "A", Label: "A", Size: 2, Episodes: 2},
		{ID: "B", Label: "B", Size: 3, Episodes: 3},
		{ID: "C", Label: "C", Size: 1, Episodes: 1},
	}
	wantEdges := []VisualizationEdge{
		{Source: "A", Target: "B", Weight: 2},
		{Source: "B", Target: "C", Weight: 1},
	}
	if !reflect.DeepEqual(data.Nodes, wantNodes) {
		t.Errorf("Nodes = %#v, want %#v", data.Nodes, wantNodes)
	}
	if !reflect.DeepEqual(data.Edges, wantEdges) {
		t.Errorf("Edges = %#v, want %#v", data.Edges, wantEdges)
	}
}

func TestNeighborhood(t *testing.T) {
	g := Build([]common.Episode{
		episode("E1", "A", "B"),
		episode("E2", "B", "C"),
		episode("E3", "C", "D"),
	})

	n, err := g.Neighborhood("b", 1)
	if err != nil {
		t.Fatalf("Neighborhood() error = %v", err)
	}
	if n.Center != "B" {
		t.Errorf("Center = %q, want B", n.Center)
	}
	dist := map[string]int{}
	for _, node := range n.Nodes {
		dist[node.ID] = node.Distance
	}
	if !reflect.DeepEqual(dist, map[string]int{"A": 1, "B": 0, "C": 1}) {
		t.Errorf("distances = %v", dist)
	}
	if len(n.Edges) != 2 {
		t.Errorf("len(Edges) = %d, want 2", len(n.Edges))
	}

	if _, err := g.Neighborhood("Z", 2); !errors.Is(err, ErrConceptNotFound) {
		t.Errorf("Neighborhood(Z) error = %v, want ErrConceptNotFound", err)
	}
}

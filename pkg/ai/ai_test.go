package ai

import "testing"

func TestResolveOptions(t *testing.T) {
	defaults := GenerateOptions{Model: "gpt", Temperature: 0.3}

	got := ResolveOptions(defaults, WithModel(""), WithTemperature(0.9), WithSystemPrompts("a", "b"), WithMaxTokens(500))
	if got.Model != "gpt" {
		t.Errorf("empty WithModel overrode default: %q", got.Model)
	}
	if got.Temperature != 0.9 || got.MaxTokens != 500 || len(got.SystemPrompts) != 2 {
		t.Errorf("ResolveOptions() = %+v", got)
	}
	if defaults.Temperature != 0.3 {
		t.Errorf("defaults mutated: %+v", defaults)
	}
}

func TestMetricsRecorder(t *testing.T) {
	var r MetricsRecorder

	r.Add(ModelMetrics{InputTokens: 100, OutputTokens: 50, TotalTokens: 150, DurationMs: 500})
	r.Add(ModelMetrics{InputTokens: 10, OutputTokens: 40, TotalTokens: 50, DurationMs: 500})

	got := r.Get()
	want := ModelMetrics{
		Requests:       2,
		InputTokens:    110,
		OutputTokens:   90,
		TotalTokens:    200,
		DurationMs:     1000,
		TokenPerSecond: 200,
	}
	if got != want {
		t.Fatalf("Get() = %+v, want %+v", got, want)
	}

	r.Reset()
	if got := r.Get(); got != (ModelMetrics{}) {
		t.Fatalf("Get() after Reset = %+v, want zero", got)
	}
}

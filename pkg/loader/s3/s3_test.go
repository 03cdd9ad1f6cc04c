package s3

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeBucket struct {
	pages   [][]string
	objects map[string]string
	gets    int
}

func (f *fakeBucket) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	page := 0
	if in.ContinuationToken != nil {
		for i := range f.pages {
			if *in.ContinuationToken == pageToken(i) {
				page = i
			}
		}
	}

	out := &s3.ListObjectsV2Output{}
	for _, key := range f.pages[page] {
		if in.Prefix != nil && !strings.HasPrefix(key, *in.Prefix) {
			continue
		}
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key)})
	}
	if page+1 < len(f.pages) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(pageToken(page + 1))
	}
	return out, nil
}

func (f *fakeBucket) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gets++
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func pageToken(i int) string {
	return "page-" + string(rune('0'+i))
}

func TestS3EpisodeLoader_List(t *testing.T) {
	bucket := &fakeBucket{
		pages: [][]string{
			{"analysis/ep-2.json", "analysis/episode_index.json", "other/ep-9.json"},
			{"analysis/batch_results/ep-3.json", "analysis/ep-1.json", "analysis/notes.txt"},
		},
	}
	l := NewS3EpisodeLoaderWithClient("simone", "analysis/", bucket)

	got, err := l.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"analysis/ep-1.json", "analysis/ep-2.json"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
}

func TestS3EpisodeLoader_Read(t *testing.T) {
	bucket := &fakeBucket{
		objects: map[string]string{"analysis/ep-1.json": `{"episode_id":"ep-1"}`},
	}
	l := NewS3EpisodeLoaderWithClient("simone", "analysis/", bucket)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		b, err := l.Read(ctx, "analysis/ep-1.json")
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if string(b) != `{"episode_id":"ep-1"}` {
			t.Fatalf("Read() = %s", b)
		}
	}
	if bucket.gets != 1 {
		t.Fatalf("expected one GetObject call, got %d", bucket.gets)
	}

	l.Refresh()
	if _, err := l.Read(ctx, "analysis/ep-1.json"); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if bucket.gets != 2 {
		t.Fatalf("expected refetch after Refresh, got %d calls", bucket.gets)
	}

	l.retryBackoff = 0
	before := bucket.gets
	if _, err := l.Read(ctx, "analysis/missing.json"); err == nil {
		t.Fatal("expected error for missing object")
	}
	if got := bucket.gets - before; got != readAttempts {
		t.Fatalf("expected %d attempts for a failing read, got %d", readAttempts, got)
	}
}

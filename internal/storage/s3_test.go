package storage

import (
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func TestParseS3URL(t *testing.T) {
	tests := []struct {
		in     string
		bucket string
		key    string
		ok     bool
	}{
		{in: "s3://exports/reports/stoicism.json", bucket: "exports", key: "reports/stoicism.json", ok: true},
		{in: "s3://exports/", ok: false},
		{in: "s3://", ok: false},
		{in: "/tmp/report.json", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			bucket, key, ok := ParseS3URL(tt.in)
			if ok != tt.ok || bucket != tt.bucket || key != tt.key {
				t.Fatalf("ParseS3URL(%q) = %q, %q, %v", tt.in, bucket, key, ok)
			}
		})
	}
}

type recordingWriter struct {
	input *s3.PutObjectInput
	body  []byte
}

func (w *recordingWriter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	w.input = in
	w.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestPutFile(t *testing.T) {
	w := &recordingWriter{}
	if err := PutFile(context.Background(), w, "exports", "graph/latest.json", []byte("{}")); err != nil {
		t.Fatalf("PutFile() error = %v", err)
	}
	if aws.ToString(w.input.Bucket) != "exports" || aws.ToString(w.input.Key) != "graph/latest.json" {
		t.Fatalf("unexpected target %s/%s", aws.ToString(w.input.Bucket), aws.ToString(w.input.Key))
	}
	if ct := aws.ToString(w.input.ContentType); ct != "application/json" {
		t.Fatalf("ContentType = %q", ct)
	}
	if string(w.body) != "{}" {
		t.Fatalf("body = %q", w.body)
	}
}

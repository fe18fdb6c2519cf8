package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// ---------------------------------------------------------------------------
// mock S3 client
// ---------------------------------------------------------------------------

// apiError implements smithy.APIError for test assertions.
type apiError struct {
	code string
	msg  string
}

func (e *apiError) Error() string                 { return e.msg }
func (e *apiError) ErrorCode() string             { return e.code }
func (e *apiError) ErrorMessage() string          { return e.msg }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

var errNotFound = &apiError{code: "NotFound", msg: "not found"}

type object struct {
	data        []byte
	contentType string
}

// mockS3 is a thread-safe in-memory S3 backend.
type mockS3 struct {
	mu      sync.Mutex
	objects map[string]object

	putErr  error
	headErr error
}

func newMockS3() *mockS3 {
	return &mockS3{objects: make(map[string]object)}
}

func (m *mockS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	if _, ok := in.Body.(io.Seeker); !ok {
		return nil, errors.New("unseekable body")
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	obj := object{data: data}
	if in.ContentType != nil {
		obj.contentType = *in.ContentType
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[*in.Bucket+"/"+*in.Key] = obj
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if m.headErr != nil {
		return nil, m.headErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[*in.Bucket+"/"+*in.Key]; !ok {
		return nil, errNotFound
	}
	return &s3.HeadObjectOutput{}, nil
}

func (m *mockS3) get(key string) (object, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	return obj, ok
}

// ---------------------------------------------------------------------------
// S3 tests
// ---------------------------------------------------------------------------

func TestS3Put(t *testing.T) {
	mock := newMockS3()
	sink := NewS3(mock, "media", "")
	ctx := context.Background()

	loc, err := sink.Put(ctx, "cambai_tts_abc.flac", "audio/flac", bytes.NewReader([]byte("fLaC")))
	if err != nil {
		t.Fatal(err)
	}
	if loc != "s3://media/cambai_tts_abc.flac" {
		t.Errorf("location = %q", loc)
	}

	obj, ok := mock.get("media/cambai_tts_abc.flac")
	if !ok {
		t.Fatal("object not stored")
	}
	if string(obj.data) != "fLaC" {
		t.Errorf("data = %q", obj.data)
	}
	if obj.contentType != "audio/flac" {
		t.Errorf("content type = %q", obj.contentType)
	}
}

func TestS3PutBuffersUnseekableBody(t *testing.T) {
	mock := newMockS3()
	sink := NewS3(mock, "media", "")

	// strings.Reader is seekable; hide it behind a plain io.Reader.
	body := io.MultiReader(strings.NewReader("part1-"), strings.NewReader("part2"))
	if _, err := sink.Put(context.Background(), "a.flac", "", body); err != nil {
		t.Fatal(err)
	}
	obj, _ := mock.get("media/a.flac")
	if string(obj.data) != "part1-part2" {
		t.Errorf("data = %q", obj.data)
	}
	if obj.contentType != "" {
		t.Errorf("content type = %q, want unset", obj.contentType)
	}
}

func TestS3Prefix(t *testing.T) {
	mock := newMockS3()
	sink := NewS3(mock, "media", "/cambai/out/")

	loc, err := sink.Put(context.Background(), "x.flac", "audio/flac", strings.NewReader("x"))
	if err != nil {
		t.Fatal(err)
	}
	if loc != "s3://media/cambai/out/x.flac" {
		t.Errorf("location = %q", loc)
	}
	if _, ok := mock.get("media/cambai/out/x.flac"); !ok {
		t.Error("object not stored under prefix")
	}
}

func TestS3Exists(t *testing.T) {
	mock := newMockS3()
	sink := NewS3(mock, "media", "p")
	ctx := context.Background()

	ok, err := sink.Exists(ctx, "nope.flac")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("Exists = true for missing object")
	}

	sink.Put(ctx, "yes.flac", "audio/flac", strings.NewReader("y"))
	ok, err = sink.Exists(ctx, "yes.flac")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("Exists = false for stored object")
	}
}

func TestS3Errors(t *testing.T) {
	mock := newMockS3()
	sink := NewS3(mock, "media", "")
	ctx := context.Background()

	boom := errors.New("access denied")
	mock.putErr = boom
	if _, err := sink.Put(ctx, "a.flac", "", strings.NewReader("a")); !errors.Is(err, boom) {
		t.Errorf("Put err = %v, want %v", err, boom)
	}

	mock.headErr = &apiError{code: "Forbidden", msg: "forbidden"}
	if _, err := sink.Exists(ctx, "a.flac"); err == nil {
		t.Error("Exists should surface non-NotFound errors")
	}
}

func TestS3ConcurrentPut(t *testing.T) {
	mock := newMockS3()
	sink := NewS3(mock, "media", "")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := "f" + string(rune('a'+i)) + ".flac"
			if _, err := sink.Put(ctx, name, "audio/flac", strings.NewReader(name)); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	mock.mu.Lock()
	defer mock.mu.Unlock()
	if len(mock.objects) != 20 {
		t.Errorf("objects = %d, want 20", len(mock.objects))
	}
}

func TestDialS3RequiresBucket(t *testing.T) {
	if _, err := DialS3(context.Background(), S3Config{}); err == nil {
		t.Error("DialS3 without bucket should fail")
	}
}

func TestIsS3NotFound(t *testing.T) {
	if !isS3NotFound(&apiError{code: "NoSuchKey"}) || !isS3NotFound(errNotFound) {
		t.Error("NotFound codes not recognized")
	}
	if isS3NotFound(errors.New("plain")) {
		t.Error("plain error recognized as NotFound")
	}
}

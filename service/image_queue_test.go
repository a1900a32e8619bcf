package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotFound = errors.New("not found")

// recordingFetcher tracks call order and how many fetches overlap
type recordingFetcher struct {
	mu          sync.Mutex
	inFlight    int
	maxInFlight int
	order       []string
	images      map[string][]byte
}

func (f *recordingFetcher) Fetch(_ context.Context, ref string) ([]byte, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.order = append(f.order, ref)
	f.mu.Unlock()

	time.Sleep(2 * time.Millisecond)

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	data, ok := f.images[ref]
	if !ok {
		return nil, errNotFound
	}
	return data, nil
}

func TestImageQueueLoadsSequentiallyInOrder(t *testing.T) {
	img := pngBytes(t, 10, 10)
	fetcher := &recordingFetcher{images: map[string][]byte{"a": img, "c": img, "d": img}}
	queue := NewImageQueue(fetcher, nil, 60, nil)

	slots := queue.LoadAll(context.Background(), []ImageRequest{
		{ItemID: "1", Ref: "a"},
		{ItemID: "2", Ref: "b"}, // fails
		{ItemID: "3", Ref: ""},  // no image
		{ItemID: "4", Ref: "c"},
		{ItemID: "5", Ref: "d"},
	})

	assert.Equal(t, []string{"a", "b", "c", "d"}, fetcher.order)
	assert.Equal(t, 1, fetcher.maxInFlight)

	require.Len(t, slots, 5)
	assert.True(t, strings.HasPrefix(slots[0].DataURI, "data:image/jpeg;base64,"))
	assert.Empty(t, slots[1].DataURI)
	assert.Empty(t, slots[2].DataURI)
	assert.NotEmpty(t, slots[3].DataURI)
	assert.Equal(t, "5", slots[4].ItemID)
}

func TestImageQueueStopsWhenCancelled(t *testing.T) {
	fetcher := &recordingFetcher{images: map[string][]byte{}}
	queue := NewImageQueue(fetcher, nil, 60, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slots := queue.LoadAll(ctx, []ImageRequest{{ItemID: "1", Ref: "a"}})
	require.Len(t, slots, 1)
	assert.Empty(t, slots[0].DataURI)
	assert.Empty(t, fetcher.order)
}

func TestImageQueueUsesCache(t *testing.T) {
	cache := NewThumbCache(t.TempDir())
	fetcher := &recordingFetcher{images: map[string][]byte{"a": pngBytes(t, 10, 10)}}
	queue := NewImageQueue(fetcher, cache, 60, nil)

	first := queue.LoadAll(context.Background(), []ImageRequest{{ItemID: "1", Ref: "a"}})
	second := queue.LoadAll(context.Background(), []ImageRequest{{ItemID: "1", Ref: "a"}})

	assert.Len(t, fetcher.order, 1)
	assert.Equal(t, first[0].DataURI, second[0].DataURI)
}

func TestHTTPImageFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	fetcher := NewHTTPImageFetcher(time.Second)
	data, err := fetcher.Fetch(context.Background(), srv.URL+"/scorp.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)

	_, err = fetcher.Fetch(context.Background(), srv.URL+"/missing.png")
	assert.Error(t, err)
}

func TestRoutingFetcher(t *testing.T) {
	drive := &fakeDrive{files: map[string][]byte{"file1": []byte("from-drive")}}
	web := &recordingFetcher{images: map[string][]byte{"https://cdn/x.png": []byte("from-web")}}
	fetcher := NewRoutingFetcher(drive, web)

	data, err := fetcher.Fetch(context.Background(), DriveImageURL("file1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("from-drive"), data)

	data, err = fetcher.Fetch(context.Background(), "https://cdn/x.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("from-web"), data)

	// without Drive, Drive URLs fall back to plain HTTP
	_, err = NewRoutingFetcher(nil, web).Fetch(context.Background(), DriveImageURL("file1"))
	assert.Error(t, err)
	assert.Contains(t, web.order, DriveImageURL("file1"))
}

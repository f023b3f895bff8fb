package profileimage

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/darkkaiser/voice-notifier/internal/imagecache"
	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
	"github.com/darkkaiser/voice-notifier/internal/pkg/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

// oversizedPNG 헤더(IHDR)에만 w x h 크기를 선언한 작은 PNG를 만듭니다.
func oversizedPNG(t *testing.T, w, h uint32) []byte {
	t.Helper()

	data := encodePNG(t, 1, 1, color.Black)
	require.Equal(t, "IHDR", string(data[12:16]))

	binary.BigEndian.PutUint32(data[16:20], w)
	binary.BigEndian.PutUint32(data[20:24], h)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))

	return data
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	return img
}

func isNearWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r>>8 > 240 && g>>8 > 240 && b>>8 > 240
}

func TestFit(t *testing.T) {
	tests := []struct {
		name         string
		sw, sh       int
		wantW, wantH int
	}{
		{"작은 이미지는 그대로", 100, 50, 100, 50},
		{"가로가 긴 이미지", 640, 320, 320, 160},
		{"세로가 긴 이미지", 200, 800, 80, 320},
		{"정사각형", 1000, 1000, 320, 320},
		{"극단적인 비율", 10000, 1, 320, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fit(tt.sw, tt.sh, 320, 320)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestThumbnail(t *testing.T) {
	t.Run("고정 크기 캔버스 가운데 배치", func(t *testing.T) {
		src := encodePNG(t, 640, 320, color.RGBA{R: 255, A: 255})

		out, err := Thumbnail(src, 320, 320, 85)
		require.NoError(t, err)

		img := decodeJPEG(t, out)
		assert.Equal(t, image.Rect(0, 0, 320, 320), img.Bounds())
		assert.True(t, isNearWhite(img.At(2, 2)), "여백은 흰색 배경입니다")

		r, g, b, _ := img.At(160, 160).RGBA()
		assert.Greater(t, r>>8, uint32(200))
		assert.Less(t, g>>8, uint32(60))
		assert.Less(t, b>>8, uint32(60))
	})

	t.Run("투명 영역은 흰색으로 합성", func(t *testing.T) {
		src := encodePNG(t, 64, 64, color.RGBA{})

		out, err := Thumbnail(src, 32, 32, 90)
		require.NoError(t, err)
		assert.True(t, isNearWhite(decodeJPEG(t, out).At(16, 16)))
	})

	t.Run("손상된 데이터", func(t *testing.T) {
		_, err := Thumbnail([]byte("not an image"), 32, 32, 90)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ParsingFailed))
	})

	t.Run("최대 픽셀 수를 초과하는 이미지", func(t *testing.T) {
		data := oversizedPNG(t, 20000, 20000)
		assert.Less(t, len(data), 1024)

		_, err := Thumbnail(data, 32, 32, 90)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ParsingFailed))
		assert.Contains(t, err.Error(), "20000x20000")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"정상 이미지", encodePNG(t, 4, 4, color.White), true},
		{"손상된 데이터", []byte("not an image"), false},
		{"빈 데이터", nil, false},
		{"최대 픽셀 수와 같은 크기", oversizedPNG(t, 8000, 5000), true},
		{"최대 픽셀 수 초과", oversizedPNG(t, 20000, 20000), false},
		{"한 변만 매우 긴 이미지", oversizedPNG(t, 40_000_001, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.data))
		})
	}
}

func TestHashContent(t *testing.T) {
	a := HashContent([]byte("abc"))
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", a)
	assert.Equal(t, a, HashContent([]byte("abc")))
	assert.NotEqual(t, a, HashContent([]byte("abd")))
}

type stubSource struct {
	url string
	ok  bool
	err error
}

func (s *stubSource) LargestPhotoURL(context.Context, string) (string, bool, error) {
	return s.url, s.ok, s.err
}

type countingCache struct {
	*imagecache.Cache
	puts atomic.Int32
}

func (c *countingCache) Put(ctx context.Context, userID, hash string, data []byte) error {
	c.puts.Add(1)
	return c.Cache.Put(ctx, userID, hash, data)
}

func newPipelineFixture(t *testing.T, handler http.HandlerFunc, source *stubSource) (*Pipeline, *countingCache, string) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	if source.url == "" && source.ok {
		source.url = srv.URL + "/photo.png"
	}

	c, err := imagecache.New(imagecache.Config{Dir: t.TempDir(), TTL: time.Hour}, imagecache.NewMemoryMetadataStore())
	require.NoError(t, err)
	cache := &countingCache{Cache: c}

	f := fetcher.NewImageFetcher(fetcher.Config{Timeout: 5 * time.Second})

	return NewPipeline(source, f, cache, Config{Width: 64, Height: 64, Quality: 80}), cache, srv.URL
}

func TestPipeline_Fetch(t *testing.T) {
	photo := encodePNG(t, 128, 96, color.RGBA{B: 255, A: 255})
	var downloads atomic.Int32

	p, cache, _ := newPipelineFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		downloads.Add(1)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(photo)
	}, &stubSource{ok: true})

	ctx := context.Background()

	first, ok := p.Fetch(ctx, "42")
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 64, 64), decodeJPEG(t, first).Bounds())
	assert.FileExists(t, cache.Path(imagecache.Key("42", HashContent(photo))))

	second, ok := p.Fetch(ctx, "42")
	require.True(t, ok)
	assert.Equal(t, first, second)

	assert.Equal(t, int32(2), downloads.Load(), "해시 계산을 위해 원본은 매번 받아옵니다")
	assert.Equal(t, int32(1), cache.puts.Load(), "두 번째 요청은 캐시를 사용합니다")
}

func TestPipeline_Fetch_Absent(t *testing.T) {
	okHandler := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("\x89PNG corrupted"))
	}

	bomb := oversizedPNG(t, 20000, 20000)

	tests := []struct {
		name    string
		source  *stubSource
		handler http.HandlerFunc
	}{
		{"프로필 사진 없음", &stubSource{ok: false}, okHandler},
		{"API 에러", &stubSource{err: errors.New("telegram: Bad Request")}, okHandler},
		{"손상된 이미지", &stubSource{ok: true}, okHandler},
		{"다운로드 실패", &stubSource{ok: true}, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}},
		{"이미지가 아닌 응답", &stubSource{ok: true}, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html/>"))
		}},
		{"선언된 크기가 너무 큰 이미지", &stubSource{ok: true}, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(bomb)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, cache, _ := newPipelineFixture(t, tt.handler, tt.source)

			data, ok := p.Fetch(context.Background(), "42")
			assert.False(t, ok)
			assert.Nil(t, data)
			assert.Equal(t, int32(0), cache.puts.Load())
		})
	}

	t.Run("빈 사용자 ID", func(t *testing.T) {
		p, _, _ := newPipelineFixture(t, okHandler, &stubSource{ok: true})
		_, ok := p.Fetch(context.Background(), "")
		assert.False(t, ok)
	})
}

func TestPipeline_Fetch_WithoutCache(t *testing.T) {
	photo := encodePNG(t, 10, 10, color.Black)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(photo)
	}))
	defer srv.Close()

	p := NewPipeline(&stubSource{url: srv.URL, ok: true}, fetcher.NewImageFetcher(fetcher.Config{}), nil, Config{})

	data, ok := p.Fetch(context.Background(), "7")
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, DefaultWidth, DefaultHeight), decodeJPEG(t, data).Bounds())
}

func TestPipeline_Fetch_ConcurrentSameUser(t *testing.T) {
	photo := encodePNG(t, 32, 32, color.White)
	p, cache, _ := newPipelineFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(photo)
	}, &stubSource{ok: true})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := p.Fetch(context.Background(), "42")
			assert.True(t, ok)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), cache.puts.Load(), "같은 사용자의 동시 요청은 직렬화되어 한 번만 저장합니다")
}

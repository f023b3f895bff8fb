package profileimage

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"image"
	"image/color"
	_ "image/gif" // 디코더 등록
	"image/jpeg"
	_ "image/png" // 디코더 등록

	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // 디코더 등록
)

const (
	DefaultWidth   = 320
	DefaultHeight  = 320
	DefaultQuality = 85

	// MaxPixels 디코딩을 허용하는 최대 픽셀 수(가로 x 세로)입니다.
	MaxPixels = 40_000_000
)

// HashContent 원본 이미지 바이트의 SHA-256 해시(16진수 문자열)를 반환합니다.
// 같은 바이트는 언제 받아왔든 항상 같은 캐시 키가 됩니다.
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Validate 데이터가 디코딩 가능한 이미지인지 확인합니다.
// 헤더에 선언된 크기가 MaxPixels를 넘는 이미지는 디코딩할 수 없는 것으로 봅니다.
func Validate(data []byte) bool {
	return checkDimensions(data) == nil
}

// checkDimensions 비트맵 전체를 디코딩하지 않고 헤더만 읽어 이미지 크기를 검사합니다.
func checkDimensions(data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return apperrors.Wrap(err, apperrors.ParsingFailed, "이미지 데이터를 디코딩할 수 없습니다")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return apperrors.New(apperrors.ParsingFailed, "이미지 크기가 0입니다")
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return apperrors.Newf(apperrors.ParsingFailed, "이미지 크기(%dx%d)가 허용된 최대 픽셀 수(%d)를 초과합니다", cfg.Width, cfg.Height, MaxPixels)
	}

	return nil
}

// Thumbnail 이미지를 width x height 크기의 JPEG 썸네일로 변환합니다.
//
//   - 가로세로 비율을 유지하며 캔버스 안에 맞도록 축소합니다. 원본이 더 작으면 확대하지 않습니다.
//   - 투명 영역은 흰색 배경으로 합성합니다.
//   - 결과 이미지는 흰색 캔버스의 가운데에 배치됩니다.
func Thumbnail(data []byte, width, height, quality int) ([]byte, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}

	if err := checkDimensions(data); err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "이미지 데이터를 디코딩할 수 없습니다")
	}

	sb := src.Bounds()
	if sb.Dx() <= 0 || sb.Dy() <= 0 {
		return nil, apperrors.New(apperrors.ParsingFailed, "이미지 크기가 0입니다")
	}

	w, h := fit(sb.Dx(), sb.Dy(), width, height)

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	x := (width - w) / 2
	y := (height - h) / 2
	draw.CatmullRom.Scale(canvas, image.Rect(x, y, x+w, y+h), src, sb, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: quality}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "썸네일을 JPEG로 인코딩할 수 없습니다")
	}

	return buf.Bytes(), nil
}

// fit 원본 크기(sw, sh)를 비율을 유지하며 (maxW, maxH) 안에 들어가도록 계산합니다.
func fit(sw, sh, maxW, maxH int) (int, int) {
	if sw <= maxW && sh <= maxH {
		return sw, sh
	}

	// sw/sh > maxW/maxH 이면 가로가 기준
	if sw*maxH > sh*maxW {
		h := sh * maxW / sw
		return maxW, max(h, 1)
	}

	w := sw * maxH / sh
	return max(w, 1), maxH
}

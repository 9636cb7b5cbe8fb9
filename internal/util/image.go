package util

import (
	"bytes"
	"fmt"
	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
)

const AvatarSize = 256

// NormalizeAvatar decodes a PNG, JPEG or GIF image, crops it to a centred
// square of AvatarSize pixels and re-encodes it as JPEG.
func NormalizeAvatar(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fill(img, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

package wisp

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	// Decoders for every format a card accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Card is an image drop target: a layer whose background can be replaced
// by an uploaded picture that survives restarts through a BlobStore.
type Card struct {
	Key   string
	Layer *Layer

	// Background is the current image as a data URL, empty when unset.
	Background string
	// HintVisible is cleared once an image is shown.
	HintVisible bool
	// Border is cleared once an image is shown.
	Border bool
	// Size is the decoded image size.
	Size image.Point

	store  BlobStore
	logger *log.Logger
}

// NewCard creates an empty card persisted under key.
func NewCard(key string, layer *Layer, store BlobStore, logger *log.Logger) *Card {
	return &Card{
		Key:         key,
		Layer:       layer,
		HintVisible: true,
		Border:      true,
		store:       store,
		logger:      logger,
	}
}

// DataURL encodes an image as a data URL. The whole image is decoded, so
// a valid header over truncated pixel data is rejected. It returns the URL
// and the decoded size.
func DataURL(data []byte) (string, image.Point, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", image.Point{}, fmt.Errorf("decode image: %w", err)
	}
	size := img.Bounds().Size()
	var b strings.Builder
	b.WriteString("data:image/")
	b.WriteString(format)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String(), size, nil
}

// Upload shows an image on the card and persists it. The visual update is
// applied before the write: a store failure is returned as a non-fatal
// *PersistenceError and the image stays on screen. Undecodable data is
// rejected without touching the card.
func (c *Card) Upload(data []byte) error {
	url, size, err := DataURL(data)
	if err != nil {
		return fmt.Errorf("upload %q: %w", c.Key, err)
	}
	c.show(url, size)

	if c.store == nil {
		return nil
	}
	if err := c.store.Set(c.Key, []byte(url)); err != nil {
		perr := &PersistenceError{Key: c.Key, Err: err}
		if c.logger != nil {
			c.logger.Warn("image not saved", "card", c.Key, "err", err)
		}
		return perr
	}
	return nil
}

// Restore shows the persisted image, if any. It reports whether one was
// found.
func (c *Card) Restore() (bool, error) {
	if c.store == nil {
		return false, nil
	}
	data, err := c.store.Get(c.Key)
	if err != nil {
		return false, fmt.Errorf("restore %q: %w", c.Key, err)
	}
	if data == nil {
		return false, nil
	}
	url := string(data)
	var size image.Point
	if raw, ok := decodeDataURL(url); ok {
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(raw)); err == nil {
			size = image.Pt(cfg.Width, cfg.Height)
		}
	}
	c.show(url, size)
	return true, nil
}

func (c *Card) show(url string, size image.Point) {
	c.Background = url
	c.Size = size
	c.HintVisible = false
	c.Border = false
	if c.Layer != nil {
		c.Layer.AddClass("has-image")
	}
}

func decodeDataURL(url string) ([]byte, bool) {
	_, payload, ok := strings.Cut(url, ";base64,")
	if !ok {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, false
	}
	return raw, true
}

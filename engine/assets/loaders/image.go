package loaders

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/walkthedog/engine/renderer/metadata"
)

// ImageLoader decodes png, jpeg, gif, bmp and webp files into an image.Image.
type ImageLoader struct{}

func (il *ImageLoader) Load(name, path string) (*metadata.Resource, error) {
	// Open and decode the image file
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("decode %s: empty %s image", name, format)
	}
	return &metadata.Resource{
		Name:     name,
		FullPath: path,
		Type:     metadata.ResourceTypeImage,
		DataSize: uint64(info.Size()),
		Data:     img,
	}, nil
}

func (il *ImageLoader) Unload(*metadata.Resource) error {
	return nil
}

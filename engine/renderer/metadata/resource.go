package metadata

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Unknown or unsupported resource. */
	ResourceTypeNone ResourceType = iota
	/** @brief Raw bytes, returned as fetched. */
	ResourceTypeBinary
	/** @brief Image resource type (png, jpeg, gif, bmp, webp). */
	ResourceTypeImage
	/** @brief JSON document, such as a sprite sheet index. */
	ResourceTypeJSON
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeBinary:
		return "binary"
	case ResourceTypeImage:
		return "image"
	case ResourceTypeJSON:
		return "json"
	default:
		return "none"
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The name of the resource, relative to the assets root. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The resource type the loader produced. */
	Type ResourceType
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. []byte for binary, image.Image for images. */
	Data interface{}
}

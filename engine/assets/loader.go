package assets

import "github.com/spaghettifunk/walkthedog/engine/renderer/metadata"

// Loader turns the file at path into a resource of its type.
type Loader interface {
	Load(name, path string) (*metadata.Resource, error)
	Unload(*metadata.Resource) error
}

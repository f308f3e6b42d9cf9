package simulator

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"sync"

	"github.com/rainbow-dataspace/handshake-orchestrator/internal/utils/jsonutils"

	"github.com/pkg/errors"
)

// specDocument is the slice of an OpenAPI document the simulator cares about.
type specDocument struct {
	Info struct {
		Title string `json:"title"`
	} `json:"info"`
	Servers []struct {
		URL string `json:"url"`
	} `json:"servers"`
}

// SpecCache lazily loads the OpenAPI specs the device exposes metadata from,
// parsing each file at most once.
type SpecCache struct {
	paths map[string]string

	mu    sync.Mutex
	cache map[string]*specDocument
}

// NewSpecCache builds a cache over named spec files. Names without a path are
// simply absent; asking for them is an error.
func NewSpecCache(paths map[string]string) *SpecCache {
	filtered := make(map[string]string)
	for name, path := range paths {
		if path != "" {
			filtered[name] = path
		}
	}

	return &SpecCache{paths: filtered, cache: make(map[string]*specDocument)}
}

func (c *SpecCache) get(name string) (*specDocument, error) {
	path, known := c.paths[name]
	if !known {
		return nil, fmt.Errorf("unknown spec '%v'", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if doc, loaded := c.cache[name]; loaded {
		return doc, nil
	}

	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read spec file for '%v'", name)
	}

	var loose interface{}
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil, errors.Wrapf(err, "unable to parse spec file for '%v'", name)
	}

	doc := &specDocument{}
	if err := jsonutils.DecodeLoose(loose, doc); err != nil {
		return nil, errors.Wrapf(err, "unable to decode spec file for '%v'", name)
	}

	c.cache[name] = doc
	return doc, nil
}

// Title returns the spec's info title.
func (c *SpecCache) Title(name string) (string, error) {
	doc, err := c.get(name)
	if err != nil {
		return "", err
	}

	return doc.Info.Title, nil
}

// DefaultServer returns the first server URL the spec declares, or "" when it
// declares none.
func (c *SpecCache) DefaultServer(name string) (string, error) {
	doc, err := c.get(name)
	if err != nil {
		return "", err
	}

	if len(doc.Servers) == 0 {
		return "", nil
	}
	return doc.Servers[0].URL, nil
}

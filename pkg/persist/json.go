package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSON keeps every key in one JSON object on disk. Values must be valid JSON.
type JSON struct {
	mu   sync.Mutex
	file string
}

func InJSON(file string) *JSON {
	return &JSON{file: file}
}

func (j *JSON) Get(key string) ([]byte, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	doc, err := j.read()
	if err != nil {
		return nil, err
	}
	v, ok := doc[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (j *JSON) Put(key string, value []byte) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !json.Valid(value) {
		return fmt.Errorf("json backend: value for %q is not valid json", key)
	}
	doc, err := j.read()
	if err != nil {
		// a missing or corrupt file is replaced
		doc = map[string]json.RawMessage{}
	}
	doc[key] = value
	bs, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return j.write(bs)
}

func (j *JSON) Close() error {
	return nil
}

func (j *JSON) read() (map[string]json.RawMessage, error) {
	bs, err := os.ReadFile(j.file)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(bs, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, j.file, err)
	}
	return doc, nil
}

// write replaces the file through a rename so a crash never leaves it half written
func (j *JSON) write(bs []byte) error {
	if err := os.MkdirAll(filepath.Dir(j.file), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(j.file), filepath.Base(j.file)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(bs); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), j.file)
}

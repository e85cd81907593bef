package chunktrie

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/phasorlab/spectral/codec"
	"github.com/phasorlab/spectral/internal/block"
)

// Serialized chunk manifests are self-describing: a fixed header names the
// codec and block compression, so readers need no out-of-band configuration.
//
// Layout: magic "SPCT", format version u8, compression u8, codec-name length
// u8, codec name, then one compressed block holding the codec-encoded
// manifest.
var magic = [4]byte{'S', 'P', 'C', 'T'}

const formatVersion = 1

// WriteManifest serializes cm to w using the configured codec and block
// compression (go-json and zstd by default).
func WriteManifest(w io.Writer, cm *ChunkManifest, opts ...Option) error {
	o := applyOptions(opts)
	if !o.compression.Valid() {
		return fmt.Errorf("unknown block compression: %d", o.compression)
	}

	body, err := o.codec.Marshal(cm)
	if err != nil {
		return fmt.Errorf("marshal chunk manifest: %w", err)
	}
	framed, err := block.Compress(body, o.compression)
	if err != nil {
		return fmt.Errorf("compress chunk manifest: %w", err)
	}

	name := o.codec.Name()
	if len(name) > 255 {
		return fmt.Errorf("codec name too long: %q", name)
	}

	header := make([]byte, 0, 7+len(name))
	header = append(header, magic[:]...)
	header = append(header, formatVersion, byte(o.compression), byte(len(name)))
	header = append(header, name...)

	if _, err := w.Write(header); err != nil {
		return err
	}
	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(len(framed)))
	if _, err := w.Write(size[:]); err != nil {
		return err
	}
	_, err = w.Write(framed)
	return err
}

// ReadManifest deserializes and validates a chunk manifest written by
// WriteManifest.
func ReadManifest(r io.Reader) (*ChunkManifest, error) {
	var fixed [7]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return nil, err
	}
	if [4]byte(fixed[:4]) != magic {
		return nil, fmt.Errorf("not a chunk manifest: bad magic %x", fixed[:4])
	}
	if fixed[4] != formatVersion {
		return nil, fmt.Errorf("unsupported chunk manifest format version: %d", fixed[4])
	}
	compression := block.Compression(fixed[5])
	if !compression.Valid() {
		return nil, fmt.Errorf("unknown block compression: %d", fixed[5])
	}

	name := make([]byte, fixed[6])
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, err
	}
	c, ok := codec.ByName(string(name))
	if !ok {
		return nil, fmt.Errorf("unknown codec: %q", name)
	}

	var size [4]byte
	if _, err := io.ReadFull(r, size[:]); err != nil {
		return nil, err
	}
	framed := make([]byte, binary.LittleEndian.Uint32(size[:]))
	if _, err := io.ReadFull(r, framed); err != nil {
		return nil, err
	}

	body, err := block.Decompress(framed, compression)
	if err != nil {
		return nil, fmt.Errorf("decompress chunk manifest: %w", err)
	}

	var cm ChunkManifest
	if err := c.Unmarshal(body, &cm); err != nil {
		return nil, fmt.Errorf("unmarshal chunk manifest: %w", err)
	}
	if err := cm.Validate(); err != nil {
		return nil, err
	}
	return &cm, nil
}

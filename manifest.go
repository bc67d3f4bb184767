package tfrec

import (
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/tfrec/blobstore"
	"github.com/hupe1980/tfrec/codec"
	"github.com/hupe1980/tfrec/example"
	ihash "github.com/hupe1980/tfrec/internal/hash"
	"github.com/hupe1980/tfrec/tfrecord"
)

const (
	// ManifestFormat is the container format recorded in every manifest.
	ManifestFormat = "tfrecord"
	// ManifestVersion is the current manifest layout version.
	ManifestVersion = 1
	// ManifestSuffix is appended to the output name to form the manifest name.
	ManifestSuffix = ".manifest.json"
)

// ManifestField describes one feature of every record.
type ManifestField struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Width int    `json:"width"`
}

// Manifest summarizes a finished output file. It carries no timestamps, so
// the same input always yields the same manifest.
type Manifest struct {
	Format  string          `json:"format"`
	Version int             `json:"version"`
	Name    string          `json:"name"`
	Codec   string          `json:"codec"`
	Records int64           `json:"records"`
	Bytes   int64           `json:"bytes"`
	CRC32C  uint32          `json:"crc32c"`
	Fields  []ManifestField `json:"fields"`
}

// ManifestName returns the blob name of the manifest for name.
func ManifestName(name string) string {
	return name + ManifestSuffix
}

func newManifest(name, codecName string, records, bytes int64, crc uint32, geneWidth, tokenWidth int) *Manifest {
	return &Manifest{
		Format:  ManifestFormat,
		Version: ManifestVersion,
		Name:    name,
		Codec:   codecName,
		Records: records,
		Bytes:   bytes,
		CRC32C:  crc,
		Fields: []ManifestField{
			{Name: FeatureIC50, Kind: example.KindFloat.String(), Width: 1},
			{Name: FeatureGenes, Kind: example.KindFloat.String(), Width: geneWidth},
			{Name: FeatureTokens, Kind: example.KindInt64.String(), Width: tokenWidth},
		},
	}
}

func (m *Manifest) store(ctx context.Context, store blobstore.Store, c codec.Codec) error {
	data, err := c.Marshal(m)
	if err != nil {
		return fmt.Errorf("tfrec: encode manifest: %w", err)
	}
	if err := store.Put(ctx, ManifestName(m.Name), data); err != nil {
		return fmt.Errorf("tfrec: store manifest: %w", err)
	}
	return nil
}

// ReadManifest loads the manifest stored next to name.
func ReadManifest(ctx context.Context, store blobstore.Store, name string, opts ...Option) (*Manifest, error) {
	o := applyOptions(opts)

	r, _, err := blobstore.OpenReader(ctx, store, ManifestName(name))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := o.codec.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("tfrec: decode manifest: %w", err)
	}
	if m.Format != ManifestFormat || m.Version != ManifestVersion {
		return nil, fmt.Errorf("tfrec: unsupported manifest %q version %d", m.Format, m.Version)
	}
	return &m, nil
}

// Verify re-reads the file the manifest describes and checks its size,
// record count and CRC-32C. Every frame checksum is verified on the way.
func (m *Manifest) Verify(ctx context.Context, store blobstore.Store) error {
	r, size, err := blobstore.OpenReader(ctx, store, m.Name)
	if err != nil {
		return err
	}
	defer r.Close()

	if size != m.Bytes {
		return fmt.Errorf("%w: size %d, manifest says %d", ErrManifestMismatch, size, m.Bytes)
	}

	sum := ihash.NewCRC32C()
	records, err := tfrecord.Count(io.TeeReader(r, sum))
	if err != nil {
		return err
	}
	if records != m.Records {
		return fmt.Errorf("%w: %d records, manifest says %d", ErrManifestMismatch, records, m.Records)
	}
	if crc := sum.Sum32(); crc != m.CRC32C {
		return fmt.Errorf("%w: crc32c %08x, manifest says %08x", ErrManifestMismatch, crc, m.CRC32C)
	}
	return nil
}

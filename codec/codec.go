// Package codec serializes a BlockManager to bytes and back.
//
// Frame layout, little endian:
//
//	magic "BKM1" | version u16 | compression u8 | raw length u64 | payload
//
// The payload, once decompressed, is a u32 manifest length, the JSON
// manifest (axes, per block dtype, items, shape and byte range) and then
// every block's values back to back.
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"runtime"

	"github.com/dot5enko/blockframe/bits"
	"github.com/dot5enko/blockframe/block"
	"github.com/dot5enko/blockframe/cache"
	"github.com/dot5enko/blockframe/compression"
	"github.com/dot5enko/blockframe/index"
	"github.com/dot5enko/blockframe/manager"
	"github.com/dot5enko/blockframe/schema"
	gojson "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

const (
	Version = 1

	headerSize = 4 + 2 + 1 + 8

	// MaxPayload bounds the decompressed payload a frame may declare.
	MaxPayload = math.MaxInt32
)

var magic = [4]byte{'B', 'K', 'M', '1'}

var scratch = cache.NewScratchBuffers(runtime.GOMAXPROCS(0))

type Options struct {
	Compression compression.Kind
}

type manifest struct {
	Items     axis            `json:"items"`
	Rows      axis            `json:"rows"`
	AllowGaps bool            `json:"allow_gaps,omitempty"`
	Blocks    []blockManifest `json:"blocks"`
}

type blockManifest struct {
	Dtype  string  `json:"dtype"`
	Items  []label `json:"items"`
	Rows   int     `json:"rows"`
	Cols   int     `json:"cols"`
	Offset int     `json:"offset"`
	Length int     `json:"length"`
}

// Marshal encodes the manager with its axes, block layout and values.
func Marshal(m *manager.BlockManager, opts Options) ([]byte, error) {
	var man manifest
	var err error

	man.AllowGaps = m.Config().AllowGaps
	if man.Items, err = encodeAxis(m.Items()); err != nil {
		return nil, fmt.Errorf("items axis: %w", err)
	}
	if man.Rows, err = encodeAxis(m.Rows()); err != nil {
		return nil, fmt.Errorf("rows axis: %w", err)
	}

	body := bits.NewEncodeBuffer(make([]byte, 4096), binary.LittleEndian)
	body.EnableGrowing()

	for bi, blk := range m.Blocks() {
		items, err := encodeLabels(blk.Items().Labels())
		if err != nil {
			return nil, fmt.Errorf("block %d items: %w", bi, err)
		}

		start := body.Position()
		if err := encodeValues(&body, blk.Values()); err != nil {
			return nil, fmt.Errorf("block %d values: %w", bi, err)
		}

		rows, cols := blk.Shape()
		man.Blocks = append(man.Blocks, blockManifest{
			Dtype:  blk.Type().String(),
			Items:  items,
			Rows:   rows,
			Cols:   cols,
			Offset: start,
			Length: body.Position() - start,
		})
	}

	manifestBytes, err := gojson.Marshal(man)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	raw := bits.NewEncodeBuffer(make([]byte, 4+len(manifestBytes)+body.Position()), binary.LittleEndian)
	raw.PutUint32(uint32(len(manifestBytes)))
	raw.Write(manifestBytes)
	raw.Write(body.Bytes())

	compressed, id := scratch.Get()
	defer scratch.Return(id)

	if err := compression.Compress(opts.Compression, raw.Bytes(), compressed); err != nil {
		return nil, err
	}

	frame := bits.NewEncodeBuffer(make([]byte, headerSize+compressed.Len()), binary.LittleEndian)
	frame.Write(magic[:])
	frame.PutUint16(Version)
	frame.WriteByte(uint8(opts.Compression))
	frame.PutUint64(uint64(raw.Position()))
	frame.Write(compressed.Bytes())

	return frame.Bytes(), nil
}

// Unmarshal decodes a frame written by Marshal. Axis 0 is rebuilt once and
// every block refers to that same index.
func Unmarshal(data []byte) (*manager.BlockManager, error) {
	return UnmarshalWith(data, manager.ManagerConfig{})
}

// UnmarshalWith is Unmarshal with a manager configuration. AllowGaps is
// taken from the frame.
func UnmarshalWith(data []byte, config manager.ManagerConfig) (*manager.BlockManager, error) {
	if len(data) < headerSize || !bytes.Equal(data[:4], magic[:]) {
		return nil, ErrInvalidMagic
	}

	r := bits.NewReader(bytes.NewReader(data[4:headerSize]), binary.LittleEndian)

	version, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	kind := compression.Kind(r.MustReadU8())
	rawLen, err := r.ReadU64()
	if err != nil {
		return nil, err
	}

	if rawLen > MaxPayload {
		return nil, fmt.Errorf("%w: declared payload of %d bytes", ErrCorrupt, rawLen)
	}

	raw, err := compression.Decompress(kind, data[headerSize:], int(rawLen))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorrupt, err.Error())
	}
	if len(raw) < 4 {
		return nil, fmt.Errorf("%w: payload of %d bytes", ErrCorrupt, len(raw))
	}

	manifestLen := int(binary.LittleEndian.Uint32(raw[:4]))
	if 4+manifestLen > len(raw) {
		return nil, fmt.Errorf("%w: manifest of %d bytes in %d byte payload", ErrCorrupt, manifestLen, len(raw))
	}

	var man manifest
	if err := gojson.Unmarshal(raw[4:4+manifestLen], &man); err != nil {
		return nil, fmt.Errorf("%w: manifest: %s", ErrCorrupt, err.Error())
	}
	body := raw[4+manifestLen:]

	items, err := decodeAxis(man.Items)
	if err != nil {
		return nil, err
	}
	rows, err := decodeAxis(man.Rows)
	if err != nil {
		return nil, err
	}

	blocks, err := decodeBlocks(man.Blocks, body, items)
	if err != nil {
		return nil, err
	}

	config.AllowGaps = man.AllowGaps
	return manager.New(blocks, items, rows, config)
}

// decodeBlocks decodes block payloads concurrently. Every block gets items
// as its ref items.
func decodeBlocks(manifests []blockManifest, body []byte, items *index.Index) ([]*block.Block, error) {
	blocks := make([]*block.Block, len(manifests))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for bi, bm := range manifests {
		bi, bm := bi, bm
		g.Go(func() error {
			if bm.Offset < 0 || bm.Length < 0 || bm.Offset+bm.Length > len(body) {
				return fmt.Errorf("%w: block %d range [%d:+%d] outside %d bytes", ErrCorrupt, bi, bm.Offset, bm.Length, len(body))
			}

			typ, err := schema.ParseFieldType(bm.Dtype)
			if err != nil {
				return fmt.Errorf("%w: block %d: %s", ErrCorrupt, bi, err.Error())
			}

			values, err := decodeValues(body[bm.Offset:bm.Offset+bm.Length], typ, bm.Rows, bm.Cols)
			if err != nil {
				return fmt.Errorf("block %d values: %w", bi, err)
			}

			labels, err := decodeLabels(bm.Items)
			if err != nil {
				return err
			}

			blk, err := block.Make(values, labels, items)
			if err != nil {
				return fmt.Errorf("block %d: %w", bi, err)
			}
			blocks[bi] = blk
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return blocks, nil
}
